package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionType enumerates the supported question formats.
type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "MCQ"
	QuestionTypeTrueFalse   QuestionType = "TRUE_FALSE"
	QuestionTypeShortAnswer QuestionType = "SHORT_ANSWER"
)

// Question is a single quiz question. MarkedAnswer is empty until the learner
// answers; IsCorrect is only meaningful once an answer has been marked.
type Question struct {
	ID            uint         `json:"id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	MarkedAnswer  string       `json:"marked_answer,omitempty"`
	IsCorrect     *bool        `json:"is_correct,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
}

// Section groups an ordered set of questions.
type Section struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title,omitempty"`
	OrderIndex int        `json:"order_index,omitempty"`
	Questions  []Question `json:"questions"`
}

// Quiz stores its section/question tree as a JSON column. Score and Passed are
// only persisted when the learner finalizes the attempt.
type Quiz struct {
	ID             uint                         `gorm:"primaryKey" json:"id"`
	Title          string                       `gorm:"type:text;not null" json:"title"`
	Subject        string                       `gorm:"type:text;index" json:"subject"`
	Description    string                       `gorm:"type:text" json:"description"`
	TotalQuestions *int                         `json:"total_questions"`
	PassingScore   *int                         `json:"passing_score"`
	Duration       string                       `gorm:"size:64" json:"duration"`
	Difficulty     string                       `gorm:"size:32;index" json:"difficulty"`
	Score          *int                         `json:"score"`
	Passed         bool                         `gorm:"default:false" json:"passed"`
	Sections       datatypes.JSONSlice[Section] `json:"sections"`
	CreatedAt      time.Time                    `json:"created_at"`
}
