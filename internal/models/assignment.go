package models

import (
	"time"

	"gorm.io/datatypes"
)

// AssignmentSection describes one part of the assignment brief.
type AssignmentSection struct {
	ID               uint     `json:"id"`
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
	FileRequirements []string `json:"file_requirements,omitempty"`
}

// Assignment is a deadline-bound piece of work. Submitted and Graded are the
// persisted lifecycle flags; overdue is always derived per request and never
// stored.
type Assignment struct {
	ID                 uint                                   `gorm:"primaryKey" json:"id"`
	Title              string                                 `gorm:"type:text;not null" json:"title"`
	Subject            string                                 `gorm:"type:text;index" json:"subject"`
	Description        string                                 `gorm:"type:text" json:"description"`
	Instructions       string                                 `gorm:"type:text" json:"instructions"`
	TotalMarks         *int                                   `json:"total_marks"`
	SubmissionDeadline *time.Time                             `json:"submission_deadline"`
	SubmissionLink     string                                 `gorm:"type:text" json:"submission_link"`
	Submitted          bool                                   `gorm:"default:false" json:"submitted"`
	Graded             bool                                   `gorm:"default:false" json:"graded"`
	Grade              string                                 `gorm:"size:32" json:"grade"`
	Feedback           string                                 `gorm:"type:text" json:"feedback"`
	Resources          datatypes.JSONSlice[string]            `json:"resources"`
	Sections           datatypes.JSONSlice[AssignmentSection] `json:"sections"`
	CreatedAt          time.Time                              `json:"created_at"`
}
