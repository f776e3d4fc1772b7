package dto

import (
	"time"

	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
)

// QuizCreateRequest describes the payload for creating a quiz.
type QuizCreateRequest struct {
	Title        string           `json:"title" validate:"required,min=3"`
	Subject      string           `json:"subject"`
	Description  string           `json:"description"`
	PassingScore *int             `json:"passing_score" validate:"omitempty,min=0,max=100"`
	Duration     string           `json:"duration"`
	Difficulty   string           `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Sections     []models.Section `json:"sections" validate:"omitempty,dive"`
}

// QuizUpdateRequest describes a partial update to a quiz.
type QuizUpdateRequest struct {
	Title        *string           `json:"title" validate:"omitempty,min=3"`
	Subject      *string           `json:"subject"`
	Description  *string           `json:"description"`
	PassingScore *int              `json:"passing_score" validate:"omitempty,min=0,max=100"`
	Duration     *string           `json:"duration"`
	Difficulty   *string           `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Sections     *[]models.Section `json:"sections" validate:"omitempty,dive"`
}

// QuizAnswerRequest records the learner's answer to a single question.
type QuizAnswerRequest struct {
	MarkedAnswer string `json:"marked_answer" validate:"required"`
}

// QuizResponse is the serialized quiz with its derived progress attached.
type QuizResponse struct {
	ID             uint                  `json:"id"`
	Title          string                `json:"title"`
	Subject        string                `json:"subject"`
	Description    string                `json:"description"`
	TotalQuestions *int                  `json:"total_questions"`
	PassingScore   *int                  `json:"passing_score"`
	Duration       string                `json:"duration"`
	Difficulty     string                `json:"difficulty"`
	Score          *int                  `json:"score"`
	Passed         bool                  `json:"passed"`
	Sections       []models.Section      `json:"sections"`
	CreatedAt      time.Time             `json:"created_at"`
	Progress       progress.QuizProgress `json:"progress"`
}

// NewQuizResponse converts a model into a DTO, computing progress from the
// section tree.
func NewQuizResponse(model models.Quiz) QuizResponse {
	return QuizResponse{
		ID:             model.ID,
		Title:          model.Title,
		Subject:        model.Subject,
		Description:    model.Description,
		TotalQuestions: model.TotalQuestions,
		PassingScore:   model.PassingScore,
		Duration:       model.Duration,
		Difficulty:     model.Difficulty,
		Score:          model.Score,
		Passed:         model.Passed,
		Sections:       model.Sections,
		CreatedAt:      model.CreatedAt,
		Progress:       progress.ForQuiz(model),
	}
}

// NewQuizResponseSlice converts a slice of models into DTOs.
func NewQuizResponseSlice(quizzes []models.Quiz) []QuizResponse {
	responses := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizResponse(quiz))
	}

	return responses
}
