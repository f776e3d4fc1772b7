package dto

import (
	"time"

	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
type AssignmentCreateRequest struct {
	Title              string                     `json:"title" validate:"required,min=3"`
	Subject            string                     `json:"subject"`
	Description        string                     `json:"description"`
	Instructions       string                     `json:"instructions"`
	TotalMarks         *int                       `json:"total_marks" validate:"omitempty,min=0"`
	SubmissionDeadline string                     `json:"submission_deadline" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Resources          []string                   `json:"resources"`
	Sections           []models.AssignmentSection `json:"sections" validate:"omitempty,dive"`
}

// AssignmentUpdateRequest describes a partial update to an assignment.
type AssignmentUpdateRequest struct {
	Title              *string                     `json:"title" validate:"omitempty,min=3"`
	Subject            *string                     `json:"subject"`
	Description        *string                     `json:"description"`
	Instructions       *string                     `json:"instructions"`
	TotalMarks         *int                        `json:"total_marks" validate:"omitempty,min=0"`
	SubmissionDeadline *string                     `json:"submission_deadline" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Resources          *[]string                   `json:"resources"`
	Sections           *[]models.AssignmentSection `json:"sections" validate:"omitempty,dive"`
}

// AssignmentSubmitRequest records a submission link for an assignment.
type AssignmentSubmitRequest struct {
	SubmissionLink string `json:"submission_link" validate:"required,url"`
}

// AssignmentGradeRequest records the grade and optional feedback.
type AssignmentGradeRequest struct {
	Grade    string `json:"grade" validate:"required"`
	Feedback string `json:"feedback"`
}

// AssignmentResponse is the serialized assignment with its derived progress
// attached. The progress is recomputed against the request time on every read.
type AssignmentResponse struct {
	ID                 uint                        `json:"id"`
	Title              string                      `json:"title"`
	Subject            string                      `json:"subject"`
	Description        string                      `json:"description"`
	Instructions       string                      `json:"instructions"`
	TotalMarks         *int                        `json:"total_marks"`
	SubmissionDeadline *time.Time                  `json:"submission_deadline"`
	SubmissionLink     string                      `json:"submission_link"`
	Submitted          bool                        `json:"submitted"`
	Graded             bool                        `json:"graded"`
	Grade              string                      `json:"grade"`
	Feedback           string                      `json:"feedback"`
	Resources          []string                    `json:"resources"`
	Sections           []models.AssignmentSection  `json:"sections"`
	CreatedAt          time.Time                   `json:"created_at"`
	Progress           progress.AssignmentProgress `json:"progress"`
}

// NewAssignmentResponse converts a model into a DTO, deriving progress at the
// supplied reference time.
func NewAssignmentResponse(model models.Assignment, now time.Time) AssignmentResponse {
	return AssignmentResponse{
		ID:                 model.ID,
		Title:              model.Title,
		Subject:            model.Subject,
		Description:        model.Description,
		Instructions:       model.Instructions,
		TotalMarks:         model.TotalMarks,
		SubmissionDeadline: model.SubmissionDeadline,
		SubmissionLink:     model.SubmissionLink,
		Submitted:          model.Submitted,
		Graded:             model.Graded,
		Grade:              model.Grade,
		Feedback:           model.Feedback,
		Resources:          model.Resources,
		Sections:           model.Sections,
		CreatedAt:          model.CreatedAt,
		Progress:           progress.ForAssignment(model, now),
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment, now time.Time) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment, now))
	}

	return responses
}
