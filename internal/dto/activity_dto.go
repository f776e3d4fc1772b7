package dto

import (
	"time"

	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
)

// ActivityCreateRequest describes the payload for registering a new activity.
type ActivityCreateRequest struct {
	Type             string `json:"type" validate:"required,oneof=COURSE QUIZ ASSIGNMENT DISCUSSION"`
	RefID            uint   `json:"ref_id" validate:"required"`
	Title            string `json:"title" validate:"required,min=3"`
	Description      string `json:"description"`
	Subject          string `json:"subject"`
	ThumbnailURL     string `json:"thumbnail_url" validate:"omitempty,url"`
	InstructorName   string `json:"instructor_name"`
	Duration         string `json:"duration"`
	Status           string `json:"status" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED UPCOMING"`
	Rating           *int   `json:"rating" validate:"omitempty,min=0,max=5"`
	StudentsEnrolled *int   `json:"students_enrolled" validate:"omitempty,min=0"`
	Purchased        *bool  `json:"purchased"`
	IsFavourite      *bool  `json:"is_favourite"`
}

// ActivityUpdateRequest describes a partial update to an activity row.
type ActivityUpdateRequest struct {
	Title            *string `json:"title" validate:"omitempty,min=3"`
	Description      *string `json:"description"`
	Subject          *string `json:"subject"`
	ThumbnailURL     *string `json:"thumbnail_url" validate:"omitempty,url"`
	InstructorName   *string `json:"instructor_name"`
	Duration         *string `json:"duration"`
	Rating           *int    `json:"rating" validate:"omitempty,min=0,max=5"`
	StudentsEnrolled *int    `json:"students_enrolled" validate:"omitempty,min=0"`
	Purchased        *bool   `json:"purchased"`
}

// ActivityStatusUpdateRequest sets the learner-facing lifecycle state.
type ActivityStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=NOT_STARTED IN_PROGRESS COMPLETED UPCOMING"`
}

// ActivityResponse is the registry row plus its derived progress summary.
// Progress holds the calculator output matching the activity type, or null
// when the referenced entity is missing or the type has no completion concept.
type ActivityResponse struct {
	ID               uint                  `json:"id"`
	Type             models.ActivityType   `json:"type"`
	RefID            uint                  `json:"ref_id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Subject          string                `json:"subject"`
	ThumbnailURL     string                `json:"thumbnail_url"`
	InstructorName   string                `json:"instructor_name"`
	Duration         string                `json:"duration"`
	Status           models.ActivityStatus `json:"status"`
	Rating           *int                  `json:"rating"`
	StudentsEnrolled *int                  `json:"students_enrolled"`
	Purchased        bool                  `json:"purchased"`
	IsFavourite      bool                  `json:"is_favourite"`
	CreatedAt        time.Time             `json:"created_at"`
	Progress         any                   `json:"progress"`
}

// NewActivityResponse converts a model and its computed progress into a DTO.
func NewActivityResponse(model models.Activity, activityProgress progress.ActivityProgress) ActivityResponse {
	return ActivityResponse{
		ID:               model.ID,
		Type:             model.Type,
		RefID:            model.RefID,
		Title:            model.Title,
		Description:      model.Description,
		Subject:          model.Subject,
		ThumbnailURL:     model.ThumbnailURL,
		InstructorName:   model.InstructorName,
		Duration:         model.Duration,
		Status:           model.Status,
		Rating:           model.Rating,
		StudentsEnrolled: model.StudentsEnrolled,
		Purchased:        model.Purchased,
		IsFavourite:      model.IsFavourite,
		CreatedAt:        model.CreatedAt,
		Progress:         activityProgress.Value(),
	}
}
