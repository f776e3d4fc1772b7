package dto

import (
	"time"

	"github.com/noah-isme/lentera-api/internal/models"
)

// DiscussionCreateRequest describes the payload for opening a discussion.
type DiscussionCreateRequest struct {
	Topic       string `json:"topic" validate:"required,min=3"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// DiscussionUpdateRequest describes a partial update to a discussion.
type DiscussionUpdateRequest struct {
	Topic       *string `json:"topic" validate:"omitempty,min=3"`
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
}

// DiscussionPostRequest adds a post or reply to a thread. Content is
// sanitized server-side before being stored.
type DiscussionPostRequest struct {
	AuthorName      string `json:"author_name" validate:"required"`
	AuthorAvatarURL string `json:"author_avatar_url" validate:"omitempty,url"`
	Content         string `json:"content" validate:"required"`
}

// DiscussionResponse is the serialized discussion thread. Discussions carry
// no progress summary.
type DiscussionResponse struct {
	ID             uint          `json:"id"`
	Topic          string        `json:"topic"`
	Subject        string        `json:"subject"`
	Description    string        `json:"description"`
	Participants   int           `json:"participants"`
	RepliesCount   int           `json:"replies_count"`
	LastActivityAt *time.Time    `json:"last_activity_at"`
	Posts          []models.Post `json:"posts"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewDiscussionResponse converts a model into a DTO.
func NewDiscussionResponse(model models.Discussion) DiscussionResponse {
	return DiscussionResponse{
		ID:             model.ID,
		Topic:          model.Topic,
		Subject:        model.Subject,
		Description:    model.Description,
		Participants:   model.Participants,
		RepliesCount:   model.RepliesCount,
		LastActivityAt: model.LastActivityAt,
		Posts:          model.Posts,
		CreatedAt:      model.CreatedAt,
	}
}

// NewDiscussionResponseSlice converts a slice of models into DTOs.
func NewDiscussionResponseSlice(discussions []models.Discussion) []DiscussionResponse {
	responses := make([]DiscussionResponse, 0, len(discussions))
	for _, discussion := range discussions {
		responses = append(responses, NewDiscussionResponse(discussion))
	}

	return responses
}
