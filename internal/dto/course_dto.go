package dto

import (
	"time"

	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
)

// CourseCreateRequest describes the payload for creating a course. The lesson
// tree is accepted in its storage shape.
type CourseCreateRequest struct {
	Title               string          `json:"title" validate:"required,min=3"`
	Subject             string          `json:"subject"`
	Overview            string          `json:"overview"`
	InstructorName      string          `json:"instructor_name"`
	InstructorBio       string          `json:"instructor_bio"`
	InstructorAvatarURL string          `json:"instructor_avatar_url" validate:"omitempty,url"`
	ThumbnailURL        string          `json:"thumbnail_url" validate:"omitempty,url"`
	TrailerURL          string          `json:"trailer_url" validate:"omitempty,url"`
	Duration            string          `json:"duration"`
	Level               string          `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Category            string          `json:"category"`
	Tags                []string        `json:"tags"`
	Requirements        []string        `json:"requirements"`
	LearningOutcomes    []string        `json:"learning_outcomes"`
	Rating              *int            `json:"rating" validate:"omitempty,min=0,max=5"`
	Lessons             []models.Lesson `json:"lessons" validate:"omitempty,dive"`
}

// CourseUpdateRequest describes a partial update to a course.
type CourseUpdateRequest struct {
	Title            *string          `json:"title" validate:"omitempty,min=3"`
	Subject          *string          `json:"subject"`
	Overview         *string          `json:"overview"`
	InstructorName   *string          `json:"instructor_name"`
	ThumbnailURL     *string          `json:"thumbnail_url" validate:"omitempty,url"`
	Duration         *string          `json:"duration"`
	Level            *string          `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Category         *string          `json:"category"`
	Tags             *[]string        `json:"tags"`
	Requirements     *[]string        `json:"requirements"`
	LearningOutcomes *[]string        `json:"learning_outcomes"`
	Rating           *int             `json:"rating" validate:"omitempty,min=0,max=5"`
	Lessons          *[]models.Lesson `json:"lessons" validate:"omitempty,dive"`
}

// CourseResponse is the serialized course with its derived progress attached.
type CourseResponse struct {
	ID                  uint                    `json:"id"`
	Title               string                  `json:"title"`
	Subject             string                  `json:"subject"`
	Overview            string                  `json:"overview"`
	InstructorName      string                  `json:"instructor_name"`
	InstructorBio       string                  `json:"instructor_bio"`
	InstructorAvatarURL string                  `json:"instructor_avatar_url"`
	ThumbnailURL        string                  `json:"thumbnail_url"`
	TrailerURL          string                  `json:"trailer_url"`
	Duration            string                  `json:"duration"`
	Level               string                  `json:"level"`
	Category            string                  `json:"category"`
	Tags                []string                `json:"tags"`
	Requirements        []string                `json:"requirements"`
	LearningOutcomes    []string                `json:"learning_outcomes"`
	Rating              *int                    `json:"rating"`
	TotalLessons        int                     `json:"total_lessons"`
	TotalChapters       int                     `json:"total_chapters"`
	Lessons             []models.Lesson         `json:"lessons"`
	CreatedAt           time.Time               `json:"created_at"`
	Progress            progress.CourseProgress `json:"progress"`
}

// NewCourseResponse converts a model into a DTO, computing progress from the
// lesson tree.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:                  model.ID,
		Title:               model.Title,
		Subject:             model.Subject,
		Overview:            model.Overview,
		InstructorName:      model.InstructorName,
		InstructorBio:       model.InstructorBio,
		InstructorAvatarURL: model.InstructorAvatarURL,
		ThumbnailURL:        model.ThumbnailURL,
		TrailerURL:          model.TrailerURL,
		Duration:            model.Duration,
		Level:               model.Level,
		Category:            model.Category,
		Tags:                model.Tags,
		Requirements:        model.Requirements,
		LearningOutcomes:    model.LearningOutcomes,
		Rating:              model.Rating,
		TotalLessons:        model.TotalLessons,
		TotalChapters:       model.TotalChapters,
		Lessons:             model.Lessons,
		CreatedAt:           model.CreatedAt,
		Progress:            progress.ForCourse(model),
	}
}

// NewCourseResponseSlice converts a slice of models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}

	return responses
}
