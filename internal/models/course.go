package models

import (
	"time"

	"gorm.io/datatypes"
)

// Chapter is a single unit of content inside a lesson. Chapters track their
// own completion flag independently of the owning lesson.
type Chapter struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Resources   []string `json:"resources,omitempty"`
	Completed   bool     `json:"completed"`
}

// Lesson groups an ordered set of chapters.
type Lesson struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Completed   bool      `json:"completed"`
	OrderIndex  int       `json:"order_index"`
	VideoURL    string    `json:"video_url,omitempty"`
	Chapters    []Chapter `json:"chapters"`
}

// Course is a self-paced course with its lesson tree stored as a JSON column.
type Course struct {
	ID                  uint                        `gorm:"primaryKey" json:"id"`
	Title               string                      `gorm:"type:text;not null" json:"title"`
	Subject             string                      `gorm:"type:text;index" json:"subject"`
	Overview            string                      `gorm:"type:text" json:"overview"`
	InstructorName      string                      `gorm:"type:text" json:"instructor_name"`
	InstructorBio       string                      `gorm:"type:text" json:"instructor_bio"`
	InstructorAvatarURL string                      `gorm:"type:text" json:"instructor_avatar_url"`
	ThumbnailURL        string                      `gorm:"type:text" json:"thumbnail_url"`
	TrailerURL          string                      `gorm:"type:text" json:"trailer_url"`
	Duration            string                      `gorm:"size:64" json:"duration"`
	Level               string                      `gorm:"size:32;index" json:"level"`
	Category            string                      `gorm:"type:text" json:"category"`
	Tags                datatypes.JSONSlice[string] `json:"tags"`
	Requirements        datatypes.JSONSlice[string] `json:"requirements"`
	LearningOutcomes    datatypes.JSONSlice[string] `json:"learning_outcomes"`
	Rating              *int                        `json:"rating"`
	TotalLessons        int                         `gorm:"default:0" json:"total_lessons"`
	TotalChapters       int                         `gorm:"default:0" json:"total_chapters"`
	Lessons             datatypes.JSONSlice[Lesson] `json:"lessons"`
	CreatedAt           time.Time                   `json:"created_at"`
}
