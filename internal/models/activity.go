package models

import "time"

// ActivityType tags the kind of entity an activity registry row points at.
type ActivityType string

const (
	ActivityTypeCourse     ActivityType = "COURSE"
	ActivityTypeQuiz       ActivityType = "QUIZ"
	ActivityTypeAssignment ActivityType = "ASSIGNMENT"
	ActivityTypeDiscussion ActivityType = "DISCUSSION"
)

// Valid reports whether the tag matches one of the persisted enum values.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeCourse, ActivityTypeQuiz, ActivityTypeAssignment, ActivityTypeDiscussion:
		return true
	default:
		return false
	}
}

// ActivityStatus is the learner-facing lifecycle state stored on the registry
// row. It is source data maintained through the API, distinct from the derived
// progress summary computed on every read.
type ActivityStatus string

const (
	ActivityStatusNotStarted ActivityStatus = "NOT_STARTED"
	ActivityStatusInProgress ActivityStatus = "IN_PROGRESS"
	ActivityStatusCompleted  ActivityStatus = "COMPLETED"
	ActivityStatusUpcoming   ActivityStatus = "UPCOMING"
)

// Valid reports whether the status matches one of the persisted enum values.
func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityStatusNotStarted, ActivityStatusInProgress, ActivityStatusCompleted, ActivityStatusUpcoming:
		return true
	default:
		return false
	}
}

// Activity is the registry row uniting courses, quizzes, assignments and
// discussions under one polymorphic listing. RefID points at the underlying
// entity in its own table.
type Activity struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Type             ActivityType   `gorm:"size:16;not null;index" json:"type"`
	RefID            uint           `gorm:"not null" json:"ref_id"`
	Title            string         `gorm:"type:text;not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	Subject          string         `gorm:"type:text;index" json:"subject"`
	ThumbnailURL     string         `gorm:"type:text" json:"thumbnail_url"`
	InstructorName   string         `gorm:"type:text" json:"instructor_name"`
	Duration         string         `gorm:"size:64" json:"duration"`
	Status           ActivityStatus `gorm:"size:16;default:NOT_STARTED" json:"status"`
	Rating           *int           `json:"rating"`
	StudentsEnrolled *int           `json:"students_enrolled"`
	Purchased        bool           `gorm:"default:true" json:"purchased"`
	IsFavourite      bool           `gorm:"default:false" json:"is_favourite"`
	CreatedAt        time.Time      `json:"created_at"`
}
