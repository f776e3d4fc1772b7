package progress

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/lentera-api/internal/models"
)

// ActivityProgress is the tagged union attached to activity responses. At
// most one branch is set, matching the activity type; discussions, missing
// entities and unrecognized tags carry no branch at all. Values are built
// fresh on every read and never persisted.
type ActivityProgress struct {
	Type       models.ActivityType
	Course     *CourseProgress
	Quiz       *QuizProgress
	Assignment *AssignmentProgress
}

// Value returns the active branch, or nil when no progress applies.
func (p ActivityProgress) Value() any {
	switch {
	case p.Course != nil:
		return p.Course
	case p.Quiz != nil:
		return p.Quiz
	case p.Assignment != nil:
		return p.Assignment
	default:
		return nil
	}
}

// MarshalJSON serializes the union as {"type": ..., "progress": ...} with an
// explicit null when no branch is set.
func (p ActivityProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     models.ActivityType `json:"type"`
		Progress any                 `json:"progress"`
	}{Type: p.Type, Progress: p.Value()})
}

// ForActivity routes a resolved entity to the calculator matching the
// activity type. A nil or mismatched entity yields empty progress for any
// type rather than an error: a missing referenced row is the upstream
// caller's concern, not a computation failure. Unrecognized tags fall through
// to the no-progress branch; callers that want a diagnostic should check
// activityType.Valid() at their boundary.
func ForActivity(activityType models.ActivityType, entity any, now time.Time) ActivityProgress {
	result := ActivityProgress{Type: activityType}
	if entity == nil {
		return result
	}

	switch activityType {
	case models.ActivityTypeCourse:
		if course, ok := asCourse(entity); ok {
			computed := ForCourse(course)
			result.Course = &computed
		}
	case models.ActivityTypeQuiz:
		if quiz, ok := asQuiz(entity); ok {
			computed := ForQuiz(quiz)
			result.Quiz = &computed
		}
	case models.ActivityTypeAssignment:
		if assignment, ok := asAssignment(entity); ok {
			computed := ForAssignment(assignment, now)
			result.Assignment = &computed
		}
	case models.ActivityTypeDiscussion:
		// discussions have no completion concept
	}

	return result
}

func asCourse(entity any) (models.Course, bool) {
	switch v := entity.(type) {
	case models.Course:
		return v, true
	case *models.Course:
		if v != nil {
			return *v, true
		}
	}
	return models.Course{}, false
}

func asQuiz(entity any) (models.Quiz, bool) {
	switch v := entity.(type) {
	case models.Quiz:
		return v, true
	case *models.Quiz:
		if v != nil {
			return *v, true
		}
	}
	return models.Quiz{}, false
}

func asAssignment(entity any) (models.Assignment, bool) {
	switch v := entity.(type) {
	case models.Assignment:
		return v, true
	case *models.Assignment:
		if v != nil {
			return *v, true
		}
	}
	return models.Assignment{}, false
}
