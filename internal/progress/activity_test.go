package progress

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/lentera-api/internal/models"
)

func TestForActivityDispatchesByType(t *testing.T) {
	course := courseWithLessons(models.Lesson{
		ID:       1,
		Chapters: []models.Chapter{{ID: 1, Completed: true}, {ID: 2}},
	})

	result := ForActivity(models.ActivityTypeCourse, course, frozenNow)
	require.Equal(t, models.ActivityTypeCourse, result.Type)
	require.NotNil(t, result.Course)
	require.Nil(t, result.Quiz)
	require.Nil(t, result.Assignment)
	require.Equal(t, 50, result.Course.PercentComplete)

	quiz := quizWithSections(intPtr(60), models.Section{
		ID:        1,
		Questions: []models.Question{{ID: 1, MarkedAnswer: "A", IsCorrect: boolPtr(true)}},
	})
	result = ForActivity(models.ActivityTypeQuiz, &quiz, frozenNow)
	require.NotNil(t, result.Quiz)
	require.True(t, result.Quiz.Passed)

	assignment := models.Assignment{Submitted: true}
	result = ForActivity(models.ActivityTypeAssignment, assignment, frozenNow)
	require.NotNil(t, result.Assignment)
	require.Equal(t, StatusSubmitted, result.Assignment.Status)
}

func TestForActivityDiscussionHasNoProgress(t *testing.T) {
	discussion := models.Discussion{
		Topic: "Study group",
		Posts: datatypes.NewJSONSlice([]models.Post{{ID: 1, Content: "hello"}}),
	}

	result := ForActivity(models.ActivityTypeDiscussion, discussion, frozenNow)
	require.Equal(t, models.ActivityTypeDiscussion, result.Type)
	require.Nil(t, result.Value())
}

func TestForActivityNilEntity(t *testing.T) {
	for _, activityType := range []models.ActivityType{
		models.ActivityTypeCourse,
		models.ActivityTypeQuiz,
		models.ActivityTypeAssignment,
		models.ActivityTypeDiscussion,
	} {
		result := ForActivity(activityType, nil, frozenNow)
		require.Equal(t, activityType, result.Type)
		require.Nil(t, result.Value(), "missing entity must yield no progress for %s", activityType)
	}

	var course *models.Course
	result := ForActivity(models.ActivityTypeCourse, course, frozenNow)
	require.Nil(t, result.Value(), "typed nil pointer must be treated as missing")
}

func TestForActivityUnknownTypeFallsThrough(t *testing.T) {
	result := ForActivity(models.ActivityType("WEBINAR"), models.Course{}, frozenNow)
	require.Nil(t, result.Value())
}

func TestForActivityMismatchedEntity(t *testing.T) {
	// A course tag pointing at a quiz row: no progress, no panic.
	result := ForActivity(models.ActivityTypeCourse, models.Quiz{}, frozenNow)
	require.Nil(t, result.Value())
}

func TestActivityProgressMarshalsTaggedUnion(t *testing.T) {
	assignment := models.Assignment{
		SubmissionDeadline: timePtr(frozenNow.Add(-24 * time.Hour)),
	}

	payload, err := json.Marshal(ForActivity(models.ActivityTypeAssignment, assignment, frozenNow))
	require.NoError(t, err)

	var decoded struct {
		Type     string          `json:"type"`
		Progress json.RawMessage `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Equal(t, "ASSIGNMENT", decoded.Type)
	require.JSONEq(t, `{"submitted":false,"graded":false,"overdue":true,"daysUntilDue":-1,"status":"overdue"}`, string(decoded.Progress))

	payload, err = json.Marshal(ForActivity(models.ActivityTypeDiscussion, models.Discussion{}, frozenNow))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"DISCUSSION","progress":null}`, string(payload))
}
