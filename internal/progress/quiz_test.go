package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/lentera-api/internal/models"
)

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func quizWithSections(passingScore *int, sections ...models.Section) models.Quiz {
	return models.Quiz{
		Title:        "Neural Network Basics",
		PassingScore: passingScore,
		Sections:     datatypes.NewJSONSlice(sections),
	}
}

func TestForQuizEmptySectionsYieldsZeroProgress(t *testing.T) {
	result := ForQuiz(models.Quiz{Title: "Empty"})
	require.Equal(t, QuizProgress{}, result)

	result = ForQuiz(quizWithSections(intPtr(60)))
	require.Equal(t, 0, result.Score)
	require.Equal(t, 0, result.PercentComplete)
	require.False(t, result.Passed)
}

func TestForQuizScoresAgainstTotalQuestions(t *testing.T) {
	// 3 questions, 2 answered, 1 correct: completion 67, score 33. The score
	// divides by the total question count, so the unanswered question counts
	// as wrong rather than being excluded.
	quiz := quizWithSections(intPtr(60),
		models.Section{
			ID: 1,
			Questions: []models.Question{
				{ID: 1, MarkedAnswer: "A", IsCorrect: boolPtr(true)},
				{ID: 2, MarkedAnswer: "C", IsCorrect: boolPtr(false)},
			},
		},
		models.Section{
			ID:        2,
			Questions: []models.Question{{ID: 3}},
		},
	)

	result := ForQuiz(quiz)
	require.Equal(t, 3, result.TotalQuestions)
	require.Equal(t, 2, result.AnsweredQuestions)
	require.Equal(t, 1, result.CorrectAnswers)
	require.Equal(t, 67, result.PercentComplete)
	require.Equal(t, 33, result.Score)
	require.False(t, result.Passed)

	// The ratio among answered questions alone would be 50; the reported
	// score must stay below it while unanswered questions remain.
	require.Less(t, result.Score, result.CorrectAnswers*100/result.AnsweredQuestions)
}

func TestForQuizPassedRequiresPassingScore(t *testing.T) {
	sections := []models.Section{{
		ID: 1,
		Questions: []models.Question{
			{ID: 1, MarkedAnswer: "A", IsCorrect: boolPtr(true)},
			{ID: 2, MarkedAnswer: "B", IsCorrect: boolPtr(true)},
		},
	}}

	// Perfect score but no passing threshold configured: not passed.
	result := ForQuiz(quizWithSections(nil, sections...))
	require.Equal(t, 100, result.Score)
	require.False(t, result.Passed)

	result = ForQuiz(quizWithSections(intPtr(80), sections...))
	require.True(t, result.Passed)

	result = ForQuiz(quizWithSections(intPtr(100), sections...))
	require.True(t, result.Passed, "score meeting the threshold exactly passes")
}

func TestForQuizIgnoresCorrectFlagWithoutAnswer(t *testing.T) {
	// The calculator trusts IsCorrect only for answered questions.
	quiz := quizWithSections(nil, models.Section{
		ID:        1,
		Questions: []models.Question{{ID: 1, IsCorrect: boolPtr(true)}},
	})

	result := ForQuiz(quiz)
	require.Equal(t, 1, result.TotalQuestions)
	require.Equal(t, 0, result.AnsweredQuestions)
	require.Equal(t, 0, result.CorrectAnswers)
}

func TestForQuizInvariants(t *testing.T) {
	quiz := quizWithSections(intPtr(50),
		models.Section{ID: 1, Questions: []models.Question{
			{ID: 1, MarkedAnswer: "A", IsCorrect: boolPtr(true)},
			{ID: 2, MarkedAnswer: "B", IsCorrect: boolPtr(false)},
			{ID: 3},
			{ID: 4, MarkedAnswer: "D", IsCorrect: boolPtr(true)},
		}},
	)

	result := ForQuiz(quiz)
	require.LessOrEqual(t, result.AnsweredQuestions, result.TotalQuestions)
	require.LessOrEqual(t, result.CorrectAnswers, result.AnsweredQuestions)
	require.GreaterOrEqual(t, result.Score, 0)
	require.LessOrEqual(t, result.Score, 100)
	require.GreaterOrEqual(t, result.PercentComplete, 0)
	require.LessOrEqual(t, result.PercentComplete, 100)

	require.Equal(t, result, ForQuiz(quiz), "same input twice must yield identical output")
}
