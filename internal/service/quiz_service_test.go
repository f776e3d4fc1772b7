package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/repository"
)

func newQuizFixture(t *testing.T) QuizService {
	t.Helper()
	db := setupServiceDB(t, &models.Quiz{})
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewQuizService(repository.NewQuizRepository(db), validate, zerolog.Nop())
}

func createSampleQuiz(t *testing.T, svc QuizService, passingScore *int) dto.QuizResponse {
	t.Helper()

	created, err := svc.Create(context.Background(), dto.QuizCreateRequest{
		Title:        "Algorithms Check",
		Subject:      "Computer Science",
		PassingScore: passingScore,
		Sections: []models.Section{
			{ID: 1, Questions: []models.Question{
				{ID: 1, Question: "Big-O of binary search?", Type: models.QuestionTypeMCQ, CorrectAnswer: "O(log n)"},
				{ID: 2, Question: "Quicksort is stable", Type: models.QuestionTypeTrueFalse, CorrectAnswer: "false"},
			}},
			{ID: 2, Questions: []models.Question{
				{ID: 3, Question: "Name a balanced tree", Type: models.QuestionTypeShortAnswer, CorrectAnswer: "AVL"},
			}},
		},
	})
	require.NoError(t, err)
	return created
}

func TestQuizServiceSubmitAnswerGradesImmediately(t *testing.T) {
	svc := newQuizFixture(t)
	ctx := context.Background()
	quiz := createSampleQuiz(t, svc, nil)

	answered, err := svc.SubmitAnswer(ctx, quiz.ID, 1, 1, dto.QuizAnswerRequest{MarkedAnswer: "O(log n)"})
	require.NoError(t, err)
	require.Equal(t, 1, answered.Progress.AnsweredQuestions)
	require.Equal(t, 1, answered.Progress.CorrectAnswers)
	require.Equal(t, 33, answered.Progress.PercentComplete)

	wrong, err := svc.SubmitAnswer(ctx, quiz.ID, 1, 2, dto.QuizAnswerRequest{MarkedAnswer: "true"})
	require.NoError(t, err)
	require.Equal(t, 2, wrong.Progress.AnsweredQuestions)
	require.Equal(t, 1, wrong.Progress.CorrectAnswers)
	require.Equal(t, 33, wrong.Progress.Score)
}

func TestQuizServiceSubmitAnswerUnknownTargets(t *testing.T) {
	svc := newQuizFixture(t)
	ctx := context.Background()
	quiz := createSampleQuiz(t, svc, nil)

	_, err := svc.SubmitAnswer(ctx, quiz.ID, 9, 1, dto.QuizAnswerRequest{MarkedAnswer: "x"})
	require.ErrorIs(t, err, ErrSectionNotFound)

	_, err = svc.SubmitAnswer(ctx, quiz.ID, 1, 9, dto.QuizAnswerRequest{MarkedAnswer: "x"})
	require.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = svc.SubmitAnswer(ctx, 999, 1, 1, dto.QuizAnswerRequest{MarkedAnswer: "x"})
	require.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizServiceFinalizeScorePersistsResult(t *testing.T) {
	svc := newQuizFixture(t)
	ctx := context.Background()
	passing := 60
	quiz := createSampleQuiz(t, svc, &passing)

	_, err := svc.SubmitAnswer(ctx, quiz.ID, 1, 1, dto.QuizAnswerRequest{MarkedAnswer: "O(log n)"})
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, quiz.ID, 1, 2, dto.QuizAnswerRequest{MarkedAnswer: "false"})
	require.NoError(t, err)

	finalized, err := svc.FinalizeScore(ctx, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, finalized.Score)
	require.Equal(t, 67, *finalized.Score)
	require.True(t, finalized.Passed)

	fetched, err := svc.Get(ctx, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Score)
	require.Equal(t, 67, *fetched.Score)
	require.True(t, fetched.Passed)
}

func TestQuizServiceFinalizeScoreBelowThreshold(t *testing.T) {
	svc := newQuizFixture(t)
	ctx := context.Background()
	passing := 80
	quiz := createSampleQuiz(t, svc, &passing)

	_, err := svc.SubmitAnswer(ctx, quiz.ID, 2, 3, dto.QuizAnswerRequest{MarkedAnswer: "AVL"})
	require.NoError(t, err)

	finalized, err := svc.FinalizeScore(ctx, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, finalized.Score)
	require.Equal(t, 33, *finalized.Score)
	require.False(t, finalized.Passed)
}
