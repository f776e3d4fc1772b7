package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
	"github.com/noah-isme/lentera-api/internal/repository"
)

func newAssignmentFixture(t *testing.T) AssignmentService {
	t.Helper()
	db := setupServiceDB(t, &models.Assignment{})
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAssignmentService(repository.NewAssignmentRepository(db), validate, zerolog.Nop())
}

func TestAssignmentServiceCreateParsesDeadline(t *testing.T) {
	svc := newAssignmentFixture(t)
	deadline := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)

	created, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:              "Essay on Compilers",
		Subject:            "Computer Science",
		SubmissionDeadline: deadline,
	})
	require.NoError(t, err)
	require.NotNil(t, created.SubmissionDeadline)
	require.Equal(t, progress.StatusNotStarted, created.Progress.Status)
	require.NotNil(t, created.Progress.DaysUntilDue)
	require.Equal(t, 3, *created.Progress.DaysUntilDue)
}

func TestAssignmentServiceCreateRejectsMalformedDeadline(t *testing.T) {
	svc := newAssignmentFixture(t)

	_, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:              "Essay on Compilers",
		SubmissionDeadline: "next tuesday",
	})
	require.Error(t, err)
}

func TestAssignmentServiceSubmitAndGrade(t *testing.T) {
	svc := newAssignmentFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.AssignmentCreateRequest{Title: "Essay on Compilers"})
	require.NoError(t, err)
	require.Equal(t, progress.StatusNotStarted, created.Progress.Status)

	submitted, err := svc.Submit(ctx, created.ID, dto.AssignmentSubmitRequest{
		SubmissionLink: "https://drive.example.com/essay.pdf",
	})
	require.NoError(t, err)
	require.True(t, submitted.Submitted)
	require.Equal(t, progress.StatusSubmitted, submitted.Progress.Status)

	graded, err := svc.Grade(ctx, created.ID, dto.AssignmentGradeRequest{Grade: "A", Feedback: "Solid work"})
	require.NoError(t, err)
	require.True(t, graded.Graded)
	require.Equal(t, "A", graded.Grade)
	require.Equal(t, progress.StatusGraded, graded.Progress.Status)
}

func TestAssignmentServicePastDeadlineIsOverdue(t *testing.T) {
	svc := newAssignmentFixture(t)
	ctx := context.Background()
	deadline := time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339)

	created, err := svc.Create(ctx, dto.AssignmentCreateRequest{
		Title:              "Late Lab Report",
		SubmissionDeadline: deadline,
	})
	require.NoError(t, err)
	require.True(t, created.Progress.Overdue)
	require.Equal(t, progress.StatusOverdue, created.Progress.Status)
	require.NotNil(t, created.Progress.DaysUntilDue)
	require.Equal(t, -2, *created.Progress.DaysUntilDue)
}

func TestAssignmentServiceMissingRows(t *testing.T) {
	svc := newAssignmentFixture(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 5)
	require.ErrorIs(t, err, ErrAssignmentNotFound)

	_, err = svc.Submit(ctx, 5, dto.AssignmentSubmitRequest{SubmissionLink: "https://example.com/x"})
	require.ErrorIs(t, err, ErrAssignmentNotFound)

	require.ErrorIs(t, svc.Delete(ctx, 5), ErrAssignmentNotFound)
}
