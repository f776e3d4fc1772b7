package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/repository"
)

func newSeedFixture(t *testing.T, enabled bool, token string) (SeedService, *gorm.DB) {
	t.Helper()

	db := setupServiceDB(t,
		&models.Activity{},
		&models.Course{},
		&models.Quiz{},
		&models.Assignment{},
		&models.Discussion{},
	)

	svc := NewSeedService(
		repository.NewCourseRepository(db),
		repository.NewQuizRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewDiscussionRepository(db),
		repository.NewActivityRepository(db),
		enabled,
		token,
		zerolog.Nop(),
	)
	return svc, db
}

func TestSeedRejectsWhenDisabled(t *testing.T) {
	svc, _ := newSeedFixture(t, false, "s3cret")

	_, err := svc.Seed(context.Background(), "s3cret", []byte(`{}`))
	require.ErrorIs(t, err, ErrSeedDisabled)

	require.ErrorIs(t, svc.Reset(context.Background(), "s3cret"), ErrSeedDisabled)
}

func TestSeedRejectsBadToken(t *testing.T) {
	svc, _ := newSeedFixture(t, true, "s3cret")

	_, err := svc.Seed(context.Background(), "wrong", []byte(`{}`))
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	// an empty configured token never authorizes anyone
	unconfigured, _ := newSeedFixture(t, true, "")
	_, err = unconfigured.Seed(context.Background(), "", []byte(`{}`))
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedValidatesPayloadShape(t *testing.T) {
	svc, _ := newSeedFixture(t, true, "s3cret")
	ctx := context.Background()

	_, err := svc.Seed(ctx, "s3cret", []byte(`{not json`))
	require.ErrorIs(t, err, ErrSeedInvalidPayload)

	_, err = svc.Seed(ctx, "s3cret", []byte(`{"unknown_table": []}`))
	require.ErrorIs(t, err, ErrSeedInvalidPayload)

	_, err = svc.Seed(ctx, "s3cret", []byte(`{"activities": [{"type": "WEBINAR", "ref_id": 1, "title": "x"}]}`))
	require.ErrorIs(t, err, ErrSeedInvalidPayload)

	_, err = svc.Seed(ctx, "s3cret", []byte(`{"courses": [{"title": "Algebra"}]}`))
	require.ErrorIs(t, err, ErrSeedInvalidPayload)
}

func TestSeedReplacesExistingRows(t *testing.T) {
	svc, db := newSeedFixture(t, true, "s3cret")
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Course{Title: "Stale", Subject: "History"}).Error)
	require.NoError(t, db.Create(&models.Activity{Type: models.ActivityTypeCourse, RefID: 1, Title: "Stale"}).Error)

	payload := []byte(`{
		"courses": [
			{"title": "Algebra", "subject": "Mathematics"},
			{"title": "Mechanics", "subject": "Physics"}
		],
		"quizzes": [{"title": "Derivatives", "subject": "Mathematics"}],
		"activities": [
			{"type": "COURSE", "ref_id": 1, "title": "Algebra"},
			{"type": "QUIZ", "ref_id": 1, "title": "Derivatives", "status": "IN_PROGRESS"}
		]
	}`)

	summary, err := svc.Seed(ctx, "s3cret", payload)
	require.NoError(t, err)
	require.Equal(t, int64(2), summary.Courses)
	require.Equal(t, int64(1), summary.Quizzes)
	require.Equal(t, int64(0), summary.Assignments)
	require.Equal(t, int64(2), summary.Activities)

	var courses []models.Course
	require.NoError(t, db.Order("id ASC").Find(&courses).Error)
	require.Len(t, courses, 2)
	require.Equal(t, "Algebra", courses[0].Title)

	var activities []models.Activity
	require.NoError(t, db.Order("id ASC").Find(&activities).Error)
	require.Len(t, activities, 2)
	require.Equal(t, models.ActivityStatusNotStarted, activities[0].Status)
	require.Equal(t, models.ActivityStatusInProgress, activities[1].Status)
}

func TestResetClearsAllTables(t *testing.T) {
	svc, db := newSeedFixture(t, true, "s3cret")
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Course{Title: "Algebra", Subject: "Mathematics"}).Error)
	require.NoError(t, db.Create(&models.Discussion{Topic: "Office Hours", Subject: "Mathematics"}).Error)

	require.NoError(t, svc.Reset(ctx, "s3cret"))

	var courseCount, discussionCount int64
	require.NoError(t, db.Model(&models.Course{}).Count(&courseCount).Error)
	require.NoError(t, db.Model(&models.Discussion{}).Count(&discussionCount).Error)
	require.Zero(t, courseCount)
	require.Zero(t, discussionCount)
}
