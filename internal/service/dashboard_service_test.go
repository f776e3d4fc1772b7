package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/repository"
)

func TestDashboardServiceAggregatesRegistry(t *testing.T) {
	db := setupServiceDB(t, &models.Activity{}, &models.Assignment{})
	ctx := context.Background()

	activities := []models.Activity{
		{Type: models.ActivityTypeCourse, RefID: 1, Title: "Calculus", Status: models.ActivityStatusInProgress, IsFavourite: true},
		{Type: models.ActivityTypeQuiz, RefID: 1, Title: "Derivatives Quiz", Status: models.ActivityStatusCompleted},
		{Type: models.ActivityTypeAssignment, RefID: 1, Title: "Problem Set", Status: models.ActivityStatusNotStarted},
		{Type: models.ActivityTypeDiscussion, RefID: 1, Title: "Office Hours", Status: models.ActivityStatusUpcoming},
	}
	require.NoError(t, db.Create(&activities).Error)

	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(120 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)
	assignments := []models.Assignment{
		{Title: "Problem Set", SubmissionDeadline: &soon},
		{Title: "Final Project", SubmissionDeadline: &later},
		{Title: "Old Homework", SubmissionDeadline: &past},
		{Title: "Submitted Essay", SubmissionDeadline: &soon, Submitted: true},
	}
	require.NoError(t, db.Create(&assignments).Error)

	svc := NewDashboardService(
		repository.NewActivityRepository(db),
		repository.NewAssignmentRepository(db),
		nil,
		time.Minute,
		zerolog.Nop(),
	)

	dashboard, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, dashboard.TotalActivities)
	require.Equal(t, 1, dashboard.Favourites)
	require.Equal(t, 1, dashboard.ByStatus.InProgress)
	require.Equal(t, 1, dashboard.ByStatus.Completed)
	require.Equal(t, 1, dashboard.ByType.Courses)
	require.Equal(t, 1, dashboard.ByType.Discussions)

	require.Len(t, dashboard.UpcomingDeadlines, 2)
	require.Equal(t, "Problem Set", dashboard.UpcomingDeadlines[0].Title)
	require.Equal(t, "Final Project", dashboard.UpcomingDeadlines[1].Title)
	require.Equal(t, 1, dashboard.UpcomingDeadlines[0].DaysUntilDue)
	require.Equal(t, 5, dashboard.UpcomingDeadlines[1].DaysUntilDue)
}

func TestDashboardServiceCachesSummary(t *testing.T) {
	db := setupServiceDB(t, &models.Activity{}, &models.Assignment{})
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Activity{
		Type:  models.ActivityTypeCourse,
		RefID: 1,
		Title: "Calculus",
	}).Error)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewDashboardService(
		repository.NewActivityRepository(db),
		repository.NewAssignmentRepository(db),
		redisClient,
		time.Minute,
		zerolog.Nop(),
	)

	first, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalActivities)

	// second read must come from the cache, not the new row
	require.NoError(t, db.Create(&models.Activity{
		Type:  models.ActivityTypeQuiz,
		RefID: 1,
		Title: "Limits Quiz",
	}).Error)

	second, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, second.TotalActivities)

	mr.FastForward(2 * time.Minute)

	third, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, third.TotalActivities)
}
