package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
	"github.com/noah-isme/lentera-api/internal/repository"
)

const dashboardCacheKey = "dashboard:summary"

// maxUpcomingDeadlines caps how many deadlines the dashboard lists.
const maxUpcomingDeadlines = 5

// DashboardService produces the aggregated dashboard summary. The summary is
// built from persisted registry fields and deadlines only; per-entity derived
// progress is computed fresh on entity reads and never enters this cache.
type DashboardService interface {
	GetDashboard(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardService struct {
	activities  repository.ActivityRepository
	assignments repository.AssignmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(activities repository.ActivityRepository, assignments repository.AssignmentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		activities:  activities,
		assignments: assignments,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (dto.DashboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	activities, err := s.activities.List(ctx, repository.ActivityFilter{})
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{})
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	now := s.now()
	response := dto.DashboardResponse{
		TotalActivities:   len(activities),
		UpcomingDeadlines: upcomingDeadlines(assignments, now),
		GeneratedAt:       now.UTC(),
	}

	for _, activity := range activities {
		if activity.IsFavourite {
			response.Favourites++
		}

		switch activity.Status {
		case models.ActivityStatusNotStarted:
			response.ByStatus.NotStarted++
		case models.ActivityStatusInProgress:
			response.ByStatus.InProgress++
		case models.ActivityStatusCompleted:
			response.ByStatus.Completed++
		case models.ActivityStatusUpcoming:
			response.ByStatus.Upcoming++
		}

		switch activity.Type {
		case models.ActivityTypeCourse:
			response.ByType.Courses++
		case models.ActivityTypeQuiz:
			response.ByType.Quizzes++
		case models.ActivityTypeAssignment:
			response.ByType.Assignments++
		case models.ActivityTypeDiscussion:
			response.ByType.Discussions++
		}
	}

	if s.cache != nil {
		payload, marshalErr := json.Marshal(response)
		if marshalErr == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write dashboard cache")
			}
		}
	}

	return response, nil
}

func upcomingDeadlines(assignments []models.Assignment, now time.Time) []dto.UpcomingDeadline {
	deadlines := make([]dto.UpcomingDeadline, 0, maxUpcomingDeadlines)
	for _, assignment := range assignments {
		if assignment.Submitted || assignment.SubmissionDeadline == nil {
			continue
		}
		if !assignment.SubmissionDeadline.After(now) {
			continue
		}

		entry := dto.UpcomingDeadline{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			Subject:      assignment.Subject,
			Deadline:     *assignment.SubmissionDeadline,
		}
		if days := progress.ForAssignment(assignment, now).DaysUntilDue; days != nil {
			entry.DaysUntilDue = *days
		}
		deadlines = append(deadlines, entry)
	}

	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].Deadline.Before(deadlines[j].Deadline)
	})

	if len(deadlines) > maxUpcomingDeadlines {
		deadlines = deadlines[:maxUpcomingDeadlines]
	}

	return deadlines
}
