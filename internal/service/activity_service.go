package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
	"github.com/noah-isme/lentera-api/internal/repository"
)

// ErrActivityNotFound indicates the requested activity does not exist.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityService exposes the polymorphic activity registry use cases. Every
// read resolves the referenced entity and attaches a freshly computed
// progress summary.
type ActivityService interface {
	List(ctx context.Context, filter repository.ActivityFilter) ([]dto.ActivityResponse, error)
	Get(ctx context.Context, id uint) (dto.ActivityResponse, error)
	Create(ctx context.Context, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error)
	Update(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error)
	UpdateStatus(ctx context.Context, id uint, payload dto.ActivityStatusUpdateRequest) (dto.ActivityResponse, error)
	ToggleFavourite(ctx context.Context, id uint) (dto.ActivityResponse, error)
	Delete(ctx context.Context, id uint) error
}

type activityService struct {
	activities  repository.ActivityRepository
	courses     repository.CourseRepository
	quizzes     repository.QuizRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewActivityService builds a new activity service.
func NewActivityService(
	activities repository.ActivityRepository,
	courses repository.CourseRepository,
	quizzes repository.QuizRepository,
	assignments repository.AssignmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) ActivityService {
	return &activityService{
		activities:  activities,
		courses:     courses,
		quizzes:     quizzes,
		assignments: assignments,
		validator:   validate,
		logger:      logger.With().Str("component", "activity_service").Logger(),
		now:         time.Now,
	}
}

func (s *activityService) List(ctx context.Context, filter repository.ActivityFilter) ([]dto.ActivityResponse, error) {
	activities, err := s.activities.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, dto.NewActivityResponse(activity, s.resolveProgress(ctx, activity)))
	}

	return responses, nil
}

func (s *activityService) Get(ctx context.Context, id uint) (dto.ActivityResponse, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}

		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity, s.resolveProgress(ctx, activity)), nil
}

func (s *activityService) Create(ctx context.Context, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	activity := models.Activity{
		Type:             models.ActivityType(payload.Type),
		RefID:            payload.RefID,
		Title:            payload.Title,
		Description:      payload.Description,
		Subject:          payload.Subject,
		ThumbnailURL:     payload.ThumbnailURL,
		InstructorName:   payload.InstructorName,
		Duration:         payload.Duration,
		Status:           models.ActivityStatusNotStarted,
		Rating:           payload.Rating,
		StudentsEnrolled: payload.StudentsEnrolled,
		Purchased:        true,
	}

	if payload.Status != "" {
		activity.Status = models.ActivityStatus(payload.Status)
	}
	if payload.Purchased != nil {
		activity.Purchased = *payload.Purchased
	}
	if payload.IsFavourite != nil {
		activity.IsFavourite = *payload.IsFavourite
	}

	if err := s.activities.Create(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().Uint("activity_id", activity.ID).Str("type", string(activity.Type)).Msg("activity created")

	return dto.NewActivityResponse(activity, s.resolveProgress(ctx, activity)), nil
}

func (s *activityService) Update(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}

		return dto.ActivityResponse{}, err
	}

	if payload.Title != nil {
		activity.Title = *payload.Title
	}
	if payload.Description != nil {
		activity.Description = *payload.Description
	}
	if payload.Subject != nil {
		activity.Subject = *payload.Subject
	}
	if payload.ThumbnailURL != nil {
		activity.ThumbnailURL = *payload.ThumbnailURL
	}
	if payload.InstructorName != nil {
		activity.InstructorName = *payload.InstructorName
	}
	if payload.Duration != nil {
		activity.Duration = *payload.Duration
	}
	if payload.Rating != nil {
		activity.Rating = payload.Rating
	}
	if payload.StudentsEnrolled != nil {
		activity.StudentsEnrolled = payload.StudentsEnrolled
	}
	if payload.Purchased != nil {
		activity.Purchased = *payload.Purchased
	}

	if err := s.activities.Update(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity, s.resolveProgress(ctx, activity)), nil
}

func (s *activityService) UpdateStatus(ctx context.Context, id uint, payload dto.ActivityStatusUpdateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}

		return dto.ActivityResponse{}, err
	}

	activity.Status = models.ActivityStatus(payload.Status)
	if err := s.activities.Update(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().Uint("activity_id", id).Str("status", payload.Status).Msg("activity status updated")

	return dto.NewActivityResponse(activity, s.resolveProgress(ctx, activity)), nil
}

func (s *activityService) ToggleFavourite(ctx context.Context, id uint) (dto.ActivityResponse, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}

		return dto.ActivityResponse{}, err
	}

	activity.IsFavourite = !activity.IsFavourite
	if err := s.activities.Update(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity, s.resolveProgress(ctx, activity)), nil
}

func (s *activityService) Delete(ctx context.Context, id uint) error {
	if err := s.activities.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return err
	}

	s.logger.Info().Uint("activity_id", id).Msg("activity deleted")
	return nil
}

// resolveProgress fetches the referenced entity and computes its progress
// summary. A missing or unloadable entity yields empty progress instead of
// failing the request; whether a dangling reference is an error belongs to
// the caller, not this layer.
func (s *activityService) resolveProgress(ctx context.Context, activity models.Activity) progress.ActivityProgress {
	now := s.now()

	if !activity.Type.Valid() {
		// Persisted rows should never carry an unknown tag. Surface it for
		// operators without changing the null-progress contract.
		s.logger.Warn().
			Uint("activity_id", activity.ID).
			Str("type", string(activity.Type)).
			Msg("unrecognized activity type")
		return progress.ForActivity(activity.Type, nil, now)
	}

	var (
		entity    any
		lookupErr error
	)

	switch activity.Type {
	case models.ActivityTypeCourse:
		if course, err := s.courses.GetByID(ctx, activity.RefID); err == nil {
			entity = course
		} else {
			lookupErr = err
		}
	case models.ActivityTypeQuiz:
		if quiz, err := s.quizzes.GetByID(ctx, activity.RefID); err == nil {
			entity = quiz
		} else {
			lookupErr = err
		}
	case models.ActivityTypeAssignment:
		if assignment, err := s.assignments.GetByID(ctx, activity.RefID); err == nil {
			entity = assignment
		} else {
			lookupErr = err
		}
	case models.ActivityTypeDiscussion:
		// nothing to fetch, discussions carry no progress
	}

	if lookupErr != nil && !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		s.logger.Warn().Err(lookupErr).
			Uint("activity_id", activity.ID).
			Uint("ref_id", activity.RefID).
			Msg("failed to resolve activity entity")
	}

	return progress.ForActivity(activity.Type, entity, now)
}
