package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/repository"
)

var (
	// ErrCourseNotFound indicates the requested course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrLessonNotFound indicates the lesson id does not exist in the course.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrChapterNotFound indicates the chapter id does not exist in the lesson.
	ErrChapterNotFound = errors.New("chapter not found")
)

// CourseService exposes course domain use cases.
type CourseService interface {
	List(ctx context.Context, filter repository.CourseFilter) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (dto.CourseResponse, error)
	Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, id uint) error
	MarkLessonComplete(ctx context.Context, courseID, lessonID uint) (dto.CourseResponse, error)
	MarkChapterComplete(ctx context.Context, courseID, lessonID, chapterID uint) (dto.CourseResponse, error)
}

type courseService struct {
	repo      repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService builds a new course service.
func NewCourseService(repo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context, filter repository.CourseFilter) ([]dto.CourseResponse, error) {
	courses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) Get(ctx context.Context, id uint) (dto.CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}

		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Title:               payload.Title,
		Subject:             payload.Subject,
		Overview:            payload.Overview,
		InstructorName:      payload.InstructorName,
		InstructorBio:       payload.InstructorBio,
		InstructorAvatarURL: payload.InstructorAvatarURL,
		ThumbnailURL:        payload.ThumbnailURL,
		TrailerURL:          payload.TrailerURL,
		Duration:            payload.Duration,
		Level:               payload.Level,
		Category:            payload.Category,
		Tags:                datatypes.NewJSONSlice(payload.Tags),
		Requirements:        datatypes.NewJSONSlice(payload.Requirements),
		LearningOutcomes:    datatypes.NewJSONSlice(payload.LearningOutcomes),
		Rating:              payload.Rating,
		Lessons:             datatypes.NewJSONSlice(payload.Lessons),
	}
	course.TotalLessons, course.TotalChapters = countLessons(payload.Lessons)

	if err := s.repo.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Msg("course created")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}

		return dto.CourseResponse{}, err
	}

	if payload.Title != nil {
		course.Title = *payload.Title
	}
	if payload.Subject != nil {
		course.Subject = *payload.Subject
	}
	if payload.Overview != nil {
		course.Overview = *payload.Overview
	}
	if payload.InstructorName != nil {
		course.InstructorName = *payload.InstructorName
	}
	if payload.ThumbnailURL != nil {
		course.ThumbnailURL = *payload.ThumbnailURL
	}
	if payload.Duration != nil {
		course.Duration = *payload.Duration
	}
	if payload.Level != nil {
		course.Level = *payload.Level
	}
	if payload.Category != nil {
		course.Category = *payload.Category
	}
	if payload.Tags != nil {
		course.Tags = datatypes.NewJSONSlice(*payload.Tags)
	}
	if payload.Requirements != nil {
		course.Requirements = datatypes.NewJSONSlice(*payload.Requirements)
	}
	if payload.LearningOutcomes != nil {
		course.LearningOutcomes = datatypes.NewJSONSlice(*payload.LearningOutcomes)
	}
	if payload.Rating != nil {
		course.Rating = payload.Rating
	}
	if payload.Lessons != nil {
		course.Lessons = datatypes.NewJSONSlice(*payload.Lessons)
		course.TotalLessons, course.TotalChapters = countLessons(*payload.Lessons)
	}

	if err := s.repo.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	s.logger.Info().Uint("course_id", id).Msg("course deleted")
	return nil
}

// MarkLessonComplete marks the lesson and every chapter under it complete.
func (s *courseService) MarkLessonComplete(ctx context.Context, courseID, lessonID uint) (dto.CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}

		return dto.CourseResponse{}, err
	}

	found := false
	lessons := []models.Lesson(course.Lessons)
	for i := range lessons {
		if lessons[i].ID != lessonID {
			continue
		}
		found = true
		lessons[i].Completed = true
		for j := range lessons[i].Chapters {
			lessons[i].Chapters[j].Completed = true
		}
	}
	if !found {
		return dto.CourseResponse{}, ErrLessonNotFound
	}

	course.Lessons = datatypes.NewJSONSlice(lessons)
	if err := s.repo.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", courseID).Uint("lesson_id", lessonID).Msg("lesson marked complete")

	return dto.NewCourseResponse(course), nil
}

// MarkChapterComplete marks a single chapter complete without touching the
// lesson's own flag; the two are tracked independently.
func (s *courseService) MarkChapterComplete(ctx context.Context, courseID, lessonID, chapterID uint) (dto.CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}

		return dto.CourseResponse{}, err
	}

	lessonFound := false
	chapterFound := false
	lessons := []models.Lesson(course.Lessons)
	for i := range lessons {
		if lessons[i].ID != lessonID {
			continue
		}
		lessonFound = true
		for j := range lessons[i].Chapters {
			if lessons[i].Chapters[j].ID == chapterID {
				chapterFound = true
				lessons[i].Chapters[j].Completed = true
			}
		}
	}
	if !lessonFound {
		return dto.CourseResponse{}, ErrLessonNotFound
	}
	if !chapterFound {
		return dto.CourseResponse{}, ErrChapterNotFound
	}

	course.Lessons = datatypes.NewJSONSlice(lessons)
	if err := s.repo.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().
		Uint("course_id", courseID).
		Uint("lesson_id", lessonID).
		Uint("chapter_id", chapterID).
		Msg("chapter marked complete")

	return dto.NewCourseResponse(course), nil
}

func countLessons(lessons []models.Lesson) (totalLessons, totalChapters int) {
	totalLessons = len(lessons)
	for _, lesson := range lessons {
		totalChapters += len(lesson.Chapters)
	}
	return totalLessons, totalChapters
}
