package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
	"github.com/noah-isme/lentera-api/internal/repository"
)

var (
	// ErrQuizNotFound indicates the requested quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrSectionNotFound indicates the section id does not exist in the quiz.
	ErrSectionNotFound = errors.New("section not found")
	// ErrQuestionNotFound indicates the question id does not exist in the section.
	ErrQuestionNotFound = errors.New("question not found")
)

// QuizService exposes quiz domain use cases.
type QuizService interface {
	List(ctx context.Context, filter repository.QuizFilter) ([]dto.QuizResponse, error)
	Get(ctx context.Context, id uint) (dto.QuizResponse, error)
	Create(ctx context.Context, payload dto.QuizCreateRequest) (dto.QuizResponse, error)
	Update(ctx context.Context, id uint, payload dto.QuizUpdateRequest) (dto.QuizResponse, error)
	Delete(ctx context.Context, id uint) error
	SubmitAnswer(ctx context.Context, quizID, sectionID, questionID uint, payload dto.QuizAnswerRequest) (dto.QuizResponse, error)
	FinalizeScore(ctx context.Context, id uint) (dto.QuizResponse, error)
}

type quizService struct {
	repo      repository.QuizRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewQuizService builds a new quiz service.
func NewQuizService(repo repository.QuizRepository, validate *validator.Validate, logger zerolog.Logger) QuizService {
	return &quizService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "quiz_service").Logger(),
		now:       time.Now,
	}
}

func (s *quizService) List(ctx context.Context, filter repository.QuizFilter) ([]dto.QuizResponse, error) {
	quizzes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewQuizResponseSlice(quizzes), nil
}

func (s *quizService) Get(ctx context.Context, id uint) (dto.QuizResponse, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}

		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Create(ctx context.Context, payload dto.QuizCreateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz := models.Quiz{
		Title:        payload.Title,
		Subject:      payload.Subject,
		Description:  payload.Description,
		PassingScore: payload.PassingScore,
		Duration:     payload.Duration,
		Difficulty:   payload.Difficulty,
		Sections:     datatypes.NewJSONSlice(payload.Sections),
	}
	total := countQuestions(payload.Sections)
	quiz.TotalQuestions = &total

	if err := s.repo.Create(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.logger.Info().Uint("quiz_id", quiz.ID).Msg("quiz created")

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Update(ctx context.Context, id uint, payload dto.QuizUpdateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}

		return dto.QuizResponse{}, err
	}

	if payload.Title != nil {
		quiz.Title = *payload.Title
	}
	if payload.Subject != nil {
		quiz.Subject = *payload.Subject
	}
	if payload.Description != nil {
		quiz.Description = *payload.Description
	}
	if payload.PassingScore != nil {
		quiz.PassingScore = payload.PassingScore
	}
	if payload.Duration != nil {
		quiz.Duration = *payload.Duration
	}
	if payload.Difficulty != nil {
		quiz.Difficulty = *payload.Difficulty
	}
	if payload.Sections != nil {
		quiz.Sections = datatypes.NewJSONSlice(*payload.Sections)
		total := countQuestions(*payload.Sections)
		quiz.TotalQuestions = &total
	}

	if err := s.repo.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	s.logger.Info().Uint("quiz_id", id).Msg("quiz deleted")
	return nil
}

// SubmitAnswer records the learner's answer and grades it against the stored
// correct answer in the same write.
func (s *quizService) SubmitAnswer(ctx context.Context, quizID, sectionID, questionID uint, payload dto.QuizAnswerRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz, err := s.repo.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}

		return dto.QuizResponse{}, err
	}

	sectionFound := false
	questionFound := false
	sections := []models.Section(quiz.Sections)
	for i := range sections {
		if sections[i].ID != sectionID {
			continue
		}
		sectionFound = true
		for j := range sections[i].Questions {
			if sections[i].Questions[j].ID != questionID {
				continue
			}
			questionFound = true
			isCorrect := sections[i].Questions[j].CorrectAnswer == payload.MarkedAnswer
			sections[i].Questions[j].MarkedAnswer = payload.MarkedAnswer
			sections[i].Questions[j].IsCorrect = &isCorrect
		}
	}
	if !sectionFound {
		return dto.QuizResponse{}, ErrSectionNotFound
	}
	if !questionFound {
		return dto.QuizResponse{}, ErrQuestionNotFound
	}

	quiz.Sections = datatypes.NewJSONSlice(sections)
	if err := s.repo.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz), nil
}

// FinalizeScore persists the computed score and pass flag onto the quiz row.
// The derivation itself stays in the calculator; this only snapshots its
// output at the learner's request.
func (s *quizService) FinalizeScore(ctx context.Context, id uint) (dto.QuizResponse, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}

		return dto.QuizResponse{}, err
	}

	result := progress.ForQuiz(quiz)
	score := result.Score
	quiz.Score = &score
	quiz.Passed = result.Passed

	if err := s.repo.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.logger.Info().Uint("quiz_id", id).Int("score", score).Bool("passed", result.Passed).Msg("quiz score finalized")

	return dto.NewQuizResponse(quiz), nil
}

func countQuestions(sections []models.Section) int {
	total := 0
	for _, section := range sections {
		total += len(section.Questions)
	}
	return total
}
