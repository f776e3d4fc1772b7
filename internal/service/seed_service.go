package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
	// ErrSeedInvalidPayload indicates the payload failed schema validation.
	ErrSeedInvalidPayload = errors.New("invalid seed payload")
)

// seedPayloadSchema guards the bulk payload before any row touches the
// database. Entity bodies stay permissive on purpose so fixtures can carry
// nested lesson trees and quiz sections without the schema chasing every
// model change.
const seedPayloadSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "courses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "subject"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "subject": {"type": "string", "minLength": 1}
        }
      }
    },
    "quizzes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "subject"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "subject": {"type": "string", "minLength": 1}
        }
      }
    },
    "assignments": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "subject"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "subject": {"type": "string", "minLength": 1}
        }
      }
    },
    "discussions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "subject"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "subject": {"type": "string", "minLength": 1}
        }
      }
    },
    "activities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "ref_id", "title"],
        "properties": {
          "type": {"enum": ["COURSE", "QUIZ", "ASSIGNMENT", "DISCUSSION"]},
          "ref_id": {"type": "integer", "minimum": 1},
          "title": {"type": "string", "minLength": 1},
          "status": {"enum": ["NOT_STARTED", "IN_PROGRESS", "COMPLETED", "UPCOMING"]}
        }
      }
    }
  }
}`

var compiledSeedSchema = jsonschema.MustCompileString("seed-payload.json", seedPayloadSchema)

// SeedSummary reports how many rows each table received.
type SeedSummary struct {
	Courses     int64 `json:"courses"`
	Quizzes     int64 `json:"quizzes"`
	Assignments int64 `json:"assignments"`
	Discussions int64 `json:"discussions"`
	Activities  int64 `json:"activities"`
}

// SeedService orchestrates bulk fixture loading. Seeding replaces existing
// rows wholesale so repeated runs stay deterministic.
type SeedService interface {
	Seed(ctx context.Context, token string, payload []byte) (SeedSummary, error)
	Reset(ctx context.Context, token string) error
}

type seedService struct {
	courses     repository.CourseRepository
	quizzes     repository.QuizRepository
	assignments repository.AssignmentRepository
	discussions repository.DiscussionRepository
	activities  repository.ActivityRepository
	enabled     bool
	token       string
	logger      zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(
	courses repository.CourseRepository,
	quizzes repository.QuizRepository,
	assignments repository.AssignmentRepository,
	discussions repository.DiscussionRepository,
	activities repository.ActivityRepository,
	enabled bool,
	token string,
	logger zerolog.Logger,
) SeedService {
	return &seedService{
		courses:     courses,
		quizzes:     quizzes,
		assignments: assignments,
		discussions: discussions,
		activities:  activities,
		enabled:     enabled,
		token:       token,
		logger:      logger.With().Str("component", "seed_service").Logger(),
	}
}

type seedPayload struct {
	Courses     []models.Course     `json:"courses"`
	Quizzes     []models.Quiz       `json:"quizzes"`
	Assignments []models.Assignment `json:"assignments"`
	Discussions []models.Discussion `json:"discussions"`
	Activities  []models.Activity   `json:"activities"`
}

func (s *seedService) Seed(ctx context.Context, token string, payload []byte) (SeedSummary, error) {
	if !s.enabled {
		return SeedSummary{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return SeedSummary{}, ErrSeedUnauthorized
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return SeedSummary{}, fmt.Errorf("%w: %v", ErrSeedInvalidPayload, err)
	}
	if err := compiledSeedSchema.Validate(doc); err != nil {
		return SeedSummary{}, fmt.Errorf("%w: %v", ErrSeedInvalidPayload, err)
	}

	var parsed seedPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return SeedSummary{}, fmt.Errorf("%w: %v", ErrSeedInvalidPayload, err)
	}
	for i := range parsed.Activities {
		if parsed.Activities[i].Status == "" {
			parsed.Activities[i].Status = models.ActivityStatusNotStarted
		}
	}

	var summary SeedSummary
	var err error
	if summary.Courses, err = s.courses.ReplaceAll(ctx, parsed.Courses); err != nil {
		return SeedSummary{}, err
	}
	if summary.Quizzes, err = s.quizzes.ReplaceAll(ctx, parsed.Quizzes); err != nil {
		return SeedSummary{}, err
	}
	if summary.Assignments, err = s.assignments.ReplaceAll(ctx, parsed.Assignments); err != nil {
		return SeedSummary{}, err
	}
	if summary.Discussions, err = s.discussions.ReplaceAll(ctx, parsed.Discussions); err != nil {
		return SeedSummary{}, err
	}
	if summary.Activities, err = s.activities.ReplaceAll(ctx, parsed.Activities); err != nil {
		return SeedSummary{}, err
	}

	s.logger.Info().
		Int64("courses", summary.Courses).
		Int64("quizzes", summary.Quizzes).
		Int64("assignments", summary.Assignments).
		Int64("discussions", summary.Discussions).
		Int64("activities", summary.Activities).
		Msg("fixtures seeded")

	return summary, nil
}

func (s *seedService) Reset(ctx context.Context, token string) error {
	if !s.enabled {
		return ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return ErrSeedUnauthorized
	}

	if _, err := s.activities.ReplaceAll(ctx, nil); err != nil {
		return err
	}
	if _, err := s.courses.ReplaceAll(ctx, nil); err != nil {
		return err
	}
	if _, err := s.quizzes.ReplaceAll(ctx, nil); err != nil {
		return err
	}
	if _, err := s.assignments.ReplaceAll(ctx, nil); err != nil {
		return err
	}
	if _, err := s.discussions.ReplaceAll(ctx, nil); err != nil {
		return err
	}

	s.logger.Info().Msg("all fixture tables cleared")
	return nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtleConstantTimeCompare(expected, strings.TrimSpace(token))
}

func subtleConstantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	mismatch := byte(0)
	for i := 0; i < len(a); i++ {
		mismatch |= a[i] ^ b[i]
	}
	return mismatch == 0
}
