package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/handler"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/progress"
	"github.com/noah-isme/lentera-api/internal/repository"
)

type stubActivityService struct {
	response dto.ActivityResponse
}

func (s stubActivityService) List(context.Context, repository.ActivityFilter) ([]dto.ActivityResponse, error) {
	return []dto.ActivityResponse{s.response}, nil
}

func (s stubActivityService) Get(context.Context, uint) (dto.ActivityResponse, error) {
	return s.response, nil
}

func (s stubActivityService) Create(context.Context, dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	return s.response, nil
}

func (s stubActivityService) Update(context.Context, uint, dto.ActivityUpdateRequest) (dto.ActivityResponse, error) {
	return s.response, nil
}

func (s stubActivityService) UpdateStatus(context.Context, uint, dto.ActivityStatusUpdateRequest) (dto.ActivityResponse, error) {
	return s.response, nil
}

func (s stubActivityService) ToggleFavourite(context.Context, uint) (dto.ActivityResponse, error) {
	return s.response, nil
}

func (s stubActivityService) Delete(context.Context, uint) error {
	return nil
}

func compileContractSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func fetchValidatedPayload(t *testing.T, app *fiber.App, path string, schema *jsonschema.Schema) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func newActivityApp(response dto.ActivityResponse) *fiber.App {
	app := fiber.New()
	h := handler.NewActivityHandler(stubActivityService{response: response}, zerolog.Nop())
	h.Register(app.Group("/api/v1/activities"))
	return app
}

func baseActivityResponse(activityType models.ActivityType, value any) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:          7,
		Type:        activityType,
		RefID:       3,
		Title:       "Linear Algebra",
		Subject:     "Mathematics",
		Status:      models.ActivityStatusInProgress,
		Purchased:   true,
		IsFavourite: true,
		CreatedAt:   time.Now().UTC(),
		Progress:    value,
	}
}

func TestActivityContractCourseProgress(t *testing.T) {
	schema := compileContractSchema(t, "activity_detail.schema.json")

	app := newActivityApp(baseActivityResponse(models.ActivityTypeCourse, &progress.CourseProgress{
		TotalLessons:      4,
		CompletedLessons:  2,
		TotalChapters:     12,
		CompletedChapters: 6,
		PercentComplete:   50,
	}))

	fetchValidatedPayload(t, app, "/api/v1/activities/7", schema)
}

func TestActivityContractQuizProgress(t *testing.T) {
	schema := compileContractSchema(t, "activity_detail.schema.json")

	app := newActivityApp(baseActivityResponse(models.ActivityTypeQuiz, &progress.QuizProgress{
		TotalQuestions:    10,
		AnsweredQuestions: 6,
		CorrectAnswers:    5,
		PercentComplete:   60,
		Score:             50,
	}))

	fetchValidatedPayload(t, app, "/api/v1/activities/7", schema)
}

func TestActivityContractAssignmentProgress(t *testing.T) {
	schema := compileContractSchema(t, "activity_detail.schema.json")

	days := 3
	app := newActivityApp(baseActivityResponse(models.ActivityTypeAssignment, &progress.AssignmentProgress{
		Submitted:    true,
		DaysUntilDue: &days,
		Status:       progress.StatusSubmitted,
	}))

	fetchValidatedPayload(t, app, "/api/v1/activities/7", schema)
}

func TestActivityContractNullProgress(t *testing.T) {
	schema := compileContractSchema(t, "activity_detail.schema.json")

	app := newActivityApp(baseActivityResponse(models.ActivityTypeDiscussion, nil))

	fetchValidatedPayload(t, app, "/api/v1/activities/7", schema)
}
