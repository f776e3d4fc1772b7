package contract_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/handler"
)

type stubDashboardService struct {
	response dto.DashboardResponse
}

func (s stubDashboardService) GetDashboard(context.Context) (dto.DashboardResponse, error) {
	return s.response, nil
}

func TestDashboardContract(t *testing.T) {
	schema := compileContractSchema(t, "dashboard_summary.schema.json")

	now := time.Now().UTC()
	response := dto.DashboardResponse{
		TotalActivities: 6,
		Favourites:      2,
		ByStatus: dto.StatusBreakdown{
			NotStarted: 2,
			InProgress: 2,
			Completed:  1,
			Upcoming:   1,
		},
		ByType: dto.TypeBreakdown{
			Courses:     2,
			Quizzes:     2,
			Assignments: 1,
			Discussions: 1,
		},
		UpcomingDeadlines: []dto.UpcomingDeadline{
			{
				AssignmentID: 4,
				Title:        "Problem Set 3",
				Subject:      "Mathematics",
				Deadline:     now.Add(48 * time.Hour),
				DaysUntilDue: 2,
			},
		},
		GeneratedAt: now,
	}

	app := fiber.New()
	h := handler.NewDashboardHandler(stubDashboardService{response: response}, zerolog.Nop())
	h.Register(app.Group("/api/v1/dashboard"))

	fetchValidatedPayload(t, app, "/api/v1/dashboard", schema)
}
