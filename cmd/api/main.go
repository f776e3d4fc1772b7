package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lentera-api/internal/config"
	"github.com/noah-isme/lentera-api/internal/database"
	"github.com/noah-isme/lentera-api/internal/handler"
	"github.com/noah-isme/lentera-api/internal/middleware"
	"github.com/noah-isme/lentera-api/internal/repository"
	"github.com/noah-isme/lentera-api/internal/router"
	"github.com/noah-isme/lentera-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, dashboard caching disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)

	activityService := service.NewActivityService(activityRepo, courseRepo, quizRepo, assignmentRepo, validate, logger)
	courseService := service.NewCourseService(courseRepo, validate, logger)
	quizService := service.NewQuizService(quizRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, logger)
	discussionService := service.NewDiscussionService(discussionRepo, validate, logger)
	dashboardService := service.NewDashboardService(activityRepo, assignmentRepo, redisClient, cfg.DashboardCacheTTL, logger)
	seedService := service.NewSeedService(courseRepo, quizRepo, assignmentRepo, discussionRepo, activityRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	deps := router.Dependencies{
		ActivityHandler:   handler.NewActivityHandler(activityService, logger),
		CourseHandler:     handler.NewCourseHandler(courseService, logger),
		QuizHandler:       handler.NewQuizHandler(quizService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		DiscussionHandler: handler.NewDiscussionHandler(discussionService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		SeedHandler:       handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
