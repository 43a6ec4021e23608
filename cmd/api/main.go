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
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/openlearn/edulearn-api/internal/config"
	"github.com/openlearn/edulearn-api/internal/database"
	"github.com/openlearn/edulearn-api/internal/handler"
	"github.com/openlearn/edulearn-api/internal/middleware"
	"github.com/openlearn/edulearn-api/internal/models"
	"github.com/openlearn/edulearn-api/internal/repository"
	"github.com/openlearn/edulearn-api/internal/router"
	"github.com/openlearn/edulearn-api/internal/service"
	cloud "github.com/openlearn/edulearn-api/pkg/cloudinary"
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

	err = db.AutoMigrate(
		&models.Account{},
		&models.Learner{},
		&models.Instructor{},
		&models.Course{},
		&models.Enrollment{},
		&models.Question{},
		&models.Option{},
		&models.Assignment{},
		&models.AssignmentQuestion{},
		&models.Submission{},
		&models.Answer{},
		&models.SubmissionAsset{},
		&models.Notification{},
		&models.NewsPost{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, notification events stay local")
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	learnerRepo := repository.NewLearnerRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	newsRepo := repository.NewNewsRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, natsConn, "edulearn.notifications", logger)
	learnerService := service.NewLearnerService(learnerRepo, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, learnerRepo, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, enrollmentRepo, learnerRepo, validate, uploader, notificationService, logger)
	dashboardService := service.NewDashboardService(assignmentRepo, submissionRepo, learnerRepo, redisClient, cfg.DashboardCacheTTL, logger)
	newsService := service.NewNewsService(newsRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		LearnerHandler:      handler.NewLearnerHandler(learnerService, logger),
		AssignmentHandler:   handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler:   handler.NewSubmissionHandler(submissionService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		NewsHandler:         handler.NewNewsHandler(newsService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		SubmitRateLimit:     middleware.RateLimit("submit", cfg.SubmitRateMax, cfg.SubmitRateWindow),
	})

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
