package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edu-records-api/internal/config"
	"github.com/noah-isme/edu-records-api/internal/database"
	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/handler"
	"github.com/noah-isme/edu-records-api/internal/middleware"
	"github.com/noah-isme/edu-records-api/internal/repository"
	"github.com/noah-isme/edu-records-api/internal/router"
	"github.com/noah-isme/edu-records-api/internal/service"
	"github.com/noah-isme/edu-records-api/internal/utils"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger = logger.With().Str("service", cfg.AppName).Str("env", cfg.AppEnv).Logger()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("report cache disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("record events disabled")
			natsConn = nil
		} else {
			defer natsConn.Drain()
		}
	}

	validate := dto.NewValidator()

	integrity := repository.NewIntegrityChecker(db)
	writer := repository.NewBulkWriter(db, integrity, database.TxOptions(cfg.DatabaseDriver, cfg.BulkIsolation), cfg.BulkTimeout)

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db, writer)
	participationRepo := repository.NewParticipationRepository(db, writer)
	scoreRepo := repository.NewScoreRepository(db)
	reportRepo := repository.NewReportRepository(db)

	reportService := service.NewReportService(studentRepo, reportRepo, redisClient, cfg.ReportCacheTTL, logger)
	hooks := service.BulkHooks{
		Publisher:   service.NewNATSRecordPublisher(natsConn, cfg.EventSubject),
		Invalidator: reportService,
	}

	studentService := service.NewStudentService(studentRepo, validate, reportService, logger)
	courseService := service.NewCourseService(courseRepo, validate, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, integrity, validate, reportService, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, integrity, validate, hooks, logger)
	participationService := service.NewParticipationService(participationRepo, integrity, validate, hooks, logger)
	scoreService := service.NewScoreService(scoreRepo, integrity, validate, reportService, logger)

	bulkLimiter := middleware.RateLimit("bulk", cfg.BulkRateLimit, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			}
			if status >= fiber.StatusInternalServerError {
				logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
				return utils.SendError(c, status, "Internal server error")
			}
			return utils.SendError(c, status, err.Error())
		},
	})

	middleware.Register(app, middleware.Config{
		Logger:         &logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AccessLog:      cfg.AppEnv != "production",
	})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:       handler.NewStudentHandler(studentService, reportService, logger),
		CourseHandler:        handler.NewCourseHandler(courseService, logger),
		EnrollmentHandler:    handler.NewEnrollmentHandler(enrollmentService, logger),
		AttendanceHandler:    handler.NewAttendanceHandler(attendanceService, bulkLimiter, logger),
		ParticipationHandler: handler.NewParticipationHandler(participationService, bulkLimiter, logger),
		ScoreHandler:         handler.NewScoreHandler(scoreService, logger),
		Database: handler.PingFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
