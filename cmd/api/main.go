package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/app"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/artifact"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/config"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/database"
	apphttp "github.com/Tillayevxusniddin/JDUCoworking/internal/http"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/handlers"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/metrics"
	httpmw "github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/observability"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/repository/postgres"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/scheduler"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	studentRepo := postgres.NewStudentRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	vacancyRepo := postgres.NewVacancyRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	dailyRepo := postgres.NewDailyReportRepository(db)
	salaryRepo := postgres.NewSalaryRepository(db)
	monthlyRepo := postgres.NewMonthlyReportRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	txManager := postgres.NewTxManager(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	artifacts := artifact.NewCSVGenerator(cfg.ArtifactDir)

	notificationService := app.NewNotificationService(notificationRepo, logger)
	userService := app.NewUserService(userRepo, studentRepo, memberRepo, txManager, notificationService)
	workspaceService := app.NewWorkspaceService(workspaceRepo, memberRepo, userRepo, studentRepo, txManager, notificationService)
	jobService := app.NewJobService(jobRepo, vacancyRepo, workspaceRepo, memberRepo, userRepo, txManager)
	vacancyService := app.NewVacancyService(applicationRepo, vacancyRepo, jobRepo, memberRepo, userRepo, txManager, notificationService)
	taskService := app.NewTaskService(taskRepo, memberRepo, txManager, notificationService, logger)
	reportService := app.NewReportService(dailyRepo, salaryRepo, monthlyRepo, memberRepo, jobRepo, userRepo, artifacts, txManager, notificationService, logger, cfg.DeductionPercent, location)

	var rateLimiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		rateLimiter = httpmw.NewRedisLimiter(redis.NewClient(opts), logger)
	}

	authHandler := handlers.NewAuthHandler(userService, jwtProvider, rateLimiter, cfg.AccessTokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(vacancyService, rateLimiter)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	jobs, err := scheduler.New(location, logger, cfg.SweepCron, cfg.PayrollCron, taskService, reportService)
	if err != nil {
		log.Fatal(err)
	}
	jobs.Start()
	defer jobs.Stop()

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		WorkspaceHandler:    workspaceHandler,
		JobHandler:          jobHandler,
		ApplicationHandler:  applicationHandler,
		TaskHandler:         taskHandler,
		ReportHandler:       reportHandler,
		NotificationHandler: notificationHandler,
		MetricsHandler:      handlers.NewMetricsHandler(collector),
		AuthMiddleware:      authMiddleware,
		Metrics:             collector,
		Logger:              logger,
		RequestTimeout:      cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
