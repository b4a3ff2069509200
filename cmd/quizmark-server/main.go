package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quizmark/internal/cache"
	"github.com/SAP-F-2025/quizmark/internal/config"
	"github.com/SAP-F-2025/quizmark/internal/handlers"
	"github.com/SAP-F-2025/quizmark/internal/repositories/postgres"
	"github.com/SAP-F-2025/quizmark/internal/services"
	"github.com/SAP-F-2025/quizmark/internal/utils"
	"github.com/SAP-F-2025/quizmark/internal/validator"
	"github.com/SAP-F-2025/quizmark/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	logger := utils.NewLoggerForEnvironment(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Database init failed")
		return 1
	}
	if err := pkg.Migrate(db); err != nil {
		logger.LogError(err, "Migration failed")
		return 1
	}

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.LogError(err, "Redis init failed")
		return 1
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Event publisher init failed")
		return 1
	}
	defer publisher.Close()

	v := validator.New()
	answerCache := cache.NewRedisCache(redisClient, "quizmark:", logger)
	answerKeys := services.NewAnswerKeyService(postgres.NewTaskPostgreSQL(db), answerCache, cfg.AnswerCacheTTL, slogger)
	// Keys cached by a previous run may predate the migration or a restore.
	if err := answerKeys.InvalidateAll(ctx); err != nil {
		logger.Warn("Failed to reset answer key cache", "error", err)
	}
	serviceManager := services.NewServiceManager(
		answerKeys,
		services.NewImportService(postgres.NewTaskPostgreSQL(db), answerKeys, v, slogger),
		services.NewReviewService(answerKeys, publisher, v, slogger),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger))

	handlers.NewHandlerManager(serviceManager, v, logger, handlers.Options{
		MaxPageBytes:     cfg.MaxPageBytes,
		CSRFCookieSecure: cfg.CSRFCookieSecure,
	}).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting quizmark server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("Shutting down quizmark server")
	case err := <-errCh:
		logger.LogError(err, "Server failed")
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "Graceful shutdown failed")
	}
	return exitCode
}
