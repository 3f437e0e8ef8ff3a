package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/commission-tracker/internal/averages"
	"github.com/Dan9191/commission-tracker/internal/config"
	"github.com/Dan9191/commission-tracker/internal/handler"
	"github.com/Dan9191/commission-tracker/internal/middleware"
	"github.com/Dan9191/commission-tracker/internal/repository"
	"github.com/Dan9191/commission-tracker/internal/scheduler"
	"github.com/Dan9191/commission-tracker/internal/service"
	"github.com/Dan9191/commission-tracker/internal/utils/email"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	settings, err := config.LoadEngineSettings(cfg.EngineConfigPath)
	if err != nil {
		logger.Fatalf("Failed to load engine settings: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)

	var provider averages.Provider = averages.NewStoreProvider(repo)
	if cfg.RedisAddr != "" {
		cache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer cache.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(ctx); err != nil {
			logger.Warnf("Redis unavailable, averages will not be cached: %v", err)
		} else {
			provider = averages.NewCachedProvider(provider, cache, cfg.AveragesCacheTTL, logger)
		}
		cancel()
	}

	var notifier service.Notifier
	if cfg.NotificationsEnabled() {
		notifier = email.NewSender(cfg, logger)
	}

	svc := service.NewService(repo, provider, notifier, settings, logger)
	h := handler.NewHandler(svc, logger)
	r := handler.NewRouter(h, middleware.AuthMiddleware(cfg.JWTSecret), middleware.Logger(logger))

	// Milestone sweep
	sched, err := scheduler.New(cfg.MilestoneCron, svc, 5*time.Minute, logger)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
