package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/database"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/metrics"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Contact API
// @version         1.0
// @description     Relay endpoint behind the portfolio contact form.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting portfolio contact relay", "port", cfg.Port, "gin_mode", cfg.GinMode)

	env := "development"
	if cfg.IsProduction() {
		env = "production"
	}
	secLog := security.InitSecurityLogger("portfolio-backend", env)
	defer func() { _ = secLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Optional security event persistence
	if cfg.SecurityLogToDB && cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database, security events stay in logs only", "error", err)
		} else {
			defer dbPool.Close()
			repo := security.NewSecurityEventRepository(dbPool)
			if err := repo.EnsureSchema(ctx); err != nil {
				logger.Log.Error("Failed to prepare security_events table", "error", err)
			} else {
				secLog.SetPersistFunc(repo.CreatePersistFunc())
			}
		}
	}

	// 4. Optional Redis for the rate limiter
	var pingRedis usecase.Pinger
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		}
	} else {
		pingRedis = redis.HealthCheck
		defer func() { _ = redis.Close() }()
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Error("Email service not configured: contact submissions will fail until EMAIL_USER and EMAIL_PASS are set")
		secLog.LogConfigMissing(ctx, "email", "")
	}

	// 6. Setup UseCases
	m := metrics.New()
	tracker := security.NewAbuseTracker(security.DefaultAbuseTrackerConfig(), secLog, nil)
	contactUC := usecase.NewContactUsecase(emailService, m, secLog, usecase.WithAbuseTracker(tracker))
	healthUC := usecase.NewHealthUsecase(emailService, pingRedis)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Metrics:   m,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
