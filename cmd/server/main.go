package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mindjournal/mindjournal-backend/config"
	"github.com/mindjournal/mindjournal-backend/internal/app/controller"
	"github.com/mindjournal/mindjournal-backend/internal/app/repository"
	"github.com/mindjournal/mindjournal-backend/internal/app/service"
	"github.com/mindjournal/mindjournal-backend/internal/db"
	"github.com/mindjournal/mindjournal-backend/internal/router"
	"github.com/mindjournal/mindjournal-backend/internal/scheduler"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"github.com/mindjournal/mindjournal-backend/pkg/mailer"
	"github.com/mindjournal/mindjournal-backend/pkg/metrics"
	"github.com/mindjournal/mindjournal-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting MindJournal Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"token_store": cfg.Reset.Store,
		"otp_store":   cfg.OTP.Store,
		"mail_driver": cfg.Mail.Driver,
	})

	healthChecks := map[string]router.HealthCheck{}

	if cfg.Database.Enabled {
		if err := db.Initialize(&cfg.Database); err != nil {
			logger.Fatal("Failed to initialize database", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", err)
			}
		}()

		if err := db.Migrate(db.GetDB()); err != nil {
			logger.Fatal("Failed to run migrations", err)
		}
		healthChecks["database"] = db.Ping
	} else {
		logger.Warn("Database disabled, custom activities are unavailable")
	}

	if cfg.UsesRedis() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		healthChecks["redis"] = redis.Ping
	}

	m := metrics.New()

	mail, err := mailer.New(cfg.Mail)
	if err != nil {
		logger.Fatal("Failed to initialize mailer", err)
	}

	// Stores
	var resetStore repository.ResetTokenStore
	switch cfg.Reset.Store {
	case config.StoreRedis:
		resetStore = repository.NewRedisResetTokenStore(redis.GetClient())
	case config.StorePostgres:
		resetStore = repository.NewGormResetTokenStore(db.GetDB())
	default:
		resetStore = repository.NewMemoryResetTokenStore()
	}

	var otpStore repository.OTPStore
	switch cfg.OTP.Store {
	case config.StoreRedis:
		otpStore = repository.NewRedisOTPStore(redis.GetClient())
	default:
		otpStore = repository.NewMemoryOTPStore()
	}

	// Services
	resetService := service.NewPasswordResetService(resetStore, mail, m, service.PasswordResetConfig{
		TokenTTL:    cfg.Reset.TokenTTL,
		FrontendURL: cfg.Reset.FrontendURL,
	})
	otpService := service.NewOTPService(otpStore, mail, m, service.OTPConfig{
		TTL: cfg.OTP.TTL,
	})
	chatService := service.NewChatService(cfg.OpenAI)

	// Controllers
	var activityController *controller.CustomActivityController
	if cfg.Database.Enabled {
		activityController = controller.NewCustomActivityController(
			service.NewCustomActivityService(repository.NewCustomActivityRepository(db.GetDB())),
		)
	}

	r := router.NewRouter(
		controller.NewAuthController(resetService),
		controller.NewOTPController(otpService),
		activityController,
		controller.NewChatController(chatService),
		m,
		healthChecks,
		cfg,
	)

	sweeper := scheduler.NewSweepScheduler(cfg.Sweep.Interval,
		scheduler.SweepTarget{Name: "reset_tokens", Sweeper: resetService},
		scheduler.SweepTarget{Name: "otp_codes", Sweeper: otpService},
	)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start sweep scheduler", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := sweeper.Stop(ctx); err != nil {
		logger.Error("Sweep scheduler did not stop in time", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
