package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/peoplecare/hrportal/config"
	"github.com/peoplecare/hrportal/internal/email"
	"github.com/peoplecare/hrportal/internal/hash"
	"github.com/peoplecare/hrportal/internal/health"
	"github.com/peoplecare/hrportal/internal/housekeeping"
	"github.com/peoplecare/hrportal/internal/infrastructure/postgres"
	"github.com/peoplecare/hrportal/internal/llm"
	ctxlog "github.com/peoplecare/hrportal/internal/log"
	"github.com/peoplecare/hrportal/internal/metrics"
	"github.com/peoplecare/hrportal/internal/token"
	httptransport "github.com/peoplecare/hrportal/internal/transport/http"
	"github.com/peoplecare/hrportal/internal/transport/http/handler"
	"github.com/peoplecare/hrportal/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	linkRepo := postgres.NewMagicLinkRepository(pool)
	leaveRepo := postgres.NewLeaveBalanceRepository(pool)
	benefitRepo := postgres.NewBenefitRepository(pool)

	hasher := hash.NewBcrypt(10)
	signer := token.NewSigner(
		[]byte(cfg.AccessSecret), []byte(cfg.RefreshSecret),
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	notifier := email.NewNotifier(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Auth
	authUsecase := usecase.NewAuthUsecase(userRepo, linkRepo, hasher, signer, notifier, logger, usecase.AuthConfig{
		MagicTTL:   cfg.MagicTokenTTL(),
		AppBaseURL: cfg.AppBaseURL,
		DevMode:    cfg.DevMode(),
		Production: cfg.Env == "production",
	})
	authHandler := handler.NewAuthHandler(authUsecase, cfg.FrontendURL, logger)

	// Users
	userUsecase := usecase.NewUserUsecase(userRepo)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	// Chat
	var model llm.Client
	if cfg.GeminiAPIKey != "" {
		model = llm.NewGemini(cfg.GeminiAPIKey)
	} else {
		logger.Warn("GEMINI_API_KEY not set, chat answers will escalate")
	}
	chatUsecase := usecase.NewChatUsecase(leaveRepo, benefitRepo, model, logger)
	chatHandler := handler.NewChatHandler(chatUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	purger, err := housekeeping.NewPurger(linkRepo, logger, cfg.PurgeCron)
	if err != nil {
		stop()
		log.Fatalf("housekeeping: %v", err)
	}
	go purger.Start(ctx)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, signer, authHandler, userHandler, chatHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
