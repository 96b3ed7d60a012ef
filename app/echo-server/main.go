package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiftHire/app/echo-server/router"
	"shiftHire/business/otp"
	"shiftHire/internal/repository/memory"
	"shiftHire/internal/repository/notification"
	openaiRepo "shiftHire/internal/repository/openai"
	redisRepo "shiftHire/internal/repository/redis"
	stripeRepo "shiftHire/internal/repository/stripe"
	"shiftHire/pkg/config"
	"shiftHire/pkg/database"
	redisdb "shiftHire/pkg/database/redis"
	"shiftHire/pkg/logger"
	"shiftHire/pkg/metrics"
	"shiftHire/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitWithOptions(logger.Options{
		Environment: cfg.App.Environment,
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
	})
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting shiftHire", "version", cfg.App.Version, "env", cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	tokens, err := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Algorithm, cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Fatal("Failed to init token manager", "error", err)
	}

	// OTP store, process local unless shared redis is configured
	var (
		otpStore    otp.OTPStore
		redisClient *redis.Client
	)
	switch cfg.OTP.Store {
	case "redis":
		redisClient, err = redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		otpStore = redisRepo.NewOTPRepository(redisClient)
		logger.Info("Redis connected successfully")
	default:
		otpStore = memory.NewOTPRepository()
	}

	// Init notification from mailjet
	mailjetSMS := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:  cfg.Mailjet.MailjetBaseUrl,
			MailjetAPIToken: cfg.Mailjet.MailjetAPIToken,
			MailjetSender:   cfg.Mailjet.MailjetSender,
		},
	)

	llm := openaiRepo.NewOpenAIRepository(
		openaiRepo.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		},
	)
	if !llm.Enabled() {
		logger.Warn("OPENAI_API_KEY not set, job recommendations use the fallback filter")
	}

	gateway := stripeRepo.NewStripeRepository(
		stripeRepo.StripeConfig{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
		},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := router.NewServer(router.Dependencies{
		DB:          db,
		Tokens:      tokens,
		OTPStore:    otpStore,
		OTPTTL:      cfg.OTP.TTL,
		Notifier:    mailjetSMS,
		LLM:         llm,
		Gateway:     gateway,
		Currency:    cfg.Stripe.Currency,
		Metrics:     metrics.NewCollector(registry),
		Gatherer:    registry,
		CORSOrigins: cfg.App.CORSOrigins,
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Database close error", "error", err)
		}
	}

	logger.Info("Server stopped")
}
