package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/brightlinelabs/leadchat/internal/api/router"
	"github.com/brightlinelabs/leadchat/internal/chat"
	appconfig "github.com/brightlinelabs/leadchat/internal/config"
	"github.com/brightlinelabs/leadchat/internal/leads"
	"github.com/brightlinelabs/leadchat/internal/notify"
	"github.com/brightlinelabs/leadchat/internal/observability/metrics"
	"github.com/brightlinelabs/leadchat/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadchat API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Lead storage: Postgres when configured, in-memory otherwise.
	var leadRepo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		leadRepo = leads.NewPostgresRepository(pool)
		logger.Info("using postgres lead repository")
	} else {
		leadRepo = leads.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, leads will not survive restarts")
	}

	// Lead notification email: provider selected by config.
	var emailSender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			emailSender = sender
		}
	case "stub":
		emailSender = notify.NewStubEmailSender(logger)
	default:
		sender, err := notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
		}, logger)
		if err != nil {
			logger.Error("failed to create SMTP sender", "error", err)
			os.Exit(1)
		}
		if sender != nil {
			emailSender = sender
		}
	}
	if emailSender == nil || cfg.LeadReceiver == "" {
		logger.Warn("lead notification email not fully configured, notifications disabled")
	}

	// Initialize services
	leadMetrics := metrics.NewLeadMetrics(nil)
	notifier := notify.NewService(emailSender, cfg.LeadReceiver, logger)
	sink := leads.NewSink(leadRepo, notifier, leadMetrics, logger)

	completionClient := openai.NewClient(cfg.OpenAIAPIKey)
	orchestrator := chat.NewOrchestrator(completionClient, sink, cfg.OpenAIModel, leadMetrics, logger)

	// Initialize handlers
	chatHandler := chat.NewHandler(orchestrator, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
