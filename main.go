package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	api "cityglow-backend/cmd/api"
	"cityglow-backend/internal/call/repository"
	"cityglow-backend/internal/call/usecase"
	"cityglow-backend/internal/notification"
	"cityglow-backend/pkg/config"
	"cityglow-backend/pkg/elevenlabs"
	"cityglow-backend/pkg/firebase"
	"cityglow-backend/pkg/logger"
	"cityglow-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.LogFile)
	defer logger.Sync()

	ctx := context.Background()

	// Initialize Firestore. Startup keeps going without it so the routes
	// that do not need the store still serve.
	var callRepo repository.CallRepository
	fsClient, err := firebase.NewFirestoreClient(ctx, cfg.FirebaseCredentials, cfg.FirebaseProjectID)
	if err != nil {
		logger.Error("Failed to initialize Firestore, call persistence disabled", zap.Error(err))
	} else {
		defer fsClient.Close()
		callRepo = repository.NewFirestoreCallRepository(fsClient, cfg.CallsCollection)
	}

	// Initialize the email notifier
	var notifier usecase.Notifier
	if cfg.SMTPUser != "" && cfg.NotifyEmail != "" {
		loc, err := time.LoadLocation(cfg.DisplayTimezone)
		if err != nil {
			logger.Warn("Unknown display timezone, falling back to UTC",
				zap.String("timezone", cfg.DisplayTimezone))
			loc = time.UTC
		}
		smtpMailer := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
		notifier = notification.NewService(smtpMailer, cfg.NotifyEmail, loc)
	} else {
		logger.Warn("SMTP_USER or NOTIFY_EMAIL not configured, call notifications disabled")
	}

	// Initialize the ElevenLabs client for audio streaming
	var audioClient *elevenlabs.Client
	if cfg.ElevenLabsAPIKey != "" {
		audioClient = elevenlabs.NewClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsBaseURL)
	} else {
		logger.Warn("ELEVENLABS_API_KEY not set, audio streaming disabled")
	}

	// Initialize use case and HTTP handler (dependency injection)
	callUsecase := usecase.NewCallUsecase(callRepo, notifier, cfg.DebugNumbers)
	handler := api.NewHandler(callUsecase, audioClient, cfg)

	// Start server
	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		os.Exit(1)
	}
}
