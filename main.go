package main

import (
	"log"

	"go.uber.org/zap"

	api "calvoro-backend/cmd/api"
	"calvoro-backend/internal/announcer"
	apptDelivery "calvoro-backend/internal/appointment/delivery"
	apptStore "calvoro-backend/internal/appointment/store"
	prefDelivery "calvoro-backend/internal/preference/delivery"
	prefStore "calvoro-backend/internal/preference/store"
	"calvoro-backend/pkg/ai"
	"calvoro-backend/pkg/audio"
	"calvoro-backend/pkg/config"
	"calvoro-backend/pkg/persist"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Snapshot store (file or postgres)
	snapshots, err := persist.Open(cfg)
	if err != nil {
		logger.Fatal("failed to open snapshot store", zap.Error(err))
	}

	// Stores load their collections at startup, falling back to defaults on
	// missing or unreadable documents
	appointments := apptStore.New(snapshots, logger)
	preferences := prefStore.New(snapshots, logger)

	// External AI provider
	assistant, err := ai.NewAssistantService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		logger.Fatal("failed to initialize AI provider", zap.Error(err))
	}
	logger.Info("AI provider initialized", zap.String("provider", cfg.AIProvider))

	// Audio output; reminders degrade to silence if no device is available
	player, err := audio.NewPlayer(cfg.AudioOutput)
	if err != nil {
		logger.Warn("audio device unavailable, reminders will be silent", zap.Error(err))
		player = audio.DiscardPlayer{}
	}

	ann := announcer.New(assistant, player, preferences, logger)

	apptHandler := apptDelivery.NewAppointmentHandler(appointments, assistant, ann, logger)
	prefHandler := prefDelivery.NewPreferenceHandler(preferences)

	handler := api.NewHandler(apptHandler, prefHandler)
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
