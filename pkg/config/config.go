package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// AI provider selection: "gemini", "ollama" or "auto"
	AIProvider    string
	GeminiAPIKey  string
	OllamaBaseURL string
	OllamaModel   string

	// Snapshot storage: "file" or "postgres"
	StoreDriver string
	DataDir     string
	DatabaseURL string

	// Audio output: "device" or "discard"
	AudioOutput string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		AIProvider:    getEnv("AI_PROVIDER", "auto"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),
		StoreDriver:   getEnv("STORE_DRIVER", "file"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		AudioOutput:   getEnv("AUDIO_OUTPUT", "device"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
