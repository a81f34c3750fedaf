package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"

	ProviderEliza  = "eliza"
	ProviderOpenAI = "openai"
)

type Config struct {
	BotToken   string
	StorageDir string
	Backend    string
	Provider   string
	OpenAIKey  string
	LogLevel   string
}

func Load() (Config, error) {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load()

	c := Config{
		BotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		StorageDir: getOrDefault("STORAGE_DIR", "./data"),
		Backend:    getOrDefault("STORAGE_BACKEND", BackendSQLite),
		Provider:   getOrDefault("PROVIDER", ProviderEliza),
		OpenAIKey:  os.Getenv("OPENAI_API_KEY"),
		LogLevel:   getOrDefault("LOG_LEVEL", "info"),
	}

	if c.BotToken == "" {
		return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Backend != BackendSQLite && c.Backend != BackendBolt {
		return c, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendSQLite, BackendBolt, c.Backend)
	}
	if c.Provider != ProviderEliza && c.Provider != ProviderOpenAI {
		return c, fmt.Errorf("PROVIDER must be %q or %q, got %q", ProviderEliza, ProviderOpenAI, c.Provider)
	}

	return c, nil
}

func getOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
