package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings loaded from the environment. A .env file
// is honored when present.
type Config struct {
	Port string
	Env  string

	// DatabaseURL enables the postgres-backed wallet ledger when set.
	// The service runs with in-memory stores otherwise.
	DatabaseURL string

	// WebhookURL is the auction event sink. Events are logged when unset.
	WebhookURL string

	RoundDuration time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	roundDuration, err := time.ParseDuration(getEnv("ROUND_DURATION", "60s"))
	if err != nil {
		roundDuration = 60 * time.Second
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		WebhookURL:    getEnv("WEBHOOK_URL", ""),
		RoundDuration: roundDuration,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
