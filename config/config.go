package config

import (
	"os"

	"github.com/joho/godotenv"
)

var (
	DatabaseURL   string
	KafkaBroker   string
	YouTubeAPIKey string
	NotifyURL     string
	Port          string
)

// Load reads .env (if present) and populates the package variables.
func Load() {
	_ = godotenv.Load()

	DatabaseURL = os.Getenv("DATABASE_URL")
	KafkaBroker = os.Getenv("KAFKA_BROKER")
	YouTubeAPIKey = os.Getenv("YOUTUBE_API_KEY")
	NotifyURL = os.Getenv("NOTIFY_URL")
	Port = getEnv("PORT", "8080")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
