package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	BaseURL         string
	HTTPTimeout     time.Duration
	SessionDir      string
	Env             string
	FakeBackendAddr string
	PixTTL          time.Duration
}

// Load reads configuration from the .env file and environment variables.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		BaseURL:         getEnv("BASE_URL", "https://apideliverylivre.com.br/api"),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 15*time.Second),
		SessionDir:      getEnv("SESSION_DIR", defaultSessionDir()),
		Env:             getEnv("APP_ENV", "development"),
		FakeBackendAddr: getEnv("FAKE_BACKEND_ADDR", ":8085"),
		PixTTL:          getDuration("PIX_TTL", 5*time.Minute),
	}
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return home + "/.storefront"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}
