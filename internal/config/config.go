package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Version is the single release identifier reported by the CLI -version
// flag and the API health endpoint.
const Version = "1.0.0"

// Config holds the server configuration, loaded from the environment with
// an optional .env file.
type Config struct {
	Port        string
	LogLevel    string
	MaxUploadMB int
}

// New loads configuration. A missing .env file is fine; the environment
// always wins.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 32),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
