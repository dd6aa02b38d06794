package config

import (
	"os"
)

// Config holds all runtime configuration, read once at startup and passed to
// components explicitly. No package keeps ambient access to the environment.
type Config struct {
	Port         string
	MongoURL     string
	DBName       string
	GeminiAPIKey string
	FrontendURL  string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8001"),
		MongoURL:     getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:       getEnv("DB_NAME", "papergenius"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

// GeminiConfigured reports whether an LLM credential is present. When it is
// not, question generation degrades to the fallback synthesizer.
func (c *Config) GeminiConfigured() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
