package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter, loaded from the environment.
type Config struct {
	OpenAIAPIKey       string
	OpenAIModel        string
	SlackAPIToken      string
	SlackSigningSecret string
	SlackChannel       string
	SeedKeywords       []string
	SampleSize         int
	MaxMatchesPerKey   int
	RunInterval        time.Duration
	ServerPort         string
}

// Load builds a Config from the environment. A .env file in the working
// directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		SlackAPIToken:      getEnv("SLACK_API_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		SlackChannel:       getEnv("SLACK_CHANNEL", "#papers"),
		SeedKeywords:       splitAndTrim(getEnv("SEED_KEYWORDS", "AI,LLM,transformer")),
		SampleSize:         getEnvAsInt("SAMPLE_SIZE", 3),
		MaxMatchesPerKey:   getEnvAsInt("MAX_MATCHES_PER_KEYWORD", 1),
		RunInterval:        getEnvAsDuration("RUN_INTERVAL", 0),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
	}

	if c.SampleSize <= 0 {
		return nil, fmt.Errorf("SAMPLE_SIZE must be positive")
	}
	if c.MaxMatchesPerKey <= 0 {
		return nil, fmt.Errorf("MAX_MATCHES_PER_KEYWORD must be positive")
	}
	if len(c.SeedKeywords) < c.SampleSize {
		return nil, fmt.Errorf("SEED_KEYWORDS must contain at least %d keywords, got %d", c.SampleSize, len(c.SeedKeywords))
	}

	return c, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
