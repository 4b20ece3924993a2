package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr      string
	DBPath    string
	JWTSecret string
	AccessTTL time.Duration

	// AI provider settings
	AIProvider      string
	OpenAIKey       string
	OpenAIModel     string
	AnthropicKey    string
	AnthropicModel  string
	OpenAIBaseURL   string
	TransformTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:      getenv("API_ADDR", ":7070"),
		DBPath:    getenv("DB_PATH", "database.db"),
		JWTSecret: getenv("JWT_SECRET_KEY", "jwt-dev-secret-change-in-production"),
		AccessTTL: time.Duration(getenvInt("JWT_ACCESS_TOKEN_EXPIRES", 86400)) * time.Second,

		AIProvider:      getenv("AI_PROVIDER", "openai"),
		OpenAIKey:       getenv("OPENAI_API_KEY", ""),
		OpenAIModel:     getenv("OPENAI_MODEL", "gpt-4o"),
		AnthropicKey:    getenv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getenv("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
		OpenAIBaseURL:   getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		TransformTimeout: time.Duration(getenvInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
