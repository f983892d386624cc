package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	predictorArtifact = "artifact"
	predictorOpenAI   = "openai"
)

type Config struct {
	Port           string
	DatabaseURL    string
	EnableDB       bool
	Predictor      string
	ModelPath      string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	LogLevel       string
	LogFormat      string
	RateLimitRPS   int
	RateLimitBurst int
	CORSOrigins    []string
	StaticRoot     string
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		EnableDB:      strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		Predictor:     strings.ToLower(getEnv("PREDICTOR", predictorArtifact)),
		ModelPath:     getEnv("MODEL_PATH", "model.yaml"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		StaticRoot:    getEnv("STATIC_DIR", detectStaticRoot()),
	}

	var err error
	if cfg.RateLimitRPS, err = getEnvInt("RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}

	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	switch cfg.Predictor {
	case predictorArtifact:
	case predictorOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when PREDICTOR=openai")
		}
	default:
		return nil, fmt.Errorf("unknown PREDICTOR %q (want %s or %s)", cfg.Predictor, predictorArtifact, predictorOpenAI)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, val)
	}
	return n, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
