package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// CatalogConfig points at the plan catalog API fan-out targets.
type CatalogConfig struct {
	BaseURL string
}

// SessionConfig controls where conversation transcripts live between turns.
type SessionConfig struct {
	Store string // "memory" or "redis"
	TTL   time.Duration
}

type AIConfig struct {
	Provider      string // "anthropic" or "ollama"
	Model         string
	AnthropicKey  string
	OllamaBaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:5001"),
		},
		Session: SessionConfig{
			Store: getEnv("SESSION_STORE", "memory"),
			TTL:   time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "anthropic"),
			Model:         getEnv("LLM_MODEL", ""),
			AnthropicKey:  getEnv("ANTHROPIC_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
