package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration. It is read once at startup and never mutated afterwards.
type Config struct {
	// Server
	Port           int    `env:"PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"0"` // seconds, 0 disables

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"2147483648"` // 2GB in bytes

	// Access gate
	AppPassword     string `env:"APP_PASSWORD" envDefault:"123456"`
	SessionProvider string `env:"SESSION_PROVIDER" envDefault:"memory"` // "memory" or "redis"
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	SessionTTL      int    `env:"SESSION_TTL" envDefault:"43200"` // seconds

	// Model provider
	APIKey          string `env:"API_KEY"`
	APIBaseURL      string `env:"API_BASE_URL"` // optional proxy / alternate endpoint
	TextModel       string `env:"TEXT_MODEL" envDefault:"gemini-2.5-flash"`
	MultimodalModel string `env:"MULTIMODAL_MODEL" envDefault:"gemini-2.5-flash"`
	ReasoningModel  string `env:"REASONING_MODEL" envDefault:"gemini-3-pro-preview"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// LoadDotEnv loads variables from the given files (".env" when none) without overriding
// variables already present. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
