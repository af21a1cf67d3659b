package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Redis    RedisConfig
	Reader   ReaderConfig
	LLM      LLMConfig
}

type DatabaseConfig struct {
	URL string `env:"DATABASE_URL"`
}

// RedisConfig is optional: an empty Addr disables the shared rate-limit
// counter and the service falls back to the in-process limiter.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// ReaderConfig points at the reader service that converts a URL into
// readable text. The API key is optional; unauthenticated calls are
// allowed but more tightly limited upstream.
type ReaderConfig struct {
	BaseURL string `env:"READER_BASE_URL, default=https://r.jina.ai"`
	APIKey  string `env:"READER_API_KEY"`
}

// LLMConfig configures the chat-completion summarizer. Without an API
// key every summary degrades to the not-configured fallback sentence.
type LLMConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"OPENAI_MODEL, default=gpt-4o-mini"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// MustValidate fails fast on configuration the process cannot run
// without. Missing secrets are a deployment error, not a per-request one.
func (c *Config) MustValidate() {
	if c.JWTSecret == "" {
		panic("config: JWT_SECRET is required")
	}
	if c.Database.URL == "" {
		panic("config: DATABASE_URL is required")
	}
}
