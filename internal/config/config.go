package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Provider exposes the configuration values the application reads at runtime.
// Components depend on this interface so tests can hand them a fixed Config.
type Provider interface {
	GetServerAddr() string
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetSessionSecret() string
	GetMessageHideAfter() time.Duration
	GetBoardIdleTTL() time.Duration
	GetRateLimitPerSecond() float64
	GetStaticDir() string
	GetLogFormat() string
	GetLogLevel() string
	GetPubSubDebug() bool
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":8080"`
	APIBaseURL         string        `env:"ACTIVITIES_API_URL" envDefault:"http://localhost:8000"`
	APITimeout         time.Duration `env:"ACTIVITIES_API_TIMEOUT" envDefault:"0s"`
	SessionSecret      string        `env:"SESSION_SECRET" envDefault:"dev-only-session-secret-change-me"`
	MessageHideAfter   time.Duration `env:"MESSAGE_HIDE_AFTER" envDefault:"5s"`
	BoardIdleTTL       time.Duration `env:"BOARD_IDLE_TTL" envDefault:"30m"`
	RateLimitPerSecond float64       `env:"RATE_LIMIT_PER_SECOND" envDefault:"10"`
	StaticDir          string        `env:"STATIC_DIR"`
	LogFormat          string        `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"debug"`
	PubSubDebug        bool          `env:"PUBSUB_DEBUG" envDefault:"false"`
}

// New loads configuration from a .env file (if present) and the environment.
// It exits the process when the environment holds values that cannot be parsed.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// Parse reads the environment into a Config without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("ACTIVITIES_API_URL must not be empty")
	}
	if cfg.MessageHideAfter <= 0 {
		return nil, fmt.Errorf("MESSAGE_HIDE_AFTER must be positive, got %s", cfg.MessageHideAfter)
	}
	return cfg, nil
}

func (c *Config) GetServerAddr() string              { return c.ServerAddr }
func (c *Config) GetAPIBaseURL() string              { return c.APIBaseURL }
func (c *Config) GetAPITimeout() time.Duration       { return c.APITimeout }
func (c *Config) GetSessionSecret() string           { return c.SessionSecret }
func (c *Config) GetMessageHideAfter() time.Duration { return c.MessageHideAfter }
func (c *Config) GetBoardIdleTTL() time.Duration     { return c.BoardIdleTTL }
func (c *Config) GetRateLimitPerSecond() float64     { return c.RateLimitPerSecond }
func (c *Config) GetStaticDir() string               { return c.StaticDir }
func (c *Config) GetLogFormat() string               { return c.LogFormat }
func (c *Config) GetLogLevel() string                { return c.LogLevel }
func (c *Config) GetPubSubDebug() bool               { return c.PubSubDebug }
