package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/trip-assistant-poc/server/internal/agent/model"
	"github.com/trip-assistant-poc/server/internal/core"
	pkgredis "github.com/trip-assistant-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the trip assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Env string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config
	HTTP  HTTPConfig
	Mail  MailConfig

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Classifier model.ClassifierModelConfig
	Answer     model.AnswerModelConfig
	Agent      model.AgentConfig
}

type HTTPConfig struct {
	Port string `envconfig:"HTTP_PORT" default:"8000"`
	// Comma separated list, "*" allows any origin.
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	// Per client IP limit of POST /api/messages; 0 disables it.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

// MailConfig configures feedback notifications. Notifications are off when Host or
// FeedbackEmail is empty.
type MailConfig struct {
	Host          string `envconfig:"SMTP_HOST"`
	Port          int    `envconfig:"SMTP_PORT" default:"587"`
	Username      string `envconfig:"SMTP_USERNAME"`
	Password      string `envconfig:"SMTP_PASSWORD"`
	FeedbackEmail string `envconfig:"FEEDBACK_EMAIL"`
}

func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.FeedbackEmail != ""
}

// Environment returns the parsed APP_ENV.
func (c *AppConfig) Environment() core.Environment {
	return core.ParseEnvironment(c.Env)
}

// Load reads the optional env files and processes the environment into an AppConfig.
// A missing env file is not an error.
func Load(envFiles ...string) (*AppConfig, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must not be blank")
	}
	return &cfg, nil
}
