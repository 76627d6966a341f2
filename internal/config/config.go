// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTokenDuration is how long session tokens stay valid when
// TOKEN_DURATION is not set.
const DefaultTokenDuration = 24 * time.Hour

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL      string
	ListenAddr       string
	JWTSecret        string
	TokenDuration    time.Duration
	LogLevel         string
	TelegramBotToken string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	return load(osGetenv)
}

// load is the testable core of Load; getenv abstracts os.Getenv.
func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getenv("DATABASE_URL"),
		JWTSecret:        getenv("JWT_SECRET"),
		LogLevel:         getenv("LOG_LEVEL"),
		TelegramBotToken: getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.ListenAddr = ":8080"
	if port := getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return nil, fmt.Errorf("invalid PORT %q", port)
		}
		cfg.ListenAddr = ":" + port
	}

	cfg.TokenDuration = DefaultTokenDuration
	if durStr := getenv("TOKEN_DURATION"); durStr != "" {
		dur, err := time.ParseDuration(durStr)
		if err != nil || dur <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_DURATION %q", durStr)
		}
		cfg.TokenDuration = dur
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// TelegramEnabled reports whether notification delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}
