// Package config loads application settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration
type Config struct {
	LogLevel  string `env:"KADAI_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFile   string `env:"KADAI_LOG_FILE"`
	Seed      bool   `env:"KADAI_SEED" envDefault:"true"`
	AltScreen bool   `env:"KADAI_ALT_SCREEN" envDefault:"true"`
	Theme     string `env:"KADAI_THEME" envDefault:"tokyo-night" validate:"oneof=tokyo-night slate"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
