// Package config resolves all process configuration from the environment once at
// startup. Components receive the resolved structs explicitly; nothing reads
// os.Getenv after Load returns.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full configuration for a generation run.
type Config struct {
	Anthropic AnthropicConfig
	Database  DatabaseConfig
}

// AnthropicConfig configures the generation service client.
type AnthropicConfig struct {
	APIKey string `env:"ANTHROPIC_API_KEY"`
	Model  string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-sonnet-20240229"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Name     string `env:"DB_NAME" envDefault:"financial_data"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN returns a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		d.Name, d.User, d.Password, d.Host, d.Port, d.SSLMode)
}

// Load reads configuration from the environment. The Anthropic API key is
// required; every database parameter has a default.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.Anthropic.APIKey == "" {
		return nil, fmt.Errorf("config.Load: ANTHROPIC_API_KEY is required")
	}
	return &cfg, nil
}

// LoadDatabase reads only the database configuration. Used by commands that
// never talk to the generation service, such as schema migration.
func LoadDatabase() (*DatabaseConfig, error) {
	var cfg DatabaseConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config.LoadDatabase: %w", err)
	}
	return &cfg, nil
}
