package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// SweepInterval controls how often expired rooms and files are purged.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	Storage  StorageConfig
	Postgres PostgresConfig
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASS" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"driftroom"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		p.Host, p.User, p.Password, p.Name, p.Port, p.SSLMode)
}

type StorageConfig struct {
	// BaseDir is where the local object store keeps uploaded blobs.
	BaseDir string `env:"STORAGE_DIR" envDefault:"./uploads"`

	// URLSecret signs time-limited download URLs.
	URLSecret string `env:"STORAGE_URL_SECRET" envDefault:"driftroom-dev-secret"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
