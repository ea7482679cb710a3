package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// DatabaseURL is the MongoDB connection string. When empty the service
	// runs in degraded mode without a database.
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"saas_landing"`
	Port         string `env:"PORT" envDefault:"8000"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
