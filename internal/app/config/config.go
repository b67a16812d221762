package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	FixturesDir   string `env:"FIXTURES_DIR"`
	EventLogSize  int    `env:"EVENT_LOG_SIZE" envDefault:"128"`
	AsyncDispatch bool   `env:"ASYNC_DISPATCH" envDefault:"true"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. A .env file, when present,
// is folded in first. DATABASE_URL is optional: without it the service runs
// on the in-memory store with demo data.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
