package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration so main stays lean.
type Config struct {
	Addr      string `env:"SIMWARGA_ADDR" envDefault:":8080"`
	AdminAddr string `env:"SIMWARGA_ADMIN_ADDR" envDefault:":9091"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	PostgresURL string `env:"POSTGRES_URL,required"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	JWTSigningKey string        `env:"JWT_SIGNING_KEY,required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Bootstrap credentials for the first adminSistem account. Skipped when empty.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Upper bound on concurrent keluarga enrichments in list responses.
	EnrichConcurrency int `env:"ENRICH_CONCURRENCY" envDefault:"8"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
