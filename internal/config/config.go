package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv          string `envconfig:"APP_ENV" default:"development"`
	Port            string `envconfig:"PORT" default:"8080"`
	DatabasePath    string `envconfig:"DATABASE_PATH" default:"./data/expensepro.db"`
	JWTSecret       string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTLMinutes int    `envconfig:"TOKEN_TTL_MINUTES" default:"60"`
	AllowedOrigins  string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}
