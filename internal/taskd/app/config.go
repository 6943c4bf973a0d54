package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// JWTSecret signs access tokens. Required; the process refuses to start
	// without it.
	JWTSecret string `env:"TASKD_JWT_SECRET"`

	Issuer         string        `env:"TASKD_ISSUER" envDefault:"taskd"`
	AccessTokenTTL time.Duration `env:"TASKD_ACCESS_TOKEN_TTL" envDefault:"1h"`

	DatabaseFile string `env:"TASKD_DATABASE_FILE" envDefault:"taskd.db"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("TASKD_JWT_SECRET is required")
	}
	return cfg, nil
}
