package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config defines all environment-driven runtime options.
type Config struct {
	Username       string `env:"DEXSHARE_USERNAME"`
	AccountID      string `env:"DEXSHARE_ACCOUNT_ID"`
	Password       string `env:"DEXSHARE_PASSWORD"`
	Region         string `env:"DEXSHARE_REGION" envDefault:"us"`
	DataDir        string `env:"DEXSHARE_DATA_DIR" envDefault:"./data"`
	LogLevel       string `env:"DEXSHARE_LOG_LEVEL" envDefault:"info"`
	TimeoutSeconds int    `env:"DEXSHARE_TIMEOUT" envDefault:"30"`
}

// Load reads .env (if present) and parses environment variables into Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	return cfg, nil
}
