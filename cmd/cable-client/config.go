package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type clientConfig struct {
	URL            string        `env:"CABLE_URL" envDefault:"ws://localhost:8080/cable"`
	Token          string        `env:"CABLE_TOKEN,required,notEmpty"`
	Conversations  []int64       `env:"CABLE_CONVERSATIONS" envSeparator:","`
	SkipUserStream bool          `env:"CABLE_SKIP_USER_STREAM"`
	ReconnectDelay time.Duration `env:"CABLE_RECONNECT_DELAY" envDefault:"1s"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogEncoding string `env:"LOG_ENCODING" envDefault:"console"`
}

// loadConfig reads an optional .env file, then the environment.
func loadConfig() (clientConfig, error) {
	_ = godotenv.Load()

	var cfg clientConfig
	if err := env.Parse(&cfg); err != nil {
		return clientConfig{}, fmt.Errorf("parse env: %w", err)
	}
	for _, id := range cfg.Conversations {
		if id <= 0 {
			return clientConfig{}, fmt.Errorf("CABLE_CONVERSATIONS: invalid conversation id %d", id)
		}
	}
	if cfg.SkipUserStream && len(cfg.Conversations) == 0 {
		return clientConfig{}, fmt.Errorf("nothing to subscribe to: set CABLE_CONVERSATIONS or unset CABLE_SKIP_USER_STREAM")
	}
	return cfg, nil
}
