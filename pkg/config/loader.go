package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into cfg using `env` struct tags. The
// gateway keeps all runtime configuration in the environment; there are no
// config files to merge.
//
// Example:
//
//	type Config struct {
//	    HTTPPort  int    `env:"AUTH_HTTP_PORT" envDefault:"8010"`
//	    JWTSecret string `env:"JWT_SECRET"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
