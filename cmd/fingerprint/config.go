package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envPrefix prefixes every environment variable the command reads.
const envPrefix = "FINGERPRINT_"

// Config holds the command settings. Environment variables set the
// defaults; flags override them.
type Config struct {
	Backend  string        `env:"BACKEND" envDefault:"auto"`
	Width    int           `env:"WIDTH" envDefault:"800"`
	Height   int           `env:"HEIGHT" envDefault:"500"`
	Asset    string        `env:"ASSET"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
	Digest   string        `env:"DIGEST" envDefault:"sha256"`
	Readback string        `env:"READBACK" envDefault:"swapped"`
	Format   string        `env:"FORMAT" envDefault:"text"`
	Screen   string        `env:"SCREEN"`
	Platform string        `env:"PLATFORM"`
	Timezone string        `env:"TIMEZONE"`
	Verbose  bool          `env:"VERBOSE"`
}

// loadConfig parses FINGERPRINT_* variables from environ, or from the
// process environment when environ is nil.
func loadConfig(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      envPrefix,
		Environment: environ,
	}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}
