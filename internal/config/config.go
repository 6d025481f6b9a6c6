// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime knob. All fields read from RW_-prefixed
// environment variables.
type Config struct {
	// Addr is the listen address.
	Addr string `envconfig:"ADDR" default:":8080"`

	// StoreDriver selects the persistence backend: "jsonfile" keeps
	// the flat JSON document, "sqlite" the transactional alternative.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"jsonfile"`

	// StorePath is the document path (jsonfile) or database path
	// (sqlite).
	StorePath string `envconfig:"STORE_PATH" default:"./data/reportwriter.json"`

	// JWTSecret signs session tokens. The default is for development
	// only.
	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-insecure-secret-change"`

	// TokenTTL is how long session tokens stay valid.
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("rw", cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.StoreDriver != "jsonfile" && cfg.StoreDriver != "sqlite" {
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return cfg, nil
}
