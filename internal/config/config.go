// Package config loads server configuration from environment variables
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/oakmund/grindstone/internal/errors"
)

// Server holds everything the server process reads from its environment
type Server struct {
	// GRPCPort is the listen port for the health/reflection surface
	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`

	// RedisAddr is the save-slot backend
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// SaveSlot names the slot the loop persists into
	SaveSlot string `env:"SAVE_SLOT" envDefault:"default"`

	// SpawnInterval paces the spawn tick
	SpawnInterval time.Duration `env:"SPAWN_INTERVAL" envDefault:"3s"`

	// CombatInterval is the base combat tick; the loop rescales it by the
	// player's attack speed
	CombatInterval time.Duration `env:"COMBAT_INTERVAL" envDefault:"1s"`

	// MaxEnemies caps the active encounter list; 0 uses the built-in cap
	MaxEnemies int `env:"MAX_ENEMIES" envDefault:"0"`

	// RNGSeed pins the random sources for reproducible runs; 0 seeds
	// randomly
	RNGSeed uint64 `env:"RNG_SEED" envDefault:"0"`
}

// LoadServer parses the server configuration from the environment
func LoadServer() (*Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	vb := errors.NewValidationBuilder()
	if cfg.GRPCPort <= 0 || cfg.GRPCPort > 65535 {
		vb.InvalidField("GRPC_PORT", "must be a valid port")
	}
	if cfg.SpawnInterval <= 0 {
		vb.InvalidField("SPAWN_INTERVAL", "must be positive")
	}
	if cfg.CombatInterval <= 0 {
		vb.InvalidField("COMBAT_INTERVAL", "must be positive")
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}
