// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/xtding233/gacha-backend/internal/storage"
	"github.com/xtding233/gacha-backend/internal/storage/redis"
)

// Config is shared by the server and the CLI. The CLI overrides fields
// with its flags.
type Config struct {
	HTTPAddr string `env:"GACHA_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"GACHA_GRPC_ADDR" envDefault:":9090"`

	ConfigDir     string        `env:"GACHA_CONFIG_DIR"     envDefault:"configs"`
	Game          string        `env:"GACHA_GAME"           envDefault:"default"`
	WatchInterval time.Duration `env:"GACHA_WATCH_INTERVAL" envDefault:"2s"` // 0 disables hot reload

	Store      string `env:"GACHA_STORE"       envDefault:"file"`
	DataDir    string `env:"GACHA_DATA_DIR"    envDefault:"."`
	SQLitePath string `env:"GACHA_SQLITE_PATH" envDefault:"gacha.db"`

	RedisAddr     string        `env:"GACHA_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string        `env:"GACHA_REDIS_PASSWORD"`
	RedisDB       int           `env:"GACHA_REDIS_DB"       envDefault:"0"`
	RedisTTL      time.Duration `env:"GACHA_REDIS_TTL"      envDefault:"0s"`

	// Seed makes draws reproducible; 0 uses the crypto source.
	Seed uint64 `env:"GACHA_SEED" envDefault:"0"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// StorageOptions maps the store settings onto storage.Options.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Kind:       c.Store,
		Dir:        c.DataDir,
		SQLitePath: c.SQLitePath,
		Redis: redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			TTL:      c.RedisTTL,
		},
	}
}
