// Package app wires configuration, storage and the draw orchestrator.
package app

import (
	"context"
	"fmt"
	"log"
	"reflect"

	"github.com/xtding233/gacha-backend/internal/config"
	"github.com/xtding233/gacha-backend/internal/draw"
	"github.com/xtding233/gacha-backend/internal/gacha"
	"github.com/xtding233/gacha-backend/internal/game"
	"github.com/xtding233/gacha-backend/internal/session"
	"github.com/xtding233/gacha-backend/internal/storage"
)

// App is a ready-to-use orchestrator and the resources behind it.
type App struct {
	Orchestrator *draw.Orchestrator
	Settings     game.Settings

	cfg     config.Config
	loader  *game.Loader
	watcher *game.FileWatcher
	close   func() error
}

// Open loads the game configuration and opens the store. A malformed
// configuration is returned as a *gacha.ConfigError.
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	loader := game.NewLoader(cfg.ConfigDir)
	settings, err := loader.Load(cfg.Game)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	repo, err := session.NewRepository(store, settings.Premium)
	if err != nil {
		_ = closeStore()
		return nil, &gacha.ConfigError{Problems: []string{err.Error()}}
	}

	var rng gacha.RandomSource
	if cfg.Seed != 0 {
		rng = gacha.NewSeededRNG(cfg.Seed)
	}
	return &App{
		Orchestrator: draw.New(settings.Table, repo, settings.Token, rng),
		Settings:     settings,
		cfg:          cfg,
		loader:       loader,
		close:        closeStore,
	}, nil
}

// Watch hot-reloads the rarity table when the game files change. Premium
// items and prices are bound to stored sessions and need a restart.
func (a *App) Watch() {
	if a.cfg.WatchInterval <= 0 || a.watcher != nil {
		return
	}
	a.watcher = a.loader.WatchGame(a.cfg.Game, a.cfg.WatchInterval, func(s game.Settings) {
		a.Orchestrator.SetTable(s.Table)
		if !reflect.DeepEqual(s.Premium, a.Settings.Premium) || s.Token != a.Settings.Token {
			log.Printf("config: premium items or prices changed; restart to apply")
		}
	})
}

// Close stops the watcher and releases the store.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	return a.close()
}
