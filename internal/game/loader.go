package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultGame is the game loaded when none is configured.
const DefaultGame = "default"

// Paths helper for default/game files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/configs
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "games", "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.BaseDir, "games", game+".yaml")
}

// Watched returns the files that make up a game's configuration.
func (p Paths) Watched(game string) []string {
	if game == "" || game == DefaultGame {
		return []string{p.DefaultPath()}
	}
	return []string{p.DefaultPath(), p.GamePath(game)}
}

// Loader reads YAML configs and merges default → game.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: game name
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the loader's file layout.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → game.
// It returns the merged RawConfig (without resolution).
func (l *Loader) LoadMerged(game string) (RawConfig, error) {
	if game == "" {
		game = DefaultGame
	}
	l.mu.RLock()
	if cfg, ok := l.cache[game]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if game != DefaultGame {
		gameCfg, err := readYAML(l.paths.GamePath(game))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read game %s: %w", game, err)
		}
		merged = mergeRaw(defCfg, gameCfg)
	}

	l.mu.Lock()
	l.cache[game] = merged
	l.mu.Unlock()

	return merged, nil
}

// Load merges, validates and resolves the configuration of game.
func (l *Loader) Load(game string) (Settings, error) {
	raw, err := l.LoadMerged(game)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(raw)
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// mergeRaw overlays b onto a. Scalars override when set; lists replace
// the whole list when provided.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.ItemPrefix != "" {
		out.ItemPrefix = b.ItemPrefix
	}

	if len(b.Pools) > 0 {
		out.Pools = append([]PoolConfig(nil), b.Pools...)
	}
	if len(b.Single) > 0 {
		out.Single = append([]WeightConfig(nil), b.Single...)
	}
	if len(b.Batch) > 0 {
		out.Batch = append([]WeightConfig(nil), b.Batch...)
	}
	if len(b.Premium) > 0 {
		out.Premium = append([]string(nil), b.Premium...)
	}

	// forced
	switch {
	case out.Forced == nil && b.Forced != nil:
		c := *b.Forced
		out.Forced = &c
	case out.Forced != nil && b.Forced != nil:
		c := *out.Forced
		if b.Forced.Tier != "" {
			c.Tier = b.Forced.Tier
		}
		if b.Forced.Index != nil {
			c.Index = b.Forced.Index
		}
		out.Forced = &c
	}

	// prices
	switch {
	case out.Prices == nil && b.Prices != nil:
		c := *b.Prices
		out.Prices = &c
	case out.Prices != nil && b.Prices != nil:
		c := *out.Prices
		if b.Prices.Name != "" {
			c.Name = b.Prices.Name
		}
		if b.Prices.PerDraw != nil {
			c.PerDraw = b.Prices.PerDraw
		}
		if b.Prices.PerBatch != nil {
			c.PerBatch = b.Prices.PerBatch
		}
		out.Prices = &c
	}

	return out
}
