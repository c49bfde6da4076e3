package game

import (
	"github.com/xtding233/gacha-backend/internal/gacha"
	"github.com/xtding233/gacha-backend/internal/token"
)

// Settings is a resolved game configuration, ready for the draw layer.
type Settings struct {
	Table   *gacha.Table
	Premium []string
	Token   token.Token
	Version string // effective config version for tracing
}

// Resolve validates cfg and fills everything it leaves unset from the
// built-in defaults. Any problem is returned as a *gacha.ConfigError.
func Resolve(cfg RawConfig) (Settings, error) {
	if err := ValidateRaw(cfg); err != nil {
		return Settings{}, err
	}

	prefix := cfg.ItemPrefix
	if prefix == "" {
		prefix = gacha.DefaultItemPrefix
	}
	sizes := make(map[gacha.Tier]int, len(gacha.DefaultPoolSizes))
	for tier, n := range gacha.DefaultPoolSizes {
		sizes[tier] = n
	}
	for _, p := range cfg.Pools {
		sizes[gacha.Tier(p.Tier)] = p.Size
	}
	pools := make(map[gacha.Tier][]string, len(sizes))
	for tier, n := range sizes {
		pools[tier] = gacha.GeneratePool(prefix, tier, n)
	}

	single := gacha.DefaultSingle()
	if len(cfg.Single) > 0 {
		single = distribution(gacha.DistSingle, cfg.Single)
	}
	batch := gacha.DefaultBatch()
	if len(cfg.Batch) > 0 {
		batch = distribution(gacha.DistBatch, cfg.Batch)
	}

	forced := gacha.DefaultForced()
	if cfg.Forced != nil {
		if cfg.Forced.Tier != "" {
			forced.Tier = gacha.Tier(cfg.Forced.Tier)
		}
		if cfg.Forced.Index != nil {
			forced.Index = *cfg.Forced.Index
		}
	}

	table, err := gacha.NewTable(pools, single, batch, forced)
	if err != nil {
		return Settings{}, err
	}

	premium := gacha.DefaultPremiumItems()
	if len(cfg.Premium) > 0 {
		premium = append([]string(nil), cfg.Premium...)
	}

	tok := token.Default()
	if p := cfg.Prices; p != nil {
		if p.Name != "" {
			tok.Name = p.Name
		}
		if p.PerDraw != nil {
			tok.PerDraw = *p.PerDraw
		}
		if p.PerBatch != nil {
			tok.PerBatch = *p.PerBatch
		}
	}

	return Settings{Table: table, Premium: premium, Token: tok, Version: cfg.Version}, nil
}

func distribution(name string, ws []WeightConfig) gacha.Distribution {
	d := gacha.Distribution{Name: name}
	for _, w := range ws {
		d.Tiers = append(d.Tiers, gacha.Tier(w.Tier))
		d.Weights = append(d.Weights, w.Weight)
	}
	return d
}
