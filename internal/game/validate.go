package game

import (
	"fmt"

	"github.com/xtding233/gacha-backend/internal/gacha"
)

// ValidateRaw checks semantic constraints of a RawConfig. Cross-field rules
// (weights summing to 1, pools backing every drawable tier) are left to
// gacha.NewTable.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// pools
	seenPool := make(map[string]bool)
	for i, p := range cfg.Pools {
		if !gacha.Tier(p.Tier).Valid() {
			errs = append(errs, fmt.Sprintf("pools[%d].tier %q is unknown", i, p.Tier))
		}
		if seenPool[p.Tier] {
			errs = append(errs, fmt.Sprintf("pools[%d].tier %s is listed twice", i, p.Tier))
		}
		seenPool[p.Tier] = true
		if p.Size <= 0 {
			errs = append(errs, fmt.Sprintf("pools[%d].size must be >= 1", i))
		}
	}

	// distributions
	for name, ws := range map[string][]WeightConfig{"single": cfg.Single, "batch": cfg.Batch} {
		for i, w := range ws {
			if !gacha.Tier(w.Tier).Valid() {
				errs = append(errs, fmt.Sprintf("%s[%d].tier %q is unknown", name, i, w.Tier))
			}
			if w.Weight < 0 || w.Weight > 1 {
				errs = append(errs, fmt.Sprintf("%s[%d].weight must be in [0,1]", name, i))
			}
		}
	}

	// forced
	if cfg.Forced != nil {
		if cfg.Forced.Tier != "" && !gacha.Tier(cfg.Forced.Tier).Valid() {
			errs = append(errs, fmt.Sprintf("forced.tier %q is unknown", cfg.Forced.Tier))
		}
		if cfg.Forced.Index != nil && *cfg.Forced.Index < 0 {
			errs = append(errs, "forced.index must be >= 0")
		}
	}

	// premium
	seen := make(map[string]bool, len(cfg.Premium))
	for i, it := range cfg.Premium {
		if it == "" {
			errs = append(errs, fmt.Sprintf("premium[%d] must not be empty", i))
			continue
		}
		if seen[it] {
			errs = append(errs, fmt.Sprintf("premium item %q is listed twice", it))
		}
		seen[it] = true
	}

	// prices (optional)
	if cfg.Prices != nil {
		if cfg.Prices.PerDraw != nil && *cfg.Prices.PerDraw < 0 {
			errs = append(errs, "prices.per_draw must be >= 0")
		}
		if cfg.Prices.PerBatch != nil && *cfg.Prices.PerBatch < 0 {
			errs = append(errs, "prices.per_batch must be >= 0")
		}
	}

	if len(errs) > 0 {
		return &gacha.ConfigError{Problems: errs}
	}
	return nil
}
