// types.go
package game

// RawConfig is a game file as loaded from YAML. Unset fields fall back to
// the file below it (default.yaml) and finally to the built-in table.
type RawConfig struct {
	Version    string         `yaml:"version"`
	ItemPrefix string         `yaml:"item_prefix,omitempty"`
	Pools      []PoolConfig   `yaml:"pools,omitempty"`
	Single     []WeightConfig `yaml:"single,omitempty"`
	Batch      []WeightConfig `yaml:"batch,omitempty"`
	Forced     *ForcedConfig  `yaml:"forced,omitempty"`
	Premium    []string       `yaml:"premium,omitempty"`
	Prices     *PriceConfig   `yaml:"prices,omitempty"`
	Notes      string         `yaml:"notes,omitempty"`
}

// PoolConfig sizes the generated item pool of one tier.
type PoolConfig struct {
	Tier string `yaml:"tier"`
	Size int    `yaml:"size"`
}

// WeightConfig is one entry of a draw distribution, in order.
type WeightConfig struct {
	Tier   string  `yaml:"tier"`
	Weight float64 `yaml:"weight"`
}

type ForcedConfig struct {
	Tier  string `yaml:"tier"`
	Index *int   `yaml:"index"` // 0-based
}

type PriceConfig struct {
	Name     string `yaml:"name,omitempty"`
	PerDraw  *int   `yaml:"per_draw"`
	PerBatch *int   `yaml:"per_batch"`
}
