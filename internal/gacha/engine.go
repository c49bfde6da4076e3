package gacha

import "fmt"

// Outcome is one draw's result. Premium is set iff Tier is SR+; Completed
// then carries the pool's completion state after recording it.
type Outcome struct {
	Tier      Tier
	Item      string
	Premium   string
	Completed bool
}

// Label renders the tier, with the premium item for SR+ draws: "SR+(Prize3)".
func (o Outcome) Label() string {
	if o.Premium == "" {
		return string(o.Tier)
	}
	return fmt.Sprintf("%s(%s)", o.Tier, o.Premium)
}

// Engine performs weighted draws against a Table.
type Engine struct {
	table *Table
	rng   RandomSource
}

// NewEngine creates an engine. A nil rng uses DefaultRNG.
func NewEngine(table *Table, rng RandomSource) *Engine {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Engine{table: table, rng: rng}
}

// Table returns the table the engine draws from.
func (e *Engine) Table() *Table { return e.table }

// DrawOne selects a tier by the distribution weights, then an item uniformly
// within that tier. An SR+ tier also resolves a premium item and records it
// in pool.
func (e *Engine) DrawOne(dist Distribution, pool *PremiumPool) (Outcome, error) {
	if len(dist.Tiers) != len(dist.Weights) {
		return Outcome{}, &ConfigError{Problems: []string{
			fmt.Sprintf("%s: %d tiers but %d weights", dist.Name, len(dist.Tiers), len(dist.Weights)),
		}}
	}
	i, err := Pick(dist.Weights, e.rng)
	if err != nil {
		return Outcome{}, fmt.Errorf("pick %s tier: %w", dist.Name, err)
	}
	tier := dist.Tiers[i]

	items := e.table.pools[tier]
	if len(items) == 0 {
		return Outcome{}, &ConfigError{Problems: []string{fmt.Sprintf("empty item pool for tier %s", tier)}}
	}
	out := Outcome{Tier: tier, Item: items[Index(len(items), e.rng)]}

	if tier.Premium() {
		out.Premium = pool.Resolve(e.rng)
		out.Completed = pool.Record(out.Premium)
	}
	return out, nil
}

// Forced returns the fixed batch slot. It never consumes randomness.
func (e *Engine) Forced() Outcome { return e.table.Forced() }
