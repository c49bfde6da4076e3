package gacha

import (
	"fmt"
	"strings"
)

// Tier is a rarity category.
type Tier string

const (
	TierN      Tier = "N"
	TierNPlus  Tier = "N+"
	TierR      Tier = "R"
	TierRPlus  Tier = "R+"
	TierSR     Tier = "SR"
	TierSRPlus Tier = "SR+"
)

// AllTiers returns every tier from lowest to highest.
func AllTiers() []Tier {
	return []Tier{TierN, TierNPlus, TierR, TierRPlus, TierSR, TierSRPlus}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	for _, k := range AllTiers() {
		if t == k {
			return true
		}
	}
	return false
}

// Premium reports whether a draw of this tier resolves a premium item.
func (t Tier) Premium() bool { return t == TierSRPlus }

// Names of the two draw contexts.
const (
	DistSingle = "single"
	DistBatch  = "batch"
)

// Distribution is a named, ordered tier set with one probability per tier.
type Distribution struct {
	Name    string
	Tiers   []Tier
	Weights []float64
}

func (d Distribution) clone() Distribution {
	return Distribution{
		Name:    d.Name,
		Tiers:   append([]Tier(nil), d.Tiers...),
		Weights: append([]float64(nil), d.Weights...),
	}
}

// DefaultSingle is the six-tier distribution used by single draws.
func DefaultSingle() Distribution {
	return Distribution{
		Name:    DistSingle,
		Tiers:   []Tier{TierN, TierNPlus, TierR, TierRPlus, TierSR, TierSRPlus},
		Weights: []float64{0.33, 0.25, 0.20, 0.15, 0.05, 0.02},
	}
}

// DefaultBatch is the four-tier distribution used by the random slots of a batch.
func DefaultBatch() Distribution {
	return Distribution{
		Name:    DistBatch,
		Tiers:   []Tier{TierR, TierRPlus, TierSR, TierSRPlus},
		Weights: []float64{0.57, 0.30, 0.10, 0.03},
	}
}

// DefaultItemPrefix is the root of generated item identifiers.
const DefaultItemPrefix = "/static/img"

// DefaultPoolSizes is the number of items per tier.
var DefaultPoolSizes = map[Tier]int{
	TierN:      43,
	TierNPlus:  43,
	TierR:      134,
	TierRPlus:  99,
	TierSR:     25,
	TierSRPlus: 26,
}

// ItemID builds the identifier of the i-th (0-based) item of a tier,
// e.g. "/static/img/SR/f001.jpg".
func ItemID(prefix string, tier Tier, i int) string {
	return fmt.Sprintf("%s/%s/f%03d.jpg", strings.TrimRight(prefix, "/"), tier, i+1)
}

// GeneratePool builds n sequential item identifiers for a tier.
func GeneratePool(prefix string, tier Tier, n int) []string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, ItemID(prefix, tier, i))
	}
	return items
}

// DefaultPools builds the item pools for every tier using DefaultPoolSizes.
func DefaultPools(prefix string) map[Tier][]string {
	pools := make(map[Tier][]string, len(DefaultPoolSizes))
	for tier, n := range DefaultPoolSizes {
		pools[tier] = GeneratePool(prefix, tier, n)
	}
	return pools
}

// ForcedSlot is the fixed last outcome of every batch.
type ForcedSlot struct {
	Tier  Tier
	Index int // 0-based index into the tier pool
}

// DefaultForced is SR item f001.
func DefaultForced() ForcedSlot { return ForcedSlot{Tier: TierSR, Index: 0} }

// Table is the immutable rarity configuration: item pools, the single and
// batch distributions and the forced batch slot.
type Table struct {
	pools  map[Tier][]string
	single Distribution
	batch  Distribution
	forced Outcome
}

// NewTable validates the configuration and returns a Table.
// Every problem found is reported in one *ConfigError.
func NewTable(pools map[Tier][]string, single, batch Distribution, forced ForcedSlot) (*Table, error) {
	var problems []string

	single.Name = DistSingle
	batch.Name = DistBatch
	problems = append(problems, checkDistribution(single, pools)...)
	problems = append(problems, checkDistribution(batch, pools)...)

	for tier, items := range pools {
		if !tier.Valid() {
			problems = append(problems, fmt.Sprintf("pool: unknown tier %q", tier))
			continue
		}
		seen := make(map[string]struct{}, len(items))
		for _, it := range items {
			if it == "" {
				problems = append(problems, fmt.Sprintf("pool %s: empty item id", tier))
				break
			}
			if _, dup := seen[it]; dup {
				problems = append(problems, fmt.Sprintf("pool %s: duplicate item %q", tier, it))
				break
			}
			seen[it] = struct{}{}
		}
	}

	forcedItems := pools[forced.Tier]
	switch {
	case !forced.Tier.Valid():
		problems = append(problems, fmt.Sprintf("forced: unknown tier %q", forced.Tier))
	case forced.Tier.Premium():
		problems = append(problems, "forced: tier must not be premium")
	case forced.Index < 0 || forced.Index >= len(forcedItems):
		problems = append(problems, fmt.Sprintf("forced: index %d out of range for tier %s (%d items)", forced.Index, forced.Tier, len(forcedItems)))
	}

	if len(problems) > 0 {
		return nil, &ConfigError{Problems: problems}
	}

	cp := make(map[Tier][]string, len(pools))
	for tier, items := range pools {
		cp[tier] = append([]string(nil), items...)
	}
	return &Table{
		pools:  cp,
		single: single.clone(),
		batch:  batch.clone(),
		forced: Outcome{Tier: forced.Tier, Item: forcedItems[forced.Index]},
	}, nil
}

// DefaultTable returns the built-in table.
func DefaultTable() *Table {
	t, err := NewTable(DefaultPools(DefaultItemPrefix), DefaultSingle(), DefaultBatch(), DefaultForced())
	if err != nil {
		panic(err) // built-in constants are valid
	}
	return t
}

func checkDistribution(d Distribution, pools map[Tier][]string) []string {
	var problems []string
	if len(d.Tiers) == 0 {
		return []string{d.Name + ": no tiers"}
	}
	if len(d.Tiers) != len(d.Weights) {
		problems = append(problems, fmt.Sprintf("%s: %d tiers but %d weights", d.Name, len(d.Tiers), len(d.Weights)))
	}
	seen := make(map[Tier]bool, len(d.Tiers))
	for _, tier := range d.Tiers {
		if seen[tier] {
			problems = append(problems, fmt.Sprintf("%s: duplicate tier %s", d.Name, tier))
		}
		seen[tier] = true
		if !tier.Valid() {
			problems = append(problems, fmt.Sprintf("%s: unknown tier %q", d.Name, tier))
			continue
		}
		if len(pools[tier]) == 0 {
			problems = append(problems, fmt.Sprintf("%s: empty item pool for tier %s", d.Name, tier))
		}
	}
	for i, w := range d.Weights {
		if validateProb(w) != nil {
			problems = append(problems, fmt.Sprintf("%s: weights[%d] must be in [0,1]", d.Name, i))
		}
	}
	if !sumsToOne(d.Weights) {
		problems = append(problems, fmt.Sprintf("%s: weights must sum to 1", d.Name))
	}
	return problems
}

// ItemsFor returns a copy of the item pool for tier.
func (t *Table) ItemsFor(tier Tier) []string {
	return append([]string(nil), t.pools[tier]...)
}

// Single returns the single-draw distribution.
func (t *Table) Single() Distribution { return t.single.clone() }

// Batch returns the batch-draw distribution.
func (t *Table) Batch() Distribution { return t.batch.clone() }

// Forced returns the fixed batch slot outcome.
func (t *Table) Forced() Outcome { return t.forced }

// Contains reports whether item belongs to the pool of tier.
func (t *Table) Contains(tier Tier, item string) bool {
	for _, it := range t.pools[tier] {
		if it == item {
			return true
		}
	}
	return false
}

// ConfigError reports a malformed rarity table. It is fatal at startup.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid rarity table: " + strings.Join(e.Problems, "; ")
}
