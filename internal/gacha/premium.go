package gacha

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultPremiumItems returns the ten premium prizes, Prize1..Prize10.
func DefaultPremiumItems() []string {
	items := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		items = append(items, "Prize"+strconv.Itoa(i))
	}
	return items
}

var ErrEmptyUniverse = errors.New("premium universe is empty")

// PremiumPool tracks collection progress over a fixed set of premium items.
// Every item of the universe is in exactly one of remaining or collected.
type PremiumPool struct {
	universe  []string
	remaining []string // universe order
	collected []string // collection order
}

// NewPremiumPool returns a pool with every item remaining.
func NewPremiumPool(universe []string) (*PremiumPool, error) {
	if err := checkUniverse(universe); err != nil {
		return nil, err
	}
	p := &PremiumPool{universe: append([]string(nil), universe...)}
	p.Reset()
	return p, nil
}

// RestorePremiumPool rebuilds a pool from persisted sets. The sets must be
// disjoint, duplicate free and together equal the universe.
func RestorePremiumPool(universe, remaining, collected []string) (*PremiumPool, error) {
	if err := checkUniverse(universe); err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(universe))
	for _, it := range universe {
		known[it] = true
	}
	seen := make(map[string]bool, len(universe))
	for _, set := range [][]string{remaining, collected} {
		for _, it := range set {
			if !known[it] {
				return nil, fmt.Errorf("premium item %q is not in the universe", it)
			}
			if seen[it] {
				return nil, fmt.Errorf("premium item %q appears more than once", it)
			}
			seen[it] = true
		}
	}
	if len(seen) != len(universe) {
		return nil, fmt.Errorf("premium sets cover %d of %d items", len(seen), len(universe))
	}

	p := &PremiumPool{
		universe:  append([]string(nil), universe...),
		collected: append([]string(nil), collected...),
	}
	// keep remaining in universe order regardless of the stored order
	for _, it := range p.universe {
		if !contains(p.collected, it) {
			p.remaining = append(p.remaining, it)
		}
	}
	return p, nil
}

func checkUniverse(universe []string) error {
	if len(universe) == 0 {
		return ErrEmptyUniverse
	}
	seen := make(map[string]bool, len(universe))
	for _, it := range universe {
		if it == "" {
			return errors.New("premium item id is empty")
		}
		if seen[it] {
			return fmt.Errorf("duplicate premium item %q", it)
		}
		seen[it] = true
	}
	return nil
}

// Resolve picks uniformly among the whole universe. Already collected items
// may be drawn again.
func (p *PremiumPool) Resolve(rng RandomSource) string {
	return p.universe[Index(len(p.universe), rng)]
}

// Record moves item from remaining to collected and reports whether the set
// is now complete. A duplicate leaves the pool unchanged and reports the
// current completion state.
func (p *PremiumPool) Record(item string) bool {
	for i, it := range p.remaining {
		if it == item {
			p.remaining = append(p.remaining[:i:i], p.remaining[i+1:]...)
			p.collected = append(p.collected, item)
			break
		}
	}
	return p.Complete()
}

// Complete reports whether every premium item has been collected.
func (p *PremiumPool) Complete() bool { return len(p.remaining) == 0 }

// Reset restores every item to remaining.
func (p *PremiumPool) Reset() {
	p.remaining = append([]string(nil), p.universe...)
	p.collected = []string{}
}

func (p *PremiumPool) Universe() []string  { return append([]string(nil), p.universe...) }
func (p *PremiumPool) Remaining() []string { return append([]string{}, p.remaining...) }
func (p *PremiumPool) Collected() []string { return append([]string{}, p.collected...) }

// Clone returns an independent copy.
func (p *PremiumPool) Clone() *PremiumPool {
	return &PremiumPool{
		universe:  p.Universe(),
		remaining: p.Remaining(),
		collected: p.Collected(),
	}
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
