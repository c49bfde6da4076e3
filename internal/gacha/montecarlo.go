package gacha

import (
	"errors"
	"math"
	"sort"
)

// SimMode selects how a trial spends its draws.
type SimMode string

const (
	// One single draw per request.
	ModeSingle SimMode = "single"
	// Batches of BatchRandomDraws random draws plus the forced slot.
	ModeBatch SimMode = "batch"
)

// BatchRandomDraws is the number of weighted draws in a batch; the forced
// slot makes BatchSize.
const (
	BatchRandomDraws = 10
	BatchSize        = BatchRandomDraws + 1
)

var ErrInvalidSimMode = errors.New("invalid simulation mode; must be single or batch")

// SimParams describes one completion simulation.
type SimParams struct {
	Mode     SimMode
	Trials   int
	Premium  []string // premium universe; defaults to DefaultPremiumItems
	MaxDraws int      // per-trial cap on counted draws; <=0 means 100000
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Trials that hit MaxDraws before completing the set.
	Truncated int
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne counts draws (as billed: 1 per single, BatchSize per batch)
// until the premium set is complete or maxDraws is reached.
func simulateOne(e *Engine, p SimParams, maxDraws int) (int, bool, error) {
	pool, err := NewPremiumPool(p.Premium)
	if err != nil {
		return 0, false, err
	}
	draws := 0
	for draws < maxDraws {
		switch p.Mode {
		case ModeSingle:
			draws++
			if _, err := e.DrawOne(e.table.single, pool); err != nil {
				return 0, false, err
			}
		case ModeBatch:
			draws += BatchSize
			for i := 0; i < BatchRandomDraws; i++ {
				if _, err := e.DrawOne(e.table.batch, pool); err != nil {
					return 0, false, err
				}
			}
		}
		if pool.Complete() {
			return draws, true, nil
		}
	}
	return draws, false, nil
}

// SimulateCompletion repeats trials and returns statistics on the number of
// draws needed to collect every premium item.
func SimulateCompletion(table *Table, p SimParams, rng RandomSource) (Stats, error) {
	if p.Mode != ModeSingle && p.Mode != ModeBatch {
		return Stats{}, ErrInvalidSimMode
	}
	if p.Trials <= 0 {
		return Stats{}, nil
	}
	if len(p.Premium) == 0 {
		p.Premium = DefaultPremiumItems()
	}
	maxDraws := p.MaxDraws
	if maxDraws <= 0 {
		maxDraws = 100000
	}

	e := NewEngine(table, rng)
	samples := make([]int, p.Trials)
	truncated := 0
	for i := 0; i < p.Trials; i++ {
		v, done, err := simulateOne(e, p, maxDraws)
		if err != nil {
			return Stats{}, err
		}
		if !done {
			truncated++
		}
		samples[i] = v
	}
	st := calcStats(samples)
	st.Truncated = truncated
	return st, nil
}
