package gacha_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/xtding233/gacha-backend/internal/gacha"
)

func TestDefaultTablePools(t *testing.T) {
	table := gacha.DefaultTable()
	want := map[gacha.Tier]int{
		gacha.TierN: 43, gacha.TierNPlus: 43, gacha.TierR: 134,
		gacha.TierRPlus: 99, gacha.TierSR: 25, gacha.TierSRPlus: 26,
	}
	for tier, n := range want {
		if got := len(table.ItemsFor(tier)); got != n {
			t.Fatalf("tier %s: want %d items, got %d", tier, n, got)
		}
	}
	if got := table.ItemsFor(gacha.TierSR)[0]; got != "/static/img/SR/f001.jpg" {
		t.Fatalf("unexpected first SR item %q", got)
	}
	if got := table.ItemsFor(gacha.TierR)[133]; got != "/static/img/R/f134.jpg" {
		t.Fatalf("unexpected last R item %q", got)
	}
}

func TestDefaultDistributions(t *testing.T) {
	table := gacha.DefaultTable()
	single, batch := table.Single(), table.Batch()
	if len(single.Tiers) != 6 || len(single.Weights) != 6 {
		t.Fatalf("single distribution must have 6 tiers, got %d/%d", len(single.Tiers), len(single.Weights))
	}
	if len(batch.Tiers) != 4 || batch.Tiers[0] != gacha.TierR || batch.Tiers[3] != gacha.TierSRPlus {
		t.Fatalf("unexpected batch tiers %v", batch.Tiers)
	}
	if single.Name != gacha.DistSingle || batch.Name != gacha.DistBatch {
		t.Fatalf("unexpected names %q/%q", single.Name, batch.Name)
	}
	forced := table.Forced()
	if forced.Tier != gacha.TierSR || forced.Item != "/static/img/SR/f001.jpg" || forced.Premium != "" {
		t.Fatalf("unexpected forced slot %+v", forced)
	}
}

func TestTableAccessorsReturnCopies(t *testing.T) {
	table := gacha.DefaultTable()
	items := table.ItemsFor(gacha.TierN)
	items[0] = "mutated"
	if table.ItemsFor(gacha.TierN)[0] == "mutated" {
		t.Fatalf("ItemsFor must return a copy")
	}
	single := table.Single()
	single.Weights[0] = 1
	if table.Single().Weights[0] != 0.33 {
		t.Fatalf("Single must return a copy")
	}
}

func TestNewTableRejectsMalformedConfig(t *testing.T) {
	pools := gacha.DefaultPools(gacha.DefaultItemPrefix)

	tests := []struct {
		name   string
		mutate func(pools map[gacha.Tier][]string, single, batch *gacha.Distribution, forced *gacha.ForcedSlot)
		want   string
	}{
		{
			name: "weight length mismatch",
			mutate: func(_ map[gacha.Tier][]string, single, _ *gacha.Distribution, _ *gacha.ForcedSlot) {
				single.Weights = single.Weights[:5]
			},
			want: "6 tiers but 5 weights",
		},
		{
			name: "weights do not sum to one",
			mutate: func(_ map[gacha.Tier][]string, _, batch *gacha.Distribution, _ *gacha.ForcedSlot) {
				batch.Weights = []float64{0.5, 0.3, 0.1, 0.03}
			},
			want: "batch: weights must sum to 1",
		},
		{
			name: "empty pool",
			mutate: func(pools map[gacha.Tier][]string, _, _ *gacha.Distribution, _ *gacha.ForcedSlot) {
				pools[gacha.TierSRPlus] = nil
			},
			want: "empty item pool for tier SR+",
		},
		{
			name: "forced out of range",
			mutate: func(_ map[gacha.Tier][]string, _, _ *gacha.Distribution, forced *gacha.ForcedSlot) {
				forced.Index = 25
			},
			want: "forced: index 25 out of range",
		},
		{
			name: "forced premium tier",
			mutate: func(_ map[gacha.Tier][]string, _, _ *gacha.Distribution, forced *gacha.ForcedSlot) {
				forced.Tier = gacha.TierSRPlus
			},
			want: "forced: tier must not be premium",
		},
		{
			name: "unknown tier",
			mutate: func(_ map[gacha.Tier][]string, single, _ *gacha.Distribution, _ *gacha.ForcedSlot) {
				single.Tiers[0] = "UR"
			},
			want: `unknown tier "UR"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := make(map[gacha.Tier][]string, len(pools))
			for k, v := range pools {
				p[k] = v
			}
			single, batch, forced := gacha.DefaultSingle(), gacha.DefaultBatch(), gacha.DefaultForced()
			tt.mutate(p, &single, &batch, &forced)

			_, err := gacha.NewTable(p, single, batch, forced)
			var cfgErr *gacha.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTierValid(t *testing.T) {
	for _, tier := range gacha.AllTiers() {
		if !tier.Valid() {
			t.Fatalf("%s should be valid", tier)
		}
	}
	if gacha.Tier("UR").Valid() {
		t.Fatalf("UR should not be valid")
	}
	if !gacha.TierSRPlus.Premium() || gacha.TierSR.Premium() {
		t.Fatalf("only SR+ is premium")
	}
}
