package gacha_test

import (
	"testing"

	"github.com/xtding233/gacha-backend/internal/gacha"
)

func TestDrawOneSingleMembership(t *testing.T) {
	table := gacha.DefaultTable()
	e := gacha.NewEngine(table, gacha.NewSeededRNG(11))
	pool := newPool(t)
	single := table.Single()

	allowed := map[gacha.Tier]bool{}
	for _, tier := range single.Tiers {
		allowed[tier] = true
	}
	for i := 0; i < 5000; i++ {
		out, err := e.DrawOne(single, pool)
		if err != nil {
			t.Fatal(err)
		}
		if !allowed[out.Tier] {
			t.Fatalf("tier %s not in single distribution", out.Tier)
		}
		if !table.Contains(out.Tier, out.Item) {
			t.Fatalf("item %s not in %s pool", out.Item, out.Tier)
		}
		if (out.Premium != "") != out.Tier.Premium() {
			t.Fatalf("premium must be set iff tier is SR+: %+v", out)
		}
	}
}

func TestDrawOneBatchNeverBelowR(t *testing.T) {
	table := gacha.DefaultTable()
	e := gacha.NewEngine(table, gacha.NewSeededRNG(12))
	pool := newPool(t)
	for i := 0; i < 5000; i++ {
		out, err := e.DrawOne(table.Batch(), pool)
		if err != nil {
			t.Fatal(err)
		}
		if out.Tier == gacha.TierN || out.Tier == gacha.TierNPlus {
			t.Fatalf("batch produced %s", out.Tier)
		}
	}
}

func TestDrawOneForcedSRPlus(t *testing.T) {
	table := gacha.DefaultTable()
	// tier roll past 0.98 -> SR+, item roll 0 -> f001, premium roll 0 -> Prize1
	e := gacha.NewEngine(table, script(0.99, 0.0, 0.0))
	pool := newPool(t)

	out, err := e.DrawOne(table.Single(), pool)
	if err != nil {
		t.Fatal(err)
	}
	if out.Tier != gacha.TierSRPlus || out.Premium != "Prize1" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if out.Item != "/static/img/SR+/f001.jpg" {
		t.Fatalf("unexpected item %s", out.Item)
	}
	if out.Completed {
		t.Fatalf("one premium item must not complete the set")
	}
	if got := len(pool.Remaining()); got != 9 {
		t.Fatalf("expected 9 remaining, got %d", got)
	}
	if out.Label() != "SR+(Prize1)" {
		t.Fatalf("unexpected label %q", out.Label())
	}
}

func TestDrawOneCompletesSet(t *testing.T) {
	table := gacha.DefaultTable()
	u := gacha.DefaultPremiumItems()
	pool, err := gacha.RestorePremiumPool(u, []string{"Prize10"}, u[:9])
	if err != nil {
		t.Fatal(err)
	}
	// batch: SR+ is the last 0.03; premium roll 0.95 -> index 9 -> Prize10
	e := gacha.NewEngine(table, script(0.995, 0.5, 0.95))
	out, err := e.DrawOne(table.Batch(), pool)
	if err != nil {
		t.Fatal(err)
	}
	if out.Premium != "Prize10" || !out.Completed {
		t.Fatalf("expected completing Prize10 draw, got %+v", out)
	}
	if !pool.Complete() {
		t.Fatalf("pool must be complete")
	}
}

func TestDrawOneRejectsMismatchedDistribution(t *testing.T) {
	table := gacha.DefaultTable()
	e := gacha.NewEngine(table, gacha.NewSeededRNG(1))
	d := table.Single()
	d.Weights = d.Weights[:4]
	if _, err := e.DrawOne(d, newPool(t)); err == nil {
		t.Fatalf("mismatched arity must error")
	}
}

func TestForcedIsDeterministic(t *testing.T) {
	table := gacha.DefaultTable()
	a := gacha.NewEngine(table, gacha.NewSeededRNG(1)).Forced()
	b := gacha.NewEngine(table, gacha.NewSeededRNG(2)).Forced()
	if a != b || a.Tier != gacha.TierSR {
		t.Fatalf("forced slot must not depend on the rng: %+v vs %+v", a, b)
	}
	if a.Label() != "SR" {
		t.Fatalf("unexpected label %q", a.Label())
	}
}
