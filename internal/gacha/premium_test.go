package gacha_test

import (
	"reflect"
	"testing"

	"github.com/xtding233/gacha-backend/internal/gacha"
)

func newPool(t *testing.T) *gacha.PremiumPool {
	t.Helper()
	p, err := gacha.NewPremiumPool(gacha.DefaultPremiumItems())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPremiumPoolRecord(t *testing.T) {
	p := newPool(t)
	if p.Record("Prize1") {
		t.Fatalf("one item must not complete the set")
	}
	if got := len(p.Remaining()); got != 9 {
		t.Fatalf("expected 9 remaining, got %d", got)
	}
	if !reflect.DeepEqual(p.Collected(), []string{"Prize1"}) {
		t.Fatalf("unexpected collected %v", p.Collected())
	}

	// duplicate leaves the pool unchanged
	if p.Record("Prize1") {
		t.Fatalf("duplicate must not complete the set")
	}
	if len(p.Remaining()) != 9 || len(p.Collected()) != 1 {
		t.Fatalf("duplicate changed the pool: %v / %v", p.Remaining(), p.Collected())
	}
}

func TestPremiumPoolCompletionIsMonotonic(t *testing.T) {
	p := newPool(t)
	order := []string{"Prize3", "Prize3", "Prize10", "Prize1", "Prize2", "Prize1",
		"Prize4", "Prize5", "Prize6", "Prize7", "Prize8"}
	for _, it := range order {
		if p.Record(it) {
			t.Fatalf("set completed early at %s", it)
		}
	}
	if !p.Record("Prize9") {
		t.Fatalf("last item must complete the set")
	}
	for _, it := range gacha.DefaultPremiumItems() {
		if !p.Record(it) {
			t.Fatalf("completion must stay true after recording %s", it)
		}
	}
	if len(p.Remaining()) != 0 || len(p.Collected()) != 10 {
		t.Fatalf("unexpected sizes %d/%d", len(p.Remaining()), len(p.Collected()))
	}

	p.Reset()
	if p.Complete() || len(p.Remaining()) != 10 || len(p.Collected()) != 0 {
		t.Fatalf("reset must restore the full universe")
	}
}

func TestPremiumPoolResolveCoversUniverse(t *testing.T) {
	p := newPool(t)
	p.Record("Prize1")
	rng := gacha.NewSeededRNG(3)
	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		seen[p.Resolve(rng)] = true
	}
	if len(seen) != 10 {
		t.Fatalf("resolve must draw from all 10 items, saw %d", len(seen))
	}
	if !seen["Prize1"] {
		t.Fatalf("collected items must still be drawable")
	}
}

func TestRestorePremiumPool(t *testing.T) {
	u := gacha.DefaultPremiumItems()

	p, err := gacha.RestorePremiumPool(u, []string{"Prize10"}, u[:9])
	if err != nil {
		t.Fatal(err)
	}
	if !p.Record("Prize10") {
		t.Fatalf("recording the last item must complete the set")
	}

	bad := []struct {
		name                 string
		remaining, collected []string
	}{
		{"overlap", u, []string{"Prize1"}},
		{"unknown", join(u[1:], "Prize11"), []string{"Prize1"}},
		{"missing", u[1:], nil},
		{"duplicate", join(u[1:], "Prize2"), []string{"Prize1"}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gacha.RestorePremiumPool(u, tt.remaining, tt.collected); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func join(items []string, extra ...string) []string {
	out := append([]string(nil), items...)
	return append(out, extra...)
}

func TestNewPremiumPoolRejectsBadUniverse(t *testing.T) {
	if _, err := gacha.NewPremiumPool(nil); err == nil {
		t.Fatalf("empty universe must error")
	}
	if _, err := gacha.NewPremiumPool([]string{"a", "a"}); err == nil {
		t.Fatalf("duplicate universe must error")
	}
}

func TestPremiumPoolClone(t *testing.T) {
	p := newPool(t)
	c := p.Clone()
	c.Record("Prize1")
	if len(p.Remaining()) != 10 {
		t.Fatalf("clone must be independent")
	}
}
