package token

// Token defines how many units are charged per draw

type Token struct {
	Name      string // e.g. "yen"
	PerDraw   int    // units per single draw, e.g. 100
	PerBatch  int    // units per batch; if 0 -> BatchSize * PerDraw
	BatchSize int    // draws counted per batch, e.g. 11; if 0, batches are not offered
}

// Default is the simulator's pricing: 100 yen per draw, 1000 yen per 11-draw batch.
func Default() Token {
	return Token{Name: "yen", PerDraw: 100, PerBatch: 1000, BatchSize: 11}
}

// SingleCost returns the charge for one single draw.
func (t Token) SingleCost() int { return t.PerDraw }

// BatchCost returns the charge for one batch.
func (t Token) BatchCost() int {
	if t.PerBatch > 0 {
		return t.PerBatch
	}
	return t.BatchSize * t.PerDraw
}

// TokensForDraws returns how many units are required for n draws,
// buying whole batches first and singles for the remainder.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.BatchSize > 1 && n >= t.BatchSize {
		batches := n / t.BatchSize
		rem := n % t.BatchSize
		return batches*t.BatchCost() + rem*t.PerDraw
	}
	return n * t.PerDraw
}

// Valid reports whether no price or size is negative.
func (t Token) Valid() bool {
	return t.PerDraw >= 0 && t.PerBatch >= 0 && t.BatchSize >= 0
}
