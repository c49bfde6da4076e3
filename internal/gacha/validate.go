package gacha

import (
	"math"
)

// weightSumTolerance bounds float error when checking that weights sum to 1.
const weightSumTolerance = 1e-6

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

func sumsToOne(weights []float64) bool {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return math.Abs(sum-1) <= weightSumTolerance
}
