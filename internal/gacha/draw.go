package gacha

import "errors"

var (
	ErrInvalidProb  = errors.New("invalid probability p; must be 0..1")
	ErrEmptyWeights = errors.New("weight vector is empty")
	ErrZeroWeights  = errors.New("weight vector sums to zero")
)

// Pick returns an index chosen by weighted random selection.
// Weights are probabilities; a roll that lands past the cumulative sum
// (float slack) resolves to the last index with a positive weight.
func Pick(weights []float64, rng RandomSource) (int, error) {
	if len(weights) == 0 {
		return 0, ErrEmptyWeights
	}
	last := -1
	for i, w := range weights {
		if err := validateProb(w); err != nil {
			return 0, err
		}
		if w > 0 {
			last = i
		}
	}
	if last < 0 {
		return 0, ErrZeroWeights
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	u := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if w > 0 && u < acc {
			return i, nil
		}
	}
	return last, nil
}

// Index returns a uniform index in [0, n). n must be positive.
func Index(n int, rng RandomSource) int {
	if n <= 1 {
		return 0
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
