package layout

import "math/rand/v2"

// seedStride spreads attempt seeds across the 64-bit space.
const seedStride = 0x9e3779b97f4a7c15

// NewRand returns the random source of one search attempt.
func NewRand(seed uint64, attempt int) *rand.Rand {
	s := seed + uint64(attempt)*seedStride
	return rand.New(rand.NewPCG(s, s^0xdeadbeef))
}

// intBetween returns an integer in [lo, hi).
func intBetween(rng *rand.Rand, lo, hi int) int {
	return rng.IntN(hi-lo) + lo
}

// floatBetween returns a float in [lo, hi).
func floatBetween(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

func coin(rng *rand.Rand) bool { return rng.IntN(2) == 0 }
