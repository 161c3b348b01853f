package synth

import (
	"math/rand"

	"github.com/katalvlaran/birkhoff/matrix"
)

// rngFromSeed returns a deterministic *rand.Rand; seed==0 ⇒ DefaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveRNG draws one value from base and mixes it with stream through a
// SplitMix64 finalizer, giving an independent child stream.
//
// Complexity: O(1).
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	x := uint64(base.Int63()) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return rand.New(rand.NewSource(int64(x)))
}

// shuffleInPlace is a Fisher–Yates shuffle of p.
//
// Complexity: O(len(p)).
func shuffleInPlace(rng *rand.Rand, p matrix.Permutation) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}
