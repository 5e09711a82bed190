// Package random supplies the uniform integer draws used by the workload
// generator.
package random

import (
	"math/rand/v2"
)

// Source draws uniformly distributed integers in [0, n). n is always > 0.
type Source interface {
	IntN(n int) int
}

// New returns a PCG backed source. A nil seed seeds from runtime entropy, so
// every run differs; a fixed seed reproduces the same draws.
func New(seed *uint64) Source {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}

// Range draws uniformly from [lo, hi). hi must be greater than lo.
func Range(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo)
}

// Count draws uniformly from [1, n].
func Count(src Source, n int) int {
	return src.IntN(n) + 1
}
