package engine

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Per-metric noise profiles. Standard deviations approximate real-world
// measurement variance; floors keep a pathological sample from collapsing a
// metric below a credible fraction of its nominal value.
const (
	carbonNoiseStdDev = 0.05
	carbonNoiseFloor  = 0.5

	energyNoiseStdDev = 0.08
	energyNoiseFloor  = 0.3

	waterNoiseStdDev = 0.10
	waterNoiseFloor  = 0.2
)

// Noise produces the multiplicative variance factors the estimator applies
// to carbon, energy, and water figures. The default engine uses DisabledNoise
// so estimation is deterministic; production callers opt into variance by
// injecting a GaussianNoise.
type Noise interface {
	// Factor samples a multiplier centered on 1.0 with the given standard
	// deviation, floored at floor.
	Factor(stdDev, floor float64) float64
}

// disabledNoise always returns 1.0.
type disabledNoise struct{}

func (disabledNoise) Factor(_, _ float64) float64 { return 1.0 }

// DisabledNoise returns the no-op noise model. Estimation with it is exactly
// reproducible, which tests and comparison workflows rely on.
func DisabledNoise() Noise {
	return disabledNoise{}
}

// GaussianNoise samples normally distributed variance factors from a seeded
// generator. Safe for concurrent use; the lock covers only the sample draw.
type GaussianNoise struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGaussianNoise returns a noise model seeded deterministically. The same
// seed reproduces the same factor sequence.
func NewGaussianNoise(seed uint64) *GaussianNoise {
	return &GaussianNoise{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Factor implements Noise.
func (g *GaussianNoise) Factor(stdDev, floor float64) float64 {
	g.mu.Lock()
	sample := 1.0 + g.rng.NormFloat64()*stdDev
	g.mu.Unlock()
	return math.Max(floor, sample)
}
