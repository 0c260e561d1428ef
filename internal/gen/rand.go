package gen

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salesline/internal/config"
)

// Rand wraps a seeded source so every draw, including UUIDs, replays
// identically for the same seed.
type Rand struct {
	*rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{rand.New(rand.NewSource(seed))}
}

// UUID returns a version 4 UUID drawn from the seeded source.
func (r *Rand) UUID() string {
	id, err := uuid.NewRandomFromReader(r.Rand)
	if err != nil {
		// math/rand Read never fails
		panic(err)
	}
	return id.String()
}

// Pick draws one name from an ordered weighted distribution. Weights are
// treated as relative, so a distribution summing to slightly off 1.0 still
// draws sensibly.
func (r *Rand) Pick(ws []config.Weight) string {
	total := 0.0
	for _, w := range ws {
		total += w.P
	}
	x := r.Float64() * total
	for _, w := range ws {
		x -= w.P
		if x < 0 {
			return w.Name
		}
	}
	return ws[len(ws)-1].Name
}

// PickCount draws one integer from a weighted count distribution.
func (r *Rand) PickCount(ws []config.CountWeight) int {
	total := 0.0
	for _, w := range ws {
		total += w.P
	}
	x := r.Float64() * total
	for _, w := range ws {
		x -= w.P
		if x < 0 {
			return w.N
		}
	}
	return ws[len(ws)-1].N
}

// PickTier draws one tier by weight.
func (r *Rand) PickTier(tiers []config.Tier) config.Tier {
	total := 0.0
	for _, t := range tiers {
		total += t.Weight
	}
	x := r.Float64() * total
	for _, t := range tiers {
		x -= t.Weight
		if x < 0 {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Uniform draws from [rg.Low, rg.High).
func (r *Rand) Uniform(rg config.Range) float64 {
	return rg.Low + r.Float64()*(rg.High-rg.Low)
}

// Between draws an integer from the inclusive interval [min, max].
func (r *Rand) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// BetweenRange draws from an inclusive IntRange.
func (r *Rand) BetweenRange(rg config.IntRange) int {
	return r.Between(rg.Min, rg.Max)
}

// LogNormal draws exp(N(ln(median), sigma)). The result has median
// ln.Median and a right-skewed tail.
func (r *Rand) LogNormal(ln config.LogNormal) float64 {
	return math.Exp(math.Log(ln.Median) + ln.Sigma*r.NormFloat64())
}

// Noise draws a multiplicative log-normal noise factor with median 1.
func (r *Rand) Noise(sigma float64) float64 {
	return math.Exp(sigma * r.NormFloat64())
}

// Bool draws true with probability p.
func (r *Rand) Bool(p float64) bool {
	return r.Float64() < p
}

// Money rounds a float amount to a two-decimal monetary value.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
