// Package fares holds the per-class fare and duration strategies. Each tier is
// derived from the one below it, so for any route Business is always faster and
// pricier than Standard, which is always faster and pricier than Economy, no
// matter how the jitter falls. The random source is injected so trips built in
// tests are reproducible.
package fares

import (
	"math"
	"math/rand"

	"train-booking/domain"
)

// Economy is the baseline tier: a fixed average speed with a small jitter and
// a price linear in distance.
type Economy struct {
	rng *rand.Rand
}

func NewEconomy(rng *rand.Rand) *Economy {
	return &Economy{rng: rng}
}

func (e *Economy) Estimate(distanceKm int) (int, float64) {
	// 110-130 km/h average
	speed := 110.0 + e.rng.Float64()*20.0
	duration := int(float64(distanceKm) / speed * 60.0)
	if duration < 1 {
		duration = 1
	}

	// Jitter stays under 0.10 EUR/km * minimum distance so a derived tier can
	// never round down into the tier below.
	price := float64(distanceKm)*0.10 + e.rng.Float64()*4.0
	return duration, roundCents(price)
}

// Standard derives from Economy: the duration shrinks to 45-60% of the
// Economy figure and the price grows by 100-120% of it.
type Standard struct {
	base *Economy
	rng  *rand.Rand
}

func NewStandard(rng *rand.Rand) *Standard {
	return &Standard{base: NewEconomy(rng), rng: rng}
}

func (s *Standard) Estimate(distanceKm int) (int, float64) {
	duration, price := s.base.Estimate(distanceKm)
	return deriveTier(duration, price, s.rng)
}

// Business derives from Standard the same way Standard derives from Economy,
// yielding the fastest and most expensive tier.
type Business struct {
	base *Standard
	rng  *rand.Rand
}

func NewBusiness(rng *rand.Rand) *Business {
	return &Business{base: NewStandard(rng), rng: rng}
}

func (b *Business) Estimate(distanceKm int) (int, float64) {
	duration, price := b.base.Estimate(distanceKm)
	return deriveTier(duration, price, b.rng)
}

// deriveTier builds the next tier up from a base estimate: strictly shorter
// duration, strictly higher price.
func deriveTier(baseDuration int, basePrice float64, rng *rand.Rand) (int, float64) {
	factor := 0.45 + rng.Float64()*0.15
	duration := int(float64(baseDuration) * factor)
	if duration >= baseDuration {
		duration = baseDuration - 1
	}
	if duration < 1 {
		duration = 1
	}

	uplift := 1.0 + rng.Float64()*0.2
	price := basePrice * (1.0 + uplift)
	return duration, roundCents(price)
}

// ForClass returns the strategy for a service class. Unknown classes fall back
// to Economy.
func ForClass(class domain.ServiceClass, rng *rand.Rand) domain.FareStrategy {
	switch class {
	case domain.ClassStandard:
		return NewStandard(rng)
	case domain.ClassBusiness:
		return NewBusiness(rng)
	default:
		return NewEconomy(rng)
	}
}

func roundCents(price float64) float64 {
	return math.Round(price*100) / 100
}
