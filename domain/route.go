package domain

import (
	"fmt"
	"math/rand"
)

// minDistanceKm is the floor applied to the derived route distance.
const minDistanceKm = 50

// Route is an ordered pair of distinct stations with a derived distance.
type Route struct {
	Departure  Station
	Arrival    Station
	DistanceKm int
}

// NewRoute builds a route between two distinct stations. The distance is
// derived from the station positions with a small jitter drawn from rng,
// floored at minDistanceKm.
func NewRoute(departure, arrival Station, rng *rand.Rand) (Route, error) {
	if err := checkEndpoints(departure, arrival); err != nil {
		return Route{}, err
	}
	if rng == nil {
		return Route{}, fmt.Errorf("new route: rng is required: %w", ErrValidation)
	}

	base := int(departure) - int(arrival)
	if base < 0 {
		base = -base
	}
	distance := base*100 + rng.Intn(41) - 20
	if distance < minDistanceKm {
		distance = minDistanceKm
	}

	return Route{Departure: departure, Arrival: arrival, DistanceKm: distance}, nil
}

// RouteFromRecord rebuilds a persisted route without re-running the distance
// jitter.
func RouteFromRecord(departure, arrival Station, distanceKm int) (Route, error) {
	if err := checkEndpoints(departure, arrival); err != nil {
		return Route{}, err
	}
	if distanceKm < minDistanceKm {
		return Route{}, fmt.Errorf("route distance %d below minimum %d: %w", distanceKm, minDistanceKm, ErrValidation)
	}
	return Route{Departure: departure, Arrival: arrival, DistanceKm: distanceKm}, nil
}

func checkEndpoints(departure, arrival Station) error {
	if !departure.Valid() || !arrival.Valid() {
		return fmt.Errorf("route endpoints must be known stations: %w", ErrValidation)
	}
	if departure == arrival {
		return fmt.Errorf("route endpoints must differ (got %s twice): %w", departure, ErrValidation)
	}
	return nil
}

func (r Route) String() string {
	return fmt.Sprintf("%s -> %s", r.Departure, r.Arrival)
}
