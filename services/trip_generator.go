package services

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"train-booking/domain"
	"train-booking/fares"
)

// trainCodePrefix maps a service class to its fleet code prefix.
var trainCodePrefix = map[domain.ServiceClass]string{
	domain.ClassEconomy:  "RE",
	domain.ClassStandard: "IC",
	domain.ClassBusiness: "FR",
}

// trainSeats is the fleet capacity per service class.
var trainSeats = map[domain.ServiceClass]int{
	domain.ClassEconomy:  350,
	domain.ClassStandard: 300,
	domain.ClassBusiness: 200,
}

// TripGenerator builds the timetable: one trip per ordered station pair per
// service class per day. The RNG drives distances, departure times, platforms
// and fare jitter; a seeded source makes the whole timetable reproducible.
type TripGenerator struct {
	registry *TripRegistry
	store    TripStore
	rng      *rand.Rand
}

func NewTripGenerator(registry *TripRegistry, store TripStore, rng *rand.Rand) *TripGenerator {
	return &TripGenerator{registry: registry, store: store, rng: rng}
}

// GenerateDay creates and persists the trips for one travel date. Returns the
// number of trips that were generated.
func (g *TripGenerator) GenerateDay(date time.Time) (int, error) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	classes := []domain.ServiceClass{domain.ClassEconomy, domain.ClassStandard, domain.ClassBusiness}

	generated := 0
	for _, departure := range domain.Stations() {
		for _, arrival := range domain.Stations() {
			if departure == arrival {
				continue
			}
			route, err := domain.NewRoute(departure, arrival, g.rng)
			if err != nil {
				return generated, err
			}
			for _, class := range classes {
				code := fmt.Sprintf("%s%04d", trainCodePrefix[class], g.rng.Intn(10000))
				train, err := domain.NewTrain(code, class, trainSeats[class])
				if err != nil {
					return generated, err
				}

				hour := 6 + g.rng.Intn(14)
				minute := 5 * g.rng.Intn(12)
				departAt := date.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
				platform := fmt.Sprintf("%d", 1+g.rng.Intn(12))

				trip, err := domain.NewTrip(route, train, date, departAt, platform, fares.ForClass(class, g.rng))
				if err != nil {
					return generated, err
				}
				if err := g.store.SaveTrip(trip); err != nil {
					return generated, fmt.Errorf("persist generated trip %s: %w", trip.ID(), err)
				}
				g.registry.Put(trip)
				generated++
			}
		}
	}
	return generated, nil
}

// GenerateHorizon fills the timetable from a start date for the given number
// of days.
func (g *TripGenerator) GenerateHorizon(from time.Time, days int) error {
	total := 0
	for i := 0; i < days; i++ {
		n, err := g.GenerateDay(from.AddDate(0, 0, i))
		if err != nil {
			return fmt.Errorf("generate timetable day %d: %w", i, err)
		}
		total += n
	}
	log.Printf("Timetable generated: %d trip(s) over %d day(s)", total, days)
	return nil
}
