package services

import (
	"fmt"
	"log"
	"time"

	"train-booking/domain"
)

// TripService serves trip searches and the admin mutations. Every mutation
// follows the same choreography: mutate in memory under the trip's own lock,
// persist the new snapshot, and only once persistence succeeded fan the
// notification out to the trip's observers.
type TripService struct {
	registry *TripRegistry
	store    TripStore
}

func NewTripService(registry *TripRegistry, store TripStore) *TripService {
	return &TripService{registry: registry, store: store}
}

// Get returns the live trip for an id.
func (s *TripService) Get(id string) (*domain.Trip, error) {
	t, ok := s.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

// Search returns the available trips between two stations on a date, ordered
// by id (the registry's deterministic order).
func (s *TripService) Search(departure, arrival domain.Station, date time.Time) []*domain.Trip {
	var matches []*domain.Trip
	for _, t := range s.registry.All() {
		r := t.Route()
		if r.Departure != departure || r.Arrival != arrival {
			continue
		}
		if !sameDay(t.TravelDate(), date) {
			continue
		}
		if !t.IsAvailable() {
			continue
		}
		matches = append(matches, t)
	}
	return matches
}

// SetDelay applies a delay (or clears it with zero minutes) and notifies
// observers of a positive delay.
func (s *TripService) SetDelay(tripID string, minutes int) error {
	t, err := s.Get(tripID)
	if err != nil {
		return err
	}
	n, err := t.SetDelay(minutes)
	if err != nil {
		return err
	}
	if err := s.store.SaveTrip(t); err != nil {
		return fmt.Errorf("persist delay on trip %s: %w", tripID, err)
	}
	if n != nil {
		t.NotifyObservers(*n)
	}
	log.Printf("Trip %s delay set to %d minute(s)", tripID, minutes)
	return nil
}

// CancelTrip cancels a trip, records the reason and notifies observers.
func (s *TripService) CancelTrip(tripID, reason string) error {
	t, err := s.Get(tripID)
	if err != nil {
		return err
	}
	n, err := t.Cancel(reason)
	if err != nil {
		return err
	}
	if err := s.store.SaveTrip(t); err != nil {
		return fmt.Errorf("persist cancellation of trip %s: %w", tripID, err)
	}
	t.NotifyObservers(*n)
	log.Printf("Trip %s cancelled: %s", tripID, reason)
	return nil
}

// ChangePlatform reassigns the platform and notifies observers.
func (s *TripService) ChangePlatform(tripID, platform string) error {
	t, err := s.Get(tripID)
	if err != nil {
		return err
	}
	n, err := t.ChangePlatform(platform)
	if err != nil {
		return err
	}
	if err := s.store.SaveTrip(t); err != nil {
		return fmt.Errorf("persist platform change on trip %s: %w", tripID, err)
	}
	t.NotifyObservers(*n)
	log.Printf("Trip %s moved to platform %s", tripID, platform)
	return nil
}

// Reschedule moves the effective departure and notifies observers.
func (s *TripService) Reschedule(tripID string, newDeparture time.Time) error {
	t, err := s.Get(tripID)
	if err != nil {
		return err
	}
	n, err := t.Reschedule(newDeparture)
	if err != nil {
		return err
	}
	if err := s.store.SaveTrip(t); err != nil {
		return fmt.Errorf("persist reschedule of trip %s: %w", tripID, err)
	}
	t.NotifyObservers(*n)
	log.Printf("Trip %s rescheduled to %s", tripID, newDeparture.Format(time.RFC3339))
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
