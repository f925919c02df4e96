package services

import (
	"sort"
	"sync"

	"train-booking/domain"
)

// TripRegistry is the in-memory identity map for live trips: exactly one
// *domain.Trip instance exists per trip id, so the per-trip mutex actually
// serializes every mutation of that trip.
type TripRegistry struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip
}

func NewTripRegistry() *TripRegistry {
	return &TripRegistry{trips: make(map[string]*domain.Trip)}
}

func (r *TripRegistry) Put(t *domain.Trip) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[t.ID()] = t
}

func (r *TripRegistry) Get(id string) (*domain.Trip, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trips[id]
	return t, ok
}

func (r *TripRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trips, id)
}

// All returns every registered trip, ordered by id for deterministic output.
func (r *TripRegistry) All() []*domain.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*domain.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })
	return all
}

func (r *TripRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trips)
}

// CustomerRegistry is the in-memory identity map for customers, keyed by
// normalized email.
type CustomerRegistry struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewCustomerRegistry() *CustomerRegistry {
	return &CustomerRegistry{customers: make(map[string]*domain.Customer)}
}

func (r *CustomerRegistry) Put(c *domain.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.Email] = c
}

func (r *CustomerRegistry) Get(email string) (*domain.Customer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[email]
	return c, ok
}

// All returns every registered customer, ordered by email.
func (r *CustomerRegistry) All() []*domain.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return all
}
