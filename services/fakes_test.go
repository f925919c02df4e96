package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"train-booking/domain"
)

// memoryStore backs every store interface with maps, so service tests run
// without a database. failSaveTicketFor lets a test fail persistence for one
// passenger to exercise rollback.
type memoryStore struct {
	mu                sync.Mutex
	trips             map[string]domain.TripState
	tickets           map[string]string // ticket id -> customer email
	customers         map[string]bool
	promotions        map[string]domain.Promotion
	failSaveTicketFor string
	savedTripCount    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		trips:      make(map[string]domain.TripState),
		tickets:    make(map[string]string),
		customers:  make(map[string]bool),
		promotions: make(map[string]domain.Promotion),
	}
}

func (m *memoryStore) SaveTrip(t *domain.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[t.ID()] = t.State()
	m.savedTripCount++
	return nil
}

func (m *memoryStore) DeleteTrip(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.trips, id)
	return nil
}

func (m *memoryStore) SaveTicket(t *domain.Ticket, customerEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaveTicketFor != "" && t.PassengerName() == m.failSaveTicketFor {
		return errors.New("simulated store failure")
	}
	m.tickets[t.ID()] = customerEmail
	return nil
}

func (m *memoryStore) DeleteTicket(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tickets, id)
	return nil
}

func (m *memoryStore) SaveCustomer(c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.Email] = true
	return nil
}

func (m *memoryStore) SavePromotion(p domain.Promotion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promotions[p.ID] = p
	return nil
}

func (m *memoryStore) ticketCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickets)
}

type flatFare struct {
	duration int
	price    float64
}

func (f flatFare) Estimate(int) (int, float64) { return f.duration, f.price }

func serviceDeparture() time.Time {
	return time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC)
}

func newServiceTrip(t *testing.T, seats int) *domain.Trip {
	t.Helper()
	route, err := domain.RouteFromRecord(domain.Roma, domain.Milano, 480)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	train, err := domain.NewTrain("RE1000", domain.ClassEconomy, seats)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	trip, err := domain.NewTrip(route, train, serviceDeparture().Truncate(24*time.Hour), serviceDeparture(), "3", flatFare{duration: 120, price: 100})
	if err != nil {
		t.Fatalf("trip: %v", err)
	}
	return trip
}

func registerTestCustomer(t *testing.T, registry *CustomerRegistry, email string, loyalty bool) *domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(email, "secret1", "Test Customer", loyalty)
	if err != nil {
		t.Fatalf("customer: %v", err)
	}
	registry.Put(c)
	return c
}
