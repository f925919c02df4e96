// Package cart holds seat reservations that have not been paid for yet. The
// manager is an explicit service constructed once in main and passed to its
// callers; there is no hidden global instance. Carts expire after a TTL, and
// expiry is the one place in the system that releases seats automatically:
// abandoning a purchase must put the inventory back.
package cart

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"train-booking/domain"
)

// Cart groups the tickets of one in-progress purchase.
type Cart struct {
	ID            string
	CustomerEmail string
	Deadline      time.Time
	Tickets       []*domain.Ticket
}

// Expired reports whether the cart's deadline has passed.
func (c *Cart) Expired(now time.Time) bool {
	return now.After(c.Deadline)
}

// Manager owns all live carts.
type Manager struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock domain.Clock
	carts map[string]*Cart
}

// NewManager builds a cart manager. Seats held in a cart are released when the
// cart passes its TTL without a checkout.
func NewManager(ttl time.Duration, clock domain.Clock) *Manager {
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		ttl:   ttl,
		clock: clock,
		carts: make(map[string]*Cart),
	}
}

// Create opens a cart for a customer and returns its id and deadline.
func (m *Manager) Create(customerEmail string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &Cart{
		ID:            uuid.NewString(),
		CustomerEmail: customerEmail,
		Deadline:      m.clock().Add(m.ttl),
	}
	m.carts[c.ID] = c
	return c
}

// Add places a ticket (whose seat is already reserved) into a cart.
func (m *Manager) Add(cartID string, t *domain.Ticket) error {
	if t == nil {
		return fmt.Errorf("add to cart: ticket is required: %w", domain.ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
	}
	if c.Expired(m.clock()) {
		return fmt.Errorf("cart %s expired: %w", cartID, domain.ErrNotFound)
	}
	c.Tickets = append(c.Tickets, t)
	return nil
}

// Get returns a live cart.
func (m *Manager) Get(cartID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
	}
	return c, nil
}

// Checkout closes a cart and hands its tickets to the caller. Seats stay
// reserved; the purchase goes through.
func (m *Manager) Checkout(cartID string) ([]*domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
	}
	if c.Expired(m.clock()) {
		m.releaseLocked(c)
		delete(m.carts, cartID)
		return nil, fmt.Errorf("cart %s expired: %w", cartID, domain.ErrNotFound)
	}
	delete(m.carts, cartID)
	return c.Tickets, nil
}

// Abandon discards a cart, releasing every seat it held.
func (m *Manager) Abandon(cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
	}
	m.releaseLocked(c)
	delete(m.carts, cartID)
	return nil
}

// SweepExpired releases the seats of every expired cart and drops the carts.
// Returns how many carts were swept. Called periodically by the scheduler.
func (m *Manager) SweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock()
	swept := 0
	for id, c := range m.carts {
		if !c.Expired(now) {
			continue
		}
		m.releaseLocked(c)
		delete(m.carts, id)
		swept++
	}
	if swept > 0 {
		log.Printf("Cart sweep: released %d expired cart(s)", swept)
	}
	return swept
}

func (m *Manager) releaseLocked(c *Cart) {
	for _, t := range c.Tickets {
		if !t.Trip().ReleaseSeat() {
			log.Printf("Cart %s: could not release seat on trip %s", c.ID, t.Trip().ID())
		}
	}
}
