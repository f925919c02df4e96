package services

import "train-booking/domain"

// Stores persist the domain state after in-memory mutation. The core mutates
// under the per-trip lock, releases it, and only then does the caller persist;
// no store call ever runs with a domain lock held.

// TripStore persists trip snapshots.
type TripStore interface {
	SaveTrip(t *domain.Trip) error
	DeleteTrip(id string) error
}

// TicketStore persists completed tickets. Implementations reject incomplete
// tickets: completeness is enforced at this boundary, not in the ledger.
type TicketStore interface {
	SaveTicket(t *domain.Ticket, customerEmail string) error
	DeleteTicket(id string) error
}

// CustomerStore persists customer accounts.
type CustomerStore interface {
	SaveCustomer(c *domain.Customer) error
}

// PromotionStore persists promotions.
type PromotionStore interface {
	SavePromotion(p domain.Promotion) error
}
