package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Ticket is a single passenger's claim on a seat within a trip. It is born
// incomplete (no id, no passenger) and finalized by AssignPassenger. Many
// tickets may reference one trip; price, duration, route and platform are
// always read through the trip, never copied.
type Ticket struct {
	id            string
	trip          *Trip
	passengerName string
	purchasedAt   time.Time
	clock         Clock
}

// NewTicket issues an incomplete ticket against an available trip, atomically
// reserving one seat. An inactive trip yields ErrInvalidState, a sold-out one
// ErrNoSeats.
func NewTicket(trip *Trip, clock Clock) (*Ticket, error) {
	if trip == nil {
		return nil, fmt.Errorf("new ticket: trip is required: %w", ErrValidation)
	}
	if clock == nil {
		clock = time.Now
	}
	if err := trip.reserveForTicket(); err != nil {
		return nil, fmt.Errorf("new ticket: %w", err)
	}
	return &Ticket{
		trip:        trip,
		purchasedAt: clock(),
		clock:       clock,
	}, nil
}

// RehydrateTicket rebuilds a persisted ticket verbatim: no seat is reserved
// and the id is taken as-is.
func RehydrateTicket(id string, trip *Trip, passengerName string, purchasedAt time.Time, clock Clock) (*Ticket, error) {
	if trip == nil {
		return nil, fmt.Errorf("rehydrate ticket %s: trip is required: %w", id, ErrValidation)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Ticket{
		id:            id,
		trip:          trip,
		passengerName: passengerName,
		purchasedAt:   purchasedAt,
		clock:         clock,
	}, nil
}

// AssignPassenger finalizes the ticket for the named passenger. The id is
// derived from the normalized name, the trip id and the current clock instant,
// so the same name on the same trip gets a fresh id on each call.
func (t *Ticket) AssignPassenger(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("passenger name must not be blank: %w", ErrValidation)
	}
	millis := t.clock().UnixMilli()
	t.id = hashID("TKT_",
		strings.ToLower(name),
		t.trip.ID(),
		strconv.FormatInt(millis, 10),
	)
	t.passengerName = name
	return nil
}

// CloneIncomplete produces a sibling ticket for a multi-passenger purchase:
// same trip, same purchase timestamp, blank identity, and one more seat
// reserved on the trip.
func (t *Ticket) CloneIncomplete() (*Ticket, error) {
	if err := t.trip.reserveForTicket(); err != nil {
		return nil, fmt.Errorf("clone ticket: %w", err)
	}
	return &Ticket{
		trip:        t.trip,
		purchasedAt: t.purchasedAt,
		clock:       t.clock,
	}, nil
}

// IsComplete reports whether both the id and the passenger name are set.
func (t *Ticket) IsComplete() bool {
	return t.id != "" && t.passengerName != ""
}

func (t *Ticket) ID() string            { return t.id }
func (t *Ticket) Trip() *Trip           { return t.trip }
func (t *Ticket) PassengerName() string { return t.passengerName }
func (t *Ticket) PurchasedAt() time.Time {
	return t.purchasedAt
}
