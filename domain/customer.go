package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

const minPasswordLen = 6

// Customer owns an ordered ledger of tickets. Identity is the email alone;
// name and password never enter equality.
type Customer struct {
	Email         string
	Password      string
	Name          string
	LoyaltyMember bool

	tickets []*Ticket
}

// NewCustomer validates and builds a customer. Emails are normalized to lower
// case so identity comparisons are case-insensitive.
func NewCustomer(email, password, name string, loyaltyMember bool) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email %q: %w", email, ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("customer name must not be blank: %w", ErrValidation)
	}
	return &Customer{
		Email:         email,
		Password:      password,
		Name:          name,
		LoyaltyMember: loyaltyMember,
	}, nil
}

// AddTicket appends a ticket to the ledger. Completeness is not checked here;
// the persistence adapter enforces it.
func (c *Customer) AddTicket(t *Ticket) error {
	if t == nil {
		return fmt.Errorf("add ticket: ticket is required: %w", ErrValidation)
	}
	c.tickets = append(c.tickets, t)
	return nil
}

// AddTickets appends tickets in order. A nil entry rejects the whole batch
// before anything is appended.
func (c *Customer) AddTickets(tickets []*Ticket) error {
	for i, t := range tickets {
		if t == nil {
			return fmt.Errorf("add tickets: entry %d is nil: %w", i, ErrValidation)
		}
	}
	c.tickets = append(c.tickets, tickets...)
	return nil
}

// RemoveTicket drops the given ticket from the ledger. The trip's seat count
// is left untouched; releasing the seat is a separate, explicit call.
func (c *Customer) RemoveTicket(t *Ticket) bool {
	for i, existing := range c.tickets {
		if existing == t {
			c.tickets = append(c.tickets[:i], c.tickets[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveTicketByID drops the first ticket with the given id.
func (c *Customer) RemoveTicketByID(id string) bool {
	if id == "" {
		return false
	}
	for i, existing := range c.tickets {
		if existing.ID() == id {
			c.tickets = append(c.tickets[:i], c.tickets[i+1:]...)
			return true
		}
	}
	return false
}

// Tickets returns the ledger in insertion order.
func (c *Customer) Tickets() []*Ticket {
	out := make([]*Ticket, len(c.tickets))
	copy(out, c.tickets)
	return out
}

// TotalSpent sums the current price of every ledger ticket's trip.
func (c *Customer) TotalSpent() float64 {
	var total float64
	for _, t := range c.tickets {
		total += t.Trip().Price()
	}
	return total
}

// ValidTickets returns the tickets whose trip has not been cancelled.
func (c *Customer) ValidTickets() []*Ticket {
	var valid []*Ticket
	for _, t := range c.tickets {
		if t.Trip().Status() != StatusCancelled {
			valid = append(valid, t)
		}
	}
	return valid
}

// Equal compares customers by email only.
func (c *Customer) Equal(other *Customer) bool {
	if other == nil {
		return false
	}
	return c.Email == other.Email
}
