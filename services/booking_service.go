package services

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"train-booking/domain"
	"train-booking/notify"
)

// BookingService issues tickets against live trips and keeps customer ledgers
// up to date. Multi-passenger purchases go through prototype cloning: one base
// ticket, one clone per additional passenger, every reservation rolled back if
// any step of the batch fails.
type BookingService struct {
	trips      *TripRegistry
	customers  *CustomerRegistry
	tickets    TicketStore
	dispatcher *notify.Dispatcher
	clock      domain.Clock

	mu          sync.Mutex
	subscribers map[string]*notify.Subscriber
}

func NewBookingService(trips *TripRegistry, customers *CustomerRegistry, tickets TicketStore, dispatcher *notify.Dispatcher, clock domain.Clock) *BookingService {
	return &BookingService{
		trips:       trips,
		customers:   customers,
		tickets:     tickets,
		dispatcher:  dispatcher,
		clock:       clock,
		subscribers: make(map[string]*notify.Subscriber),
	}
}

// ReserveTicket books one seat on a trip for a named passenger and appends the
// ticket to the customer's ledger.
func (s *BookingService) ReserveTicket(tripID, passengerName, customerEmail string) (*domain.Ticket, error) {
	customer, err := s.customer(customerEmail)
	if err != nil {
		return nil, err
	}
	trip, ok := s.trips.Get(tripID)
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, domain.ErrNotFound)
	}

	ticket, err := domain.NewTicket(trip, s.clock)
	if err != nil {
		return nil, err
	}
	if err := ticket.AssignPassenger(passengerName); err != nil {
		trip.ReleaseSeat()
		return nil, err
	}
	if err := s.tickets.SaveTicket(ticket, customer.Email); err != nil {
		trip.ReleaseSeat()
		return nil, fmt.Errorf("persist ticket %s: %w", ticket.ID(), err)
	}

	if err := customer.AddTicket(ticket); err != nil {
		return nil, err
	}
	trip.Attach(s.subscriber(customer.Email))

	log.Printf("Ticket %s issued: trip=%s passenger=%s customer=%s", ticket.ID(), tripID, ticket.PassengerName(), customer.Email)
	return ticket, nil
}

// ReserveTickets books seats for several passengers in one purchase. The first
// ticket is the prototype; every further passenger gets a clone sharing the
// trip and purchase timestamp. If any step fails, every seat reserved by the
// batch is released and every ticket already persisted is deleted again.
func (s *BookingService) ReserveTickets(tripID string, names []string, customerEmail string) ([]*domain.Ticket, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("batch reservation needs at least one passenger: %w", domain.ErrValidation)
	}
	customer, err := s.customer(customerEmail)
	if err != nil {
		return nil, err
	}
	trip, ok := s.trips.Get(tripID)
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, domain.ErrNotFound)
	}

	base, err := domain.NewTicket(trip, s.clock)
	if err != nil {
		return nil, err
	}
	batch := []*domain.Ticket{base}

	for i := 1; i < len(names); i++ {
		clone, err := base.CloneIncomplete()
		if err != nil {
			s.rollbackSeats(batch)
			return nil, err
		}
		batch = append(batch, clone)
	}

	for i, name := range names {
		if err := batch[i].AssignPassenger(name); err != nil {
			s.rollbackSeats(batch)
			return nil, err
		}
	}

	var saved []*domain.Ticket
	for _, t := range batch {
		if err := s.tickets.SaveTicket(t, customer.Email); err != nil {
			s.rollbackSeats(batch)
			for _, p := range saved {
				if derr := s.tickets.DeleteTicket(p.ID()); derr != nil {
					log.Printf("Batch rollback: could not delete ticket %s: %v", p.ID(), derr)
				}
			}
			return nil, fmt.Errorf("persist ticket for %s: %w", t.PassengerName(), err)
		}
		saved = append(saved, t)
	}

	if err := customer.AddTickets(batch); err != nil {
		return nil, err
	}
	trip.Attach(s.subscriber(customer.Email))

	log.Printf("Batch booking: %d ticket(s) issued on trip %s for %s", len(batch), tripID, customer.Email)
	return batch, nil
}

// CancelTicket removes a ticket from the customer's ledger and from the store.
// The seat stays reserved: releasing it is a separate, explicit decision
// (refund policy), never a side effect of ledger removal.
func (s *BookingService) CancelTicket(customerEmail, ticketID string) error {
	customer, err := s.customer(customerEmail)
	if err != nil {
		return err
	}
	if !customer.RemoveTicketByID(ticketID) {
		return fmt.Errorf("ticket %s on customer %s: %w", ticketID, customer.Email, domain.ErrNotFound)
	}
	if err := s.tickets.DeleteTicket(ticketID); err != nil {
		return fmt.Errorf("delete ticket %s: %w", ticketID, err)
	}
	log.Printf("Ticket %s cancelled by %s (seat kept reserved)", ticketID, customer.Email)
	return nil
}

// ReserveForCart issues a completed ticket that is not yet ledgered or
// persisted; the cart holds it until checkout or expiry.
func (s *BookingService) ReserveForCart(tripID, passengerName string) (*domain.Ticket, error) {
	trip, ok := s.trips.Get(tripID)
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, domain.ErrNotFound)
	}
	ticket, err := domain.NewTicket(trip, s.clock)
	if err != nil {
		return nil, err
	}
	if err := ticket.AssignPassenger(passengerName); err != nil {
		trip.ReleaseSeat()
		return nil, err
	}
	return ticket, nil
}

// FinalizeCart persists checked-out cart tickets and appends them to the
// customer's ledger.
func (s *BookingService) FinalizeCart(customerEmail string, tickets []*domain.Ticket) error {
	customer, err := s.customer(customerEmail)
	if err != nil {
		return err
	}
	for _, t := range tickets {
		if err := s.tickets.SaveTicket(t, customer.Email); err != nil {
			return fmt.Errorf("persist ticket %s: %w", t.ID(), err)
		}
		if err := customer.AddTicket(t); err != nil {
			return err
		}
		t.Trip().Attach(s.subscriber(customer.Email))
	}
	log.Printf("Cart checkout: %d ticket(s) finalized for %s", len(tickets), customer.Email)
	return nil
}

func (s *BookingService) customer(email string) (*domain.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	customer, ok := s.customers.Get(email)
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", email, domain.ErrNotFound)
	}
	return customer, nil
}

// subscriber returns the one Subscriber instance for an email, so repeated
// Attach calls on the same trip stay idempotent.
func (s *BookingService) subscriber(email string) *notify.Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscribers[email]
	if !ok {
		sub = &notify.Subscriber{Recipient: email, Dispatcher: s.dispatcher}
		s.subscribers[email] = sub
	}
	return sub
}

func (s *BookingService) rollbackSeats(batch []*domain.Ticket) {
	for _, t := range batch {
		if !t.Trip().ReleaseSeat() {
			log.Printf("Batch rollback: could not release seat on trip %s", t.Trip().ID())
		}
	}
}
