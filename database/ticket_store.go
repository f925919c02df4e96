package database

import (
	"database/sql"
	"fmt"

	"train-booking/domain"
)

// PostgresTicketStore persists completed tickets. Completeness is enforced
// here: the ledger accepts incomplete tickets, the database does not.
type PostgresTicketStore struct {
	db *sql.DB
}

func NewPostgresTicketStore(db *sql.DB) *PostgresTicketStore {
	return &PostgresTicketStore{db: db}
}

// SaveTicket upserts a completed ticket under its owning customer.
func (s *PostgresTicketStore) SaveTicket(t *domain.Ticket, customerEmail string) error {
	if !t.IsComplete() {
		return fmt.Errorf("refusing to persist incomplete ticket on trip %s: %w", t.Trip().ID(), domain.ErrValidation)
	}
	_, err := s.db.Exec(`
		INSERT INTO tickets (id, trip_id, customer_email, passenger_name, purchased_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET passenger_name = EXCLUDED.passenger_name
	`, t.ID(), t.Trip().ID(), customerEmail, t.PassengerName(), t.PurchasedAt())
	if err != nil {
		return fmt.Errorf("save ticket %s: %w", t.ID(), err)
	}
	return nil
}

// DeleteTicket removes a ticket row. The trip's seat count is untouched.
func (s *PostgresTicketStore) DeleteTicket(id string) error {
	if _, err := s.db.Exec(`DELETE FROM tickets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ticket %s: %w", id, err)
	}
	return nil
}

// LoadTickets rehydrates every persisted ticket, grouped by owning customer
// email. Trips are resolved through the supplied lookup so each ticket shares
// the single live instance of its trip.
func (s *PostgresTicketStore) LoadTickets(lookupTrip func(id string) (*domain.Trip, bool)) (map[string][]*domain.Ticket, error) {
	rows, err := s.db.Query(`
		SELECT id, trip_id, customer_email, passenger_name, purchased_at
		FROM tickets
		ORDER BY purchased_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	defer rows.Close()

	byCustomer := make(map[string][]*domain.Ticket)
	for rows.Next() {
		var (
			id, tripID, email, name string
			purchasedAt             sql.NullTime
		)
		if err := rows.Scan(&id, &tripID, &email, &name, &purchasedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		trip, ok := lookupTrip(tripID)
		if !ok {
			return nil, fmt.Errorf("ticket %s references trip %s: %w", id, tripID, domain.ErrNotFound)
		}
		ticket, err := domain.RehydrateTicket(id, trip, name, purchasedAt.Time, nil)
		if err != nil {
			return nil, fmt.Errorf("rehydrate ticket %s: %w", id, err)
		}
		byCustomer[email] = append(byCustomer[email], ticket)
	}
	return byCustomer, rows.Err()
}
