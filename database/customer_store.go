package database

import (
	"database/sql"
	"fmt"

	"train-booking/domain"
)

// PostgresCustomerStore persists customer accounts.
type PostgresCustomerStore struct {
	db *sql.DB
}

func NewPostgresCustomerStore(db *sql.DB) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: db}
}

// SaveCustomer upserts an account keyed by email.
func (s *PostgresCustomerStore) SaveCustomer(c *domain.Customer) error {
	_, err := s.db.Exec(`
		INSERT INTO customers (email, password, name, loyalty_member)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			password = EXCLUDED.password,
			name = EXCLUDED.name,
			loyalty_member = EXCLUDED.loyalty_member
	`, c.Email, c.Password, c.Name, c.LoyaltyMember)
	if err != nil {
		return fmt.Errorf("save customer %s: %w", c.Email, err)
	}
	return nil
}

// LoadCustomers rehydrates every account, without ledgers: tickets are loaded
// separately and attached by the composition root.
func (s *PostgresCustomerStore) LoadCustomers() ([]*domain.Customer, error) {
	rows, err := s.db.Query(`
		SELECT email, password, name, loyalty_member
		FROM customers
		ORDER BY email
	`)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var email, password, name string
		var loyalty bool
		if err := rows.Scan(&email, &password, &name, &loyalty); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c, err := domain.NewCustomer(email, password, name, loyalty)
		if err != nil {
			return nil, fmt.Errorf("rehydrate customer %s: %w", email, err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
