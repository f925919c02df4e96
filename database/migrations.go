package database

import (
	"database/sql"
	"fmt"
	"log"
)

// schema mirrors the Trip/Ticket/Customer/Promotion fields verbatim. Rows are
// persisted representations; rehydration goes through the domain
// reconstructors and never re-derives ids or re-runs jitter.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		departure_station TEXT NOT NULL,
		arrival_station TEXT NOT NULL,
		distance_km INT NOT NULL,
		train_code TEXT NOT NULL,
		service_class TEXT NOT NULL,
		total_seats INT NOT NULL,
		travel_date DATE NOT NULL,
		scheduled_departure TIMESTAMPTZ NOT NULL,
		scheduled_arrival TIMESTAMPTZ NOT NULL,
		effective_departure TIMESTAMPTZ NOT NULL,
		effective_arrival TIMESTAMPTZ NOT NULL,
		platform TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		duration_minutes INT NOT NULL,
		seats_available INT NOT NULL,
		status TEXT NOT NULL,
		cancellation_reason TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		email TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		loyalty_member BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL REFERENCES trips(id),
		customer_email TEXT NOT NULL REFERENCES customers(email),
		passenger_name TEXT NOT NULL,
		purchased_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		discount_percent NUMERIC(5,2) NOT NULL,
		kind TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_route_date
		ON trips (departure_station, arrival_station, travel_date)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_customer
		ON tickets (customer_email)`,
}

// RunMigrations ensures all required tables exist
func RunMigrations(db *sql.DB) error {
	log.Println("Checking database schema...")
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	log.Println("Database schema is up to date")
	return nil
}
