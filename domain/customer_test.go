package domain

import (
	"errors"
	"math"
	"testing"
)

func TestNewCustomerValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		fullName string
		wantErr  bool
	}{
		{"valid", "anna@example.com", "secret1", "Anna Rossi", false},
		{"uppercase email normalized", "ANNA@Example.COM", "secret1", "Anna Rossi", false},
		{"missing at sign", "anna.example.com", "secret1", "Anna Rossi", true},
		{"missing domain", "anna@", "secret1", "Anna Rossi", true},
		{"short password", "anna@example.com", "12345", "Anna Rossi", true},
		{"blank name", "anna@example.com", "secret1", "   ", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCustomer(tc.email, tc.password, tc.fullName, false)
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("NewCustomer = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCustomer: %v", err)
			}
			if c.Email != "anna@example.com" {
				t.Errorf("email = %q, want lowercased", c.Email)
			}
		})
	}
}

func TestCustomerEqualByEmailOnly(t *testing.T) {
	a, err := NewCustomer("anna@example.com", "secret1", "Anna Rossi", false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewCustomer("Anna@Example.com", "different", "Somebody Else", true)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewCustomer("luca@example.com", "secret1", "Anna Rossi", false)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("customers with the same email should be equal")
	}
	if a.Equal(c) {
		t.Error("customers with different emails should not be equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
}

func TestAddTicketsRejectsNilBatch(t *testing.T) {
	trip := newTestTrip(t, 5)
	c, err := NewCustomer("anna@example.com", "secret1", "Anna Rossi", false)
	if err != nil {
		t.Fatal(err)
	}
	good, err := NewTicket(trip, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddTickets([]*Ticket{good, nil}); !errors.Is(err, ErrValidation) {
		t.Fatalf("AddTickets with nil entry = %v, want ErrValidation", err)
	}
	if len(c.Tickets()) != 0 {
		t.Error("a rejected batch must not append any tickets")
	}
}

// A customer buys on two trips, one trip is cancelled, the cancelled ticket
// stays in the ledger but drops out of the valid set and total spend still
// counts both trips at their current price.
func TestCustomerLedgerAcrossCancellation(t *testing.T) {
	tripA := newTestTrip(t, 10)
	tripB, err := NewTrip(Route{Departure: Napoli, Arrival: Torino, DistanceKm: 600},
		Train{Code: "FR9000", Class: ClassBusiness, TotalSeats: 200},
		testDeparture().AddDate(0, 0, 1), testDeparture().AddDate(0, 0, 1), "7",
		fixedFare{duration: 240, price: 250})
	if err != nil {
		t.Fatalf("NewTrip: %v", err)
	}

	c, err := NewCustomer("anna@example.com", "secret1", "Anna Rossi", true)
	if err != nil {
		t.Fatal(err)
	}

	ticketA, err := NewTicket(tripA, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ticketA.AssignPassenger("Anna Rossi"); err != nil {
		t.Fatal(err)
	}
	ticketB, err := NewTicket(tripB, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ticketB.AssignPassenger("Anna Rossi"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddTickets([]*Ticket{ticketA, ticketB}); err != nil {
		t.Fatal(err)
	}

	if got := c.TotalSpent(); math.Abs(got-350) > 1e-9 {
		t.Errorf("TotalSpent = %.2f, want 350.00", got)
	}

	if _, err := tripB.Cancel("strike"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if len(c.Tickets()) != 2 {
		t.Errorf("ledger holds %d tickets after cancellation, want 2", len(c.Tickets()))
	}
	valid := c.ValidTickets()
	if len(valid) != 1 || valid[0] != ticketA {
		t.Errorf("ValidTickets = %v, want only the ticket on the running trip", valid)
	}
}

func TestRemoveTicketKeepsSeatCount(t *testing.T) {
	trip := newTestTrip(t, 5)
	c, err := NewCustomer("anna@example.com", "secret1", "Anna Rossi", false)
	if err != nil {
		t.Fatal(err)
	}
	ticket, err := NewTicket(trip, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ticket.AssignPassenger("Anna Rossi"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddTicket(ticket); err != nil {
		t.Fatal(err)
	}

	if !c.RemoveTicketByID(ticket.ID()) {
		t.Fatal("RemoveTicketByID should find the ticket")
	}
	if len(c.Tickets()) != 0 {
		t.Error("ledger should be empty after removal")
	}
	if trip.SeatsAvailable() != 4 {
		t.Errorf("seats = %d after removal, want 4 (seat stays reserved)", trip.SeatsAvailable())
	}
	if c.RemoveTicketByID(ticket.ID()) {
		t.Error("second removal of the same id should report false")
	}
	if c.RemoveTicketByID("") {
		t.Error("blank id should never match")
	}
}
