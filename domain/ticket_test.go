package domain

import (
	"errors"
	"testing"
	"time"
)

// tickingClock returns a clock that advances by step on every call.
func tickingClock(start time.Time, step time.Duration) Clock {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

func TestNewTicketReservesSeat(t *testing.T) {
	trip := newTestTrip(t, 3)
	clock := func() time.Time { return testDeparture().Add(-24 * time.Hour) }

	ticket, err := NewTicket(trip, clock)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	if trip.SeatsAvailable() != 2 {
		t.Errorf("seats after purchase = %d, want 2", trip.SeatsAvailable())
	}
	if ticket.IsComplete() {
		t.Error("fresh ticket should be incomplete")
	}
	if !ticket.PurchasedAt().Equal(testDeparture().Add(-24 * time.Hour)) {
		t.Errorf("purchasedAt = %v, want clock instant", ticket.PurchasedAt())
	}

	if err := ticket.AssignPassenger("  Anna Rossi  "); err != nil {
		t.Fatalf("AssignPassenger: %v", err)
	}
	if !ticket.IsComplete() {
		t.Error("ticket should be complete after passenger assignment")
	}
	if ticket.PassengerName() != "Anna Rossi" {
		t.Errorf("passenger = %q, want trimmed name", ticket.PassengerName())
	}
	if len(ticket.ID()) != len("TKT_")+8 {
		t.Errorf("ticket id %q should be TKT_ plus eight digits", ticket.ID())
	}
}

func TestAssignPassengerRejectsBlankName(t *testing.T) {
	trip := newTestTrip(t, 3)
	ticket, err := NewTicket(trip, nil)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	for _, name := range []string{"", "   ", "\t\n"} {
		if err := ticket.AssignPassenger(name); !errors.Is(err, ErrValidation) {
			t.Errorf("AssignPassenger(%q) = %v, want ErrValidation", name, err)
		}
	}
	if ticket.IsComplete() {
		t.Error("rejected assignment must not complete the ticket")
	}
}

func TestTicketIDsDifferPerInstant(t *testing.T) {
	trip := newTestTrip(t, 5)
	clock := tickingClock(testDeparture().Add(-48*time.Hour), time.Millisecond)

	first, err := NewTicket(trip, clock)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	second, err := NewTicket(trip, clock)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	if err := first.AssignPassenger("Mario Bianchi"); err != nil {
		t.Fatal(err)
	}
	if err := second.AssignPassenger("Mario Bianchi"); err != nil {
		t.Fatal(err)
	}
	if first.ID() == second.ID() {
		t.Errorf("same passenger on same trip at different instants got identical id %q", first.ID())
	}
}

func TestCloneIncomplete(t *testing.T) {
	trip := newTestTrip(t, 5)
	clock := tickingClock(testDeparture().Add(-48*time.Hour), time.Millisecond)

	base, err := NewTicket(trip, clock)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}

	clone, err := base.CloneIncomplete()
	if err != nil {
		t.Fatalf("CloneIncomplete: %v", err)
	}
	if trip.SeatsAvailable() != 3 {
		t.Errorf("seats after base+clone = %d, want 3", trip.SeatsAvailable())
	}
	if clone.Trip() != base.Trip() {
		t.Error("clone must share the trip instance")
	}
	if !clone.PurchasedAt().Equal(base.PurchasedAt()) {
		t.Error("clone must keep the original purchase timestamp")
	}
	if clone.IsComplete() || clone.ID() != "" || clone.PassengerName() != "" {
		t.Error("clone must start with blank identity")
	}

	if err := base.AssignPassenger("Anna Rossi"); err != nil {
		t.Fatal(err)
	}
	if err := clone.AssignPassenger("Luca Verdi"); err != nil {
		t.Fatal(err)
	}
	if base.ID() == clone.ID() {
		t.Errorf("base and clone share id %q after assignment", base.ID())
	}
}

func TestCloneChainConsumesOneSeatEach(t *testing.T) {
	trip := newTestTrip(t, 10)
	base, err := NewTicket(trip, nil)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	const extras = 4
	for i := 0; i < extras; i++ {
		if _, err := base.CloneIncomplete(); err != nil {
			t.Fatalf("clone %d: %v", i, err)
		}
	}
	if got := trip.SeatsAvailable(); got != 10-(extras+1) {
		t.Errorf("seats = %d, want %d", got, 10-(extras+1))
	}
}

func TestNewTicketOnInactiveTrip(t *testing.T) {
	trip := newTestTrip(t, 3)
	if _, err := trip.Cancel("maintenance"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := NewTicket(trip, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("NewTicket on cancelled trip = %v, want ErrInvalidState", err)
	}
}

func TestNewTicketSoldOut(t *testing.T) {
	trip := newTestTrip(t, 1)
	if _, err := NewTicket(trip, nil); err != nil {
		t.Fatalf("first ticket: %v", err)
	}
	if _, err := NewTicket(trip, nil); !errors.Is(err, ErrNoSeats) {
		t.Errorf("NewTicket on sold-out trip = %v, want ErrNoSeats", err)
	}
}

func TestCloneIncompleteSoldOut(t *testing.T) {
	trip := newTestTrip(t, 1)
	base, err := NewTicket(trip, nil)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	if _, err := base.CloneIncomplete(); !errors.Is(err, ErrNoSeats) {
		t.Errorf("CloneIncomplete on sold-out trip = %v, want ErrNoSeats", err)
	}
}

func TestRehydrateTicketReservesNoSeat(t *testing.T) {
	trip := newTestTrip(t, 5)
	bought := testDeparture().Add(-72 * time.Hour)

	ticket, err := RehydrateTicket("TKT_00112233", trip, "Anna Rossi", bought, nil)
	if err != nil {
		t.Fatalf("RehydrateTicket: %v", err)
	}
	if trip.SeatsAvailable() != 5 {
		t.Errorf("rehydration consumed a seat: %d left, want 5", trip.SeatsAvailable())
	}
	if !ticket.IsComplete() {
		t.Error("rehydrated ticket with id and name should be complete")
	}
	if ticket.ID() != "TKT_00112233" {
		t.Errorf("id = %q, want stored value verbatim", ticket.ID())
	}
}
