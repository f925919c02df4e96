package models

import (
	"time"

	"train-booking/domain"
)

// TicketRecord is the wire/persistence view of a completed ticket. Price,
// route and platform are materialized from the referenced trip at read time.
type TicketRecord struct {
	ID            string    `json:"id"`
	TripID        string    `json:"trip_id"`
	PassengerName string    `json:"passenger_name"`
	PurchasedAt   time.Time `json:"purchased_at"`
	Price         float64   `json:"price"`
	Departure     string    `json:"departure"`
	Arrival       string    `json:"arrival"`
	Platform      string    `json:"platform"`
}

// RecordFromTicket materializes a ticket for the wire.
func RecordFromTicket(t *domain.Ticket) TicketRecord {
	state := t.Trip().State()
	return TicketRecord{
		ID:            t.ID(),
		TripID:        state.ID,
		PassengerName: t.PassengerName(),
		PurchasedAt:   t.PurchasedAt(),
		Price:         state.Price,
		Departure:     state.Route.Departure.String(),
		Arrival:       state.Route.Arrival.String(),
		Platform:      state.Platform,
	}
}

// ReservationRequest books one seat for one passenger.
type ReservationRequest struct {
	TripID        string `json:"trip_id" binding:"required"`
	PassengerName string `json:"passenger_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

// BatchReservationRequest books seats for several passengers at once. The
// whole batch succeeds or no seat stays reserved.
type BatchReservationRequest struct {
	TripID        string   `json:"trip_id" binding:"required"`
	CustomerEmail string   `json:"customer_email" binding:"required,email"`
	Passengers    []string `json:"passengers" binding:"required,min=1"`
}

// BookingResponse wraps a booking outcome.
type BookingResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Tickets []TicketRecord `json:"tickets,omitempty"`
}
