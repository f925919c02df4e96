package models

import (
	"time"

	"train-booking/cart"
)

// CartCreateRequest opens a shopping cart.
type CartCreateRequest struct {
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

// CartAddRequest reserves a seat into a cart without finalizing the purchase.
type CartAddRequest struct {
	TripID        string `json:"trip_id" binding:"required"`
	PassengerName string `json:"passenger_name" binding:"required"`
}

// CartView is the wire view of a cart.
type CartView struct {
	ID            string         `json:"id"`
	CustomerEmail string         `json:"customer_email"`
	Deadline      time.Time      `json:"deadline"`
	Tickets       []TicketRecord `json:"tickets"`
}

// ViewFromCart converts a cart into its wire view.
func ViewFromCart(c *cart.Cart) CartView {
	records := make([]TicketRecord, len(c.Tickets))
	for i, t := range c.Tickets {
		records[i] = RecordFromTicket(t)
	}
	return CartView{
		ID:            c.ID,
		CustomerEmail: c.CustomerEmail,
		Deadline:      c.Deadline,
		Tickets:       records,
	}
}
