package models

import "train-booking/domain"

// RegisterRequest creates a customer account.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Name          string `json:"name" binding:"required"`
	LoyaltyMember bool   `json:"loyalty_member"`
}

// CustomerProfile is the wire view of a customer and their ledger.
type CustomerProfile struct {
	Email         string         `json:"email"`
	Name          string         `json:"name"`
	LoyaltyMember bool           `json:"loyalty_member"`
	Tickets       []TicketRecord `json:"tickets"`
	ValidTickets  int            `json:"valid_tickets"`
	TotalSpent    float64        `json:"total_spent"`
}

// ProfileFromCustomer materializes a customer and their ticket ledger.
func ProfileFromCustomer(c *domain.Customer) CustomerProfile {
	tickets := c.Tickets()
	records := make([]TicketRecord, len(tickets))
	for i, t := range tickets {
		records[i] = RecordFromTicket(t)
	}
	return CustomerProfile{
		Email:         c.Email,
		Name:          c.Name,
		LoyaltyMember: c.LoyaltyMember,
		Tickets:       records,
		ValidTickets:  len(c.ValidTickets()),
		TotalSpent:    c.TotalSpent(),
	}
}
