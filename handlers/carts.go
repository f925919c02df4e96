package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-booking/cart"
	"train-booking/models"
	"train-booking/services"
)

// CartHandler serves the shopping-cart flow: seats held under a deadline,
// finalized on checkout or released on abandon/expiry.
type CartHandler struct {
	Carts    *cart.Manager
	Bookings *services.BookingService
}

// Create opens a cart.
func (h *CartHandler) Create(c *gin.Context) {
	var req models.CartCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created := h.Carts.Create(req.CustomerEmail)
	c.JSON(http.StatusCreated, models.ViewFromCart(created))
}

// Add reserves a seat into a cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req models.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.Bookings.ReserveForCart(req.TripID, req.PassengerName)
	if err != nil {
		log.Printf("Error reserving into cart: %v", err)
		respondError(c, err)
		return
	}
	if err := h.Carts.Add(c.Param("id"), ticket); err != nil {
		// The cart is gone; put the seat back.
		ticket.Trip().ReleaseSeat()
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.RecordFromTicket(ticket))
}

// Checkout finalizes a cart: tickets are persisted and ledgered, seats stay
// reserved.
func (h *CartHandler) Checkout(c *gin.Context) {
	got, err := h.Carts.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	tickets, err := h.Carts.Checkout(got.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Bookings.FinalizeCart(got.CustomerEmail, tickets); err != nil {
		log.Printf("Error finalizing cart: %v", err)
		respondError(c, err)
		return
	}

	records := make([]models.TicketRecord, len(tickets))
	for i, t := range tickets {
		records[i] = models.RecordFromTicket(t)
	}
	c.JSON(http.StatusOK, models.BookingResponse{
		Success: true,
		Message: "Cart checked out",
		Tickets: records,
	})
}

// Abandon discards a cart, releasing its seats.
func (h *CartHandler) Abandon(c *gin.Context) {
	if err := h.Carts.Abandon(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart abandoned"})
}
