package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-booking/models"
	"train-booking/services"
)

// BookingHandler serves single and batch reservations and ticket cancellation.
type BookingHandler struct {
	Bookings *services.BookingService
}

// Reserve books one seat for one passenger.
func (h *BookingHandler) Reserve(c *gin.Context) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.Bookings.ReserveTicket(req.TripID, req.PassengerName, req.CustomerEmail)
	if err != nil {
		log.Printf("Error reserving ticket: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BookingResponse{
		Success: true,
		Message: "Ticket reserved",
		Tickets: []models.TicketRecord{models.RecordFromTicket(ticket)},
	})
}

// ReserveBatch books seats for several passengers atomically.
func (h *BookingHandler) ReserveBatch(c *gin.Context) {
	var req models.BatchReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tickets, err := h.Bookings.ReserveTickets(req.TripID, req.Passengers, req.CustomerEmail)
	if err != nil {
		log.Printf("Error reserving batch: %v", err)
		respondError(c, err)
		return
	}

	records := make([]models.TicketRecord, len(tickets))
	for i, t := range tickets {
		records[i] = models.RecordFromTicket(t)
	}
	c.JSON(http.StatusOK, models.BookingResponse{
		Success: true,
		Message: "Tickets reserved",
		Tickets: records,
	})
}

// Cancel removes a ticket from a customer's ledger. The seat is not released.
func (h *BookingHandler) Cancel(c *gin.Context) {
	email := c.Query("customer_email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_email query parameter is required"})
		return
	}
	if err := h.Bookings.CancelTicket(email, c.Param("id")); err != nil {
		log.Printf("Error cancelling ticket: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ticket cancelled"})
}
