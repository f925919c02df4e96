package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"train-booking/domain"
	"train-booking/models"
	"train-booking/services"
)

// AdminHandler serves the trip mutations: delay, cancellation, platform change
// and reschedule. Observers are notified by the service once each change is
// persisted.
type AdminHandler struct {
	Trips *services.TripService
}

// Delay sets or clears a trip delay.
func (h *AdminHandler) Delay(c *gin.Context) {
	var req models.DelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Trips.SetDelay(c.Param("id"), *req.Minutes); err != nil {
		log.Printf("Error setting delay: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Cancel cancels a trip with a reason.
func (h *AdminHandler) Cancel(c *gin.Context) {
	var req models.CancelTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Trips.CancelTrip(c.Param("id"), req.Reason); err != nil {
		log.Printf("Error cancelling trip: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ChangePlatform reassigns the departure platform.
func (h *AdminHandler) ChangePlatform(c *gin.Context) {
	var req models.PlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Trips.ChangePlatform(c.Param("id"), req.Platform); err != nil {
		log.Printf("Error changing platform: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reschedule moves the effective departure.
func (h *AdminHandler) Reschedule(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	departure, err := time.Parse(time.RFC3339, req.Departure)
	if err != nil {
		respondError(c, fmt.Errorf("invalid departure %q (want RFC 3339): %w", req.Departure, domain.ErrValidation))
		return
	}
	if err := h.Trips.Reschedule(c.Param("id"), departure); err != nil {
		log.Printf("Error rescheduling trip: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
