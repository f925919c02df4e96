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

// TripHandler serves trip search and lookup.
type TripHandler struct {
	Trips *services.TripService
}

// Search returns the available trips for a route and date.
func (h *TripHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	departure, err := domain.ParseStation(req.Departure)
	if err != nil {
		respondError(c, err)
		return
	}
	arrival, err := domain.ParseStation(req.Arrival)
	if err != nil {
		respondError(c, err)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(c, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", req.Date, domain.ErrValidation))
		return
	}

	trips := h.Trips.Search(departure, arrival, date)
	log.Printf("Search: %s -> %s on %s, %d result(s)", departure, arrival, req.Date, len(trips))

	snapshots := make([]models.TripSnapshot, len(trips))
	for i, t := range trips {
		snapshots[i] = models.SnapshotFromTrip(t)
	}
	c.JSON(http.StatusOK, gin.H{"trips": snapshots})
}

// Get returns one trip by id.
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.Trips.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SnapshotFromTrip(trip))
}
