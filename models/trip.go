package models

import (
	"time"

	"train-booking/domain"
)

// TripSnapshot is the wire view of a trip, taken as one consistent read.
type TripSnapshot struct {
	ID                 string    `json:"id"`
	Departure          string    `json:"departure"`
	Arrival            string    `json:"arrival"`
	DistanceKm         int       `json:"distance_km"`
	TrainCode          string    `json:"train_code"`
	ServiceClass       string    `json:"service_class"`
	Amenities          []string  `json:"amenities"`
	TravelDate         string    `json:"travel_date"`
	ScheduledDeparture time.Time `json:"scheduled_departure"`
	ScheduledArrival   time.Time `json:"scheduled_arrival"`
	EffectiveDeparture time.Time `json:"effective_departure"`
	EffectiveArrival   time.Time `json:"effective_arrival"`
	Platform           string    `json:"platform"`
	Price              float64   `json:"price"`
	DurationMinutes    int       `json:"duration_minutes"`
	SeatsAvailable     int       `json:"seats_available"`
	Status             string    `json:"status"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	Available          bool      `json:"available"`
}

// SnapshotFromTrip converts a trip into its wire view.
func SnapshotFromTrip(t *domain.Trip) TripSnapshot {
	state := t.State()
	amenities := make([]string, len(state.Train.Amenities))
	for i, a := range state.Train.Amenities {
		amenities[i] = string(a)
	}
	return TripSnapshot{
		ID:                 state.ID,
		Departure:          state.Route.Departure.String(),
		Arrival:            state.Route.Arrival.String(),
		DistanceKm:         state.Route.DistanceKm,
		TrainCode:          state.Train.Code,
		ServiceClass:       string(state.Train.Class),
		Amenities:          amenities,
		TravelDate:         state.TravelDate.Format("2006-01-02"),
		ScheduledDeparture: state.ScheduledDeparture,
		ScheduledArrival:   state.ScheduledArrival,
		EffectiveDeparture: state.EffectiveDeparture,
		EffectiveArrival:   state.EffectiveArrival,
		Platform:           state.Platform,
		Price:              state.Price,
		DurationMinutes:    state.DurationMinutes,
		SeatsAvailable:     state.SeatsAvailable,
		Status:             string(state.Status),
		CancellationReason: state.CancellationReason,
		Available:          state.SeatsAvailable > 0 && !state.Status.Terminal(),
	}
}

// SearchRequest is a trip search query.
type SearchRequest struct {
	Departure string `json:"departure" binding:"required"`
	Arrival   string `json:"arrival" binding:"required"`
	Date      string `json:"date" binding:"required"`
}
