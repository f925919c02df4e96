package database

import (
	"database/sql"
	"fmt"

	"train-booking/domain"
)

// PostgresTripStore persists trip snapshots with raw SQL.
type PostgresTripStore struct {
	db *sql.DB
}

func NewPostgresTripStore(db *sql.DB) *PostgresTripStore {
	return &PostgresTripStore{db: db}
}

// SaveTrip upserts the trip's current state.
func (s *PostgresTripStore) SaveTrip(t *domain.Trip) error {
	state := t.State()
	_, err := s.db.Exec(`
		INSERT INTO trips (
			id, departure_station, arrival_station, distance_km,
			train_code, service_class, total_seats, travel_date,
			scheduled_departure, scheduled_arrival,
			effective_departure, effective_arrival,
			platform, price, duration_minutes, seats_available,
			status, cancellation_reason
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (id) DO UPDATE SET
			effective_departure = EXCLUDED.effective_departure,
			effective_arrival = EXCLUDED.effective_arrival,
			platform = EXCLUDED.platform,
			price = EXCLUDED.price,
			seats_available = EXCLUDED.seats_available,
			status = EXCLUDED.status,
			cancellation_reason = EXCLUDED.cancellation_reason
	`,
		state.ID, state.Route.Departure.String(), state.Route.Arrival.String(), state.Route.DistanceKm,
		state.Train.Code, string(state.Train.Class), state.Train.TotalSeats, state.TravelDate,
		state.ScheduledDeparture, state.ScheduledArrival,
		state.EffectiveDeparture, state.EffectiveArrival,
		state.Platform, state.Price, state.DurationMinutes, state.SeatsAvailable,
		string(state.Status), state.CancellationReason,
	)
	if err != nil {
		return fmt.Errorf("save trip %s: %w", state.ID, err)
	}
	return nil
}

// DeleteTrip removes a trip row.
func (s *PostgresTripStore) DeleteTrip(id string) error {
	if _, err := s.db.Exec(`DELETE FROM trips WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	return nil
}

// LoadTrips rehydrates every persisted trip.
func (s *PostgresTripStore) LoadTrips() ([]*domain.Trip, error) {
	rows, err := s.db.Query(`
		SELECT id, departure_station, arrival_station, distance_km,
			train_code, service_class, total_seats, travel_date,
			scheduled_departure, scheduled_arrival,
			effective_departure, effective_arrival,
			platform, price, duration_minutes, seats_available,
			status, cancellation_reason
		FROM trips
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var (
			id, depName, arrName, code, class, platform, status, reason string
			distance, totalSeats, duration, seats                       int
			price                                                       float64
			travelDate, schedDep, schedArr, effDep, effArr              sql.NullTime
		)
		if err := rows.Scan(&id, &depName, &arrName, &distance,
			&code, &class, &totalSeats, &travelDate,
			&schedDep, &schedArr, &effDep, &effArr,
			&platform, &price, &duration, &seats,
			&status, &reason); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}

		departure, err := domain.ParseStation(depName)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", id, err)
		}
		arrival, err := domain.ParseStation(arrName)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", id, err)
		}
		route, err := domain.RouteFromRecord(departure, arrival, distance)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", id, err)
		}
		train, err := domain.NewTrain(code, domain.ServiceClass(class), totalSeats)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", id, err)
		}

		trip, err := domain.RehydrateTrip(id, route, train, travelDate.Time,
			schedDep.Time, schedArr.Time, effDep.Time, effArr.Time,
			platform, price, duration, seats,
			domain.TripStatus(status), reason)
		if err != nil {
			return nil, fmt.Errorf("rehydrate trip %s: %w", id, err)
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}
