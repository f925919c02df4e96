package domain

import (
	"fmt"
	"sync"
	"time"
)

// FareStrategy computes the duration and base price of a run over a distance.
// One strategy exists per service class; it is consulted once, at trip
// construction, and the resulting duration is frozen.
type FareStrategy interface {
	Estimate(distanceKm int) (durationMinutes int, price float64)
}

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	StatusScheduled TripStatus = "scheduled"
	StatusConfirmed TripStatus = "confirmed"
	StatusInTransit TripStatus = "in_transit"
	StatusDelayed   TripStatus = "delayed"
	StatusArrived   TripStatus = "arrived"
	StatusCancelled TripStatus = "cancelled"
)

// Valid reports whether s is a known trip status.
func (s TripStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInTransit, StatusDelayed, StatusArrived, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s TripStatus) Terminal() bool {
	return s == StatusArrived || s == StatusCancelled
}

// active reports whether the trip can still carry passengers.
func (s TripStatus) active() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInTransit, StatusDelayed:
		return true
	}
	return false
}

// Trip is a scheduled run of a train over a route on a given date. All
// mutating operations and snapshot reads are serialized by the trip's own
// mutex; callers never need external locking per trip.
type Trip struct {
	mu sync.Mutex

	id         string
	route      Route
	train      Train
	travelDate time.Time

	scheduledDeparture time.Time
	scheduledArrival   time.Time
	effectiveDeparture time.Time
	effectiveArrival   time.Time
	platform           string

	price           float64
	durationMinutes int
	seatsAvailable  int

	status             TripStatus
	cancellationReason string

	observers []Observer
}

// NewTrip builds a trip in the Scheduled state. Duration and initial price
// come from the class strategy; duration is frozen from then on, price stays
// mutable through promotions.
func NewTrip(route Route, train Train, travelDate time.Time, departure time.Time, platform string, strategy FareStrategy) (*Trip, error) {
	if platform == "" {
		return nil, fmt.Errorf("new trip: platform must not be blank: %w", ErrValidation)
	}
	if strategy == nil {
		return nil, fmt.Errorf("new trip: fare strategy is required: %w", ErrValidation)
	}

	duration, price := strategy.Estimate(route.DistanceKm)
	arrival := departure.Add(time.Duration(duration) * time.Minute)

	id := hashID("TRP_",
		train.Code,
		route.Departure.String(),
		route.Arrival.String(),
		travelDate.Format("2006-01-02"),
		departure.Format(time.RFC3339),
		platform,
	)

	return &Trip{
		id:                 id,
		route:              route,
		train:              train,
		travelDate:         travelDate,
		scheduledDeparture: departure,
		scheduledArrival:   arrival,
		effectiveDeparture: departure,
		effectiveArrival:   arrival,
		platform:           platform,
		price:              price,
		durationMinutes:    duration,
		seatsAvailable:     train.TotalSeats,
		status:             StatusScheduled,
	}, nil
}

// RehydrateTrip rebuilds a persisted trip verbatim: the id is taken as-is and
// no fare strategy is consulted.
func RehydrateTrip(id string, route Route, train Train, travelDate time.Time,
	scheduledDeparture, scheduledArrival, effectiveDeparture, effectiveArrival time.Time,
	platform string, price float64, durationMinutes, seatsAvailable int,
	status TripStatus, cancellationReason string) (*Trip, error) {

	if id == "" {
		return nil, fmt.Errorf("rehydrate trip: id must not be blank: %w", ErrValidation)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("rehydrate trip %s: unknown status %q: %w", id, status, ErrValidation)
	}
	if seatsAvailable < 0 || seatsAvailable > train.TotalSeats {
		return nil, fmt.Errorf("rehydrate trip %s: seats %d outside [0,%d]: %w", id, seatsAvailable, train.TotalSeats, ErrValidation)
	}

	return &Trip{
		id:                 id,
		route:              route,
		train:              train,
		travelDate:         travelDate,
		scheduledDeparture: scheduledDeparture,
		scheduledArrival:   scheduledArrival,
		effectiveDeparture: effectiveDeparture,
		effectiveArrival:   effectiveArrival,
		platform:           platform,
		price:              price,
		durationMinutes:    durationMinutes,
		seatsAvailable:     seatsAvailable,
		status:             status,
		cancellationReason: cancellationReason,
	}, nil
}

// ID is fixed at construction and safe to read without the lock.
func (t *Trip) ID() string { return t.id }

func (t *Trip) Route() Route          { return t.route }
func (t *Trip) Train() Train          { return t.train }
func (t *Trip) TravelDate() time.Time { return t.travelDate }

func (t *Trip) ScheduledDeparture() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scheduledDeparture
}

func (t *Trip) ScheduledArrival() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scheduledArrival
}

func (t *Trip) EffectiveDeparture() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.effectiveDeparture
}

func (t *Trip) EffectiveArrival() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.effectiveArrival
}

func (t *Trip) Platform() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.platform
}

func (t *Trip) Price() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.price
}

// DurationMinutes is frozen at construction.
func (t *Trip) DurationMinutes() int { return t.durationMinutes }

func (t *Trip) SeatsAvailable() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seatsAvailable
}

func (t *Trip) Status() TripStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Trip) CancellationReason() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancellationReason
}

// IsAvailable reports whether a seat could be reserved right now.
func (t *Trip) IsAvailable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seatsAvailable > 0 && t.status.active()
}

// HasDelay reports whether the effective departure has slipped past the
// scheduled one.
func (t *Trip) HasDelay() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.effectiveDeparture.After(t.scheduledDeparture)
}

// ReserveSeat takes one seat if the trip is active and has capacity.
// It never fails loudly: a full or inactive trip simply reports false.
func (t *Trip) ReserveSeat() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seatsAvailable == 0 || !t.status.active() {
		return false
	}
	t.seatsAvailable--
	return true
}

// ReleaseSeat returns one seat to the pool, up to the train's capacity.
func (t *Trip) ReleaseSeat() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seatsAvailable >= t.train.TotalSeats {
		return false
	}
	t.seatsAvailable++
	return true
}

// reserveForTicket is the ticket issuance path: one lock acquisition that
// distinguishes an inactive trip from a sold-out one.
func (t *Trip) reserveForTicket() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.status.active() {
		return fmt.Errorf("trip %s is %s: %w", t.id, t.status, ErrInvalidState)
	}
	if t.seatsAvailable == 0 {
		return fmt.Errorf("trip %s: %w", t.id, ErrNoSeats)
	}
	t.seatsAvailable--
	return nil
}

// Confirm moves a scheduled trip to Confirmed.
func (t *Trip) Confirm() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusScheduled {
		return fmt.Errorf("confirm trip %s from %s: %w", t.id, t.status, ErrInvalidState)
	}
	t.status = StatusConfirmed
	return nil
}

// Depart moves a confirmed or delayed trip to InTransit.
func (t *Trip) Depart() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusConfirmed && t.status != StatusDelayed {
		return fmt.Errorf("depart trip %s from %s: %w", t.id, t.status, ErrInvalidState)
	}
	t.status = StatusInTransit
	return nil
}

// Arrive moves an in-transit trip to Arrived.
func (t *Trip) Arrive() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusInTransit {
		return fmt.Errorf("arrive trip %s from %s: %w", t.id, t.status, ErrInvalidState)
	}
	t.status = StatusArrived
	return nil
}

// SetDelay recomputes the effective schedule as scheduled + minutes. A positive
// delay on a Scheduled or Confirmed trip moves it to Delayed; zero minutes on a
// Delayed trip reverts it to Confirmed. The returned notification, if any, is
// emitted by the caller once the change is persisted.
func (t *Trip) SetDelay(minutes int) (*Notification, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if minutes < 0 {
		return nil, fmt.Errorf("delay of %d minutes on trip %s: %w", minutes, t.id, ErrValidation)
	}
	if t.status.Terminal() {
		return nil, fmt.Errorf("set delay on trip %s (%s): %w", t.id, t.status, ErrInvalidState)
	}

	delta := time.Duration(minutes) * time.Minute
	t.effectiveDeparture = t.scheduledDeparture.Add(delta)
	t.effectiveArrival = t.scheduledArrival.Add(delta)

	if minutes > 0 {
		if t.status == StatusScheduled || t.status == StatusConfirmed {
			t.status = StatusDelayed
		}
		return &Notification{
			Kind: NotifyDelayChanged,
			Message: fmt.Sprintf("Trip %s (%s) delayed by %d minutes, new departure %s",
				t.id, t.route, minutes, t.effectiveDeparture.Format("15:04")),
		}, nil
	}

	if t.status == StatusDelayed {
		t.status = StatusConfirmed
	}
	return nil, nil
}

// Cancel forces the trip to Cancelled and records the reason. Trips already
// underway or arrived cannot be cancelled.
func (t *Trip) Cancel(reason string) (*Notification, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == StatusArrived || t.status == StatusInTransit {
		return nil, fmt.Errorf("cancel trip %s (%s): %w", t.id, t.status, ErrInvalidState)
	}
	t.status = StatusCancelled
	t.cancellationReason = reason
	return &Notification{
		Kind:    NotifyCancelled,
		Message: fmt.Sprintf("Trip %s (%s) cancelled: %s", t.id, t.route, reason),
	}, nil
}

// ChangePlatform reassigns the departure platform. Allowed only while the trip
// is Scheduled or Delayed.
func (t *Trip) ChangePlatform(platform string) (*Notification, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if platform == "" {
		return nil, fmt.Errorf("platform must not be blank on trip %s: %w", t.id, ErrValidation)
	}
	if t.status != StatusScheduled && t.status != StatusDelayed {
		return nil, fmt.Errorf("change platform on trip %s (%s): %w", t.id, t.status, ErrInvalidState)
	}
	t.platform = platform
	return &Notification{
		Kind:    NotifyPlatformChanged,
		Message: fmt.Sprintf("Trip %s (%s) now departs from platform %s", t.id, t.route, platform),
	}, nil
}

// Reschedule moves the effective departure, preserving the frozen duration.
// The state is left untouched.
func (t *Trip) Reschedule(newDeparture time.Time) (*Notification, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Terminal() {
		return nil, fmt.Errorf("reschedule trip %s (%s): %w", t.id, t.status, ErrInvalidState)
	}
	t.effectiveDeparture = newDeparture
	t.effectiveArrival = newDeparture.Add(time.Duration(t.durationMinutes) * time.Minute)
	return &Notification{
		Kind: NotifyDepartureChanged,
		Message: fmt.Sprintf("Trip %s (%s) departure moved to %s",
			t.id, t.route, newDeparture.Format("2006-01-02 15:04")),
	}, nil
}

// discountPrice applies a multiplicative price factor. Called by Promotion.
func (t *Trip) discountPrice(factor float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.price *= factor
}

// Attach subscribes an observer. Attaching twice is a no-op; attachment order
// is preserved for fan-out.
func (t *Trip) Attach(o Observer) {
	if o == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.observers {
		if existing == o {
			return
		}
	}
	t.observers = append(t.observers, o)
}

// Detach unsubscribes an observer. Unknown observers are ignored.
func (t *Trip) Detach(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, existing := range t.observers {
		if existing == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// NotifyObservers delivers n to every attached observer in attachment order.
// Each delivery is guarded: a panicking observer is logged by the guard and
// the fan-out continues.
func (t *Trip) NotifyObservers(n Notification) {
	t.mu.Lock()
	observers := make([]Observer, len(t.observers))
	copy(observers, t.observers)
	t.mu.Unlock()

	for _, o := range observers {
		notifyOne(o, n)
	}
}

// TripState is a consistent read of every mutable trip field, taken under the
// trip lock in a single acquisition.
type TripState struct {
	ID                 string
	Route              Route
	Train              Train
	TravelDate         time.Time
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	EffectiveDeparture time.Time
	EffectiveArrival   time.Time
	Platform           string
	Price              float64
	DurationMinutes    int
	SeatsAvailable     int
	Status             TripStatus
	CancellationReason string
}

// State snapshots the trip.
func (t *Trip) State() TripState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TripState{
		ID:                 t.id,
		Route:              t.route,
		Train:              t.train,
		TravelDate:         t.travelDate,
		ScheduledDeparture: t.scheduledDeparture,
		ScheduledArrival:   t.scheduledArrival,
		EffectiveDeparture: t.effectiveDeparture,
		EffectiveArrival:   t.effectiveArrival,
		Platform:           t.platform,
		Price:              t.price,
		DurationMinutes:    t.durationMinutes,
		SeatsAvailable:     t.seatsAvailable,
		Status:             t.status,
		CancellationReason: t.cancellationReason,
	}
}
