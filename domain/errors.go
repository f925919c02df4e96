package domain

import "errors"

// Sentinel errors for the domain core. Callers classify failures with errors.Is;
// the wrapped message carries the specifics.
var (
	// ErrValidation marks malformed input: blank names, equal route endpoints,
	// invalid emails, out-of-range discounts.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState marks an illegal trip state transition, such as cancelling
	// a trip that already arrived.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrNoSeats is returned when a ticket cannot be issued because the trip has
	// no remaining seats. Seat-level accounting itself reports booleans; this
	// sentinel belongs to the ticket issuance path.
	ErrNoSeats = errors.New("no seats available")

	// ErrNotFound marks a lookup miss for a trip, ticket, customer or promotion.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate marks an identity collision, such as registering an email
	// that already exists.
	ErrDuplicate = errors.New("already exists")
)
