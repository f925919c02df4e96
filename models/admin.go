package models

// DelayRequest sets or clears a delay in minutes. Pointer so that an explicit
// zero (clear the delay) survives binding.
type DelayRequest struct {
	Minutes *int `json:"minutes" binding:"required"`
}

// CancelTripRequest cancels a trip with a reason.
type CancelTripRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PlatformRequest reassigns the departure platform.
type PlatformRequest struct {
	Platform string `json:"platform" binding:"required"`
}

// RescheduleRequest moves the effective departure (RFC 3339).
type RescheduleRequest struct {
	Departure string `json:"departure" binding:"required"`
}
