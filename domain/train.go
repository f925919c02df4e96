package domain

import (
	"fmt"
	"strings"
)

// ServiceClass is the fare tier a train operates under.
type ServiceClass string

const (
	ClassEconomy  ServiceClass = "economy"
	ClassStandard ServiceClass = "standard"
	ClassBusiness ServiceClass = "business"
)

// Valid reports whether c is a known service class.
func (c ServiceClass) Valid() bool {
	switch c {
	case ClassEconomy, ClassStandard, ClassBusiness:
		return true
	}
	return false
}

// ParseServiceClass resolves a service class name, case-insensitively.
func ParseServiceClass(name string) (ServiceClass, error) {
	c := ServiceClass(strings.ToLower(strings.TrimSpace(name)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown service class %q: %w", name, ErrValidation)
	}
	return c, nil
}

// Amenity is an on-board service offered by a train.
type Amenity string

const (
	AmenityAC        Amenity = "air_conditioning"
	AmenityWiFi      Amenity = "wifi"
	AmenityPower     Amenity = "power_outlets"
	AmenityHighSpeed Amenity = "high_speed"
	AmenityCatering  Amenity = "catering"
	AmenityQuietZone Amenity = "quiet_zone"
	AmenityLounge    Amenity = "lounge_access"
)

// DefaultAmenities returns the amenity set a service class ships with.
func DefaultAmenities(class ServiceClass) []Amenity {
	switch class {
	case ClassStandard:
		return []Amenity{AmenityAC, AmenityWiFi, AmenityPower}
	case ClassBusiness:
		return []Amenity{AmenityHighSpeed, AmenityCatering, AmenityWiFi, AmenityAC, AmenityPower, AmenityQuietZone, AmenityLounge}
	default:
		return []Amenity{AmenityAC}
	}
}

// Train describes the rolling stock assigned to a trip.
type Train struct {
	Code       string
	Class      ServiceClass
	TotalSeats int
	Amenities  []Amenity
}

// NewTrain builds a train descriptor with the class-default amenity set.
func NewTrain(code string, class ServiceClass, totalSeats int) (Train, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Train{}, fmt.Errorf("train code must not be blank: %w", ErrValidation)
	}
	if !class.Valid() {
		return Train{}, fmt.Errorf("unknown service class %q: %w", class, ErrValidation)
	}
	if totalSeats <= 0 {
		return Train{}, fmt.Errorf("train %s must have at least one seat (got %d): %w", code, totalSeats, ErrValidation)
	}
	return Train{
		Code:       code,
		Class:      class,
		TotalSeats: totalSeats,
		Amenities:  DefaultAmenities(class),
	}, nil
}
