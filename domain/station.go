package domain

import (
	"fmt"
	"strings"
)

// Station is one of the fixed set of stations served by the network.
type Station int

const (
	Roma Station = iota
	Milano
	Napoli
	Torino
	Bologna
	Firenze
	Venezia
	Genova
)

var stationNames = [...]string{
	Roma:    "Roma",
	Milano:  "Milano",
	Napoli:  "Napoli",
	Torino:  "Torino",
	Bologna: "Bologna",
	Firenze: "Firenze",
	Venezia: "Venezia",
	Genova:  "Genova",
}

func (s Station) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Station(%d)", int(s))
	}
	return stationNames[s]
}

// Valid reports whether s is part of the station enumeration.
func (s Station) Valid() bool {
	return s >= 0 && int(s) < len(stationNames)
}

// ParseStation resolves a station by name, case-insensitively.
func ParseStation(name string) (Station, error) {
	for i, n := range stationNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Station(i), nil
		}
	}
	return 0, fmt.Errorf("unknown station %q: %w", name, ErrValidation)
}

// Stations returns every station in the network.
func Stations() []Station {
	all := make([]Station, len(stationNames))
	for i := range stationNames {
		all[i] = Station(i)
	}
	return all
}
