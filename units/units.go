// Package units converts a vehicle speed and a time allowance into a travel
// distance, and a travel distance into a cost budget in grid units.
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Sentinel errors for unit conversion.
var (
	// ErrBadSpeed indicates a negative, NaN or infinite speed.
	ErrBadSpeed = errors.New("units: speed must be finite and non-negative")
	// ErrBadDuration indicates a negative time allowance.
	ErrBadDuration = errors.New("units: duration must be non-negative")
	// ErrBadCellSize indicates a non-positive or non-finite cell size.
	ErrBadCellSize = errors.New("units: cell size must be finite and positive")
	// ErrBadDistance indicates a negative, NaN or infinite distance.
	ErrBadDistance = errors.New("units: distance must be finite and non-negative")
	// ErrUnknownUnit indicates an unrecognized speed unit.
	ErrUnknownUnit = errors.New("units: unknown speed unit")
)

// MetersPerNauticalMile is the international nautical mile.
const MetersPerNauticalMile = 1852.0

// SpeedUnit selects how a speed value is interpreted.
type SpeedUnit int

const (
	// Knots: nautical miles per hour. The default for air speeds.
	Knots SpeedUnit = iota
	// KilometersPerHour: km/h.
	KilometersPerHour
	// MetersPerSecond: m/s.
	MetersPerSecond
	// MilesPerHour: statute miles per hour.
	MilesPerHour
)

// metersPerSecond holds the factor converting one unit of speed into m/s.
var metersPerSecond = map[SpeedUnit]float64{
	Knots:             MetersPerNauticalMile / 3600,
	KilometersPerHour: 1000.0 / 3600,
	MetersPerSecond:   1,
	MilesPerHour:      1609.344 / 3600,
}

// String returns the canonical short name of u.
func (u SpeedUnit) String() string {
	switch u {
	case Knots:
		return "kn"
	case KilometersPerHour:
		return "km/h"
	case MetersPerSecond:
		return "m/s"
	case MilesPerHour:
		return "mph"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// ParseSpeedUnit accepts the String form or a long name, case-insensitively.
func ParseSpeedUnit(s string) (SpeedUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kn", "kt", "knot", "knots", "":
		return Knots, nil
	case "km/h", "kmh", "kph":
		return KilometersPerHour, nil
	case "m/s", "mps":
		return MetersPerSecond, nil
	case "mph":
		return MilesPerHour, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// NauticalMilesTraveled returns the distance covered at knots for minutes.
func NauticalMilesTraveled(knots, minutes float64) float64 {
	return knots * (minutes / 60)
}

// NauticalMilesToMeters converts nautical miles to metres.
func NauticalMilesToMeters(nm float64) float64 {
	return nm * MetersPerNauticalMile
}

// Distance returns the metres covered at speed (in unit) during d.
func Distance(speed float64, unit SpeedUnit, d time.Duration) (float64, error) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadSpeed, speed)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadDuration, d)
	}
	// Knots keep the nautical-mile path so results match the
	// knots × minutes/60 × 1852 formula exactly.
	if unit == Knots {
		return NauticalMilesToMeters(NauticalMilesTraveled(speed, d.Minutes())), nil
	}
	f, ok := metersPerSecond[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownUnit, int(unit))
	}
	return speed * f * d.Seconds(), nil
}

// GridBudget converts a distance in metres into a cost budget measured in
// cells of cellSize metres, so that one orthogonal step costs 1.
func GridBudget(meters, cellSize float64) (float64, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadDistance, meters)
	}
	if math.IsNaN(cellSize) || math.IsInf(cellSize, 0) || cellSize <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadCellSize, cellSize)
	}
	return meters / cellSize, nil
}
