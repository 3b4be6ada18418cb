// Package units defines the measurement units used to describe a scenario.
package units

import (
	"errors"
	"fmt"
)

// ErrUnknownUnit is returned when a unit symbol cannot be resolved.
var ErrUnknownUnit = errors.New("units: unknown unit")

// Length marks units of distance.
type Length struct{}

// Velocity marks units of speed.
type Velocity struct{}

// Duration marks units of time.
type Duration struct{}

// Quantity is the set of physical quantities a Unit can measure.
type Quantity interface {
	Length | Velocity | Duration
}

// A Unit measures a quantity Q. Units are comparable values; two units are
// equal if they have the same symbol and the same factor to the SI base unit.
type Unit[Q Quantity] struct {
	symbol string
	toSI   float64
}

// Symbol returns the short name of the unit, e.g. "km".
func (u Unit[Q]) Symbol() string {
	return u.symbol
}

// ToSI returns how many SI base units (m, m/s, s) one unit represents.
func (u Unit[Q]) ToSI() float64 {
	return u.toSI
}

func (u Unit[Q]) String() string {
	return u.symbol
}

// Convert converts a magnitude expressed in u into the unit to.
func (u Unit[Q]) Convert(v float64, to Unit[Q]) float64 {
	if u == to {
		return v
	}

	return v * u.toSI / to.toSI
}

// Defines the units of length.
var (
	Meter     = Unit[Length]{symbol: "m", toSI: 1}
	Kilometer = Unit[Length]{symbol: "km", toSI: 1e3}
	Mile      = Unit[Length]{symbol: "mi", toSI: 1609.344}
)

// Defines the units of velocity.
var (
	MetersPerSecond   = Unit[Velocity]{symbol: "m/s", toSI: 1}
	KilometersPerHour = Unit[Velocity]{symbol: "km/h", toSI: 1e3 / 3600}
	MilesPerHour      = Unit[Velocity]{symbol: "mph", toSI: 1609.344 / 3600}
)

// Defines the units of duration.
var (
	Millisecond = Unit[Duration]{symbol: "ms", toSI: 1e-3}
	Second      = Unit[Duration]{symbol: "s", toSI: 1}
	Minute      = Unit[Duration]{symbol: "min", toSI: 60}
	Hour        = Unit[Duration]{symbol: "h", toSI: 3600}
)

var (
	lengthUnits   = index(Meter, Kilometer, Mile)
	velocityUnits = index(MetersPerSecond, KilometersPerHour, MilesPerHour)
	durationUnits = index(Millisecond, Second, Minute, Hour)
)

func index[Q Quantity](us ...Unit[Q]) map[string]Unit[Q] {
	m := make(map[string]Unit[Q], len(us))
	for _, u := range us {
		m[u.symbol] = u
	}

	return m
}

func parse[Q Quantity](table map[string]Unit[Q], kind, symbol string) (Unit[Q], error) {
	u, ok := table[symbol]
	if !ok {
		return Unit[Q]{}, fmt.Errorf("%w: %s %q", ErrUnknownUnit, kind, symbol)
	}

	return u, nil
}

// ParseLength resolves a length unit by its symbol.
func ParseLength(symbol string) (Unit[Length], error) {
	return parse(lengthUnits, "length", symbol)
}

// ParseVelocity resolves a velocity unit by its symbol.
func ParseVelocity(symbol string) (Unit[Velocity], error) {
	return parse(velocityUnits, "velocity", symbol)
}

// ParseDuration resolves a duration unit by its symbol.
func ParseDuration(symbol string) (Unit[Duration], error) {
	return parse(durationUnits, "duration", symbol)
}

// TravelTime returns how long it takes to cover distance at speed, expressed
// in timeUnit. The speed must be non-zero.
func TravelTime(
	distance float64, distanceUnit Unit[Length],
	speed float64, speedUnit Unit[Velocity],
	timeUnit Unit[Duration],
) float64 {
	meters := distance * distanceUnit.toSI
	metersPerSecond := speed * speedUnit.toSI
	seconds := meters / metersPerSecond

	return seconds / timeUnit.toSI
}
