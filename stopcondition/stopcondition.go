// Package stopcondition defines the predicates that decide when a simulation
// run ends.
package stopcondition

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCondition is returned when a condition name cannot be resolved.
var ErrUnknownCondition = errors.New("stopcondition: unknown condition")

// Statistics summarizes the progress of a pickup-and-delivery simulation.
type Statistics struct {
	SimFinish         bool
	TotalVehicles     int
	VehiclesAtDepot   int
	TotalParcels      int
	TotalPickups      int
	TotalDeliveries   int
	PickupTardiness   int64
	DeliveryTardiness int64
}

// Info is what a condition gets to look at.
type Info struct {
	Time  int64
	Stats Statistics
}

// A Condition tells if a simulation should stop.
type Condition interface {
	ShouldStop(info Info) bool
	String() string
}

// predicate is a named condition. Conditions are handled as pointers so that
// they stay comparable.
type predicate struct {
	name string
	fn   func(Info) bool
}

func (p *predicate) ShouldStop(info Info) bool {
	return p.fn(info)
}

func (p *predicate) String() string {
	return p.name
}

// New creates a named condition.
func New(name string, fn func(Info) bool) Condition {
	return &predicate{name: name, fn: fn}
}

// TimeOutEvent stops the simulation once the time out event was handled.
var TimeOutEvent = New("TimeOutEvent", func(info Info) bool {
	return info.Stats.SimFinish
})

// VehiclesDoneAndBackAtDepot stops the simulation when every parcel has been
// delivered and every vehicle has returned to the depot.
var VehiclesDoneAndBackAtDepot = New("VehiclesDoneAndBackAtDepot",
	func(info Info) bool {
		s := info.Stats
		return s.TotalVehicles == s.VehiclesAtDepot &&
			s.TotalPickups == s.TotalParcels &&
			s.TotalDeliveries == s.TotalParcels
	})

// AnyTardiness stops the simulation as soon as any pickup or delivery is late.
var AnyTardiness = New("AnyTardiness", func(info Info) bool {
	return info.Stats.PickupTardiness > 0 || info.Stats.DeliveryTardiness > 0
})

var predefined = map[string]Condition{
	TimeOutEvent.String():               TimeOutEvent,
	VehiclesDoneAndBackAtDepot.String(): VehiclesDoneAndBackAtDepot,
	AnyTardiness.String():               AnyTardiness,
}

// ByName returns the predefined condition with the given name.
func ByName(name string) (Condition, error) {
	c, ok := predefined[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, name)
	}

	return c, nil
}

// And stops when all the conditions stop.
func And(conditions ...Condition) Condition {
	return New(join("and", conditions), func(info Info) bool {
		for _, c := range conditions {
			if !c.ShouldStop(info) {
				return false
			}
		}

		return true
	})
}

// Or stops when any of the conditions stops.
func Or(conditions ...Condition) Condition {
	return New(join("or", conditions), func(info Info) bool {
		for _, c := range conditions {
			if c.ShouldStop(info) {
				return true
			}
		}

		return false
	})
}

// Not inverts a condition.
func Not(c Condition) Condition {
	return New("not("+c.String()+")", func(info Info) bool {
		return !c.ShouldStop(info)
	})
}

func join(op string, conditions []Condition) string {
	names := make([]string, len(conditions))
	for i, c := range conditions {
		names[i] = c.String()
	}

	return op + "(" + strings.Join(names, ", ") + ")"
}
