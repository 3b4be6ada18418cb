package scenario

import (
	"github.com/sarchlab/pdptw/stopcondition"
	"github.com/sarchlab/pdptw/timing"
	"github.com/sarchlab/pdptw/units"
)

// AnyBuilder is implemented by every builder that embeds an AbstractBuilder,
// whatever its concrete type.
type AnyBuilder interface {
	Settings() Settings
}

// AbstractBuilder holds the settings shared by all scenario builders. T is
// the concrete builder that embeds it. Every setter returns that builder, so
// a chain of calls keeps access to the methods of T:
//
//	type FleetBuilder struct {
//	    scenario.AbstractBuilder[*FleetBuilder]
//	    vehicles int
//	}
//
//	func NewFleetBuilder() *FleetBuilder {
//	    b := &FleetBuilder{}
//	    b.AbstractBuilder = scenario.NewAbstractBuilder(b)
//	    return b
//	}
//
//	NewFleetBuilder().WithTickSize(500).WithVehicles(3)
//
// The setters do not validate their arguments.
type AbstractBuilder[T any] struct {
	self     T
	settings Settings
}

// NewAbstractBuilder creates an AbstractBuilder with the default settings.
func NewAbstractBuilder[T any](self T) AbstractBuilder[T] {
	return newAbstractBuilder(self, DefaultSettings())
}

// NewAbstractBuilderFrom creates an AbstractBuilder that copies all the
// settings of base.
func NewAbstractBuilderFrom[T any](self T, base AnyBuilder) AbstractBuilder[T] {
	return newAbstractBuilder(self, base.Settings())
}

func newAbstractBuilder[T any](self T, s Settings) AbstractBuilder[T] {
	return AbstractBuilder[T]{self: self, settings: s}
}

// Settings returns the current settings of the builder.
func (b *AbstractBuilder[T]) Settings() Settings {
	return b.settings
}

// WithTimeUnit sets the time unit used in the simulator.
func (b *AbstractBuilder[T]) WithTimeUnit(u units.Unit[units.Duration]) T {
	b.settings.TimeUnit = u
	return b.self
}

// WithTickSize sets the size of a tick, in the time unit.
func (b *AbstractBuilder[T]) WithTickSize(ts int64) T {
	b.settings.TickSize = ts
	return b.self
}

// WithSpeedUnit sets the speed unit used by the road model.
func (b *AbstractBuilder[T]) WithSpeedUnit(u units.Unit[units.Velocity]) T {
	b.settings.SpeedUnit = u
	return b.self
}

// WithDistanceUnit sets the distance unit used by the road model.
func (b *AbstractBuilder[T]) WithDistanceUnit(u units.Unit[units.Length]) T {
	b.settings.DistanceUnit = u
	return b.self
}

// WithScenarioLength sets the time window of the scenario to [0, length].
func (b *AbstractBuilder[T]) WithScenarioLength(length int64) T {
	b.settings.TimeWindow = timing.TimeWindow{Begin: 0, End: length}
	return b.self
}

// WithStopCondition sets the condition that ends the simulation.
func (b *AbstractBuilder[T]) WithStopCondition(c stopcondition.Condition) T {
	b.settings.StopCondition = c
	return b.self
}
