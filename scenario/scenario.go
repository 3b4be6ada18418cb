// Package scenario describes the input of a dynamic pickup-and-delivery
// simulation run and provides the builders that create such descriptions.
//
// A Scenario is immutable. It is assembled with a Builder:
//
//	s := scenario.NewBuilder(scenario.ProblemClassID("demo"), "0").
//	    WithTickSize(500).
//	    WithScenarioLength(60 * 60 * 1000).
//	    AddEvent(event.NewAddDepotEvent(0, event.Point{})).
//	    AddModel(roadModelSupplier).
//	    Build()
//
// Domain-specific builders embed AbstractBuilder to share the same settings
// and hand them over to a Builder through NewBuilderFrom.
package scenario

import (
	"slices"

	"github.com/sarchlab/pdptw/event"
	"github.com/sarchlab/pdptw/model"
	"github.com/sarchlab/pdptw/stopcondition"
	"github.com/sarchlab/pdptw/timing"
	"github.com/sarchlab/pdptw/units"
)

// A Scenario contains all the information that is needed to instantiate a
// simulation of a dynamic pickup-and-delivery problem with time windows.
type Scenario interface {
	// Events returns the events in the order they were added.
	Events() []event.TimedEvent

	// SupportedEventTypes returns the types of all the events.
	SupportedEventTypes() EventTypeSet

	// CreateModels creates a new instance of every model of the scenario.
	CreateModels() []model.Model

	// TimeWindow returns the start and the end of the scenario.
	TimeWindow() timing.TimeWindow

	// TickSize returns the size of a tick, in the time unit.
	TickSize() int64

	// StopCondition returns the condition that ends the simulation.
	StopCondition() stopcondition.Condition

	// TimeUnit returns the time unit used in the simulator.
	TimeUnit() units.Unit[units.Duration]

	// SpeedUnit returns the speed unit used by the road model.
	SpeedUnit() units.Unit[units.Velocity]

	// DistanceUnit returns the distance unit used by the road model.
	DistanceUnit() units.Unit[units.Length]

	// ProblemClass returns the family the scenario belongs to.
	ProblemClass() ProblemClass

	// ProblemInstanceID distinguishes scenarios of the same problem class.
	ProblemInstanceID() string

	// Equal tells if two scenarios describe the same simulation.
	Equal(other Scenario) bool
}

// Base holds the events of a scenario together with the set of their types.
type Base struct {
	events     []event.TimedEvent
	eventTypes EventTypeSet
}

func newBase(events []event.TimedEvent, eventTypes EventTypeSet) Base {
	return Base{events: events, eventTypes: eventTypes}
}

// Events returns the events in the order they were added.
func (b Base) Events() []event.TimedEvent {
	return slices.Clone(b.events)
}

// Len returns the number of events.
func (b Base) Len() int {
	return len(b.events)
}

// SupportedEventTypes returns the types of all the events.
func (b Base) SupportedEventTypes() EventTypeSet {
	return b.eventTypes
}

// Equal tells if two bases hold the same events and event types.
func (b Base) Equal(o Base) bool {
	return sameElements(b.events, o.events) && b.eventTypes.Equal(o.eventTypes)
}
