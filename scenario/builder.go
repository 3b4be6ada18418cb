package scenario

import (
	"iter"

	"github.com/sarchlab/pdptw/event"
	"github.com/sarchlab/pdptw/model"
)

// Builder accumulates the events and models of a scenario.
//
// A Builder can still be used after Build. Later changes do not affect the
// scenarios that were already built.
type Builder struct {
	AbstractBuilder[*Builder]

	problemClass   ProblemClass
	instanceID     string
	events         []event.TimedEvent
	eventTypes     EventTypeSet
	modelSuppliers []model.Supplier
}

// NewBuilder creates a Builder with the default settings.
func NewBuilder(pc ProblemClass, instanceID string) *Builder {
	b := &Builder{problemClass: pc, instanceID: instanceID}
	b.AbstractBuilder = NewAbstractBuilder(b)

	return b
}

// NewBuilderFrom creates a Builder that starts from the settings of base.
// The base can be any builder that embeds an AbstractBuilder. Events and
// models are not copied.
func NewBuilderFrom(
	base AnyBuilder,
	pc ProblemClass,
	instanceID string,
) *Builder {
	b := &Builder{problemClass: pc, instanceID: instanceID}
	b.AbstractBuilder = NewAbstractBuilderFrom(b, base)

	return b
}

// ProblemClass returns the problem class of the scenarios being built.
func (b *Builder) ProblemClass() ProblemClass {
	return b.problemClass
}

// InstanceID returns the instance ID of the scenarios being built.
func (b *Builder) InstanceID() string {
	return b.instanceID
}

// AddEvent appends an event. The events do not need to be added in time
// order.
func (b *Builder) AddEvent(e event.TimedEvent) *Builder {
	b.events = append(b.events, e)
	b.eventTypes.add(e.EventType())

	return b
}

// AddEvents appends events in order.
func (b *Builder) AddEvents(events ...event.TimedEvent) *Builder {
	for _, e := range events {
		b.AddEvent(e)
	}

	return b
}

// AddEventSeq appends the events produced by seq in order. If seq fails
// halfway, the events produced so far remain added.
func (b *Builder) AddEventSeq(seq iter.Seq[event.TimedEvent]) *Builder {
	for e := range seq {
		b.AddEvent(e)
	}

	return b
}

// AddModel appends a model supplier.
func (b *Builder) AddModel(s model.Supplier) *Builder {
	b.modelSuppliers = append(b.modelSuppliers, s)
	return b
}

// AddModels appends model suppliers in order. Duplicates are kept.
func (b *Builder) AddModels(suppliers ...model.Supplier) *Builder {
	b.modelSuppliers = append(b.modelSuppliers, suppliers...)
	return b
}

// Build creates a scenario from a snapshot of the builder.
func (b *Builder) Build() *DefaultScenario {
	return newDefaultScenario(b)
}
