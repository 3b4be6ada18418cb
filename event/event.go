// Package event defines the timed events that make up a scenario.
package event

// Type discriminates the kind of a TimedEvent.
//
// Types are compared by identity. Declare each type once as a package-level
// pointer, the same way the predefined types below are declared.
type Type struct {
	Name string
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	return t.Name
}

// A TimedEvent is something that happens at a given time during a simulation
// run.
type TimedEvent interface {
	// Time returns when the event occurs.
	Time() int64

	// EventType returns the discriminator of the event.
	EventType() *Type
}

// Base provides the type and time of an event. Concrete events embed it.
type Base struct {
	eventType *Type
	time      int64
}

// New creates an event that carries only a type and a time.
func New(t *Type, time int64) Base {
	return Base{eventType: t, time: time}
}

// Time returns when the event occurs.
func (e Base) Time() int64 {
	return e.time
}

// EventType returns the discriminator of the event.
func (e Base) EventType() *Type {
	return e.eventType
}
