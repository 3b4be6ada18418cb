package scenario

import (
	"github.com/sarchlab/pdptw/stopcondition"
	"github.com/sarchlab/pdptw/timing"
	"github.com/sarchlab/pdptw/units"
)

// Defaults applied by NewAbstractBuilder.
const (
	DefaultTickSize       int64 = 1000
	DefaultScenarioLength int64 = 8 * 60 * 60 * 1000
)

// Settings holds the scalar configuration that a builder passes on to the
// builders copied from it.
type Settings struct {
	DistanceUnit  units.Unit[units.Length]
	SpeedUnit     units.Unit[units.Velocity]
	TimeUnit      units.Unit[units.Duration]
	TickSize      int64
	TimeWindow    timing.TimeWindow
	StopCondition stopcondition.Condition
}

// DefaultSettings returns kilometers, kilometers per hour, milliseconds, a
// tick of one second, an eight hour scenario, and the time out stop
// condition.
func DefaultSettings() Settings {
	return Settings{
		DistanceUnit:  units.Kilometer,
		SpeedUnit:     units.KilometersPerHour,
		TimeUnit:      units.Millisecond,
		TickSize:      DefaultTickSize,
		TimeWindow:    timing.TimeWindow{Begin: 0, End: DefaultScenarioLength},
		StopCondition: stopcondition.TimeOutEvent,
	}
}
