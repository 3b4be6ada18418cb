package scenario

import (
	"fmt"
	"slices"

	"github.com/sarchlab/pdptw/model"
	"github.com/sarchlab/pdptw/stopcondition"
	"github.com/sarchlab/pdptw/timing"
	"github.com/sarchlab/pdptw/units"
)

// DefaultScenario is the Scenario produced by a Builder.
type DefaultScenario struct {
	Base

	modelSuppliers []model.Supplier
	speedUnit      units.Unit[units.Velocity]
	distanceUnit   units.Unit[units.Length]
	timeUnit       units.Unit[units.Duration]
	timeWindow     timing.TimeWindow
	tickSize       int64
	stopCondition  stopcondition.Condition
	problemClass   ProblemClass
	instanceID     string
}

func newDefaultScenario(b *Builder) *DefaultScenario {
	s := b.Settings()

	return &DefaultScenario{
		Base:           newBase(slices.Clone(b.events), b.eventTypes.clone()),
		modelSuppliers: slices.Clone(b.modelSuppliers),
		speedUnit:      s.SpeedUnit,
		distanceUnit:   s.DistanceUnit,
		timeUnit:       s.TimeUnit,
		timeWindow:     s.TimeWindow,
		tickSize:       s.TickSize,
		stopCondition:  s.StopCondition,
		problemClass:   b.problemClass,
		instanceID:     b.instanceID,
	}
}

// CreateModels calls every model supplier once, in the order they were
// added. Each call returns new instances.
func (s *DefaultScenario) CreateModels() []model.Model {
	return model.CreateAll(s.modelSuppliers)
}

// ModelSuppliers returns the model suppliers in the order they were added.
func (s *DefaultScenario) ModelSuppliers() []model.Supplier {
	return slices.Clone(s.modelSuppliers)
}

// TimeWindow returns the start and the end of the scenario.
func (s *DefaultScenario) TimeWindow() timing.TimeWindow {
	return s.timeWindow
}

// TickSize returns the size of a tick, in the time unit.
func (s *DefaultScenario) TickSize() int64 {
	return s.tickSize
}

// StopCondition returns the condition that ends the simulation.
func (s *DefaultScenario) StopCondition() stopcondition.Condition {
	return s.stopCondition
}

// TimeUnit returns the time unit used in the simulator.
func (s *DefaultScenario) TimeUnit() units.Unit[units.Duration] {
	return s.timeUnit
}

// SpeedUnit returns the speed unit used by the road model.
func (s *DefaultScenario) SpeedUnit() units.Unit[units.Velocity] {
	return s.speedUnit
}

// DistanceUnit returns the distance unit used by the road model.
func (s *DefaultScenario) DistanceUnit() units.Unit[units.Length] {
	return s.distanceUnit
}

// ProblemClass returns the family the scenario belongs to.
func (s *DefaultScenario) ProblemClass() ProblemClass {
	return s.problemClass
}

// ProblemInstanceID distinguishes scenarios of the same problem class.
func (s *DefaultScenario) ProblemInstanceID() string {
	return s.instanceID
}

// Equal tells if other is a DefaultScenario with the same events, models and
// settings. Model suppliers are compared without being called.
func (s *DefaultScenario) Equal(other Scenario) bool {
	o, ok := other.(*DefaultScenario)
	if !ok {
		return false
	}

	if s == nil || o == nil {
		return s == o
	}

	if s == o {
		return true
	}

	return s.Base.Equal(o.Base) &&
		sameElements(s.modelSuppliers, o.modelSuppliers) &&
		s.speedUnit == o.speedUnit &&
		s.distanceUnit == o.distanceUnit &&
		s.timeUnit == o.timeUnit &&
		s.timeWindow == o.timeWindow &&
		s.tickSize == o.tickSize &&
		sameValue(s.stopCondition, o.stopCondition) &&
		sameValue(s.problemClass, o.problemClass) &&
		s.instanceID == o.instanceID
}

func (s *DefaultScenario) String() string {
	class := "<none>"
	if s.problemClass != nil {
		class = s.problemClass.ID()
	}

	stop := "<none>"
	if s.stopCondition != nil {
		stop = s.stopCondition.String()
	}

	return fmt.Sprintf(
		"%s/%s: %d events, %d event types, %d models, "+
			"tick %d %s, window %s, %s, %s, stop on %s",
		class, s.instanceID,
		s.Len(), s.eventTypes.Len(), len(s.modelSuppliers),
		s.tickSize, s.timeUnit, s.timeWindow,
		s.distanceUnit, s.speedUnit, stop,
	)
}
