// Package generator creates random pickup-and-delivery scenarios.
//
// The generator Builder is a scenario builder family of its own. It embeds
// scenario.AbstractBuilder, so the scenario settings and the generator
// parameters can be set in a single chain:
//
//	g := generator.NewBuilder(scenario.ProblemClassID("uniform")).
//	    WithScenarioLength(4 * 60 * 60 * 1000).
//	    WithVehicles(5).
//	    WithParcels(40)
//
//	s, err := g.Generate(rand.New(rand.NewSource(1)), "0")
package generator

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/sarchlab/pdptw/event"
	"github.com/sarchlab/pdptw/model"
	"github.com/sarchlab/pdptw/scenario"
	"github.com/sarchlab/pdptw/timing"
	"github.com/sarchlab/pdptw/units"
)

// ErrInvalidParameter is returned by Generate when a generator parameter
// cannot produce a scenario.
var ErrInvalidParameter = errors.New("generator: invalid parameter")

// Default generator parameters.
const (
	DefaultVehicles          = 10
	DefaultVehicleCapacity   = 1
	DefaultVehicleSpeed      = 50.0
	DefaultParcels           = 100
	DefaultServiceDuration   = 5 * 60 * 1000
	DefaultTimeWindowLength  = 30 * 60 * 1000
	DefaultAreaSize          = 10.0
	defaultParcelNeededSpace = 1
)

// Builder configures the random generation of scenarios.
type Builder struct {
	scenario.AbstractBuilder[*Builder]

	problemClass     scenario.ProblemClass
	vehicles         int
	vehicleCapacity  int
	vehicleSpeed     float64
	depot            event.Point
	areaMin          event.Point
	areaMax          event.Point
	parcels          int
	serviceDuration  int64
	timeWindowLength int64
	modelSuppliers   []model.Supplier
}

// NewBuilder creates a generator with the default scenario settings.
func NewBuilder(pc scenario.ProblemClass) *Builder {
	b := newBuilder(pc)
	b.AbstractBuilder = scenario.NewAbstractBuilder(b)

	return b
}

// NewBuilderFrom creates a generator that starts from the scenario settings
// of base.
func NewBuilderFrom(base scenario.AnyBuilder, pc scenario.ProblemClass) *Builder {
	b := newBuilder(pc)
	b.AbstractBuilder = scenario.NewAbstractBuilderFrom(b, base)

	return b
}

func newBuilder(pc scenario.ProblemClass) *Builder {
	return &Builder{
		problemClass:     pc,
		vehicles:         DefaultVehicles,
		vehicleCapacity:  DefaultVehicleCapacity,
		vehicleSpeed:     DefaultVehicleSpeed,
		depot:            event.Point{X: DefaultAreaSize / 2, Y: DefaultAreaSize / 2},
		areaMin:          event.Point{X: 0, Y: 0},
		areaMax:          event.Point{X: DefaultAreaSize, Y: DefaultAreaSize},
		parcels:          DefaultParcels,
		serviceDuration:  DefaultServiceDuration,
		timeWindowLength: DefaultTimeWindowLength,
	}
}

// WithVehicles sets the size of the fleet.
func (b *Builder) WithVehicles(n int) *Builder {
	b.vehicles = n
	return b
}

// WithVehicleCapacity sets how many parcels a vehicle can carry.
func (b *Builder) WithVehicleCapacity(c int) *Builder {
	b.vehicleCapacity = c
	return b
}

// WithVehicleSpeed sets the speed of the vehicles, in the speed unit.
func (b *Builder) WithVehicleSpeed(speed float64) *Builder {
	b.vehicleSpeed = speed
	return b
}

// WithDepot sets where the depot is and where vehicles start.
func (b *Builder) WithDepot(p event.Point) *Builder {
	b.depot = p
	return b
}

// WithArea sets the rectangle in which parcel locations are drawn, in the
// distance unit.
func (b *Builder) WithArea(lo, hi event.Point) *Builder {
	b.areaMin = lo
	b.areaMax = hi

	return b
}

// WithParcels sets how many parcels are ordered.
func (b *Builder) WithParcels(n int) *Builder {
	b.parcels = n
	return b
}

// WithServiceDuration sets how long a pickup or a delivery takes, in the
// time unit.
func (b *Builder) WithServiceDuration(d int64) *Builder {
	b.serviceDuration = d
	return b
}

// WithTimeWindowLength sets the length of pickup and delivery time windows,
// in the time unit.
func (b *Builder) WithTimeWindowLength(l int64) *Builder {
	b.timeWindowLength = l
	return b
}

// WithModels sets the models every generated scenario installs.
func (b *Builder) WithModels(suppliers ...model.Supplier) *Builder {
	b.modelSuppliers = slices.Clone(suppliers)
	return b
}

func (b *Builder) validate() error {
	switch {
	case b.problemClass == nil:
		return fmt.Errorf("%w: no problem class", ErrInvalidParameter)
	case b.vehicles < 1:
		return fmt.Errorf("%w: %d vehicles", ErrInvalidParameter, b.vehicles)
	case b.vehicleCapacity < defaultParcelNeededSpace:
		return fmt.Errorf("%w: vehicle capacity %d",
			ErrInvalidParameter, b.vehicleCapacity)
	case b.vehicleSpeed <= 0 || math.IsNaN(b.vehicleSpeed):
		return fmt.Errorf("%w: vehicle speed %g",
			ErrInvalidParameter, b.vehicleSpeed)
	case b.parcels < 0:
		return fmt.Errorf("%w: %d parcels", ErrInvalidParameter, b.parcels)
	case b.areaMax.X <= b.areaMin.X || b.areaMax.Y <= b.areaMin.Y:
		return fmt.Errorf("%w: area %v to %v",
			ErrInvalidParameter, b.areaMin, b.areaMax)
	case b.serviceDuration < 0 || b.timeWindowLength < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidParameter)
	case !unitsAreSet(b.Settings()):
		return fmt.Errorf("%w: missing unit", ErrInvalidParameter)
	case b.Settings().TimeWindow.End <= 0:
		return fmt.Errorf("%w: scenario length %d",
			ErrInvalidParameter, b.Settings().TimeWindow.End)
	}

	return nil
}

func unitsAreSet(s scenario.Settings) bool {
	return s.DistanceUnit.ToSI() > 0 &&
		s.SpeedUnit.ToSI() > 0 &&
		s.TimeUnit.ToSI() > 0
}

// Generate draws a scenario from rng. The events are the depot and the
// vehicles at time 0, the parcels in order of arrival, and a time out at the
// end of the scenario. The same seed always yields an equal scenario.
func (b *Builder) Generate(
	rng *rand.Rand,
	instanceID string,
) (*scenario.DefaultScenario, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	sb := scenario.NewBuilderFrom(b, b.problemClass, instanceID)
	length := b.Settings().TimeWindow.End

	sb.AddEvent(event.NewAddDepotEvent(0, b.depot))
	for range b.vehicles {
		sb.AddEvent(event.NewAddVehicleEvent(0, event.VehicleDTO{
			StartPosition: b.depot,
			Speed:         b.vehicleSpeed,
			Capacity:      b.vehicleCapacity,
			Availability:  timing.TimeWindow{Begin: 0, End: length},
		}))
	}

	parcels := make([]event.ParcelDTO, 0, b.parcels)
	for range b.parcels {
		parcels = append(parcels, b.drawParcel(rng, length))
	}

	slices.SortStableFunc(parcels, func(x, y event.ParcelDTO) int {
		return cmp.Compare(x.OrderArrivalTime, y.OrderArrivalTime)
	})

	for _, p := range parcels {
		sb.AddEvent(event.NewAddParcelEvent(p))
	}

	sb.AddEvent(event.NewTimeOutEvent(length))
	sb.AddModels(b.modelSuppliers...)

	s := sb.Build()

	log.Debug().
		Str("problem_class", b.problemClass.ID()).
		Str("instance", instanceID).
		Int("vehicles", b.vehicles).
		Int("parcels", b.parcels).
		Int64("length", length).
		Msg("scenario generated")

	return s, nil
}

func (b *Builder) drawParcel(rng *rand.Rand, length int64) event.ParcelDTO {
	s := b.Settings()

	pickup := b.drawPoint(rng)
	delivery := b.drawPoint(rng)

	dist := math.Hypot(delivery.X-pickup.X, delivery.Y-pickup.Y)
	travel := int64(math.Ceil(units.TravelTime(
		dist, s.DistanceUnit,
		b.vehicleSpeed, s.SpeedUnit,
		s.TimeUnit,
	)))

	latestArrival := length / 2
	arrival := int64(0)
	if latestArrival > 0 {
		arrival = rng.Int63n(latestArrival)
	}

	pickupTW := timing.TimeWindow{
		Begin: arrival,
		End:   arrival + b.timeWindowLength,
	}

	deliveryBegin := pickupTW.Begin + b.serviceDuration + travel
	deliveryTW := timing.TimeWindow{
		Begin: deliveryBegin,
		End:   deliveryBegin + b.timeWindowLength,
	}

	return event.ParcelDTO{
		PickupLocation:     pickup,
		DeliveryLocation:   delivery,
		PickupTimeWindow:   pickupTW,
		DeliveryTimeWindow: deliveryTW,
		NeededCapacity:     defaultParcelNeededSpace,
		OrderArrivalTime:   arrival,
		PickupDuration:     b.serviceDuration,
		DeliveryDuration:   b.serviceDuration,
	}
}

func (b *Builder) drawPoint(rng *rand.Rand) event.Point {
	return event.Point{
		X: b.areaMin.X + rng.Float64()*(b.areaMax.X-b.areaMin.X),
		Y: b.areaMin.Y + rng.Float64()*(b.areaMax.Y-b.areaMin.Y),
	}
}
