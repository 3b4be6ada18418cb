package event

import "github.com/sarchlab/pdptw/timing"

// Event types of a pickup-and-delivery scenario.
var (
	AddDepot   = &Type{Name: "AddDepot"}
	AddVehicle = &Type{Name: "AddVehicle"}
	AddParcel  = &Type{Name: "AddParcel"}
	TimeOut    = &Type{Name: "TimeOut"}
)

// Point is a position on the plane.
type Point struct {
	X float64
	Y float64
}

// VehicleDTO describes a vehicle that joins the fleet.
type VehicleDTO struct {
	StartPosition Point
	Speed         float64
	Capacity      int
	Availability  timing.TimeWindow
}

// ParcelDTO describes a transportation request. Times are expressed in the
// time unit of the scenario, positions in its distance unit.
type ParcelDTO struct {
	PickupLocation     Point
	DeliveryLocation   Point
	PickupTimeWindow   timing.TimeWindow
	DeliveryTimeWindow timing.TimeWindow
	NeededCapacity     int
	OrderArrivalTime   int64
	PickupDuration     int64
	DeliveryDuration   int64
}

// AddDepotEvent announces a depot.
type AddDepotEvent struct {
	Base
	Position Point
}

// NewAddDepotEvent creates an AddDepotEvent.
func NewAddDepotEvent(time int64, position Point) AddDepotEvent {
	return AddDepotEvent{Base: New(AddDepot, time), Position: position}
}

// AddVehicleEvent announces a vehicle.
type AddVehicleEvent struct {
	Base
	Vehicle VehicleDTO
}

// NewAddVehicleEvent creates an AddVehicleEvent.
func NewAddVehicleEvent(time int64, v VehicleDTO) AddVehicleEvent {
	return AddVehicleEvent{Base: New(AddVehicle, time), Vehicle: v}
}

// AddParcelEvent announces a new order. It occurs when the order arrives.
type AddParcelEvent struct {
	Base
	Parcel ParcelDTO
}

// NewAddParcelEvent creates an AddParcelEvent at the order arrival time of
// the parcel.
func NewAddParcelEvent(p ParcelDTO) AddParcelEvent {
	return AddParcelEvent{Base: New(AddParcel, p.OrderArrivalTime), Parcel: p}
}

// TimeOutEvent marks the end of the scenario.
type TimeOutEvent struct {
	Base
}

// NewTimeOutEvent creates a TimeOutEvent.
func NewTimeOutEvent(time int64) TimeOutEvent {
	return TimeOutEvent{Base: New(TimeOut, time)}
}
