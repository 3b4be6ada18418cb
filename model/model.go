// Package model defines the simulation subsystems a scenario can install and
// the factories that create them.
package model

// A Model is a subsystem of a simulation, such as a road model or a
// pickup-and-delivery model. Scenarios treat models as opaque.
type Model interface {
	// Name returns the name of the model.
	Name() string
}

// A Supplier creates a new Model every time Get is called.
type Supplier interface {
	Get() Model
}

// SupplierFunc adapts a plain function to a Supplier.
type SupplierFunc func() Model

// Get calls f.
func (f SupplierFunc) Get() Model {
	return f()
}

// CreateAll calls every supplier once, in order.
func CreateAll(suppliers []Supplier) []Model {
	models := make([]Model, 0, len(suppliers))
	for _, s := range suppliers {
		models = append(models, s.Get())
	}

	return models
}
