package scenario

// A ProblemClass groups scenarios into a family, such as the instances of one
// benchmark.
type ProblemClass interface {
	// ID returns a stable identifier of the class.
	ID() string
}

// ProblemClassID is a ProblemClass that is identified by a string.
type ProblemClassID string

// ID returns the identifier.
func (c ProblemClassID) ID() string {
	return string(c)
}
