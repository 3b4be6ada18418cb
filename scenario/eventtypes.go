package scenario

import (
	"slices"

	"github.com/sarchlab/pdptw/event"
)

// EventTypeSet is a set of event types that remembers the order in which the
// types were first seen.
type EventTypeSet struct {
	types []*event.Type
	index map[*event.Type]struct{}
}

func (s *EventTypeSet) add(t *event.Type) {
	if s.index == nil {
		s.index = make(map[*event.Type]struct{})
	}

	if _, found := s.index[t]; found {
		return
	}

	s.index[t] = struct{}{}
	s.types = append(s.types, t)
}

func (s EventTypeSet) clone() EventTypeSet {
	c := EventTypeSet{
		types: slices.Clone(s.types),
		index: make(map[*event.Type]struct{}, len(s.types)),
	}

	for _, t := range s.types {
		c.index[t] = struct{}{}
	}

	return c
}

// Contains tells if t is in the set.
func (s EventTypeSet) Contains(t *event.Type) bool {
	_, found := s.index[t]
	return found
}

// Len returns the number of types in the set.
func (s EventTypeSet) Len() int {
	return len(s.types)
}

// Types returns the types in the order they were added.
func (s EventTypeSet) Types() []*event.Type {
	return slices.Clone(s.types)
}

// Equal tells if two sets hold the same types, in any order.
func (s EventTypeSet) Equal(o EventTypeSet) bool {
	if s.Len() != o.Len() {
		return false
	}

	for _, t := range s.types {
		if !o.Contains(t) {
			return false
		}
	}

	return true
}
