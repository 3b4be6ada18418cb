// Package timing provides the time window value used to bound a scenario and
// the activities inside it.
package timing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTimeWindow is returned when a window does not satisfy
// 0 <= begin <= end.
var ErrInvalidTimeWindow = errors.New("timing: invalid time window")

// A TimeWindow is an inclusive interval [Begin, End] of simulation time. The
// unit of the bounds is decided by whoever owns the window.
type TimeWindow struct {
	Begin int64
	End   int64
}

// Always is a window that contains every non-negative time.
var Always = TimeWindow{Begin: 0, End: math.MaxInt64}

// NewTimeWindow creates a validated time window.
func NewTimeWindow(begin, end int64) (TimeWindow, error) {
	if begin < 0 || end < begin {
		return TimeWindow{}, fmt.Errorf(
			"%w: [%d, %d]", ErrInvalidTimeWindow, begin, end)
	}

	return TimeWindow{Begin: begin, End: end}, nil
}

// IsIn tells if t lies inside the window, bounds included.
func (w TimeWindow) IsIn(t int64) bool {
	return w.IsAfterStart(t) && w.IsBeforeEnd(t)
}

// IsAfterStart tells if t is at or after the beginning of the window.
func (w TimeWindow) IsAfterStart(t int64) bool {
	return t >= w.Begin
}

// IsBeforeStart tells if t is strictly before the beginning of the window.
func (w TimeWindow) IsBeforeStart(t int64) bool {
	return t < w.Begin
}

// IsBeforeEnd tells if t is at or before the end of the window.
func (w TimeWindow) IsBeforeEnd(t int64) bool {
	return t <= w.End
}

// IsAfterEnd tells if t is strictly after the end of the window.
func (w TimeWindow) IsAfterEnd(t int64) bool {
	return t > w.End
}

// Length returns End - Begin.
func (w TimeWindow) Length() int64 {
	return w.End - w.Begin
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%d, %d]", w.Begin, w.End)
}
