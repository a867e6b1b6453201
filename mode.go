package crosslight

import "fmt"

// Mode is the lane-grouping mode of an approach: which turn directions share
// a signal head and which are switched on their own.
type Mode int

const (
	// Simple: left, forward and right share one head
	Simple Mode = iota + 1
	// SingleRight: right has its own head, left and forward share one
	SingleRight
	// SingleLeft: left has its own head, forward and right share one
	SingleLeft
	// All: every direction has its own head
	All
)

// Modes lists every mode in cycle order starting from Simple
var Modes = []Mode{Simple, SingleRight, SingleLeft, All}

func (m Mode) String() string {
	switch m {
	case Simple:
		return "simple"
	case SingleRight:
		return "single_right"
	case SingleLeft:
		return "single_left"
	case All:
		return "all"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the four defined modes
func (m Mode) Valid() bool {
	return m >= Simple && m <= All
}

// ParseMode converts a mode name as produced by String back to a Mode
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Availability records which turn directions have a drivable lane on an
// approach. It gates the mode cycle.
type Availability struct {
	Left    bool
	Forward bool
	Right   bool
}

// NextMode returns the mode that follows current given the approach's lane
// availability. The cycle always returns to Simple within four steps.
func NextMode(current Mode, avail Availability) Mode {
	switch current {
	case Simple:
		if !avail.Left {
			return SingleLeft
		}
		return SingleRight
	case SingleRight:
		if avail.Forward && avail.Right {
			return SingleLeft
		}
		return Simple
	case SingleLeft:
		if avail.Left {
			return All
		}
		return Simple
	default:
		return Simple
	}
}
