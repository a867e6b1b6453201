package crosslight

import "fmt"

// NodeID identifies an intersection node in the host network
type NodeID uint16

// SegmentID identifies a road segment in the host network. Zero means
// "no segment" in host slot arrays.
type SegmentID uint16

// Light is the state of one signal head. Amber is not modelled.
type Light int

const (
	Red Light = iota
	Green
)

// Invert returns the opposite light
func (l Light) Invert() Light {
	if l == Green {
		return Red
	}
	return Green
}

// Valid reports whether l is Red or Green
func (l Light) Valid() bool {
	return l == Red || l == Green
}

func (l Light) String() string {
	switch l {
	case Red:
		return "red"
	case Green:
		return "green"
	default:
		return fmt.Sprintf("light(%d)", int(l))
	}
}

// ParseLight converts "red" or "green" to a Light
func ParseLight(s string) (Light, error) {
	switch s {
	case "red":
		return Red, nil
	case "green":
		return Green, nil
	default:
		return Red, fmt.Errorf("unknown light %q", s)
	}
}

// Group names one independently switchable signal head of an approach
type Group int

const (
	GroupMain Group = iota
	GroupLeft
	GroupRight
	GroupPedestrian
)

func (g Group) String() string {
	switch g {
	case GroupMain:
		return "main"
	case GroupLeft:
		return "left"
	case GroupRight:
		return "right"
	case GroupPedestrian:
		return "pedestrian"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// LightState is the full state handed to the host sink on every publish.
// The host only knows one vehicle light and one pedestrian light per
// segment-at-node, so Vehicle is the aggregate of main, left and right.
type LightState struct {
	Node               NodeID
	Segment            SegmentID
	Tick               uint32
	Vehicle            Light
	Pedestrian         Light
	VehicleDetected    bool
	PedestrianDetected bool
}

// AggregateVehicle collapses the three per-direction lights into the single
// vehicle light the host understands: Red only when all three are Red.
func AggregateVehicle(main, left, right Light) Light {
	if main == Red && left == Red && right == Red {
		return Red
	}
	return Green
}

// DerivePedestrian is the general pedestrian rule: Green exactly when no
// vehicle movement is released.
func DerivePedestrian(main, left, right Light) Light {
	if AggregateVehicle(main, left, right) == Red {
		return Green
	}
	return Red
}
