package crosslight

import "reflect"

// MaxNodeSegments is the number of segment slots a host node exposes
const MaxNodeSegments = 8

// Topology exposes the segments connected to a node. The result has at most
// MaxNodeSegments slots; zero entries are empty slots.
type Topology interface {
	OutgoingSegments(node NodeID) []SegmentID
}

// Geometry classifies a movement from one segment to another at a node.
// A movement that is neither left nor right is forward.
type Geometry interface {
	IsLeftTurn(from, to SegmentID, node NodeID) bool
	IsRightTurn(from, to SegmentID, node NodeID) bool
}

// LaneInspector reports whether a drivable lane exists for each turn
// direction of an approach
type LaneInspector interface {
	HasLeftApproach(node NodeID, segment SegmentID) bool
	HasForwardApproach(node NodeID, segment SegmentID) bool
	HasRightApproach(node NodeID, segment SegmentID) bool
}

// Clock is the host's monotonically increasing simulation clock
type Clock interface {
	CurrentTick() uint32
}

// Detector reads the detection flags the host tracks for a segment-at-node
type Detector interface {
	ReadDetectionFlags(node NodeID, segment SegmentID) (vehicleDetected, pedestrianDetected bool)
}

// Sink receives the full light state of an approach after every change.
// Calls always carry the complete state, never a delta.
type Sink interface {
	PublishLightState(state LightState)
}

// Host bundles the capabilities an approach consumes. A single value may
// implement several of them.
type Host struct {
	Topology Topology
	Geometry Geometry
	Lanes    LaneInspector
	Clock    Clock
	Detector Detector
	Sink     Sink
}

// NewHost builds a Host whose every capability is served by impl
func NewHost(impl interface {
	Topology
	Geometry
	LaneInspector
	Clock
	Detector
	Sink
}) Host {
	return Host{
		Topology: impl,
		Geometry: impl,
		Lanes:    impl,
		Clock:    impl,
		Detector: impl,
		Sink:     impl,
	}
}

// Validate reports the first missing capability as a *ConfigurationError.
// A typed nil pointer counts as missing.
func (h Host) Validate() error {
	switch {
	case isNil(h.Topology):
		return NewConfigurationError("host", "topology capability is missing")
	case isNil(h.Geometry):
		return NewConfigurationError("host", "geometry classifier is missing")
	case isNil(h.Lanes):
		return NewConfigurationError("host", "lane inspector is missing")
	case isNil(h.Clock):
		return NewConfigurationError("host", "clock is missing")
	case isNil(h.Detector):
		return NewConfigurationError("host", "detection reader is missing")
	case isNil(h.Sink):
		return NewConfigurationError("host", "publish sink is missing")
	}
	return nil
}

// isNil also catches typed nil pointers stored in an interface
func isNil(capability any) bool {
	if capability == nil {
		return true
	}
	v := reflect.ValueOf(capability)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (h Host) availability(node NodeID, segment SegmentID) Availability {
	return Availability{
		Left:    h.Lanes.HasLeftApproach(node, segment),
		Forward: h.Lanes.HasForwardApproach(node, segment),
		Right:   h.Lanes.HasRightApproach(node, segment),
	}
}
