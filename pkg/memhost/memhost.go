// Package memhost provides an in-memory host for crosslight approaches
package memhost

import (
	"github.com/anggasct/crosslight"
)

// Turn classifies a movement between two segments at a node
type Turn int

const (
	Forward Turn = iota
	Left
	Right
)

// Lanes records which turn directions have a drivable lane
type Lanes struct {
	Left    bool `yaml:"left"`
	Forward bool `yaml:"forward"`
	Right   bool `yaml:"right"`
}

// Detection holds the detector flags of a segment-at-node
type Detection struct {
	Vehicle    bool
	Pedestrian bool
}

type turnKey struct {
	node     crosslight.NodeID
	from, to crosslight.SegmentID
}

type segmentKey struct {
	node    crosslight.NodeID
	segment crosslight.SegmentID
}

// Host implements every crosslight host capability in memory and records
// what was published
type Host struct {
	tick      uint32
	nodes     map[crosslight.NodeID][]crosslight.SegmentID
	turns     map[turnKey]Turn
	lanes     map[segmentKey]Lanes
	detection map[segmentKey]Detection
	current   map[segmentKey]crosslight.LightState
	published []crosslight.LightState
}

// New creates an empty host at tick zero
func New() *Host {
	return &Host{
		nodes:     make(map[crosslight.NodeID][]crosslight.SegmentID),
		turns:     make(map[turnKey]Turn),
		lanes:     make(map[segmentKey]Lanes),
		detection: make(map[segmentKey]Detection),
		current:   make(map[segmentKey]crosslight.LightState),
	}
}

// Capabilities returns the host as a crosslight.Host
func (h *Host) Capabilities() crosslight.Host {
	return crosslight.NewHost(h)
}

// AddNode sets the segments connected to a node, in slot order. Zero
// entries are kept as empty slots.
func (h *Host) AddNode(node crosslight.NodeID, segments ...crosslight.SegmentID) {
	slots := make([]crosslight.SegmentID, len(segments))
	copy(slots, segments)
	h.nodes[node] = slots
}

// SetTurn classifies the movement from one segment to another at a node
func (h *Host) SetTurn(node crosslight.NodeID, from, to crosslight.SegmentID, turn Turn) {
	h.turns[turnKey{node, from, to}] = turn
}

// SetLanes sets the drivable turn lanes of an approach
func (h *Host) SetLanes(node crosslight.NodeID, segment crosslight.SegmentID, lanes Lanes) {
	h.lanes[segmentKey{node, segment}] = lanes
}

// SetDetection sets the detector flags of a segment-at-node
func (h *Host) SetDetection(node crosslight.NodeID, segment crosslight.SegmentID, d Detection) {
	h.detection[segmentKey{node, segment}] = d
}

// SetTick moves the clock to an absolute tick
func (h *Host) SetTick(tick uint32) {
	h.tick = tick
}

// Advance moves the clock forward
func (h *Host) Advance(ticks uint32) {
	h.tick += ticks
}

// OutgoingSegments implements crosslight.Topology
func (h *Host) OutgoingSegments(node crosslight.NodeID) []crosslight.SegmentID {
	slots := h.nodes[node]
	out := make([]crosslight.SegmentID, len(slots))
	copy(out, slots)
	return out
}

// IsLeftTurn implements crosslight.Geometry
func (h *Host) IsLeftTurn(from, to crosslight.SegmentID, node crosslight.NodeID) bool {
	return h.turns[turnKey{node, from, to}] == Left
}

// IsRightTurn implements crosslight.Geometry
func (h *Host) IsRightTurn(from, to crosslight.SegmentID, node crosslight.NodeID) bool {
	return h.turns[turnKey{node, from, to}] == Right
}

// HasLeftApproach implements crosslight.LaneInspector
func (h *Host) HasLeftApproach(node crosslight.NodeID, segment crosslight.SegmentID) bool {
	return h.lanes[segmentKey{node, segment}].Left
}

// HasForwardApproach implements crosslight.LaneInspector
func (h *Host) HasForwardApproach(node crosslight.NodeID, segment crosslight.SegmentID) bool {
	return h.lanes[segmentKey{node, segment}].Forward
}

// HasRightApproach implements crosslight.LaneInspector
func (h *Host) HasRightApproach(node crosslight.NodeID, segment crosslight.SegmentID) bool {
	return h.lanes[segmentKey{node, segment}].Right
}

// CurrentTick implements crosslight.Clock
func (h *Host) CurrentTick() uint32 {
	return h.tick
}

// ReadDetectionFlags implements crosslight.Detector
func (h *Host) ReadDetectionFlags(node crosslight.NodeID, segment crosslight.SegmentID) (bool, bool) {
	d := h.detection[segmentKey{node, segment}]
	return d.Vehicle, d.Pedestrian
}

// PublishLightState implements crosslight.Sink
func (h *Host) PublishLightState(state crosslight.LightState) {
	h.current[segmentKey{state.Node, state.Segment}] = state
	h.published = append(h.published, state)
}

// LightState returns the last state published for a segment-at-node
func (h *Host) LightState(node crosslight.NodeID, segment crosslight.SegmentID) (crosslight.LightState, bool) {
	s, ok := h.current[segmentKey{node, segment}]
	return s, ok
}

// Published returns every state published so far, oldest first
func (h *Host) Published() []crosslight.LightState {
	out := make([]crosslight.LightState, len(h.published))
	copy(out, h.published)
	return out
}

// ResetPublished forgets the publish history, keeping the current states
func (h *Host) ResetPublished() {
	h.published = nil
}
