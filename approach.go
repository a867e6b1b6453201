package crosslight

import (
	"github.com/google/uuid"
)

// coarseTickShift buckets the host tick into 64-tick steps for
// LastChangeTick
const coarseTickShift = 6

// Approach holds the manual signal state of one incoming segment at one
// intersection node. It is owned by a single caller and is not safe for
// concurrent use.
type Approach struct {
	id      string
	node    NodeID
	segment SegmentID
	host    Host

	mode             Mode
	main             Light
	left             Light
	right            Light
	pedestrian       Light
	pedestrianManual bool

	leftOut    []SegmentID
	forwardOut []SegmentID
	rightOut   []SegmentID

	sinceLastChange uint32
	lastChangeTick  uint32

	observers *ObserverManager
}

// Status is a value copy of an approach's full state
type Status struct {
	Node             NodeID
	Segment          SegmentID
	Mode             Mode
	Main             Light
	Left             Light
	Right            Light
	Pedestrian       Light
	PedestrianManual bool
	LastChangeTick   uint32
	SinceLastChange  uint32
}

// Option configures an Approach at construction
type Option func(*Approach)

// WithMode starts the approach in the given lane-grouping mode
func WithMode(mode Mode) Option {
	return func(a *Approach) {
		a.mode = mode
	}
}

// WithManualPedestrian starts the approach with pedestrian control manual
func WithManualPedestrian(manual bool) Option {
	return func(a *Approach) {
		a.pedestrianManual = manual
	}
}

// WithObserver attaches an observer before the initial publish
func WithObserver(observer Observer) Option {
	return func(a *Approach) {
		a.observers.AddObserver(observer)
	}
}

// WithID overrides the generated approach ID
func WithID(id string) Option {
	return func(a *Approach) {
		a.id = id
	}
}

func newApproach(host Host, node NodeID, segment SegmentID, opts []Option) (*Approach, error) {
	if err := host.Validate(); err != nil {
		return nil, err
	}

	a := &Approach{
		id:        uuid.New().String(),
		node:      node,
		segment:   segment,
		host:      host,
		mode:      Simple,
		observers: NewObserverManager(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.mode.Valid() {
		return nil, NewApproachError(ErrCodeInvalidState, node, segment, "invalid mode "+a.mode.String())
	}

	a.classifyOutgoing()
	return a, nil
}

// NewFromUniform creates an approach whose three vehicle heads all show
// mainLight. The pedestrian head shows the opposite.
func NewFromUniform(host Host, node NodeID, segment SegmentID, mainLight Light, opts ...Option) (*Approach, error) {
	if !mainLight.Valid() {
		return nil, NewApproachError(ErrCodeInvalidState, node, segment, "invalid main light "+mainLight.String())
	}

	a, err := newApproach(host, node, segment, opts)
	if err != nil {
		return nil, err
	}

	a.main = mainLight
	a.left = mainLight
	a.right = mainLight
	a.pedestrian = mainLight.Invert()

	a.Publish()
	return a, nil
}

// NewFromExplicit creates an approach with every light given, as when
// restoring saved state. In Simple mode the side heads follow mainLight
// whatever leftLight and rightLight say; nothing else is re-derived.
func NewFromExplicit(host Host, node NodeID, segment SegmentID, mainLight, leftLight, rightLight, pedestrianLight Light, opts ...Option) (*Approach, error) {
	for _, l := range []Light{mainLight, leftLight, rightLight, pedestrianLight} {
		if !l.Valid() {
			return nil, NewApproachError(ErrCodeInvalidState, node, segment, "invalid light "+l.String())
		}
	}

	a, err := newApproach(host, node, segment, opts)
	if err != nil {
		return nil, err
	}

	a.main = mainLight
	a.left = leftLight
	a.right = rightLight
	a.pedestrian = pedestrianLight
	if a.mode == Simple {
		a.left = mainLight
		a.right = mainLight
	}

	a.Publish()
	return a, nil
}

// classifyOutgoing partitions the node's segments into the movements each
// vehicle head releases
func (a *Approach) classifyOutgoing() {
	a.leftOut = make([]SegmentID, 0)
	a.forwardOut = make([]SegmentID, 0)
	a.rightOut = make([]SegmentID, 0)

	segments := a.host.Topology.OutgoingSegments(a.node)
	if len(segments) > MaxNodeSegments {
		segments = segments[:MaxNodeSegments]
	}

	for _, to := range segments {
		if to == 0 {
			continue
		}

		switch {
		case a.host.Geometry.IsLeftTurn(a.segment, to, a.node):
			a.leftOut = append(a.leftOut, to)
		case a.host.Geometry.IsRightTurn(a.segment, to, a.node):
			a.rightOut = append(a.rightOut, to)
		default:
			a.forwardOut = append(a.forwardOut, to)
		}
	}
}

// ID returns the approach instance ID
func (a *Approach) ID() string { return a.id }

// Node returns the intersection node
func (a *Approach) Node() NodeID { return a.node }

// Segment returns the controlled incoming segment
func (a *Approach) Segment() SegmentID { return a.segment }

// Mode returns the current lane-grouping mode
func (a *Approach) Mode() Mode { return a.mode }

// Main returns the forward vehicle light
func (a *Approach) Main() Light { return a.main }

// Left returns the left-turn vehicle light
func (a *Approach) Left() Light { return a.left }

// Right returns the right-turn vehicle light
func (a *Approach) Right() Light { return a.right }

// Pedestrian returns the pedestrian light
func (a *Approach) Pedestrian() Light { return a.pedestrian }

// PedestrianManual reports whether the pedestrian light is user controlled
func (a *Approach) PedestrianManual() bool { return a.pedestrianManual }

// LastChangeTick returns the coarse tick (tick >> 6) of the last publish
func (a *Approach) LastChangeTick() uint32 { return a.lastChangeTick }

// SinceLastChange returns the ticks elapsed since the last publish
func (a *Approach) SinceLastChange() uint32 { return a.sinceLastChange }

// Elapse advances the since-last-change counter
func (a *Approach) Elapse(ticks uint32) {
	a.sinceLastChange += ticks
}

// LeftOutSegments returns the segments released by the left light
func (a *Approach) LeftOutSegments() []SegmentID { return copySegments(a.leftOut) }

// ForwardOutSegments returns the segments released by the main light
func (a *Approach) ForwardOutSegments() []SegmentID { return copySegments(a.forwardOut) }

// RightOutSegments returns the segments released by the right light
func (a *Approach) RightOutSegments() []SegmentID { return copySegments(a.rightOut) }

func copySegments(in []SegmentID) []SegmentID {
	out := make([]SegmentID, len(in))
	copy(out, in)
	return out
}

// AllowsMovementTo reports whether traffic may currently flow from the
// approach into the given outgoing segment
func (a *Approach) AllowsMovementTo(to SegmentID) bool {
	switch {
	case containsSegment(a.leftOut, to):
		return a.IsLeftGreen()
	case containsSegment(a.rightOut, to):
		return a.IsRightGreen()
	case containsSegment(a.forwardOut, to):
		return a.IsForwardGreen()
	default:
		return false
	}
}

func containsSegment(segments []SegmentID, id SegmentID) bool {
	for _, s := range segments {
		if s == id {
			return true
		}
	}
	return false
}

// AnyVehicleGreen reports whether any vehicle movement is released
func (a *Approach) AnyVehicleGreen() bool {
	return a.main == Green || a.left == Green || a.right == Green
}

// IsLeftGreen reports whether the left light is green
func (a *Approach) IsLeftGreen() bool { return a.left == Green }

// IsForwardGreen reports whether the main light is green
func (a *Approach) IsForwardGreen() bool { return a.main == Green }

// IsRightGreen reports whether the right light is green
func (a *Approach) IsRightGreen() bool { return a.right == Green }

// Status returns a value copy of the approach's state
func (a *Approach) Status() Status {
	return Status{
		Node:             a.node,
		Segment:          a.segment,
		Mode:             a.mode,
		Main:             a.main,
		Left:             a.left,
		Right:            a.right,
		Pedestrian:       a.pedestrian,
		PedestrianManual: a.pedestrianManual,
		LastChangeTick:   a.lastChangeTick,
		SinceLastChange:  a.sinceLastChange,
	}
}

// Clone returns an independent approach with the same state, host and
// observers but a fresh ID. Nothing is published.
func (a *Approach) Clone() *Approach {
	c := *a
	c.id = uuid.New().String()
	c.leftOut = copySegments(a.leftOut)
	c.forwardOut = copySegments(a.forwardOut)
	c.rightOut = copySegments(a.rightOut)
	c.observers = a.observers.clone()
	return &c
}

// AddObserver attaches an observer to the approach
func (a *Approach) AddObserver(observer Observer) {
	a.observers.AddObserver(observer)
}

// RemoveObserver detaches an observer from the approach
func (a *Approach) RemoveObserver(observer Observer) {
	a.observers.RemoveObserver(observer)
}

// Availability queries the host for the approach's drivable turn lanes
func (a *Approach) Availability() Availability {
	return a.host.availability(a.node, a.segment)
}

// CycleMode advances the lane-grouping mode and returns the new mode.
// Entering Simple merges the side heads back into the main head.
func (a *Approach) CycleMode() Mode {
	from := a.mode
	a.mode = NextMode(from, a.Availability())

	if a.mode == Simple {
		var changes []headChange
		a.assign(&changes, GroupLeft, a.main)
		a.assign(&changes, GroupRight, a.main)
		if !a.pedestrianManual {
			a.assign(&changes, GroupPedestrian, a.derivePedestrian())
		}
		a.notifyChanges(changes)
	}

	a.observers.NotifyModeChange(a.Status(), from, a.mode)
	a.Publish()
	return a.mode
}

// ToggleManualPedestrian switches pedestrian control between derived and
// manual and returns the new setting. The pedestrian light is left as is.
func (a *Approach) ToggleManualPedestrian() bool {
	a.pedestrianManual = !a.pedestrianManual
	return a.pedestrianManual
}

// ToggleMain flips the main head together with the side heads grouped with
// it in the current mode
func (a *Approach) ToggleMain() {
	prev := a.main
	next := prev.Invert()

	var changes []headChange
	a.assign(&changes, GroupMain, next)
	switch a.mode {
	case Simple:
		a.assign(&changes, GroupLeft, next)
		a.assign(&changes, GroupRight, next)
	case SingleRight:
		a.assign(&changes, GroupRight, next)
	case SingleLeft:
		a.assign(&changes, GroupLeft, next)
	}

	if !a.pedestrianManual {
		if a.mode == Simple {
			// pedestrian takes the main light's value from before the flip
			a.assign(&changes, GroupPedestrian, prev)
		} else {
			a.assign(&changes, GroupPedestrian, a.derivePedestrian())
		}
	}

	a.notifyChanges(changes)
	a.Publish()
}

// ToggleLeft flips the left head. In Simple mode the left head follows the
// main head, so the call is ignored and returns false.
func (a *Approach) ToggleLeft() bool {
	return a.toggleSide(GroupLeft, &a.left)
}

// ToggleRight flips the right head. In Simple mode the right head follows
// the main head, so the call is ignored and returns false.
func (a *Approach) ToggleRight() bool {
	return a.toggleSide(GroupRight, &a.right)
}

func (a *Approach) toggleSide(group Group, head *Light) bool {
	if a.mode == Simple {
		a.observers.NotifyToggleIgnored(a.Status(), group, "grouped with main light in simple mode")
		return false
	}

	var changes []headChange
	a.assign(&changes, group, head.Invert())
	if !a.pedestrianManual {
		a.assign(&changes, GroupPedestrian, a.derivePedestrian())
	}
	a.notifyChanges(changes)
	a.Publish()
	return true
}

// TogglePedestrian flips the pedestrian head when pedestrian control is
// manual. Otherwise it does nothing and returns false.
func (a *Approach) TogglePedestrian() bool {
	if !a.pedestrianManual {
		a.observers.NotifyToggleIgnored(a.Status(), GroupPedestrian, "pedestrian control is not manual")
		return false
	}

	var changes []headChange
	a.assign(&changes, GroupPedestrian, a.pedestrian.Invert())
	a.notifyChanges(changes)
	a.Publish()
	return true
}

type headChange struct {
	group    Group
	from, to Light
}

// assign sets a head without notifying, recording the change when the light
// actually moved
func (a *Approach) assign(changes *[]headChange, group Group, to Light) {
	var head *Light
	switch group {
	case GroupMain:
		head = &a.main
	case GroupLeft:
		head = &a.left
	case GroupRight:
		head = &a.right
	case GroupPedestrian:
		head = &a.pedestrian
	default:
		return
	}

	from := *head
	if from == to {
		return
	}
	*head = to
	*changes = append(*changes, headChange{group, from, to})
}

// notifyChanges reports a batch of assignments once every head holds its
// final light
func (a *Approach) notifyChanges(changes []headChange) {
	if len(changes) == 0 {
		return
	}
	status := a.Status()
	for _, c := range changes {
		a.observers.NotifyToggle(status, c.group, c.from, c.to)
	}
}

func (a *Approach) derivePedestrian() Light {
	return DerivePedestrian(a.main, a.left, a.right)
}

// Publish writes the aggregate vehicle light and the pedestrian light to the
// host sink, passing the host's detection flags through unchanged
func (a *Approach) Publish() {
	tick := a.host.Clock.CurrentTick()
	a.sinceLastChange = 0
	a.lastChangeTick = tick >> coarseTickShift

	vehicleDetected, pedestrianDetected := a.host.Detector.ReadDetectionFlags(a.node, a.segment)

	state := LightState{
		Node:               a.node,
		Segment:            a.segment,
		Tick:               tick,
		Vehicle:            AggregateVehicle(a.main, a.left, a.right),
		Pedestrian:         a.pedestrian,
		VehicleDetected:    vehicleDetected,
		PedestrianDetected: pedestrianDetected,
	}
	a.host.Sink.PublishLightState(state)

	a.observers.NotifyPublish(Update{
		ID:         uuid.New().String(),
		ApproachID: a.id,
		State:      state,
		Status:     a.Status(),
	})
}
