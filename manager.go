package crosslight

import "sort"

type approachKey struct {
	node    NodeID
	segment SegmentID
}

// Manager owns the approaches under manual control and keeps exactly one
// per node/segment pair. It is not safe for concurrent use.
type Manager struct {
	host       Host
	approaches map[approachKey]*Approach
	observers  []Observer
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithManagerObserver attaches an observer to every approach the manager
// creates
func WithManagerObserver(observer Observer) ManagerOption {
	return func(m *Manager) {
		m.observers = append(m.observers, observer)
	}
}

// NewManager creates a manager bound to the given host
func NewManager(host Host, opts ...ManagerOption) (*Manager, error) {
	if err := host.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		host:       host,
		approaches: make(map[approachKey]*Approach),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) approachOptions(extra ...Option) []Option {
	opts := make([]Option, 0, len(m.observers)+len(extra))
	for _, o := range m.observers {
		opts = append(opts, WithObserver(o))
	}
	return append(opts, extra...)
}

// Enable puts an approach under manual control with all vehicle heads
// showing mainLight
func (m *Manager) Enable(node NodeID, segment SegmentID, mainLight Light) (*Approach, error) {
	key := approachKey{node, segment}
	if _, exists := m.approaches[key]; exists {
		return nil, NewApproachExistsError(node, segment)
	}

	a, err := NewFromUniform(m.host, node, segment, mainLight, m.approachOptions()...)
	if err != nil {
		return nil, err
	}
	m.approaches[key] = a
	return a, nil
}

// Restore recreates an approach from a saved status
func (m *Manager) Restore(status Status) (*Approach, error) {
	key := approachKey{status.Node, status.Segment}
	if _, exists := m.approaches[key]; exists {
		return nil, NewApproachExistsError(status.Node, status.Segment)
	}

	a, err := NewFromExplicit(m.host, status.Node, status.Segment,
		status.Main, status.Left, status.Right, status.Pedestrian,
		m.approachOptions(WithMode(status.Mode), WithManualPedestrian(status.PedestrianManual))...)
	if err != nil {
		return nil, err
	}
	m.approaches[key] = a
	return a, nil
}

// Disable releases manual control of an approach. It reports whether the
// approach was managed.
func (m *Manager) Disable(node NodeID, segment SegmentID) bool {
	key := approachKey{node, segment}
	if _, exists := m.approaches[key]; !exists {
		return false
	}
	delete(m.approaches, key)
	return true
}

// Get returns the approach for a node/segment pair
func (m *Manager) Get(node NodeID, segment SegmentID) (*Approach, bool) {
	a, ok := m.approaches[approachKey{node, segment}]
	return a, ok
}

// MustGet returns the approach or an *ApproachError when it is not managed
func (m *Manager) MustGet(node NodeID, segment SegmentID) (*Approach, error) {
	a, ok := m.Get(node, segment)
	if !ok {
		return nil, NewApproachNotFoundError(node, segment)
	}
	return a, nil
}

// Len returns the number of managed approaches
func (m *Manager) Len() int {
	return len(m.approaches)
}

// Approaches returns the managed approaches ordered by node, then segment
func (m *Manager) Approaches() []*Approach {
	out := make([]*Approach, 0, len(m.approaches))
	for _, a := range m.approaches {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].node != out[j].node {
			return out[i].node < out[j].node
		}
		return out[i].segment < out[j].segment
	})
	return out
}

// Statuses returns a value copy of every managed approach, in Approaches
// order
func (m *Manager) Statuses() []Status {
	approaches := m.Approaches()
	out := make([]Status, len(approaches))
	for i, a := range approaches {
		out[i] = a.Status()
	}
	return out
}

// Elapse advances the since-last-change counter of every approach
func (m *Manager) Elapse(ticks uint32) {
	for _, a := range m.approaches {
		a.Elapse(ticks)
	}
}
