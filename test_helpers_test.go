package crosslight_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anggasct/crosslight"
	"github.com/anggasct/crosslight/pkg/memhost"
)

const (
	testNode    crosslight.NodeID    = 1
	testSegment crosslight.SegmentID = 10
)

// newCrossJunction builds a four-way node 1 where, seen from segment 10,
// segment 11 is a left turn, 12 is forward and 13 is a right turn
func newCrossJunction(t *testing.T, lanes memhost.Lanes) *memhost.Host {
	t.Helper()

	h := memhost.New()
	h.AddNode(testNode, 10, 11, 12, 13)
	h.SetTurn(testNode, 10, 11, memhost.Left)
	h.SetTurn(testNode, 10, 13, memhost.Right)
	h.SetLanes(testNode, testSegment, lanes)
	return h
}

// newStraightJunction builds node 1 where every movement out of segment 10
// is forward and no turn lane exists
func newStraightJunction(t *testing.T) *memhost.Host {
	t.Helper()

	h := memhost.New()
	h.AddNode(testNode, 10, 20, 0, 30)
	return h
}

var allLanes = memhost.Lanes{Left: true, Forward: true, Right: true}

func mustUniform(t *testing.T, h *memhost.Host, main crosslight.Light, opts ...crosslight.Option) *crosslight.Approach {
	t.Helper()

	a, err := crosslight.NewFromUniform(h.Capabilities(), testNode, testSegment, main, opts...)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

type toggleRecord struct {
	Group crosslight.Group
	From  crosslight.Light
	To    crosslight.Light
}

type modeRecord struct {
	From crosslight.Mode
	To   crosslight.Mode
}

// recordingObserver captures every observer callback
type recordingObserver struct {
	Modes   []modeRecord
	Updates []crosslight.Update
	Toggles []toggleRecord
	// ToggleStatuses holds the status passed with each OnToggle call
	ToggleStatuses []crosslight.Status
	Ignored []crosslight.Group
	Errors  []error
	panicOn string
}

func (o *recordingObserver) OnModeChange(status crosslight.Status, from, to crosslight.Mode) {
	if o.panicOn == "mode" {
		panic("mode observer failure")
	}
	o.Modes = append(o.Modes, modeRecord{from, to})
}

func (o *recordingObserver) OnPublish(update crosslight.Update) {
	if o.panicOn == "publish" {
		panic("publish observer failure")
	}
	o.Updates = append(o.Updates, update)
}

func (o *recordingObserver) OnToggle(status crosslight.Status, group crosslight.Group, from, to crosslight.Light) {
	o.Toggles = append(o.Toggles, toggleRecord{group, from, to})
	o.ToggleStatuses = append(o.ToggleStatuses, status)
}

func (o *recordingObserver) OnToggleIgnored(status crosslight.Status, group crosslight.Group, reason string) {
	o.Ignored = append(o.Ignored, group)
}

func (o *recordingObserver) OnError(err error) {
	o.Errors = append(o.Errors, err)
}
