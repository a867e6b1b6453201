package crosslight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/crosslight"
	"github.com/anggasct/crosslight/pkg/memhost"
)

func newManagedHost(t *testing.T) *memhost.Host {
	t.Helper()

	h := newCrossJunction(t, allLanes)
	h.AddNode(2, 40, 41)
	return h
}

func TestManager_RejectsIncompleteHost(t *testing.T) {
	_, err := crosslight.NewManager(crosslight.Host{})
	assert.True(t, crosslight.IsConfigurationError(err))
}

func TestManager_EnableDisable(t *testing.T) {
	h := newManagedHost(t)
	m, err := crosslight.NewManager(h.Capabilities())
	require.NoError(t, err)

	a, err := m.Enable(testNode, testSegment, crosslight.Green)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(testNode, testSegment)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, err = m.Enable(testNode, testSegment, crosslight.Red)
	require.Error(t, err)
	assert.Equal(t, crosslight.ErrCodeApproachExists, crosslight.GetErrorCode(err))
	assert.Equal(t, crosslight.Green, a.Main())

	assert.True(t, m.Disable(testNode, testSegment))
	assert.False(t, m.Disable(testNode, testSegment))
	assert.Equal(t, 0, m.Len())

	_, err = m.MustGet(testNode, testSegment)
	assert.Equal(t, crosslight.ErrCodeApproachNotFound, crosslight.GetErrorCode(err))

	again, err := m.Enable(testNode, testSegment, crosslight.Red)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), again.ID())
}

func TestManager_Restore(t *testing.T) {
	h := newManagedHost(t)
	m, err := crosslight.NewManager(h.Capabilities())
	require.NoError(t, err)

	status := crosslight.Status{
		Node:             testNode,
		Segment:          testSegment,
		Mode:             crosslight.All,
		Main:             crosslight.Red,
		Left:             crosslight.Green,
		Right:            crosslight.Red,
		Pedestrian:       crosslight.Red,
		PedestrianManual: true,
	}

	a, err := m.Restore(status)
	require.NoError(t, err)
	assert.Equal(t, crosslight.All, a.Mode())
	assert.Equal(t, crosslight.Green, a.Left())
	assert.True(t, a.PedestrianManual())

	_, err = m.Restore(status)
	assert.Equal(t, crosslight.ErrCodeApproachExists, crosslight.GetErrorCode(err))

	simple := crosslight.Status{
		Node:       testNode,
		Segment:    11,
		Mode:       crosslight.Simple,
		Main:       crosslight.Green,
		Left:       crosslight.Red,
		Right:      crosslight.Red,
		Pedestrian: crosslight.Green,
	}
	b, err := m.Restore(simple)
	require.NoError(t, err)
	assert.Equal(t, crosslight.Green, b.Left())
	assert.Equal(t, crosslight.Green, b.Right())
	assert.True(t, m.Disable(testNode, 11))

	status.Segment = 40
	status.Node = 2
	status.Mode = crosslight.Mode(0)
	_, err = m.Restore(status)
	assert.Equal(t, crosslight.ErrCodeInvalidState, crosslight.GetErrorCode(err))
	assert.Equal(t, 1, m.Len())
}

func TestManager_OrderingAndElapse(t *testing.T) {
	h := newManagedHost(t)
	obs := &recordingObserver{}
	m, err := crosslight.NewManager(h.Capabilities(), crosslight.WithManagerObserver(obs))
	require.NoError(t, err)

	_, err = m.Enable(2, 41, crosslight.Red)
	require.NoError(t, err)
	_, err = m.Enable(testNode, 12, crosslight.Green)
	require.NoError(t, err)
	_, err = m.Enable(2, 40, crosslight.Green)
	require.NoError(t, err)

	approaches := m.Approaches()
	require.Len(t, approaches, 3)
	assert.Equal(t, crosslight.NodeID(1), approaches[0].Node())
	assert.Equal(t, crosslight.SegmentID(40), approaches[1].Segment())
	assert.Equal(t, crosslight.SegmentID(41), approaches[2].Segment())

	assert.Len(t, obs.Updates, 3)

	m.Elapse(64)
	for _, s := range m.Statuses() {
		assert.Equal(t, uint32(64), s.SinceLastChange)
	}

	approaches[0].ToggleMain()
	statuses := m.Statuses()
	assert.Equal(t, uint32(0), statuses[0].SinceLastChange)
	assert.Equal(t, crosslight.Red, statuses[0].Main)
	assert.Equal(t, uint32(64), statuses[2].SinceLastChange)
}
