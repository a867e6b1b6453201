package memhost_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/crosslight"
	"github.com/anggasct/crosslight/pkg/memhost"
)

const crossLayout = `
tick: 128
nodes:
  - id: 1
    segments: [10, 11, 12, 13]
    approaches:
      - segment: 10
        left: [11]
        right: [13]
        lanes: {left: true, forward: true, right: false}
  - id: 2
    segments: [20, 0, 21]
`

func TestParseLayout(t *testing.T) {
	h, err := memhost.ParseLayout([]byte(crossLayout))
	require.NoError(t, err)

	assert.Equal(t, uint32(128), h.CurrentTick())
	assert.Equal(t, []crosslight.SegmentID{10, 11, 12, 13}, h.OutgoingSegments(1))
	assert.Equal(t, []crosslight.SegmentID{20, 0, 21}, h.OutgoingSegments(2))
	assert.Empty(t, h.OutgoingSegments(3))

	assert.True(t, h.IsLeftTurn(10, 11, 1))
	assert.True(t, h.IsRightTurn(10, 13, 1))
	assert.False(t, h.IsLeftTurn(10, 12, 1))
	assert.False(t, h.IsRightTurn(10, 12, 1))

	assert.True(t, h.HasLeftApproach(1, 10))
	assert.True(t, h.HasForwardApproach(1, 10))
	assert.False(t, h.HasRightApproach(1, 10))
	assert.False(t, h.HasLeftApproach(2, 20))
}

func TestParseLayout_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		layout string
	}{
		{"malformed yaml", "nodes: [\n"},
		{"zero node id", "nodes:\n  - id: 0\n    segments: [1]\n"},
		{"too many segments", "nodes:\n  - id: 1\n    segments: [1, 2, 3, 4, 5, 6, 7, 8, 9]\n"},
		{"unconnected approach", "nodes:\n  - id: 1\n    segments: [1, 2]\n    approaches:\n      - segment: 5\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := memhost.ParseLayout([]byte(tc.layout))
			assert.Error(t, err)
		})
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junction.yaml")
	require.NoError(t, os.WriteFile(path, []byte(crossLayout), 0644))

	h, err := memhost.LoadLayout(path)
	require.NoError(t, err)
	assert.True(t, h.IsLeftTurn(10, 11, 1))

	_, err = memhost.LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHost_DrivesAnApproach(t *testing.T) {
	h, err := memhost.ParseLayout([]byte(crossLayout))
	require.NoError(t, err)
	h.SetDetection(1, 10, memhost.Detection{Vehicle: true, Pedestrian: true})

	a, err := crosslight.NewFromUniform(h.Capabilities(), 1, 10, crosslight.Red)
	require.NoError(t, err)
	assert.Equal(t, []crosslight.SegmentID{11}, a.LeftOutSegments())
	assert.Equal(t, []crosslight.SegmentID{10, 12}, a.ForwardOutSegments())
	assert.Equal(t, []crosslight.SegmentID{13}, a.RightOutSegments())

	h.Advance(64)
	a.ToggleMain()

	state, ok := h.LightState(1, 10)
	require.True(t, ok)
	assert.Equal(t, uint32(192), state.Tick)
	assert.Equal(t, crosslight.Green, state.Vehicle)
	assert.True(t, state.VehicleDetected)
	assert.True(t, state.PedestrianDetected)

	assert.Len(t, h.Published(), 2)
	h.ResetPublished()
	assert.Empty(t, h.Published())
	_, ok = h.LightState(1, 10)
	assert.True(t, ok)
}
