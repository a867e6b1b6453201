package memhost

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anggasct/crosslight"
)

// Layout describes a junction network in YAML
type Layout struct {
	Tick  uint32       `yaml:"tick"`
	Nodes []NodeLayout `yaml:"nodes"`
}

// NodeLayout describes one intersection node
type NodeLayout struct {
	ID         uint16           `yaml:"id"`
	Segments   []uint16         `yaml:"segments"`
	Approaches []ApproachLayout `yaml:"approaches"`
}

// ApproachLayout describes the movements out of one incoming segment.
// Segments not listed as left or right are forward.
type ApproachLayout struct {
	Segment uint16   `yaml:"segment"`
	Left    []uint16 `yaml:"left"`
	Right   []uint16 `yaml:"right"`
	Lanes   Lanes    `yaml:"lanes"`
}

// ParseLayout decodes a YAML layout and builds a host from it
func ParseLayout(data []byte) (*Host, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return FromLayout(layout)
}

// LoadLayout reads a YAML layout file and builds a host from it
func LoadLayout(path string) (*Host, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h, err := ParseLayout(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// FromLayout builds a host from a decoded layout
func FromLayout(layout Layout) (*Host, error) {
	h := New()
	h.SetTick(layout.Tick)

	for _, n := range layout.Nodes {
		if n.ID == 0 {
			return nil, fmt.Errorf("node id must be non-zero")
		}
		if len(n.Segments) > crosslight.MaxNodeSegments {
			return nil, fmt.Errorf("node %d: %d segments exceed %d slots", n.ID, len(n.Segments), crosslight.MaxNodeSegments)
		}

		node := crosslight.NodeID(n.ID)
		slots := make([]crosslight.SegmentID, len(n.Segments))
		for i, s := range n.Segments {
			slots[i] = crosslight.SegmentID(s)
		}
		h.AddNode(node, slots...)

		for _, a := range n.Approaches {
			if !containsID(n.Segments, a.Segment) {
				return nil, fmt.Errorf("node %d: approach segment %d is not connected", n.ID, a.Segment)
			}
			from := crosslight.SegmentID(a.Segment)
			for _, to := range a.Left {
				h.SetTurn(node, from, crosslight.SegmentID(to), Left)
			}
			for _, to := range a.Right {
				h.SetTurn(node, from, crosslight.SegmentID(to), Right)
			}
			h.SetLanes(node, from, a.Lanes)
		}
	}

	return h, nil
}

func containsID(ids []uint16, id uint16) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
