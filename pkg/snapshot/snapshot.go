// Package snapshot saves and restores manual approach state as YAML
package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anggasct/crosslight"
)

// Version is the current document version
const Version = 1

// Document is the on-disk form of a set of approaches
type Document struct {
	Version    int      `yaml:"version"`
	Approaches []Record `yaml:"approaches"`
}

// Record is the saved state of one approach
type Record struct {
	Node             uint16 `yaml:"node"`
	Segment          uint16 `yaml:"segment"`
	Mode             string `yaml:"mode"`
	Main             string `yaml:"main"`
	Left             string `yaml:"left"`
	Right            string `yaml:"right"`
	Pedestrian       string `yaml:"pedestrian"`
	PedestrianManual bool   `yaml:"pedestrian_manual"`
}

// FromStatus converts an approach status to a record
func FromStatus(s crosslight.Status) Record {
	return Record{
		Node:             uint16(s.Node),
		Segment:          uint16(s.Segment),
		Mode:             s.Mode.String(),
		Main:             s.Main.String(),
		Left:             s.Left.String(),
		Right:            s.Right.String(),
		Pedestrian:       s.Pedestrian.String(),
		PedestrianManual: s.PedestrianManual,
	}
}

// Status converts a record back to an approach status
func (r Record) Status() (crosslight.Status, error) {
	mode, err := crosslight.ParseMode(r.Mode)
	if err != nil {
		return crosslight.Status{}, r.wrap(err)
	}

	lights := make([]crosslight.Light, 4)
	for i, name := range []string{r.Main, r.Left, r.Right, r.Pedestrian} {
		l, err := crosslight.ParseLight(name)
		if err != nil {
			return crosslight.Status{}, r.wrap(err)
		}
		lights[i] = l
	}

	return crosslight.Status{
		Node:             crosslight.NodeID(r.Node),
		Segment:          crosslight.SegmentID(r.Segment),
		Mode:             mode,
		Main:             lights[0],
		Left:             lights[1],
		Right:            lights[2],
		Pedestrian:       lights[3],
		PedestrianManual: r.PedestrianManual,
	}, nil
}

func (r Record) wrap(err error) error {
	return fmt.Errorf("approach node %d segment %d: %w", r.Node, r.Segment, err)
}

// Encode writes statuses as a YAML document
func Encode(statuses []crosslight.Status) ([]byte, error) {
	doc := Document{
		Version:    Version,
		Approaches: make([]Record, len(statuses)),
	}
	for i, s := range statuses {
		doc.Approaches[i] = FromStatus(s)
	}
	return yaml.Marshal(doc)
}

// Decode parses a YAML document into statuses
func Decode(data []byte) ([]crosslight.Status, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("snapshot: unsupported version %d", doc.Version)
	}

	out := make([]crosslight.Status, 0, len(doc.Approaches))
	for _, r := range doc.Approaches {
		s, err := r.Status()
		if err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Save writes every approach of the manager to path
func Save(path string, m *crosslight.Manager) error {
	data, err := Encode(m.Statuses())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads path and restores each approach into the manager. Restoring
// stops at the first approach that fails.
func Load(path string, m *crosslight.Manager) ([]*crosslight.Approach, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	statuses, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	restored := make([]*crosslight.Approach, 0, len(statuses))
	for _, s := range statuses {
		a, err := m.Restore(s)
		if err != nil {
			return restored, err
		}
		restored = append(restored, a)
	}
	return restored, nil
}
