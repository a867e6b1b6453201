package visualization

import (
	"fmt"
	"os"
	"strings"

	"github.com/anggasct/crosslight"
)

// DOTGenerator generates Graphviz DOT representations of the lane-grouping
// mode cycle of an approach
type DOTGenerator struct {
	availability crosslight.Availability
	current      crosslight.Mode
	options      DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	// ShowGuardConditions adds the lane condition to each edge label
	ShowGuardConditions bool
	// ShowInactive draws edges the current availability never takes
	ShowInactive  bool
	RankDirection string // "TB", "LR", "BT", "RL"
	NodeShape     string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowGuardConditions: true,
		ShowInactive:        true,
		RankDirection:       "LR",
		NodeShape:           "box",
	}
}

type edge struct {
	from, to crosslight.Mode
	guard    string
}

// cycleEdges lists every edge the mode cycle can take. Which ones are taken
// is decided by crosslight.NextMode.
var cycleEdges = []edge{
	{crosslight.Simple, crosslight.SingleLeft, "no left lane"},
	{crosslight.Simple, crosslight.SingleRight, "left lane"},
	{crosslight.SingleRight, crosslight.SingleLeft, "forward and right lanes"},
	{crosslight.SingleRight, crosslight.Simple, "forward or right missing"},
	{crosslight.SingleLeft, crosslight.All, "left lane"},
	{crosslight.SingleLeft, crosslight.Simple, "no left lane"},
	{crosslight.All, crosslight.Simple, ""},
}

func (e edge) taken(a crosslight.Availability) bool {
	return crosslight.NextMode(e.from, a) == e.to
}

// NewDOTGenerator creates a DOT generator for the given lane availability.
// current is highlighted; pass 0 to highlight nothing.
func NewDOTGenerator(availability crosslight.Availability, current crosslight.Mode, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		availability: availability,
		current:      current,
		options:      opts,
	}
}

// ForApproach creates a DOT generator for an approach's current lanes and
// mode
func ForApproach(a *crosslight.Approach, options ...DOTOptions) *DOTGenerator {
	return NewDOTGenerator(a.Availability(), a.Mode(), options...)
}

// Generate creates a DOT representation of the mode cycle
func (g *DOTGenerator) Generate() (string, error) {
	if g.current != 0 && !g.current.Valid() {
		return "", fmt.Errorf("invalid current mode %s", g.current)
	}

	var dot strings.Builder

	dot.WriteString("digraph ModeCycle {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateModes(&dot)
	g.generateEdges(&dot)

	dot.WriteString("}\n")

	return dot.String(), nil
}

func (g *DOTGenerator) generateModes(dot *strings.Builder) {
	dot.WriteString("  // Modes\n")

	for _, m := range crosslight.Modes {
		fillColor := "lightblue"
		label := m.String()

		if m == crosslight.Simple {
			label += "\\n(initial)"
		}
		if m == g.current {
			fillColor = "lightgreen"
			label += "\\n(current)"
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [style=\"filled\" fillcolor=%s label=\"%s\"];\n",
			m, fillColor, label))
	}
	dot.WriteString("\n")
}

func (g *DOTGenerator) generateEdges(dot *strings.Builder) {
	dot.WriteString("  // Transitions\n")

	for _, e := range cycleEdges {
		taken := e.taken(g.availability)
		if !taken && !g.options.ShowInactive {
			continue
		}

		attrs := []string{}
		if g.options.ShowGuardConditions && e.guard != "" {
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", e.guard))
		}
		if !taken {
			attrs = append(attrs, "style=dashed", "color=gray")
		}

		if len(attrs) == 0 {
			dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", e.from, e.to))
		} else {
			dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [%s];\n", e.from, e.to, strings.Join(attrs, " ")))
		}
	}
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}
