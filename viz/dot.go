package viz

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/panyam/designboard/diagram"
)

// --- DOT Generator ---

// DotGenerator writes Graphviz DOT. Node positions are kept as pinned "pos"
// attributes (in points, y pointing up) so `neato -n` reproduces the canvas.
type DotGenerator struct{}

func (g *DotGenerator) Generate(d diagram.Graph) (string, error) {
	var b bytes.Buffer
	b.WriteString("digraph board {\n")
	b.WriteString("  node [shape=box, style=\"rounded\", fontname=\"Arial\"];\n")

	for _, node := range d.Nodes() {
		c := diagram.Point{X: node.Position.X + node.Size.Width/2, Y: node.Position.Y + node.Size.Height/2}
		fmt.Fprintf(&b, "  %s [label=%s, color=%s, pos=\"%s,%s!\", width=%s, height=%s];\n",
			strconv.Quote(node.ID), strconv.Quote(node.Label+"\n("+node.Kind.Info().Subtitle+")"),
			strconv.Quote(node.AccentColor()), num(c.X), num(-c.Y),
			num(node.Size.Width/72), num(node.Size.Height/72))
	}

	for _, edge := range d.Edges() {
		fmt.Fprintf(&b, "  %s -> %s [dir=%s, color=%s, penwidth=%d, tailport=%s, headport=%s];\n",
			strconv.Quote(edge.Source), strconv.Quote(edge.Target), dotDir(edge),
			strconv.Quote(edge.StrokeColor()), edge.StrokeWidth(),
			dotPort(edge.SourceAnchor.Side), dotPort(edge.TargetAnchor.Side))
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func dotDir(e diagram.Edge) string {
	start, end := e.StartArrow == diagram.Arrow, e.EndArrow == diagram.Arrow
	switch {
	case start && end:
		return "both"
	case end:
		return "forward"
	case start:
		return "back"
	}
	return "none"
}

func dotPort(s diagram.Side) string {
	switch s {
	case diagram.Top:
		return "n"
	case diagram.Bottom:
		return "s"
	case diagram.Left:
		return "w"
	}
	return "e"
}
