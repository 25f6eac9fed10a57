package viz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/panyam/designboard/diagram"
)

// --- Mermaid Generator ---

type MermaidGenerator struct{}

func (g *MermaidGenerator) Generate(d diagram.Graph) (string, error) {
	var b bytes.Buffer
	b.WriteString("flowchart LR\n")

	for _, node := range d.Nodes() {
		lb, rb := mermaidShape(node.Kind)
		label := mermaidText(node.Label) + "<br/>(" + mermaidText(node.Kind.Info().Subtitle) + ")"
		fmt.Fprintf(&b, "  %s%s\"%s\"%s\n", mermaidID(node.ID), lb, label, rb)
	}
	for _, node := range d.Nodes() {
		fmt.Fprintf(&b, "  style %s stroke:%s,stroke-width:2px\n", mermaidID(node.ID), node.AccentColor())
	}

	for i, edge := range d.Edges() {
		from, to := mermaidID(edge.Source), mermaidID(edge.Target)
		link := "---"
		switch {
		case edge.StartArrow == diagram.Arrow && edge.EndArrow == diagram.Arrow:
			link = "<-->"
		case edge.EndArrow == diagram.Arrow:
			link = "-->"
		case edge.StartArrow == diagram.Arrow:
			// Mermaid has no left pointing link, so flip the edge.
			link = "-->"
			from, to = to, from
		}
		fmt.Fprintf(&b, "  %s %s %s\n", from, link, to)
		fmt.Fprintf(&b, "  linkStyle %d stroke:%s,stroke-width:%dpx\n", i, edge.StrokeColor(), edge.StrokeWidth())
	}
	return b.String(), nil
}

func mermaidShape(k diagram.Kind) (string, string) {
	switch k {
	case diagram.Database:
		return "[(", ")]"
	case diagram.Client, diagram.Consumers:
		return "([", "])"
	case diagram.Queue:
		return "[[", "]]"
	case diagram.LoadBalancer, diagram.APIGateway, diagram.Proxy:
		return "{{", "}}"
	default:
		return "[", "]"
	}
}

func mermaidID(id string) string {
	var sb strings.Builder
	sb.WriteString("n_")
	for _, r := range id {
		if r < 128 && (r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func mermaidText(s string) string {
	return strings.NewReplacer(`"`, "#quot;", "<", "#lt;", ">", "#gt;").Replace(s)
}
