package viz

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/panyam/designboard/diagram"
)

const (
	fitPadding    = 40.0
	emptyWidth    = 400.0
	emptyHeight   = 300.0
	selectedColor = "#2563eb"
)

// Transform maps canvas coordinates to screen coordinates:
// screen = canvas*Zoom + (X, Y).
type Transform struct {
	X, Y, Zoom float64
}

// Scene is what the live canvas shows: the graph plus the session state that
// changes how it is drawn.
type Scene struct {
	Graph diagram.Graph

	SelectedNode string
	SelectedEdge string

	// EditingNode is the node whose label is being edited inline; Draft is the
	// text typed so far.
	EditingNode string
	Draft       string

	// When View is set the output is sized Width x Height and the graph is
	// drawn through the viewport transform. Otherwise the view box is fitted
	// to the content.
	View          *Transform
	Width, Height float64
}

// SvgRenderer draws boards as standalone SVG documents.
type SvgRenderer struct{}

func (r *SvgRenderer) Generate(g diagram.Graph) (string, error) {
	return r.Render(Scene{Graph: g})
}

func (r *SvgRenderer) Render(scene Scene) (string, error) {
	var svg bytes.Buffer
	g := scene.Graph

	// Route every edge once; bounds and drawing both need the geometry.
	type routed struct {
		edge diagram.Edge
		path EdgePath
	}
	var edges []routed
	for _, e := range g.Edges() {
		if p, ok := RouteEdge(g, e); ok {
			edges = append(edges, routed{e, p})
		}
	}

	if scene.View != nil {
		fmt.Fprintf(&svg, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\">\n",
			num(scene.Width), num(scene.Height), num(scene.Width), num(scene.Height))
	} else {
		minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
		grow := func(p diagram.Point) {
			minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
			maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
		}
		for _, n := range g.Nodes() {
			b := n.Bounds()
			grow(diagram.Point{X: b.X, Y: b.Y})
			grow(diagram.Point{X: b.X + b.Width, Y: b.Y + b.Height})
		}
		for _, e := range edges {
			for _, p := range e.path.Polyline {
				grow(p)
			}
		}
		if math.IsInf(minX, 1) {
			minX, minY, maxX, maxY = 0, 0, emptyWidth-2*fitPadding, emptyHeight-2*fitPadding
		}
		w, h := maxX-minX+2*fitPadding, maxY-minY+2*fitPadding
		fmt.Fprintf(&svg, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"%s %s %s %s\">\n",
			num(w), num(h), num(minX-fitPadding), num(minY-fitPadding), num(w), num(h))
	}

	svg.WriteString("  <style>\n")
	svg.WriteString("    .node-card { fill: #ffffff; stroke-width: 2px; }\n")
	svg.WriteString("    .node-label { font-family: Arial, sans-serif; font-size: 14px; font-weight: bold; fill: #0f172a; }\n")
	svg.WriteString("    .node-subtitle { font-family: Arial, sans-serif; font-size: 10px; fill: #64748b; }\n")
	svg.WriteString("    .edge-path { fill: none; }\n")
	svg.WriteString("    .selected .node-card, .edge-path.selected { filter: drop-shadow(0 0 3px " + selectedColor + "); }\n")
	svg.WriteString("  </style>\n")

	if scene.View != nil {
		fmt.Fprintf(&svg, "  <g class=\"viewport\" transform=\"translate(%s %s) scale(%s)\">\n",
			num(scene.View.X), num(scene.View.Y), num(scene.View.Zoom))
	} else {
		svg.WriteString("  <g class=\"viewport\">\n")
	}

	// Edges go under the nodes, like the canvas they mirror.
	for _, e := range edges {
		writeEdge(&svg, e.edge, e.path, e.edge.ID == scene.SelectedEdge)
	}
	for _, n := range g.Nodes() {
		editing := n.ID == scene.EditingNode
		writeNode(&svg, n, n.ID == scene.SelectedNode, editing, scene.Draft)
	}

	svg.WriteString("  </g>\n")
	svg.WriteString("</svg>\n")
	return svg.String(), nil
}

// writeEdge draws one edge. Marker definitions are only emitted for ends that
// carry an arrowhead and are scoped to the edge id so every edge can use its
// own color.
func writeEdge(svg *bytes.Buffer, e diagram.Edge, p EdgePath, selected bool) {
	color := html.EscapeString(e.StrokeColor())
	id := html.EscapeString(e.ID)
	showStart := e.StartArrow == diagram.Arrow
	showEnd := e.EndArrow == diagram.Arrow

	if showStart || showEnd {
		svg.WriteString("    <defs>\n")
		if showStart {
			writeMarker(svg, id+"-marker-start", "auto-start-reverse", color)
		}
		if showEnd {
			writeMarker(svg, id+"-marker-end", "auto", color)
		}
		svg.WriteString("    </defs>\n")
	}

	class := "edge-path"
	if selected {
		class += " selected"
	}
	fmt.Fprintf(svg, "    <path id=\"%s\" class=\"%s\" d=\"%s\" stroke=\"%s\" stroke-width=\"%d\"", id, class, p.D, color, e.StrokeWidth())
	if showStart {
		fmt.Fprintf(svg, " marker-start=\"url(#%s-marker-start)\"", id)
	}
	if showEnd {
		fmt.Fprintf(svg, " marker-end=\"url(#%s-marker-end)\"", id)
	}
	svg.WriteString(" />\n")
}

func writeMarker(svg *bytes.Buffer, id, orient, color string) {
	fmt.Fprintf(svg, "      <marker id=\"%s\" markerWidth=\"12\" markerHeight=\"12\" refX=\"12\" refY=\"6\" orient=\"%s\" markerUnits=\"strokeWidth\">\n", id, orient)
	fmt.Fprintf(svg, "        <path d=\"M2,1 L12,6 L2,11\" fill=\"none\" stroke=\"%s\" stroke-linecap=\"round\" stroke-linejoin=\"round\" />\n", color)
	svg.WriteString("      </marker>\n")
}
