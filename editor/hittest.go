package editor

import (
	"math"

	"github.com/panyam/designboard/diagram"
	"github.com/panyam/designboard/viz"
)

const (
	// Pick radius of anchors and edge endpoints, in canvas units.
	AnchorHitRadius = 6.0

	// Extra slack around an edge stroke.
	EdgeHitSlack = 6.0
)

// HitKind is what lies under a canvas point.
type HitKind string

const (
	HitPane   HitKind = "pane"
	HitNode   HitKind = "node"
	HitAnchor HitKind = "anchor"
	HitResize HitKind = "resize"
	HitEdge   HitKind = "edge"
)

type Hit struct {
	Kind   HitKind
	Node   string
	Edge   string
	Anchor diagram.Anchor
}

// HitTest resolves a canvas point. Anchors win over the resize handle of the
// selected node, which wins over node bodies, then edges, then the pane.
// Among overlapping items the one drawn last wins.
func HitTest(g diagram.Graph, p diagram.Point, selectedNode string) Hit {
	nodes := g.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		for _, a := range diagram.AllAnchors() {
			if within(p, n.AnchorPoint(a), AnchorHitRadius) {
				return Hit{Kind: HitAnchor, Node: n.ID, Anchor: a}
			}
		}
	}
	if n, ok := g.Node(selectedNode); ok && viz.ResizeHandle(n).Contains(p) {
		return Hit{Kind: HitResize, Node: n.ID}
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Bounds().Contains(p) {
			return Hit{Kind: HitNode, Node: nodes[i].ID}
		}
	}
	edges := g.Edges()
	for i := len(edges) - 1; i >= 0; i-- {
		e := edges[i]
		path, ok := viz.RouteEdge(g, e)
		if ok && path.DistanceTo(p) <= EdgeHitSlack+float64(e.StrokeWidth())/2 {
			return Hit{Kind: HitEdge, Edge: e.ID}
		}
	}
	return Hit{Kind: HitPane}
}

// edgeEndAt returns which end of an edge lies under p.
func edgeEndAt(g diagram.Graph, e diagram.Edge, p diagram.Point) (EdgeEnd, bool) {
	if n, ok := g.Node(e.Source); ok && within(p, n.AnchorPoint(e.SourceAnchor), AnchorHitRadius) {
		return StartEnd, true
	}
	if n, ok := g.Node(e.Target); ok && within(p, n.AnchorPoint(e.TargetAnchor), AnchorHitRadius) {
		return EndEnd, true
	}
	return "", false
}

func within(p, q diagram.Point, r float64) bool {
	return math.Hypot(p.X-q.X, p.Y-q.Y) <= r
}
