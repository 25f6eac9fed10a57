package editor

import (
	"math"

	"github.com/panyam/designboard/diagram"
)

const (
	MinNodeWidth  = 60.0
	MinNodeHeight = 40.0
)

type gestureKind int

const (
	dragNode gestureKind = iota
	resizeNode
	connectAnchors
	reconnectEnd
	panView
)

// gesture is a pointer interaction between pointer down and pointer up.
// Node drags and resizes only touch the graph when they end.
type gesture struct {
	kind   gestureKind
	node   string
	anchor diagram.Anchor
	edge   string
	end    EdgeEnd

	startCanvas diagram.Point
	cur         diagram.Point
	lastClient  diagram.Point
	moved       bool
}

func (gs *gesture) delta() diagram.Point { return gs.cur.Sub(gs.startCanvas) }

// preview returns the node as the gesture currently shows it.
func (gs *gesture) preview(g diagram.Graph) (diagram.Node, bool) {
	if gs.kind != dragNode && gs.kind != resizeNode {
		return diagram.Node{}, false
	}
	n, ok := g.Node(gs.node)
	if !ok {
		return diagram.Node{}, false
	}
	d := gs.delta()
	if gs.kind == dragNode {
		n.Position = n.Position.Add(d)
	} else {
		n.Size = diagram.Size{
			Width:  math.Max(MinNodeWidth, n.Size.Width+d.X),
			Height: math.Max(MinNodeHeight, n.Size.Height+d.Y),
		}
	}
	return n, true
}

// PointerDown starts a gesture at a client position: connecting from an
// anchor, dragging an endpoint of the selected edge, resizing the selected
// node, moving a node or panning. Pressing outside a label being edited
// commits it, which is the only way this changes the graph.
func (s *Session) PointerDown(client diagram.Point) bool {
	p := s.ToCanvas(client)
	g := s.store.Graph()
	hit := HitTest(g, p, s.selectedNode)

	changed := false
	if s.label != nil && !(hit.Kind == HitNode && hit.Node == s.label.node) {
		changed = s.CommitLabel()
		g = s.store.Graph()
	}

	gs := &gesture{startCanvas: p, cur: p, lastClient: client}
	switch {
	case s.spaceHeld:
		gs.kind = panView
	case s.selectedEdge != "" && s.edgeEnd(g, p, gs):
		gs.kind = reconnectEnd
	case hit.Kind == HitAnchor:
		gs.kind, gs.node, gs.anchor = connectAnchors, hit.Node, hit.Anchor
	case hit.Kind == HitResize:
		gs.kind, gs.node = resizeNode, hit.Node
	case hit.Kind == HitNode:
		gs.kind, gs.node = dragNode, hit.Node
	case hit.Kind == HitPane:
		gs.kind = panView
	default:
		// Edges are selected on click.
		gs = nil
	}
	s.gesture = gs
	return changed
}

func (s *Session) edgeEnd(g diagram.Graph, p diagram.Point, gs *gesture) bool {
	e, ok := g.Edge(s.selectedEdge)
	if !ok {
		return false
	}
	end, ok := edgeEndAt(g, e, p)
	if ok {
		gs.edge, gs.end = e.ID, end
	}
	return ok
}

// PointerMove advances the current gesture. Only the viewport and transient
// preview state change.
func (s *Session) PointerMove(client diagram.Point) {
	gs := s.gesture
	if gs == nil {
		return
	}
	if gs.kind == panView {
		d := client.Sub(gs.lastClient)
		if d != (diagram.Point{}) {
			s.viewport = s.viewport.Pan(d.X, d.Y)
			gs.moved = true
		}
		gs.lastClient = client
		return
	}
	gs.cur = s.ToCanvas(client)
	gs.lastClient = client
	if gs.cur != gs.startCanvas {
		gs.moved = true
	}
}

// PointerUp ends the current gesture and commits its result as one step.
func (s *Session) PointerUp(client diagram.Point) bool {
	gs := s.gesture
	if gs == nil {
		return false
	}
	s.PointerMove(client)
	s.gesture = nil
	s.suppressClick = gs.moved

	g := s.store.Graph()
	switch gs.kind {
	case dragNode, resizeNode:
		if !gs.moved {
			return false
		}
		n, ok := gs.preview(g)
		if !ok {
			return false
		}
		patch := diagram.NodePatch{Position: &n.Position}
		op := "move"
		if gs.kind == resizeNode {
			patch = diagram.NodePatch{Size: &n.Size}
			op = "resize"
		}
		return s.apply(op, func(st *diagram.Store) bool { return st.UpdateNode(n.ID, patch) })
	case connectAnchors:
		hit := HitTest(g, gs.cur, "")
		if hit.Kind != HitAnchor {
			return false
		}
		c, ok := connection(gs.node, gs.anchor, hit.Node, hit.Anchor)
		if !ok {
			return false
		}
		_, ok = s.Connect(c)
		return ok
	case reconnectEnd:
		hit := HitTest(g, gs.cur, "")
		if hit.Kind != HitAnchor {
			return false
		}
		return s.Reconnect(gs.edge, gs.end, hit.Node, hit.Anchor)
	}
	return false
}

// connection orders two anchors so the edge runs from the outbound anchor to
// the inbound one, whichever the drag started from.
func connection(fromNode string, from diagram.Anchor, toNode string, to diagram.Anchor) (diagram.Connection, bool) {
	switch {
	case from.Type == diagram.SourceAnchor && to.Type == diagram.TargetAnchor:
		return diagram.Connection{Source: fromNode, SourceAnchor: from, Target: toNode, TargetAnchor: to}, true
	case from.Type == diagram.TargetAnchor && to.Type == diagram.SourceAnchor:
		return diagram.Connection{Source: toNode, SourceAnchor: to, Target: fromNode, TargetAnchor: from}, true
	}
	return diagram.Connection{}, false
}

// Click selects what is under a client position, or clears the selection on
// the pane. A click ending a drag or pan is ignored.
func (s *Session) Click(client diagram.Point) bool {
	if s.suppressClick {
		s.suppressClick = false
		return false
	}
	p := s.ToCanvas(client)
	hit := HitTest(s.store.Graph(), p, s.selectedNode)
	if s.label != nil && hit.Node == s.label.node && hit.Kind == HitNode {
		return false
	}
	changed := s.CommitLabel()
	switch hit.Kind {
	case HitNode, HitAnchor, HitResize:
		s.SelectNode(hit.Node)
	case HitEdge:
		s.SelectEdge(hit.Edge)
	default:
		s.ClearSelection()
	}
	return changed
}

// DoubleClick on a node starts editing its label.
func (s *Session) DoubleClick(client diagram.Point) bool {
	hit := HitTest(s.store.Graph(), s.ToCanvas(client), s.selectedNode)
	if hit.Kind != HitNode {
		return false
	}
	s.BeginLabelEdit(hit.Node)
	return false
}

// Wheel pans the view, or zooms around the pointer with Shift held.
func (s *Session) Wheel(client diagram.Point, dx, dy float64, shift bool) {
	if shift {
		d := dy
		if d == 0 {
			// Some platforms report shifted scrolling horizontally.
			d = dx
		}
		at := client.Sub(s.origin)
		s.viewport = s.viewport.ZoomAt(at, s.viewport.WheelZoom(d))
		return
	}
	s.viewport = s.viewport.Pan(-dx, -dy)
}
