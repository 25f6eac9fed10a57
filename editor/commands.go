package editor

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/panyam/designboard/diagram"
)

// EdgeEnd names one end of an edge.
type EdgeEnd string

const (
	StartEnd EdgeEnd = "start"
	EndEnd   EdgeEnd = "end"
)

// ParseEdgeEnd accepts "start"/"source" and "end"/"target".
func ParseEdgeEnd(s string) (EdgeEnd, bool) {
	switch s {
	case "start", "source":
		return StartEnd, true
	case "end", "target":
		return EndEnd, true
	}
	return "", false
}

// SelectNode selects a node exclusively and shows the style tab.
func (s *Session) SelectNode(id string) bool {
	if !s.store.Graph().HasNode(id) {
		return false
	}
	s.flush()
	s.selectedNode, s.selectedEdge = id, ""
	s.tab = StyleTab
	return true
}

// SelectEdge selects an edge exclusively, shows the connection tab and adopts
// the edge's routing as the default.
func (s *Session) SelectEdge(id string) bool {
	e, ok := s.store.Edge(id)
	if !ok {
		return false
	}
	s.flush()
	s.selectedNode, s.selectedEdge = "", id
	s.tab = ConnectionTab
	s.defaults.Routing = e.Routing
	return true
}

func (s *Session) ClearSelection() {
	s.flush()
	s.selectedNode, s.selectedEdge = "", ""
	s.tab = StyleTab
}

// SetTab switches the side panel tab.
func (s *Session) SetTab(t Tab) bool {
	if t != StyleTab && t != ConnectionTab {
		return false
	}
	s.tab = t
	return true
}

// DropNode creates a node of a palette kind at a canvas position using the
// default color. Unknown kinds are ignored.
func (s *Session) DropNode(kind string, at diagram.Point) (diagram.Node, bool) {
	k, ok := diagram.ParseKind(kind)
	if !ok {
		s.logger.Debug("drop without a known kind", "kind", kind)
		return diagram.Node{}, false
	}
	n := diagram.NewNode(s.ids.NextID(), k, at, s.defaults.Color)
	n.Size = s.nodeSize
	if !s.apply("drop", func(st *diagram.Store) bool { return st.AddNode(n) }) {
		return diagram.Node{}, false
	}
	return n, true
}

// DropNodeAt is DropNode for a drop at a client position.
func (s *Session) DropNodeAt(kind string, client diagram.Point) (diagram.Node, bool) {
	return s.DropNode(kind, s.ToCanvas(client))
}

// Connect creates an edge with the default style and no arrowheads. The
// source anchor must be an outbound anchor and the target an inbound one.
// Connections that already exist are ignored.
func (s *Session) Connect(c diagram.Connection) (diagram.Edge, bool) {
	if c.SourceAnchor.Type != diagram.SourceAnchor || c.TargetAnchor.Type != diagram.TargetAnchor ||
		!c.SourceAnchor.Valid() || !c.TargetAnchor.Valid() {
		s.logger.Debug("connect with invalid anchors", "source", c.SourceAnchor, "target", c.TargetAnchor)
		return diagram.Edge{}, false
	}
	e := diagram.NewEdge(c, s.defaults.Routing, s.defaults.Thickness, s.defaults.Color)
	// A re-targeted edge keeps its old id, which may be the id this connection
	// derives to.
	g := s.store.Graph()
	for n := 2; g.HasEdge(e.ID); n++ {
		e.ID = fmt.Sprintf("%s-%d", c.EdgeID(), n)
	}
	if !s.apply("connect", func(st *diagram.Store) bool { return st.AddEdge(e) }) {
		return diagram.Edge{}, false
	}
	return e, true
}

// Reconnect moves one end of an edge to another node anchor, keeping the
// edge id and style. The anchor must be of the kind that end takes.
func (s *Session) Reconnect(edgeID string, end EdgeEnd, node string, anchor diagram.Anchor) bool {
	e, ok := s.store.Edge(edgeID)
	if !ok || !anchor.Valid() {
		return false
	}
	c := e.Connection()
	switch end {
	case StartEnd:
		if anchor.Type != diagram.SourceAnchor {
			return false
		}
		c.Source, c.SourceAnchor = node, anchor
	case EndEnd:
		if anchor.Type != diagram.TargetAnchor {
			return false
		}
		c.Target, c.TargetAnchor = node, anchor
	default:
		return false
	}
	return s.apply("reconnect", func(st *diagram.Store) bool {
		return st.UpdateEdge(edgeID, diagram.EdgePatch{Connection: &c})
	})
}

// DeleteSelection removes the selected node, with its edges, or the selected
// edge.
func (s *Session) DeleteSelection() bool {
	node, edge := s.selectedNode, s.selectedEdge
	if node == "" && edge == "" {
		return false
	}
	s.selectedNode, s.selectedEdge = "", ""
	if s.label != nil && s.label.node == node {
		s.label = nil
	}
	return s.apply("delete", func(st *diagram.Store) bool {
		if node != "" {
			return st.RemoveNode(node)
		}
		return st.RemoveEdge(edge)
	})
}

// Copy puts the selected node in the clipboard. The clipboard holds one node
// and is only ever overwritten.
func (s *Session) Copy() bool {
	n, ok := s.SelectedNode()
	if !ok {
		return false
	}
	s.clipboard = &n
	return true
}

// Paste adds a clone of the clipboard node offset from where it was copied.
func (s *Session) Paste() (diagram.Node, bool) {
	if s.clipboard == nil {
		return diagram.Node{}, false
	}
	return s.addClone("paste", *s.clipboard)
}

// Duplicate adds a clone of the selected node offset from its current
// position.
func (s *Session) Duplicate() (diagram.Node, bool) {
	n, ok := s.SelectedNode()
	if !ok {
		return diagram.Node{}, false
	}
	return s.addClone("duplicate", n)
}

func (s *Session) addClone(op string, n diagram.Node) (diagram.Node, bool) {
	clone := n.Clone(s.ids.NextID())
	if !s.apply(op, func(st *diagram.Store) bool { return st.AddNode(clone) }) {
		return diagram.Node{}, false
	}
	return clone, true
}

// ApplyColor makes color the default and applies it to the selected node or
// edge. Colors that are not hex colors are ignored.
func (s *Session) ApplyColor(color string) bool {
	if !diagram.ValidColor(color) {
		s.logger.Debug("color is not a hex color", "color", color)
		return false
	}
	s.defaults.Color = color
	switch {
	case s.selectedNode != "":
		id := s.selectedNode
		return s.apply("color", func(st *diagram.Store) bool {
			return st.UpdateNode(id, diagram.NodePatch{Color: &color})
		})
	case s.selectedEdge != "":
		id := s.selectedEdge
		return s.apply("color", func(st *diagram.Store) bool {
			return st.UpdateEdge(id, diagram.EdgePatch{Color: &color})
		})
	}
	return false
}

// SetRouting sets the routing of the selected edge and makes it the default.
// Without a selected edge the connection buttons are disabled.
func (s *Session) SetRouting(style diagram.RoutingStyle) bool {
	if s.selectedEdge == "" {
		return false
	}
	if _, ok := diagram.ParseRoutingStyle(string(style)); !ok {
		return false
	}
	s.defaults.Routing = style
	id := s.selectedEdge
	return s.apply("routing", func(st *diagram.Store) bool {
		return st.UpdateEdge(id, diagram.EdgePatch{Routing: &style})
	})
}

// SetArrow sets the arrowhead at one end of the selected edge.
func (s *Session) SetArrow(end EdgeEnd, a diagram.ArrowType) bool {
	if s.selectedEdge == "" {
		return false
	}
	if _, ok := diagram.ParseArrowType(string(a)); !ok {
		return false
	}
	patch := diagram.EdgePatch{}
	switch end {
	case StartEnd:
		patch.StartArrow = &a
	case EndEnd:
		patch.EndArrow = &a
	default:
		return false
	}
	id := s.selectedEdge
	return s.apply("arrow", func(st *diagram.Store) bool { return st.UpdateEdge(id, patch) })
}

// SetThickness is a slider move: it sets the default thickness and updates
// the selected edge live. Nothing is recorded until CommitThickness.
func (s *Session) SetThickness(t int) bool {
	t = diagram.ClampThickness(t)
	s.defaults.Thickness = t
	if s.selectedEdge == "" {
		return false
	}
	if !s.store.UpdateEdge(s.selectedEdge, diagram.EdgePatch{Thickness: &t}) {
		return false
	}
	s.thicknessDirty = true
	return true
}

// CommitThickness is the slider release. It records the live thickness
// changes, if there were any, as one step.
func (s *Session) CommitThickness() bool {
	if !s.thicknessDirty {
		return false
	}
	s.commit()
	return true
}

// BeginLabelEdit starts editing a node label inline with the current label
// as a fully selected draft.
func (s *Session) BeginLabelEdit(id string) bool {
	n, ok := s.store.Node(id)
	if !ok {
		return false
	}
	if s.label != nil && s.label.node != id {
		s.CommitLabel()
	}
	s.label = &labelEdit{node: id, draft: n.Label, selectAll: true}
	return true
}

// TypeLabel inserts text into the draft, replacing it while it is selected.
func (s *Session) TypeLabel(text string) bool {
	if s.label == nil {
		return false
	}
	if s.label.selectAll {
		s.label.draft = ""
		s.label.selectAll = false
	}
	s.label.draft += text
	return true
}

// BackspaceLabel deletes the last character of the draft, or all of it while
// it is selected.
func (s *Session) BackspaceLabel() bool {
	if s.label == nil {
		return false
	}
	if s.label.selectAll {
		s.label.draft = ""
		s.label.selectAll = false
		return true
	}
	if _, size := utf8.DecodeLastRuneInString(s.label.draft); size > 0 {
		s.label.draft = s.label.draft[:len(s.label.draft)-size]
	}
	return true
}

// SetLabelDraft replaces the draft, as a host text field reports its value.
func (s *Session) SetLabelDraft(text string) bool {
	if s.label == nil {
		return false
	}
	s.label.draft = text
	s.label.selectAll = false
	return true
}

// CommitLabel ends the label edit and writes the draft to the node. Empty
// labels are allowed.
func (s *Session) CommitLabel() bool {
	if s.label == nil {
		return false
	}
	id, label := s.label.node, norm.NFC.String(s.label.draft)
	s.label = nil
	return s.apply("label", func(st *diagram.Store) bool {
		return st.UpdateNode(id, diagram.NodePatch{Label: &label})
	})
}

// Clear resets the board to the single client node.
func (s *Session) Clear() bool {
	s.selectedNode, s.selectedEdge = "", ""
	s.label = nil
	s.gesture = nil
	s.tab = StyleTab
	return s.apply("clear", func(st *diagram.Store) bool {
		before := st.Graph()
		st.Reset()
		return !before.Equal(st.Graph())
	})
}

// Undo restores the previous snapshot. Selection and label edits are dropped
// since they may refer to items that no longer exist.
func (s *Session) Undo() bool {
	s.flush()
	g, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(g)
	return true
}

func (s *Session) Redo() bool {
	s.flush()
	g, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(g)
	return true
}

func (s *Session) restore(g diagram.Graph) {
	s.store.Replace(g)
	s.selectedNode, s.selectedEdge = "", ""
	s.label = nil
	s.gesture = nil
}
