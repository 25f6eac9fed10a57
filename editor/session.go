// Package editor is the interaction controller of a design board. A Session
// turns palette drops, pointer gestures, key presses and side panel actions
// into mutations of a diagram.Store and records them in a diagram.History.
//
// A Session is single threaded: it must not be used from more than one
// goroutine at a time. Hosts serving several callers guard each session
// themselves.
package editor

import (
	"log/slog"
	"time"

	"github.com/panyam/designboard/diagram"
	"github.com/panyam/designboard/viz"
)

// Tab is the active side panel tab.
type Tab string

const (
	StyleTab      Tab = "style"
	ConnectionTab Tab = "connection"
)

// Defaults is the style given to newly created nodes and edges.
type Defaults struct {
	Color     string               `json:"color"`
	Routing   diagram.RoutingStyle `json:"routing"`
	Thickness int                  `json:"thickness"`
}

// Options configures a new Session. The zero value gives the stock editor.
type Options struct {
	// Initial board; nil means the single client node.
	Initial *diagram.Graph

	Defaults Defaults

	// Size of dropped nodes; zero means 180x60.
	NodeSize diagram.Size

	// Maximum number of snapshots kept; zero keeps everything.
	HistoryLimit int

	// Initial viewport; a zero zoom means DefaultViewport.
	Viewport Viewport

	// Top left corner of the canvas in client coordinates.
	Origin diagram.Point

	// Clock used for node ids.
	Now func() time.Time

	Logger *slog.Logger
}

type labelEdit struct {
	node  string
	draft string
	// The whole draft is selected, so the next typed character replaces it.
	selectAll bool
}

// Session holds all editor state for one board.
type Session struct {
	store   *diagram.Store
	history *diagram.History
	ids     diagram.IDGen
	logger  *slog.Logger

	selectedNode string
	selectedEdge string
	tab          Tab
	defaults     Defaults
	nodeSize     diagram.Size
	clipboard    *diagram.Node
	label        *labelEdit

	viewport      Viewport
	origin        diagram.Point
	gesture       *gesture
	suppressClick bool
	spaceHeld     bool
	inTextField   bool

	// Live thickness changes not yet recorded.
	thicknessDirty bool
}

func NewSession(opts Options) *Session {
	initial := diagram.InitialGraph()
	if opts.Initial != nil {
		initial = *opts.Initial
	}
	d := opts.Defaults
	if d.Color == "" {
		d.Color = diagram.DefaultColor
	}
	if d.Routing == "" {
		d.Routing = diagram.Bezier
	}
	if d.Thickness == 0 {
		d.Thickness = diagram.DefaultThickness
	}
	d.Thickness = diagram.ClampThickness(d.Thickness)

	size := opts.NodeSize
	if size.Width <= 0 || size.Height <= 0 {
		size = diagram.Size{Width: diagram.DefaultNodeWidth, Height: diagram.DefaultNodeHeight}
	}
	vp := opts.Viewport
	if vp.Zoom <= 0 {
		vp = DefaultViewport()
	}
	vp.Zoom = ClampZoom(vp.Zoom)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		store:    diagram.NewStore(initial),
		history:  diagram.NewHistory(initial, opts.HistoryLimit),
		logger:   logger,
		tab:      StyleTab,
		defaults: d,
		nodeSize: size,
		viewport: vp,
		origin:   opts.Origin,
	}
	s.ids = diagram.IDGen{
		Now:    opts.Now,
		Exists: func(id string) bool { return s.store.Graph().HasNode(id) },
	}
	return s
}

// Graph returns the committed board, without any in-flight gesture.
func (s *Session) Graph() diagram.Graph { return s.store.Graph() }

// View returns the board as it should be drawn, with the transient position
// or size of a node being dragged or resized applied.
func (s *Session) View() diagram.Graph {
	g := s.store.Graph()
	if s.gesture == nil {
		return g
	}
	n, ok := s.gesture.preview(g)
	if !ok {
		return g
	}
	nodes := g.Nodes()
	for i := range nodes {
		if nodes[i].ID == n.ID {
			nodes[i] = n
		}
	}
	return diagram.NewGraph(nodes, g.Edges())
}

// Scene returns what the canvas shows in a width x height viewport.
func (s *Session) Scene(width, height float64) viz.Scene {
	scene := viz.Scene{
		Graph:        s.View(),
		SelectedNode: s.selectedNode,
		SelectedEdge: s.selectedEdge,
		Width:        width,
		Height:       height,
	}
	if width > 0 && height > 0 {
		t := s.viewport.Transform()
		scene.View = &t
	}
	if s.label != nil {
		scene.EditingNode = s.label.node
		scene.Draft = s.label.draft
	}
	return scene
}

// Selection returns the selected node and edge ids; at most one is set.
func (s *Session) Selection() (node, edge string) { return s.selectedNode, s.selectedEdge }

func (s *Session) SelectedNode() (diagram.Node, bool) {
	if s.selectedNode == "" {
		return diagram.Node{}, false
	}
	return s.store.Node(s.selectedNode)
}

func (s *Session) SelectedEdge() (diagram.Edge, bool) {
	if s.selectedEdge == "" {
		return diagram.Edge{}, false
	}
	return s.store.Edge(s.selectedEdge)
}

func (s *Session) Tab() Tab           { return s.tab }
func (s *Session) Defaults() Defaults { return s.defaults }
func (s *Session) Viewport() Viewport { return s.viewport }
func (s *Session) CanUndo() bool      { return s.history.CanUndo() }
func (s *Session) CanRedo() bool      { return s.history.CanRedo() }

// HistoryIndex returns the current snapshot index and the number of snapshots.
func (s *Session) HistoryIndex() (int, int) { return s.history.Index(), s.history.Len() }

// Clipboard returns the copied node, if any.
func (s *Session) Clipboard() (diagram.Node, bool) {
	if s.clipboard == nil {
		return diagram.Node{}, false
	}
	return *s.clipboard, true
}

// LabelEdit returns the node whose label is being edited and the draft.
func (s *Session) LabelEdit() (node, draft string, ok bool) {
	if s.label == nil {
		return "", "", false
	}
	return s.label.node, s.label.draft, true
}

// SetOrigin tells the session where the canvas sits in client coordinates.
func (s *Session) SetOrigin(p diagram.Point) { s.origin = p }

// SetViewport replaces the viewport, clamping the zoom.
func (s *Session) SetViewport(v Viewport) {
	if v.Zoom <= 0 {
		v.Zoom = DefaultZoom
	}
	v.Zoom = ClampZoom(v.Zoom)
	s.viewport = v
}

// ToCanvas converts a client position to canvas coordinates.
func (s *Session) ToCanvas(client diagram.Point) diagram.Point {
	return s.viewport.ScreenToCanvas(client, s.origin)
}

// apply runs a store mutation and, once it has returned, commits a snapshot
// of the new graph. Nothing is recorded when the mutation was a no-op. Live
// thickness changes are recorded first so they stay a step of their own.
func (s *Session) apply(op string, mutate func(st *diagram.Store) bool) bool {
	s.flush()
	if !mutate(s.store) {
		s.logger.Debug("ignored", "op", op)
		return false
	}
	s.commit()
	s.logger.Debug("applied", "op", op, "nodes", s.store.Graph().NodeCount(), "edges", s.store.Graph().EdgeCount())
	return true
}

func (s *Session) commit() {
	s.history.Record(s.store.Graph())
	s.thicknessDirty = false
}

// flush records live changes that are still waiting for a commit.
func (s *Session) flush() {
	if s.thicknessDirty {
		s.commit()
	}
}
