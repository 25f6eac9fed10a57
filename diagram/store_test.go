package diagram

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conn(src string, srcSide Side, tgt string, tgtSide Side) Connection {
	return Connection{
		Source:       src,
		SourceAnchor: Anchor{srcSide, SourceAnchor},
		Target:       tgt,
		TargetAnchor: Anchor{tgtSide, TargetAnchor},
	}
}

// Builds a store with nodes a, b, c and edges a->b, b->c.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(Graph{})
	for i, id := range []string{"a", "b", "c"} {
		require.True(t, s.AddNode(NewNode(id, Service, Point{float64(i) * 200, 0}, DefaultColor)))
	}
	require.True(t, s.AddEdge(NewEdge(conn("a", Right, "b", Left), Bezier, 2, "#000")))
	require.True(t, s.AddEdge(NewEdge(conn("b", Right, "c", Left), Bezier, 2, "#000")))
	return s
}

func TestStore_AddNode(t *testing.T) {
	s := NewStore(InitialGraph())
	before := s.Graph()

	assert.True(t, s.AddNode(NewNode("2", Database, Point{120, 80}, DefaultColor)))
	assert.Equal(t, 2, s.Graph().NodeCount())
	assert.Equal(t, 1, before.NodeCount(), "Earlier graph values must not change")

	n, ok := s.Node("2")
	require.True(t, ok)
	assert.Equal(t, "Database", n.Label)
	assert.Equal(t, Size{180, 60}, n.Size)

	assert.False(t, s.AddNode(NewNode("2", Cache, Point{}, "")), "Duplicate ids are rejected")
	assert.False(t, s.AddNode(Node{Kind: Cache}), "Empty ids are rejected")
}

func TestStore_UpdateNode(t *testing.T) {
	s := newTestStore(t)
	before := s.Graph()

	assert.True(t, s.UpdateNode("a", NodePatch{Label: Ptr("Web"), Color: Ptr("#ef4444")}))
	n, _ := s.Node("a")
	assert.Equal(t, "Web", n.Label)
	assert.Equal(t, "#ef4444", n.Color)
	assert.Equal(t, Service, n.Kind)

	old, _ := before.Node("a")
	assert.Equal(t, "Service", old.Label, "Snapshot taken before the patch is untouched")

	assert.True(t, s.UpdateNode("a", NodePatch{Label: Ptr("")}), "Empty labels are valid")
	assert.False(t, s.UpdateNode("a", NodePatch{Label: Ptr("")}), "Unchanged patch reports no change")
	assert.False(t, s.UpdateNode("missing", NodePatch{Label: Ptr("x")}))
}

func TestStore_RemoveNodeCascades(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.RemoveNode("b"))
	g := s.Graph()
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount(), "Both edges touched b")
	assert.Empty(t, g.DanglingEdges())
}

func TestStore_RemoveNodeIdempotent(t *testing.T) {
	once := newTestStore(t)
	twice := newTestStore(t)

	once.RemoveNode("a")
	twice.RemoveNode("a")
	assert.False(t, twice.RemoveNode("a"))

	if diff := cmp.Diff(once.Graph().Nodes(), twice.Graph().Nodes()); diff != "" {
		t.Errorf("nodes differ (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(once.Graph().Edges(), twice.Graph().Edges()); diff != "" {
		t.Errorf("edges differ (-once +twice):\n%s", diff)
	}
}

func TestStore_AddEdge(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.AddEdge(NewEdge(conn("a", Right, "b", Left), Straight, 2, "")), "Same connection twice")
	assert.False(t, s.AddEdge(NewEdge(conn("a", Right, "zz", Left), Straight, 2, "")), "Missing target")
	assert.True(t, s.AddEdge(NewEdge(conn("a", Bottom, "c", Top), Straight, 9, "")))

	e, ok := s.Edge("edge-abottom-source-ctop-target")
	require.True(t, ok)
	assert.Equal(t, 5, e.Thickness, "Thickness is clamped")
	assert.Equal(t, NoArrow, e.StartArrow)
	assert.Equal(t, NoArrow, e.EndArrow)
}

func TestStore_UpdateEdge(t *testing.T) {
	s := newTestStore(t)
	id := conn("a", Right, "b", Left).EdgeID()

	assert.True(t, s.UpdateEdge(id, EdgePatch{Routing: Ptr(Step), EndArrow: Ptr(Arrow)}))
	e, _ := s.Edge(id)
	assert.Equal(t, Step, e.Routing)
	assert.Equal(t, Arrow, e.EndArrow)

	t.Run("Re-target keeps id and style", func(t *testing.T) {
		c := conn("a", Right, "c", Top)
		require.True(t, s.UpdateEdge(id, EdgePatch{Connection: &c}))
		e, ok := s.Edge(id)
		require.True(t, ok)
		assert.Equal(t, "c", e.Target)
		assert.Equal(t, Step, e.Routing)
		assert.Equal(t, Arrow, e.EndArrow)
	})

	t.Run("Re-target onto a missing node is ignored", func(t *testing.T) {
		c := conn("a", Right, "nope", Top)
		assert.False(t, s.UpdateEdge(id, EdgePatch{Connection: &c}))
	})

	t.Run("Re-target onto an existing connection is ignored", func(t *testing.T) {
		c := conn("b", Right, "c", Left)
		assert.False(t, s.UpdateEdge(id, EdgePatch{Connection: &c}))
	})

	assert.False(t, s.UpdateEdge("missing", EdgePatch{Routing: Ptr(Straight)}))
}

func TestStore_RemoveEdge(t *testing.T) {
	s := newTestStore(t)
	id := conn("a", Right, "b", Left).EdgeID()

	assert.True(t, s.RemoveEdge(id))
	assert.False(t, s.RemoveEdge(id))
	assert.Equal(t, 1, s.Graph().EdgeCount())
	assert.Equal(t, 3, s.Graph().NodeCount())
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore(t)
	s.Reset()
	g := s.Graph()
	require.Equal(t, 1, g.NodeCount())
	n := g.Nodes()[0]
	assert.Equal(t, Client, n.Kind)
	assert.Equal(t, "Client", n.Label)
	assert.Equal(t, DefaultColor, n.Color)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestAnchorPoints(t *testing.T) {
	n := NewNode("n", Cache, Point{0, 0}, "")
	w, h := n.Size.Width, n.Size.Height
	near, far := 0.33, 0.66
	assert.Equal(t, Point{w * near, 0}, n.AnchorPoint(Anchor{Top, TargetAnchor}))
	assert.Equal(t, Point{w * far, h}, n.AnchorPoint(Anchor{Bottom, SourceAnchor}))
	assert.Equal(t, Point{0, h * near}, n.AnchorPoint(Anchor{Left, TargetAnchor}))
	assert.Equal(t, Point{w, h * far}, n.AnchorPoint(Anchor{Right, SourceAnchor}))
	assert.Len(t, AllAnchors(), 8)
}

func TestParseAnchor(t *testing.T) {
	a, err := ParseAnchor("left-source")
	require.NoError(t, err)
	assert.Equal(t, Anchor{Left, SourceAnchor}, a)

	_, err = ParseAnchor("middle-source")
	assert.Error(t, err)
	_, err = ParseAnchor("left")
	assert.Error(t, err)
}
