package diagram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyAndRecord mirrors the controller's two phase protocol.
func applyAndRecord(s *Store, h *History, mutate func(*Store) bool) {
	if mutate(s) {
		h.Record(s.Graph())
	}
}

func addNode(id string) func(*Store) bool {
	return func(s *Store) bool { return s.AddNode(NewNode(id, Service, Point{}, DefaultColor)) }
}

func nodeIDs(g Graph) []string {
	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestHistory_Boundaries(t *testing.T) {
	h := NewHistory(InitialGraph(), 0)

	_, ok := h.Undo()
	assert.False(t, ok, "Undo at the oldest snapshot is a no-op")
	_, ok = h.Redo()
	assert.False(t, ok, "Redo at the newest snapshot is a no-op")
	assert.Equal(t, 0, h.Index())
	assert.Equal(t, 1, h.Len())
}

func TestHistory_UndoRedoInverse(t *testing.T) {
	s := NewStore(InitialGraph())
	h := NewHistory(s.Graph(), 0)

	applyAndRecord(s, h, addNode("a"))
	applyAndRecord(s, h, func(s *Store) bool {
		return s.AddEdge(NewEdge(Connection{"1", Anchor{Right, SourceAnchor}, "a", Anchor{Left, TargetAnchor}}, Bezier, 2, ""))
	})
	after := s.Graph()

	g, ok := h.Undo()
	require.True(t, ok)
	s.Replace(g)
	assert.Equal(t, 0, s.Graph().EdgeCount())

	g, ok = h.Redo()
	require.True(t, ok)
	s.Replace(g)
	assert.True(t, after.Equal(s.Graph()), "undo then redo restores the post mutation graph")
}

func TestHistory_Truncation(t *testing.T) {
	s := NewStore(InitialGraph())
	h := NewHistory(s.Graph(), 0)

	applyAndRecord(s, h, addNode("A"))
	applyAndRecord(s, h, addNode("B"))
	applyAndRecord(s, h, addNode("C"))
	require.Equal(t, 4, h.Len())

	for i := 0; i < 2; i++ {
		g, ok := h.Undo()
		require.True(t, ok)
		s.Replace(g)
	}
	assert.Equal(t, []string{"1", "A"}, nodeIDs(s.Graph()))

	applyAndRecord(s, h, addNode("D"))
	assert.False(t, h.CanRedo())
	_, ok := h.Redo()
	assert.False(t, ok, "Redo after a new edit is a no-op")
	assert.Equal(t, []string{"1", "A", "D"}, nodeIDs(s.Graph()))
	assert.Equal(t, 3, h.Len())
}

func TestHistory_SnapshotsDoNotAlias(t *testing.T) {
	s := NewStore(InitialGraph())
	h := NewHistory(s.Graph(), 0)

	applyAndRecord(s, h, addNode("A"))
	s.UpdateNode("A", NodePatch{Label: Ptr("changed but not recorded")})

	n, _ := h.Current().Node("A")
	assert.Equal(t, "Service", n.Label)
}

func TestHistory_Limit(t *testing.T) {
	s := NewStore(InitialGraph())
	h := NewHistory(s.Graph(), 3)

	for _, id := range []string{"A", "B", "C", "D"} {
		applyAndRecord(s, h, addNode(id))
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index())

	var g Graph
	for h.CanUndo() {
		g, _ = h.Undo()
	}
	assert.Equal(t, []string{"1", "A", "B"}, nodeIDs(g), "The two oldest snapshots were dropped")
}

func TestIDGen(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	gen := &IDGen{Now: func() time.Time { return now }}

	a := gen.NextID()
	b := gen.NextID()
	assert.Equal(t, "1700000000000", a)
	assert.Equal(t, "1700000000001", b, "Same millisecond bumps the id")

	taken := map[string]bool{"1700000000002": true, "1700000000003": true}
	gen.Exists = func(id string) bool { return taken[id] }
	assert.Equal(t, "1700000000004", gen.NextID())
}

func TestKinds(t *testing.T) {
	assert.Len(t, Palette(), 12)

	k, ok := ParseKind("loadBalancer")
	require.True(t, ok)
	assert.Equal(t, "Load Balancer", k.DisplayName())
	assert.Equal(t, "Load Balancer", k.Info().Subtitle)
	assert.NotEmpty(t, k.Info().Icon)

	_, ok = ParseKind("mainframe")
	assert.False(t, ok)
	_, ok = ParseKind("")
	assert.False(t, ok)

	for _, info := range Palette() {
		assert.Equal(t, info.DisplayName, info.Subtitle, "Subtitle matches display name for %s", info.Kind)
		assert.NotEmpty(t, info.Icon, "Icon for %s", info.Kind)
	}

	// Callers cannot change the registry through the returned entries.
	p := Palette()
	want := Client.Info().Icon[0]
	p[0].Icon[0] = "<circle />"
	p[0].DisplayName = "Browser"
	assert.Equal(t, want, Client.Info().Icon[0])
	assert.Equal(t, "Client", Client.DisplayName())
}
