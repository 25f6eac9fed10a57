package viz

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/panyam/designboard/diagram"
)

// twoNodeBoard has a service feeding a database with a single bezier edge.
func twoNodeBoard(t *testing.T, start, end diagram.ArrowType) (diagram.Graph, diagram.Edge) {
	t.Helper()
	s := diagram.NewStore(diagram.Graph{})
	assert.Assert(t, s.AddNode(diagram.NewNode("svc", diagram.Service, diagram.Point{X: 0, Y: 0}, "#8b5cf6")))
	assert.Assert(t, s.AddNode(diagram.NewNode("db", diagram.Database, diagram.Point{X: 400, Y: 0}, "")))
	e := diagram.NewEdge(diagram.Connection{
		Source: "svc", SourceAnchor: diagram.Anchor{Side: diagram.Right, Type: diagram.SourceAnchor},
		Target: "db", TargetAnchor: diagram.Anchor{Side: diagram.Left, Type: diagram.TargetAnchor},
	}, diagram.Bezier, 3, "#ef4444")
	e.StartArrow, e.EndArrow = start, end
	assert.Assert(t, s.AddEdge(e))
	return s.Graph(), e
}

func TestSvg_MarkersOnlyWhenArrowsSet(t *testing.T) {
	r := &SvgRenderer{}

	g, e := twoNodeBoard(t, diagram.NoArrow, diagram.NoArrow)
	out, err := r.Generate(g)
	assert.NilError(t, err)
	assert.Check(t, !strings.Contains(out, "<marker"), "no marker expected without arrowheads")
	assert.Check(t, !strings.Contains(out, "marker-end="))

	g, e = twoNodeBoard(t, diagram.NoArrow, diagram.Arrow)
	out, err = r.Generate(g)
	assert.NilError(t, err)
	assert.Check(t, cmp.Contains(out, `<marker id="`+e.ID+`-marker-end"`))
	assert.Check(t, cmp.Contains(out, `orient="auto"`))
	assert.Check(t, cmp.Contains(out, `marker-end="url(#`+e.ID+`-marker-end)"`))
	assert.Check(t, !strings.Contains(out, "marker-start"))

	g, e = twoNodeBoard(t, diagram.Arrow, diagram.Arrow)
	out, err = r.Generate(g)
	assert.NilError(t, err)
	assert.Check(t, cmp.Contains(out, `orient="auto-start-reverse"`))
	assert.Check(t, cmp.Contains(out, `marker-start="url(#`+e.ID+`-marker-start)"`))
	assert.Check(t, cmp.Contains(out, `marker-end="url(#`+e.ID+`-marker-end)"`))
	assert.Check(t, cmp.Contains(out, `<path d="M2,1 L12,6 L2,11" fill="none" stroke="#ef4444"`))
}

func TestSvg_EdgeStroke(t *testing.T) {
	g, e := twoNodeBoard(t, diagram.NoArrow, diagram.NoArrow)
	out, err := (&SvgRenderer{}).Generate(g)
	assert.NilError(t, err)

	path, _ := RouteEdge(g, e)
	assert.Check(t, cmp.Contains(out, `d="`+path.D+`" stroke="#ef4444" stroke-width="3"`))
	// Edges are drawn before, and so under, the nodes.
	assert.Check(t, strings.Index(out, `class="edge-path"`) < strings.Index(out, `id="node-svc"`))
}

func TestSvg_NodeTemplate(t *testing.T) {
	g, _ := twoNodeBoard(t, diagram.NoArrow, diagram.NoArrow)
	out, err := (&SvgRenderer{}).Render(Scene{Graph: g, SelectedNode: "svc"})
	assert.NilError(t, err)

	assert.Check(t, cmp.Contains(out, `<g id="node-svc" class="node node-service selected" data-kind="service">`))
	assert.Check(t, cmp.Contains(out, `<text class="node-label" x="46" y="29">Service</text>`))
	assert.Check(t, cmp.Contains(out, `<text class="node-subtitle" x="46" y="43">Service</text>`))
	assert.Check(t, cmp.Contains(out, `stroke="#8b5cf6"`))
	// Nodes without a color fall back to the default accent.
	assert.Check(t, cmp.Contains(out, `<g id="node-db" class="node node-database" data-kind="database">`))
	assert.Check(t, cmp.Contains(out, `stroke="`+diagram.FallbackNodeColor+`"`))

	// Every node carries all eight anchors.
	assert.Check(t, cmp.Equal(strings.Count(out, `data-anchor="`), 16))
	assert.Check(t, cmp.Contains(out, `data-anchor="top-target" cx="59.4" cy="0"`))
	assert.Check(t, cmp.Contains(out, `data-anchor="right-source" cx="180" cy="39.6"`))

	// Only the selected node shows a resize handle.
	assert.Check(t, cmp.Equal(strings.Count(out, `class="resize-handle"`), 1))
	assert.Check(t, cmp.Contains(out, `class="resize-handle" x="176" y="56"`))
}

func TestSvg_LabelEditor(t *testing.T) {
	g, _ := twoNodeBoard(t, diagram.NoArrow, diagram.NoArrow)
	out, err := (&SvgRenderer{}).Render(Scene{Graph: g, EditingNode: "db", Draft: "Orders <db>"})
	assert.NilError(t, err)
	assert.Check(t, cmp.Contains(out, `class="node node-database editing"`))
	assert.Check(t, cmp.Contains(out, `Orders &lt;db&gt;</text>`))
	assert.Check(t, cmp.Contains(out, `class="node-label-editor"`))
}

func TestSvg_ViewBox(t *testing.T) {
	t.Run("Fitted to content", func(t *testing.T) {
		out, err := (&SvgRenderer{}).Generate(diagram.InitialGraph())
		assert.NilError(t, err)
		// Client at (100,100) sized 180x60 plus 40 padding on each side.
		assert.Check(t, cmp.Contains(out, `width="260" height="140" viewBox="60 60 260 140"`))
	})

	t.Run("Empty board", func(t *testing.T) {
		out, err := (&SvgRenderer{}).Generate(diagram.Graph{})
		assert.NilError(t, err)
		assert.Check(t, cmp.Contains(out, `width="400" height="300"`))
	})

	t.Run("Viewport transform", func(t *testing.T) {
		out, err := (&SvgRenderer{}).Render(Scene{
			Graph: diagram.InitialGraph(), View: &Transform{X: 10, Y: -20, Zoom: 1.5}, Width: 800, Height: 600,
		})
		assert.NilError(t, err)
		assert.Check(t, cmp.Contains(out, `viewBox="0 0 800 600"`))
		assert.Check(t, cmp.Contains(out, `transform="translate(10 -20) scale(1.5)"`))
	})
}
