package diagram

// Graph is an immutable snapshot of the board. Mutating operations on a Store
// build new Graph values and never modify slices that a Graph already holds,
// so a Graph can be kept by reference (eg in History) without copying.
type Graph struct {
	nodes []Node
	edges []Edge
}

// NewGraph builds a graph from copies of the given slices.
func NewGraph(nodes []Node, edges []Edge) Graph {
	return Graph{
		nodes: append([]Node(nil), nodes...),
		edges: append([]Edge(nil), edges...),
	}
}

// InitialGraph is the board shown on load and after clearing: a single
// client node.
func InitialGraph() Graph {
	return Graph{nodes: []Node{NewNode("1", Client, Point{100, 100}, DefaultColor)}}
}

// Nodes returns a copy of the nodes in insertion (and paint) order.
func (g Graph) Nodes() []Node { return append([]Node(nil), g.nodes...) }

// Edges returns a copy of the edges in insertion order.
func (g Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

func (g Graph) NodeCount() int { return len(g.nodes) }
func (g Graph) EdgeCount() int { return len(g.edges) }

func (g Graph) Node(id string) (Node, bool) {
	if i := g.nodeIndex(id); i >= 0 {
		return g.nodes[i], true
	}
	return Node{}, false
}

func (g Graph) Edge(id string) (Edge, bool) {
	if i := g.edgeIndex(id); i >= 0 {
		return g.edges[i], true
	}
	return Edge{}, false
}

func (g Graph) HasNode(id string) bool { return g.nodeIndex(id) >= 0 }
func (g Graph) HasEdge(id string) bool { return g.edgeIndex(id) >= 0 }

// EdgesOf returns the edges touching a node.
func (g Graph) EdgesOf(nodeID string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Source == nodeID || e.Target == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// DanglingEdges returns edges whose endpoints are missing from the graph. A
// graph produced by a Store never has any.
func (g Graph) DanglingEdges() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			out = append(out, e)
		}
	}
	return out
}

// Equal reports node-for-node and edge-for-edge equality.
func (g Graph) Equal(o Graph) bool {
	if len(g.nodes) != len(o.nodes) || len(g.edges) != len(o.edges) {
		return false
	}
	for i := range g.nodes {
		if g.nodes[i] != o.nodes[i] {
			return false
		}
	}
	for i := range g.edges {
		if g.edges[i] != o.edges[i] {
			return false
		}
	}
	return true
}

func (g Graph) nodeIndex(id string) int {
	for i := range g.nodes {
		if g.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func (g Graph) edgeIndex(id string) int {
	for i := range g.edges {
		if g.edges[i].ID == id {
			return i
		}
	}
	return -1
}

// GraphJSON is the wire shape of a graph for hosts.
type GraphJSON struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func (g Graph) JSON() GraphJSON {
	out := GraphJSON{Nodes: g.Nodes(), Edges: g.Edges()}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return out
}
