package diagram

// Store is the single source of truth for the board's nodes and edges.
//
// Every mutation replaces the current Graph with a new value. Operations that
// refer to ids that do not exist (or would break the graph invariants) are
// no-ops and report false, since UI events can race with earlier deletions.
type Store struct {
	graph Graph
}

func NewStore(initial Graph) *Store {
	return &Store{graph: initial}
}

func (s *Store) Graph() Graph { return s.graph }

func (s *Store) Node(id string) (Node, bool) { return s.graph.Node(id) }
func (s *Store) Edge(id string) (Edge, bool) { return s.graph.Edge(id) }

// Replace swaps in a whole graph, eg a snapshot restored by undo.
func (s *Store) Replace(g Graph) { s.graph = g }

// Reset puts the board back to its initial single client node.
func (s *Store) Reset() { s.graph = InitialGraph() }

func (s *Store) AddNode(n Node) bool {
	if n.ID == "" || s.graph.HasNode(n.ID) {
		return false
	}
	nodes := make([]Node, 0, len(s.graph.nodes)+1)
	nodes = append(append(nodes, s.graph.nodes...), n)
	s.graph = Graph{nodes: nodes, edges: s.graph.edges}
	return true
}

func (s *Store) UpdateNode(id string, patch NodePatch) bool {
	i := s.graph.nodeIndex(id)
	if i < 0 {
		return false
	}
	updated := patch.apply(s.graph.nodes[i])
	if updated == s.graph.nodes[i] {
		return false
	}
	nodes := append([]Node(nil), s.graph.nodes...)
	nodes[i] = updated
	s.graph = Graph{nodes: nodes, edges: s.graph.edges}
	return true
}

// RemoveNode deletes a node together with every edge attached to it.
func (s *Store) RemoveNode(id string) bool {
	i := s.graph.nodeIndex(id)
	if i < 0 {
		return false
	}
	nodes := make([]Node, 0, len(s.graph.nodes)-1)
	nodes = append(append(nodes, s.graph.nodes[:i]...), s.graph.nodes[i+1:]...)
	edges := make([]Edge, 0, len(s.graph.edges))
	for _, e := range s.graph.edges {
		if e.Source != id && e.Target != id {
			edges = append(edges, e)
		}
	}
	s.graph = Graph{nodes: nodes, edges: edges}
	return true
}

// AddEdge adds an edge between two existing nodes. Duplicate ids (which are
// derived from the endpoints) are rejected.
func (s *Store) AddEdge(e Edge) bool {
	if e.ID == "" || s.graph.HasEdge(e.ID) {
		return false
	}
	if !s.graph.HasNode(e.Source) || !s.graph.HasNode(e.Target) {
		return false
	}
	if s.connected(e.Connection(), "") {
		return false
	}
	edges := make([]Edge, 0, len(s.graph.edges)+1)
	edges = append(append(edges, s.graph.edges...), e)
	s.graph = Graph{nodes: s.graph.nodes, edges: edges}
	return true
}

func (s *Store) UpdateEdge(id string, patch EdgePatch) bool {
	i := s.graph.edgeIndex(id)
	if i < 0 {
		return false
	}
	updated := patch.apply(s.graph.edges[i])
	if patch.Connection != nil {
		if !s.graph.HasNode(updated.Source) || !s.graph.HasNode(updated.Target) {
			return false
		}
		if s.connected(*patch.Connection, id) {
			return false
		}
	}
	if updated == s.graph.edges[i] {
		return false
	}
	edges := append([]Edge(nil), s.graph.edges...)
	edges[i] = updated
	s.graph = Graph{nodes: s.graph.nodes, edges: edges}
	return true
}

func (s *Store) RemoveEdge(id string) bool {
	i := s.graph.edgeIndex(id)
	if i < 0 {
		return false
	}
	edges := make([]Edge, 0, len(s.graph.edges)-1)
	edges = append(append(edges, s.graph.edges[:i]...), s.graph.edges[i+1:]...)
	s.graph = Graph{nodes: s.graph.nodes, edges: edges}
	return true
}

// connected reports whether an edge other than skipID already joins the same
// pair of anchors.
func (s *Store) connected(c Connection, skipID string) bool {
	for _, e := range s.graph.edges {
		if e.ID != skipID && e.Connection() == c {
			return true
		}
	}
	return false
}
