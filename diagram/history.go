package diagram

// History is a linear undo/redo list of graph snapshots.
//
// Snapshots are whole Graph values. Graphs are immutable so keeping them by
// reference never aliases the live store.
type History struct {
	snapshots []Graph
	index     int
	limit     int
}

// NewHistory starts a history whose only snapshot is initial. A limit > 0
// caps the number of snapshots kept; the oldest are dropped first.
func NewHistory(initial Graph, limit int) *History {
	return &History{snapshots: []Graph{initial}, limit: limit}
}

// Record appends g after the current index. Snapshots that were undone are
// discarded first, so a new edit kills the redo future.
func (h *History) Record(g Graph) {
	h.snapshots = append(h.snapshots[:h.index+1:h.index+1], g)
	h.index = len(h.snapshots) - 1
	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		h.snapshots = append([]Graph(nil), h.snapshots[drop:]...)
		h.index -= drop
	}
}

// Undo steps back one snapshot and returns it. At the oldest snapshot it
// does nothing and returns false.
func (h *History) Undo() (Graph, bool) {
	if !h.CanUndo() {
		return Graph{}, false
	}
	h.index--
	return h.snapshots[h.index], true
}

// Redo steps forward one snapshot. At the newest snapshot it does nothing.
func (h *History) Redo() (Graph, bool) {
	if !h.CanRedo() {
		return Graph{}, false
	}
	h.index++
	return h.snapshots[h.index], true
}

func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.snapshots)-1 }

func (h *History) Index() int { return h.index }
func (h *History) Len() int   { return len(h.snapshots) }

// Current returns the snapshot at the current index.
func (h *History) Current() Graph { return h.snapshots[h.index] }

// Reset drops every snapshot and starts over from initial.
func (h *History) Reset(initial Graph) {
	h.snapshots = []Graph{initial}
	h.index = 0
}
