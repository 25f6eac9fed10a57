package editor

// Shortcut is one row of the keyboard shortcuts dialog.
type Shortcut struct {
	Keys        string `json:"keys"`
	Description string `json:"description"`
	// Reserved shortcuts are listed but do nothing yet.
	Reserved bool `json:"reserved,omitempty"`
}

var shortcuts = []Shortcut{
	{"Delete", "Delete selected node or edge", false},
	{"Ctrl + Z", "Undo", false},
	{"Ctrl + Y", "Redo", false},
	{"Ctrl + A", "Select all nodes", true},
	{"Ctrl + D", "Duplicate selected node", false},
	{"Ctrl + C", "Copy selected node", false},
	{"Ctrl + V", "Paste copied node", false},
	{"Ctrl + S", "Save diagram", true},
	{"P", "Toggle pencil tool", true},
	{"E", "Toggle eraser tool", true},
	{"Esc", "Exit current tool mode", true},
	{"Space + Drag", "Pan the canvas", false},
	{"Shift + Scroll", "Zoom in/out", false},
}

// Shortcuts returns the shortcuts dialog list.
func Shortcuts() []Shortcut {
	return append([]Shortcut(nil), shortcuts...)
}
