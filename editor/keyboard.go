package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyEvent is a key press as reported by the host, using DOM key names
// ("Delete", "Enter", "z", " ").
type KeyEvent struct {
	Key   string `json:"key" yaml:"key"`
	Ctrl  bool   `json:"ctrl,omitempty" yaml:"ctrl,omitempty"`
	Shift bool   `json:"shift,omitempty" yaml:"shift,omitempty"`
	Meta  bool   `json:"meta,omitempty" yaml:"meta,omitempty"`
	Alt   bool   `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// command reports whether the platform command modifier is held.
func (k KeyEvent) command() bool { return k.Ctrl || k.Meta }

func (k KeyEvent) is(name string) bool { return strings.EqualFold(k.Key, name) }

func (k KeyEvent) printable() bool {
	if k.command() || k.Alt || utf8.RuneCountInString(k.Key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(k.Key)
	return unicode.IsPrint(r)
}

// SetTextFocus tells the session whether keyboard focus is in a host text
// field. Shortcuts are ignored while it is.
func (s *Session) SetTextFocus(inTextField bool) { s.inTextField = inTextField }

// KeyDown handles a key press and reports whether the graph changed. While a
// label is being edited keys go to the label draft; otherwise they are
// matched against the shortcuts.
func (s *Session) KeyDown(k KeyEvent) bool {
	if s.label != nil {
		return s.labelKey(k)
	}
	if s.inTextField {
		return false
	}
	if k.Key == " " || k.is("Space") {
		s.spaceHeld = true
		return false
	}

	switch {
	case k.is("Delete"):
		return s.DeleteSelection()
	case k.command() && k.is("z") && k.Shift:
		return s.Redo()
	case k.command() && k.is("z"):
		return s.Undo()
	case k.command() && k.is("y"):
		return s.Redo()
	case k.command() && k.is("c"):
		s.Copy()
	case k.command() && k.is("v"):
		_, ok := s.Paste()
		return ok
	case k.command() && k.is("d"):
		_, ok := s.Duplicate()
		return ok
	case k.is("Escape"), k.command() && (k.is("a") || k.is("s")), !k.command() && (k.is("p") || k.is("e")):
		s.logger.Debug("reserved shortcut", "key", k.Key)
	}
	return false
}

// KeyUp releases Space, ending pan mode.
func (s *Session) KeyUp(k KeyEvent) {
	if k.Key == " " || k.is("Space") {
		s.spaceHeld = false
	}
}

func (s *Session) labelKey(k KeyEvent) bool {
	switch {
	case k.is("Enter"):
		return s.CommitLabel()
	case k.is("Backspace"):
		s.BackspaceLabel()
	case k.printable():
		s.TypeLabel(k.Key)
	}
	return false
}
