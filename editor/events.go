package editor

import (
	"errors"
	"fmt"

	"github.com/panyam/designboard/diagram"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrInvalidEvent = errors.New("invalid event")
)

type EventType string

const (
	DropEvent         EventType = "drop"
	PointerDownEvent  EventType = "pointerdown"
	PointerMoveEvent  EventType = "pointermove"
	PointerUpEvent    EventType = "pointerup"
	ClickEvent        EventType = "click"
	DoubleClickEvent  EventType = "dblclick"
	WheelEvent        EventType = "wheel"
	KeyDownEvent      EventType = "keydown"
	KeyUpEvent        EventType = "keyup"
	FocusEvent        EventType = "focus"
	SelectEvent       EventType = "select"
	ConnectEvent      EventType = "connect"
	ReconnectEvent    EventType = "reconnect"
	DeleteEvent       EventType = "delete"
	CopyEvent         EventType = "copy"
	PasteEvent        EventType = "paste"
	DuplicateEvent    EventType = "duplicate"
	ColorEvent        EventType = "color"
	RoutingEvent      EventType = "routing"
	ArrowEvent        EventType = "arrow"
	ThicknessEvent    EventType = "thickness"
	ThicknessEndEvent EventType = "thicknessend"
	EditLabelEvent    EventType = "editlabel"
	LabelTextEvent    EventType = "labeltext"
	BlurEvent         EventType = "blur"
	UndoEvent         EventType = "undo"
	RedoEvent         EventType = "redo"
	ClearEvent        EventType = "clear"
	TabEvent          EventType = "tab"
	ViewportEvent     EventType = "viewport"
	OriginEvent       EventType = "origin"
)

// EventTypes lists every event a session understands.
var EventTypes = []EventType{
	DropEvent, PointerDownEvent, PointerMoveEvent, PointerUpEvent, ClickEvent, DoubleClickEvent,
	WheelEvent, KeyDownEvent, KeyUpEvent, FocusEvent, SelectEvent, ConnectEvent, ReconnectEvent,
	DeleteEvent, CopyEvent, PasteEvent, DuplicateEvent, ColorEvent, RoutingEvent, ArrowEvent,
	ThicknessEvent, ThicknessEndEvent, EditLabelEvent, LabelTextEvent, BlurEvent, UndoEvent, RedoEvent,
	ClearEvent, TabEvent, ViewportEvent, OriginEvent,
}

// Event is the serializable form of everything a host can tell a session.
// Only the fields relevant to the Type are read.
//
// Positions are given either in client coordinates (Client) or directly in
// canvas coordinates (At); At wins when both are set.
type Event struct {
	Type EventType `json:"type" yaml:"type"`

	Client *diagram.Point `json:"client,omitempty" yaml:"client,omitempty"`
	At     *diagram.Point `json:"at,omitempty" yaml:"at,omitempty"`

	// Palette kind of a drop.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	KeyEvent    `yaml:",inline"`
	InTextField bool `json:"inTextField,omitempty" yaml:"inTextField,omitempty"`

	DeltaX float64 `json:"deltaX,omitempty" yaml:"deltaX,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty" yaml:"deltaY,omitempty"`

	Node string `json:"node,omitempty" yaml:"node,omitempty"`
	Edge string `json:"edge,omitempty" yaml:"edge,omitempty"`

	Source       string `json:"source,omitempty" yaml:"source,omitempty"`
	SourceAnchor string `json:"sourceAnchor,omitempty" yaml:"sourceAnchor,omitempty"`
	Target       string `json:"target,omitempty" yaml:"target,omitempty"`
	TargetAnchor string `json:"targetAnchor,omitempty" yaml:"targetAnchor,omitempty"`

	// End of an edge for reconnect and arrow events, with the anchor the end
	// moves to.
	End    string `json:"end,omitempty" yaml:"end,omitempty"`
	Anchor string `json:"anchor,omitempty" yaml:"anchor,omitempty"`

	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	Routing   string `json:"routing,omitempty" yaml:"routing,omitempty"`
	Arrow     string `json:"arrow,omitempty" yaml:"arrow,omitempty"`
	Thickness int    `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	Tab       string `json:"tab,omitempty" yaml:"tab,omitempty"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`

	Viewport *Viewport `json:"viewport,omitempty" yaml:"viewport,omitempty"`
}

// client returns the client position of a pointer event.
func (s *Session) client(ev Event) (diagram.Point, error) {
	switch {
	case ev.At != nil:
		return s.viewport.CanvasToScreen(*ev.At, s.origin), nil
	case ev.Client != nil:
		return *ev.Client, nil
	}
	return diagram.Point{}, fmt.Errorf("%w: %s needs a position", ErrInvalidEvent, ev.Type)
}

// Dispatch applies an event and reports whether the graph changed. Events
// that are well formed but have nothing to act on are silent no-ops; errors
// are only returned for unknown or malformed events.
func (s *Session) Dispatch(ev Event) (bool, error) {
	switch ev.Type {
	case DropEvent:
		if ev.At != nil {
			_, ok := s.DropNode(ev.Kind, *ev.At)
			return ok, nil
		}
		if ev.Client == nil {
			return false, fmt.Errorf("%w: drop needs a position", ErrInvalidEvent)
		}
		_, ok := s.DropNodeAt(ev.Kind, *ev.Client)
		return ok, nil
	case PointerDownEvent, PointerMoveEvent, PointerUpEvent, ClickEvent, DoubleClickEvent, WheelEvent:
		p, err := s.client(ev)
		if err != nil {
			return false, err
		}
		switch ev.Type {
		case PointerDownEvent:
			return s.PointerDown(p), nil
		case PointerMoveEvent:
			s.PointerMove(p)
			return false, nil
		case PointerUpEvent:
			return s.PointerUp(p), nil
		case ClickEvent:
			return s.Click(p), nil
		case DoubleClickEvent:
			return s.DoubleClick(p), nil
		default:
			s.Wheel(p, ev.DeltaX, ev.DeltaY, ev.Shift)
			return false, nil
		}
	case KeyDownEvent:
		if ev.Key == "" {
			return false, fmt.Errorf("%w: keydown without a key", ErrInvalidEvent)
		}
		return s.KeyDown(ev.KeyEvent), nil
	case KeyUpEvent:
		s.KeyUp(ev.KeyEvent)
		return false, nil
	case FocusEvent:
		s.SetTextFocus(ev.InTextField)
		return false, nil
	case SelectEvent:
		switch {
		case ev.Node != "":
			s.SelectNode(ev.Node)
		case ev.Edge != "":
			s.SelectEdge(ev.Edge)
		default:
			s.ClearSelection()
		}
		return false, nil
	case ConnectEvent:
		sa, err1 := diagram.ParseAnchor(ev.SourceAnchor)
		ta, err2 := diagram.ParseAnchor(ev.TargetAnchor)
		if err := errors.Join(err1, err2); err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
		_, ok := s.Connect(diagram.Connection{Source: ev.Source, SourceAnchor: sa, Target: ev.Target, TargetAnchor: ta})
		return ok, nil
	case ReconnectEvent:
		end, ok := ParseEdgeEnd(ev.End)
		if !ok {
			return false, fmt.Errorf("%w: unknown edge end '%s'", ErrInvalidEvent, ev.End)
		}
		a, err := diagram.ParseAnchor(ev.Anchor)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
		return s.Reconnect(ev.Edge, end, ev.Node, a), nil
	case DeleteEvent:
		return s.DeleteSelection(), nil
	case CopyEvent:
		s.Copy()
		return false, nil
	case PasteEvent:
		_, ok := s.Paste()
		return ok, nil
	case DuplicateEvent:
		_, ok := s.Duplicate()
		return ok, nil
	case ColorEvent:
		if !diagram.ValidColor(ev.Color) {
			return false, fmt.Errorf("%w: invalid color '%s'", ErrInvalidEvent, ev.Color)
		}
		return s.ApplyColor(ev.Color), nil
	case RoutingEvent:
		r, ok := diagram.ParseRoutingStyle(ev.Routing)
		if !ok {
			return false, fmt.Errorf("%w: unknown routing '%s'", ErrInvalidEvent, ev.Routing)
		}
		return s.SetRouting(r), nil
	case ArrowEvent:
		end, ok := ParseEdgeEnd(ev.End)
		if !ok {
			return false, fmt.Errorf("%w: unknown edge end '%s'", ErrInvalidEvent, ev.End)
		}
		a, ok := diagram.ParseArrowType(ev.Arrow)
		if !ok {
			return false, fmt.Errorf("%w: unknown arrow '%s'", ErrInvalidEvent, ev.Arrow)
		}
		return s.SetArrow(end, a), nil
	case ThicknessEvent:
		return s.SetThickness(ev.Thickness), nil
	case ThicknessEndEvent:
		// The live updates already changed the graph; this only records them.
		s.CommitThickness()
		return false, nil
	case EditLabelEvent:
		s.BeginLabelEdit(ev.Node)
		return false, nil
	case LabelTextEvent:
		s.SetLabelDraft(ev.Text)
		return false, nil
	case BlurEvent:
		return s.CommitLabel(), nil
	case UndoEvent:
		return s.Undo(), nil
	case RedoEvent:
		return s.Redo(), nil
	case ClearEvent:
		return s.Clear(), nil
	case TabEvent:
		if !s.SetTab(Tab(ev.Tab)) {
			return false, fmt.Errorf("%w: unknown tab '%s'", ErrInvalidEvent, ev.Tab)
		}
		return false, nil
	case ViewportEvent:
		if ev.Viewport == nil {
			return false, fmt.Errorf("%w: viewport event without a viewport", ErrInvalidEvent)
		}
		s.SetViewport(*ev.Viewport)
		return false, nil
	case OriginEvent:
		if ev.At == nil && ev.Client == nil {
			return false, fmt.Errorf("%w: origin needs a position", ErrInvalidEvent)
		}
		if ev.Client != nil {
			s.SetOrigin(*ev.Client)
		} else {
			s.SetOrigin(*ev.At)
		}
		return false, nil
	}
	return false, fmt.Errorf("%w: '%s'", ErrUnknownEvent, ev.Type)
}
