// Package diagram holds the data model of a system design board: nodes, edges,
// the immutable Graph value, the Store that owns it and the undo/redo History.
package diagram

import (
	"fmt"
	"strings"
)

const (
	DefaultNodeWidth  = 180.0
	DefaultNodeHeight = 60.0

	// Accent used when a node carries no color of its own.
	FallbackNodeColor = "#10b981"

	DefaultColor     = "#3b82f6"
	DefaultThickness = 2
	MinThickness     = 1
	MaxThickness     = 5

	// Offset applied to pasted and duplicated nodes.
	CloneOffset = 50.0
)

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis aligned box in canvas coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Side is the edge of a node card an anchor sits on.
type Side string

const (
	Top    Side = "top"
	Bottom Side = "bottom"
	Left   Side = "left"
	Right  Side = "right"
)

var Sides = []Side{Top, Bottom, Left, Right}

// AnchorType tells whether an anchor accepts inbound (target) or starts
// outbound (source) connections.
type AnchorType string

const (
	SourceAnchor AnchorType = "source"
	TargetAnchor AnchorType = "target"
)

// Anchor is one of the eight connection points of a node.
type Anchor struct {
	Side Side
	Type AnchorType
}

// String returns the handle id, eg "right-source".
func (a Anchor) String() string {
	return string(a.Side) + "-" + string(a.Type)
}

func (a Anchor) IsZero() bool { return a.Side == "" && a.Type == "" }

func (a Anchor) Valid() bool {
	switch a.Side {
	case Top, Bottom, Left, Right:
	default:
		return false
	}
	return a.Type == SourceAnchor || a.Type == TargetAnchor
}

// ParseAnchor parses a handle id of the form "<side>-<type>".
func ParseAnchor(s string) (Anchor, error) {
	side, typ, ok := strings.Cut(s, "-")
	a := Anchor{Side: Side(side), Type: AnchorType(typ)}
	if !ok || !a.Valid() {
		return Anchor{}, fmt.Errorf("invalid anchor '%s'", s)
	}
	return a, nil
}

func (a Anchor) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Anchor) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*a = Anchor{}
		return nil
	}
	parsed, err := ParseAnchor(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AllAnchors lists the eight anchors of a node card, target before source on
// every side.
func AllAnchors() []Anchor {
	out := make([]Anchor, 0, 8)
	for _, side := range Sides {
		out = append(out, Anchor{side, TargetAnchor}, Anchor{side, SourceAnchor})
	}
	return out
}

// RoutingStyle selects the path shape used to draw an edge.
type RoutingStyle string

const (
	Bezier     RoutingStyle = "bezier"
	Step       RoutingStyle = "step"
	SmoothStep RoutingStyle = "smoothstep"
	Straight   RoutingStyle = "straight"
)

func ParseRoutingStyle(s string) (RoutingStyle, bool) {
	switch r := RoutingStyle(s); r {
	case Bezier, Step, SmoothStep, Straight:
		return r, true
	}
	return "", false
}

// ArrowType is binary on purpose: an end either carries an arrowhead or not.
type ArrowType string

const (
	NoArrow ArrowType = "none"
	Arrow   ArrowType = "arrow"
)

func ParseArrowType(s string) (ArrowType, bool) {
	switch a := ArrowType(s); a {
	case NoArrow, Arrow:
		return a, true
	}
	return "", false
}

// Node is one placed component on the board.
type Node struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Position Point  `json:"position"`
	Size     Size   `json:"size"`
	Label    string `json:"label"`
	Color    string `json:"color"`
}

// NewNode creates a node of the given kind with the kind's defaults.
func NewNode(id string, kind Kind, pos Point, color string) Node {
	return Node{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Size:     Size{DefaultNodeWidth, DefaultNodeHeight},
		Label:    kind.DisplayName(),
		Color:    color,
	}
}

// Bounds returns the card rectangle.
func (n Node) Bounds() Rect {
	return Rect{n.Position.X, n.Position.Y, n.Size.Width, n.Size.Height}
}

// AccentColor is the color the card is drawn with.
func (n Node) AccentColor() string {
	if n.Color == "" {
		return FallbackNodeColor
	}
	return n.Color
}

// AnchorPoint returns where an anchor sits in canvas coordinates. Target
// anchors are at 33% along their side and source anchors at 66%, so each side
// can hold an inbound and an outbound connection independently.
func (n Node) AnchorPoint(a Anchor) Point {
	frac := 0.66
	if a.Type == TargetAnchor {
		frac = 0.33
	}
	r := n.Bounds()
	switch a.Side {
	case Top:
		return Point{r.X + r.Width*frac, r.Y}
	case Bottom:
		return Point{r.X + r.Width*frac, r.Y + r.Height}
	case Left:
		return Point{r.X, r.Y + r.Height*frac}
	default:
		return Point{r.X + r.Width, r.Y + r.Height*frac}
	}
}

// Clone returns a copy with a new id moved by the clone offset.
func (n Node) Clone(id string) Node {
	out := n
	out.ID = id
	out.Position = n.Position.Add(Point{CloneOffset, CloneOffset})
	return out
}

// Edge is a directed, styled connector from a source anchor to a target anchor.
type Edge struct {
	ID           string       `json:"id"`
	Source       string       `json:"source"`
	Target       string       `json:"target"`
	SourceAnchor Anchor       `json:"sourceAnchor"`
	TargetAnchor Anchor       `json:"targetAnchor"`
	Routing      RoutingStyle `json:"routing"`
	Thickness    int          `json:"thickness"`
	Color        string       `json:"color"`
	StartArrow   ArrowType    `json:"startArrow"`
	EndArrow     ArrowType    `json:"endArrow"`
}

// Connection identifies the two endpoints of an edge.
type Connection struct {
	Source       string `json:"source"`
	SourceAnchor Anchor `json:"sourceAnchor"`
	Target       string `json:"target"`
	TargetAnchor Anchor `json:"targetAnchor"`
}

// EdgeID derives the edge id from its endpoints.
func (c Connection) EdgeID() string {
	return fmt.Sprintf("edge-%s%s-%s%s", c.Source, c.SourceAnchor, c.Target, c.TargetAnchor)
}

// EdgeStyle is the style data carried by an edge, kept across re-connection.
type EdgeStyle struct {
	Routing    RoutingStyle
	Thickness  int
	Color      string
	StartArrow ArrowType
	EndArrow   ArrowType
}

// NewEdge creates an edge for a connection with no arrowheads.
func NewEdge(c Connection, routing RoutingStyle, thickness int, color string) Edge {
	if routing == "" {
		routing = Bezier
	}
	return Edge{
		ID:           c.EdgeID(),
		Source:       c.Source,
		Target:       c.Target,
		SourceAnchor: c.SourceAnchor,
		TargetAnchor: c.TargetAnchor,
		Routing:      routing,
		Thickness:    ClampThickness(thickness),
		Color:        color,
		StartArrow:   NoArrow,
		EndArrow:     NoArrow,
	}
}

func (e Edge) Connection() Connection {
	return Connection{e.Source, e.SourceAnchor, e.Target, e.TargetAnchor}
}

func (e Edge) Style() EdgeStyle {
	return EdgeStyle{e.Routing, e.Thickness, e.Color, e.StartArrow, e.EndArrow}
}

func (e Edge) StrokeColor() string {
	if e.Color == "" {
		return "#000"
	}
	return e.Color
}

func (e Edge) StrokeWidth() int {
	if e.Thickness <= 0 {
		return DefaultThickness
	}
	return e.Thickness
}

// ValidColor reports whether c is a #rgb or #rrggbb hex color.
func ValidColor(c string) bool {
	if len(c) != 4 && len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func ClampThickness(t int) int {
	if t < MinThickness {
		return MinThickness
	}
	if t > MaxThickness {
		return MaxThickness
	}
	return t
}

// NodePatch changes selected fields of a node. Nil fields are left alone and
// the kind cannot be patched.
type NodePatch struct {
	Position *Point
	Size     *Size
	Label    *string
	Color    *string
}

func (p NodePatch) apply(n Node) Node {
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.Size != nil {
		n.Size = *p.Size
	}
	if p.Label != nil {
		n.Label = *p.Label
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	return n
}

// EdgePatch changes selected fields of an edge. A non nil Connection
// re-targets the edge while keeping its id and style.
type EdgePatch struct {
	Connection *Connection
	Routing    *RoutingStyle
	Thickness  *int
	Color      *string
	StartArrow *ArrowType
	EndArrow   *ArrowType
}

func (p EdgePatch) apply(e Edge) Edge {
	if p.Connection != nil {
		e.Source, e.SourceAnchor = p.Connection.Source, p.Connection.SourceAnchor
		e.Target, e.TargetAnchor = p.Connection.Target, p.Connection.TargetAnchor
	}
	if p.Routing != nil {
		e.Routing = *p.Routing
	}
	if p.Thickness != nil {
		e.Thickness = ClampThickness(*p.Thickness)
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.StartArrow != nil {
		e.StartArrow = *p.StartArrow
	}
	if p.EndArrow != nil {
		e.EndArrow = *p.EndArrow
	}
	return e
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T { return &v }
