package editor

import (
	"github.com/panyam/designboard/diagram"
)

type Swatch struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
}

type RoutingOption struct {
	Style   diagram.RoutingStyle `json:"style"`
	Label   string               `json:"label"`
	Active  bool                 `json:"active"`
	Enabled bool                 `json:"enabled"`
}

type ThicknessOption struct {
	Label  string `json:"label"`
	Value  int    `json:"value"`
	Active bool   `json:"active"`
}

// Panel is the state of the style/connection side panel.
type Panel struct {
	Tab          Tab           `json:"tab"`
	SelectedNode *diagram.Node `json:"selectedNode,omitempty"`
	SelectedEdge *diagram.Edge `json:"selectedEdge,omitempty"`
	Defaults     Defaults      `json:"defaults"`

	Swatches    []Swatch          `json:"swatches"`
	Routings    []RoutingOption   `json:"routings"`
	Thicknesses []ThicknessOption `json:"thicknesses"`

	// The slider covers the full thickness range, wider than the presets.
	MinThickness int `json:"minThickness"`
	MaxThickness int `json:"maxThickness"`
	Thickness    int `json:"thickness"`

	// Arrowhead toggles, only meaningful with an edge selected.
	StartArrow diagram.ArrowType `json:"startArrow,omitempty"`
	EndArrow   diagram.ArrowType `json:"endArrow,omitempty"`

	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

var swatches = []Swatch{
	{Name: "Blue", Color: "#3b82f6"},
	{Name: "Green", Color: "#10b981"},
	{Name: "Purple", Color: "#8b5cf6"},
	{Name: "Orange", Color: "#f97316"},
	{Name: "Red", Color: "#ef4444"},
	{Name: "Teal", Color: "#14b8a6"},
	{Name: "Pink", Color: "#ec4899"},
	{Name: "Yellow", Color: "#eab308"},
	{Name: "Gray", Color: "#6b7280"},
}

var routings = []RoutingOption{
	{Style: diagram.Bezier, Label: "Bezier"},
	{Style: diagram.Step, Label: "Step"},
	{Style: diagram.SmoothStep, Label: "Smooth Step"},
	{Style: diagram.Straight, Label: "Straight"},
}

var thicknesses = []ThicknessOption{
	{Label: "Thin", Value: 1},
	{Label: "Medium", Value: 2},
	{Label: "Thick", Value: 3},
	{Label: "Extra Thick", Value: 4},
}

// Swatches lists the color swatches of the style panel.
func Swatches() []Swatch { return append([]Swatch(nil), swatches...) }

// Panel returns the side panel as it should currently be shown. Highlights
// follow the selected item, falling back to the defaults.
func (s *Session) Panel() Panel {
	p := Panel{
		Tab:          s.tab,
		Defaults:     s.defaults,
		MinThickness: diagram.MinThickness,
		MaxThickness: diagram.MaxThickness,
		Thickness:    s.defaults.Thickness,
		CanUndo:      s.history.CanUndo(),
		CanRedo:      s.history.CanRedo(),
	}
	color, routing := s.defaults.Color, s.defaults.Routing
	if n, ok := s.SelectedNode(); ok {
		p.SelectedNode = &n
		color = n.Color
	}
	edge, hasEdge := s.SelectedEdge()
	if hasEdge {
		p.SelectedEdge = &edge
		color, routing, p.Thickness = edge.Color, edge.Routing, edge.Thickness
		p.StartArrow, p.EndArrow = edge.StartArrow, edge.EndArrow
	}

	for _, sw := range swatches {
		sw.Active = sw.Color == color
		p.Swatches = append(p.Swatches, sw)
	}
	for _, r := range routings {
		r.Active = r.Style == routing
		r.Enabled = hasEdge
		p.Routings = append(p.Routings, r)
	}
	for _, t := range thicknesses {
		t.Active = t.Value == p.Thickness
		p.Thicknesses = append(p.Thicknesses, t)
	}
	return p
}
