package editor

import (
	"math"

	"github.com/panyam/designboard/diagram"
	"github.com/panyam/designboard/viz"
)

const (
	DefaultZoom = 1.5
	MinZoom     = 0.5
	MaxZoom     = 2.0

	// Wheel delta to zoom exponent, per pixel of scroll.
	wheelZoomRate = 0.002
)

// Viewport is the pan offset and zoom of the canvas. A canvas point p is shown
// at screen position p*Zoom + (X, Y), relative to the canvas bounds.
type Viewport struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Zoom float64 `json:"zoom" yaml:"zoom"`
}

func DefaultViewport() Viewport {
	return Viewport{Zoom: DefaultZoom}
}

// ScreenToCanvas converts a client position to canvas coordinates. origin is
// the top left corner of the canvas bounds in client coordinates.
func (v Viewport) ScreenToCanvas(client, origin diagram.Point) diagram.Point {
	z := v.zoom()
	return diagram.Point{
		X: (client.X - origin.X - v.X) / z,
		Y: (client.Y - origin.Y - v.Y) / z,
	}
}

// CanvasToScreen is the inverse of ScreenToCanvas.
func (v Viewport) CanvasToScreen(p, origin diagram.Point) diagram.Point {
	z := v.zoom()
	return diagram.Point{
		X: p.X*z + v.X + origin.X,
		Y: p.Y*z + v.Y + origin.Y,
	}
}

// Pan moves the view by a screen space delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.X += dx
	v.Y += dy
	return v
}

// ZoomAt changes the zoom keeping the canvas point under the screen position
// at (relative to the canvas bounds) fixed. The zoom is clamped.
func (v Viewport) ZoomAt(at diagram.Point, zoom float64) Viewport {
	zoom = ClampZoom(zoom)
	z := v.zoom()
	cx, cy := (at.X-v.X)/z, (at.Y-v.Y)/z
	return Viewport{X: at.X - cx*zoom, Y: at.Y - cy*zoom, Zoom: zoom}
}

// WheelZoom is the zoom reached by scrolling deltaY pixels from the current
// zoom. Scrolling up zooms in.
func (v Viewport) WheelZoom(deltaY float64) float64 {
	return ClampZoom(v.zoom() * math.Pow(2, -deltaY*wheelZoomRate))
}

func (v Viewport) Transform() viz.Transform {
	return viz.Transform{X: v.X, Y: v.Y, Zoom: v.zoom()}
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return DefaultZoom
	}
	return v.Zoom
}

func ClampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
