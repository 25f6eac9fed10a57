package viz

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/panyam/designboard/diagram"
)

const (
	// Distance orthogonal edges travel straight out of an anchor before turning.
	stepOffset = 20.0

	// Corner radius of smoothstep edges.
	smoothStepRadius = 10.0

	bezierCurvature = 0.25

	// Number of straight segments a cubic is flattened into.
	bezierSamples = 24
)

// EdgePath is the geometry of one routed edge.
type EdgePath struct {
	// D is the SVG path data.
	D string

	// Label is where an edge label would be centred.
	Label diagram.Point

	// Polyline approximates the path, for hit testing and exporters that only
	// understand straight segments.
	Polyline []diagram.Point

	// StartAngle points away from the path at its first point and EndAngle
	// along the path at its last point, in degrees. These are the directions
	// arrowheads at either end face.
	StartAngle float64
	EndAngle   float64
}

// Route computes the path of an edge between two anchor points. The sides say
// which way each anchor faces so curves and steps leave and enter the cards
// perpendicularly.
func Route(style diagram.RoutingStyle, src diagram.Point, srcSide diagram.Side, tgt diagram.Point, tgtSide diagram.Side) EdgePath {
	switch style {
	case diagram.Straight:
		return straightPath(src, tgt)
	case diagram.Step:
		return stepPath(src, srcSide, tgt, tgtSide, 0)
	case diagram.SmoothStep:
		return stepPath(src, srcSide, tgt, tgtSide, smoothStepRadius)
	default:
		return bezierPath(src, srcSide, tgt, tgtSide)
	}
}

// RouteEdge routes an edge of a graph. It returns false when either endpoint
// is missing.
func RouteEdge(g diagram.Graph, e diagram.Edge) (EdgePath, bool) {
	src, ok1 := g.Node(e.Source)
	tgt, ok2 := g.Node(e.Target)
	if !ok1 || !ok2 {
		return EdgePath{}, false
	}
	return Route(e.Routing,
		src.AnchorPoint(e.SourceAnchor), e.SourceAnchor.Side,
		tgt.AnchorPoint(e.TargetAnchor), e.TargetAnchor.Side), true
}

// DistanceTo returns the shortest distance from p to the path.
func (p EdgePath) DistanceTo(q diagram.Point) float64 {
	best := math.Inf(1)
	for i := 1; i < len(p.Polyline); i++ {
		best = math.Min(best, segmentDistance(q, p.Polyline[i-1], p.Polyline[i]))
	}
	return best
}

func straightPath(src, tgt diagram.Point) EdgePath {
	return EdgePath{
		D:          "M" + pt(src) + " L" + pt(tgt),
		Label:      diagram.Point{X: (src.X + tgt.X) / 2, Y: (src.Y + tgt.Y) / 2},
		Polyline:   []diagram.Point{src, tgt},
		StartAngle: angle(src, tgt) + 180,
		EndAngle:   angle(src, tgt),
	}.normalized()
}

func controlOffset(distance float64) float64 {
	if distance >= 0 {
		return 0.5 * distance
	}
	return bezierCurvature * 25 * math.Sqrt(-distance)
}

// controlPoint pushes p out along the side it faces, by an amount depending
// on how far the other end is in that direction.
func controlPoint(side diagram.Side, p, other diagram.Point) diagram.Point {
	switch side {
	case diagram.Left:
		return diagram.Point{X: p.X - controlOffset(p.X-other.X), Y: p.Y}
	case diagram.Right:
		return diagram.Point{X: p.X + controlOffset(other.X-p.X), Y: p.Y}
	case diagram.Top:
		return diagram.Point{X: p.X, Y: p.Y - controlOffset(p.Y-other.Y)}
	default:
		return diagram.Point{X: p.X, Y: p.Y + controlOffset(other.Y-p.Y)}
	}
}

func bezierPath(src diagram.Point, srcSide diagram.Side, tgt diagram.Point, tgtSide diagram.Side) EdgePath {
	c1 := controlPoint(srcSide, src, tgt)
	c2 := controlPoint(tgtSide, tgt, src)

	poly := make([]diagram.Point, 0, bezierSamples+1)
	for i := 0; i <= bezierSamples; i++ {
		poly = append(poly, cubicAt(src, c1, c2, tgt, float64(i)/bezierSamples))
	}

	// Tangent at the ends follows the control handles; fall back to the chord
	// when a handle collapses onto its endpoint.
	startDir, endDir := c1, c2
	if startDir == src {
		startDir = tgt
	}
	if endDir == tgt {
		endDir = src
	}
	return EdgePath{
		D:          fmt.Sprintf("M%s C%s %s %s", pt(src), pt(c1), pt(c2), pt(tgt)),
		Label:      cubicAt(src, c1, c2, tgt, 0.5),
		Polyline:   poly,
		StartAngle: angle(startDir, src),
		EndAngle:   angle(endDir, tgt),
	}.normalized()
}

func cubicAt(p0, p1, p2, p3 diagram.Point, t float64) diagram.Point {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return diagram.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

func sideDir(s diagram.Side) diagram.Point {
	switch s {
	case diagram.Left:
		return diagram.Point{X: -1}
	case diagram.Right:
		return diagram.Point{X: 1}
	case diagram.Top:
		return diagram.Point{Y: -1}
	default:
		return diagram.Point{Y: 1}
	}
}

func component(p diagram.Point, horizontal bool) float64 {
	if horizontal {
		return p.X
	}
	return p.Y
}

func setComponent(p *diagram.Point, horizontal bool, v float64) {
	if horizontal {
		p.X = v
	} else {
		p.Y = v
	}
}

// stepPoints lays out an orthogonal route: each end leaves its anchor by
// stepOffset in the direction it faces and the middle is joined with one or
// two right angle turns. Returns the points and the label position.
func stepPoints(src diagram.Point, srcSide diagram.Side, tgt diagram.Point, tgtSide diagram.Side) ([]diagram.Point, diagram.Point) {
	sDir, tDir := sideDir(srcSide), sideDir(tgtSide)
	sGap := diagram.Point{X: src.X + sDir.X*stepOffset, Y: src.Y + sDir.Y*stepOffset}
	tGap := diagram.Point{X: tgt.X + tDir.X*stepOffset, Y: tgt.Y + tDir.Y*stepOffset}

	// Main direction of travel between the gapped points.
	horizontal := srcSide == diagram.Left || srcSide == diagram.Right
	var cur float64
	if horizontal {
		cur = 1
		if sGap.X >= tGap.X {
			cur = -1
		}
	} else {
		cur = 1
		if sGap.Y >= tGap.Y {
			cur = -1
		}
	}

	var mids []diagram.Point
	var label diagram.Point
	var sOff, tOff diagram.Point

	if component(sDir, horizontal)*component(tDir, horizontal) == -1 {
		// Anchors face each other along the travel axis: split in the middle.
		cx := (src.X + tgt.X) / 2
		cy := (src.Y + tgt.Y) / 2
		vertical := []diagram.Point{{X: cx, Y: sGap.Y}, {X: cx, Y: tGap.Y}}
		horiz := []diagram.Point{{X: sGap.X, Y: cy}, {X: tGap.X, Y: cy}}
		if component(sDir, horizontal) == cur {
			if horizontal {
				mids = vertical
			} else {
				mids = horiz
			}
		} else {
			if horizontal {
				mids = horiz
			} else {
				mids = vertical
			}
		}
		label = diagram.Point{X: cx, Y: cy}
	} else {
		sourceTarget := []diagram.Point{{X: sGap.X, Y: tGap.Y}}
		targetSource := []diagram.Point{{X: tGap.X, Y: sGap.Y}}
		if horizontal {
			if sDir.X == cur {
				mids = targetSource
			} else {
				mids = sourceTarget
			}
		} else {
			if sDir.Y == cur {
				mids = sourceTarget
			} else {
				mids = targetSource
			}
		}

		if srcSide == tgtSide {
			// Same facing sides closer than the offset would fold the route back
			// onto itself; pull one gap point in.
			diff := math.Abs(component(src, horizontal) - component(tgt, horizontal))
			if diff <= stepOffset {
				gap := math.Min(stepOffset-1, stepOffset-diff)
				if component(sDir, horizontal) == cur {
					sign := 1.0
					if component(sGap, horizontal) > component(src, horizontal) {
						sign = -1
					}
					setComponent(&sOff, horizontal, sign*gap)
				} else {
					sign := 1.0
					if component(tGap, horizontal) > component(tgt, horizontal) {
						sign = -1
					}
					setComponent(&tOff, horizontal, sign*gap)
				}
			}
		} else {
			// Mixed sides, eg right -> bottom: pick the corner that keeps the
			// route outside both cards.
			sameDir := component(sDir, horizontal) == component(tDir, !horizontal)
			sGt := component(sGap, !horizontal) > component(tGap, !horizontal)
			sLt := component(sGap, !horizontal) < component(tGap, !horizontal)
			flip := (component(sDir, horizontal) == 1 && ((!sameDir && sGt) || (sameDir && sLt))) ||
				(component(sDir, horizontal) != 1 && ((!sameDir && sLt) || (sameDir && sGt)))
			if flip {
				if horizontal {
					mids = sourceTarget
				} else {
					mids = targetSource
				}
			}
		}

		sp := sGap.Add(sOff)
		tp := tGap.Add(tOff)
		maxX := math.Max(math.Abs(sp.X-mids[0].X), math.Abs(tp.X-mids[0].X))
		maxY := math.Max(math.Abs(sp.Y-mids[0].Y), math.Abs(tp.Y-mids[0].Y))
		// Label sits on the longest segment.
		if maxX >= maxY {
			label = diagram.Point{X: (sp.X + tp.X) / 2, Y: mids[0].Y}
		} else {
			label = diagram.Point{X: mids[0].X, Y: (sp.Y + tp.Y) / 2}
		}
	}

	points := make([]diagram.Point, 0, len(mids)+4)
	points = append(points, src, sGap.Add(sOff))
	points = append(points, mids...)
	points = append(points, tGap.Add(tOff), tgt)
	return points, label
}

func stepPath(src diagram.Point, srcSide diagram.Side, tgt diagram.Point, tgtSide diagram.Side, radius float64) EdgePath {
	points, label := stepPoints(src, srcSide, tgt, tgtSide)

	var sb strings.Builder
	for i, p := range points {
		switch {
		case i == 0:
			sb.WriteString("M" + pt(p))
		case i == len(points)-1:
			sb.WriteString(" L" + pt(p))
		default:
			sb.WriteString(bend(points[i-1], p, points[i+1], radius))
		}
	}
	n := len(points)
	return EdgePath{
		D:          sb.String(),
		Label:      label,
		Polyline:   points,
		StartAngle: angle(points[1], points[0]),
		EndAngle:   angle(points[n-2], points[n-1]),
	}.normalized()
}

// bend draws the corner at b between segments a-b and b-c. With a radius the
// corner is rounded by a quadratic curve no larger than half of either segment.
func bend(a, b, c diagram.Point, radius float64) string {
	size := math.Min(math.Min(dist(a, b)/2, dist(b, c)/2), radius)
	if (a.X == b.X && b.X == c.X) || (a.Y == b.Y && b.Y == c.Y) || size == 0 {
		return " L" + pt(b)
	}
	if a.Y == b.Y {
		xDir, yDir := 1.0, -1.0
		if a.X < c.X {
			xDir = -1
		}
		if a.Y < c.Y {
			yDir = 1
		}
		return fmt.Sprintf(" L%s Q%s %s",
			pt(diagram.Point{X: b.X + size*xDir, Y: b.Y}), pt(b), pt(diagram.Point{X: b.X, Y: b.Y + size*yDir}))
	}
	xDir, yDir := -1.0, 1.0
	if a.X < c.X {
		xDir = 1
	}
	if a.Y < c.Y {
		yDir = -1
	}
	return fmt.Sprintf(" L%s Q%s %s",
		pt(diagram.Point{X: b.X, Y: b.Y + size*yDir}), pt(b), pt(diagram.Point{X: b.X + size*xDir, Y: b.Y}))
}

func (p EdgePath) normalized() EdgePath {
	p.StartAngle = normAngle(p.StartAngle)
	p.EndAngle = normAngle(p.EndAngle)
	return p
}

// angle of the vector from a to b in degrees.
func angle(a, b diagram.Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

func normAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func dist(a, b diagram.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func segmentDistance(p, a, b diagram.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return dist(p, diagram.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// num formats a coordinate compactly: no trailing zeros, at most 2 decimals.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pt(p diagram.Point) string { return num(p.X) + "," + num(p.Y) }
