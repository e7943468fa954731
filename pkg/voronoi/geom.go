package voronoi

import (
	"math"
)

// Vertex is a point in the plane. Sites and diagram vertices share the type.
type Vertex struct {
	X float64
	Y float64
}

// NoVertex marks an unknown or open endpoint.
var NoVertex = Vertex{math.Inf(1), math.Inf(1)}

func (v Vertex) sub(o Vertex) Vertex { return Vertex{v.X - o.X, v.Y - o.Y} }

func (v Vertex) dist(o Vertex) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

func (v Vertex) finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// turnEpsilon is the smallest doubled triangle area still counted as a turn.
const turnEpsilon = 2e-12

// turn returns the cross product of (a-b) and (c-b). A negative value is a
// clockwise turn a→b→c in the sweep frame (y grows downwards), the only
// orientation in which the arc of b gets squeezed out of the beach line.
func turn(a, b, c Vertex) float64 {
	ax, ay := a.X-b.X, a.Y-b.Y
	cx, cy := c.X-b.X, c.Y-b.Y
	return ax*cy - ay*cx
}

// circumcircle returns the circle through a, b and c. ok is false for
// collinear or coincident points.
func circumcircle(a, b, c Vertex) (center Vertex, radius float64, ok bool) {
	ax, ay := a.X-b.X, a.Y-b.Y
	cx, cy := c.X-b.X, c.Y-b.Y

	d := 2 * (ax*cy - ay*cx)
	if math.Abs(d) <= turnEpsilon {
		return NoVertex, 0, false
	}

	ha := ax*ax + ay*ay
	hc := cx*cx + cy*cy
	x := (cy*ha - ay*hc) / d
	y := (ax*hc - cx*ha) / d

	return Vertex{x + b.X, y + b.Y}, math.Sqrt(x*x + y*y), true
}

// convergence applies the Delete-candidate filter to a triple of consecutive
// arc sites: the triple must turn clockwise and have a circumcircle. It
// returns the circle and the sweep coordinate at which the middle arc vanishes.
func convergence(l, m, r Vertex) (center Vertex, radius, fireY float64, ok bool) {
	if l == r {
		return NoVertex, 0, 0, false
	}
	if 2*turn(l, m, r) >= -turnEpsilon {
		return NoVertex, 0, 0, false
	}
	center, radius, ok = circumcircle(l, m, r)
	if !ok {
		return NoVertex, 0, 0, false
	}
	return center, radius, center.Y + radius, true
}

// breakpointX returns the x-position, at sweep coordinate directrix, of the
// intersection between the parabola of left and the parabola of right, where
// left's arc lies immediately to the left of right's arc.
func breakpointX(left, right Vertex, directrix float64) float64 {
	pby2 := right.Y - directrix
	// the right parabola has degenerated into a vertical ray
	if pby2 == 0 {
		return right.X
	}
	plby2 := left.Y - directrix
	if plby2 == 0 {
		return left.X
	}
	// equal foci heights give equal parabolas shifted in x
	if left.Y == right.Y {
		return (left.X + right.X) / 2
	}

	hl := left.X - right.X
	aby2 := 1/pby2 - 1/plby2
	b := hl / plby2
	disc := b*b - 2*aby2*(hl*hl/(-2*plby2)-left.Y+plby2/2+right.Y-pby2/2)
	return (-b+math.Sqrt(math.Max(disc, 0)))/aby2 + right.X
}

// parabolaPoint returns the point of the parabola with the given focus and
// directrix that lies above x. It is NoVertex when the parabola is degenerate.
func parabolaPoint(focus Vertex, x, directrix float64) Vertex {
	p := focus.Y - directrix
	if p == 0 {
		return NoVertex
	}
	dx := x - focus.X
	return Vertex{x, (dx*dx + focus.Y*focus.Y - directrix*directrix) / (2 * p)}
}

// traceDirection is the direction in which the breakpoint between the arcs of
// left and right moves as the sweep advances.
func traceDirection(left, right Vertex) Vertex {
	return Vertex{-(right.Y - left.Y), right.X - left.X}
}

func midpoint(a, b Vertex) Vertex {
	return Vertex{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

func equalWithEpsilon(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
