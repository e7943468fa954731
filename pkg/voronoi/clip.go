package voronoi

import "math"

// Bounding Box
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

// Create new Bounding Box
func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

func (b BoundingBox) valid() bool {
	return b.Xl < b.Xr && b.Yt < b.Yb
}

func (b BoundingBox) Contains(v Vertex) bool {
	return v.X >= b.Xl && v.X <= b.Xr && v.Y >= b.Yt && v.Y <= b.Yb
}

// clamp pulls a point cut on a side of the box back onto that side; the
// parametric cut can land a rounding error outside.
func (b BoundingBox) clamp(v Vertex) Vertex {
	return Vertex{min(max(v.X, b.Xl), b.Xr), min(max(v.Y, b.Yt), b.Yb)}
}

// Diagram is a finished, clipped diagram.
type Diagram struct {
	Vertices []Vertex
	Edges    []*Edge
	Cells    []*Cell
}

// clipLine restricts origin + t*dir, t in [t0, t1], to the box (Liang–Barsky).
// Either bound may be infinite.
func clipLine(origin, dir Vertex, t0, t1 float64, bbox BoundingBox) (float64, float64, bool) {
	checks := [4][2]float64{
		{-dir.X, origin.X - bbox.Xl}, // left
		{dir.X, bbox.Xr - origin.X},  // right
		{-dir.Y, origin.Y - bbox.Yt}, // top
		{dir.Y, bbox.Yb - origin.Y},  // bottom
	}
	for _, c := range checks {
		p, q := c[0], c[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, false
			} else if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, false
			} else if r < t1 {
				t1 = r
			}
		}
	}
	if math.IsInf(t0, 0) || math.IsInf(t1, 0) {
		return 0, 0, false
	}
	return t0, t1, t0 <= t1
}

// Clip closes the open edges collected so far against bbox and drops edges
// that fall outside it. The collector is left untouched. Cells are created for
// every site on an edge plus the given sites.
func (c *Collector) Clip(bbox BoundingBox, sites ...Vertex) (*Diagram, error) {
	if !bbox.valid() {
		return nil, ErrBadBoundingBox
	}

	d := &Diagram{}
	for _, v := range c.Vertices {
		if bbox.Contains(v) {
			d.Vertices = append(d.Vertices, v)
		}
	}

	for _, src := range c.Edges {
		if src.dir.X == 0 && src.dir.Y == 0 {
			continue
		}
		t0, t1, ok := clipLine(src.origin, src.dir, src.ta, src.tb, bbox)
		if !ok {
			continue
		}
		e := *src
		e.ta, e.tb = t0, t1
		if t0 != src.ta || src.Va == NoVertex {
			e.Va = bbox.clamp(e.at(t0))
		}
		if t1 != src.tb || src.Vb == NoVertex {
			e.Vb = bbox.clamp(e.at(t1))
		}
		if equalWithEpsilon(e.Va.X, e.Vb.X) && equalWithEpsilon(e.Va.Y, e.Vb.Y) {
			continue
		}
		d.Edges = append(d.Edges, &e)
	}

	d.Cells = buildCells(d.Edges, sites)
	return d, nil
}
