package voronoi

import (
	"math"
	"slices"
)

// Edge is a Voronoi edge between the cells of Left and Right. Va and Vb are
// NoVertex while the corresponding end is open.
type Edge struct {
	Left  Vertex
	Right Vertex
	Va    Vertex
	Vb    Vertex

	// the edge is origin + t*dir for t in [ta, tb]
	origin Vertex
	dir    Vertex
	ta, tb float64
}

// Open reports whether at least one end of the edge is unbounded.
func (e *Edge) Open() bool {
	return e.Va == NoVertex || e.Vb == NoVertex
}

func (e *Edge) param(v Vertex) float64 {
	d := v.sub(e.origin)
	return (d.X*e.dir.X + d.Y*e.dir.Y) / (e.dir.X*e.dir.X + e.dir.Y*e.dir.Y)
}

func (e *Edge) at(t float64) Vertex {
	return Vertex{e.origin.X + t*e.dir.X, e.origin.Y + t*e.dir.Y}
}

type traceRef struct {
	edge *Edge
	// tail traces grow towards Vb, head traces towards Va
	tail bool
}

// Collector is a Listener that assembles the emitted traces into edges. The
// two twin traces of an arc split end up on the same edge.
type Collector struct {
	Vertices []Vertex
	Edges    []*Edge

	byTrace map[TraceID]traceRef
}

func NewCollector() *Collector {
	return &Collector{byTrace: make(map[TraceID]traceRef)}
}

func (c *Collector) OnVertex(v Vertex) {
	c.Vertices = append(c.Vertices, v)
}

func (c *Collector) OnEdgeStart(t Trace) {
	if c.byTrace == nil {
		c.byTrace = make(map[TraceID]traceRef)
	}
	if t.Twin != NoTrace {
		if ref, ok := c.byTrace[t.Twin]; ok {
			c.byTrace[t.ID] = traceRef{edge: ref.edge, tail: !ref.tail}
			return
		}
	}

	origin := t.Start
	if origin == NoVertex {
		origin = midpoint(t.Left, t.Right)
	}
	e := &Edge{
		Left:   t.Left,
		Right:  t.Right,
		Va:     NoVertex,
		Vb:     NoVertex,
		origin: origin,
		dir:    t.Direction(),
		ta:     math.Inf(-1),
		tb:     math.Inf(1),
	}
	if t.AtVertex {
		e.Va = t.Start
		e.ta = 0
	}
	c.Edges = append(c.Edges, e)
	c.byTrace[t.ID] = traceRef{edge: e, tail: true}
}

func (c *Collector) OnEdgeEnd(id TraceID, end Vertex) {
	ref, ok := c.byTrace[id]
	if !ok {
		return
	}
	e := ref.edge
	if ref.tail {
		e.Vb = end
		e.tb = e.param(end)
	} else {
		e.Va = end
		e.ta = e.param(end)
	}
	// a breakpoint that ends where it started leaves no edge
	if e.Va == e.Vb {
		if i := slices.Index(c.Edges, e); i >= 0 {
			c.Edges = slices.Delete(c.Edges, i, i+1)
		}
	}
}
