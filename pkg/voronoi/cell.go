package voronoi

import (
	"math"
	"sort"
)

type Cell struct {
	Site      Vertex
	Halfedges []*Halfedge
}

// Halfedge is one side of an Edge as seen from a cell.
type Halfedge struct {
	Cell  *Cell
	Edge  *Edge
	Angle float64
}

func newHalfedge(edge *Edge, cell *Cell, other Vertex) *Halfedge {
	return &Halfedge{
		Cell:  cell,
		Edge:  edge,
		Angle: math.Atan2(other.Y-cell.Site.Y, other.X-cell.Site.X),
	}
}

func (h *Halfedge) StartPoint() Vertex {
	if h.Edge.Left == h.Cell.Site {
		return h.Edge.Va
	}
	return h.Edge.Vb
}

func (h *Halfedge) EndPoint() Vertex {
	if h.Edge.Left == h.Cell.Site {
		return h.Edge.Vb
	}
	return h.Edge.Va
}

// prepare orders the half-edges around the site.
func (c *Cell) prepare() int {
	sort.SliceStable(c.Halfedges, func(i, j int) bool {
		return c.Halfedges[i].Angle > c.Halfedges[j].Angle
	})
	return len(c.Halfedges)
}

func buildCells(edges []*Edge, sites []Vertex) []*Cell {
	var cells []*Cell
	bySite := make(map[Vertex]*Cell)
	cell := func(site Vertex) *Cell {
		c := bySite[site]
		if c == nil {
			c = &Cell{Site: site}
			bySite[site] = c
			cells = append(cells, c)
		}
		return c
	}

	for _, s := range sites {
		cell(s)
	}
	for _, e := range edges {
		l, r := cell(e.Left), cell(e.Right)
		l.Halfedges = append(l.Halfedges, newHalfedge(e, l, e.Right))
		r.Halfedges = append(r.Halfedges, newHalfedge(e, r, e.Left))
	}
	for _, c := range cells {
		c.prepare()
	}
	return cells
}
