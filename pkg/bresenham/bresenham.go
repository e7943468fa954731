// Package bresenham walks straight lines through integer lattices with
// Bresenham's error-accumulating stepper.
package bresenham

import (
	"iter"
	"math"

	"github.com/0x0FACED/gridai/pkg/grid"
)

// Stepper produces the unit steps of a line with the given direction in any
// number of dimensions. Every call to Next moves one unit along the dominant
// axis and at most one unit along each other axis.
type Stepper struct {
	dir  []float64
	err  []float64
	dMax float64
}

// NewStepper returns a stepper along dir. A zero direction never moves.
func NewStepper(dir ...float64) *Stepper {
	s := &Stepper{
		dir: append([]float64(nil), dir...),
		err: make([]float64, len(dir)),
	}
	for _, d := range dir {
		s.dMax = math.Max(s.dMax, math.Abs(d))
	}
	return s
}

// Next returns the step for each axis, each one of -1, 0 or 1.
func (s *Stepper) Next() []int {
	step := make([]int, len(s.dir))
	if s.dMax == 0 {
		return step
	}
	for i, d := range s.dir {
		e := s.err[i] + d
		if math.Abs(e) >= s.dMax {
			sign := 1.0
			if e < 0 {
				sign = -1
			}
			e -= sign * s.dMax
			step[i] = int(sign)
		}
		s.err[i] = e
	}
	return step
}

// Walker walks the tiles from a source to a target, both included.
type Walker struct {
	curr, last grid.Tile
	stepper    *Stepper
	idle       bool
}

// NewWalker returns an idle walker; call Start to begin.
func NewWalker() *Walker {
	return &Walker{idle: true}
}

func (w *Walker) Start(src, dst grid.Tile) {
	w.stepper = NewStepper(float64(dst.X-src.X), float64(dst.Y-src.Y))
	w.curr, w.last = src, dst
	w.idle = false
}

// IsIdle reports whether the target has been returned.
func (w *Walker) IsIdle() bool { return w.idle }

// Next returns the current tile and advances. It returns false once idle.
func (w *Walker) Next() (grid.Tile, bool) {
	if w.idle {
		return grid.Tile{}, false
	}
	t := w.curr
	if t == w.last {
		w.idle = true
		return t, true
	}
	step := w.stepper.Next()
	w.curr = w.curr.Add(grid.Tile{X: step[0], Y: step[1]})
	return t, true
}

// Walk yields the tiles of the line from src to dst, both included.
func Walk(src, dst grid.Tile) iter.Seq[grid.Tile] {
	return func(yield func(grid.Tile) bool) {
		w := NewWalker()
		w.Start(src, dst)
		for {
			t, ok := w.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

// Line collects Walk into a slice.
func Line(src, dst grid.Tile) []grid.Tile {
	n := max(abs(dst.X-src.X), abs(dst.Y-src.Y)) + 1
	out := make([]grid.Tile, 0, n)
	for t := range Walk(src, dst) {
		out = append(out, t)
	}
	return out
}

// Visible reports whether no tile strictly between src and dst blocks.
func Visible(src, dst grid.Tile, blocks func(grid.Tile) bool) bool {
	for t := range Walk(src, dst) {
		if t != src && t != dst && blocks(t) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
