package grid

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrBadSize indicates a grid with a non-positive dimension.
	ErrBadSize = errors.New("grid: width and height must be positive")
	// ErrOutOfBounds indicates a tile outside the grid.
	ErrOutOfBounds = errors.New("grid: tile out of bounds")
)

// Grid is dense rectangular storage indexed by Tile. The zero value is
// unusable; create grids with New.
type Grid[T any] struct {
	width, height int
	cells         []T
}

// New allocates a width×height grid of zero values.
func New[T any](width, height int) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	return &Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}, nil
}

func (g *Grid[T]) Width() int  { return g.width }
func (g *Grid[T]) Height() int { return g.height }

// Contains reports whether t lies within the grid.
func (g *Grid[T]) Contains(t Tile) bool {
	return t.X >= 0 && t.X < g.width && t.Y >= 0 && t.Y < g.height
}

func (g *Grid[T]) index(t Tile) int {
	return t.Y*g.width + t.X
}

// At returns the value stored at t; ok is false outside the grid.
func (g *Grid[T]) At(t Tile) (v T, ok bool) {
	if !g.Contains(t) {
		return v, false
	}
	return g.cells[g.index(t)], true
}

// Set stores v at t.
func (g *Grid[T]) Set(t Tile, v T) error {
	if !g.Contains(t) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, t)
	}
	g.cells[g.index(t)] = v
	return nil
}

// Fill stores v in every tile.
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Tiles yields every tile in row-major order.
func (g *Grid[T]) Tiles() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				if !yield(Tile{x, y}) {
					return
				}
			}
		}
	}
}

// Neighbors yields the in-bounds neighbours of t along dirs.
func (g *Grid[T]) Neighbors(t Tile, dirs []Direction) iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for _, d := range dirs {
			n := t.Step(d)
			if g.Contains(n) && !yield(n) {
				return
			}
		}
	}
}

// Clone returns an independent copy of g.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{width: g.width, height: g.height, cells: make([]T, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}
