// Package grid holds the tile coordinates, compass directions and dense
// rectangular storage shared by the tile-based algorithms.
//
// Coordinates follow screen conventions: X grows to the east, Y grows to the
// south.
package grid

import "fmt"

// Tile is an integer grid coordinate.
type Tile struct {
	X, Y int
}

func (t Tile) Add(o Tile) Tile { return Tile{t.X + o.X, t.Y + o.Y} }

func (t Tile) Sub(o Tile) Tile { return Tile{t.X - o.X, t.Y - o.Y} }

// Step moves one tile towards d.
func (t Tile) Step(d Direction) Tile { return t.Add(d.Offset()) }

// Manhattan returns the 4-connected distance to o.
func (t Tile) Manhattan(o Tile) int {
	return abs(t.X-o.X) + abs(t.Y-o.Y)
}

// Chebyshev returns the 8-connected distance to o.
func (t Tile) Chebyshev(o Tile) int {
	return max(abs(t.X-o.X), abs(t.Y-o.Y))
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the eight compass directions, or Center. The compass
// values are ordered clockwise starting at North.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Center
)

var offsets = [...]Tile{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
	Center:    {0, 0},
}

var names = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "C"}

// Offset returns the unit step of d.
func (d Direction) Offset() Tile {
	if d > Center {
		return Tile{}
	}
	return offsets[d]
}

// Spin rotates d by 45 degrees. Center does not rotate.
func (d Direction) Spin(clockwise bool) Direction {
	if d >= Center {
		return d
	}
	if clockwise {
		return (d + 1) % 8
	}
	return (d + 7) % 8
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	if d >= Center {
		return d
	}
	return (d + 4) % 8
}

func (d Direction) String() string {
	if d > Center {
		return fmt.Sprintf("Direction(%d)", d)
	}
	return names[d]
}

// Cardinals returns the four orthogonal directions.
func Cardinals() []Direction {
	return []Direction{North, East, South, West}
}

// All returns the eight compass directions, Center excluded.
func All() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}
