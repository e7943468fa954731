package bresenham

import (
	"slices"
	"testing"

	"github.com/0x0FACED/gridai/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepperDominantAxis(t *testing.T) {
	s := NewStepper(4, 2, 0)
	var total [3]int
	for i := 0; i < 4; i++ {
		step := s.Next()
		require.Len(t, step, 3)
		assert.Equal(t, 1, step[0], "dominant axis moves every step")
		total[0] += step[0]
		total[1] += step[1]
		total[2] += step[2]
	}
	assert.Equal(t, [3]int{4, 2, 0}, total)
}

func TestStepperZeroDirection(t *testing.T) {
	s := NewStepper(0, 0)
	assert.Equal(t, []int{0, 0}, s.Next())
}

func TestLineShapes(t *testing.T) {
	tests := []struct {
		name     string
		src, dst grid.Tile
		want     []grid.Tile
	}{
		{"point", grid.Tile{X: 2, Y: 2}, grid.Tile{X: 2, Y: 2}, []grid.Tile{{X: 2, Y: 2}}},
		{"horizontal", grid.Tile{}, grid.Tile{X: 3}, []grid.Tile{{}, {X: 1}, {X: 2}, {X: 3}}},
		{"vertical up", grid.Tile{Y: 2}, grid.Tile{}, []grid.Tile{{Y: 2}, {Y: 1}, {}}},
		{"diagonal", grid.Tile{}, grid.Tile{X: -2, Y: 2}, []grid.Tile{{}, {X: -1, Y: 1}, {X: -2, Y: 2}}},
		{"shallow", grid.Tile{}, grid.Tile{X: 4, Y: 2}, []grid.Tile{{}, {X: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.src, tt.dst))
		})
	}
}

func TestLineProperties(t *testing.T) {
	src := grid.Tile{X: -3, Y: 5}
	for dx := -7; dx <= 7; dx++ {
		for dy := -7; dy <= 7; dy++ {
			dst := src.Add(grid.Tile{X: dx, Y: dy})
			line := Line(src, dst)

			require.Equal(t, src, line[0])
			require.Equal(t, dst, line[len(line)-1])
			require.Len(t, line, src.Chebyshev(dst)+1)
			for i := 1; i < len(line); i++ {
				require.Equal(t, 1, line[i].Chebyshev(line[i-1]), "gap at %d towards %v", i, dst)
			}
		}
	}
}

func TestWalkerIdle(t *testing.T) {
	w := NewWalker()
	assert.True(t, w.IsIdle())
	_, ok := w.Next()
	assert.False(t, ok)

	w.Start(grid.Tile{}, grid.Tile{X: 1, Y: 1})
	assert.False(t, w.IsIdle())
	var got []grid.Tile
	for !w.IsIdle() {
		tile, ok := w.Next()
		require.True(t, ok)
		got = append(got, tile)
	}
	assert.Equal(t, []grid.Tile{{}, {X: 1, Y: 1}}, got)
}

func TestWalkStopsEarly(t *testing.T) {
	var got []grid.Tile
	for tile := range Walk(grid.Tile{}, grid.Tile{X: 10}) {
		if tile.X == 3 {
			break
		}
		got = append(got, tile)
	}
	assert.Len(t, got, 3)
	assert.Len(t, slices.Collect(Walk(grid.Tile{}, grid.Tile{X: 10})), 11)
}

func TestVisible(t *testing.T) {
	wall := grid.Tile{X: 2}
	blocks := func(t grid.Tile) bool { return t == wall }

	assert.False(t, Visible(grid.Tile{}, grid.Tile{X: 4}, blocks))
	assert.True(t, Visible(grid.Tile{}, wall, blocks), "the blocker itself is seen")
	assert.True(t, Visible(grid.Tile{}, grid.Tile{X: 4, Y: 3}, blocks))
}
