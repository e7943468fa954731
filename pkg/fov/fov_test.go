package fov

import (
	"math"
	"testing"

	"github.com/0x0FACED/gridai/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFieldIsADiamond(t *testing.T) {
	origin := grid.Tile{X: 3, Y: -2}
	seen := New(origin, 3).Compute()

	require.Len(t, seen, 25)
	for tile := range seen {
		assert.LessOrEqual(t, tile.Manhattan(origin), 3)
	}
}

func TestVisibleOrderIsByRing(t *testing.T) {
	origin := grid.Tile{}
	prev := 0
	first := true
	for tile := range New(origin, 4).Visible() {
		if first {
			assert.Equal(t, origin, tile)
			first = false
		}
		d := tile.Manhattan(origin)
		require.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestZeroDiagonal(t *testing.T) {
	assert.Equal(t, map[grid.Tile]bool{{X: 1, Y: 1}: true}, New(grid.Tile{X: 1, Y: 1}, 0).Compute())
}

func TestPillarCastsShadow(t *testing.T) {
	pillar := grid.Tile{X: 1}
	c := New(grid.Tile{}, 4, WithBlocker(func(t grid.Tile) bool { return t == pillar }))
	seen := c.Compute()

	assert.True(t, seen[pillar], "blockers are visible")
	for _, hidden := range []grid.Tile{{X: 2}, {X: 3}, {X: 4}, {X: 3, Y: 1}, {X: 3, Y: -1}} {
		assert.False(t, seen[hidden], "%v", hidden)
	}
	for _, visible := range []grid.Tile{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -4}, {Y: 4}, {X: 1, Y: 1}} {
		assert.True(t, seen[visible], "%v", visible)
	}
	assert.Len(t, seen, 41-5)
}

func TestClosedRoom(t *testing.T) {
	origin := grid.Tile{X: 5, Y: 5}
	walls := func(t grid.Tile) bool { return t.Chebyshev(origin) == 1 }
	seen := New(origin, 10, WithBlocker(walls)).Compute()

	require.Len(t, seen, 9)
	for tile := range seen {
		assert.LessOrEqual(t, tile.Chebyshev(origin), 1)
	}
}

func TestBounds(t *testing.T) {
	g, err := grid.New[bool](3, 3)
	require.NoError(t, err)
	seen := New(grid.Tile{}, 10, WithBounds(g)).Compute()
	assert.Len(t, seen, 9)

	assert.Empty(t, New(grid.Tile{X: -1}, 3, WithBounds(g)).Compute())
}

func TestRadiiWidenShadows(t *testing.T) {
	// two blockers leave a gap on the diagonal that thin rays slip through
	walls := map[grid.Tile]bool{{X: 1}: true, {Y: 1}: true}
	blocks := func(t grid.Tile) bool { return walls[t] }

	thin := New(grid.Tile{}, 6, WithBlocker(blocks), WithRadii(0, 0.1)).Compute()
	assert.True(t, thin[grid.Tile{X: 3, Y: 3}])
	assert.False(t, thin[grid.Tile{X: 4}])

	wide := New(grid.Tile{}, 6, WithBlocker(blocks), WithRadii(0.5, 0.5)).Compute()
	assert.True(t, wide[grid.Tile{X: 1}])
	assert.False(t, wide[grid.Tile{X: 2}], "blockers touching a wide source close every cone")
}

func TestEarlyStop(t *testing.T) {
	n := 0
	for range New(grid.Tile{}, 5).Visible() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestConeArithmetic(t *testing.T) {
	open := fullCircle()
	assert.InDelta(t, 2*math.Pi, open.width(), 1e-12)

	// a span across angle zero splits in two
	arcs := span(0, math.Pi/6)
	require.Len(t, arcs, 2)
	open = open.subtract(arcs)
	require.Len(t, open, 1)
	assert.InDelta(t, math.Pi/6, open[0].lo, 1e-12)
	assert.InDelta(t, 2*math.Pi-math.Pi/6, open[0].hi, 1e-12)

	assert.False(t, open.overlaps(span(0, math.Pi/12)))
	assert.True(t, open.overlaps(span(math.Pi, 0.01)))

	// splitting the middle leaves two cones
	open = open.subtract(span(math.Pi, 0.1))
	require.Len(t, open, 2)
	assert.Less(t, open[0].hi, open[1].lo)

	assert.Empty(t, open.subtract(span(0, math.Pi)))
	assert.InDelta(t, 3*math.Pi/2, normalize(-math.Pi/2), 1e-12)
}
