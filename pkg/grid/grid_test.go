package grid

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		_, err := New[int](size[0], size[1])
		require.ErrorIs(t, err, ErrBadSize)
	}
}

func TestGridAccess(t *testing.T) {
	g, err := New[int](3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())

	require.NoError(t, g.Set(Tile{2, 1}, 7))
	v, ok := g.At(Tile{2, 1})
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = g.At(Tile{3, 0})
	assert.False(t, ok)
	require.ErrorIs(t, g.Set(Tile{-1, 0}, 1), ErrOutOfBounds)

	c := g.Clone()
	g.Fill(1)
	v, _ = c.At(Tile{2, 1})
	assert.Equal(t, 7, v, "clone is independent")
	v, _ = g.At(Tile{0, 0})
	assert.Equal(t, 1, v)
}

func TestTilesRowMajor(t *testing.T) {
	g, _ := New[bool](2, 2)
	assert.Equal(t, []Tile{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, slices.Collect(g.Tiles()))

	var first []Tile
	for tile := range g.Tiles() {
		first = append(first, tile)
		if len(first) == 3 {
			break
		}
	}
	assert.Len(t, first, 3)
}

func TestNeighbors(t *testing.T) {
	g, _ := New[int](3, 3)
	corner := slices.Collect(g.Neighbors(Tile{0, 0}, All()))
	assert.ElementsMatch(t, []Tile{{1, 0}, {1, 1}, {0, 1}}, corner)

	middle := slices.Collect(g.Neighbors(Tile{1, 1}, Cardinals()))
	assert.Equal(t, []Tile{{1, 0}, {2, 1}, {1, 2}, {0, 1}}, middle)
}

func TestTileDistances(t *testing.T) {
	a, b := Tile{1, 2}, Tile{4, -2}
	assert.Equal(t, 7, a.Manhattan(b))
	assert.Equal(t, 4, a.Chebyshev(b))
	assert.Equal(t, Tile{5, 0}, a.Add(b))
	assert.Equal(t, Tile{-3, 4}, a.Sub(b))
	assert.Equal(t, "(1,2)", a.String())
}

func TestDirectionSpin(t *testing.T) {
	assert.Equal(t, SouthWest, South.Spin(true))
	assert.Equal(t, SouthEast, South.Spin(false))
	assert.Equal(t, North, NorthWest.Spin(true))
	assert.Equal(t, NorthWest, North.Spin(false))
	assert.Equal(t, Center, Center.Spin(true))

	for _, d := range All() {
		assert.Equal(t, d, d.Spin(true).Spin(false))
		o := d.Offset().Add(d.Opposite().Offset())
		assert.Equal(t, Tile{}, o, "%v", d)
	}
	assert.Equal(t, Tile{0, 1}, South.Offset())
	assert.Equal(t, "NE", NorthEast.String())
}
