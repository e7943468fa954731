package astar

import (
	"context"
	"testing"

	"github.com/0x0FACED/gridai/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseMap builds a grid from rows of '.' (floor), '#' (wall) and digits
// (floor with that entering cost).
func parseMap(t *testing.T, rows ...string) *grid.Grid[byte] {
	t.Helper()
	g, err := grid.New[byte](len(rows[0]), len(rows))
	require.NoError(t, err)
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			require.NoError(t, g.Set(grid.Tile{X: x, Y: y}, row[x]))
		}
	}
	return g
}

func floor(b byte) bool { return b != '#' }

func digitCost(b byte) float64 {
	if b >= '1' && b <= '9' {
		return float64(b - '0')
	}
	return 1
}

func requireConnected(t *testing.T, h Heuristic[grid.Tile], p Path[grid.Tile]) {
	t.Helper()
	for i := 1; i < len(p.Nodes); i++ {
		require.Contains(t, h.Neighbors(p.Nodes[i-1]), p.Nodes[i])
	}
}

func TestOpenGrid(t *testing.T) {
	g := parseMap(t, ".....", ".....", ".....", ".....", ".....")
	h := NewGridHeuristic(g, floor)
	s := New[grid.Tile](h)
	s.Start(grid.Tile{}, grid.Tile{X: 4, Y: 4})

	p, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Found, s.State())
	assert.Len(t, p.Nodes, 9)
	assert.Equal(t, 8.0, p.Cost)
	assert.True(t, p.EndsAt(grid.Tile{X: 4, Y: 4}))
	head, _ := p.Head()
	assert.Equal(t, grid.Tile{}, head)
	requireConnected(t, h, p)
}

func TestDiagonalMoves(t *testing.T) {
	g := parseMap(t, ".....", ".....", ".....", ".....", ".....")
	h := NewGridHeuristic(g, floor)
	h.Diagonal = true
	s := New[grid.Tile](h)
	s.Start(grid.Tile{}, grid.Tile{X: 4, Y: 4})

	p, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, p.Nodes, 5)
	assert.Equal(t, 4.0, p.Cost)
}

func TestNoCornerCutting(t *testing.T) {
	g := parseMap(t,
		".#",
		"..",
	)
	h := NewGridHeuristic(g, floor)
	h.Diagonal = true
	assert.NotContains(t, h.Neighbors(grid.Tile{}), grid.Tile{X: 1, Y: 1})
	assert.Equal(t, []grid.Tile{{X: 0, Y: 1}}, h.Neighbors(grid.Tile{}))
}

func TestDetourAroundWall(t *testing.T) {
	g := parseMap(t,
		".....",
		"####.",
		".....",
	)
	h := NewGridHeuristic(g, floor)
	s := New[grid.Tile](h)
	s.Start(grid.Tile{}, grid.Tile{X: 0, Y: 2})

	p, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.Cost)
	assert.True(t, p.Reaches(grid.Tile{X: 4, Y: 1}))
	requireConnected(t, h, p)
}

func TestAvoidsExpensiveTiles(t *testing.T) {
	g := parseMap(t,
		"...",
		".9.",
		"...",
	)
	h := NewGridHeuristic(g, floor)
	h.TileCost = digitCost
	s := New[grid.Tile](h)
	s.Start(grid.Tile{X: 0, Y: 1}, grid.Tile{X: 2, Y: 1})

	p, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.0, p.Cost)
	assert.False(t, p.Reaches(grid.Tile{X: 1, Y: 1}))
}

func TestUnreachableTarget(t *testing.T) {
	g := parseMap(t,
		"..#..",
		"..#..",
	)
	s := New[grid.Tile](NewGridHeuristic(g, floor))
	s.Start(grid.Tile{}, grid.Tile{X: 4})

	_, err := s.Run(context.Background())
	require.ErrorIs(t, err, ErrNoPath)
	assert.Equal(t, Aborted, s.State())
	assert.Equal(t, 4, s.Expanded())
}

func TestSourceIsTarget(t *testing.T) {
	g := parseMap(t, "...")
	s := New[grid.Tile](NewGridHeuristic(g, floor))
	s.Start(grid.Tile{X: 1}, grid.Tile{X: 1})

	s.Step()
	assert.Equal(t, Found, s.State())
	assert.Equal(t, Path[grid.Tile]{Nodes: []grid.Tile{{X: 1}}, Cost: 0}, s.Path())
}

func TestStepByStep(t *testing.T) {
	g := parseMap(t, "......")
	s := New[grid.Tile](NewGridHeuristic(g, floor))
	assert.True(t, s.IsIdle())
	assert.Empty(t, s.Path().Nodes)

	s.Start(grid.Tile{}, grid.Tile{X: 5})
	steps := 0
	for !s.IsIdle() {
		s.Step()
		steps++
		if s.State() == Running {
			// the partial path ends at the node just expanded
			assert.Len(t, s.Path().Nodes, steps)
		}
	}
	assert.Equal(t, 6, steps)
	assert.Equal(t, 5, s.Expanded())

	s.Step()
	assert.Equal(t, Found, s.State(), "steps after the end do nothing")
}

func TestRunErrors(t *testing.T) {
	g := parseMap(t, "..........")
	s := New[grid.Tile](NewGridHeuristic(g, floor), WithLimit(3))

	_, err := s.Run(context.Background())
	require.ErrorIs(t, err, ErrNotStarted)

	s.Start(grid.Tile{}, grid.Tile{X: 9})
	_, err = s.Run(context.Background())
	require.ErrorIs(t, err, ErrLimit)
	assert.Equal(t, 3, s.Expanded())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Start(grid.Tile{}, grid.Tile{X: 9})
	_, err = s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

// graph is a weighted directed graph with a zero estimate.
type graph map[string]map[string]float64

func (g graph) Neighbors(n string) []string {
	var out []string
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		if _, ok := g[n][m]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (graph) Estimate(_, _ string) float64 { return 0 }

// Cost of entering a node: the graph below stores it on every incoming edge.
func (g graph) Cost(n string) float64 {
	for _, edges := range g {
		if c, ok := edges[n]; ok {
			return c
		}
	}
	return 0
}

func TestGenericGraph(t *testing.T) {
	g := graph{
		"a": {"b": 1, "c": 5},
		"b": {"d": 1},
		"c": {"e": 1},
		"d": {"e": 1},
	}
	s := New[string](g)
	s.Start("a", "e")

	p, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "e"}, p.Nodes)
	assert.Equal(t, 3.0, p.Cost)
	assert.Equal(t, "found", s.State().String())
}
