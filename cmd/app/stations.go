package main

import (
	"math"
	"math/rand/v2"

	"github.com/0x0FACED/gridai/pkg/voronoi"
)

// randomSites scatters n sites with integer coordinates over the box.
func randomSites(rng *rand.Rand, n int, width, height int) []voronoi.Vertex {
	sites := make([]voronoi.Vertex, n)
	for i := range sites {
		sites[i] = voronoi.Vertex{
			X: float64(rng.IntN(width)),
			Y: float64(rng.IntN(height)),
		}
	}
	return sites
}

// gridSites lays n sites out row by row at the centers of a near-square
// lattice.
func gridSites(n int, width, height int) []voronoi.Vertex {
	if n <= 0 {
		return nil
	}
	sites := make([]voronoi.Vertex, 0, n)

	rows := max(1, int(math.Sqrt(float64(n))))
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	for i := 0; i < rows && len(sites) < n; i++ {
		for j := 0; j < cols && len(sites) < n; j++ {
			sites = append(sites, voronoi.Vertex{
				X: xStep/2 + float64(j)*xStep,
				Y: yStep/2 + float64(i)*yStep,
			})
		}
	}

	return sites
}
