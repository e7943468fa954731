package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"os"

	"github.com/0x0FACED/gridai/pkg/astar"
	"github.com/0x0FACED/gridai/pkg/automata"
	"github.com/0x0FACED/gridai/pkg/bresenham"
	"github.com/0x0FACED/gridai/pkg/fov"
	"github.com/0x0FACED/gridai/pkg/grid"
	"github.com/0x0FACED/gridai/pkg/logger"
	"github.com/0x0FACED/gridai/pkg/render"
	"github.com/0x0FACED/gridai/pkg/voronoi"
	"go.uber.org/zap"
)

var ErrUnknownKind = errors.New("unknown snapshot kind")

// Kinds lists the scenes snapshot can draw.
var Kinds = []string{"life", "sand", "fire", "fov", "path", "voronoi"}

type scene struct {
	Kind   string
	Width  int
	Height int
	Steps  int
	Seed   uint64
	Scale  int
	Sites  int
}

func (s scene) rng() *rand.Rand {
	return rand.New(rand.NewPCG(s.Seed, s.Seed^0x5851f42d4c957f2d))
}

// draw builds the scene and renders it to an image.
func draw(ctx context.Context, s scene, log *logger.ZapLogger) (image.Image, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, grid.ErrBadSize
	}
	if s.Scale <= 0 {
		return nil, render.ErrBadScale
	}
	log.Info("[snapshot] Drawing scene",
		zap.String("kind", s.Kind),
		zap.Int("width", s.Width),
		zap.Int("height", s.Height),
		zap.Int("steps", s.Steps),
		zap.Uint64("seed", s.Seed),
	)

	switch s.Kind {
	case "life":
		return drawLife(s, log)
	case "sand":
		return drawSand(s, log)
	case "fire":
		return drawFire(s, log)
	case "fov":
		return drawFOV(s, log)
	case "path":
		return drawPath(ctx, s, log)
	case "voronoi":
		return drawVoronoi(ctx, s, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
}

func asImage(img *image.NRGBA, err error) (image.Image, error) {
	if err != nil {
		return nil, err
	}
	return img, nil
}

func mortalityColor(_ grid.Tile, m automata.Mortality) color.Color { return render.Life(m) }

func drawLife(s scene, log *logger.ZapLogger) (image.Image, error) {
	g, err := grid.New[automata.Mortality](s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	rng := s.rng()
	for t := range g.Tiles() {
		if rng.Float64() < 0.3 {
			_ = g.Set(t, automata.Alive)
		}
	}

	a := automata.New[automata.Mortality](g, automata.Conway(), automata.WithSeed(s.Seed), automata.WithLogger(log))
	a.EnableAll()
	a.Run(s.Steps)
	return asImage(render.Tiles(g, mortalityColor, s.Scale))
}

func drawSand(s scene, log *logger.ZapLogger) (image.Image, error) {
	g, err := grid.New[automata.Mortality](s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	rng := s.rng()
	for t := range g.Tiles() {
		switch {
		case t.Y == s.Height-1:
			_ = g.Set(t, automata.Undead)
		case t.Y < s.Height/3 && rng.Float64() < 0.4:
			_ = g.Set(t, automata.Alive)
		}
	}
	// a ledge for the grains to pile up on
	for x := s.Width / 4; x < s.Width/2; x++ {
		_ = g.Set(grid.Tile{X: x, Y: s.Height * 2 / 3}, automata.Undead)
	}

	a := automata.New[automata.Mortality](g, automata.NewSand(), automata.WithSeed(s.Seed), automata.WithLogger(log))
	a.EnableAll()
	a.Run(s.Steps)
	return asImage(render.Tiles(g, mortalityColor, s.Scale))
}

func drawFire(s scene, log *logger.ZapLogger) (image.Image, error) {
	g, err := grid.New[automata.FireCell](s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	rng := s.rng()
	for t := range g.Tiles() {
		_ = g.Set(t, automata.FireCell{Fuel: 0.5 + rng.Float64()/2})
	}
	center := grid.Tile{X: s.Width / 2, Y: s.Height / 2}
	_ = g.Set(center, automata.FireCell{State: automata.Alive, Fuel: 1})

	a := automata.New[automata.FireCell](g, automata.DefaultFire(), automata.WithSeed(s.Seed), automata.WithLogger(log))
	a.Enable(center)
	a.Run(s.Steps)
	return asImage(render.Tiles(g, func(_ grid.Tile, c automata.FireCell) color.Color { return render.Fire(c) }, s.Scale))
}

// walls scatters blocking tiles over a grid, keeping keep free.
func walls(s scene, keep ...grid.Tile) (*grid.Grid[bool], error) {
	g, err := grid.New[bool](s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	rng := s.rng()
	for t := range g.Tiles() {
		_ = g.Set(t, rng.Float64() < 0.2)
	}
	for _, t := range keep {
		_ = g.Set(t, false)
	}
	return g, nil
}

func drawFOV(s scene, log *logger.ZapLogger) (image.Image, error) {
	origin := grid.Tile{X: s.Width / 2, Y: s.Height / 2}
	g, err := walls(s, origin)
	if err != nil {
		return nil, err
	}

	blocked := func(t grid.Tile) bool {
		v, _ := g.At(t)
		return v
	}
	seen := fov.New(origin, s.Width+s.Height,
		fov.WithBlocker(blocked),
		fov.WithBounds(g),
		fov.WithLogger(log),
	).Compute()

	return asImage(render.Tiles(g, func(t grid.Tile, wall bool) color.Color {
		switch {
		case t == origin:
			return render.Flame
		case wall && seen[t]:
			return render.Wall
		case wall:
			return render.Ash
		case seen[t]:
			return render.Lit
		}
		return render.Background
	}, s.Scale))
}

func drawPath(ctx context.Context, s scene, log *logger.ZapLogger) (image.Image, error) {
	src := grid.Tile{}
	dst := grid.Tile{X: s.Width - 1, Y: s.Height - 1}
	g, err := walls(s, src, dst)
	if err != nil {
		return nil, err
	}

	h := astar.NewGridHeuristic(g, func(wall bool) bool { return !wall })
	h.Diagonal = true
	search := astar.New[grid.Tile](h, astar.WithLogger(log))
	search.Start(src, dst)

	onPath := make(map[grid.Tile]bool)
	path, err := search.Run(ctx)
	switch {
	case errors.Is(err, astar.ErrNoPath):
		log.Warn("[snapshot] Target is walled off", zap.Stringer("target", dst))
	case err != nil:
		return nil, err
	}
	for _, t := range path.Nodes {
		onPath[t] = true
	}

	// the straight line of sight, for comparison
	onLine := make(map[grid.Tile]bool)
	for t := range bresenham.Walk(src, dst) {
		onLine[t] = true
	}

	return asImage(render.Tiles(g, func(t grid.Tile, wall bool) color.Color {
		switch {
		case onPath[t]:
			return render.Flame
		case wall:
			return render.Wall
		case onLine[t]:
			return render.Grain
		}
		return render.Background
	}, s.Scale))
}

func drawVoronoi(ctx context.Context, s scene, log *logger.ZapLogger) (image.Image, error) {
	w, h := s.Width*s.Scale, s.Height*s.Scale
	sites := randomSites(s.rng(), s.Sites, w, h)

	d, err := voronoi.CreateDiagram(ctx, sites, voronoi.NewBoundingBox(0, float64(w), 0, float64(h)), voronoi.WithLogger(log))
	if err != nil {
		return nil, err
	}

	img := render.Cells(sites, w, h)
	for _, e := range d.Edges {
		if e.Open() {
			continue
		}
		for t := range bresenham.Walk(pixel(e.Va), pixel(e.Vb)) {
			img.Set(t.X, t.Y, render.Lit)
		}
	}
	for _, site := range sites {
		img.Set(int(site.X), int(site.Y), render.Background)
	}
	return img, nil
}

func pixel(v voronoi.Vertex) grid.Tile {
	return grid.Tile{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

func writeSnapshot(ctx context.Context, s scene, path string, log *logger.ZapLogger) error {
	img, err := draw(ctx, s, log)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("[snapshot] Image written", zap.String("path", path))
	return nil
}
