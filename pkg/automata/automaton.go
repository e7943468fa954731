// Package automata runs cellular automata over a grid.Grid. Only the active
// tiles are visited in a generation: a tile that changes wakes up its
// neighbourhood for the next one.
package automata

import (
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/0x0FACED/gridai/pkg/grid"
	"github.com/0x0FACED/gridai/pkg/logger"
	"go.uber.org/zap"
)

// Update is the pending change of one tile during a generation. Compute reads
// the grid; Resolve writes it and reports whether the neighbourhood of the
// tile must be visited again.
type Update interface {
	Compute()
	Resolve() bool
}

// Rule creates the update of a tile.
type Rule[S any] interface {
	// Radius is the Chebyshev radius woken up around a changed tile.
	Radius() int
	Update(a *Automaton[S], t grid.Tile) Update
}

// Preparer is implemented by rules that keep scratch state for the duration
// of one generation.
type Preparer interface {
	Prepare()
}

// Automaton steps a rule over a grid, one generation per Step.
type Automaton[S any] struct {
	grid   *grid.Grid[S]
	rule   Rule[S]
	active map[grid.Tile]struct{}
	gen    int
	rng    *rand.Rand

	Logger *logger.ZapLogger
}

type options struct {
	seed   uint64
	logger *logger.ZapLogger
}

// Option configures an Automaton.
type Option func(*options)

// WithSeed seeds the random source handed to stochastic rules.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns an automaton applying rule to g. No tile is active yet.
func New[S any](g *grid.Grid[S], rule Rule[S], opts ...Option) *Automaton[S] {
	o := options{seed: 1, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Automaton[S]{
		grid:   g,
		rule:   rule,
		active: make(map[grid.Tile]struct{}),
		rng:    rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)),
		Logger: o.logger,
	}
}

func (a *Automaton[S]) Grid() *grid.Grid[S] { return a.grid }

// Rand is the automaton's random source.
func (a *Automaton[S]) Rand() *rand.Rand { return a.rng }

// Generation counts the completed steps.
func (a *Automaton[S]) Generation() int { return a.gen }

// At returns the state at t; ok is false outside the grid.
func (a *Automaton[S]) At(t grid.Tile) (S, bool) { return a.grid.At(t) }

// put writes a resolved state. Updates only target active tiles and
// neighbours found with At, so t is inside the grid.
func (a *Automaton[S]) put(t grid.Tile, v S) {
	if err := a.grid.Set(t, v); err != nil {
		a.Logger.Error("[auto-resolve] Update outside the grid", zap.Error(err))
	}
}

// Enable activates t and its neighbourhood.
func (a *Automaton[S]) Enable(t grid.Tile) {
	enable(a.active, a.grid, t, a.rule.Radius())
}

// EnableAll activates every tile.
func (a *Automaton[S]) EnableAll() {
	for t := range a.grid.Tiles() {
		a.active[t] = struct{}{}
	}
}

// Active returns the number of tiles visited by the next Step.
func (a *Automaton[S]) Active() int { return len(a.active) }

// IsIdle reports whether no tile is active.
func (a *Automaton[S]) IsIdle() bool { return len(a.active) == 0 }

// Step computes the update of every active tile, then resolves them all.
func (a *Automaton[S]) Step() {
	if a.IsIdle() {
		return
	}
	if p, ok := a.rule.(Preparer); ok {
		p.Prepare()
	}

	tiles := slices.SortedFunc(maps.Keys(a.active), func(p, q grid.Tile) int {
		if p.Y != q.Y {
			return p.Y - q.Y
		}
		return p.X - q.X
	})
	updates := make([]Update, len(tiles))
	for i, t := range tiles {
		updates[i] = a.rule.Update(a, t)
		updates[i].Compute()
	}

	next := make(map[grid.Tile]struct{})
	changed := 0
	for i, u := range updates {
		if u.Resolve() {
			changed++
			enable(next, a.grid, tiles[i], a.rule.Radius())
		}
	}
	a.active = next
	a.gen++
	a.Logger.Debug("[auto-step] Generation resolved",
		zap.Int("generation", a.gen),
		zap.Int("visited", len(tiles)),
		zap.Int("changed", changed),
	)
}

// Run steps until idle or until limit generations have passed; limit <= 0
// means no limit. It returns the number of steps taken.
func (a *Automaton[S]) Run(limit int) int {
	n := 0
	for !a.IsIdle() && (limit <= 0 || n < limit) {
		a.Step()
		n++
	}
	return n
}

func enable[S any](set map[grid.Tile]struct{}, g *grid.Grid[S], t grid.Tile, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			n := grid.Tile{X: t.X + dx, Y: t.Y + dy}
			if g.Contains(n) {
				set[n] = struct{}{}
			}
		}
	}
}
