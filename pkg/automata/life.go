package automata

import (
	"github.com/0x0FACED/gridai/pkg/grid"
)

// Mortality is the state of a living tile. The zero value is Dead.
type Mortality uint8

const (
	Dead Mortality = iota
	Alive
	// Undead tiles are neither alive nor available: burned-out fire, walls.
	Undead
)

// Invert flips between life and death; Undead comes back Alive.
func (m Mortality) Invert() Mortality {
	if m == Alive {
		return Dead
	}
	return Alive
}

func (m Mortality) String() string {
	switch m {
	case Alive:
		return "alive"
	case Undead:
		return "undead"
	default:
		return "dead"
	}
}

// Bound is an inclusive range of live neighbour counts.
type Bound struct {
	Min, Max int
}

func (b Bound) contains(n int) bool { return b.Min <= n && n <= b.Max }

// Life is a life-like rule over the eight neighbours: a live tile survives
// while its live neighbour count is within Survive, any other tile is born
// when the count is within Birth.
type Life struct {
	Survive Bound
	Birth   Bound
}

// Conway returns B3/S23.
func Conway() Life {
	return Life{Survive: Bound{2, 3}, Birth: Bound{3, 3}}
}

func (Life) Radius() int { return 1 }

func (l Life) Update(a *Automaton[Mortality], t grid.Tile) Update {
	curr, _ := a.At(t)
	return &lifeUpdate{rule: l, a: a, tile: t, next: curr}
}

type lifeUpdate struct {
	rule Life
	a    *Automaton[Mortality]
	tile grid.Tile
	next Mortality
}

func (u *lifeUpdate) liveNeighbors() int {
	count := 0
	for n := range u.a.grid.Neighbors(u.tile, grid.All()) {
		if m, _ := u.a.At(n); m == Alive {
			count++
		}
	}
	return count
}

func (u *lifeUpdate) Compute() {
	n := u.liveNeighbors()
	if u.next == Alive {
		if !u.rule.Survive.contains(n) {
			u.next = Dead
		}
		return
	}
	if u.rule.Birth.contains(n) {
		u.next = Alive
	}
}

func (u *lifeUpdate) Resolve() bool {
	if m, _ := u.a.At(u.tile); m == u.next {
		return false
	}
	u.a.put(u.tile, u.next)
	return true
}
