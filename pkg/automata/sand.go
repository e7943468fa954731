package automata

import (
	"github.com/0x0FACED/gridai/pkg/grid"
)

// Sand lets Alive grains fall along Gravity, sliding diagonally when the tile
// straight ahead is taken. Dead tiles are empty, Undead tiles are walls. Two
// grains never move into the same tile in one generation.
type Sand struct {
	Gravity grid.Direction

	reserved map[grid.Tile]struct{}
}

// NewSand returns a sand rule falling south.
func NewSand() *Sand {
	return &Sand{Gravity: grid.South}
}

func (*Sand) Radius() int { return 1 }

// Prepare drops the reservations of the previous generation.
func (s *Sand) Prepare() {
	if s.reserved == nil {
		s.reserved = make(map[grid.Tile]struct{})
	}
	clear(s.reserved)
}

func (s *Sand) Update(a *Automaton[Mortality], t grid.Tile) Update {
	return &sandUpdate{rule: s, a: a, src: t}
}

// directions returns the fall direction followed by the two diagonals in
// random order.
func (s *Sand) directions(a *Automaton[Mortality]) [3]grid.Direction {
	dirs := [3]grid.Direction{s.Gravity, s.Gravity.Spin(true), s.Gravity.Spin(false)}
	if a.rng.IntN(2) == 0 {
		dirs[1], dirs[2] = dirs[2], dirs[1]
	}
	return dirs
}

type sandUpdate struct {
	rule   *Sand
	a      *Automaton[Mortality]
	src    grid.Tile
	tgt    grid.Tile
	moving bool
}

func (u *sandUpdate) Compute() {
	if m, _ := u.a.At(u.src); m != Alive {
		return
	}
	for _, d := range u.rule.directions(u.a) {
		n := u.src.Step(d)
		m, ok := u.a.At(n)
		if !ok || m != Dead {
			continue
		}
		if _, taken := u.rule.reserved[n]; taken {
			continue
		}
		u.rule.reserved[n] = struct{}{}
		u.tgt, u.moving = n, true
		return
	}
}

func (u *sandUpdate) Resolve() bool {
	if !u.moving {
		return false
	}
	u.a.put(u.src, Dead)
	u.a.put(u.tgt, Alive)
	return true
}
