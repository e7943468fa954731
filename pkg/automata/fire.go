package automata

import (
	"math"

	"github.com/0x0FACED/gridai/pkg/grid"
)

// FireCell is a tile of a burning landscape. Alive tiles are on fire, Undead
// tiles have burned out.
type FireCell struct {
	State Mortality
	Fuel  float64
}

// Fire spreads flames to neighbours with probability Spread per burning
// neighbour. A burning tile averages its fuel with the fuel of the neighbours
// that ignited it and loses Burn per generation; it burns out at zero.
type Fire struct {
	Spread float64
	Burn   float64
}

// DefaultFire spreads with probability 0.3 and burns 0.1 fuel per generation.
func DefaultFire() Fire {
	return Fire{Spread: 0.3, Burn: 0.1}
}

func (Fire) Radius() int { return 1 }

func (f Fire) Update(a *Automaton[FireCell], t grid.Tile) Update {
	c, _ := a.At(t)
	return &fireUpdate{rule: f, a: a, tile: t, next: c}
}

type fireUpdate struct {
	rule Fire
	a    *Automaton[FireCell]
	tile grid.Tile
	next FireCell
}

func (u *fireUpdate) Compute() {
	if u.next.State == Undead {
		u.next.Fuel = 0
		return
	}

	count := 1
	for n := range u.a.grid.Neighbors(u.tile, grid.All()) {
		c, _ := u.a.At(n)
		if c.State != Alive {
			continue
		}
		if u.a.rng.Float64() < u.rule.Spread {
			u.next.State = Alive
			u.next.Fuel += c.Fuel
			count++
		}
	}

	if u.next.State == Alive {
		u.next.Fuel = math.Max(0, u.next.Fuel/float64(count)-u.rule.Burn)
		if u.next.Fuel <= 0 {
			u.next.State = Undead
		}
	}
}

func (u *fireUpdate) Resolve() bool {
	u.a.put(u.tile, u.next)
	return u.next.State == Alive
}

// Regrow refills the fuel of burned tiles by Rate per generation and lets them
// return to Dead once full.
type Regrow struct {
	Rate float64
}

func (Regrow) Radius() int { return 0 }

func (r Regrow) Update(a *Automaton[FireCell], t grid.Tile) Update {
	c, _ := a.At(t)
	return &regrowUpdate{rate: r.Rate, a: a, tile: t, curr: c}
}

type regrowUpdate struct {
	rate   float64
	a      *Automaton[FireCell]
	tile   grid.Tile
	curr   FireCell
	revive bool
}

func (u *regrowUpdate) Compute() {
	u.revive = u.curr.State == Undead
}

func (u *regrowUpdate) Resolve() bool {
	if u.curr.Fuel < 1 {
		u.curr.Fuel = min(1, max(0, u.curr.Fuel+u.rate))
		u.a.put(u.tile, u.curr)
		return true
	}
	if u.revive {
		u.curr.State = Dead
		u.a.put(u.tile, u.curr)
	}
	return false
}
