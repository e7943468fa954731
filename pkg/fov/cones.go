package fov

import (
	"math"
	"slices"
)

const (
	fullTurn = 2 * math.Pi
	// arcs narrower than this are dropped, spans must overlap by more than it
	arcEpsilon = 1e-9
)

// arc is an angular interval [lo, hi] with 0 <= lo < hi <= 2π.
type arc struct {
	lo, hi float64
}

// cones is the set of angular intervals still open to rays, kept sorted and
// disjoint.
type cones []arc

func fullCircle() cones {
	return cones{{0, fullTurn}}
}

// normalize maps an angle into [0, 2π).
func normalize(a float64) float64 {
	a = math.Mod(a, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	return a
}

// span returns the arcs covered by the angle center±half, split at 0 when it
// wraps around.
func span(center, half float64) []arc {
	if half >= math.Pi {
		return []arc{{0, fullTurn}}
	}
	lo := normalize(center - half)
	hi := lo + 2*half
	if hi <= fullTurn {
		return []arc{{lo, hi}}
	}
	return []arc{{lo, fullTurn}, {0, hi - fullTurn}}
}

// overlaps reports whether any of the arcs intersects an open cone.
func (c cones) overlaps(arcs []arc) bool {
	for _, a := range arcs {
		for _, o := range c {
			if o.lo < a.hi-arcEpsilon && a.lo+arcEpsilon < o.hi {
				return true
			}
		}
	}
	return false
}

// subtract removes the arcs from the open cones, splitting cones that
// straddle them.
func (c cones) subtract(arcs []arc) cones {
	out := c
	for _, a := range arcs {
		next := make(cones, 0, len(out)+1)
		for _, o := range out {
			if a.hi <= o.lo || o.hi <= a.lo {
				next = append(next, o)
				continue
			}
			if a.lo-o.lo > arcEpsilon {
				next = append(next, arc{o.lo, a.lo})
			}
			if o.hi-a.hi > arcEpsilon {
				next = append(next, arc{a.hi, o.hi})
			}
		}
		out = next
	}
	slices.SortFunc(out, func(p, q arc) int {
		switch {
		case p.lo < q.lo:
			return -1
		case p.lo > q.lo:
			return 1
		}
		return 0
	})
	return out
}

// width sums the angular size of the open cones.
func (c cones) width() float64 {
	w := 0.0
	for _, o := range c {
		w += o.hi - o.lo
	}
	return w
}
