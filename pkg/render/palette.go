package render

import (
	"image/color"

	"github.com/0x0FACED/gridai/pkg/automata"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Base colours of the snapshots.
var (
	Background = mustHex("#1f1f1f")
	Wall       = mustHex("#757575")
	Grain      = mustHex("#e0c068")
	Flame      = mustHex("#ff5a1f")
	Ash        = mustHex("#3a3a3a")
	Forest     = mustHex("#2f7d32")
	Lit        = mustHex("#d3d3d3")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette returns n distinct colours with evenly spaced hues and equal
// perceived lightness.
func Palette(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		h := 360 * float64(i) / float64(n)
		out[i] = colorful.Hcl(h, 0.5, 0.7).Clamped()
	}
	return out
}

// Blend mixes from and to in Lab space; t is clamped to [0, 1].
func Blend(from, to colorful.Color, t float64) color.Color {
	return from.BlendLab(to, min(1, max(0, t))).Clamped()
}

// Life colours a life or sand tile.
func Life(m automata.Mortality) color.Color {
	switch m {
	case automata.Alive:
		return Grain
	case automata.Undead:
		return Wall
	}
	return Background
}

// Fire colours burning tiles by their fuel and unburned tiles by the fuel
// left to them.
func Fire(c automata.FireCell) color.Color {
	switch c.State {
	case automata.Alive:
		return Blend(Ash, Flame, 0.4+0.6*c.Fuel)
	case automata.Undead:
		return Ash
	}
	return Blend(Background, Forest, c.Fuel)
}
