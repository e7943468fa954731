// Package render turns diagrams and grids into echarts pages and PNG images.
package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/0x0FACED/gridai/pkg/grid"
	"github.com/0x0FACED/gridai/pkg/voronoi"
	"github.com/disintegration/imaging"
)

var ErrBadScale = errors.New("render: scale must be positive")

// Tiles paints one pixel per tile with colorOf and upscales the image by scale
// without smoothing.
func Tiles[T any](g *grid.Grid[T], colorOf func(grid.Tile, T) color.Color, scale int) (*image.NRGBA, error) {
	if scale <= 0 {
		return nil, ErrBadScale
	}
	img := imaging.New(g.Width(), g.Height(), Background)
	for t := range g.Tiles() {
		v, _ := g.At(t)
		img.Set(t.X, t.Y, colorOf(t, v))
	}
	if scale == 1 {
		return img, nil
	}
	return imaging.Resize(img, g.Width()*scale, g.Height()*scale, imaging.NearestNeighbor), nil
}

// Cells paints every pixel of a width x height image with the colour of the
// nearest site, so the Voronoi cells show up as flat regions.
func Cells(sites []voronoi.Vertex, width, height int) *image.NRGBA {
	img := imaging.New(width, height, Background)
	if len(sites) == 0 {
		return img
	}
	colors := Palette(len(sites))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := voronoi.Vertex{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			best, bestDist := 0, -1.0
			for i, s := range sites {
				dx, dy := s.X-p.X, s.Y-p.Y
				if d := dx*dx + dy*dy; bestDist < 0 || d < bestDist {
					best, bestDist = i, d
				}
			}
			img.Set(x, y, colors[best])
		}
	}
	return img
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// DataURI encodes img as a base64 PNG data URI for inline <img> tags.
func DataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
