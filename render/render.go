// Package render draws packing results, as PNG images for a quick look and
// as SVG documents for further editing.
package render

import (
	"math"

	"github.com/osuushi/circpack"
	"github.com/osuushi/circpack/geom"
)

type Options struct {
	// Pixels per polygon unit. Zero fits the longest side of the polygon
	// into Size pixels.
	Scale float64
	Size  int
	// Blank border around the drawing, in pixels.
	Padding int
	// Draw the triangle edges under the circles.
	Mesh bool
}

func DefaultOptions() Options {
	return Options{Size: 800, Padding: 10, Mesh: true}
}

func (o Options) scaleFor(extent geom.Point) float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	size := o.Size
	if size <= 0 {
		size = DefaultOptions().Size
	}
	longest := math.Max(extent.X, extent.Y)
	if longest == 0 {
		return 1
	}
	return float64(size) / longest
}

type rgb struct {
	r, g, b float64
}

// Circles are coloured by depth, cycling through a small palette.
var depthColors = []rgb{
	{0.95, 0.77, 0.06},
	{0.90, 0.49, 0.13},
	{0.91, 0.30, 0.24},
	{0.61, 0.35, 0.71},
	{0.20, 0.60, 0.86},
	{0.10, 0.74, 0.61},
}

func colorFor(c circpack.Circle) rgb {
	return depthColors[c.Depth%len(depthColors)]
}
