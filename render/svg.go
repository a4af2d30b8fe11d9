package render

import (
	"fmt"
	"io"
	"strings"

	jgeom "github.com/jbeda/geom"
	"github.com/osuushi/circpack"
	"github.com/osuushi/circpack/geom"
)

// SVG serialization helper. The first write error sticks and every later
// write is skipped.
type svgWriter struct {
	writer io.Writer
	err    error
}

func (svg *svgWriter) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

func (svg *svgWriter) Start(viewBox jgeom.Rect) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg">
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
}

func (svg *svgWriter) End() {
	svg.printf("</svg>\n")
}

func (svg *svgWriter) Polygon(points []jgeom.Coord, style string) {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%f,%f", p.X, p.Y)
	}
	svg.printf("<polygon points='%s' style='%s'/>\n", strings.Join(coords, " "), style)
}

func (svg *svgWriter) Circle(c jgeom.Coord, r float64, style string) {
	svg.printf("<circle cx='%f' cy='%f' r='%f' style='%s'/>\n", c.X, c.Y, r, style)
}

// SVG coordinates grow downwards, so y is negated.
func coord(p geom.Point) jgeom.Coord {
	return jgeom.Coord{X: p.X, Y: -p.Y}
}

func coords(points []geom.Point) []jgeom.Coord {
	result := make([]jgeom.Coord, len(points))
	for i, p := range points {
		result[i] = coord(p)
	}
	return result
}

// SVG writes the polygon, the mesh when opts.Mesh is set and the circles as
// an SVG document in polygon units.
func SVG(w io.Writer, result *circpack.Result, opts Options) error {
	points := result.Polygon.Points()
	bounds := jgeom.Rect{Min: coord(points[0]), Max: coord(points[0])}
	for _, p := range points[1:] {
		bounds.ExpandToContainCoord(coord(p))
	}
	// Pad by the same share of the drawing that the PNG padding would take
	margin := float64(opts.Padding) / opts.scaleFor(result.Polygon.Bounds().Size())
	bounds.Min.X -= margin
	bounds.Min.Y -= margin
	bounds.Max.X += margin
	bounds.Max.Y += margin

	svg := &svgWriter{writer: w}
	svg.Start(bounds)
	svg.Polygon(coords(points), "fill:#1a2633;stroke:#00ffff;stroke-width:0.2%")
	if opts.Mesh {
		for i := 0; i < result.Mesh.Len(); i++ {
			tri := result.Mesh.Triangle(i)
			svg.Polygon(coords([]geom.Point{tri.A, tri.B, tri.C}), "fill:none;stroke:#59666f;stroke-width:0.1%")
		}
	}
	for _, c := range result.Circles {
		color := colorFor(c)
		svg.Circle(coord(c.Center), c.Radius, fmt.Sprintf("fill:#%02x%02x%02x",
			int(color.r*255), int(color.g*255), int(color.b*255)))
	}
	svg.End()
	return svg.err
}
