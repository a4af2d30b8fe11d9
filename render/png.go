package render

import (
	"io"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/circpack"
	"github.com/pkg/errors"
)

func draw(result *circpack.Result, opts Options) *gg.Context {
	bounds := result.Polygon.Bounds()
	extent := bounds.Size()
	scale := opts.scaleFor(extent)
	padding := float64(opts.Padding)

	// Set up the context
	width := int(scale*extent.X) + opts.Padding*2
	height := int(scale*extent.Y) + opts.Padding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(padding, padding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-bounds.X.Lo, -bounds.Y.Lo)

	points := result.Polygon.Points()
	c.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
	c.SetRGB(0.1, 0.15, 0.2)
	c.FillPreserve()
	c.SetLineWidth(2)
	c.SetRGB(0, 1, 1)
	c.Stroke()

	if opts.Mesh {
		c.SetLineWidth(0.5)
		c.SetRGB(0.35, 0.4, 0.45)
		for i := 0; i < result.Mesh.Len(); i++ {
			tri := result.Mesh.Triangle(i)
			c.MoveTo(tri.A.X, tri.A.Y)
			c.LineTo(tri.B.X, tri.B.Y)
			c.LineTo(tri.C.X, tri.C.Y)
			c.ClosePath()
			c.Stroke()
		}
	}

	for _, circle := range result.Circles {
		color := colorFor(circle)
		c.SetRGB(color.r, color.g, color.b)
		c.DrawCircle(circle.Center.X, circle.Center.Y, circle.Radius)
		c.Fill()
	}
	return c
}

// PNG writes an image of the polygon, its mesh and the circles to w.
func PNG(w io.Writer, result *circpack.Result, opts Options) error {
	return errors.Wrap(draw(result, opts).EncodePNG(w), "encoding png")
}

func SavePNG(path string, result *circpack.Result, opts Options) error {
	return errors.Wrapf(draw(result, opts).SavePNG(path), "saving %s", path)
}

// Imgcat shows a PNG file inline in terminals that support the iTerm image
// protocol.
func Imgcat(path string, w io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "imgcat")
	}
	return imgcat.CatFile(path, w)
}
