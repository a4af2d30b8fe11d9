package geom

import (
	"fmt"
	"math"
)

type Circle struct {
	Center Point
	Radius float64
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) Diameter() float64 {
	return 2 * c.Radius
}

func (c Circle) Perimeter() float64 {
	return 2 * math.Pi * c.Radius
}

// Curvature is the reciprocal of the radius. A line is a circle of zero
// curvature, which is how Descartes' theorem treats triangle edges.
func (c Circle) Curvature() float64 {
	return 1 / c.Radius
}

func (c Circle) ContainsPoint(p Point) bool {
	return Dist(c.Center, p) <= c.Radius
}

// Overlaps reports whether the interiors intersect by more than eps. Circles
// that merely touch do not overlap.
func (c Circle) Overlaps(o Circle, eps float64) bool {
	return Dist(c.Center, o.Center) < c.Radius+o.Radius-eps
}

// Gap between the two circumferences, negative when they overlap.
func (c Circle) Gap(o Circle) float64 {
	return Dist(c.Center, o.Center) - c.Radius - o.Radius
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle{(%g, %g), r=%g}", c.Center.X, c.Center.Y, c.Radius)
}
