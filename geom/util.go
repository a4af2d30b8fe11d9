package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a position (or a vector) in the shared 2D frame. It is a plain
// value, so copying it never aliases anything.
type Point = r2.Point

// Relative tolerance. Callers scale it by the lengths involved, so it
// behaves the same for millimetre and kilometre coordinates.
const Tolerance = 1e-9

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

func Dist(a, b Point) float64 {
	return a.Sub(b).Norm()
}

// Cross product of (b - a) and (c - a). Positive when a, b, c wind
// counterclockwise.
func Cross(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// Orientation classifies the turn a -> b -> c as 1 (counterclockwise), -1
// (clockwise) or 0 (collinear). The collinearity test is relative to the
// lengths involved, so it behaves the same for millimetre and kilometre
// coordinates.
func Orientation(a, b, c Point) int {
	cross := Cross(a, b, c)
	scale := Dist(a, b) * Dist(a, c)
	if math.Abs(cross) <= Tolerance*scale {
		return 0
	}
	if cross > 0 {
		return 1
	}
	return -1
}

// Angle in radians at vertex between the rays towards a and b. Always in [0, π].
func Angle(vertex, a, b Point) float64 {
	u := a.Sub(vertex)
	w := b.Sub(vertex)
	return math.Atan2(math.Abs(u.Cross(w)), u.Dot(w))
}
