package geom

import (
	"fmt"
	"math"
)

// Triangle with the usual notation: vertices A, B, C and sides a = |BC|,
// b = |CA|, c = |AB|.
type Triangle struct {
	A, B, C Point
}

// Twice the signed area would be the cross product; this is the real thing.
// Counterclockwise triangles have positive area.
func (t Triangle) SignedArea() float64 {
	return Cross(t.A, t.B, t.C) / 2
}

func (t Triangle) Area() float64 {
	return math.Abs(t.SignedArea())
}

func (t Triangle) IsCCW() bool {
	return t.SignedArea() > 0
}

// Returns the same triangle with counterclockwise winding.
func (t Triangle) CCW() Triangle {
	if t.SignedArea() < 0 {
		return Triangle{t.A, t.C, t.B}
	}
	return t
}

func (t Triangle) Vertex(i int) Point {
	switch CircularIndex(i, 3) {
	case 0:
		return t.A
	case 1:
		return t.B
	}
	return t.C
}

func (t Triangle) Vertices() [3]Point {
	return [3]Point{t.A, t.B, t.C}
}

// Edge i runs from vertex i to vertex i+1.
func (t Triangle) Edge(i int) Segment {
	return Segment{t.Vertex(i), t.Vertex(i + 1)}
}

func (t Triangle) Edges() [3]Segment {
	return [3]Segment{t.Edge(0), t.Edge(1), t.Edge(2)}
}

// Side lengths a, b, c, each opposite the vertex of the same letter.
func (t Triangle) Sides() (a, b, c float64) {
	return Dist(t.B, t.C), Dist(t.C, t.A), Dist(t.A, t.B)
}

func (t Triangle) Perimeter() float64 {
	a, b, c := t.Sides()
	return a + b + c
}

// Incircle is the largest inscribed circle. The centre is the vertex average
// weighted by the opposite side lengths and the radius is area / semiperimeter.
func (t Triangle) Incircle() Circle {
	a, b, c := t.Sides()
	p := a + b + c
	if p == 0 {
		return Circle{Center: t.A}
	}
	center := t.A.Mul(a).Add(t.B.Mul(b)).Add(t.C.Mul(c)).Mul(1 / p)
	return Circle{Center: center, Radius: 2 * t.Area() / p}
}

// Distances from each vertex to the incentre, in vertex order.
func (t Triangle) DistToIncenter() [3]float64 {
	center := t.Incircle().Center
	return [3]float64{Dist(t.A, center), Dist(t.B, center), Dist(t.C, center)}
}

// Circumcircle passes through all three vertices. ok is false for a collinear
// triangle.
func (t Triangle) Circumcircle() (circle Circle, ok bool) {
	b := t.B.Sub(t.A)
	c := t.C.Sub(t.A)
	d := 2 * b.Cross(c)
	if d == 0 || Orientation(t.A, t.B, t.C) == 0 {
		return Circle{}, false
	}
	b2 := b.Dot(b)
	c2 := c.Dot(c)
	offset := Point{X: c.Y*b2 - b.Y*c2, Y: b.X*c2 - c.X*b2}.Mul(1 / d)
	return Circle{Center: t.A.Add(offset), Radius: offset.Norm()}, true
}

// Interior angles in radians at A, B and C.
func (t Triangle) Angles() [3]float64 {
	return [3]float64{
		Angle(t.A, t.B, t.C),
		Angle(t.B, t.C, t.A),
		Angle(t.C, t.A, t.B),
	}
}

// Smallest interior angle in radians and the index of its vertex.
func (t Triangle) MinAngle() (angle float64, vertex int) {
	angles := t.Angles()
	angle = angles[0]
	for i := 1; i < 3; i++ {
		if angles[i] < angle {
			angle, vertex = angles[i], i
		}
	}
	return angle, vertex
}

// ContainsPoint includes the boundary.
func (t Triangle) ContainsPoint(p Point) bool {
	t = t.CCW()
	for i := 0; i < 3; i++ {
		if Orientation(t.Vertex(i), t.Vertex(i+1), p) < 0 {
			return false
		}
	}
	return true
}

// Is the triangle too thin to hold anything? Compares the inradius against
// the longest side so the test is scale free.
func (t Triangle) IsDegenerate() bool {
	a, b, c := t.Sides()
	longest := math.Max(a, math.Max(b, c))
	return longest == 0 || t.Incircle().Radius <= Tolerance*longest
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle{(%g, %g), (%g, %g), (%g, %g)}",
		t.A.X, t.A.Y, t.B.X, t.B.Y, t.C.X, t.C.Y)
}
