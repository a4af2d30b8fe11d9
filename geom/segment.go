package geom

import "math"

type Segment struct {
	Start Point
	End   Point
}

func (s Segment) Length() float64 {
	return Dist(s.Start, s.End)
}

func (s Segment) Midpoint() Point {
	return s.Start.Add(s.End).Mul(0.5)
}

// Unit vector from Start to End. Zero for a degenerate segment.
func (s Segment) Direction() Point {
	d := s.End.Sub(s.Start)
	n := d.Norm()
	if n == 0 {
		return Point{}
	}
	return d.Mul(1 / n)
}

// Unit normal pointing to the left of the segment (the inside of a CCW
// polygon edge).
func (s Segment) LeftNormal() Point {
	return s.Direction().Ortho()
}

// Signed distance from p to the supporting line; positive on the left.
func (s Segment) SignedDistance(p Point) float64 {
	return s.LeftNormal().Dot(p.Sub(s.Start))
}

// Distance from p to the supporting line.
func (s Segment) LineDistance(p Point) float64 {
	return math.Abs(s.SignedDistance(p))
}

// Distance from p to the closest point of the segment itself.
func (s Segment) Distance(p Point) float64 {
	d := s.End.Sub(s.Start)
	l2 := d.Dot(d)
	if l2 == 0 {
		return Dist(p, s.Start)
	}
	t := math.Max(0, math.Min(1, p.Sub(s.Start).Dot(d)/l2))
	return Dist(p, s.Start.Add(d.Mul(t)))
}

func (s Segment) IsHorizontal() bool {
	return s.Start.Y == s.End.Y
}

// Is the segment to the right of p, measured horizontally at p's height? Used
// by the even-odd crossing count, so exactly horizontal segments never count.
func (s Segment) IsRightOf(p Point) bool {
	if s.IsHorizontal() {
		return false
	}
	x := s.Start.X + (p.Y-s.Start.Y)*(s.End.X-s.Start.X)/(s.End.Y-s.Start.Y)
	return x > p.X
}

// Intersects reports whether the two closed segments share any point.
func (s Segment) Intersects(o Segment) bool {
	d1 := Orientation(o.Start, o.End, s.Start)
	d2 := Orientation(o.Start, o.End, s.End)
	d3 := Orientation(s.Start, s.End, o.Start)
	d4 := Orientation(s.Start, s.End, o.End)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	// Touching and collinear overlaps
	return (d1 == 0 && onSegment(o, s.Start)) ||
		(d2 == 0 && onSegment(o, s.End)) ||
		(d3 == 0 && onSegment(s, o.Start)) ||
		(d4 == 0 && onSegment(s, o.End))
}

// p is known to be collinear with s; check it lies within the bounding box.
func onSegment(s Segment, p Point) bool {
	eps := Tolerance * s.Length()
	return p.X <= math.Max(s.Start.X, s.End.X)+eps &&
		p.X >= math.Min(s.Start.X, s.End.X)-eps &&
		p.Y <= math.Max(s.Start.Y, s.End.Y)+eps &&
		p.Y >= math.Min(s.Start.Y, s.End.Y)-eps
}
