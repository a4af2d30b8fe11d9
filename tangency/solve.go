package tangency

import (
	"math"
	"math/cmplx"

	"github.com/osuushi/circpack/geom"
)

type Options struct {
	// Solutions smaller than this are rejected. Zero places circles of any size.
	MinRadius float64
}

// How far a solution may be from touching a parent, relative to the parent's
// radius, before it is rejected.
const residualTolerance = 1e-6

// Solve finds the circle filling p. ok is false when there is no tangent
// circle worth placing: the pocket is degenerate, the circle would not be
// strictly smaller than every parent, or it is smaller than opts.MinRadius.
func Solve(p Pocket, opts Options) (circle geom.Circle, ok bool) {
	switch p := p.(type) {
	case Corner:
		circle, ok = solveCorner(p)
	case EdgeGap:
		circle, ok = solveEdgeGap(p)
	case Interstice:
		circle, ok = solveInterstice(p)
	default:
		return geom.Circle{}, false
	}
	if !ok || !acceptable(circle, p.Parents(), opts) {
		return geom.Circle{}, false
	}
	return circle, true
}

func acceptable(circle geom.Circle, parents []geom.Circle, opts Options) bool {
	if !isFinite(circle.Center.X) || !isFinite(circle.Center.Y) || !isFinite(circle.Radius) {
		return false
	}
	if circle.Radius <= 0 || circle.Radius < opts.MinRadius {
		return false
	}
	for _, parent := range parents {
		if circle.Radius >= parent.Radius {
			return false
		}
	}
	return residual(circle, parents) <= residualTolerance
}

// Worst relative error in the tangency with the parents.
func residual(circle geom.Circle, parents []geom.Circle) float64 {
	var worst float64
	for _, parent := range parents {
		worst = math.Max(worst, math.Abs(circle.Gap(parent))/parent.Radius)
	}
	return worst
}

// Every circle touching both edges has its centre on the bisector, at some
// distance t from the vertex, and radius t*sin(θ/2). Touching the parent
// from outside gives a quadratic in t; the smaller root is the circle between
// the vertex and the parent, the larger one lies beyond the parent.
func solveCorner(c Corner) (geom.Circle, bool) {
	toA := c.A.Sub(c.Vertex)
	toB := c.B.Sub(c.Vertex)
	lenA, lenB := toA.Norm(), toB.Norm()
	if lenA == 0 || lenB == 0 {
		return geom.Circle{}, false
	}
	u := toA.Mul(1 / lenA)
	w := toB.Mul(1 / lenB)

	theta := math.Atan2(math.Abs(u.Cross(w)), u.Dot(w))
	if theta < geom.Tolerance || math.Pi-theta < geom.Tolerance {
		return geom.Circle{}, false
	}
	bisector := u.Add(w)
	bisector = bisector.Mul(1 / bisector.Norm())
	s := math.Sin(theta / 2)

	q := c.Parent.Center.Sub(c.Vertex)
	R := c.Parent.Radius
	roots := solveQuadratic(1-s*s, -2*(bisector.Dot(q)+R*s), q.Dot(q)-R*R)
	for _, t := range roots {
		if t <= 0 {
			continue
		}
		// The circle touches the edges at distance t*cos(θ/2) from the vertex,
		// which must still be on the edges.
		foot := t * math.Cos(theta/2)
		if foot > lenA || foot > lenB {
			return geom.Circle{}, false
		}
		return geom.Circle{Center: c.Vertex.Add(bisector.Mul(t)), Radius: t * s}, true
	}
	return geom.Circle{}, false
}

// Works in the frame of the edge: x along the edge, y towards the inside. A
// circle resting on the edge at x with radius r touches circle i when
//
//	(x - xi)^2 = 2(yi + ri)r + ri^2 - yi^2
//
// Subtracting the equations for both circles makes x linear in r, which
// leaves a quadratic in r.
func solveEdgeGap(g EdgeGap) (geom.Circle, bool) {
	dir := g.Edge.Direction()
	if dir == (geom.Point{}) {
		return geom.Circle{}, false
	}
	normal := dir.Ortho()
	side := normal.Dot(g.Inside.Sub(g.Edge.Start))
	if math.Abs(side) <= geom.Tolerance*g.Edge.Length() {
		return geom.Circle{}, false
	}
	if side < 0 {
		normal = normal.Mul(-1)
	}

	toFrame := func(c geom.Circle) (x, y float64) {
		d := c.Center.Sub(g.Edge.Start)
		return d.Dot(dir), d.Dot(normal)
	}
	x1, y1 := toFrame(g.First)
	x2, y2 := toFrame(g.Second)
	r1, r2 := g.First.Radius, g.Second.Radius
	if math.Abs(x2-x1) <= geom.Tolerance*math.Max(r1, r2) {
		return geom.Circle{}, false
	}

	k1, k2 := 2*(y1+r1), 2*(y2+r2)
	m1, m2 := r1*r1-y1*y1, r2*r2-y2*y2
	alpha := (x1+x2)/2 + (m1-m2)/(2*(x2-x1))
	beta := (k1 - k2) / (2 * (x2 - x1))
	d := alpha - x1

	lo, hi := math.Min(x1, x2), math.Max(x1, x2)
	for _, r := range solveQuadratic(beta*beta, 2*beta*d-k1, d*d-m1) {
		if r <= 0 {
			continue
		}
		x := alpha + beta*r
		if x <= lo || x >= hi {
			continue
		}
		return geom.Circle{
			Center: g.Edge.Start.Add(dir.Mul(x)).Add(normal.Mul(r)),
			Radius: r,
		}, true
	}
	return geom.Circle{}, false
}

// Descartes' theorem gives the curvature of the inner circle, and its complex
// form gives the centre up to the sign of a square root. The sign that
// actually touches all three circles wins.
func solveInterstice(i Interstice) (geom.Circle, bool) {
	circles := i.Parents()
	// Centres relative to the first circle keep the products small.
	origin := circles[0].Center
	var k [3]float64
	var z [3]complex128
	for n, c := range circles {
		if c.Radius <= 0 {
			return geom.Circle{}, false
		}
		k[n] = c.Curvature()
		d := c.Center.Sub(origin)
		z[n] = complex(d.X, d.Y)
	}

	product := k[0]*k[1] + k[1]*k[2] + k[2]*k[0]
	k4 := k[0] + k[1] + k[2] + 2*math.Sqrt(math.Max(0, product))
	if !(k4 > 0) {
		return geom.Circle{}, false
	}

	kz := [3]complex128{complex(k[0], 0) * z[0], complex(k[1], 0) * z[1], complex(k[2], 0) * z[2]}
	sum := kz[0] + kz[1] + kz[2]
	root := 2 * cmplx.Sqrt(kz[0]*kz[1]+kz[1]*kz[2]+kz[2]*kz[0])

	var best geom.Circle
	bestResidual := math.Inf(1)
	for _, zc := range []complex128{(sum + root) / complex(k4, 0), (sum - root) / complex(k4, 0)} {
		candidate := geom.Circle{
			Center: origin.Add(geom.Point{X: real(zc), Y: imag(zc)}),
			Radius: 1 / k4,
		}
		if res := residual(candidate, circles); res < bestResidual {
			best, bestResidual = candidate, res
		}
	}
	return best, bestResidual <= residualTolerance
}
