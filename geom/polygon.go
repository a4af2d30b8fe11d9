package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Polygon is a simple polygon built once from boundary coordinates. The
// boundary is implicitly closed and stored counterclockwise; SignedArea still
// reports the winding the caller supplied.
type Polygon struct {
	points     []Point
	signedArea float64
}

// NewPolygon validates the boundary. Consecutive duplicate points and a
// repeated closing point are dropped first.
func NewPolygon(points []Point) (*Polygon, error) {
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, degeneratef(len(points), "non-finite coordinate %v", p)
		}
	}
	// Points closer than this are the same point, whatever units the boundary
	// is drawn in.
	extent := r2.RectFromPoints(points...).Size()
	eps := Tolerance * math.Max(extent.X, extent.Y)

	cleaned := make([]Point, 0, len(points))
	for _, p := range points {
		if len(cleaned) > 0 && samePoint(cleaned[len(cleaned)-1], p, eps) {
			continue
		}
		cleaned = append(cleaned, p)
	}
	for len(cleaned) > 1 && samePoint(cleaned[0], cleaned[len(cleaned)-1], eps) {
		cleaned = cleaned[:len(cleaned)-1]
	}
	if len(cleaned) < 3 {
		return nil, degeneratef(len(points), "need at least 3 distinct points, got %d", len(cleaned))
	}

	poly := &Polygon{points: cleaned}
	poly.signedArea = shoelace(cleaned)

	bounds := poly.Bounds().Size()
	scale := math.Max(bounds.X, bounds.Y)
	if math.Abs(poly.signedArea) <= Tolerance*scale*scale {
		return nil, degeneratef(len(points), "boundary has zero area")
	}
	if i, j, ok := poly.selfIntersection(); ok {
		return nil, degeneratef(len(points), "edges %d and %d intersect", i, j)
	}

	// Ensure that the polygon is CCW
	if poly.signedArea < 0 {
		reversed := poly.Reverse()
		poly.points = reversed.points
	}
	return poly, nil
}

func samePoint(a, b Point, eps float64) bool {
	return Dist(a, b) <= eps
}

// Gauss (shoelace) formula.
func shoelace(points []Point) float64 {
	var sum float64
	for i, p := range points {
		next := points[CircularIndex(i+1, len(points))]
		sum += p.X*next.Y - next.X*p.Y
	}
	return sum / 2
}

// Points returns a copy of the CCW boundary, without the closing point.
func (poly *Polygon) Points() []Point {
	return append([]Point(nil), poly.points...)
}

func (poly *Polygon) Len() int {
	return len(poly.points)
}

func (poly *Polygon) Point(i int) Point {
	return poly.points[CircularIndex(i, len(poly.points))]
}

// SignedArea of the boundary as supplied: negative for clockwise input.
func (poly *Polygon) SignedArea() float64 {
	return poly.signedArea
}

func (poly *Polygon) Area() float64 {
	return math.Abs(poly.signedArea)
}

func (poly *Polygon) Perimeter() float64 {
	var perimeter float64
	for _, e := range poly.Edges() {
		perimeter += e.Length()
	}
	return perimeter
}

// Centroid of the enclosed area (not the vertex average).
func (poly *Polygon) Centroid() Point {
	var cx, cy, a float64
	origin := poly.points[0]
	for i := range poly.points {
		p := poly.points[i].Sub(origin)
		q := poly.Point(i + 1).Sub(origin)
		cross := p.Cross(q)
		a += cross
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return origin.Add(Point{X: cx, Y: cy}.Mul(1 / (3 * a)))
}

func (poly *Polygon) Bounds() r2.Rect {
	return r2.RectFromPoints(poly.points...)
}

// Edge i runs from point i to point i+1, counterclockwise.
func (poly *Polygon) Edges() []Segment {
	edges := make([]Segment, len(poly.points))
	for i, p := range poly.points {
		edges[i] = Segment{p, poly.Point(i + 1)}
	}
	return edges
}

func (poly *Polygon) IsCCW() bool {
	return shoelace(poly.points) > 0
}

// Even-odd point-in-polygon test.
func (poly *Polygon) ContainsPoint(p Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule
func (poly *Polygon) CrossingCount(p Point) int {
	crossingCount := 0
	for _, segment := range poly.Edges() {
		if below(segment.Start, p) != below(segment.End, p) && segment.IsRightOf(p) {
			crossingCount++
		}
	}
	return crossingCount
}

// If two points have the same Y value, the one with the smaller X value is
// "lower". This simulates a slightly rotated coordinate system, allowing us to
// assume Y values are never equal. The comparison is exact: any tolerance
// here lets the two ends of an edge disagree with the crossing point.
func below(p, other Point) bool {
	if p.Y == other.Y {
		return p.X < other.X
	}
	return p.Y < other.Y
}

func (poly *Polygon) Reverse() *Polygon {
	newPoly := &Polygon{signedArea: -poly.signedArea}
	for i := len(poly.points) - 1; i >= 0; i-- {
		newPoly.points = append(newPoly.points, poly.points[i])
	}
	return newPoly
}

// Brute force check of every pair of non-adjacent edges. Adjacent edges may
// only share their common endpoint, so they are checked for collinear
// backtracking instead.
func (poly *Polygon) selfIntersection() (int, int, bool) {
	edges := poly.Edges()
	n := len(edges)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if adjacent {
				if n > 3 && folds(edges[i], edges[j]) {
					return i, j, true
				}
				continue
			}
			if edges[i].Intersects(edges[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Two edges sharing an endpoint fold back onto each other when they are
// collinear and point in opposite directions from the shared point.
func folds(a, b Segment) bool {
	var shared, p, q Point
	switch {
	case a.End == b.Start:
		shared, p, q = a.End, a.Start, b.End
	case b.End == a.Start:
		shared, p, q = a.Start, a.End, b.Start
	default:
		return false
	}
	return Orientation(shared, p, q) == 0 && p.Sub(shared).Dot(q.Sub(shared)) > 0
}
