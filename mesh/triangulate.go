package mesh

import (
	"math"

	"github.com/osuushi/circpack/dbg"
	"github.com/osuushi/circpack/geom"
	"github.com/osuushi/circpack/internal/logging"
)

// Triangulate builds a constrained Delaunay triangulation of poly that
// satisfies quality. The boundary is first cut into ears, the ears are
// flipped into a Delaunay triangulation and the result is refined by
// inserting circumcentres and splitting boundary segments (Ruppert's
// algorithm) until no triangle is too big or too skinny.
func Triangulate(poly *geom.Polygon, quality Quality) (result *Mesh, err error) {
	resolved, err := quality.Resolve()
	if err != nil {
		return nil, err
	}
	if poly == nil {
		return nil, &TriangulationError{Quality: quality, Reason: "no boundary"}
	}

	defer func() {
		recoveredErr := handlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = &TriangulationError{Quality: quality, Reason: "mesher gave up", Err: recoveredErr}
		}
	}()

	b := newBuilder(poly, resolved)
	log := logging.L().WithField("mesh", dbg.Name(b))
	log.WithField("vertices", poly.Len()).Debug("clipping ears")
	b.clipEars()
	b.legalizeAll()
	b.refine()
	log.WithField("triangles", len(b.tris)).
		WithField("steiner", len(b.verts)-b.boundary).
		Debug("mesh refined")

	return &Mesh{
		Vertices:  b.verts,
		Triangles: b.tris,
		Segments:  b.segmentList(),
		Boundary:  b.boundary,
	}, nil
}

// A directed edge between two vertex indices. Every counterclockwise
// triangle owns its three directed edges, so the triangle across an edge is
// the owner of the reversed edge.
type edge struct {
	a, b int
}

func (e edge) reversed() edge {
	return edge{e.b, e.a}
}

func (e edge) normalized() edge {
	if e.a > e.b {
		return e.reversed()
	}
	return e
}

type builder struct {
	verts    []geom.Point
	boundary int
	tris     [][3]int
	owner    map[edge]int

	// Boundary subsegments in counterclockwise order, plus a lookup from the
	// normalized edge to its position in segments.
	segments    []edge
	constrained map[edge]int
	// Input edge each subsegment came from, and the input edge each Steiner
	// point on the boundary lies on.
	origin []int
	onEdge map[int]int

	quality  Quality
	maxArea  float64
	minAngle float64 // radians
	size     float64 // extent of the boundary, for scaling tolerances

	// Boundary vertices where the two input edges meet at less than 60
	// degrees, and the shortest piece refinement may cut a subsegment into.
	sharp []bool
	floor float64
	// Triangles refinement gave up on, by their vertices.
	accepted map[[3]int]bool

	// Triangles to check during refinement. Triangles are queued whenever
	// they are written, so entries may be stale.
	queue []int
}

func newBuilder(poly *geom.Polygon, quality Quality) *builder {
	b := &builder{
		verts:       poly.Points(),
		boundary:    poly.Len(),
		owner:       make(map[edge]int),
		constrained: make(map[edge]int),
		onEdge:      make(map[int]int),
		quality:     quality,
		maxArea:     quality.AreaBound(),
		minAngle:    quality.MinAngle * math.Pi / 180,
		sharp:       make([]bool, poly.Len()),
		accepted:    make(map[[3]int]bool),
	}
	extent := poly.Bounds().Size()
	b.size = math.Max(extent.X, extent.Y)
	b.floor = minFeature * b.size
	for i := 0; i < b.boundary; i++ {
		b.addSegment(edge{i, geom.CircularIndex(i+1, b.boundary)}, i)
		prev := b.verts[geom.CircularIndex(i-1, b.boundary)]
		next := b.verts[geom.CircularIndex(i+1, b.boundary)]
		b.sharp[i] = geom.Angle(b.verts[i], prev, next) < math.Pi/3
	}
	return b
}

func (b *builder) isSharp(v int) bool {
	return v < b.boundary && b.sharp[v]
}

func (b *builder) addSegment(e edge, origin int) {
	b.constrained[e.normalized()] = len(b.segments)
	b.segments = append(b.segments, e)
	b.origin = append(b.origin, origin)
}

func (b *builder) isConstrained(e edge) bool {
	_, ok := b.constrained[e.normalized()]
	return ok
}

func (b *builder) segmentList() [][2]int {
	result := make([][2]int, len(b.segments))
	for i, s := range b.segments {
		result[i] = [2]int{s.a, s.b}
	}
	return result
}

func (b *builder) addVertex(p geom.Point) int {
	if len(b.verts)-b.boundary >= b.quality.MaxSteiner {
		fatalf("refinement exceeded %d steiner points", b.quality.MaxSteiner)
	}
	b.verts = append(b.verts, p)
	return len(b.verts) - 1
}

func (b *builder) triangle(i int) geom.Triangle {
	t := b.tris[i]
	return geom.Triangle{A: b.verts[t[0]], B: b.verts[t[1]], C: b.verts[t[2]]}
}

func (b *builder) addTriangle(v0, v1, v2 int) int {
	b.tris = append(b.tris, [3]int{v0, v1, v2})
	i := len(b.tris) - 1
	b.register(i)
	return i
}

// Overwrite triangle i. Edges still owned by i are released first; edges that
// another triangle already took over are left alone.
func (b *builder) setTriangle(i int, v0, v1, v2 int) {
	old := b.tris[i]
	for k := 0; k < 3; k++ {
		e := edge{old[k], old[(k+1)%3]}
		if b.owner[e] == i {
			delete(b.owner, e)
		}
	}
	b.tris[i] = [3]int{v0, v1, v2}
	b.register(i)
}

func (b *builder) register(i int) {
	t := b.tris[i]
	if geom.Orientation(b.verts[t[0]], b.verts[t[1]], b.verts[t[2]]) != 1 {
		fatalf("triangle %v is not counterclockwise", b.triangle(i))
	}
	for k := 0; k < 3; k++ {
		b.owner[edge{t[k], t[(k+1)%3]}] = i
	}
	b.queue = append(b.queue, i)
}

// The vertex of triangle i that is not on e. e must be one of i's directed
// edges.
func (b *builder) apex(i int, e edge) int {
	t := b.tris[i]
	for k := 0; k < 3; k++ {
		if t[k] == e.a && t[(k+1)%3] == e.b {
			return t[(k+2)%3]
		}
	}
	fatalf("edge %v is not part of triangle %v", e, t)
	return -1
}

// Is d strictly inside the circumcircle of the counterclockwise triangle
// a, b, c? Cocircular points are not, so a square never flips back and forth.
func (b *builder) inCircle(a, bb, c, d int) bool {
	circle, ok := geom.Triangle{A: b.verts[a], B: b.verts[bb], C: b.verts[c]}.Circumcircle()
	if !ok {
		return false
	}
	return geom.Dist(circle.Center, b.verts[d]) < circle.Radius*(1-1e-10)
}

func (b *builder) legalizeAll() {
	var edges []edge
	for _, t := range b.tris {
		for k := 0; k < 3; k++ {
			edges = append(edges, edge{t[k], t[(k+1)%3]})
		}
	}
	b.legalize(edges)
}

// Lawson's algorithm: flip every unconstrained edge whose opposite vertex lies
// inside the circumcircle of its triangle, then recheck the four edges around
// the flipped quad.
func (b *builder) legalize(edges []edge) {
	for len(edges) > 0 {
		e := edges[len(edges)-1]
		edges = edges[:len(edges)-1]

		if b.isConstrained(e) {
			continue
		}
		t1, ok := b.owner[e]
		if !ok {
			continue
		}
		t2, ok := b.owner[e.reversed()]
		if !ok {
			continue
		}
		c := b.apex(t1, e)
		d := b.apex(t2, e.reversed())
		if !b.inCircle(e.a, e.b, c, d) {
			continue
		}
		/*
		      c
		     / \
		    a---b   becomes   a  |  b   with the diagonal c-d
		     \ /
		      d
		*/
		// Only convex quads can be flipped
		if geom.Orientation(b.verts[e.a], b.verts[d], b.verts[c]) != 1 ||
			geom.Orientation(b.verts[d], b.verts[e.b], b.verts[c]) != 1 {
			continue
		}
		b.setTriangle(t1, e.a, d, c)
		b.setTriangle(t2, d, e.b, c)
		edges = append(edges, edge{e.a, d}, edge{d, e.b}, edge{e.b, c}, edge{c, e.a})
	}
}

// locate walks from triangle start towards p, one edge at a time, and returns
// the triangle holding p. When the walk runs into the boundary instead, ok is
// false and blocked is the subsegment in the way.
func (b *builder) locate(p geom.Point, start int) (tri int, blocked edge, ok bool) {
	tri = start
	for step := 0; step <= len(b.tris); step++ {
		t := b.tris[tri]
		next := -1
		blocked = edge{-1, -1}
		// Starting at a different edge each step keeps the walk from circling
		for j := 0; j < 3 && next < 0; j++ {
			k := (j + step) % 3
			e := edge{t[k], t[(k+1)%3]}
			if geom.Orientation(b.verts[e.a], b.verts[e.b], p) >= 0 {
				continue
			}
			across, found := b.owner[e.reversed()]
			if !found || b.isConstrained(e) {
				blocked = e
				continue
			}
			next = across
		}
		if next < 0 {
			if blocked.a >= 0 {
				return -1, blocked, false
			}
			return tri, edge{}, true
		}
		tri = next
	}
	return b.scan(p)
}

// Last resort for locate.
func (b *builder) scan(p geom.Point) (int, edge, bool) {
	for i, t := range b.tris {
		a, bb, c := b.verts[t[0]], b.verts[t[1]], b.verts[t[2]]
		if geom.Orientation(a, bb, p) >= 0 && geom.Orientation(bb, c, p) >= 0 && geom.Orientation(c, a, p) >= 0 {
			return i, edge{}, true
		}
	}
	return -1, edge{-1, -1}, false
}

// Insert p, which lies in triangle i. Points on an edge of i split that edge.
// ok is false when p is on top of one of i's vertices.
func (b *builder) insertPoint(p geom.Point, i int) (vertex int, ok bool) {
	t := b.tris[i]
	for _, v := range t {
		if geom.Dist(b.verts[v], p) <= geom.Tolerance*b.size {
			return -1, false
		}
	}
	a, bb, c := b.verts[t[0]], b.verts[t[1]], b.verts[t[2]]
	switch {
	case geom.Orientation(a, bb, p) == 0:
		return b.splitEdge(edge{t[0], t[1]}, p), true
	case geom.Orientation(bb, c, p) == 0:
		return b.splitEdge(edge{t[1], t[2]}, p), true
	case geom.Orientation(c, a, p) == 0:
		return b.splitEdge(edge{t[2], t[0]}, p), true
	}

	v := b.addVertex(p)
	b.setTriangle(i, t[0], t[1], v)
	b.addTriangle(t[1], t[2], v)
	b.addTriangle(t[2], t[0], v)
	b.legalize([]edge{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}})
	return v, true
}

// Split e at p, which must lie on it, replacing the (one or two) triangles on
// either side with two triangles each. A boundary subsegment is replaced by
// its two halves.
func (b *builder) splitEdge(e edge, p geom.Point) int {
	v := b.addVertex(p)
	var outer []edge
	for _, side := range []edge{e, e.reversed()} {
		t, ok := b.owner[side]
		if !ok {
			continue
		}
		c := b.apex(t, side)
		b.setTriangle(t, side.a, v, c)
		b.addTriangle(v, side.b, c)
		outer = append(outer, edge{side.b, c}, edge{c, side.a})
	}

	if k, ok := b.constrained[e.normalized()]; ok {
		s := b.segments[k]
		delete(b.constrained, s.normalized())
		b.segments[k] = edge{s.a, v}
		b.constrained[b.segments[k].normalized()] = k
		b.addSegment(edge{v, s.b}, b.origin[k])
		b.onEdge[v] = b.origin[k]
	}
	b.legalize(outer)
	return v
}
