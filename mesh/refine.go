package mesh

import (
	"math"

	"github.com/osuushi/circpack/geom"
)

// Ruppert refinement. Boundary subsegments must not be encroached (no vertex
// strictly inside their diametral circle, on the inner side); triangles must
// respect the area bound and the minimum angle. Bad triangles get their
// circumcentre inserted, unless that circumcentre would encroach a subsegment
// or lies beyond one, in which case the subsegment is split instead.
//
// Plain Ruppert does not terminate next to input angles under 60 degrees.
// Three rules keep it finite there:
//  1. Subsegments that end at a sharp corner are split at a power of two
//     distance from the corner (concentric shells), so the two edges of the
//     corner are split on the same circles and stop encroaching each other.
//  2. Skinny triangles that owe their small angle to a sharp corner are left
//     alone.
//  3. A skinny triangle next to a sharp corner does not get a subsegment split
//     on its behalf if the split would leave a piece shorter than the
//     triangle's shortest edge. The triangle is accepted as it is.
// Nothing is ever cut below floor, a small fraction of the boundary's extent.

// Slack on the diametral circle so that a right angle sitting exactly on the
// circle (the apex of half a square, say) does not count as encroaching.
const encroachSlack = 1e-9

// Shortest piece refinement may create, relative to the extent of the
// boundary.
const minFeature = 1e-6

func (b *builder) refine() {
	if b.maxArea == 0 && b.minAngle == 0 {
		return
	}
	if b.minAngle > 0 {
		b.splitEncroached()
	}

	for len(b.queue) > 0 {
		i := b.queue[0]
		b.queue = b.queue[1:]
		if !b.isBad(i) {
			continue
		}
		before := b.tris[i]
		b.splitTriangle(i)
		if b.tris[i] == before && !b.accepted[before] {
			// The fix landed elsewhere in the mesh; look at this one again.
			b.queue = append(b.queue, i)
		}
	}
}

func (b *builder) isBad(i int) bool {
	if b.accepted[b.tris[i]] {
		return false
	}
	if b.maxArea > 0 && b.triangle(i).Area() > b.maxArea {
		return true
	}
	return b.isSkinny(i)
}

func (b *builder) isSkinny(i int) bool {
	if b.minAngle == 0 {
		return false
	}
	angle, k := b.triangle(i).MinAngle()
	if angle >= b.minAngle*(1-1e-9) || b.isNestled(i, k) {
		return false
	}
	t := b.tris[i]
	u, w := t[(k+1)%3], t[(k+2)%3]
	if geom.Dist(b.verts[u], b.verts[w]) < b.floor {
		return false
	}
	return !b.spansSmallCorner(u, w)
}

// A triangle whose smallest angle sits between two boundary subsegments owes
// that angle to the input polygon; no amount of refinement can widen it.
func (b *builder) isNestled(i, k int) bool {
	t := b.tris[i]
	v := t[k]
	next := t[(k+1)%3]
	prev := t[(k+2)%3]
	return b.isConstrained(edge{v, next}) && b.isConstrained(edge{prev, v})
}

// Inside a sharp input corner, splitting skinny triangles only produces
// skinnier ones closer to the corner. Triangles whose shortest edge runs
// between the two input edges of a sharp corner are accepted as they are.
func (b *builder) spansSmallCorner(u, w int) bool {
	n := b.boundary
	for _, eu := range b.inputEdges(u) {
		for _, ew := range b.inputEdges(w) {
			var corner int
			switch {
			case ew == geom.CircularIndex(eu+1, n):
				corner = ew
			case eu == geom.CircularIndex(ew+1, n):
				corner = eu
			default:
				continue
			}
			if b.sharp[corner] {
				return true
			}
		}
	}
	return false
}

// Input edges a vertex lies on. Input edge i runs from boundary vertex i to
// i+1.
func (b *builder) inputEdges(v int) []int {
	if v < b.boundary {
		return []int{geom.CircularIndex(v-1, b.boundary), v}
	}
	if e, ok := b.onEdge[v]; ok {
		return []int{e}
	}
	return nil
}

// Does subsegment k lie on an input edge with a sharp end?
func (b *builder) nearSharpCorner(k int) bool {
	e := b.origin[k]
	return b.sharp[e] || b.sharp[geom.CircularIndex(e+1, b.boundary)]
}

func (b *builder) splitTriangle(i int) {
	tri := b.triangle(i)
	circle, ok := tri.Circumcircle()
	if !ok {
		fatalf("cannot refine collinear triangle %v", tri)
	}
	at, blocked, inside := b.locate(circle.Center, i)
	if !inside {
		if k, ok := b.constrained[blocked.normalized()]; ok {
			b.splitSegmentFor(k, i)
			return
		}
	} else {
		if k, found := b.encroachedBy(circle.Center); found {
			b.splitSegmentFor(k, i)
			return
		}
		if _, ok := b.insertPoint(circle.Center, at); ok {
			return
		}
	}

	// The circumcentre is on top of a vertex or could not be found. Fall back
	// to splitting the triangle's longest edge.
	t := b.tris[i]
	longest := edge{t[0], t[1]}
	for k := 1; k < 3; k++ {
		e := edge{t[k], t[(k+1)%3]}
		if geom.Dist(b.verts[e.a], b.verts[e.b]) > geom.Dist(b.verts[longest.a], b.verts[longest.b]) {
			longest = e
		}
	}
	if geom.Dist(b.verts[longest.a], b.verts[longest.b]) < 2*b.floor {
		b.accepted[t] = true
		return
	}
	if k, ok := b.constrained[longest.normalized()]; ok {
		b.splitSegmentFor(k, i)
		return
	}
	b.splitEdge(longest, b.verts[longest.a].Add(b.verts[longest.b]).Mul(0.5))
}

// Split subsegment k to make room for bad triangle i, or accept i as it is.
func (b *builder) splitSegmentFor(k, i int) {
	if !b.shouldSplit(k, i) {
		b.accepted[b.tris[i]] = true
		return
	}
	b.splitSegment(k)
	b.splitEncroached()
}

func (b *builder) shouldSplit(k, i int) bool {
	piece := b.shortestPiece(b.segments[k])
	if piece < b.floor {
		return false
	}
	tri := b.triangle(i)
	if b.maxArea > 0 && tri.Area() > b.maxArea {
		return true
	}
	if !b.nearSharpCorner(k) {
		return true
	}
	sa, sb, sc := tri.Sides()
	return piece >= math.Min(sa, math.Min(sb, sc))
}

func (b *builder) splitSegment(k int) {
	s := b.segments[k]
	b.splitEdge(s, b.splitPoint(s))
}

// Where subsegment s gets split: on a concentric shell when exactly one end
// is a sharp corner, at the midpoint otherwise.
func (b *builder) splitPoint(s edge) geom.Point {
	a, c := b.verts[s.a], b.verts[s.b]
	switch {
	case b.isSharp(s.a) && !b.isSharp(s.b):
		return shell(a, c)
	case b.isSharp(s.b) && !b.isSharp(s.a):
		return shell(c, a)
	}
	return a.Add(c).Mul(0.5)
}

func (b *builder) shortestPiece(s edge) float64 {
	p := b.splitPoint(s)
	return math.Min(geom.Dist(b.verts[s.a], p), geom.Dist(p, b.verts[s.b]))
}

// The point on from-to whose distance from from is the power of two closest
// to half the length. It lies between 0.35 and 0.71 of the way along.
func shell(from, to geom.Point) geom.Point {
	length := geom.Dist(from, to)
	d := math.Exp2(math.Round(math.Log2(length / 2)))
	return from.Add(to.Sub(from).Mul(d / length))
}

// Split subsegments until none is encroached by the apex of its triangle. By
// the Delaunay property, if any vertex encroaches a subsegment then that apex
// does.
func (b *builder) splitEncroached() {
	for changed := true; changed; {
		changed = false
		for k := 0; k < len(b.segments); k++ {
			s := b.segments[k]
			t, ok := b.owner[s]
			if !ok {
				fatalf("boundary segment %v has no triangle", s)
			}
			if b.encroaches(s, b.verts[b.apex(t, s)]) && b.shortestPiece(s) >= b.floor {
				b.splitSegment(k)
				changed = true
			}
		}
	}
}

func (b *builder) encroaches(s edge, p geom.Point) bool {
	a, c := b.verts[s.a], b.verts[s.b]
	half := geom.Dist(a, c) / 2
	return geom.Dist(a.Add(c).Mul(0.5), p) < half*(1-encroachSlack)
}

// First subsegment whose diametral circle holds p. Subsegments that p lies
// behind cannot see it and are skipped.
func (b *builder) encroachedBy(p geom.Point) (int, bool) {
	for k, s := range b.segments {
		if geom.Cross(b.verts[s.a], b.verts[s.b], p) < 0 {
			continue
		}
		if b.encroaches(s, p) {
			return k, true
		}
	}
	return -1, false
}
