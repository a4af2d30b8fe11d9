package mesh

import "github.com/osuushi/circpack/geom"

// Facilities for cutting the boundary polygon into an initial triangulation.
// An ear is three consecutive vertices prev, cur, next that turn
// counterclockwise and whose triangle holds no other remaining vertex, not
// even on its boundary. Cutting it off leaves a smaller simple polygon, and
// every simple polygon with more than three vertices has at least two ears.
//
// Note that the polygon must be counterclockwise.

func (b *builder) clipEars() {
	remaining := make([]int, b.boundary)
	for i := range remaining {
		remaining[i] = i
	}

	for len(remaining) > 3 {
		clipped := false
		for i, cur := range remaining {
			prev := remaining[geom.CircularIndex(i-1, len(remaining))]
			next := remaining[geom.CircularIndex(i+1, len(remaining))]
			if !b.isEar(prev, cur, next, remaining) {
				continue
			}
			b.addTriangle(prev, cur, next)
			remaining = append(remaining[:i:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			fatalf("no ear among %d remaining vertices", len(remaining))
		}
	}
	b.addTriangle(remaining[0], remaining[1], remaining[2])
}

func (b *builder) isEar(prev, cur, next int, remaining []int) bool {
	ear := geom.Triangle{A: b.verts[prev], B: b.verts[cur], C: b.verts[next]}
	if geom.Orientation(ear.A, ear.B, ear.C) != 1 {
		return false
	}
	for _, v := range remaining {
		if v == prev || v == cur || v == next {
			continue
		}
		if ear.ContainsPoint(b.verts[v]) {
			return false
		}
	}
	return true
}
