// Package packer fills a single triangle with circles. The triangle's
// incircle goes first. It touches all three edges, which leaves three corner
// pockets, each bounded by two edges and the incircle. The largest circle in
// such a pocket touches both edges and the incircle, and leaves a smaller
// pocket of the same shape behind it, so each corner is filled by repeating
// the same step with the new circle as the parent until the depth limit is
// reached or the pocket gets too small.
//
//	         C
//	        / \
//	       /( )\     corner circles shrink towards each vertex
//	      /     \
//	     /  ( )  \   incircle
//	    / o     o \
//	   A-----------B
//
// Corners never interact: every circle in a corner lies between the vertex
// and the incircle, and corner pockets are disjoint.
package packer

import (
	"github.com/osuushi/circpack/geom"
	"github.com/osuushi/circpack/tangency"
)

// PackTriangle packs tri, which is triangle number index of the mesh. The
// result starts with the incircle, followed by the circles of corner A, B
// and C in that order. Degenerate triangles produce no circles.
func PackTriangle(index int, tri geom.Triangle, opts Options) []Circle {
	tri = tri.CCW()
	if tri.IsDegenerate() {
		return nil
	}
	incircle := tri.Incircle()
	if incircle.Radius < opts.MinRadius {
		return nil
	}

	circles := []Circle{{Circle: incircle, Triangle: index, Corner: -1, Kind: Incircle}}
	if opts.Depth <= 0 {
		return circles
	}

	solverOpts := tangency.Options{MinRadius: opts.MinRadius}
	var stack TaskStack
	// Pushed in reverse so that corner A comes off the stack first
	for corner := 2; corner >= 0; corner-- {
		stack.Push(Task{Corner: corner, Parent: incircle, Depth: 1})
	}

	for task, ok := stack.Pop(); ok; task, ok = stack.Pop() {
		pocket := tangency.Corner{
			Vertex: tri.Vertex(task.Corner),
			A:      tri.Vertex(task.Corner + 1),
			B:      tri.Vertex(task.Corner + 2),
			Parent: task.Parent,
		}
		child, fits := tangency.Solve(pocket, solverOpts)
		if !fits {
			// Nothing fits; this corner is done.
			continue
		}
		placed := Circle{Circle: child, Triangle: index, Depth: task.Depth, Corner: task.Corner, Kind: CornerCircle}
		circles = append(circles, placed)
		if opts.FillGaps {
			circles = append(circles, fillGaps(pocket, placed, solverOpts)...)
		}

		if task.Depth < opts.Depth {
			stack.Push(Task{Corner: task.Corner, Parent: child, Depth: task.Depth + 1})
		}
	}
	return circles
}

// The corner circle touches its parent, and both touch the two edges. Along
// each edge that leaves a gap between the two circles and the edge, and once
// that gap holds a circle, three smaller gaps around it: one against both
// circles and one against each circle and the edge.
func fillGaps(pocket tangency.Corner, child Circle, opts tangency.Options) []Circle {
	var circles []Circle
	place := func(kind Kind, p tangency.Pocket) (geom.Circle, bool) {
		circle, ok := tangency.Solve(p, opts)
		if ok {
			circles = append(circles, Circle{
				Circle:   circle,
				Triangle: child.Triangle,
				Depth:    child.Depth,
				Corner:   child.Corner,
				Kind:     kind,
			})
		}
		return circle, ok
	}

	parent := pocket.Parent
	sides := []struct {
		edge   geom.Segment
		inside geom.Point
	}{
		{geom.Segment{Start: pocket.Vertex, End: pocket.A}, pocket.B},
		{geom.Segment{Start: pocket.Vertex, End: pocket.B}, pocket.A},
	}
	for _, side := range sides {
		gap, ok := place(EdgeGapCircle, tangency.EdgeGap{Edge: side.edge, Inside: side.inside, First: parent, Second: child.Circle})
		if !ok {
			continue
		}
		place(IntersticeCircle, tangency.Interstice{First: parent, Second: child.Circle, Third: gap})
		place(EdgeGapCircle, tangency.EdgeGap{Edge: side.edge, Inside: side.inside, First: child.Circle, Second: gap})
		place(EdgeGapCircle, tangency.EdgeGap{Edge: side.edge, Inside: side.inside, First: parent, Second: gap})
	}
	return circles
}
