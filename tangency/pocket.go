// Package tangency finds the circle that fills a pocket left between triangle
// edges and circles that are already placed. Every pocket kind has exactly
// one useful answer: the circle touching all of its constraints from inside
// the pocket. When no such circle exists, or it would be no smaller than its
// neighbours, Solve reports false and the caller stops filling that pocket.
package tangency

import "github.com/osuushi/circpack/geom"

// Pocket is one of Corner, EdgeGap or Interstice.
type Pocket interface {
	// The circles the solution must touch. They are never overlapped and the
	// solution is always strictly smaller than each of them.
	Parents() []geom.Circle
	isPocket()
}

// Corner is the space between the vertex of a triangle and the last circle
// placed in that corner. The edges run from Vertex towards A and B.
type Corner struct {
	Vertex geom.Point
	A, B   geom.Point
	Parent geom.Circle
}

// EdgeGap is the space between an edge and two circles touching each other,
// usually both resting on the edge. Inside is any point on the side of the
// edge where the circles are.
type EdgeGap struct {
	Edge          geom.Segment
	Inside        geom.Point
	First, Second geom.Circle
}

// Interstice is the curved triangle left between three mutually tangent
// circles.
type Interstice struct {
	First, Second, Third geom.Circle
}

func (c Corner) Parents() []geom.Circle {
	return []geom.Circle{c.Parent}
}

func (g EdgeGap) Parents() []geom.Circle {
	return []geom.Circle{g.First, g.Second}
}

func (i Interstice) Parents() []geom.Circle {
	return []geom.Circle{i.First, i.Second, i.Third}
}

func (Corner) isPocket()     {}
func (EdgeGap) isPocket()    {}
func (Interstice) isPocket() {}
