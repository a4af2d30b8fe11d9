package mesh

import (
	"math"

	"github.com/osuushi/circpack/geom"
	"github.com/pkg/errors"
)

// Mesh is a constrained Delaunay triangulation of a polygon. The first
// Boundary vertices are the polygon's own points, in counterclockwise order;
// the rest are Steiner points added during refinement. Triangles hold vertex
// indices in counterclockwise order and Segments hold the boundary
// subsegments, also counterclockwise.
type Mesh struct {
	Vertices  []geom.Point
	Triangles [][3]int
	Segments  [][2]int
	Boundary  int
}

func (m *Mesh) Len() int {
	return len(m.Triangles)
}

func (m *Mesh) Triangle(i int) geom.Triangle {
	t := m.Triangles[i]
	return geom.Triangle{A: m.Vertices[t[0]], B: m.Vertices[t[1]], C: m.Vertices[t[2]]}
}

func (m *Mesh) Area() float64 {
	var area float64
	for i := range m.Triangles {
		area += m.Triangle(i).Area()
	}
	return area
}

// Smallest interior angle over all triangles, in degrees.
func (m *Mesh) MinAngle() float64 {
	min := math.Inf(1)
	for i := range m.Triangles {
		angle, _ := m.Triangle(i).MinAngle()
		min = math.Min(min, angle)
	}
	return min * 180 / math.Pi
}

func (m *Mesh) MaxTriangleArea() float64 {
	var max float64
	for i := range m.Triangles {
		max = math.Max(max, m.Triangle(i).Area())
	}
	return max
}

// Area enclosed by the boundary subsegments.
func (m *Mesh) BoundaryArea() float64 {
	var sum float64
	for _, s := range m.Segments {
		sum += m.Vertices[s[0]].Cross(m.Vertices[s[1]])
	}
	return sum / 2
}

// Validate performs several sanity checks on the mesh. The rules are:
// 1. Every triangle is counterclockwise with non-zero area.
// 2. Every boundary subsegment is an edge of exactly one triangle.
// 3. No directed edge is used twice.
// 4. The triangle areas add up to the area enclosed by the boundary.
// You normally shouldn't need to call this but it is useful in tests.
func (m *Mesh) Validate() error {
	directed := make(map[edge]int)
	var area float64
	for i, t := range m.Triangles {
		for _, v := range t {
			if v < 0 || v >= len(m.Vertices) {
				return errors.Errorf("triangle %d references vertex %d of %d", i, v, len(m.Vertices))
			}
		}
		tri := m.Triangle(i)
		if geom.Orientation(tri.A, tri.B, tri.C) != 1 {
			return errors.Errorf("triangle %d is not counterclockwise: %v", i, tri)
		}
		area += tri.Area()
		for k := 0; k < 3; k++ {
			e := edge{t[k], t[(k+1)%3]}
			if other, ok := directed[e]; ok {
				return errors.Errorf("edge %v shared by triangles %d and %d", e, other, i)
			}
			directed[e] = i
		}
	}

	for _, s := range m.Segments {
		if _, ok := directed[edge{s[0], s[1]}]; !ok {
			return errors.Errorf("boundary segment %v is not a triangle edge", s)
		}
		if _, ok := directed[edge{s[1], s[0]}]; ok {
			return errors.Errorf("boundary segment %v has a triangle outside the boundary", s)
		}
	}

	boundary := m.BoundaryArea()
	if math.Abs(boundary-area) > 1e-6*math.Max(1, boundary) {
		return errors.Errorf("triangle area %g does not match boundary area %g", area, boundary)
	}
	return nil
}
