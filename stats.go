package circpack

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a packing.
type Stats struct {
	Count     int
	Triangles int
	// Total circle area, polygon area and their ratio.
	PackedArea  float64
	PolygonArea float64
	FillRatio   float64
	MinRadius   float64
	MaxRadius   float64
	MeanRadius  float64
	// Half of the circles are smaller than this.
	MedianRadius float64
	// Number of circles at each depth; index 0 counts the incircles.
	PerDepth []int
}

func (r *Result) Stats() Stats {
	s := Stats{
		Count:       len(r.Circles),
		Triangles:   r.Mesh.Len(),
		PolygonArea: r.Polygon.Area(),
	}
	if len(r.Circles) == 0 {
		return s
	}

	radii := make([]float64, len(r.Circles))
	areas := make([]float64, len(r.Circles))
	for i, c := range r.Circles {
		radii[i] = c.Radius
		areas[i] = c.Area()
		for len(s.PerDepth) <= c.Depth {
			s.PerDepth = append(s.PerDepth, 0)
		}
		s.PerDepth[c.Depth]++
	}

	s.PackedArea = floats.Sum(areas)
	s.FillRatio = s.PackedArea / s.PolygonArea
	s.MinRadius = floats.Min(radii)
	s.MaxRadius = floats.Max(radii)
	s.MeanRadius = stat.Mean(radii, nil)
	s.MedianRadius = median(radii)
	return s
}

func median(radii []float64) float64 {
	sorted := append([]float64(nil), radii...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d circles in %d triangles, fill ratio %.4f", s.Count, s.Triangles, s.FillRatio)
}
