package mesh

import (
	"fmt"
	"math"
)

// Refinement is only guaranteed to terminate for minimum angles below roughly
// 34 degrees. Larger bounds are rejected instead of risking a run that never
// converges.
const MaxMinAngle = 34.0

const DefaultMaxSteiner = 200000

// Quality constrains the triangles produced by Triangulate. Zero values mean
// "unconstrained".
type Quality struct {
	// Minimum interior angle, in degrees.
	MinAngle float64
	// Maximum triangle area.
	MaxArea float64
	// Target edge length. It is converted to the area of the equilateral
	// triangle with that side.
	Length float64
	// Upper bound on inserted vertices before refinement gives up.
	MaxSteiner int
}

// AreaBound is the effective maximum triangle area: the stricter of MaxArea
// and the area implied by Length, or 0 when neither is set.
func (q Quality) AreaBound() float64 {
	bound := q.MaxArea
	if q.Length > 0 {
		fromLength := math.Sqrt(3) / 4 * q.Length * q.Length
		if bound == 0 || fromLength < bound {
			bound = fromLength
		}
	}
	return bound
}

// Resolve validates the constraints and fills in defaults.
func (q Quality) Resolve() (Quality, error) {
	invalid := func(format string, args ...interface{}) (Quality, error) {
		return q, &TriangulationError{Quality: q, Reason: fmt.Sprintf(format, args...)}
	}
	switch {
	case math.IsNaN(q.MinAngle) || q.MinAngle < 0:
		return invalid("minimum angle %g must be non-negative", q.MinAngle)
	case q.MinAngle > MaxMinAngle:
		return invalid("minimum angle %g exceeds %g degrees", q.MinAngle, MaxMinAngle)
	case math.IsNaN(q.MaxArea) || math.IsInf(q.MaxArea, 0) || q.MaxArea < 0:
		return invalid("maximum area %g must be a non-negative number", q.MaxArea)
	case math.IsNaN(q.Length) || math.IsInf(q.Length, 0) || q.Length < 0:
		return invalid("length %g must be a non-negative number", q.Length)
	case q.MaxSteiner < 0:
		return invalid("steiner limit %d must be non-negative", q.MaxSteiner)
	}
	if q.MaxSteiner == 0 {
		q.MaxSteiner = DefaultMaxSteiner
	}
	return q, nil
}

func (q Quality) String() string {
	return fmt.Sprintf("minAngle=%g maxArea=%g length=%g", q.MinAngle, q.MaxArea, q.Length)
}
