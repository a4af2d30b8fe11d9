package geom

import "fmt"

// DegenerateGeometryError reports an unusable polygon boundary: too few
// distinct points, (near) zero area or a self-intersection.
type DegenerateGeometryError struct {
	Reason string
	Points int
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry (%d points): %s", e.Points, e.Reason)
}

func degeneratef(points int, format string, args ...interface{}) error {
	return &DegenerateGeometryError{Reason: fmt.Sprintf(format, args...), Points: points}
}
