package mesh

import (
	"fmt"

	"github.com/pkg/errors"
)

// TriangulationError reports a boundary or a set of quality constraints the
// mesher could not satisfy. Quality holds the parameters as supplied.
type TriangulationError struct {
	Quality Quality
	Reason  string
	Err     error
}

func (e *TriangulationError) Error() string {
	msg := fmt.Sprintf("triangulation failed (%s): %s", e.Quality, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TriangulationError) Unwrap() error {
	return e.Err
}

// Threading errors up and down all the flip and refinement loops would add a
// ton of complexity to the code. Instead, we use panics, and Triangulate
// recovers to convert to an error.

type meshPanic struct {
	err error
}

// Panic with an error that handlePanicRecover will turn back into an error.
func fatalf(format string, args ...interface{}) {
	panic(meshPanic{errors.Errorf(format, args...)})
}

func handlePanicRecover(r interface{}) error {
	if r != nil {
		if p, ok := r.(meshPanic); ok {
			return p.err
		}
		panic(r)
	}
	return nil
}
