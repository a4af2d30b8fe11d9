package tangency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveQuadratic(t *testing.T) {
	cases := []struct {
		name     string
		a, b, c  float64
		expected []float64
	}{
		{"two roots", 1, -3, 2, []float64{1, 2}},
		{"scaled", -2, 6, -4, []float64{1, 2}},
		{"double root", 1, -2, 1, []float64{1}},
		{"no real roots", 1, 0, 1, nil},
		{"linear", 0, 2, -4, []float64{2}},
		{"nothing at all", 0, 0, 1, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			roots := solveQuadratic(tc.a, tc.b, tc.c)
			assert.Len(t, roots, len(tc.expected))
			for i := range tc.expected {
				assert.InDelta(t, tc.expected[i], roots[i], 1e-12)
			}
		})
	}
}

func TestSolveQuadratic_NoCancellation(t *testing.T) {
	// x^2 - 1e8 x + 1 = 0 has a root near 1e-8 that the textbook formula
	// loses entirely.
	roots := solveQuadratic(1, -1e8, 1)
	assert.Len(t, roots, 2)
	assert.InEpsilon(t, 1e-8, roots[0], 1e-9)
	assert.InEpsilon(t, 1e8, roots[1], 1e-9)
}
