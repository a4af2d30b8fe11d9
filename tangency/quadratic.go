package tangency

import "math"

// Real roots of a*x^2 + b*x + c = 0 in ascending order. Uses the form that
// avoids cancellation between -b and the root of the discriminant. A
// discriminant that is negative only by rounding counts as a double root.
func solveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		return solveLinear(b, c)
	}

	arg := sc1*sc1 - 4*sc0
	if !isFinite(arg) {
		// Overflow. One root is close to -sc1.
		root1 := -sc1
		root2 := sc0 / root1
		if !isFinite(root2) {
			return []float64{root1}
		}
		return sorted(root1, root2)
	}
	if arg < 0 {
		if arg < -rootSlack*(sc1*sc1+4*math.Abs(sc0)) {
			return nil
		}
		arg = 0
	}
	if arg == 0 {
		return []float64{-0.5 * sc1}
	}

	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float64{root1}
	}
	return sorted(root1, root2)
}

const rootSlack = 1e-12

func solveLinear(b, c float64) []float64 {
	root := -c / b
	if isFinite(root) {
		return []float64{root}
	}
	return nil
}

func sorted(x, y float64) []float64 {
	if x > y {
		return []float64{y, x}
	}
	return []float64{x, y}
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
