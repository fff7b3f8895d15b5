package tabulated

import (
	"iter"
	"math"
)

func sameAbscissa(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// interpolate resolves x against the interval [a, b]. The order of the checks
// decides the result at sample points and on zero width intervals.
func interpolate(x float64, a, b Point) (float64, bool) {
	switch {
	case sameAbscissa(x, a.X):
		return a.Y, true
	case sameAbscissa(x, b.X):
		return b.Y, true
	case x > a.X && x < b.X:
		if sameAbscissa(a.X, b.X) {
			return (a.Y + b.Y) / 2, true
		}

		return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X), true
	}

	return 0, false
}

func evaluate(x, left, right float64, points iter.Seq[Point]) float64 {
	if x < left || x > right {
		return math.NaN()
	}

	var (
		prev Point
		seen bool
	)

	for p := range points {
		if seen {
			if y, ok := interpolate(x, prev, p); ok {
				return y
			}
		}

		prev, seen = p, true
	}

	// a single sample has no interval to match
	if seen && sameAbscissa(x, prev.X) {
		return prev.Y
	}

	return math.NaN()
}

func contractPoints(f TabulatedFunction) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for idx := 0; idx < f.PointCount(); idx++ {
			p, err := f.Point(idx)
			if err != nil {
				return
			}

			if !yield(p) {
				return
			}
		}
	}
}

// Evaluate computes the interpolated value of f at x using only the
// TabulatedFunction contract. Every store's FunctionValue agrees with it.
func Evaluate(f TabulatedFunction, x float64) float64 {
	return evaluate(x, f.LeftBound(), f.RightBound(), contractPoints(f))
}

// Points returns a copy of all samples of f in order.
func Points(f TabulatedFunction) []Point {
	ps := make([]Point, 0, f.PointCount())

	for p := range contractPoints(f) {
		ps = append(ps, p)
	}

	return ps
}

// Equal reports whether a and b hold the same samples within Epsilon.
func Equal(a, b TabulatedFunction) bool {
	if a.PointCount() != b.PointCount() {
		return false
	}

	pas, pbs := Points(a), Points(b)
	if len(pas) != len(pbs) {
		return false
	}

	for idx := range pas {
		if !sameAbscissa(pas[idx].X, pbs[idx].X) || math.Abs(pas[idx].Y-pbs[idx].Y) >= Epsilon {
			return false
		}
	}

	return true
}
