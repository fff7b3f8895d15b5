package tabulated

import (
	"fmt"
	"math"

	g "github.com/anacrolix/generics"
)

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

func pointsFromArrays(xs, ys []float64) ([]Point, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d abscissas, %d ordinates", ErrConstruction, len(xs), len(ys))
	}

	if len(xs) < minPointCount {
		return nil, fmt.Errorf("%w: %d points, need at least %d", ErrConstruction, len(xs), minPointCount)
	}

	ps := make([]Point, len(xs))

	for idx := range xs {
		if !isFinite(xs[idx]) {
			return nil, fmt.Errorf("%w: abscissa %d is not finite", ErrConstruction, idx)
		}

		if idx > 0 && xs[idx]-xs[idx-1] <= Epsilon {
			return nil, fmt.Errorf("%w: abscissas not strictly increasing at %d", ErrConstruction, idx)
		}

		ps[idx] = Point{X: xs[idx], Y: ys[idx]}
	}

	return ps, nil
}

func pointsByStep(left, right float64, count int) ([]Point, error) {
	if count < 0 {
		count = 0
	}

	return pointsByValues(left, right, make([]float64, count))
}

func pointsByValues(left, right float64, ys []float64) ([]Point, error) {
	if !isFinite(left) || !isFinite(right) || left >= right {
		return nil, fmt.Errorf("%w: bounds [%v, %v]", ErrConstruction, left, right)
	}

	if len(ys) < minPointCount {
		return nil, fmt.Errorf("%w: %d points, need at least %d", ErrConstruction, len(ys), minPointCount)
	}

	step := (right - left) / float64(len(ys)-1)
	if step <= Epsilon {
		return nil, fmt.Errorf("%w: step %v too small", ErrConstruction, step)
	}

	ps := make([]Point, len(ys))
	for idx, y := range ys {
		ps[idx] = Point{X: left + float64(idx)*step, Y: y}
	}

	return ps, nil
}

// checkNeighbors validates a new abscissa for a slot whose neighbors have the
// given abscissas.
func checkNeighbors(x float64, prev, next g.Option[float64]) error {
	if err := checkInsertable(x); err != nil {
		return err
	}

	if prev.Ok && x <= prev.Value+Epsilon {
		return fmt.Errorf("%w: %v must be greater than %v", ErrOrdering, x, prev.Value)
	}

	if next.Ok && x >= next.Value-Epsilon {
		return fmt.Errorf("%w: %v must be less than %v", ErrOrdering, x, next.Value)
	}

	return nil
}

func checkInsertable(x float64) error {
	if !isFinite(x) {
		return fmt.Errorf("%w: abscissa %v is not finite", ErrOrdering, x)
	}

	return nil
}

func duplicateError(x float64) error {
	return fmt.Errorf("%w: %v", ErrDuplicateAbscissa, x)
}
