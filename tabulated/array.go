package tabulated

import (
	"iter"
	"math"

	g "github.com/anacrolix/generics"
)

const arrayReserve = 10

var _ TabulatedFunction = (*ArrayFunction)(nil)

// ArrayFunction keeps its samples in a contiguous buffer. Only the first
// count slots are live.
type ArrayFunction struct {
	points []Point
	count  int
}

func newArrayFunction(ps []Point) *ArrayFunction {
	points := make([]Point, len(ps)+arrayReserve)
	copy(points, ps)

	return &ArrayFunction{
		points: points,
		count:  len(ps),
	}
}

func NewArrayFunction(xs, ys []float64) (*ArrayFunction, error) {
	ps, err := pointsFromArrays(xs, ys)
	if err != nil {
		return nil, err
	}

	return newArrayFunction(ps), nil
}

func NewArrayFunctionByStep(left, right float64, count int) (*ArrayFunction, error) {
	ps, err := pointsByStep(left, right, count)
	if err != nil {
		return nil, err
	}

	return newArrayFunction(ps), nil
}

func NewArrayFunctionByValues(left, right float64, ys []float64) (*ArrayFunction, error) {
	ps, err := pointsByValues(left, right, ys)
	if err != nil {
		return nil, err
	}

	return newArrayFunction(ps), nil
}

// NewEmptyArrayFunction returns a function without samples, to be filled by
// AddPoint.
func NewEmptyArrayFunction() *ArrayFunction {
	return newArrayFunction(nil)
}

func (impl *ArrayFunction) Capacity() int {
	return len(impl.points)
}

func (impl *ArrayFunction) PointCount() int {
	return impl.count
}

func (impl *ArrayFunction) Point(index int) (p Point, err error) {
	if err = checkIndex(index, impl.count); err != nil {
		return
	}

	p = impl.points[index]

	return
}

func (impl *ArrayFunction) PointX(index int) (float64, error) {
	p, err := impl.Point(index)

	return p.X, err
}

func (impl *ArrayFunction) PointY(index int) (float64, error) {
	p, err := impl.Point(index)

	return p.Y, err
}

func (impl *ArrayFunction) neighbors(index int) (prev, next g.Option[float64]) {
	if index > 0 {
		prev = g.Some(impl.points[index-1].X)
	}

	if index < impl.count-1 {
		next = g.Some(impl.points[index+1].X)
	}

	return
}

func (impl *ArrayFunction) SetPoint(index int, p Point) error {
	if err := checkIndex(index, impl.count); err != nil {
		return err
	}

	prev, next := impl.neighbors(index)
	if err := checkNeighbors(p.X, prev, next); err != nil {
		return err
	}

	impl.points[index] = p

	return nil
}

func (impl *ArrayFunction) SetPointX(index int, x float64) error {
	if err := checkIndex(index, impl.count); err != nil {
		return err
	}

	return impl.SetPoint(index, Point{X: x, Y: impl.points[index].Y})
}

func (impl *ArrayFunction) SetPointY(index int, y float64) error {
	if err := checkIndex(index, impl.count); err != nil {
		return err
	}

	impl.points[index].Y = y

	return nil
}

func (impl *ArrayFunction) AddPoint(p Point) error {
	if err := checkInsertable(p.X); err != nil {
		return err
	}

	insertAt := impl.count

	for idx := 0; idx < impl.count; idx++ {
		if sameAbscissa(impl.points[idx].X, p.X) {
			return duplicateError(p.X)
		}

		if impl.points[idx].X > p.X {
			insertAt = idx

			break
		}
	}

	if impl.count == len(impl.points) {
		impl.grow()
	}

	copy(impl.points[insertAt+1:impl.count+1], impl.points[insertAt:impl.count])
	impl.points[insertAt] = p
	impl.count++

	return nil
}

func (impl *ArrayFunction) grow() {
	points := make([]Point, 2*len(impl.points))
	copy(points, impl.points[:impl.count])
	impl.points = points
}

func (impl *ArrayFunction) DeletePoint(index int) error {
	if err := checkIndex(index, impl.count); err != nil {
		return err
	}

	if err := checkDeletable(impl.count); err != nil {
		return err
	}

	copy(impl.points[index:impl.count-1], impl.points[index+1:impl.count])
	impl.count--
	impl.points[impl.count] = Point{}

	return nil
}

func (impl *ArrayFunction) LeftBound() float64 {
	if impl.count == 0 {
		return math.NaN()
	}

	return impl.points[0].X
}

func (impl *ArrayFunction) RightBound() float64 {
	if impl.count == 0 {
		return math.NaN()
	}

	return impl.points[impl.count-1].X
}

func (impl *ArrayFunction) all() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, p := range impl.points[:impl.count] {
			if !yield(p) {
				return
			}
		}
	}
}

func (impl *ArrayFunction) FunctionValue(x float64) float64 {
	return evaluate(x, impl.LeftBound(), impl.RightBound(), impl.all())
}
