package tabulated

import (
	"iter"
	"math"

	g "github.com/anacrolix/generics"
	"github.com/tidwall/btree"
)

var _ TabulatedFunction = (*BTreeFunction)(nil)

// BTreeFunction keeps its samples in a B-tree ordered by abscissa. Index
// access and evaluation seek in O(log n).
type BTreeFunction struct {
	tree *btree.BTreeG[Point]
}

func lessAbscissa(a, b Point) bool {
	return a.X < b.X
}

func newBTreeFunction(ps []Point) *BTreeFunction {
	impl := &BTreeFunction{
		tree: btree.NewBTreeGOptions(lessAbscissa, btree.Options{NoLocks: true}),
	}

	for _, p := range ps {
		impl.tree.Set(p)
	}

	return impl
}

func NewBTreeFunction(xs, ys []float64) (*BTreeFunction, error) {
	ps, err := pointsFromArrays(xs, ys)
	if err != nil {
		return nil, err
	}

	return newBTreeFunction(ps), nil
}

func NewBTreeFunctionByStep(left, right float64, count int) (*BTreeFunction, error) {
	ps, err := pointsByStep(left, right, count)
	if err != nil {
		return nil, err
	}

	return newBTreeFunction(ps), nil
}

func NewBTreeFunctionByValues(left, right float64, ys []float64) (*BTreeFunction, error) {
	ps, err := pointsByValues(left, right, ys)
	if err != nil {
		return nil, err
	}

	return newBTreeFunction(ps), nil
}

func NewEmptyBTreeFunction() *BTreeFunction {
	return newBTreeFunction(nil)
}

func (impl *BTreeFunction) PointCount() int {
	return impl.tree.Len()
}

func (impl *BTreeFunction) Point(index int) (Point, error) {
	if err := checkIndex(index, impl.tree.Len()); err != nil {
		return Point{}, err
	}

	p, _ := impl.tree.GetAt(index)

	return p, nil
}

func (impl *BTreeFunction) PointX(index int) (float64, error) {
	p, err := impl.Point(index)

	return p.X, err
}

func (impl *BTreeFunction) PointY(index int) (float64, error) {
	p, err := impl.Point(index)

	return p.Y, err
}

func (impl *BTreeFunction) neighbors(index int) (prev, next g.Option[float64]) {
	if index > 0 {
		p, _ := impl.tree.GetAt(index - 1)
		prev = g.Some(p.X)
	}

	if index < impl.tree.Len()-1 {
		p, _ := impl.tree.GetAt(index + 1)
		next = g.Some(p.X)
	}

	return
}

func (impl *BTreeFunction) SetPoint(index int, p Point) error {
	if err := checkIndex(index, impl.tree.Len()); err != nil {
		return err
	}

	prev, next := impl.neighbors(index)
	if err := checkNeighbors(p.X, prev, next); err != nil {
		return err
	}

	// the key changes with the abscissa, so the slot is replaced
	impl.tree.DeleteAt(index)
	impl.tree.Set(p)

	return nil
}

func (impl *BTreeFunction) SetPointX(index int, x float64) error {
	y, err := impl.PointY(index)
	if err != nil {
		return err
	}

	return impl.SetPoint(index, Point{X: x, Y: y})
}

func (impl *BTreeFunction) SetPointY(index int, y float64) error {
	x, err := impl.PointX(index)
	if err != nil {
		return err
	}

	impl.tree.Set(Point{X: x, Y: y})

	return nil
}

func (impl *BTreeFunction) AddPoint(p Point) error {
	if err := checkInsertable(p.X); err != nil {
		return err
	}

	duplicate := false

	impl.tree.Ascend(Point{X: p.X - Epsilon}, func(item Point) bool {
		if item.X >= p.X+Epsilon {
			return false
		}

		duplicate = sameAbscissa(item.X, p.X)

		return !duplicate
	})

	if duplicate {
		return duplicateError(p.X)
	}

	impl.tree.Set(p)

	return nil
}

func (impl *BTreeFunction) DeletePoint(index int) error {
	if err := checkIndex(index, impl.tree.Len()); err != nil {
		return err
	}

	if err := checkDeletable(impl.tree.Len()); err != nil {
		return err
	}

	impl.tree.DeleteAt(index)

	return nil
}

func (impl *BTreeFunction) LeftBound() float64 {
	p, ok := impl.tree.Min()
	if !ok {
		return math.NaN()
	}

	return p.X
}

func (impl *BTreeFunction) RightBound() float64 {
	p, ok := impl.tree.Max()
	if !ok {
		return math.NaN()
	}

	return p.X
}

// from yields the samples starting at the last one at or below x-Epsilon.
// Intervals ending before it cannot match x.
func (impl *BTreeFunction) from(x float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		var start g.Option[Point]

		impl.tree.Descend(Point{X: x - Epsilon}, func(item Point) bool {
			start = g.Some(item)

			return false
		})

		if !start.Ok {
			start.Value, start.Ok = impl.tree.Min()
			if !start.Ok {
				return
			}
		}

		impl.tree.Ascend(start.Value, yield)
	}
}

func (impl *BTreeFunction) FunctionValue(x float64) float64 {
	return evaluate(x, impl.LeftBound(), impl.RightBound(), impl.from(x))
}
