package tabulated

import (
	"iter"
	"math"

	g "github.com/anacrolix/generics"
)

const headSlot = 0

// handle addresses an arena slot. A handle outlives its node: once the slot
// is released the generation moves on and the handle stops validating.
type handle struct {
	slot int
	gen  uint32
}

type listNode struct {
	p          Point
	prev, next int
	gen        uint32
	live       bool
}

type nodeArena struct {
	nodes []listNode
	free  []int
}

func newNodeArena() *nodeArena {
	return &nodeArena{
		nodes: []listNode{{prev: headSlot, next: headSlot, live: true}},
	}
}

func (a *nodeArena) alloc(p Point) int {
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]

		a.nodes[slot].p = p
		a.nodes[slot].live = true

		return slot
	}

	a.nodes = append(a.nodes, listNode{p: p, live: true})

	return len(a.nodes) - 1
}

func (a *nodeArena) release(slot int) {
	node := &a.nodes[slot]
	node.p = Point{}
	node.prev, node.next = -1, -1
	node.live = false
	node.gen++

	a.free = append(a.free, slot)
}

func (a *nodeArena) handle(slot int) handle {
	return handle{slot: slot, gen: a.nodes[slot].gen}
}

func (a *nodeArena) valid(h handle) bool {
	if h.slot <= headSlot || h.slot >= len(a.nodes) {
		return false
	}

	node := &a.nodes[h.slot]

	return node.live && node.gen == h.gen
}

type cursor struct {
	node  handle
	index int
}

var _ TabulatedFunction = (*LinkedListFunction)(nil)

// LinkedListFunction keeps its samples in a doubly linked ring around a
// sentinel head. The last resolved index is remembered, so walks with
// locality cost O(distance) instead of O(n).
type LinkedListFunction struct {
	arena *nodeArena
	count int

	cache g.Option[cursor]
	hops  int
}

func newLinkedListFunction(ps []Point) *LinkedListFunction {
	impl := &LinkedListFunction{
		arena: newNodeArena(),
	}

	for _, p := range ps {
		impl.insertBefore(headSlot, p)
	}

	return impl
}

func NewLinkedListFunction(xs, ys []float64) (*LinkedListFunction, error) {
	ps, err := pointsFromArrays(xs, ys)
	if err != nil {
		return nil, err
	}

	return newLinkedListFunction(ps), nil
}

func NewLinkedListFunctionByStep(left, right float64, count int) (*LinkedListFunction, error) {
	ps, err := pointsByStep(left, right, count)
	if err != nil {
		return nil, err
	}

	return newLinkedListFunction(ps), nil
}

func NewLinkedListFunctionByValues(left, right float64, ys []float64) (*LinkedListFunction, error) {
	ps, err := pointsByValues(left, right, ys)
	if err != nil {
		return nil, err
	}

	return newLinkedListFunction(ps), nil
}

func NewEmptyLinkedListFunction() *LinkedListFunction {
	return newLinkedListFunction(nil)
}

func (impl *LinkedListFunction) node(slot int) *listNode {
	return &impl.arena.nodes[slot]
}

func (impl *LinkedListFunction) insertBefore(nextSlot int, p Point) {
	slot := impl.arena.alloc(p)
	prevSlot := impl.node(nextSlot).prev

	n := impl.node(slot)
	n.prev, n.next = prevSlot, nextSlot
	impl.node(prevSlot).next = slot
	impl.node(nextSlot).prev = slot

	impl.count++
}

func (impl *LinkedListFunction) unlink(slot int) {
	n := impl.node(slot)
	impl.node(n.prev).next = n.next
	impl.node(n.next).prev = n.prev

	impl.arena.release(slot)
	impl.count--
}

func (impl *LinkedListFunction) cachedCursor() (c cursor, ok bool) {
	if !impl.cache.Ok {
		return
	}

	c = impl.cache.Value
	if !impl.arena.valid(c.node) || c.index < 0 || c.index >= impl.count {
		impl.cache = g.None[cursor]()

		return cursor{}, false
	}

	return c, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// nodeAt walks to index from the nearest of the cached cursor, the head and
// the tail. index must be valid.
func (impl *LinkedListFunction) nodeAt(index int) int {
	fromHead := index
	fromTail := impl.count - 1 - index
	fromCache := math.MaxInt

	c, cached := impl.cachedCursor()
	if cached {
		fromCache = absInt(index - c.index)
	}

	var slot, at int

	switch {
	case cached && fromCache <= fromHead && fromCache <= fromTail:
		slot, at = c.node.slot, c.index
	case fromHead <= fromTail:
		slot, at = impl.node(headSlot).next, 0
	default:
		slot, at = impl.node(headSlot).prev, impl.count-1
	}

	for ; at < index; at++ {
		slot = impl.node(slot).next
		impl.hops++
	}

	for ; at > index; at-- {
		slot = impl.node(slot).prev
		impl.hops++
	}

	impl.cache = g.Some(cursor{node: impl.arena.handle(slot), index: index})

	return slot
}

func (impl *LinkedListFunction) PointCount() int {
	return impl.count
}

func (impl *LinkedListFunction) Point(index int) (p Point, err error) {
	if err = checkIndex(index, impl.count); err != nil {
		return
	}

	p = impl.node(impl.nodeAt(index)).p

	return
}

func (impl *LinkedListFunction) PointX(index int) (float64, error) {
	p, err := impl.Point(index)

	return p.X, err
}

func (impl *LinkedListFunction) PointY(index int) (float64, error) {
	p, err := impl.Point(index)

	return p.Y, err
}

func (impl *LinkedListFunction) neighbors(slot int) (prev, next g.Option[float64]) {
	n := impl.node(slot)

	if n.prev != headSlot {
		prev = g.Some(impl.node(n.prev).p.X)
	}

	if n.next != headSlot {
		next = g.Some(impl.node(n.next).p.X)
	}

	return
}

func (impl *LinkedListFunction) SetPoint(index int, p Point) error {
	if err := checkIndex(index, impl.count); err != nil {
		return err
	}

	slot := impl.nodeAt(index)

	prev, next := impl.neighbors(slot)
	if err := checkNeighbors(p.X, prev, next); err != nil {
		return err
	}

	impl.node(slot).p = p

	return nil
}

func (impl *LinkedListFunction) SetPointX(index int, x float64) error {
	y, err := impl.PointY(index)
	if err != nil {
		return err
	}

	return impl.SetPoint(index, Point{X: x, Y: y})
}

func (impl *LinkedListFunction) SetPointY(index int, y float64) error {
	if err := checkIndex(index, impl.count); err != nil {
		return err
	}

	impl.node(impl.nodeAt(index)).p.Y = y

	return nil
}

func (impl *LinkedListFunction) AddPoint(p Point) error {
	if err := checkInsertable(p.X); err != nil {
		return err
	}

	slot, at := impl.node(headSlot).next, 0

	for ; slot != headSlot; slot, at = impl.node(slot).next, at+1 {
		x := impl.node(slot).p.X

		if sameAbscissa(x, p.X) {
			return duplicateError(p.X)
		}

		if x > p.X {
			break
		}
	}

	impl.insertBefore(slot, p)

	if impl.cache.Ok && impl.cache.Value.index >= at {
		impl.cache.Value.index++
	}

	return nil
}

func (impl *LinkedListFunction) DeletePoint(index int) error {
	if err := checkIndex(index, impl.count); err != nil {
		return err
	}

	if err := checkDeletable(impl.count); err != nil {
		return err
	}

	slot := impl.nodeAt(index)

	// nodeAt left the cursor on the node being removed
	impl.cache = g.None[cursor]()

	impl.unlink(slot)

	return nil
}

func (impl *LinkedListFunction) LeftBound() float64 {
	if impl.count == 0 {
		return math.NaN()
	}

	return impl.node(impl.node(headSlot).next).p.X
}

func (impl *LinkedListFunction) RightBound() float64 {
	if impl.count == 0 {
		return math.NaN()
	}

	return impl.node(impl.node(headSlot).prev).p.X
}

func (impl *LinkedListFunction) all() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for slot := impl.node(headSlot).next; slot != headSlot; slot = impl.node(slot).next {
			if !yield(impl.node(slot).p) {
				return
			}
		}
	}
}

func (impl *LinkedListFunction) FunctionValue(x float64) float64 {
	return evaluate(x, impl.LeftBound(), impl.RightBound(), impl.all())
}
