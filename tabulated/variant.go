package tabulated

import "fmt"

type Variant string

const (
	VariantArray      Variant = "array"
	VariantLinkedList Variant = "linked"
	VariantBTree      Variant = "btree"
)

func Variants() []Variant {
	return []Variant{VariantArray, VariantLinkedList, VariantBTree}
}

func (v Variant) Valid() bool {
	switch v {
	case VariantArray, VariantLinkedList, VariantBTree:
		return true
	}

	return false
}

func unknownVariant(v Variant) error {
	return fmt.Errorf("%w: %q", ErrUnknownVariant, v)
}

// wrap keeps a failed constructor from yielding a non-nil interface.
func wrap[F TabulatedFunction](f F, err error) (TabulatedFunction, error) {
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFunction(v Variant, xs, ys []float64) (TabulatedFunction, error) {
	switch v {
	case VariantArray:
		return wrap(NewArrayFunction(xs, ys))
	case VariantLinkedList:
		return wrap(NewLinkedListFunction(xs, ys))
	case VariantBTree:
		return wrap(NewBTreeFunction(xs, ys))
	}

	return nil, unknownVariant(v)
}

func NewFunctionByStep(v Variant, left, right float64, count int) (TabulatedFunction, error) {
	switch v {
	case VariantArray:
		return wrap(NewArrayFunctionByStep(left, right, count))
	case VariantLinkedList:
		return wrap(NewLinkedListFunctionByStep(left, right, count))
	case VariantBTree:
		return wrap(NewBTreeFunctionByStep(left, right, count))
	}

	return nil, unknownVariant(v)
}

func NewFunctionByValues(v Variant, left, right float64, ys []float64) (TabulatedFunction, error) {
	switch v {
	case VariantArray:
		return wrap(NewArrayFunctionByValues(left, right, ys))
	case VariantLinkedList:
		return wrap(NewLinkedListFunctionByValues(left, right, ys))
	case VariantBTree:
		return wrap(NewBTreeFunctionByValues(left, right, ys))
	}

	return nil, unknownVariant(v)
}

func NewEmptyFunction(v Variant) (TabulatedFunction, error) {
	switch v {
	case VariantArray:
		return NewEmptyArrayFunction(), nil
	case VariantLinkedList:
		return NewEmptyLinkedListFunction(), nil
	case VariantBTree:
		return NewEmptyBTreeFunction(), nil
	}

	return nil, unknownVariant(v)
}
