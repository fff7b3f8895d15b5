package tabulated

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrConstruction      = fmt.Errorf("%w: bad tabulated function parameters", commerr.ErrInvalidArgument)
	ErrIndexOutOfBounds  = fmt.Errorf("%w: point index out of bounds", commerr.ErrOutOfRange)
	ErrOrdering          = fmt.Errorf("%w: abscissa breaks ordering", commerr.ErrInvalidArgument)
	ErrDuplicateAbscissa = fmt.Errorf("%w: abscissa already exists", commerr.ErrAlreadyExists)
	ErrTooFewPoints      = fmt.Errorf("%w: cannot shrink below minimum point count", commerr.ErrReject)
	ErrUnknownVariant    = fmt.Errorf("%w: unknown storage variant", commerr.ErrInvalidArgument)
)

const minPointCount = 2

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: index %d, count %d", ErrIndexOutOfBounds, index, count)
	}

	return nil
}

func checkDeletable(count int) error {
	if count <= minPointCount {
		return fmt.Errorf("%w: count %d", ErrTooFewPoints, count)
	}

	return nil
}
