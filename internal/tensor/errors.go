package tensor

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by array construction and kernels.
var (
	// ErrShape marks any shape incompatibility. *ShapeError matches it.
	ErrShape = errors.New("shape mismatch")

	// ErrRagged is returned when nested input has inconsistent sub-lengths.
	ErrRagged = errors.New("ragged nested sequence")

	// ErrUnsupportedType is returned when input data is not numeric.
	ErrUnsupportedType = errors.New("unsupported data type")

	// ErrNotScalar is returned when a single value is requested from a
	// multi-element array.
	ErrNotScalar = errors.New("array is not a scalar")
)

// ShapeError describes operands whose shapes cannot be combined by Op.
type ShapeError struct {
	Op     string
	Left   Shape
	Right  Shape
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Left == nil && e.Right == nil {
		return e.Op + ": " + ErrShape.Error() + " (" + e.Reason + ")"
	}
	msg := fmt.Sprintf("%s: shapes %v and %v are incompatible", e.Op, e.Left, e.Right)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// Is lets errors.Is(err, ErrShape) match any *ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}
