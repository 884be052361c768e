package tensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Number is the set of Go element types an Array can be built from.
// Values are stored as float64 regardless of the source type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Array is a dense row-major float64 array of arbitrary rank.
//
// An Array is immutable once constructed: accessors hand out copies and
// every kernel allocates a new Array for its result.
type Array struct {
	data    []float64
	shape   Shape
	strides []int
}

// New creates an Array of the given shape that owns a copy of data.
func New(shape Shape, data []float64) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, &ShapeError{
			Op:     "new",
			Left:   shape,
			Right:  Shape{len(data)},
			Reason: fmt.Sprintf("shape needs %d elements, got %d", shape.NumElements(), len(data)),
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return wrap(shape.Clone(), buf), nil
}

// wrap builds an Array around buf without copying. Callers must own buf.
func wrap(shape Shape, buf []float64) *Array {
	return &Array{
		data:    buf,
		shape:   shape,
		strides: shape.ComputeStrides(),
	}
}

// Wrap is the zero-copy constructor used by kernels that just allocated
// buf. The caller gives up ownership of buf and shape.
func Wrap(shape Shape, buf []float64) *Array {
	if len(buf) != shape.NumElements() {
		panic(fmt.Sprintf("tensor.Wrap: shape %v needs %d elements, got %d", shape, shape.NumElements(), len(buf)))
	}
	return wrap(shape, buf)
}

// Zeros returns an Array of the given shape filled with 0.
func Zeros(shape Shape) *Array {
	return wrap(shape.Clone(), make([]float64, shape.NumElements()))
}

// Ones returns an Array of the given shape filled with 1.
func Ones(shape Shape) *Array {
	return Full(shape, 1)
}

// Full returns an Array of the given shape filled with value.
func Full(shape Shape, value float64) *Array {
	buf := make([]float64, shape.NumElements())
	for i := range buf {
		buf[i] = value
	}
	return wrap(shape.Clone(), buf)
}

// Scalar returns a rank-0 Array holding v.
func Scalar[T Number](v T) *Array {
	return wrap(Shape{}, []float64{float64(v)})
}

// FromSlice creates an Array of the given shape from a flat slice.
//
// Example:
//
//	a, err := tensor.FromSlice([]int{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T Number](data []T, shape Shape) (*Array, error) {
	buf := make([]float64, len(data))
	for i, v := range data {
		buf[i] = float64(v)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(buf) != shape.NumElements() {
		return nil, &ShapeError{
			Op:     "from slice",
			Left:   shape,
			Right:  Shape{len(buf)},
			Reason: fmt.Sprintf("shape needs %d elements, got %d", shape.NumElements(), len(buf)),
		}
	}
	return wrap(shape.Clone(), buf), nil
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return len(a.data)
}

// Data returns a copy of the elements in row-major order.
func (a *Array) Data() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)
	return out
}

// Values exposes the backing buffer for kernels. It must not be modified.
func (a *Array) Values() []float64 {
	return a.data
}

// At returns the element at the given indices.
// Panics if the number of indices or any index is out of range.
func (a *Array) At(indices ...int) float64 {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("tensor.At: expected %d indices, got %d", len(a.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("tensor.At: index %d out of range for dimension %d of size %d", idx, i, a.shape[i]))
		}
		offset += idx * a.strides[i]
	}
	return a.data[offset]
}

// Item returns the single value of a one-element array.
func (a *Array) Item() (float64, error) {
	if len(a.data) != 1 {
		return 0, fmt.Errorf("item of shape %v: %w", a.shape, ErrNotScalar)
	}
	return a.data[0], nil
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	buf := make([]float64, len(a.data))
	copy(buf, a.data)
	return wrap(a.shape.Clone(), buf)
}

// AllClose reports whether both arrays have the same shape and every pair of
// elements differs by at most tol.
func (a *Array) AllClose(other *Array, tol float64) bool {
	if other == nil || !a.shape.Equal(other.shape) {
		return false
	}
	for i, v := range a.data {
		if math.Abs(v-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// String renders the array with NumPy-style nested brackets.
func (a *Array) String() string {
	if len(a.shape) == 0 {
		return formatElement(a.data[0])
	}
	var sb strings.Builder
	a.format(&sb, 0, 0)
	return sb.String()
}

func (a *Array) format(sb *strings.Builder, dim, offset int) {
	sb.WriteByte('[')
	n := a.shape[dim]
	last := dim == len(a.shape)-1
	for i := 0; i < n; i++ {
		if i > 0 {
			if last {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(strings.Repeat("\n", len(a.shape)-dim-1))
				sb.WriteString(strings.Repeat(" ", dim+1))
			}
		}
		if last {
			sb.WriteString(formatElement(a.data[offset+i]))
		} else {
			a.format(sb, dim+1, offset+i*a.strides[dim])
		}
	}
	sb.WriteByte(']')
}

func formatElement(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
