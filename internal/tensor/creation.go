package tensor

import (
	"fmt"
	"reflect"
)

// FromData materializes raw Go data into an Array.
//
// Accepted inputs:
//   - *Array (cloned)
//   - any integer or floating-point scalar (rank 0)
//   - slices or arrays of numbers, nested to any depth ([]float64, [][]int, ...)
//   - nested []any whose leaves are numbers
//
// Nested sequences must be rectangular; a sub-sequence whose length differs
// from its siblings fails with ErrRagged.
//
// Example:
//
//	x, err := tensor.FromData([][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
//	// x.Shape() == Shape{4, 2}
func FromData(v any) (*Array, error) {
	if a, ok := v.(*Array); ok {
		if a == nil {
			return nil, fmt.Errorf("from data: nil *Array: %w", ErrUnsupportedType)
		}
		return a.Clone(), nil
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("from data: nil: %w", ErrUnsupportedType)
	}

	shape, err := inferShape(rv, 0)
	if err != nil {
		return nil, fmt.Errorf("from data: %w", err)
	}

	buf := make([]float64, 0, shape.NumElements())
	buf = flatten(rv, buf)
	return wrap(shape, buf), nil
}

// inferShape walks the first element at every depth and checks that all
// siblings agree with it.
func inferShape(rv reflect.Value, depth int) (Shape, error) {
	rv = unwrapInterface(rv)
	if !rv.IsValid() {
		return nil, fmt.Errorf("nil element at depth %d: %w", depth, ErrUnsupportedType)
	}

	if isNumeric(rv.Kind()) {
		return Shape{}, nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, fmt.Errorf("element of type %s at depth %d: %w", rv.Type(), depth, ErrUnsupportedType)
	}

	n := rv.Len()
	if n == 0 {
		return nil, &ShapeError{Op: "from data", Reason: fmt.Sprintf("empty sequence at depth %d", depth)}
	}

	inner, err := inferShape(rv.Index(0), depth+1)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		sib, err := inferShape(rv.Index(i), depth+1)
		if err != nil {
			return nil, err
		}
		if !sib.Equal(inner) {
			return nil, fmt.Errorf("depth %d: element %d has shape %v, element 0 has shape %v: %w",
				depth, i, sib, inner, ErrRagged)
		}
	}

	return append(Shape{n}, inner...), nil
}

// flatten appends the leaves of rv in row-major order. The structure has
// already been validated by inferShape.
func flatten(rv reflect.Value, buf []float64) []float64 {
	rv = unwrapInterface(rv)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			buf = flatten(rv.Index(i), buf)
		}
		return buf
	default:
		return append(buf, toFloat(rv))
	}
}

func unwrapInterface(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return rv
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func toFloat(rv reflect.Value) float64 {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

// ToFloat converts a Go number held in an interface to float64.
// The second result is false for non-numeric values.
func ToFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !isNumeric(rv.Kind()) {
		return 0, false
	}
	return toFloat(rv), true
}
