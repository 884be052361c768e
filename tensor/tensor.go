// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/nexus/internal/tensor"
)

// Type aliases for public API

// Array is an immutable dense float64 array.
type Array = tensor.Array

// Shape represents array dimensions. A nil or empty Shape is a scalar.
type Shape = tensor.Shape

// Number is the constraint for typed constructors.
type Number = tensor.Number

// ShapeError describes incompatible operand shapes.
type ShapeError = tensor.ShapeError

// Errors returned by the tensor package.
var (
	ErrShape           = tensor.ErrShape
	ErrRagged          = tensor.ErrRagged
	ErrUnsupportedType = tensor.ErrUnsupportedType
	ErrNotScalar       = tensor.ErrNotScalar
)

// New creates an Array of the given shape from a copy of data.
func New(shape Shape, data []float64) (*Array, error) {
	return tensor.New(shape, data)
}

// Zeros creates an Array filled with zeros.
func Zeros(shape Shape) *Array {
	return tensor.Zeros(shape)
}

// Ones creates an Array filled with ones.
func Ones(shape Shape) *Array {
	return tensor.Ones(shape)
}

// Full creates an Array filled with value.
func Full(shape Shape, value float64) *Array {
	return tensor.Full(shape, value)
}

// Scalar creates a rank-0 Array.
func Scalar[T Number](v T) *Array {
	return tensor.Scalar(v)
}

// FromSlice creates an Array of the given shape from a flat slice.
//
// Example:
//
//	x, err := tensor.FromSlice([]int{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T Number](data []T, shape Shape) (*Array, error) {
	return tensor.FromSlice(data, shape)
}

// FromData materializes a Go scalar, nested slice, or *Array.
//
// Example:
//
//	x, err := tensor.FromData([][]float64{{0, 0}, {0, 1}}) // shape (2, 2)
//	s, err := tensor.FromData(3)                            // shape ()
func FromData(v any) (*Array, error) {
	return tensor.FromData(v)
}

// BroadcastShapes returns the shape two operands broadcast to.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
