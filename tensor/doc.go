// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense arrays that flow through the nexus
// autodiff graph.
//
// # Overview
//
// This package provides:
//   - Array: an immutable, row-major float64 n-D array
//   - Shape and NumPy-style broadcasting rules
//   - FromData: materialization of Go scalars and nested slices
//   - Backend: the numeric kernels the graph computes with
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/nexus/backend/cpu"
//	    "github.com/born-ml/nexus/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromData([][]float64{{1, 2}, {3, 4}})
//	    y := tensor.Ones(tensor.Shape{2})
//	    z, _ := backend.Add(x, y) // (2, 2) + (2,) -> (2, 2)
//	    fmt.Println(z)
//	}
//
// # Broadcasting
//
// Binary kernels follow NumPy broadcasting rules. Shapes are aligned from the
// trailing dimension; a dimension of size 1 stretches to match the other:
//
//	(3, 1) + (3, 4) -> (3, 4)
//	(4, 3) + (3,)   -> (4, 3)
//	(2, 3) + (4,)   -> *ShapeError
//
// # Errors
//
// Shape failures are reported as *ShapeError, which matches ErrShape:
//
//	if errors.Is(err, tensor.ErrShape) { ... }
package tensor
