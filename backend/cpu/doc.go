// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for array kernels.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Matrix product and 2-D transpose through gonum/mat
//   - NumPy-compatible broadcasting
//   - Chunked parallel elementwise loops for large arrays
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
//	    a := tensor.Ones(tensor.Shape{2, 3})
//	    b := tensor.Ones(tensor.Shape{3, 4})
//	    c, err := backend.MatMul(a, b) // shape (2, 4)
//	}
package cpu
