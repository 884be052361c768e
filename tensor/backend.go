// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/nexus/internal/tensor"

// Backend defines the numeric kernels the autodiff graph computes with.
//
// Implementations:
//   - backend/cpu: pure Go, matrix product through gonum
//
// Example:
//
//	import (
//	    "github.com/born-ml/nexus/backend/cpu"
//	    "github.com/born-ml/nexus/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Ones(tensor.Shape{2, 3})
//	y, err := backend.Transpose(x) // shape (3, 2)
type Backend = tensor.Backend
