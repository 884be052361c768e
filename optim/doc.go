// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for parameters trained
// through the autodiff graph.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/nexus/autodiff"
//	    "github.com/born-ml/nexus/backend/cpu"
//	    "github.com/born-ml/nexus/optim"
//	    "github.com/born-ml/nexus/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    params := []*optim.Parameter{{Name: "w", Value: tensor.Zeros(tensor.Shape{1, 2})}}
//	    optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//
//	    for range 100 {
//	        g := autodiff.New(backend)
//	        w, _ := g.Leaf(params[0].Value)
//	        loss := buildLoss(g, w)
//	        _ = loss.Backward()
//	        _ = optimizer.Step(params, []*tensor.Array{w.Grad()})
//	    }
//	}
//
// Optimizer state is keyed by Parameter.Name.
package optim
