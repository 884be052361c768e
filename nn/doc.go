// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network modules built on the autodiff graph.
//
// # Overview
//
// This package contains:
//   - Module interface for composable layers
//   - Parameter: named trainable arrays bound into each step's graph
//   - Linear: fully connected layer with Xavier initialization
//   - MSELoss: mean squared error
//
// # Basic Usage
//
//	layer := nn.NewLinear(2, 1, true, rand.New(rand.NewPCG(1, 2)))
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	mse := nn.NewMSELoss()
//
//	for range steps {
//	    g := autodiff.New(cpu.New())
//	    x, _ := g.Leaf(inputs)
//	    out, _ := layer.Forward(x)
//	    loss, _ := mse.Forward(out, targets)
//	    _ = loss.Backward()
//	    _ = nn.Step(opt, layer.Parameters())
//	}
package nn
