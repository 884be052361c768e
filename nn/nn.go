// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/nexus/internal/nn"
	"github.com/born-ml/nexus/optim"
	"github.com/born-ml/nexus/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and value.
func NewParameter(name string, value *tensor.Array) *Parameter {
	return nn.NewParameter(name, value)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear(784, 128, true, rand.New(rand.NewPCG(1, 2)))
func NewLinear(inFeatures, outFeatures int, withBias bool, rng *rand.Rand) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, withBias, rng)
}

// NewLinearFrom creates a linear layer from explicit initial values.
func NewLinearFrom(weight, bias *tensor.Array) (*Linear, error) {
	return nn.NewLinearFrom(weight, bias)
}

// Loss functions

// MSELoss represents Mean Squared Error loss.
type MSELoss = nn.MSELoss

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return nn.NewMSELoss()
}

// Initialization

// Xavier returns an array drawn from the Glorot uniform distribution.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Array {
	return nn.Xavier(fanIn, fanOut, shape, rng)
}

// Training helpers

// Step applies one optimizer update to params using their current gradients.
func Step(opt optim.Optimizer, params []*Parameter) error {
	return nn.Step(opt, params)
}

// StateDict returns a map of parameter names to current values.
func StateDict(m Module) map[string]*tensor.Array {
	return nn.StateDict(m)
}

// LoadStateDict loads parameter values from a state dictionary.
func LoadStateDict(m Module, stateDict map[string]*tensor.Array) error {
	return nn.LoadStateDict(m, stateDict)
}
