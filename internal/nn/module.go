// Package nn implements neural network modules on top of the autodiff graph.
//
// This package provides building blocks for constructing models:
//   - Module interface: base interface for all NN components
//   - Parameter: a named trainable array bound into each step's graph
//   - Linear: fully connected layer
//   - MSELoss: mean squared error
//
// Parameters outlive graphs. Every training step builds a fresh
// autodiff.Graph; Forward binds each parameter's current value into it as a
// leaf, and Step reads the gradients of those leaves back out.
package nn

import (
	"github.com/born-ml/nexus/internal/autodiff"
)

// Module is the base interface for all neural network components.
type Module interface {
	// Forward computes the output of the module for input, binding the
	// module's parameters into input's graph.
	Forward(input *autodiff.Node) (*autodiff.Node, error)

	// Parameters returns all trainable parameters of this module.
	Parameters() []*Parameter
}
