// Package optim implements first-order optimizers for parameters trained
// through the autodiff graph.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with momentum
//   - Adam: adaptive moment estimation
//
// Parameters hold immutable arrays, so an optimizer step replaces each
// Parameter's Value with the updated array. A fresh autodiff.Graph is built
// from those values for every step.
//
// Example usage:
//
//	params := []*optim.Parameter{{Name: "w", Value: w0}}
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})
//
//	for range steps {
//	    g := autodiff.New(backend)
//	    w, _ := g.Leaf(params[0].Value)
//	    loss := buildLoss(g, w)
//	    _ = loss.Backward()
//
//	    var grad *tensor.Array // nil skips the parameter
//	    if w.HasGrad() {
//	        grad = w.Grad()
//	    }
//	    _ = opt.Step(params, []*tensor.Array{grad})
//	}
//
// nn.Step does this bookkeeping for nn.Parameter values.
package optim

import (
	"errors"
	"fmt"

	"github.com/born-ml/nexus/internal/tensor"
)

// ErrParamCount is returned when params and grads differ in length.
var ErrParamCount = errors.New("optim: parameter and gradient counts differ")

// Parameter is a named trainable array.
type Parameter struct {
	Name  string
	Value *tensor.Array
}

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update. grads[i] is the gradient of params[i] and
	// must have the same shape. A nil gradient leaves its parameter unchanged.
	Step(params []*Parameter, grads []*tensor.Array) error

	// GetLR returns the current learning rate.
	GetLR() float64
}

// checkStep validates the inputs of Step before any parameter is touched.
func checkStep(params []*Parameter, grads []*tensor.Array) error {
	if len(params) != len(grads) {
		return fmt.Errorf("%w: %d parameters, %d gradients", ErrParamCount, len(params), len(grads))
	}
	for i, p := range params {
		if grads[i] == nil {
			continue
		}
		if p == nil || p.Value == nil {
			return fmt.Errorf("optim: parameter %d has no value", i)
		}
		if !p.Value.Shape().Equal(grads[i].Shape()) {
			return &tensor.ShapeError{
				Op:     "optim " + p.Name,
				Left:   p.Value.Shape(),
				Right:  grads[i].Shape(),
				Reason: "gradient shape differs from parameter",
			}
		}
	}
	return nil
}
