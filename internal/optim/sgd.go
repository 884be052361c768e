package optim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/nexus/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Velocities are keyed by Parameter.Name, so parameters must have distinct names.
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[string][]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// DefaultSGDConfig returns plain SGD with learning rate 0.01.
func DefaultSGDConfig() SGDConfig {
	return SGDConfig{LR: 0.01}
}

// NewSGD creates a new SGD optimizer. A zero LR falls back to the default.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = DefaultSGDConfig().LR
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[string][]float64),
	}
}

// Step performs a single optimization step.
//
// Parameters with a nil gradient (not in the computational graph) are skipped.
func (s *SGD) Step(params []*Parameter, grads []*tensor.Array) error {
	if err := checkStep(params, grads); err != nil {
		return fmt.Errorf("sgd: %w", err)
	}

	for i, param := range params {
		if grads[i] == nil {
			continue
		}
		step := grads[i].Values()

		if s.momentum != 0 {
			velocity, exists := s.velocities[param.Name]
			if !exists {
				velocity = make([]float64, len(step))
				s.velocities[param.Name] = velocity
			}
			// velocity = momentum * velocity + grad
			floats.Scale(s.momentum, velocity)
			floats.Add(velocity, step)
			step = velocity
		}

		// param -= lr * step
		updated := param.Value.Data()
		floats.AddScaled(updated, -s.lr, step)
		param.Value = tensor.Wrap(param.Value.Shape(), updated)
	}
	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// StateDict returns the optimizer state for serialization.
//
// State keys: "velocity.{param_name}" -> velocity as a flat array.
// Without momentum, returns an empty map.
func (s *SGD) StateDict() map[string]*tensor.Array {
	stateDict := make(map[string]*tensor.Array)
	if s.momentum == 0 {
		return stateDict
	}

	for name, velocity := range s.velocities {
		stateDict["velocity."+name] = tensor.Wrap(tensor.Shape{len(velocity)}, append([]float64(nil), velocity...))
	}
	return stateDict
}

// LoadStateDict restores velocity buffers for params from stateDict.
//
// Parameters without an entry start from zero velocity on their next step.
// Returns an error if a velocity's size doesn't match its parameter.
func (s *SGD) LoadStateDict(params []*Parameter, stateDict map[string]*tensor.Array) error {
	if s.momentum == 0 {
		return nil
	}

	velocities := make(map[string][]float64, len(params))
	for _, param := range params {
		velocity, exists := stateDict["velocity."+param.Name]
		if !exists {
			continue
		}
		if velocity.NumElements() != param.Value.NumElements() {
			return fmt.Errorf("velocity size mismatch for parameter %q: expected %d, got %d",
				param.Name, param.Value.NumElements(), velocity.NumElements())
		}
		velocities[param.Name] = velocity.Data()
	}
	s.velocities = velocities
	return nil
}
