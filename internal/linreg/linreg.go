// Package linreg fits a linear layer with mean squared error. It is the
// workload behind the nexus CLI.
package linreg

import (
	"errors"
	"fmt"

	"github.com/born-ml/nexus/internal/autodiff"
	"github.com/born-ml/nexus/internal/nn"
	"github.com/born-ml/nexus/internal/optim"
	"github.com/born-ml/nexus/internal/tensor"
)

// Dataset holds inputs of shape (n, features) and targets of shape (n, outputs).
type Dataset struct {
	X *tensor.Array
	Y *tensor.Array
}

// XOR returns the four-row XOR truth table.
func XOR() Dataset {
	return Dataset{
		X: tensor.Wrap(tensor.Shape{4, 2}, []float64{0, 0, 0, 1, 1, 0, 1, 1}),
		Y: tensor.Wrap(tensor.Shape{4, 1}, []float64{0, 1, 1, 0}),
	}
}

// InitialWeight returns the (outputs, features) starting weight [[0.5, -0.5]].
func InitialWeight() *tensor.Array {
	return tensor.Wrap(tensor.Shape{1, 2}, []float64{0.5, -0.5})
}

// Pass is one forward graph: out = X @ Wᵀ, loss = mean((out - Y)²).
type Pass struct {
	X, W, Y   *autodiff.Node
	Out, Loss *autodiff.Node
}

// NewModel returns a bias-free linear layer starting from weight.
func NewModel(weight *tensor.Array) (*nn.Linear, error) {
	return nn.NewLinearFrom(weight, nil)
}

// Forward builds the loss graph for data and model on g.
func Forward(g *autodiff.Graph, data Dataset, model *nn.Linear) (*Pass, error) {
	p := &Pass{}
	var err error

	if p.X, err = g.Leaf(data.X); err != nil {
		return nil, fmt.Errorf("linreg: inputs: %w", err)
	}
	if p.Y, err = g.Leaf(data.Y); err != nil {
		return nil, fmt.Errorf("linreg: targets: %w", err)
	}
	if p.Out, err = model.Forward(p.X); err != nil {
		return nil, fmt.Errorf("linreg: %w", err)
	}
	p.W = model.Weight().Node()
	if p.Loss, err = nn.NewMSELoss().Forward(p.Out, p.Y); err != nil {
		return nil, fmt.Errorf("linreg: loss: %w", err)
	}
	return p, nil
}

// Gradients runs one forward and backward pass from weight and returns it.
func Gradients(backend tensor.Backend, data Dataset, weight *tensor.Array) (*Pass, error) {
	model, err := NewModel(weight)
	if err != nil {
		return nil, fmt.Errorf("linreg: %w", err)
	}
	return step(backend, data, model)
}

func step(backend tensor.Backend, data Dataset, model *nn.Linear) (*Pass, error) {
	p, err := Forward(autodiff.New(backend), data, model)
	if err != nil {
		return nil, err
	}
	if err := p.Loss.Backward(); err != nil {
		return nil, fmt.Errorf("linreg: %w", err)
	}
	return p, nil
}

// TrainConfig controls Train.
type TrainConfig struct {
	Steps    int
	LogEvery int // 0 disables OnLog
	OnLog    func(step int, loss float64)
}

// DefaultTrainConfig returns 100 steps, logging every 10.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{Steps: 100, LogEvery: 10}
}

// ErrNoSteps is returned by Train when cfg.Steps is not positive.
var ErrNoSteps = errors.New("linreg: steps must be positive")

// Train fits model to data with opt and returns the loss before each step.
// Each step builds a fresh graph from the model's current parameters.
func Train(backend tensor.Backend, data Dataset, model *nn.Linear, opt optim.Optimizer, cfg TrainConfig) ([]float64, error) {
	if cfg.Steps <= 0 {
		return nil, ErrNoSteps
	}

	losses := make([]float64, 0, cfg.Steps)
	for i := 1; i <= cfg.Steps; i++ {
		p, err := step(backend, data, model)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		loss, err := p.Loss.Data().Item()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		losses = append(losses, loss)

		if cfg.OnLog != nil && cfg.LogEvery > 0 && (i%cfg.LogEvery == 0 || i == 1) {
			cfg.OnLog(i, loss)
		}

		if err := nn.Step(opt, model.Parameters()); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return losses, nil
}
