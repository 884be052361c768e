package nn

import (
	"fmt"

	"github.com/born-ml/nexus/internal/autodiff"
	"github.com/born-ml/nexus/internal/optim"
	"github.com/born-ml/nexus/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Example:
//
//	weight := nn.NewParameter("weight", w0)
//	w, _ := weight.Bind(g)    // leaf in g holding the current value
//	loss := buildLoss(g, w)
//	_ = loss.Backward()
//	grad := weight.Grad()     // gradient of that leaf
type Parameter struct {
	param *optim.Parameter
	node  *autodiff.Node // leaf from the most recent Bind
}

// NewParameter creates a new trainable parameter.
func NewParameter(name string, value *tensor.Array) *Parameter {
	return &Parameter{param: &optim.Parameter{Name: name, Value: value}}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.param.Name
}

// Value returns the current value.
func (p *Parameter) Value() *tensor.Array {
	return p.param.Value
}

// SetValue replaces the current value. The shape must not change.
func (p *Parameter) SetValue(v *tensor.Array) error {
	if !v.Shape().Equal(p.param.Value.Shape()) {
		return &tensor.ShapeError{
			Op:     "set " + p.param.Name,
			Left:   p.param.Value.Shape(),
			Right:  v.Shape(),
			Reason: "parameter shape is fixed",
		}
	}
	p.param.Value = v
	return nil
}

// Bind adds the current value to g as a leaf and remembers it for Grad.
// Binding twice into the same graph returns the existing leaf.
func (p *Parameter) Bind(g *autodiff.Graph) (*autodiff.Node, error) {
	if p.node != nil && p.node.Graph() == g {
		return p.node, nil
	}
	n, err := g.Leaf(p.param.Value)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", p.param.Name, err)
	}
	p.node = n
	return n, nil
}

// Node returns the leaf from the most recent Bind, or nil.
func (p *Parameter) Node() *autodiff.Node {
	return p.node
}

// Grad returns the gradient of the bound leaf, or nil if the parameter was
// never bound or the last backward pass did not reach it.
func (p *Parameter) Grad() *tensor.Array {
	if p.node == nil || !p.node.HasGrad() {
		return nil
	}
	return p.node.Grad()
}

// Step applies one optimizer update to params using their current gradients.
func Step(opt optim.Optimizer, params []*Parameter) error {
	ps := make([]*optim.Parameter, len(params))
	grads := make([]*tensor.Array, len(params))
	for i, p := range params {
		ps[i] = p.param
		grads[i] = p.Grad()
	}
	return opt.Step(ps, grads)
}

// StateDict returns a map of parameter names to current values.
func StateDict(m Module) map[string]*tensor.Array {
	stateDict := make(map[string]*tensor.Array)
	for _, p := range m.Parameters() {
		stateDict[p.Name()] = p.Value()
	}
	return stateDict
}

// LoadStateDict loads parameter values from a state dictionary.
func LoadStateDict(m Module, stateDict map[string]*tensor.Array) error {
	for _, p := range m.Parameters() {
		v, ok := stateDict[p.Name()]
		if !ok {
			return fmt.Errorf("missing %s in state dict", p.Name())
		}
		if err := p.SetValue(v); err != nil {
			return err
		}
	}
	return nil
}
