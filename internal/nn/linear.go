package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/nexus/internal/autodiff"
	"github.com/born-ml/nexus/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the optional bias vector with shape [out_features]
//   - y is the output with shape [batch_size, out_features]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter
	bias        *Parameter // nil when the layer has no bias
}

// NewLinear creates a Linear layer with Xavier-initialized weights and,
// when withBias is set, a zero bias.
func NewLinear(inFeatures, outFeatures int, withBias bool, rng *rand.Rand) *Linear {
	weight := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng)

	var bias *tensor.Array
	if withBias {
		bias = tensor.Zeros(tensor.Shape{outFeatures})
	}

	l, _ := NewLinearFrom(weight, bias)
	return l
}

// NewLinearFrom creates a Linear layer from explicit initial values. weight
// must be 2-D; bias may be nil or must have shape [out_features].
func NewLinearFrom(weight, bias *tensor.Array) (*Linear, error) {
	ws := weight.Shape()
	if len(ws) != 2 {
		return nil, &tensor.ShapeError{Op: "linear", Left: ws, Reason: "weight must be 2-D"}
	}

	l := &Linear{
		inFeatures:  ws[1],
		outFeatures: ws[0],
		weight:      NewParameter("weight", weight),
	}
	if bias != nil {
		if !bias.Shape().Equal(tensor.Shape{ws[0]}) {
			return nil, &tensor.ShapeError{
				Op:     "linear",
				Left:   ws,
				Right:  bias.Shape(),
				Reason: fmt.Sprintf("bias must have shape (%d,)", ws[0]),
			}
		}
		l.bias = NewParameter("bias", bias)
	}
	return l, nil
}

// Forward computes x @ W.T (+ b) in input's graph.
func (l *Linear) Forward(input *autodiff.Node) (*autodiff.Node, error) {
	g := input.Graph()

	w, err := l.weight.Bind(g)
	if err != nil {
		return nil, err
	}
	output, err := input.Linear(w)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	if l.bias == nil {
		return output, nil
	}

	b, err := l.bias.Bind(g)
	if err != nil {
		return nil, err
	}
	return output.Add(b)
}

// Parameters returns [weight, bias] if bias is present, otherwise [weight].
func (l *Linear) Parameters() []*Parameter {
	if l.bias != nil {
		return []*Parameter{l.weight, l.bias}
	}
	return []*Parameter{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter, or nil.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
