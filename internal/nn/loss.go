package nn

import (
	"github.com/born-ml/nexus/internal/autodiff"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// Example:
//
//	mse := nn.NewMSELoss()
//	predictions, _ := model.Forward(input)
//	loss, _ := mse.Forward(predictions, targets)
type MSELoss struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return &MSELoss{}
}

// Forward returns the rank-0 loss node. targets is anything Graph.Coerce
// accepts and must broadcast against predictions.
func (m *MSELoss) Forward(predictions *autodiff.Node, targets any) (*autodiff.Node, error) {
	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, err
	}
	squared, err := diff.Pow(2)
	if err != nil {
		return nil, err
	}
	return squared.Mean()
}

// Parameters returns an empty slice (loss functions have no trainable parameters).
func (m *MSELoss) Parameters() []*Parameter {
	return nil
}
