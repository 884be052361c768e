package ops

import "github.com/born-ml/nexus/internal/tensor"

// transposeBackward: reversing all axes is its own inverse, so the gradient
// is transposed the same way.
func transposeBackward(outputGrad *tensor.Array, backend tensor.Backend) ([]*tensor.Array, error) {
	gradX, err := backend.Transpose(outputGrad)
	if err != nil {
		return nil, err
	}
	return []*tensor.Array{gradX}, nil
}
