package ops

import "github.com/born-ml/nexus/internal/tensor"

// addBackward: the gradient flows unchanged to both inputs.
func addBackward(inputs []*tensor.Array, outputGrad *tensor.Array, backend tensor.Backend) ([]*tensor.Array, error) {
	a, b := inputs[0], inputs[1]

	gradA, err := reduceBroadcast(outputGrad, a.Shape(), backend)
	if err != nil {
		return nil, err
	}
	gradB, err := reduceBroadcast(outputGrad, b.Shape(), backend)
	if err != nil {
		return nil, err
	}

	return []*tensor.Array{gradA, gradB}, nil
}
