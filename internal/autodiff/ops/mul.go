package ops

import "github.com/born-ml/nexus/internal/tensor"

// mulBackward:
//   - grad_a = outputGrad * b
//   - grad_b = outputGrad * a
func mulBackward(inputs []*tensor.Array, outputGrad *tensor.Array, backend tensor.Backend) ([]*tensor.Array, error) {
	a, b := inputs[0], inputs[1]

	gradA, err := backend.Mul(outputGrad, b)
	if err != nil {
		return nil, err
	}
	if gradA, err = reduceBroadcast(gradA, a.Shape(), backend); err != nil {
		return nil, err
	}

	gradB, err := backend.Mul(outputGrad, a)
	if err != nil {
		return nil, err
	}
	if gradB, err = reduceBroadcast(gradB, b.Shape(), backend); err != nil {
		return nil, err
	}

	return []*tensor.Array{gradA, gradB}, nil
}
