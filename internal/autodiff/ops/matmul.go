package ops

import "github.com/born-ml/nexus/internal/tensor"

// matmulBackward:
//   - d(A@B)/dA = outputGrad @ B^T
//   - d(A@B)/dB = A^T @ outputGrad
func matmulBackward(inputs []*tensor.Array, outputGrad *tensor.Array, backend tensor.Backend) ([]*tensor.Array, error) {
	a, b := inputs[0], inputs[1]

	bT, err := backend.Transpose(b)
	if err != nil {
		return nil, err
	}
	gradA, err := backend.MatMul(outputGrad, bT)
	if err != nil {
		return nil, err
	}

	aT, err := backend.Transpose(a)
	if err != nil {
		return nil, err
	}
	gradB, err := backend.MatMul(aT, outputGrad)
	if err != nil {
		return nil, err
	}

	return []*tensor.Array{gradA, gradB}, nil
}
