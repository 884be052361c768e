package ops

import "github.com/born-ml/nexus/internal/tensor"

// powBackward: grad_x = outputGrad * p * x^(p-1).
// The exponent is a constant, so it receives no gradient.
func powBackward(inputs []*tensor.Array, exponent float64, outputGrad *tensor.Array, backend tensor.Backend) ([]*tensor.Array, error) {
	x := inputs[0]

	local, err := backend.Pow(x, exponent-1)
	if err != nil {
		return nil, err
	}
	if local, err = backend.Scale(local, exponent); err != nil {
		return nil, err
	}

	gradX, err := backend.Mul(local, outputGrad)
	if err != nil {
		return nil, err
	}
	if gradX, err = reduceBroadcast(gradX, x.Shape(), backend); err != nil {
		return nil, err
	}

	return []*tensor.Array{gradX}, nil
}
