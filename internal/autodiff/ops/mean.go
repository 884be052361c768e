package ops

import "github.com/born-ml/nexus/internal/tensor"

// meanBackward: every input element contributed 1/count of the output, so
// grad_x = broadcast(outputGrad / count, x.shape).
//
// Only full reduction is supported. A per-axis mean would divide by the
// product of the reduced axis sizes instead.
func meanBackward(inputs []*tensor.Array, outputGrad *tensor.Array, backend tensor.Backend) ([]*tensor.Array, error) {
	x := inputs[0]

	scaled, err := backend.Scale(outputGrad, 1/float64(x.NumElements()))
	if err != nil {
		return nil, err
	}

	gradX, err := backend.BroadcastTo(scaled, x.Shape())
	if err != nil {
		return nil, err
	}

	return []*tensor.Array{gradX}, nil
}
