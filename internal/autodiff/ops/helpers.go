package ops

import "github.com/born-ml/nexus/internal/tensor"

// reduceBroadcast sums a gradient down to the shape of the input it belongs
// to. This is needed whenever the forward pass broadcast that input.
//
//	Forward:  a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.Array, target tensor.Shape, backend tensor.Backend) (*tensor.Array, error) {
	return backend.SumTo(grad, target)
}
