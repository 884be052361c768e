package cpu

import (
	"fmt"

	"github.com/born-ml/nexus/internal/parallel"
	"github.com/born-ml/nexus/internal/tensor"
)

// computeFlatIndex maps a flat output index to a flat input index.
// outStrides are the output's row-major strides, inStrides the input's
// broadcast-adjusted strides (0 on stretched dimensions).
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}

// broadcastBinary fills out[i] = op(a[ia], b[ib]) over the broadcast shape.
func broadcastBinary(
	out []float64,
	a, b *tensor.Array,
	outShape tensor.Shape,
	op func(x, y float64) float64,
	cfg parallel.Config,
) {
	outStrides := outShape.ComputeStrides()
	aStrides := tensor.BroadcastStrides(a.Shape(), outShape)
	bStrides := tensor.BroadcastStrides(b.Shape(), outShape)
	av, bv := a.Values(), b.Values()

	parallel.Range(len(out), cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ia := computeFlatIndex(i, outStrides, aStrides)
			ib := computeFlatIndex(i, outStrides, bStrides)
			out[i] = op(av[ia], bv[ib])
		}
	})
}

// BroadcastTo stretches x to shape.
//
//	x: (3, 1) → shape (2, 3, 4): every row value repeated 4 times, twice
func (cpu *Backend) BroadcastTo(x *tensor.Array, shape tensor.Shape) (*tensor.Array, error) {
	if err := checkBroadcastable(x.Shape(), shape, "broadcast to"); err != nil {
		return nil, err
	}

	outStrides := shape.ComputeStrides()
	inStrides := tensor.BroadcastStrides(x.Shape(), shape)
	src := x.Values()
	out := make([]float64, shape.NumElements())

	parallel.Range(len(out), cpu.cfg.Parallel, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = src[computeFlatIndex(i, outStrides, inStrides)]
		}
	})
	return tensor.Wrap(shape.Clone(), out), nil
}

// SumTo reduces x to shape by summing every dimension that broadcasting
// would have stretched. It is the adjoint of BroadcastTo.
//
//	Forward:  a(3, 1) + b(3, 4) → c(3, 4)
//	Backward: SumTo(grad_c(3, 4), (3, 1)) → grad_a(3, 1)
func (cpu *Backend) SumTo(x *tensor.Array, shape tensor.Shape) (*tensor.Array, error) {
	xShape := x.Shape()
	if xShape.Equal(shape) {
		return x.Clone(), nil
	}
	if err := checkBroadcastable(shape, xShape, "sum to"); err != nil {
		return nil, err
	}

	xStrides := xShape.ComputeStrides()
	dstStrides := tensor.BroadcastStrides(shape, xShape)
	src := x.Values()
	out := make([]float64, shape.NumElements())

	// Sequential: several source elements land on the same destination.
	for i, v := range src {
		out[computeFlatIndex(i, xStrides, dstStrides)] += v
	}
	return tensor.Wrap(shape.Clone(), out), nil
}

// checkBroadcastable verifies that from broadcasts to exactly to.
func checkBroadcastable(from, to tensor.Shape, op string) error {
	if err := to.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	out, _, err := tensor.BroadcastShapes(from, to)
	if err != nil || !out.Equal(to) {
		return &tensor.ShapeError{
			Op:     op,
			Left:   from,
			Right:  to,
			Reason: fmt.Sprintf("%v does not broadcast to %v", from, to),
		}
	}
	return nil
}
