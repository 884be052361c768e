package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/nexus/internal/tensor"
)

// MatMul performs matrix multiplication (M, K) @ (K, N) -> (M, N).
// Only 2-D operands are supported. The product is computed by gonum.
func (cpu *Backend) MatMul(a, b *tensor.Array) (*tensor.Array, error) {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		return nil, &tensor.ShapeError{
			Op:     "matmul",
			Left:   aShape,
			Right:  bShape,
			Reason: fmt.Sprintf("only 2D operands supported, got %dD and %dD", len(aShape), len(bShape)),
		}
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		return nil, &tensor.ShapeError{
			Op:     "matmul",
			Left:   aShape,
			Right:  bShape,
			Reason: fmt.Sprintf("inner dimensions %d and %d differ", k, kAlt),
		}
	}

	out := make([]float64, m*n)
	dst := mat.NewDense(m, n, out)
	dst.Mul(denseView(a), denseView(b))

	return tensor.Wrap(tensor.Shape{m, n}, out), nil
}

// denseView wraps a 2-D array's buffer in a gonum matrix without copying.
// The view is only ever read.
func denseView(a *tensor.Array) *mat.Dense {
	shape := a.Shape()
	return mat.NewDense(shape[0], shape[1], a.Values())
}
