package cpu

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/nexus/internal/tensor"
)

// Transpose reverses all axes, like NumPy's .T.
//
// Rank 0 and 1 arrays are returned unchanged (as a copy). Matrices go
// through gonum; higher ranks permute strides directly.
func (cpu *Backend) Transpose(x *tensor.Array) (*tensor.Array, error) {
	shape := x.Shape()
	ndim := len(shape)

	switch ndim {
	case 0, 1:
		return x.Clone(), nil
	case 2:
		m, n := shape[0], shape[1]
		out := make([]float64, m*n)
		dst := mat.NewDense(n, m, out)
		dst.Copy(denseView(x).T())
		return tensor.Wrap(tensor.Shape{n, m}, out), nil
	}

	newShape := make(tensor.Shape, ndim)
	for i := range newShape {
		newShape[i] = shape[ndim-1-i]
	}

	srcStrides := shape.ComputeStrides()
	// Stride of output axis i in the source buffer.
	permStrides := make([]int, ndim)
	for i := range permStrides {
		permStrides[i] = srcStrides[ndim-1-i]
	}

	src := x.Values()
	out := make([]float64, len(src))
	outStrides := newShape.ComputeStrides()
	for i := range out {
		out[i] = src[computeFlatIndex(i, outStrides, permStrides)]
	}
	return tensor.Wrap(newShape, out), nil
}
