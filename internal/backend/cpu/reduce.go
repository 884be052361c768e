package cpu

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/nexus/internal/tensor"
)

// Sum adds all elements into a rank-0 array.
func (cpu *Backend) Sum(x *tensor.Array) (*tensor.Array, error) {
	return tensor.Scalar(floats.Sum(x.Values())), nil
}

// Mean averages all elements into a rank-0 array: Sum scaled by 1/count.
func (cpu *Backend) Mean(x *tensor.Array) (*tensor.Array, error) {
	sum, err := cpu.Sum(x)
	if err != nil {
		return nil, err
	}
	return cpu.Scale(sum, 1/float64(x.NumElements()))
}
