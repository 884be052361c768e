// Package cpu implements the numeric kernels on the CPU using gonum.
package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/nexus/internal/parallel"
	"github.com/born-ml/nexus/internal/tensor"
)

// Config controls kernel execution.
type Config struct {
	Parallel parallel.Config // Splitting of broadcast and elementwise loops.
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{Parallel: parallel.DefaultConfig()}
}

// Backend implements tensor.Backend on the CPU.
type Backend struct {
	cfg Config
}

// New creates a CPU backend with DefaultConfig.
func New() *Backend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a CPU backend with the given configuration.
func NewWithConfig(cfg Config) *Backend {
	return &Backend{cfg: cfg}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *Backend) Add(a, b *tensor.Array) (*tensor.Array, error) {
	out, err := cpu.binary(a, b, floats.AddTo, func(x, y float64) float64 { return x + y })
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	return out, nil
}

// Mul performs element-wise multiplication with NumPy-style broadcasting.
func (cpu *Backend) Mul(a, b *tensor.Array) (*tensor.Array, error) {
	out, err := cpu.binary(a, b, floats.MulTo, func(x, y float64) float64 { return x * y })
	if err != nil {
		return nil, fmt.Errorf("mul: %w", err)
	}
	return out, nil
}

// Pow raises every element of x to exponent.
func (cpu *Backend) Pow(x *tensor.Array, exponent float64) (*tensor.Array, error) {
	src := x.Values()
	out := make([]float64, len(src))
	parallel.Range(len(src), cpu.cfg.Parallel, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = math.Pow(src[i], exponent)
		}
	})
	return tensor.Wrap(x.Shape(), out), nil
}

// Scale multiplies every element of x by s.
func (cpu *Backend) Scale(x *tensor.Array, s float64) (*tensor.Array, error) {
	src := x.Values()
	out := make([]float64, len(src))
	floats.ScaleTo(out, s, src)
	return tensor.Wrap(x.Shape(), out), nil
}

// binary dispatches an element-wise op to the same-shape fast path or the
// broadcasting path.
func (cpu *Backend) binary(
	a, b *tensor.Array,
	vectorized func(dst, s, t []float64) []float64,
	scalar func(x, y float64) float64,
) (*tensor.Array, error) {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	out := make([]float64, outShape.NumElements())
	if !needsBroadcast {
		vectorized(out, a.Values(), b.Values())
		return tensor.Wrap(outShape, out), nil
	}

	broadcastBinary(out, a, b, outShape, scalar, cpu.cfg.Parallel)
	return tensor.Wrap(outShape, out), nil
}
