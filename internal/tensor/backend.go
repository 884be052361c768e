package tensor

// Backend defines the numeric kernels the autodiff graph depends on.
// Every kernel returns a freshly allocated Array and never mutates its inputs.
//
// Implementations:
//   - CPU: pure Go with gonum kernels (internal/backend/cpu)
type Backend interface {
	// Name identifies the backend in diagnostics.
	Name() string

	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *Array) (*Array, error)
	Mul(a, b *Array) (*Array, error)

	// Pow raises every element to a scalar exponent.
	Pow(x *Array, exponent float64) (*Array, error)

	// MatMul is the 2-D matrix product (m, k) @ (k, n) -> (m, n).
	MatMul(a, b *Array) (*Array, error)

	// Transpose reverses all axes.
	Transpose(x *Array) (*Array, error)

	// Sum and Mean are full reductions to a rank-0 array. Mean is the
	// forward kernel of the Mean node; Sum is its unscaled form, kept for
	// backends and callers that reduce without averaging.
	Sum(x *Array) (*Array, error)
	Mean(x *Array) (*Array, error)

	// Scale multiplies every element by s.
	Scale(x *Array, s float64) (*Array, error)

	// BroadcastTo stretches x to shape following broadcasting rules.
	BroadcastTo(x *Array, shape Shape) (*Array, error)

	// SumTo is the adjoint of BroadcastTo: it sums x down to shape.
	SumTo(x *Array, shape Shape) (*Array, error)
}
