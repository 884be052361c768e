// Package ops defines the differentiable operations of the autodiff graph.
//
// An operation is a tagged value (Op) rather than a closure: the Kind selects
// both the forward kernel and the local gradient rule, and the Op carries
// only the extra data its rule needs (the exponent for Pow).
//
// Supported operations:
//   - Add: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - Mul: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - Pow: scalar power (d(a^p)/da = p * a^(p-1))
//   - MatMul: matrix product (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - Transpose: axis reversal (d/dA = transpose(grad))
//   - Mean: full reduction (d/dA = grad / count, broadcast to A's shape)
package ops

import (
	"fmt"

	"github.com/born-ml/nexus/internal/tensor"
)

// Kind identifies the operation that produced a node.
type Kind uint8

// Operation kinds.
const (
	Leaf Kind = iota
	Add
	Mul
	Pow
	MatMul
	Transpose
	Mean
)

// String returns the operation name.
func (k Kind) String() string {
	switch k {
	case Leaf:
		return "Leaf"
	case Add:
		return "Add"
	case Mul:
		return "Mul"
	case Pow:
		return "Pow"
	case MatMul:
		return "MatMul"
	case Transpose:
		return "Transpose"
	case Mean:
		return "Mean"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Arity returns the number of operands the kind takes.
func (k Kind) Arity() int {
	switch k {
	case Leaf:
		return 0
	case Add, Mul, MatMul:
		return 2
	default:
		return 1
	}
}

// Op is a differentiable operation together with its parameters.
type Op struct {
	Kind     Kind
	Exponent float64 // Pow only
}

// Forward computes the operation's value from its operand values.
func (op Op) Forward(inputs []*tensor.Array, backend tensor.Backend) (*tensor.Array, error) {
	if err := op.checkArity(len(inputs)); err != nil {
		return nil, err
	}

	switch op.Kind {
	case Add:
		return backend.Add(inputs[0], inputs[1])
	case Mul:
		return backend.Mul(inputs[0], inputs[1])
	case Pow:
		return backend.Pow(inputs[0], op.Exponent)
	case MatMul:
		return backend.MatMul(inputs[0], inputs[1])
	case Transpose:
		return backend.Transpose(inputs[0])
	case Mean:
		return backend.Mean(inputs[0])
	default:
		return nil, fmt.Errorf("forward: %v has no forward computation", op.Kind)
	}
}

// Backward computes the gradient contribution for every operand, given the
// gradient of the operation's output. Each returned gradient has the shape
// of the corresponding input.
//
// Example for Add:
//
//	inputs: [a, b]
//	outputGrad: dL/d(a+b)
//	returns: [dL/d(a+b), dL/d(a+b)]
func (op Op) Backward(inputs []*tensor.Array, outputGrad *tensor.Array, backend tensor.Backend) ([]*tensor.Array, error) {
	if err := op.checkArity(len(inputs)); err != nil {
		return nil, err
	}

	switch op.Kind {
	case Leaf:
		return nil, nil
	case Add:
		return addBackward(inputs, outputGrad, backend)
	case Mul:
		return mulBackward(inputs, outputGrad, backend)
	case Pow:
		return powBackward(inputs, op.Exponent, outputGrad, backend)
	case MatMul:
		return matmulBackward(inputs, outputGrad, backend)
	case Transpose:
		return transposeBackward(outputGrad, backend)
	case Mean:
		return meanBackward(inputs, outputGrad, backend)
	default:
		return nil, fmt.Errorf("backward: unknown operation %v", op.Kind)
	}
}

func (op Op) checkArity(n int) error {
	if want := op.Kind.Arity(); n != want {
		return fmt.Errorf("%v: expected %d inputs, got %d", op.Kind, want, n)
	}
	return nil
}
