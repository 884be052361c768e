package autodiff

import (
	"fmt"

	"github.com/born-ml/nexus/internal/autodiff/ops"
	"github.com/born-ml/nexus/internal/tensor"
)

// Every operator accepts its right-hand operand as any value Graph.Coerce
// understands: a *Node of the same graph, a Go number, nested slices, or a
// *tensor.Array. On error the graph is left exactly as it was.

// Add returns n + other with broadcasting.
func (n *Node) Add(other any) (*Node, error) {
	return n.binary(ops.Add, other)
}

// Mul returns n * other (element-wise) with broadcasting.
func (n *Node) Mul(other any) (*Node, error) {
	return n.binary(ops.Mul, other)
}

// MatMul returns the matrix product n @ other.
func (n *Node) MatMul(other any) (*Node, error) {
	return n.binary(ops.MatMul, other)
}

// Pow returns n raised to a constant exponent. The exponent must be a Go
// integer or float; anything else fails with ErrNonNumericExponent.
func (n *Node) Pow(exponent any) (*Node, error) {
	p, ok := tensor.ToFloat(exponent)
	if !ok {
		return nil, fmt.Errorf("pow: exponent of type %T: %w", exponent, ErrNonNumericExponent)
	}
	return n.graph.apply(ops.Op{Kind: ops.Pow, Exponent: p}, n)
}

// Transpose reverses all axes.
func (n *Node) Transpose() (*Node, error) {
	return n.graph.apply(ops.Op{Kind: ops.Transpose}, n)
}

// Mean reduces all elements to a rank-0 average.
func (n *Node) Mean() (*Node, error) {
	return n.graph.apply(ops.Op{Kind: ops.Mean}, n)
}

// Neg returns -n, built as n * -1.
func (n *Node) Neg() (*Node, error) {
	return n.Mul(-1)
}

// Sub returns n - other, built as n + (-other).
func (n *Node) Sub(other any) (*Node, error) {
	return n.graph.transaction(func() (*Node, error) {
		o, err := n.graph.Coerce(other)
		if err != nil {
			return nil, err
		}
		neg, err := o.Neg()
		if err != nil {
			return nil, err
		}
		return n.Add(neg)
	})
}

// Linear returns n @ weightᵀ, the forward pass of a fully connected layer.
func (n *Node) Linear(weight any) (*Node, error) {
	return n.graph.transaction(func() (*Node, error) {
		w, err := n.graph.Coerce(weight)
		if err != nil {
			return nil, err
		}
		wT, err := w.Transpose()
		if err != nil {
			return nil, err
		}
		return n.MatMul(wT)
	})
}

// RAdd returns other + n.
func (n *Node) RAdd(other any) (*Node, error) {
	return n.reflected(other, (*Node).Add)
}

// RMul returns other * n.
func (n *Node) RMul(other any) (*Node, error) {
	return n.reflected(other, (*Node).Mul)
}

// RSub returns other - n, built as (-n) + other.
func (n *Node) RSub(other any) (*Node, error) {
	return n.graph.transaction(func() (*Node, error) {
		neg, err := n.Neg()
		if err != nil {
			return nil, err
		}
		return neg.Add(other)
	})
}

func (n *Node) binary(kind ops.Kind, other any) (*Node, error) {
	return n.graph.transaction(func() (*Node, error) {
		o, err := n.graph.Coerce(other)
		if err != nil {
			return nil, err
		}
		return n.graph.apply(ops.Op{Kind: kind}, n, o)
	})
}

// reflected coerces other and applies op with other on the left.
func (n *Node) reflected(other any, op func(lhs *Node, rhs any) (*Node, error)) (*Node, error) {
	return n.graph.transaction(func() (*Node, error) {
		o, err := n.graph.Coerce(other)
		if err != nil {
			return nil, err
		}
		return op(o, n)
	})
}
