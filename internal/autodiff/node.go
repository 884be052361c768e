package autodiff

import (
	"fmt"

	"github.com/born-ml/nexus/internal/autodiff/ops"
	"github.com/born-ml/nexus/internal/tensor"
)

// Node is a handle to one value in a Graph.
//
// Handles are cheap to copy; two handles are the same node when they share
// a graph and an ID. Structurally equal nodes built separately are distinct.
type Node struct {
	graph *Graph
	id    int
}

func (n *Node) rec() *record {
	return &n.graph.records[n.id]
}

// ID returns the node's arena index. Operands always have smaller IDs.
func (n *Node) ID() int {
	return n.id
}

// Graph returns the graph that owns the node.
func (n *Node) Graph() *Graph {
	return n.graph
}

// Kind returns the operation that produced the node.
func (n *Node) Kind() ops.Kind {
	return n.rec().op.Kind
}

// Exponent returns the exponent of a Pow node, and 0 for every other kind.
func (n *Node) Exponent() float64 {
	return n.rec().op.Exponent
}

// IsLeaf reports whether the node has no operands.
func (n *Node) IsLeaf() bool {
	return n.Kind() == ops.Leaf
}

// Operands returns handles to the nodes this node was computed from.
func (n *Node) Operands() []*Node {
	ids := n.rec().operands
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = &Node{graph: n.graph, id: id}
	}
	return out
}

// Shape returns the shape of the forward value.
func (n *Node) Shape() tensor.Shape {
	return n.rec().data.Shape()
}

// Data returns a copy of the forward value.
func (n *Node) Data() *tensor.Array {
	return n.rec().data.Clone()
}

// Grad returns a copy of the accumulated gradient. Until a backward pass
// reaches the node this is the rank-0 zero sentinel.
func (n *Node) Grad() *tensor.Array {
	if g := n.rec().grad; g != nil {
		return g.Clone()
	}
	return tensor.Scalar(0)
}

// HasGrad reports whether any gradient has been accumulated.
func (n *Node) HasGrad() bool {
	return n.rec().grad != nil
}

// String shows the data and the gradient.
func (n *Node) String() string {
	return fmt.Sprintf("Tensor(data=%v, grad=%v)", n.rec().data, n.Grad())
}
