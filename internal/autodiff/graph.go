// Package autodiff implements reverse-mode automatic differentiation over
// tensor.Array values.
//
// Architecture:
//   - Graph: an arena holding every node built in one session
//   - Node: a handle (graph, index) returned by leaf constructors and operators
//   - ops.Op: a tagged operation; the engine dispatches on its Kind
//   - Backward: depth-first topological ordering, then one reverse pass
//
// Usage:
//
//	g := autodiff.New(cpu.New())
//	x, _ := g.Leaf([]float64{1, 2, 3})
//	y, _ := x.Mul(x) // y = x²
//	loss, _ := y.Mean()
//	_ = loss.Backward()
//	fmt.Println(x.Grad()) // dloss/dx = 2x/3
package autodiff

import (
	"fmt"

	"github.com/born-ml/nexus/internal/autodiff/ops"
	"github.com/born-ml/nexus/internal/tensor"
)

// Config controls graph traversal.
type Config struct {
	// MaxDepth bounds the length of any dependency chain walked by Backward.
	MaxDepth int

	// OnBackward, when set, is called for each node right before its local
	// gradient rule runs.
	OnBackward func(n *Node)
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{MaxDepth: 1 << 20}
}

// record is one arena slot.
type record struct {
	op       ops.Op
	operands []int         // arena indices, all smaller than this record's index
	data     *tensor.Array // forward value, fixed at construction
	grad     *tensor.Array // nil until the first contribution arrives
}

// Graph owns every node built in one graph-building session.
//
// A Graph is not safe for concurrent use: build the expression, then run
// Backward, from a single goroutine.
type Graph struct {
	backend tensor.Backend
	cfg     Config
	records []record
}

// New creates an empty graph that computes with backend.
func New(backend tensor.Backend) *Graph {
	return NewWithConfig(backend, DefaultConfig())
}

// NewWithConfig creates an empty graph with an explicit configuration.
// A non-positive MaxDepth falls back to the default.
func NewWithConfig(backend tensor.Backend, cfg Config) *Graph {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	return &Graph{
		backend: backend,
		cfg:     cfg,
		records: make([]record, 0, 64),
	}
}

// Backend returns the numeric backend.
func (g *Graph) Backend() tensor.Backend {
	return g.backend
}

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int {
	return len(g.records)
}

// Node returns the handle for arena index id, or nil if out of range.
func (g *Graph) Node(id int) *Node {
	if id < 0 || id >= len(g.records) {
		return nil
	}
	return &Node{graph: g, id: id}
}

// Leaf materializes data (scalar, nested slices, or *tensor.Array) into a
// new leaf node with no operands.
func (g *Graph) Leaf(data any) (*Node, error) {
	arr, err := tensor.FromData(data)
	if err != nil {
		return nil, fmt.Errorf("leaf: %w", err)
	}
	return g.push(record{op: ops.Op{Kind: ops.Leaf}, data: arr}), nil
}

// Coerce converts an operand to a node of this graph. Nodes of this graph
// pass through unchanged; any other value becomes a new leaf.
func (g *Graph) Coerce(v any) (*Node, error) {
	if n, ok := v.(*Node); ok {
		switch {
		case n == nil:
			return nil, ErrNilNode
		case n.graph != g:
			return nil, ErrForeignNode
		}
		return n, nil
	}
	return g.Leaf(v)
}

// ZeroGrad resets every gradient in the arena to the zero sentinel.
func (g *Graph) ZeroGrad() {
	for i := range g.records {
		g.records[i].grad = nil
	}
}

func (g *Graph) push(r record) *Node {
	g.records = append(g.records, r)
	return &Node{graph: g, id: len(g.records) - 1}
}

// transaction runs build and discards every node it appended if it fails.
func (g *Graph) transaction(build func() (*Node, error)) (*Node, error) {
	mark := len(g.records)
	n, err := build()
	if err != nil {
		clear(g.records[mark:])
		g.records = g.records[:mark]
		return nil, err
	}
	return n, nil
}

// apply runs op's forward kernel on the given operands and appends the result.
func (g *Graph) apply(op ops.Op, operands ...*Node) (*Node, error) {
	ids := make([]int, len(operands))
	inputs := make([]*tensor.Array, len(operands))
	for i, o := range operands {
		ids[i] = o.id
		inputs[i] = g.records[o.id].data
	}

	out, err := op.Forward(inputs, g.backend)
	if err != nil {
		return nil, err
	}
	return g.push(record{op: op, operands: ids, data: out}), nil
}
