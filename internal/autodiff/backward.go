package autodiff

import (
	"fmt"

	"github.com/born-ml/nexus/internal/tensor"
)

// Backward computes the gradient of n with respect to every node it depends on.
//
// Algorithm:
//  1. Order the nodes reachable from n so that each node comes after all of
//     its operands (depth-first, operands first).
//  2. Seed n's gradient with ones.
//  3. Walk the order in reverse, running each node's local gradient rule.
//     By the time a node is reached every consumer has already pushed its
//     contribution, so the node's gradient is complete before it is read.
//
// Leaf gradients accumulate across calls: calling Backward twice without
// Graph.ZeroGrad doubles them. Gradients of intermediate nodes reachable
// from n are per-pass values and are recomputed from zero on every call.
//
// n must hold a single element; otherwise ErrNotScalar is returned.
func (n *Node) Backward() error {
	g := n.graph
	seed := n.rec()
	if seed.data.NumElements() != 1 {
		return fmt.Errorf("backward: seed shape %v: %w", seed.data.Shape(), ErrNotScalar)
	}

	order, err := g.topoOrder(n.id)
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	for _, id := range order {
		if g.records[id].op.Kind.Arity() > 0 {
			g.records[id].grad = nil
		}
	}
	seed.grad = tensor.Ones(seed.data.Shape())

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if g.cfg.OnBackward != nil {
			g.cfg.OnBackward(&Node{graph: g, id: id})
		}
		if err := g.propagate(id); err != nil {
			return fmt.Errorf("backward: %v node %d: %w", g.records[id].op.Kind, id, err)
		}
	}
	return nil
}

// TopoOrder returns the nodes reachable from seed, each appearing after all
// of its operands. The seed is last.
func (g *Graph) TopoOrder(seed *Node) ([]*Node, error) {
	if seed == nil {
		return nil, ErrNilNode
	}
	if seed.graph != g {
		return nil, ErrForeignNode
	}
	ids, err := g.topoOrder(seed.id)
	if err != nil {
		return nil, err
	}
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = &Node{graph: g, id: id}
	}
	return out, nil
}

// Visit states for topoOrder.
const (
	unvisited uint8 = iota
	onStack
	done
)

type frame struct {
	id   int
	next int // index of the next operand to visit
}

// topoOrder is an iterative post-order DFS. It produces the same order as
// the recursive "visit operands, then append self" formulation without
// consuming the Go stack, reports a node found on its own path as ErrCycle,
// and bounds the path length by Config.MaxDepth.
func (g *Graph) topoOrder(seed int) ([]int, error) {
	state := make([]uint8, len(g.records))
	order := make([]int, 0, len(g.records))

	stack := []frame{{id: seed}}
	state[seed] = onStack

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		operands := g.records[top.id].operands

		if top.next == len(operands) {
			state[top.id] = done
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
			continue
		}

		child := operands[top.next]
		top.next++

		switch state[child] {
		case done:
		case onStack:
			return nil, fmt.Errorf("node %d: %w", child, ErrCycle)
		default:
			if len(stack) >= g.cfg.MaxDepth {
				return nil, fmt.Errorf("depth %d at node %d: %w", len(stack), child, ErrDepthExceeded)
			}
			state[child] = onStack
			stack = append(stack, frame{id: child})
		}
	}

	return order, nil
}

// propagate runs the local gradient rule of node id and accumulates the
// results into its operands.
func (g *Graph) propagate(id int) error {
	r := &g.records[id]
	if len(r.operands) == 0 || r.grad == nil {
		return nil
	}

	inputs := make([]*tensor.Array, len(r.operands))
	for i, opID := range r.operands {
		inputs[i] = g.records[opID].data
	}

	grads, err := r.op.Backward(inputs, r.grad, g.backend)
	if err != nil {
		return err
	}

	for i, opID := range r.operands {
		if err := g.accumulate(opID, grads[i]); err != nil {
			return err
		}
	}
	return nil
}

// accumulate adds contrib into the gradient of node id. The sum always keeps
// the node's data shape.
func (g *Graph) accumulate(id int, contrib *tensor.Array) error {
	r := &g.records[id]

	reduced, err := g.backend.SumTo(contrib, r.data.Shape())
	if err != nil {
		return err
	}

	if r.grad == nil {
		r.grad = reduced
		return nil
	}

	sum, err := g.backend.Add(r.grad, reduced)
	if err != nil {
		return err
	}
	r.grad = sum
	return nil
}
