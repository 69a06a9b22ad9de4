package graph

import (
	"iter"
	"maps"

	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/graph/attr"
)

// Graph owns every Value and Operation of a model. Nodes are kept in an
// arena in insertion order and refer to each other by [NodeID]; a name index
// maps node names to IDs.
//
// The zero value is not usable; use [New]. A Graph is not safe for concurrent
// mutation. Once built it may be read from several goroutines.
type Graph struct {
	nodes []Node
	index map[string]NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]NodeID)}
}

// AddValue returns the Value named name, creating it with the given role if
// it does not exist yet. For an existing value the role argument is ignored;
// use [Value.UpgradeRole] to change it.
//
// It fails with ErrCodeEmptyNodeName for an empty name and with
// ErrCodeNodeKindConflict if the name belongs to an Operation.
func (g *Graph) AddValue(name string, role Role) (*Value, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeEmptyNodeName, "value name must not be empty")
	}
	if id, ok := g.index[name]; ok {
		n := g.nodes[id]
		if n.value == nil {
			return nil, errors.New(errors.ErrCodeNodeKindConflict,
				"%q is an operation, not a value", name)
		}
		return n.value, nil
	}
	v := &Value{id: NodeID(len(g.nodes)), name: name, role: role}
	g.nodes = append(g.nodes, Node{value: v})
	g.index[name] = v.id
	return v, nil
}

// AddOperation appends a new Operation. Inputs may contain [NoNode] for
// absent optional slots; every other input and every output must be the ID
// of a Value in this graph (ErrCodeInvalidReference otherwise). The
// attribute map is copied.
//
// AddOperation does not check that the name is unused; callers that need
// unique names check [Graph.Contains] first. When names repeat, lookups
// resolve to the first node registered under the name.
func (g *Graph) AddOperation(name string, kind OpKind, inputs, outputs []NodeID, attrs attr.Map) (*Operation, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeEmptyNodeName, "operation name must not be empty")
	}
	for i, id := range inputs {
		if id == NoNode {
			continue
		}
		if !g.isValue(id) {
			return nil, errors.New(errors.ErrCodeInvalidReference,
				"operation %q input %d: node %d is not a value", name, i, id)
		}
	}
	for i, id := range outputs {
		if !g.isValue(id) {
			return nil, errors.New(errors.ErrCodeInvalidReference,
				"operation %q output %d: node %d is not a value", name, i, id)
		}
	}
	if attrs == nil {
		attrs = attr.Map{}
	}
	op := &Operation{
		id:      NodeID(len(g.nodes)),
		name:    name,
		kind:    kind,
		inputs:  append([]NodeID(nil), inputs...),
		outputs: append([]NodeID(nil), outputs...),
		attrs:   maps.Clone(attrs),
	}
	g.nodes = append(g.nodes, Node{op: op})
	if _, exists := g.index[name]; !exists {
		g.index[name] = op.id
	}
	return op, nil
}

func (g *Graph) isValue(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].value != nil
}

// Contains reports whether a node with the given name exists.
func (g *Graph) Contains(name string) bool {
	_, ok := g.index[name]
	return ok
}

// FindByName returns the node registered under name. A missing name is not
// an error; ok is false.
func (g *Graph) FindByName(name string) (n Node, ok bool) {
	id, ok := g.index[name]
	if !ok {
		return Node{}, false
	}
	return g.nodes[id], true
}

// ValueByName returns the Value named name, or nil if there is none or the
// name belongs to an Operation.
func (g *Graph) ValueByName(name string) *Value {
	n, _ := g.FindByName(name)
	return n.value
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Name returns the name of the node with the given ID, or "" for NoNode or
// an unknown ID.
func (g *Graph) Name(id NodeID) string {
	n, _ := g.Node(id)
	return n.Name()
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes yields every node in insertion order.
func (g *Graph) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range g.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// Values yields every Value in insertion order.
func (g *Graph) Values() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		for _, n := range g.nodes {
			if n.value != nil && !yield(n.value) {
				return
			}
		}
	}
}

// Operations yields every Operation in insertion order.
func (g *Graph) Operations() iter.Seq[*Operation] {
	return func(yield func(*Operation) bool) {
		for _, n := range g.nodes {
			if n.op != nil && !yield(n.op) {
				return
			}
		}
	}
}

// Producers returns the operations that list the value among their outputs.
func (g *Graph) Producers(id NodeID) []*Operation {
	var out []*Operation
	for op := range g.Operations() {
		for _, o := range op.outputs {
			if o == id {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

// Consumers returns the operations that list the value among their inputs.
func (g *Graph) Consumers(id NodeID) []*Operation {
	var out []*Operation
	for op := range g.Operations() {
		for _, in := range op.inputs {
			if in == id {
				out = append(out, op)
				break
			}
		}
	}
	return out
}
