package graph

import "strings"

// Describe returns the one-line text form of a node. A Value reads
// "name [role]", plus "(N bytes)" when it carries a payload. An Operation
// reads "name = Kind(in0, in1) -> out0", with "_" for absent inputs.
func (g *Graph) Describe(n Node) string {
	op := n.Operation()
	if op == nil {
		return n.String()
	}
	var b strings.Builder
	b.WriteString(op.name)
	b.WriteString(" = ")
	b.WriteString(op.kind.String())
	b.WriteByte('(')
	for i, id := range op.inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		if id == NoNode {
			b.WriteByte('_')
			continue
		}
		b.WriteString(g.Name(id))
	}
	b.WriteString(") -> ")
	for i, id := range op.outputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.Name(id))
	}
	return b.String()
}

// Stats summarizes a graph's contents.
type Stats struct {
	Values       int
	Operations   int
	Roles        map[Role]int
	Kinds        map[OpKind]int
	PayloadBytes int
}

// Stats counts values per role, operations per kind, and initializer bytes.
func (g *Graph) Stats() Stats {
	s := Stats{Roles: make(map[Role]int), Kinds: make(map[OpKind]int)}
	for _, n := range g.nodes {
		switch {
		case n.value != nil:
			s.Values++
			s.Roles[n.value.role]++
			s.PayloadBytes += len(n.value.data)
		case n.op != nil:
			s.Operations++
			s.Kinds[n.op.kind]++
		}
	}
	return s
}

// ValueCount returns the number of Values.
func (g *Graph) ValueCount() int { return g.Stats().Values }

// OperationCount returns the number of Operations.
func (g *Graph) OperationCount() int { return g.Stats().Operations }
