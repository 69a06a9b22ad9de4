package graph

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/graph/attr"
)

// NodeID is the index of a node in its Graph. IDs are dense, start at zero
// and follow insertion order.
type NodeID int

// NoNode marks an absent optional input slot of an Operation.
const NoNode NodeID = -1

// Role classifies a Value's place in the graph. Roles are ordered by priority:
// Internal < Input < Output < Initializer.
type Role int

const (
	RoleInternal Role = iota
	RoleInput
	RoleOutput
	RoleInitializer
)

var roleNames = [...]string{
	RoleInternal:    "internal",
	RoleInput:       "input",
	RoleOutput:      "output",
	RoleInitializer: "initializer",
}

func (r Role) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Roles lists every role in priority order.
func Roles() []Role {
	return []Role{RoleInternal, RoleInput, RoleOutput, RoleInitializer}
}

// Value is a named data-flow endpoint. Values are created through
// [Graph.AddValue] and live as long as their Graph.
type Value struct {
	id   NodeID
	name string
	role Role
	data []byte
}

// ID returns the value's index in its graph.
func (v *Value) ID() NodeID { return v.id }

// Name returns the value name.
func (v *Value) Name() string { return v.name }

// Role returns the current role.
func (v *Value) Role() Role { return v.role }

// Data returns the initializer payload, or nil when none was supplied.
// The bytes are opaque and must not be modified.
func (v *Value) Data() []byte { return v.data }

// HasData reports whether the value carries an initializer payload.
func (v *Value) HasData() bool { return len(v.data) > 0 }

// UpgradeRole raises the role to r if r has a higher priority and reports
// whether it changed. A role is never lowered, so the final role is the
// maximum over all upgrades regardless of their order.
func (v *Value) UpgradeRole(r Role) bool {
	if r <= v.role {
		return false
	}
	v.role = r
	return true
}

// MergeInitializerData attaches an initializer payload. An empty payload is
// a no-op, as is re-supplying identical bytes. A different non-empty payload
// for a value that already has one fails with
// ErrCodeConflictingInitializerData. The bytes are copied.
func (v *Value) MergeInitializerData(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if len(v.data) == 0 {
		v.data = bytes.Clone(data)
		return nil
	}
	if bytes.Equal(v.data, data) {
		return nil
	}
	return errors.New(errors.ErrCodeConflictingInitializerData,
		"value %q already has a different %d-byte payload", v.name, len(v.data))
}

// String returns "name [role]", followed by the payload size if any.
func (v *Value) String() string {
	if v.HasData() {
		return fmt.Sprintf("%s [%s] (%d bytes)", v.name, v.role, len(v.data))
	}
	return fmt.Sprintf("%s [%s]", v.name, v.role)
}

// Operation is a computational step. It is immutable once added to a graph.
type Operation struct {
	id      NodeID
	name    string
	kind    OpKind
	inputs  []NodeID
	outputs []NodeID
	attrs   attr.Map
}

// ID returns the operation's index in its graph.
func (o *Operation) ID() NodeID { return o.id }

// Name returns the operation name.
func (o *Operation) Name() string { return o.name }

// Kind returns the operator kind.
func (o *Operation) Kind() OpKind { return o.kind }

// Inputs returns the input value IDs in positional order. Absent optional
// inputs are [NoNode].
func (o *Operation) Inputs() []NodeID { return slices.Clone(o.inputs) }

// Outputs returns the output value IDs in positional order.
func (o *Operation) Outputs() []NodeID { return slices.Clone(o.outputs) }

// Attrs returns the operation's attributes. The map must not be modified.
func (o *Operation) Attrs() attr.Map { return o.attrs }

// String returns "Kind name". Use [Graph.Describe] for the form that
// includes input and output names.
func (o *Operation) String() string {
	return o.kind.String() + " " + o.name
}

// Node is one element of a Graph: either a Value or an Operation.
// Exactly one of the two is set for a node obtained from a Graph; the zero
// Node is neither.
type Node struct {
	value *Value
	op    *Operation
}

// ID returns the node's index, or NoNode for the zero Node.
func (n Node) ID() NodeID {
	switch {
	case n.value != nil:
		return n.value.id
	case n.op != nil:
		return n.op.id
	}
	return NoNode
}

// Name returns the node name.
func (n Node) Name() string {
	switch {
	case n.value != nil:
		return n.value.name
	case n.op != nil:
		return n.op.name
	}
	return ""
}

// IsValue reports whether the node is a Value.
func (n Node) IsValue() bool { return n.value != nil }

// IsOperation reports whether the node is an Operation.
func (n Node) IsOperation() bool { return n.op != nil }

// Value returns the node as a Value, or nil if it is an Operation.
func (n Node) Value() *Value { return n.value }

// Operation returns the node as an Operation, or nil if it is a Value.
func (n Node) Operation() *Operation { return n.op }

func (n Node) String() string {
	switch {
	case n.value != nil:
		return n.value.String()
	case n.op != nil:
		return n.op.String()
	}
	return "<nil>"
}
