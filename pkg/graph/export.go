package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/graph/attr"
)

// =============================================================================
// Serialization Types
// =============================================================================

// Document is the node-link form of a Graph, encoded as JSON or YAML.
// Nodes appear in insertion order and edges in operation order, so output is
// deterministic.
type Document struct {
	Nodes []DocNode `json:"nodes" yaml:"nodes"`
	Edges []DocEdge `json:"edges" yaml:"edges"`
}

// DocNode is a Value or Operation in a Document.
type DocNode struct {
	ID    NodeID            `json:"id" yaml:"id"`
	Name  string            `json:"name" yaml:"name"`
	Kind  string            `json:"kind" yaml:"kind"`                     // "value" or "operation"
	Role  string            `json:"role,omitempty" yaml:"role,omitempty"` // values only
	Bytes int               `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Op    string            `json:"op,omitempty" yaml:"op,omitempty"` // operations only
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// DocEdge connects a value to an operation input slot, or an operation
// output slot to a value.
type DocEdge struct {
	From NodeID `json:"from" yaml:"from"`
	To   NodeID `json:"to" yaml:"to"`
	Slot string `json:"slot" yaml:"slot"` // "in<i>" or "out<i>"
}

const (
	docKindValue     = "value"
	docKindOperation = "operation"
)

// =============================================================================
// Export API
// =============================================================================

// ToDocument converts a graph to its node-link form. Absent inputs produce
// no edge. Payload bytes are summarized by length only.
func ToDocument(g *Graph) Document {
	doc := Document{Nodes: make([]DocNode, 0, g.Len()), Edges: []DocEdge{}}
	for n := range g.Nodes() {
		if v := n.Value(); v != nil {
			doc.Nodes = append(doc.Nodes, DocNode{
				ID:    v.id,
				Name:  v.name,
				Kind:  docKindValue,
				Role:  v.role.String(),
				Bytes: len(v.data),
			})
			continue
		}
		op := n.Operation()
		dn := DocNode{ID: op.id, Name: op.name, Kind: docKindOperation, Op: op.kind.String()}
		if len(op.attrs) > 0 {
			dn.Attrs = make(map[string]string, len(op.attrs))
			for name, a := range op.attrs {
				dn.Attrs[name] = a.FormatValue(0)
			}
		}
		doc.Nodes = append(doc.Nodes, dn)
		for i, in := range op.inputs {
			if in == NoNode {
				continue
			}
			doc.Edges = append(doc.Edges, DocEdge{From: in, To: op.id, Slot: fmt.Sprintf("in%d", i)})
		}
		for i, out := range op.outputs {
			doc.Edges = append(doc.Edges, DocEdge{From: op.id, To: out, Slot: fmt.Sprintf("out%d", i)})
		}
	}
	return doc
}

// MarshalJSON converts a graph to indented JSON bytes.
func MarshalJSON(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes a graph as JSON to an io.Writer.
func WriteJSON(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSONFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteJSONFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// MarshalYAML converts a graph to YAML bytes.
func MarshalYAML(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(g)); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Import
// =============================================================================

// FromDocument rebuilds the topology of a graph from its node-link form.
// Roles, operator kinds and the input/output wiring are restored; payloads
// and attribute values are summaries in a Document and are not, nor are
// absent inputs after the last connected one. Node IDs must be dense and in
// order, node names unique, and operations must come after the values they
// reference, as ToDocument writes them for loaded graphs. Slot indexes must
// be below the document's edge count.
func FromDocument(doc Document) (*Graph, error) {
	g := New()
	inputs := make(map[NodeID][]NodeID)
	outputs := make(map[NodeID][]NodeID)
	for _, e := range doc.Edges {
		input, slot, err := parseSlot(e.Slot, len(doc.Edges))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %d->%d", e.From, e.To)
		}
		if input {
			inputs[e.To] = place(inputs[e.To], slot, e.From)
		} else {
			outputs[e.From] = place(outputs[e.From], slot, e.To)
		}
	}

	for i, dn := range doc.Nodes {
		if dn.ID != NodeID(i) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "node %q: id %d out of order", dn.Name, dn.ID)
		}
		if g.Contains(dn.Name) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "node %d: name %q already used", dn.ID, dn.Name)
		}
		var id NodeID
		switch dn.Kind {
		case docKindValue:
			role, err := parseRole(dn.Role)
			if err != nil {
				return nil, err
			}
			v, err := g.AddValue(dn.Name, role)
			if err != nil {
				return nil, err
			}
			id = v.ID()
		case docKindOperation:
			kind, err := ParseOpKind(dn.Op)
			if err != nil {
				return nil, err
			}
			op, err := g.AddOperation(dn.Name, kind, inputs[dn.ID], outputs[dn.ID], attr.Map{})
			if err != nil {
				return nil, err
			}
			id = op.ID()
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "node %q: unknown kind %q", dn.Name, dn.Kind)
		}
		if id != dn.ID {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "node %q: stored as %d, document says %d", dn.Name, id, dn.ID)
		}
	}
	return g, nil
}

// ReadJSON decodes a JSON document from an io.Reader into a Graph.
func ReadJSON(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph document")
	}
	return FromDocument(doc)
}

// ReadYAML decodes a YAML document from an io.Reader into a Graph.
func ReadYAML(r io.Reader) (*Graph, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph document")
	}
	return FromDocument(doc)
}

// parseSlot splits "in<i>" or "out<i>" into its direction and index. The
// index must be below limit; no operation in a document can have more slots
// than the document has edges.
func parseSlot(s string, limit int) (input bool, slot int, err error) {
	digits, input := strings.CutPrefix(s, "in")
	if !input {
		var ok bool
		if digits, ok = strings.CutPrefix(s, "out"); !ok {
			return false, 0, fmt.Errorf("bad slot %q", s)
		}
	}
	slot, err = strconv.Atoi(digits)
	if err != nil || slot < 0 || strings.HasPrefix(digits, "+") {
		return false, 0, fmt.Errorf("bad slot %q", s)
	}
	if slot >= limit {
		return false, 0, fmt.Errorf("slot %q out of range (%d edges)", s, limit)
	}
	return input, slot, nil
}

// place stores id at position slot, padding skipped slots with NoNode.
func place(ids []NodeID, slot int, id NodeID) []NodeID {
	for len(ids) <= slot {
		ids = append(ids, NoNode)
	}
	ids[slot] = id
	return ids
}

func parseRole(s string) (Role, error) {
	for _, r := range Roles() {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "unknown role %q", s)
}
