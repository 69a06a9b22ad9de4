package loader

import (
	"time"

	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/graph"
	"github.com/tcgraph/tcgraph/pkg/graph/attr"
	"github.com/tcgraph/tcgraph/pkg/observability"
	"github.com/tcgraph/tcgraph/pkg/onnx"
)

// Option configures a load.
type Option func(*options)

type options struct {
	hooks observability.LoaderHooks
}

// WithHooks reports load progress to h. A nil h is ignored.
func WithHooks(h observability.LoaderHooks) Option {
	return func(o *options) {
		if h != nil {
			o.hooks = h
		}
	}
}

func newOptions(opts []Option) options {
	o := options{hooks: observability.NoopLoaderHooks{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load decodes model bytes and builds a graph from them.
// Undecodable input fails with ErrCodeDecodeFailure; see [FromModel] for
// construction failures.
func Load(data []byte, opts ...Option) (*graph.Graph, error) {
	o := newOptions(opts)
	start := time.Now()
	o.hooks.OnLoadStart(len(data))

	model, err := onnx.Unmarshal(data)
	if err != nil {
		o.hooks.OnLoadComplete(0, 0, time.Since(start), err)
		return nil, err
	}
	return build(model, o, start)
}

// FromModel builds a graph from an already decoded model.
//
// It fails with ErrCodeMissingGraph when the model has no graph, and with
// ErrCodeEmptyOperationName, ErrCodeDuplicateOperationName,
// ErrCodeUnsupportedOperatorKind, ErrCodeUnsupportedAttributeType,
// ErrCodeConflictingInitializerData or ErrCodeEmptyNodeName for invalid
// content. The error message names the offending record.
func FromModel(model *onnx.ModelProto, opts ...Option) (*graph.Graph, error) {
	o := newOptions(opts)
	start := time.Now()
	o.hooks.OnLoadStart(0)
	return build(model, o, start)
}

func build(model *onnx.ModelProto, o options, start time.Time) (*graph.Graph, error) {
	g, err := construct(model, o.hooks)
	if err != nil {
		o.hooks.OnLoadComplete(0, 0, time.Since(start), err)
		return nil, err
	}
	s := g.Stats()
	o.hooks.OnLoadComplete(s.Values, s.Operations, time.Since(start), nil)
	return g, nil
}

// builder holds the graph under construction. It is discarded on failure.
type builder struct {
	src   *onnx.GraphProto
	g     *graph.Graph
	hooks observability.LoaderHooks
}

func construct(model *onnx.ModelProto, hooks observability.LoaderHooks) (*graph.Graph, error) {
	if model == nil || model.Graph == nil {
		return nil, errors.New(errors.ErrCodeMissingGraph, "model has no graph")
	}
	b := &builder{src: model.Graph, g: graph.New(), hooks: hooks}
	passes := []struct {
		name string
		run  func() (int, error)
	}{
		{observability.PassPreRegister, b.preRegister},
		{observability.PassInitializers, b.initializers},
		{observability.PassGraphIO, b.graphIO},
		{observability.PassOperations, b.operations},
	}
	for _, p := range passes {
		start := time.Now()
		hooks.OnPassStart(p.name)
		n, err := p.run()
		if err != nil {
			return nil, err
		}
		hooks.OnPassComplete(p.name, n, time.Since(start))
	}
	return b.g, nil
}

// value gets or creates a value and reports creations to the hooks.
func (b *builder) value(pass, name string, role graph.Role) (*graph.Value, error) {
	before := b.g.Len()
	v, err := b.g.AddValue(name, role)
	if err != nil {
		return nil, err
	}
	if b.g.Len() > before {
		b.hooks.OnNodeAdded(pass, name, "value")
	}
	return v, nil
}

// preRegister creates an Internal value for every name an operation
// references, so later passes only ever upgrade existing values.
func (b *builder) preRegister() (int, error) {
	count := 0
	for i := range b.src.Nodes {
		node := &b.src.Nodes[i]
		for _, names := range [][]string{node.Inputs, node.Outputs} {
			for _, name := range names {
				if name == "" {
					continue
				}
				if _, err := b.value(observability.PassPreRegister, name, graph.RoleInternal); err != nil {
					return count, err
				}
				count++
			}
		}
	}
	return count, nil
}

func (b *builder) initializers() (int, error) {
	for i := range b.src.Initializers {
		t := &b.src.Initializers[i]
		v, err := b.value(observability.PassInitializers, t.Name, graph.RoleInitializer)
		if err != nil {
			return i, errors.Wrap(errors.GetCode(err), err, "initializer %d", i)
		}
		v.UpgradeRole(graph.RoleInitializer)
		if err := v.MergeInitializerData(t.Payload()); err != nil {
			return i, err
		}
	}
	return len(b.src.Initializers), nil
}

func (b *builder) graphIO() (int, error) {
	declare := func(infos []onnx.ValueInfoProto, role graph.Role, what string) error {
		for i := range infos {
			v, err := b.value(observability.PassGraphIO, infos[i].Name, role)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "graph %s %d", what, i)
			}
			v.UpgradeRole(role)
		}
		return nil
	}
	if err := declare(b.src.Inputs, graph.RoleInput, "input"); err != nil {
		return 0, err
	}
	if err := declare(b.src.Outputs, graph.RoleOutput, "output"); err != nil {
		return len(b.src.Inputs), err
	}
	return len(b.src.Inputs) + len(b.src.Outputs), nil
}

func (b *builder) operations() (int, error) {
	for i := range b.src.Nodes {
		if err := b.operation(i, &b.src.Nodes[i]); err != nil {
			return i, err
		}
	}
	return len(b.src.Nodes), nil
}

func (b *builder) operation(index int, node *onnx.NodeProto) error {
	if node.Name == "" {
		return errors.New(errors.ErrCodeEmptyOperationName,
			"operation %d (%s) has no name", index, node.OpType)
	}
	if b.g.Contains(node.Name) {
		return errors.New(errors.ErrCodeDuplicateOperationName,
			"operation %q: name already used in graph", node.Name)
	}
	kind, err := graph.ParseOpKind(node.OpType)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnsupportedOperatorKind, err, "operation %q", node.Name)
	}

	inputs := make([]graph.NodeID, len(node.Inputs))
	for i, name := range node.Inputs {
		if name == "" {
			inputs[i] = graph.NoNode
			continue
		}
		id, err := b.resolve(node.Name, name)
		if err != nil {
			return err
		}
		inputs[i] = id
	}
	outputs := make([]graph.NodeID, len(node.Outputs))
	for i, name := range node.Outputs {
		if name == "" {
			return errors.New(errors.ErrCodeEmptyNodeName,
				"operation %q: output %d has no name", node.Name, i)
		}
		id, err := b.resolve(node.Name, name)
		if err != nil {
			return err
		}
		outputs[i] = id
	}

	attrs, err := attr.Parse(node.Attributes)
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "operation %q", node.Name)
	}
	if _, err := b.g.AddOperation(node.Name, kind, inputs, outputs, attrs); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "operation %q", node.Name)
	}
	b.hooks.OnNodeAdded(observability.PassOperations, node.Name, kind.String())
	return nil
}

// resolve looks up a value registered in the pre-registration pass.
func (b *builder) resolve(op, name string) (graph.NodeID, error) {
	v := b.g.ValueByName(name)
	if v == nil {
		return graph.NoNode, errors.New(errors.ErrCodeInternal,
			"operation %q: value %q was not pre-registered", op, name)
	}
	return v.ID(), nil
}
