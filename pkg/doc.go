// Package pkg provides the core libraries for tcgraph.
//
// # Overview
//
// tcgraph loads serialized ONNX models into an in-memory graph of Values
// (named data-flow endpoints) and Operations (computational steps), then
// renders that graph as Graphviz DOT, images, plain text or JSON.
//
// # Architecture
//
// The typical data flow:
//
//	model.onnx bytes
//	       ↓
//	  [onnx] package (wire decoding into a record tree)
//	       ↓
//	  [loader] package (four-pass graph construction)
//	       ↓
//	  [graph] package (arena of Values and Operations, [attr] attributes)
//	       ↓
//	  [render] packages (DOT, text, SVG/PNG/JPG/PDF)
//
// # Quick Start
//
//	import (
//	    "github.com/tcgraph/tcgraph/pkg/loader"
//	    "github.com/tcgraph/tcgraph/pkg/render/dot"
//	)
//
//	g, err := loader.Load(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(dot.Render(g, dot.DefaultOptions()))
//
// # Main Packages
//
//   - [onnx]: protobuf wire decoding and encoding of the model format
//   - [loader]: builds a graph from a model, reporting progress through hooks
//   - [graph]: the graph container, node model and JSON export
//   - [attr]: typed operation attributes
//   - [dot]: deterministic DOT rendering and in-process Graphviz layout
//   - [text]: one line per node
//   - [config]: TOML settings for the CLI
//   - [observability]: loader and render hooks
//   - [errors]: coded errors shared by every package
//   - [demo]: a sample model covering the core operators
//
// [onnx]: github.com/tcgraph/tcgraph/pkg/onnx
// [loader]: github.com/tcgraph/tcgraph/pkg/loader
// [graph]: github.com/tcgraph/tcgraph/pkg/graph
// [attr]: github.com/tcgraph/tcgraph/pkg/graph/attr
// [render]: github.com/tcgraph/tcgraph/pkg/render
// [dot]: github.com/tcgraph/tcgraph/pkg/render/dot
// [text]: github.com/tcgraph/tcgraph/pkg/render/text
// [config]: github.com/tcgraph/tcgraph/pkg/config
// [observability]: github.com/tcgraph/tcgraph/pkg/observability
// [errors]: github.com/tcgraph/tcgraph/pkg/errors
// [demo]: github.com/tcgraph/tcgraph/pkg/demo
package pkg
