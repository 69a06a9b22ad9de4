// Package render holds the graph renderers and shared format conversion.
//
//   - [dot]: Graphviz DOT output and in-process SVG/PNG/JPG rendering
//   - [text]: one line per node, in graph order
//
// # Format Conversion
//
// [ToPDF] converts an SVG produced by [dot.Image] to PDF using the external
// rsvg-convert tool (from librsvg):
//
//	src := dot.Render(g, dot.DefaultOptions())
//	svg, err := dot.Image(ctx, src, dot.FormatSVG)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [dot]: github.com/tcgraph/tcgraph/pkg/render/dot
// [dot.Image]: github.com/tcgraph/tcgraph/pkg/render/dot#Image
// [text]: github.com/tcgraph/tcgraph/pkg/render/text
package render
