// Package dot renders a [graph.Graph] in Graphviz DOT format.
//
// Values are drawn as filled ellipses colored by role and operations as
// rounded boxes labeled with their kind, name and a summary of their
// attributes. Edges run from each input value to its operation and from the
// operation to each output value; absent optional inputs have no edge.
//
//	src := dot.Render(g, dot.DefaultOptions())
//	svg, err := dot.Image(ctx, src, dot.FormatSVG)
//
// Output is deterministic: nodes are emitted in graph insertion order and
// attributes sorted by name, so rendering the same graph with the same
// options always yields identical bytes. All names and string values are
// escaped, so any graph renders to valid DOT.
//
// # Attribute Truncation
//
// MaxAttrItems limits both the number of attribute lines per operation and
// the number of elements shown per list value. MaxAttrChars limits the total
// attribute text per operation. Either limit being hit is marked with an
// ellipsis ("..." as a final line, ",..." inside a list), never silently.
// Zero means unlimited.
package dot
