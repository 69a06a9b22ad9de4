package dot

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tcgraph/tcgraph/pkg/graph"
)

// Fill colors.
const (
	colorInput       = "#4FC3F7"
	colorOutput      = "#66BB6A"
	colorInitializer = "#FFCA28"
	colorInternal    = "#FFFFFF"
	colorOperation   = "#B39DDB"
)

func fillColor(r graph.Role) string {
	switch r {
	case graph.RoleInput:
		return colorInput
	case graph.RoleOutput:
		return colorOutput
	case graph.RoleInitializer:
		return colorInitializer
	}
	return colorInternal
}

// Render converts a graph to DOT. The graph is only read. Negative budgets
// in opts are treated as unlimited; use [Options.Validate] to reject them.
func Render(g *graph.Graph, opts Options) string {
	hooks := opts.hooks()
	start := time.Now()
	hooks.OnRenderStart("dot", g.Len())

	var b strings.Builder
	b.WriteString("digraph tc_graph {\n")
	if opts.LeftToRight {
		b.WriteString("  rankdir=LR;\n")
	}
	b.WriteString("  graph [fontname=\"Helvetica\"];\n")
	b.WriteString("  node  [fontname=\"Helvetica\"];\n")
	b.WriteString("  edge  [fontname=\"Helvetica\"];\n")

	for n := range g.Nodes() {
		if v := n.Value(); v != nil {
			if !opts.ShowValues {
				continue
			}
			fmt.Fprintf(&b, "  %s [shape=ellipse, style=filled, fillcolor=%q, label=\"%s\"];\n",
				nodeID(v.ID()), fillColor(v.Role()), escape(v.Name()))
			continue
		}
		op := n.Operation()
		fmt.Fprintf(&b, "  %s [shape=box, style=\"rounded,filled\", fillcolor=%q, labeljust=\"l\", label=\"%s\"];\n",
			nodeID(op.ID()), colorOperation, operationLabel(op, opts))
	}

	if opts.ShowValues {
		for op := range g.Operations() {
			for i, in := range op.Inputs() {
				if in == graph.NoNode {
					continue
				}
				writeEdge(&b, nodeID(in), nodeID(op.ID()), "in", i, opts.ShowEdgeIndices)
			}
			for i, out := range op.Outputs() {
				writeEdge(&b, nodeID(op.ID()), nodeID(out), "out", i, opts.ShowEdgeIndices)
			}
		}
	}

	b.WriteString("}\n")
	out := b.String()
	hooks.OnRenderComplete("dot", len(out), time.Since(start), nil)
	return out
}

// nodeID is the DOT identifier of a node. It is derived from the arena
// index, so it is stable across renders of the same graph.
func nodeID(id graph.NodeID) string {
	return fmt.Sprintf("n%d", id)
}

func writeEdge(b *strings.Builder, from, to, slot string, index int, labeled bool) {
	fmt.Fprintf(b, "  %s -> %s", from, to)
	if labeled {
		fmt.Fprintf(b, " [label=\"%s%d\"]", slot, index)
	}
	b.WriteString(";\n")
}

// operationLabel builds "Kind\nname" plus one left-justified line per
// attribute. The result is already escaped.
func operationLabel(op *graph.Operation, opts Options) string {
	label := escape(op.Kind().String()) + `\n` + escape(op.Name())
	if attrs := attributeLines(op, opts); attrs != "" {
		label += `\n` + attrs
	}
	return label
}

// attributeLines renders sorted "name=value" lines, each ending in \l.
// A line that would overrun the character budget is cut and ends in "...";
// attributes left over after either limit is reached become a final "..."
// line.
func attributeLines(op *graph.Operation, opts Options) string {
	attrs := op.Attrs()
	if !opts.ShowAttrs || len(attrs) == 0 {
		return ""
	}
	maxItems := max(opts.MaxAttrItems, 0)
	maxChars := max(opts.MaxAttrChars, 0)

	var b strings.Builder
	used := 0
	for count, a := range attrs.Sorted() {
		if (maxItems != 0 && count >= maxItems) || (maxChars != 0 && used >= maxChars) {
			b.WriteString(`...\l`)
			break
		}
		line := a.Name() + "=" + a.FormatValue(maxItems)
		if maxChars != 0 && used+len(line) > maxChars {
			line = truncate(line, maxChars-used) + "..."
			used = maxChars
		} else {
			used += len(line)
		}
		b.WriteString(escape(line))
		b.WriteString(`\l`)
	}
	return b.String()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", "",
	"\t", "  ",
)

// escape makes s safe inside a double-quoted DOT string.
func escape(s string) string {
	return escaper.Replace(s)
}
