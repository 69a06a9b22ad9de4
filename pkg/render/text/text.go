// Package text renders a graph as a plain-text listing.
//
// Each node becomes one line in insertion order, using
// [graph.Graph.Describe]:
//
//	X [input]
//	W [initializer] (64 bytes)
//	Y [output]
//	add0 = Add(X, W) -> Y
package text

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/tcgraph/tcgraph/pkg/graph"
	"github.com/tcgraph/tcgraph/pkg/observability"
)

// Render returns the listing as a string.
func Render(g *graph.Graph) string {
	var b strings.Builder
	_ = Write(&b, g, nil)
	return b.String()
}

// Write streams the listing to w. Hooks may be nil.
func Write(w io.Writer, g *graph.Graph, hooks observability.RenderHooks) error {
	if hooks == nil {
		hooks = observability.NoopRenderHooks{}
	}
	start := time.Now()
	hooks.OnRenderStart("text", g.Len())

	bw := bufio.NewWriter(w)
	size := 0
	for n := range g.Nodes() {
		k, _ := bw.WriteString(g.Describe(n))
		_ = bw.WriteByte('\n')
		size += k + 1
	}
	err := bw.Flush()

	hooks.OnRenderComplete("text", size, time.Since(start), err)
	return err
}
