package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tcgraph/tcgraph/pkg/graph"
	"github.com/tcgraph/tcgraph/pkg/onnx"
)

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [model.onnx]",
		Short: "Show model metadata and a summary of its graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeInspect(c.out, m)
			return nil
		},
	}
}

func writeInspect(w io.Writer, m *model) {
	fmt.Fprintln(w, StyleTitle.Render("Model"))
	printKeyValue(w, "File", m.path)
	printKeyValue(w, "Size", fmt.Sprintf("%d bytes", m.size))
	printKeyValue(w, "Fingerprint", fmt.Sprintf("%016x", m.fingerprint))
	printKeyValue(w, "Producer", producer(m.proto))
	printKeyValue(w, "IR version", strconv.FormatInt(m.proto.IRVersion, 10))
	printKeyValue(w, "Opset", strconv.FormatInt(m.proto.Opset(), 10))
	if name := m.proto.Graph.Name; name != "" {
		printKeyValue(w, "Graph", name)
	}
	fmt.Fprintln(w)

	stats := m.graph.Stats()
	fmt.Fprintln(w, StyleTitle.Render("Values"))
	fmt.Fprintln(w, roleTable(stats).Render())
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Operations"))
	if stats.Operations == 0 {
		printInfo(w, "graph has no operations")
	} else {
		fmt.Fprintln(w, kindTable(stats).Render())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Interface"))
	fmt.Fprintln(w, interfaceTable(m.proto.Graph).Render())
}

func producer(p *onnx.ModelProto) string {
	s := strings.TrimSpace(p.ProducerName + " " + p.ProducerVersion)
	if s == "" {
		return "unknown"
	}
	return s
}

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

func roleTable(s graph.Stats) *table.Table {
	roles := graph.Roles()
	t := newTable("Role", "Count")
	for _, r := range roles {
		t.Row(r.String(), strconv.Itoa(s.Roles[r]))
	}
	t.Row("payload", fmt.Sprintf("%d bytes", s.PayloadBytes))
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == headerRow:
			return styleHeader
		case col == 0 && row < len(roles):
			return roleStyle(roles[row])
		case col == 1:
			return StyleNumber
		}
		return StyleDim
	})
}

func kindTable(s graph.Stats) *table.Table {
	t := newTable("Kind", "Count")
	for _, k := range graph.OpKinds() {
		if n := s.Kinds[k]; n > 0 {
			t.Row(k.String(), strconv.Itoa(n))
		}
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == headerRow:
			return styleHeader
		case col == 0:
			return styleOperation
		}
		return StyleNumber
	})
}

func interfaceTable(g *onnx.GraphProto) *table.Table {
	t := newTable("Name", "Role", "Shape")
	for _, vi := range g.Inputs {
		t.Row(vi.Name, graph.RoleInput.String(), formatShape(vi.Shape()))
	}
	for _, vi := range g.Outputs {
		t.Row(vi.Name, graph.RoleOutput.String(), formatShape(vi.Shape()))
	}
	nInputs := len(g.Inputs)
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == headerRow:
			return styleHeader
		case col == 1 && row < nInputs:
			return roleStyle(graph.RoleInput)
		case col == 1:
			return roleStyle(graph.RoleOutput)
		}
		return StyleValue
	})
}

// formatShape renders dims as "[1,3,?,8]". Unknown shapes render as "-".
func formatShape(dims []int64) string {
	if dims == nil {
		return "-"
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		if d < 0 {
			parts[i] = "?"
			continue
		}
		parts[i] = strconv.FormatInt(d, 10)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
