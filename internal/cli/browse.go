package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tcgraph/tcgraph/pkg/graph"
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [model.onnx]",
		Short: "Explore a model's nodes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewNodeListModel(m.graph),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing graph nodes. The left
// pane lists nodes in load order; the right pane describes the one under the
// cursor.
type NodeListModel struct {
	Graph  *graph.Graph
	Nodes  []graph.Node
	Cursor int
	Height int
	Offset int

	// OpsOnly hides Values from the list.
	OpsOnly bool
}

// NewNodeListModel creates a browser over every node of g.
func NewNodeListModel(g *graph.Graph) NodeListModel {
	m := NodeListModel{Graph: g, Height: 15}
	m.refresh()
	return m
}

// refresh rebuilds the visible node list and clamps the cursor.
func (m *NodeListModel) refresh() {
	m.Nodes = nil
	for n := range m.Graph.Nodes() {
		if m.OpsOnly && !n.IsOperation() {
			continue
		}
		m.Nodes = append(m.Nodes, n)
	}
	m.Cursor = min(m.Cursor, max(len(m.Nodes)-1, 0))
	m.Offset = min(m.Offset, m.Cursor)
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *NodeListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Selected returns the node under the cursor.
func (m NodeListModel) Selected() (graph.Node, bool) {
	if len(m.Nodes) == 0 {
		return graph.Node{}, false
	}
	return m.Nodes[m.Cursor], true
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
			}
		case "pgup":
			m.Cursor = max(m.Cursor-m.Height, 0)
		case "pgdown":
			m.Cursor = max(min(m.Cursor+m.Height, len(m.Nodes)-1), 0)
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Nodes)-1, 0)
		case "o":
			m.OpsOnly = !m.OpsOnly
			m.refresh()
			return m, nil
		}
		m.scroll()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.scroll()
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  o operations only  q quit"))
	b.WriteString("\n\n")

	if len(m.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (no nodes)"))
		return b.String()
	}

	list := m.listView()
	n, _ := m.Selected()
	detail := detailStyle.Render(m.detailView(n))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))
	return b.String()
}

func (m NodeListModel) listView() string {
	end := min(m.Offset+m.Height, len(m.Nodes))
	lines := make([]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + listLabel(n)
		switch {
		case i == m.Cursor:
			lines = append(lines, listSelectedStyle.Render(line))
		case n.IsOperation():
			lines = append(lines, styleOperation.Render(line))
		default:
			lines = append(lines, listNormalStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// listLabel is the short form shown in the list: "name (Kind)" or "name [role]".
func listLabel(n graph.Node) string {
	if op := n.Operation(); op != nil {
		return fmt.Sprintf("%s (%s)", op.Name(), op.Kind())
	}
	v := n.Value()
	return fmt.Sprintf("%s [%s]", v.Name(), v.Role())
}

func (m NodeListModel) detailView(n graph.Node) string {
	var b strings.Builder
	b.WriteString(m.Graph.Describe(n))
	b.WriteString("\n")

	if v := n.Value(); v != nil {
		b.WriteString("\n")
		b.WriteString(roleStyle(v.Role()).Render(v.Role().String()))
		if v.HasData() {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d payload bytes", len(v.Data()))))
		}
		b.WriteString("\n")
		writeOps(&b, "produced by", m.Graph.Producers(v.ID()))
		writeOps(&b, "consumed by", m.Graph.Consumers(v.ID()))
		return b.String()
	}

	op := n.Operation()
	attrs := op.Attrs().Sorted()
	if len(attrs) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(styleHeader.Render("attributes"))
	b.WriteString("\n")
	for _, a := range attrs {
		b.WriteString("  " + a.String() + "\n")
	}
	return b.String()
}

func writeOps(b *strings.Builder, label string, ops []*graph.Operation) {
	if len(ops) == 0 {
		return
	}
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name()
	}
	b.WriteString(styleHeader.Render(label) + " " + strings.Join(names, ", ") + "\n")
}
