package dot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/graph"
	"github.com/tcgraph/tcgraph/pkg/graph/attr"
)

func addValue(t *testing.T, g *graph.Graph, name string, role graph.Role) graph.NodeID {
	t.Helper()
	v, err := g.AddValue(name, role)
	if err != nil {
		t.Fatalf("AddValue(%q): %v", name, err)
	}
	return v.ID()
}

func addOp(t *testing.T, g *graph.Graph, name string, kind graph.OpKind, in, out []graph.NodeID, attrs attr.Map) {
	t.Helper()
	if _, err := g.AddOperation(name, kind, in, out, attrs); err != nil {
		t.Fatalf("AddOperation(%q): %v", name, err)
	}
}

// basicGraph is X + W -> Y.
func basicGraph(t *testing.T) *graph.Graph {
	g := graph.New()
	x := addValue(t, g, "X", graph.RoleInput)
	w := addValue(t, g, "W", graph.RoleInitializer)
	y := addValue(t, g, "Y", graph.RoleInternal)
	addOp(t, g, "n1", graph.OpAdd, []graph.NodeID{x, w}, []graph.NodeID{y}, nil)
	return g
}

func TestRender_Basic(t *testing.T) {
	got := Render(basicGraph(t), DefaultOptions())
	want := `digraph tc_graph {
  graph [fontname="Helvetica"];
  node  [fontname="Helvetica"];
  edge  [fontname="Helvetica"];
  n0 [shape=ellipse, style=filled, fillcolor="#4FC3F7", label="X"];
  n1 [shape=ellipse, style=filled, fillcolor="#FFCA28", label="W"];
  n2 [shape=ellipse, style=filled, fillcolor="#FFFFFF", label="Y"];
  n3 [shape=box, style="rounded,filled", fillcolor="#B39DDB", labeljust="l", label="Add\nn1"];
  n0 -> n3;
  n1 -> n3;
  n3 -> n2;
}
`
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Deterministic(t *testing.T) {
	g := basicGraph(t)
	y := g.ValueByName("Y").ID()
	z := addValue(t, g, "Z", graph.RoleOutput)
	addOp(t, g, "t", graph.OpTranspose, []graph.NodeID{y}, []graph.NodeID{z}, attr.Map{
		"perm":  attr.Ints("perm", []int64{1, 0}),
		"alpha": attr.Float("alpha", 0.5),
		"mode":  attr.String("mode", "x"),
		"beta":  attr.Int("beta", 2),
	})

	opts := DefaultOptions()
	opts.ShowEdgeIndices = true
	first := Render(g, opts)
	for range 10 {
		if got := Render(g, opts); got != first {
			t.Fatalf("Render() not deterministic:\n%s\nvs\n%s", got, first)
		}
	}
	if !strings.Contains(first, `label="Transpose\nt\nalpha=0.5\lbeta=2\lmode=\"x\"\lperm=[1,0]\l"`) {
		t.Errorf("attributes should be sorted by name:\n%s", first)
	}
}

func TestRender_RoleColors(t *testing.T) {
	g := graph.New()
	addValue(t, g, "out", graph.RoleOutput)
	dot := Render(g, DefaultOptions())
	if !strings.Contains(dot, `fillcolor="#66BB6A", label="out"`) {
		t.Errorf("output value should be green:\n%s", dot)
	}
}

func TestRender_LeftToRight(t *testing.T) {
	opts := DefaultOptions()
	if strings.Contains(Render(basicGraph(t), opts), "rankdir") {
		t.Error("rankdir emitted without LeftToRight")
	}
	opts.LeftToRight = true
	if !strings.Contains(Render(basicGraph(t), opts), "  rankdir=LR;\n") {
		t.Error("missing rankdir=LR")
	}
}

func TestRender_HideValues(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowValues = false
	dot := Render(basicGraph(t), opts)

	if strings.Contains(dot, "ellipse") {
		t.Error("value nodes drawn with ShowValues=false")
	}
	if strings.Contains(dot, "->") {
		t.Error("edges drawn with ShowValues=false")
	}
	if !strings.Contains(dot, `label="Add\nn1"`) {
		t.Error("operation missing")
	}
}

func TestRender_EdgeIndicesAndAbsentInputs(t *testing.T) {
	g := graph.New()
	x := addValue(t, g, "X", graph.RoleInput)
	b := addValue(t, g, "B", graph.RoleInitializer)
	y := addValue(t, g, "Y", graph.RoleOutput)
	addOp(t, g, "conv", graph.OpConv, []graph.NodeID{x, graph.NoNode, b}, []graph.NodeID{y}, nil)

	opts := DefaultOptions()
	opts.ShowEdgeIndices = true
	dot := Render(g, opts)

	for _, want := range []string{
		`n0 -> n3 [label="in0"];`,
		`n1 -> n3 [label="in2"];`,
		`n3 -> n2 [label="out0"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "in1") {
		t.Error("absent input should have no edge")
	}
	if got := strings.Count(dot, "->"); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
}

func TestRender_Escaping(t *testing.T) {
	g := graph.New()
	addValue(t, g, "a\"b\nc\td\re\\f", graph.RoleInput)
	y := addValue(t, g, "y", graph.RoleOutput)
	addOp(t, g, "op\"1", graph.OpIdentity, nil, []graph.NodeID{y}, attr.Map{
		"s": attr.String("s", "q\"uote"),
	})

	dot := Render(g, DefaultOptions())
	if !strings.Contains(dot, `label="a\"b\nc  de\\f"`) {
		t.Errorf("value name not escaped:\n%s", dot)
	}
	if !strings.Contains(dot, `label="Identity\nop\"1\ns=\"q\\\"uote\"\l"`) {
		t.Errorf("operation label not escaped:\n%s", dot)
	}
	assertBalancedQuotes(t, dot)
}

// assertBalancedQuotes checks that every line has an even number of
// unescaped double quotes.
func assertBalancedQuotes(t *testing.T, dot string) {
	t.Helper()
	for _, line := range strings.Split(dot, "\n") {
		n := 0
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '\\':
				i++
			case '"':
				n++
			}
		}
		if n%2 != 0 {
			t.Errorf("unbalanced quotes in %q", line)
		}
	}
}

func longAttrsGraph(t *testing.T) *graph.Graph {
	g := graph.New()
	y := addValue(t, g, "Y", graph.RoleOutput)
	addOp(t, g, "c", graph.OpConv, nil, []graph.NodeID{y}, attr.Map{
		"a": attr.Ints("a", []int64{1, 2, 3, 4, 5}),
		"b": attr.Int("b", 1),
		"c": attr.Int("c", 2),
		"d": attr.Int("d", 3),
	})
	return g
}

func TestRender_TruncateItems(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttrItems = 2
	dot := Render(longAttrsGraph(t), opts)

	if !strings.Contains(dot, `a=[1,2,...]\lb=1\l...\l"`) {
		t.Errorf("expected list and attribute truncation:\n%s", dot)
	}
}

func TestRender_TruncateChars(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttrChars = 8
	dot := Render(longAttrsGraph(t), opts)

	// "a=[1,2,3,4,5]" is 13 bytes; it is cut to 8 and the rest elided.
	if !strings.Contains(dot, `a=[1,2,3...\l...\l"`) {
		t.Errorf("expected character budget truncation:\n%s", dot)
	}
}

func TestRender_TruncationAlwaysVisible(t *testing.T) {
	for items := 1; items <= 4; items++ {
		opts := DefaultOptions()
		opts.MaxAttrItems = items
		dot := Render(longAttrsGraph(t), opts)
		if !strings.Contains(dot, "...") {
			t.Errorf("MaxAttrItems=%d: list of 5 rendered without ellipsis:\n%s", items, dot)
		}
	}
}

func TestRender_Unlimited(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttrItems = 0
	opts.MaxAttrChars = 0
	dot := Render(longAttrsGraph(t), opts)
	if strings.Contains(dot, "...") {
		t.Errorf("unexpected truncation:\n%s", dot)
	}
	if !strings.Contains(dot, `a=[1,2,3,4,5]\lb=1\lc=2\ld=3\l"`) {
		t.Errorf("missing full attributes:\n%s", dot)
	}
}

func TestRender_NegativeBudgetsAreUnlimited(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttrItems = -1
	opts.MaxAttrChars = -5
	if strings.Contains(Render(longAttrsGraph(t), opts), "...") {
		t.Error("negative budgets should not truncate")
	}
}

func TestRender_HideAttrs(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowAttrs = false
	dot := Render(longAttrsGraph(t), opts)
	if !strings.Contains(dot, `label="Conv\nc"`) {
		t.Errorf("attributes shown with ShowAttrs=false:\n%s", dot)
	}
}

func TestRender_EmptyGraph(t *testing.T) {
	dot := Render(graph.New(), DefaultOptions())
	if !strings.HasPrefix(dot, "digraph tc_graph {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("bad empty graph output:\n%s", dot)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "h"}, // é is two bytes; never split it
		{"héllo", 3, "hé"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v", err)
	}
	for _, opts := range []Options{{MaxAttrItems: -1}, {MaxAttrChars: -1}} {
		if err := opts.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Validate(%+v) = %v, want INVALID_INPUT", opts, err)
		}
	}
}

type renderRecorder struct {
	started, completed int
	nodes, size        int
}

func (r *renderRecorder) OnRenderStart(_ string, nodes int) {
	r.started++
	r.nodes = nodes
}

func (r *renderRecorder) OnRenderComplete(_ string, size int, _ time.Duration, _ error) {
	r.completed++
	r.size = size
}

func TestRender_Hooks(t *testing.T) {
	rec := &renderRecorder{}
	opts := DefaultOptions()
	opts.Hooks = rec
	out := Render(basicGraph(t), opts)

	if rec.started != 1 || rec.completed != 1 {
		t.Errorf("hooks called %d/%d times, want 1/1", rec.started, rec.completed)
	}
	if rec.nodes != 4 || rec.size != len(out) {
		t.Errorf("hooks got nodes=%d size=%d, want 4 and %d", rec.nodes, rec.size, len(out))
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"svg": FormatSVG, "png": FormatPNG, "jpg": FormatJPG, "jpeg": FormatJPG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(gif) error = %v", err)
	}
}

func TestImage_SVG(t *testing.T) {
	svg, err := Image(context.Background(), Render(basicGraph(t), DefaultOptions()), FormatSVG)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("SVG root not normalized: %.200s", s)
	}
	if !strings.Contains(s, ">n1<") {
		t.Error("SVG missing operation label")
	}
}

func TestImage_UnsupportedFormat(t *testing.T) {
	_, err := Image(context.Background(), "digraph{}", Format("gif"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.25 200.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.25 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox without viewBox changed input: %s", got)
	}
}
