package text

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tcgraph/tcgraph/pkg/graph"
)

func buildGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	x, _ := g.AddValue("X", graph.RoleInput)
	w, _ := g.AddValue("W", graph.RoleInitializer)
	if err := w.MergeInitializerData([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	y, _ := g.AddValue("Y", graph.RoleOutput)
	if _, err := g.AddOperation("conv0", graph.OpConv,
		[]graph.NodeID{x.ID(), w.ID(), graph.NoNode},
		[]graph.NodeID{y.ID()}, nil); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRender(t *testing.T) {
	got := Render(buildGraph(t))
	want := strings.Join([]string{
		"X [input]",
		"W [initializer] (4 bytes)",
		"Y [output]",
		"conv0 = Conv(X, W, _) -> Y",
		"",
	}, "\n")
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(graph.New()); got != "" {
		t.Errorf("Render(empty) = %q, want empty", got)
	}
}

type hookRecorder struct {
	format string
	nodes  int
	size   int
	err    error
}

func (h *hookRecorder) OnRenderStart(format string, nodes int) {
	h.format = format
	h.nodes = nodes
}

func (h *hookRecorder) OnRenderComplete(_ string, size int, _ time.Duration, err error) {
	h.size = size
	h.err = err
}

func TestWriteHooks(t *testing.T) {
	var b strings.Builder
	rec := &hookRecorder{}
	if err := Write(&b, buildGraph(t), rec); err != nil {
		t.Fatal(err)
	}
	if rec.format != "text" || rec.nodes != 4 {
		t.Errorf("OnRenderStart(%q, %d), want (text, 4)", rec.format, rec.nodes)
	}
	if rec.size != b.Len() {
		t.Errorf("size = %d, want %d", rec.size, b.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	rec := &hookRecorder{}
	err := Write(failingWriter{}, buildGraph(t), rec)
	if err == nil {
		t.Fatal("expected write error")
	}
	if rec.err == nil {
		t.Error("hooks should see the write error")
	}
}
