package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/viant/afs"

	"github.com/tcgraph/tcgraph/pkg/demo"
	"github.com/tcgraph/tcgraph/pkg/errors"
)

func TestReadSourceLocal(t *testing.T) {
	path := writeDemo(t)
	dir, name := filepath.Split(path)
	t.Chdir(dir)

	data, err := readSource(context.Background(), afs.New(), name)
	if err != nil {
		t.Fatalf("readSource: %v", err)
	}
	if !bytes.Equal(data, demo.Bytes(demo.DefaultOpset)) {
		t.Error("relative path returned unexpected bytes")
	}
}

func TestReadSourceMemURL(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	url := "mem://localhost/tcgraph/source_test/model.onnx"
	want := demo.Bytes(demo.DefaultOpset)
	if err := fs.Upload(ctx, url, 0o644, bytes.NewReader(want)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	got, err := readSource(ctx, fs, url)
	if err != nil {
		t.Fatalf("readSource: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("mem URL returned unexpected bytes")
	}
}

func TestReadSourceMissing(t *testing.T) {
	ctx := context.Background()
	for _, location := range []string{
		filepath.Join(t.TempDir(), "missing.onnx"),
		"mem://localhost/tcgraph/source_test/missing.onnx",
	} {
		_, err := readSource(ctx, afs.New(), location)
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("readSource(%q) error = %v, want FILE_NOT_FOUND", location, err)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a, err := fingerprint([]byte("model-a"))
	if err != nil {
		t.Fatal(err)
	}
	again, _ := fingerprint([]byte("model-a"))
	b, _ := fingerprint([]byte("model-b"))
	if a != again {
		t.Error("fingerprint is not deterministic")
	}
	if a == b {
		t.Error("different inputs share a fingerprint")
	}
}

func TestPrintFromMemURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()
	url := "mem://localhost/tcgraph/print_test/model.onnx"

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.SetOutput(&out)
	if err := c.fs.Upload(ctx, url, 0o644, bytes.NewReader(demo.Bytes(demo.DefaultOpset))); err != nil {
		t.Fatalf("upload: %v", err)
	}

	root := c.RootCommand()
	root.SetArgs([]string{"print", url})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out.String(), "gemm0 = Gemm(") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
