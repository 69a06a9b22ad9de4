package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/render/dot"
)

func TestDefaultMatchesRenderer(t *testing.T) {
	cfg := Default()
	if got, want := cfg.Render.DotOptions(), dot.DefaultOptions(); got != want {
		t.Errorf("DotOptions() = %+v, want %+v", got, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[render]
show_values = false
edge_indices = true
left_to_right = true
max_attr_items = 4
formats = ["svg", "json"]

[log]
level = "debug"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Render{
		ShowValues:   false,
		EdgeIndices:  true,
		LeftToRight:  true,
		ShowAttrs:    true, // untouched keys keep defaults
		MaxAttrItems: 4,
		MaxAttrChars: 256,
		Formats:      []string{"svg", "json"},
	}
	if !reflect.DeepEqual(cfg.Render, want) {
		t.Errorf("Render = %+v, want %+v", cfg.Render, want)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != log.DebugLevel {
		t.Errorf("LogLevel() = %v, %v", level, err)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "[render", errors.ErrCodeInvalidInput},
		{"unknown key", "[render]\nshow_value = true", errors.ErrCodeInvalidInput},
		{"unknown table", "[colors]\nop = \"red\"", errors.ErrCodeInvalidInput},
		{"negative items", "[render]\nmax_attr_items = -1", errors.ErrCodeInvalidInput},
		{"negative chars", "[render]\nmax_attr_chars = -3", errors.ErrCodeInvalidInput},
		{"bad format", "[render]\nformats = [\"gif\"]", errors.ErrCodeInvalidFormat},
		{"bad level", "[log]\nlevel = \"loud\"", errors.ErrCodeInvalidInput},
		{"wrong type", "[render]\nshow_values = 1", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if !reflect.DeepEqual(cfg.Render.Formats, []string{DefaultFormat}) {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range append(slices.Clone(Formats), "jpeg") {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"", "SVG", "gif"} {
		if err := ValidateFormat(f); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) = %v, want INVALID_FORMAT", f, err)
		}
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	writeFile(t, path, "[render]\nleft_to_right = true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Render.LeftToRight {
		t.Error("left_to_right not applied")
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestResolve(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "explicit.toml")
		writeFile(t, path, "[log]\nlevel = \"warn\"\n")
		cfg, used, err := Resolve(path)
		if err != nil {
			t.Fatal(err)
		}
		if used != path || cfg.Log.Level != "warn" {
			t.Errorf("Resolve() = %+v, %q", cfg.Log, used)
		}
	})

	t.Run("explicit missing", func(t *testing.T) {
		_, _, err := Resolve(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("error = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		writeFile(t, filepath.Join(dir, "tcgraph", "config.toml"), "[render]\nshow_attrs = false\n")

		cfg, used, err := Resolve("")
		if err != nil {
			t.Fatal(err)
		}
		if used != filepath.Join(dir, "tcgraph", "config.toml") {
			t.Errorf("path = %q", used)
		}
		if cfg.Render.ShowAttrs {
			t.Error("show_attrs not applied")
		}
	})

	t.Run("default missing", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, used, err := Resolve("")
		if err != nil {
			t.Fatal(err)
		}
		if used != "" || !reflect.DeepEqual(cfg, Default()) {
			t.Errorf("Resolve() = %+v, %q, want defaults", cfg, used)
		}
	})

	t.Run("default invalid", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		writeFile(t, filepath.Join(dir, "tcgraph", "config.toml"), "bogus = 1\n")
		if _, _, err := Resolve(""); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("error = %v, want INVALID_INPUT", err)
		}
	})
}

func TestDefaultPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".config", "tcgraph", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
