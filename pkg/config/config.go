// Package config loads tcgraph settings from a TOML file.
//
// A config file looks like:
//
//	[render]
//	show_values = true
//	edge_indices = false
//	left_to_right = true
//	show_attrs = true
//	max_attr_items = 16
//	max_attr_chars = 256
//	formats = ["dot", "svg"]
//
//	[log]
//	level = "info"
//
// Keys left out keep their defaults. Unknown keys are rejected.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/render/dot"
)

const (
	appName  = "tcgraph"
	fileName = "config.toml"
)

// Output formats understood by the render command.
const (
	FormatDOT  = "dot"
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJPG  = "jpg"
	FormatPDF  = "pdf"
)

// Formats lists every valid output format.
var Formats = []string{FormatDOT, FormatText, FormatJSON, FormatYAML, FormatSVG, FormatPNG, FormatJPG, FormatPDF}

// Default values.
const (
	DefaultFormat   = FormatDOT
	DefaultLogLevel = "info"
)

// Config is the full set of file settings.
type Config struct {
	Render Render `toml:"render"`
	Log    Log    `toml:"log"`
}

// Render holds DOT rendering defaults.
type Render struct {
	ShowValues   bool     `toml:"show_values"`
	EdgeIndices  bool     `toml:"edge_indices"`
	LeftToRight  bool     `toml:"left_to_right"`
	ShowAttrs    bool     `toml:"show_attrs"`
	MaxAttrItems int      `toml:"max_attr_items"`
	MaxAttrChars int      `toml:"max_attr_chars"`
	Formats      []string `toml:"formats"`
}

// Log holds logging settings.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := dot.DefaultOptions()
	return &Config{
		Render: Render{
			ShowValues:   opts.ShowValues,
			EdgeIndices:  opts.ShowEdgeIndices,
			LeftToRight:  opts.LeftToRight,
			ShowAttrs:    opts.ShowAttrs,
			MaxAttrItems: opts.MaxAttrItems,
			MaxAttrChars: opts.MaxAttrChars,
			Formats:      []string{DefaultFormat},
		},
		Log: Log{Level: DefaultLogLevel},
	}
}

// SetDefaults fills settings that cannot be left empty.
func (c *Config) SetDefaults() {
	if len(c.Render.Formats) == 0 {
		c.Render.Formats = []string{DefaultFormat}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks budgets, formats and the log level.
func (c *Config) Validate() error {
	if c.Render.MaxAttrItems < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.max_attr_items must be >= 0, got %d", c.Render.MaxAttrItems)
	}
	if c.Render.MaxAttrChars < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.max_attr_chars must be >= 0, got %d", c.Render.MaxAttrChars)
	}
	for _, f := range c.Render.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// ValidateFormat reports whether f is one of [Formats]. "jpeg" is accepted
// as an alias for "jpg".
func ValidateFormat(f string) error {
	if f == "jpeg" || slices.Contains(Formats, f) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of %s)", f, strings.Join(Formats, ", "))
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "log.level %q", c.Log.Level)
	}
	return level, nil
}

// DotOptions converts the render settings to renderer options.
func (r Render) DotOptions() dot.Options {
	return dot.Options{
		ShowValues:      r.ShowValues,
		ShowEdgeIndices: r.EdgeIndices,
		LeftToRight:     r.LeftToRight,
		ShowAttrs:       r.ShowAttrs,
		MaxAttrItems:    r.MaxAttrItems,
		MaxAttrChars:    r.MaxAttrChars,
	}
}

// Parse decodes TOML on top of [Default] and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Resolve loads the explicit path if given. Otherwise it loads the file at
// [DefaultPath], falling back to [Default] when that file does not exist.
// It returns the path actually read, or "" when defaults were used.
func Resolve(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), "", nil
	}
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// DefaultPath returns the XDG config file location
// ($XDG_CONFIG_HOME/tcgraph/config.toml or ~/.config/tcgraph/config.toml).
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}
