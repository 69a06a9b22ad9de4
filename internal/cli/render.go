package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tcgraph/tcgraph/pkg/config"
	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/graph"
	"github.com/tcgraph/tcgraph/pkg/observability"
	"github.com/tcgraph/tcgraph/pkg/render"
	"github.com/tcgraph/tcgraph/pkg/render/dot"
	"github.com/tcgraph/tcgraph/pkg/render/text"
)

// stdoutPath makes -o write to standard output.
const stdoutPath = "-"

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output      string
	formats     string
	hideValues  bool
	edgeIndices bool
	leftToRight bool
	noAttrs     bool
	maxItems    int
	maxChars    int
}

// renderOpts is the resolved render request after config and flags merge.
type renderOpts struct {
	output  string
	formats []string
	dot     dot.Options
}

func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	defaults := dot.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "render [model.onnx]",
		Short: "Render a model graph to DOT, images, text or JSON",
		Long: `Render a model graph.

Formats: dot (default), text, json, yaml, svg, png, jpg, pdf. Several formats may be
given comma-separated; each is written next to the model (or next to -o) with
its own extension. With a single format, -o names the file and "-o -" writes
to stdout. PDF output requires rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolveRenderOpts(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", `output file (single format), base path (multiple) or "-" for stdout`)
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): "+strings.Join(config.Formats, ", ")+" (comma-separated)")
	cmd.Flags().BoolVar(&flags.hideValues, "hide-values", !defaults.ShowValues, "draw only operation boxes")
	cmd.Flags().BoolVar(&flags.edgeIndices, "edge-indices", defaults.ShowEdgeIndices, "label edges with input/output slots")
	cmd.Flags().BoolVar(&flags.leftToRight, "lr", defaults.LeftToRight, "lay the graph out left to right")
	cmd.Flags().BoolVar(&flags.noAttrs, "no-attrs", !defaults.ShowAttrs, "omit attributes from operation labels")
	cmd.Flags().IntVar(&flags.maxItems, "max-attr-items", defaults.MaxAttrItems, "max attribute lines and list elements per operation (0 = unlimited)")
	cmd.Flags().IntVar(&flags.maxChars, "max-attr-chars", defaults.MaxAttrChars, "max attribute characters per operation (0 = unlimited)")

	return cmd
}

// resolveRenderOpts starts from the config file and applies the flags the
// user set explicitly.
func (c *CLI) resolveRenderOpts(cmd *cobra.Command, flags *renderFlags) (renderOpts, error) {
	opts := renderOpts{
		output:  flags.output,
		formats: c.cfg.Render.Formats,
		dot:     c.cfg.Render.DotOptions(),
	}

	set := cmd.Flags().Changed
	if set("format") {
		opts.formats = parseFormats(flags.formats)
	}
	if set("hide-values") {
		opts.dot.ShowValues = !flags.hideValues
	}
	if set("edge-indices") {
		opts.dot.ShowEdgeIndices = flags.edgeIndices
	}
	if set("lr") {
		opts.dot.LeftToRight = flags.leftToRight
	}
	if set("no-attrs") {
		opts.dot.ShowAttrs = !flags.noAttrs
	}
	if set("max-attr-items") {
		opts.dot.MaxAttrItems = flags.maxItems
	}
	if set("max-attr-chars") {
		opts.dot.MaxAttrChars = flags.maxChars
	}

	if err := opts.dot.Validate(); err != nil {
		return opts, err
	}
	if err := validateFormats(opts.formats); err != nil {
		return opts, err
	}
	if len(opts.formats) > 1 && opts.output == stdoutPath {
		return opts, errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.formats))
	}
	return opts, nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["dot"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{config.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

func validateFormats(formats []string) error {
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	for _, f := range formats {
		if err := config.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// extension maps a format to its file extension.
func extension(format string) string {
	switch format {
	case config.FormatText:
		return "txt"
	case "jpeg":
		return config.FormatJPG
	}
	return format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; URL inputs land in
// the working directory under their base name.
// If output has a format extension (.svg, .dot, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if strings.Contains(input, "://") {
			input = filepath.Base(input)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if ext == ".txt" || config.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath picks where one format goes.
func outputPath(opts renderOpts, input, format string) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + extension(format)
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	m, err := c.loadModel(ctx, input)
	if err != nil {
		return err
	}
	opts.dot.Hooks = observability.NewLogHooks(logger)
	if !opts.dot.ShowValues && opts.dot.ShowEdgeIndices {
		printWarning(c.errOut, "--edge-indices has no effect with --hide-values")
	}

	r := &renderer{graph: m.graph, opts: opts.dot, status: c.errOut}
	for _, format := range opts.formats {
		data, err := r.render(ctx, format)
		if err != nil {
			return errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		path := outputPath(opts, input, format)
		if err := writeOutput(c.out, path, data); err != nil {
			return err
		}
		if path != stdoutPath {
			logger.Debugf("Wrote %s: %d bytes", format, len(data))
			printFile(c.out, path)
		}
	}
	return nil
}

// renderer produces each format from one graph, computing the DOT source and
// SVG at most once.
type renderer struct {
	graph  *graph.Graph
	opts   dot.Options
	status io.Writer

	src string
	svg []byte
}

func (r *renderer) source() string {
	if r.src == "" {
		r.src = dot.Render(r.graph, r.opts)
	}
	return r.src
}

func (r *renderer) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case config.FormatDOT:
		return []byte(r.source()), nil
	case config.FormatText:
		var buf bytes.Buffer
		err := text.Write(&buf, r.graph, r.opts.Hooks)
		return buf.Bytes(), err
	case config.FormatJSON:
		return graph.MarshalJSON(r.graph)
	case config.FormatYAML:
		return graph.MarshalYAML(r.graph)
	case config.FormatSVG:
		return r.image(ctx, dot.FormatSVG)
	case config.FormatPNG, config.FormatJPG, "jpeg":
		f, err := dot.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		return r.image(ctx, f)
	case config.FormatPDF:
		svg, err := r.image(ctx, dot.FormatSVG)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}

func (r *renderer) image(ctx context.Context, format dot.Format) ([]byte, error) {
	if format == dot.FormatSVG && r.svg != nil {
		return r.svg, nil
	}

	src := r.source()
	s := startSpinner(ctx, r.status, fmt.Sprintf("Laying out %s...", format))
	data, err := dot.Image(ctx, src, format)
	s.stop()
	if err != nil {
		if s.cancelled() {
			return nil, ctx.Err()
		}
		return nil, err
	}

	if format == dot.FormatSVG {
		r.svg = data
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", path)
	}
	return nil
}
