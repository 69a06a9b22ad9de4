package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/tcgraph/tcgraph/pkg/buildinfo"
	"github.com/tcgraph/tcgraph/pkg/config"
	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/graph"
	"github.com/tcgraph/tcgraph/pkg/loader"
	"github.com/tcgraph/tcgraph/pkg/observability"
	"github.com/tcgraph/tcgraph/pkg/onnx"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completion scripts.
const appName = "tcgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	errOut     io.Writer
	fs         afs.Service
	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger. Command output goes
// to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		errOut: w,
		fs:     afs.New(),
		cfg:    config.Default(),
	}
}

// SetOutput redirects command output (not logs) to w.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tcgraph turns ONNX models into inspectable graphs",
		Long: `tcgraph loads an ONNX model into a graph of values and operations and
prints, inspects, or renders it as Graphviz DOT, SVG, PNG, JPG, PDF or JSON.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tcgraph/config.toml)")

	for _, cmd := range []*cobra.Command{c.printCommand(), c.renderCommand(), c.inspectCommand(), c.browseCommand()} {
		cmd.ValidArgsFunction = completeModel
		root.AddCommand(cmd)
	}
	root.AddCommand(c.demoCommand(), c.completionCommand())

	return root
}

// setup loads the config file, applies the log level and attaches the logger
// to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	if path != "" {
		c.Logger.Debug("Loaded config", "path", path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Model Loading
// =============================================================================

// model is a decoded model together with the graph built from it.
type model struct {
	path        string
	size        int
	fingerprint uint64
	proto       *onnx.ModelProto
	graph       *graph.Graph
}

// loadModel reads, decodes and builds the model at location, tracing the
// loader passes at debug level. location is a local path or an afs URL.
func (c *CLI) loadModel(ctx context.Context, location string) (*model, error) {
	logger := loggerFromContext(ctx)
	sw := newStopwatch(logger)

	data, err := readSource(ctx, c.fs, location)
	if err != nil {
		return nil, err
	}
	sum, err := fingerprint(data)
	if err != nil {
		return nil, err
	}
	sw.lap("read", "bytes", len(data))

	proto, err := onnx.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", location)
	}
	sw.lap("decode", "opset", proto.Opset(), "ir", proto.IRVersion)

	g, err := loader.FromModel(proto, loader.WithHooks(observability.NewLogHooks(logger)))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", location)
	}
	sw.lap("build", "values", g.ValueCount(), "operations", g.OperationCount())

	sw.done("Loaded " + location)
	return &model{path: location, size: len(data), fingerprint: sum, proto: proto, graph: g}, nil
}
