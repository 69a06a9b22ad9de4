// Package cli implements the tcgraph command-line interface.
//
// # Commands
//
//   - print: list every node of a model, one per line
//   - render: write DOT, text, JSON, YAML, SVG, PNG, JPG or PDF output
//   - inspect: show model metadata and role/kind summaries
//   - browse: explore nodes interactively in the terminal
//   - demo: write a small sample model
//   - completion: generate shell completion scripts
//
// Model arguments are local paths or storage URLs understood by viant/afs
// (file://, mem://, and any scheme registered with it).
//
// # Logging
//
// Logs go to stderr through charmbracelet/log. --verbose (-v) switches to
// debug level, which also traces each loader pass. Loggers are passed
// through context.Context.
//
// # Configuration
//
// Render defaults and the log level come from a TOML file; see package
// config. Flags given on the command line take precedence.
//
// # Exit codes
//
// See [ExitCode]: 1 for load and render failures, 2 for invalid flags or
// config, 3 for missing files, 130 on interrupt.
package cli
