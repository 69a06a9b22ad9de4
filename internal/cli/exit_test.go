package cli

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/tcgraph/tcgraph/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), ExitInterrupted},
		{"wrapped cancel", errors.Wrap(errors.ErrCodeInternal, context.Canceled, "render svg"), ExitInterrupted},
		{"missing model", errors.New(errors.ErrCodeFileNotFound, "model x not found"), ExitNotFound},
		{"bad format", errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", "gif"), ExitUsage},
		{"bad flag value", errors.New(errors.ErrCodeInvalidInput, "negative budget"), ExitUsage},
		{"decode", errors.Wrap(errors.ErrCodeDecodeFailure, io.ErrUnexpectedEOF, "m.onnx"), ExitFailure},
		{"plain", fmt.Errorf("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFromCommands(t *testing.T) {
	model := writeDemo(t)
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"ok", []string{"print", model}, ExitOK},
		{"missing", []string{"print", model + ".missing"}, ExitNotFound},
		{"format", []string{"render", model, "-f", "gif", "-o", "-"}, ExitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if got := ExitCode(err); got != tt.want {
				t.Errorf("ExitCode = %d (err %v), want %d", got, err, tt.want)
			}
		})
	}
}
