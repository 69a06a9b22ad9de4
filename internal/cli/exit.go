package cli

import (
	"context"
	stderrors "errors"

	"github.com/tcgraph/tcgraph/pkg/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1   // model could not be decoded, loaded or rendered
	ExitUsage       = 2   // bad flags, formats or config
	ExitNotFound    = 3   // model or config file missing
	ExitInterrupted = 130 // SIGINT or SIGTERM
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, errors.ErrCodeFileNotFound):
		return ExitNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput), errors.Is(err, errors.ErrCodeInvalidFormat):
		return ExitUsage
	}
	return ExitFailure
}
