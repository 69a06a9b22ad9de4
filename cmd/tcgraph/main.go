// Command tcgraph loads ONNX models into a graph and prints, inspects or
// renders it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tcgraph/tcgraph/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()

	code := cli.ExitCode(err)
	if code != 0 && code != cli.ExitInterrupted {
		cli.PrintError(os.Stderr, err)
	}
	os.Exit(code)
}
