package cli

import (
	"github.com/spf13/cobra"

	"github.com/tcgraph/tcgraph/pkg/demo"
	"github.com/tcgraph/tcgraph/pkg/errors"
)

func (c *CLI) demoCommand() *cobra.Command {
	var (
		output string
		opset  int64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a small sample model",
		Long: `Write a sample model that exercises the core operators: a
Conv -> Relu -> Transpose branch and a MatMul -> Add -> Mul -> Gemm branch,
with float32 initializers from a fixed seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opset <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "opset must be positive, got %d", opset)
			}
			data := demo.Bytes(opset)
			if err := writeOutput(c.out, output, data); err != nil {
				return err
			}
			if output == stdoutPath {
				return nil
			}

			loggerFromContext(cmd.Context()).Debugf("Wrote demo model: %d bytes", len(data))
			printSuccess(c.out, "Demo model written (opset %d)", opset)
			printFile(c.out, output)
			printNextStep(c.out, "Render it", appName+" render "+output+" -f svg")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", demo.DefaultFile, `output file or "-" for stdout`)
	cmd.Flags().Int64Var(&opset, "opset", demo.DefaultOpset, "operator set version")

	return cmd
}
