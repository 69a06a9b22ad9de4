package cli

import (
	"github.com/spf13/cobra"

	"github.com/tcgraph/tcgraph/pkg/observability"
	"github.com/tcgraph/tcgraph/pkg/render/text"
)

func (c *CLI) printCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print [model.onnx]",
		Short: "Print every node of a model, one per line",
		Long: `Print every node of a model in load order.

Values print as "name [role]" (with the payload size for initializers) and
operations as "name = Kind(inputs) -> outputs", with "_" for absent inputs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return text.Write(c.out, m.graph, observability.NewLogHooks(loggerFromContext(cmd.Context())))
		},
	}
}
