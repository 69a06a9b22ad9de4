package cli

import "github.com/spf13/cobra"

// modelExtensions are offered when completing a model argument.
var modelExtensions = []string{"onnx", "pb"}

// completeModel completes the single model path argument of print, render,
// inspect and browse.
func completeModel(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return modelExtensions, cobra.ShellCompDirectiveFilterFileExt
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for tcgraph. Model arguments complete to
.onnx and .pb files.

  $ source <(tcgraph completion bash)
  $ tcgraph completion zsh > "${fpath[1]}/_tcgraph"
  $ tcgraph completion fish > ~/.config/fish/completions/tcgraph.fish
  PS> tcgraph completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.out, true)
			case "zsh":
				return root.GenZshCompletion(c.out)
			case "fish":
				return root.GenFishCompletion(c.out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(c.out)
			}
		},
	}
}
