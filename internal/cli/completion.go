package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for inscribe.

Bash:
  $ source <(inscribe completion bash)

Zsh:
  $ inscribe completion zsh > "${fpath[1]}/_inscribe"

Fish:
  $ inscribe completion fish > ~/.config/fish/completions/inscribe.fish

PowerShell:
  PS> inscribe completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeStyles offers the built-in backgrounds and falls back to file
// names, since a style may be an image path.
func completeStyles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return render.Backgrounds(), cobra.ShellCompDirectiveDefault
}

// completeFormats completes comma-separated format lists.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	out := make([]string, len(errors.Formats))
	for i, f := range errors.Formats {
		out[i] = prefix + f
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
