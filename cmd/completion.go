package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for toolbox.

To load completions:

Bash:
  $ source <(toolbox completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ toolbox completion bash > /etc/bash_completion.d/toolbox
  # macOS:
  $ toolbox completion bash > $(brew --prefix)/etc/bash_completion.d/toolbox

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ toolbox completion zsh > "${fpath[1]}/_toolbox"

Fish:
  $ toolbox completion fish | source
  $ toolbox completion fish > ~/.config/fish/completions/toolbox.fish

PowerShell:
  PS> toolbox completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> toolbox completion powershell > toolbox.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
