package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/pathenv"
)

var envShell string

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print shell code that adds installed CLI apps to PATH",
	Long: `Print a shell line that prepends the directories of installed command-line
packages to PATH.

On Windows the user PATH is updated directly and this command prints nothing
to evaluate.

Examples:
  eval "$(toolbox env)"                 # bash, zsh
  toolbox env --shell fish | source     # fish`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().StringVarP(&envShell, "shell", "s", "", "Shell dialect: sh, bash, zsh, fish (default: $SHELL)")
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	sh := pathenv.DetectShell()
	if envShell != "" {
		parsed, err := pathenv.ParseShell(envShell)
		if err != nil {
			return err
		}
		sh = parsed
	}

	if !pathenv.Managed() {
		fmt.Fprintln(cmd.ErrOrStderr(), "PATH is managed in the user environment; open a new terminal to pick up changes.")
		return nil
	}

	env, err := newEnv(cmd)
	if err != nil {
		return err
	}

	dirs, err := env.PathRegistrar().Entries()
	if err != nil {
		return fmt.Errorf("read PATH entries: %w", err)
	}
	env.Logger.Debug("rendering PATH snippet", "shell", sh, "entries", len(dirs))

	fmt.Fprint(env.Out, pathenv.Snippet(sh, dirs))
	return nil
}
