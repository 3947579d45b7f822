package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/lifecycle"
	"github.com/ravendevteam/toolbox/internal/picker"
)

var removeInteractive bool

var removeCmd = &cobra.Command{
	Use:     "remove <package>",
	Aliases: []string{"uninstall", "rm"},
	Short:   "Remove an installed package",
	Long: `Remove a package's directory, its shortcuts and its PATH entry.

toolbox itself cannot be removed this way.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePackageNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPackageOp(cmd, args, packageOp{
			interactive: removeInteractive,
			filter:      picker.Removable,
			title:       "Select a package to remove",
			run: func(e *lifecycle.Engine) opFunc {
				return e.Remove
			},
		})
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeInteractive, "interactive", "i", false, "Choose the package interactively")
	rootCmd.AddCommand(removeCmd)
}
