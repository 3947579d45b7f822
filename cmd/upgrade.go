package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/lifecycle"
	"github.com/ravendevteam/toolbox/internal/picker"
)

var upgradeInteractive bool

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <package>",
	Short: "Replace a package with the catalog version",
	Long: `Upgrade a package to the version listed in the catalog.

The previous files stay in place until the new download has been verified.
Shortcuts created at install time are left untouched.

Examples:
  toolbox upgrade ravenwriter
  toolbox upgrade toolbox
  toolbox upgrade -i`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePackageNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPackageOp(cmd, args, packageOp{
			interactive: upgradeInteractive,
			filter:      picker.InstalledOnly,
			title:       "Select a package to upgrade",
			run: func(e *lifecycle.Engine) opFunc {
				return e.Upgrade
			},
		})
	},
}

func init() {
	upgradeCmd.Flags().BoolVarP(&upgradeInteractive, "interactive", "i", false, "Choose the package interactively")
	rootCmd.AddCommand(upgradeCmd)
}
