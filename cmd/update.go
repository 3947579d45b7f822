package cmd

import (
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the package catalog",
	Long: `Download the package catalog from its update URL and replace the local copy.

The catalog's own updateurl is preferred, then update_url from config.toml,
then the built-in default. An invalid download never replaces a working catalog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		_, err = env.Update(cmd.Context())
		return report(cmd, env, err)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
