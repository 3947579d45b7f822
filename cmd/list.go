package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/catalog"
	"github.com/ravendevteam/toolbox/internal/lifecycle"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every package in the catalog",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}

		err = env.WithCatalog(cmd.Context(), func(cat *catalog.Catalog) error {
			if len(cat.Packages) == 0 {
				fmt.Fprintln(env.Out, "No packages found.")
				return nil
			}
			for i := range cat.Packages {
				lifecycle.Describe(env.Out, &cat.Packages[i], env.OS)
				fmt.Fprintln(env.Out)
			}
			return nil
		})
		return report(cmd, env, err)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
