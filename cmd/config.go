package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
	Long:  `Create and inspect config.toml, which lives next to the package catalog.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
