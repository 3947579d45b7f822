package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/integrity"
)

var sha256Cmd = &cobra.Command{
	Use:   "sha256 <file>",
	Short: "Print the SHA-256 digest of a file",
	Long: `Print the lowercase hex SHA-256 digest of a file, in the form used by
the catalog's sha256 field.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return usage(cmd)
		}

		info, err := os.Stat(args[0])
		if err != nil || info.IsDir() {
			fmt.Fprintln(cmd.OutOrStdout(), "File does not exist")
			return nil
		}

		digest, err := integrity.Digest(args[0])
		if err != nil {
			return fmt.Errorf("hash %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), digest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sha256Cmd)
}
