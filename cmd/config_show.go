package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}

		data, err := toml.Marshal(env.Config)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}

		fmt.Fprintf(env.Out, "# %s\n", env.Paths.ConfigPath())
		fmt.Fprintf(env.Out, "# data dir: %s\n", env.Paths.DataDir)
		fmt.Fprint(env.Out, string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
