package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/config"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default config.toml",
	Long: `Generate a default config.toml configuration file.

The config file controls:
  - The catalog URL used when the catalog does not name one
  - How often the catalog is refreshed
  - Whether confirmations are skipped
  - Where packages and shortcuts are placed

Example config.toml:

  update_url = "https://example.com/packages.json"
  refresh_interval = "24h0m0s"
  assume_yes = false
  log_level = "warn"

  [paths]
  install_root = "/opt/raven"`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config.toml")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}

	configPath := paths.ConfigPath()
	out := cmd.OutOrStdout()

	// Check if already exists
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		fmt.Fprintf(out, "Config already exists: %s\n", configPath)
		fmt.Fprintln(out, "Edit it directly or use --force to regenerate.")
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "Created: %s\n", configPath)
	return nil
}
