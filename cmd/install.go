package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/catalog"
	terrors "github.com/ravendevteam/toolbox/internal/errors"
	"github.com/ravendevteam/toolbox/internal/lifecycle"
	"github.com/ravendevteam/toolbox/internal/picker"
)

var installInteractive bool

var installCmd = &cobra.Command{
	Use:     "install <package>",
	Aliases: []string{"i"},
	Short:   "Download, verify and install a package",
	Long: `Install a package from the catalog.

The package summary is shown and confirmation requested before anything is
written. The download must match the catalog's SHA-256 digest; archives are
extracted into the package directory.

Examples:
  toolbox install ravenwriter
  toolbox install -i            # pick from the catalog
  toolbox install -y ravenwriter`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePackageNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPackageOp(cmd, args, packageOp{
			interactive: installInteractive,
			filter:      picker.NotInstalled,
			title:       "Select a package to install",
			run: func(e *lifecycle.Engine) opFunc {
				return e.Install
			},
		})
	},
}

func init() {
	installCmd.Flags().BoolVarP(&installInteractive, "interactive", "i", false, "Choose the package interactively")
	rootCmd.AddCommand(installCmd)
}

type opFunc func(ctx context.Context, cat *catalog.Catalog, name string) error

// packageOp describes one of install, upgrade or remove
type packageOp struct {
	interactive bool
	filter      picker.Filter
	title       string
	run         func(*lifecycle.Engine) opFunc
}

func runPackageOp(cmd *cobra.Command, args []string, op packageOp) error {
	if len(args) == 0 && !op.interactive {
		return usage(cmd)
	}

	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	engine := env.Engine()

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	// The pick survives the refresh-then-retry so the user is asked only once
	err = env.WithCatalog(cmd.Context(), func(cat *catalog.Catalog) error {
		if name == "" {
			items := picker.Items(cat, env.OS, func(pkg *catalog.Package) bool {
				ok, _ := engine.Installed(cat, pkg.Name)
				return ok
			}, op.filter)
			if len(items) == 0 {
				fmt.Fprintln(env.Out, "No packages found.")
				return nil
			}

			picked, err := picker.Run(op.title, items)
			if err != nil {
				return fmt.Errorf("picker: %w", err)
			}
			if picked == "" {
				return terrors.ErrCancelled
			}
			name = picked
		}
		return op.run(engine)(cmd.Context(), cat, name)
	})
	return report(cmd, env, err)
}
