package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/app"
	terrors "github.com/ravendevteam/toolbox/internal/errors"
	"github.com/ravendevteam/toolbox/internal/ui"
)

var Version = "2.0.0"

var (
	verbose   bool
	assumeYes bool
)

// errReported is returned once a failure has been shown to the user
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "toolbox",
	Short: "Raven Toolbox package installer",
	Long: `toolbox installs, upgrades and removes applications listed in the
Raven package catalog. The catalog is refreshed automatically once a day.

Every download is checked against the SHA-256 digest published in the
catalog before anything is put in place.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
}

// newEnv builds the per-invocation environment around cmd's streams
func newEnv(cmd *cobra.Command) (*app.Env, error) {
	return app.New(app.Options{
		Version:   Version,
		Verbose:   verbose,
		AssumeYes: assumeYes,
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
		Err:       cmd.ErrOrStderr(),
	})
}

// report shows err in plain language. A declined confirmation is not a failure.
func report(cmd *cobra.Command, env *app.Env, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, terrors.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), terrors.Describe(err))
		return nil
	}

	if env != nil {
		env.Logger.Debug("command failed", "command", cmd.Name(), "error", err)
	}
	ui.Error(cmd.ErrOrStderr(), "%s", terrors.Describe(err))
	return errReported
}

// usage prints cmd's usage on stdout when the package argument is missing
func usage(cmd *cobra.Command) error {
	fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	return nil
}
