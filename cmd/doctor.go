package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ravendevteam/toolbox/internal/app"
	"github.com/ravendevteam/toolbox/internal/pathenv"
	"github.com/ravendevteam/toolbox/internal/platform"
	"github.com/ravendevteam/toolbox/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common issues",
	Long: `Check the toolbox installation for common problems.

Checks:
- Does the toolbox data directory exist?
- Is the local catalog present and valid?
- When was the catalog last refreshed?
- Do the managed PATH entries still exist?

Nothing is downloaded or changed.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	out := env.Out

	ui.Header(out, "=== Toolbox Doctor ===")
	fmt.Fprintln(out)

	issues := 0

	// Check 1: data directory
	fmt.Fprint(out, "Checking data directory... ")
	if !env.Paths.ToolboxDirExists() {
		fmt.Fprintln(out, "FAIL")
		fmt.Fprintf(out, "  → %s does not exist\n", env.Paths.ToolboxDir)
		fmt.Fprintln(out, "  → Run 'toolbox update' to create it")
		issues++
	} else {
		fmt.Fprintf(out, "OK → %s\n", env.Paths.ToolboxDir)
	}

	// Check 2: catalog
	fmt.Fprint(out, "Checking package catalog... ")
	cat, err := env.Store().Load()
	if err != nil {
		fmt.Fprintln(out, "FAIL")
		fmt.Fprintf(out, "  → %v\n", err)
		fmt.Fprintln(out, "  → Run 'toolbox update' to fetch a fresh copy")
		issues++
	} else {
		fmt.Fprintf(out, "OK (%d packages)\n", len(cat.Packages))
	}

	// Check 3: refresh age
	fmt.Fprint(out, "Checking last refresh... ")
	checkRefreshAge(out, env)

	// Check 4: PATH entries
	fmt.Fprint(out, "Checking PATH entries... ")
	issues += checkPathEntries(out, env)

	fmt.Fprintln(out)
	printPlatform(cmd, out)

	fmt.Fprintln(out)
	if issues == 0 {
		ui.Success(out, "No issues found.")
	} else {
		ui.Warn(out, "Found %d issue(s).", issues)
	}

	return nil
}

func checkRefreshAge(out io.Writer, env *app.Env) {
	last, ok := env.Store().LastUpdate()
	if !ok {
		fmt.Fprintln(out, "WARN (never)")
		fmt.Fprintln(out, "  → The catalog will be refreshed on the next command")
		return
	}

	age := env.Now().Sub(last).Truncate(time.Second)
	interval, _ := env.Config.Interval()
	if age > interval {
		fmt.Fprintf(out, "WARN (%s ago)\n", age)
		fmt.Fprintln(out, "  → The catalog will be refreshed on the next command")
		return
	}
	fmt.Fprintf(out, "OK (%s ago)\n", age)
}

func checkPathEntries(out io.Writer, env *app.Env) int {
	entries, err := env.PathRegistrar().Entries()
	if err != nil {
		fmt.Fprintln(out, "FAIL")
		fmt.Fprintf(out, "  → Cannot read PATH store: %v\n", err)
		return 1
	}

	var missing []string
	if pathenv.Managed() {
		for _, dir := range entries {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				missing = append(missing, dir)
			}
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(out, "WARN (%d missing)\n", len(missing))
		for _, dir := range missing[:min(5, len(missing))] {
			fmt.Fprintf(out, "  → %s\n", dir)
		}
		if len(missing) > 5 {
			fmt.Fprintf(out, "  → ... and %d more\n", len(missing)-5)
		}
		return len(missing)
	}

	fmt.Fprintf(out, "OK (%d entries)\n", len(entries))
	return 0
}

func printPlatform(cmd *cobra.Command, out io.Writer) {
	info, err := platform.Detect(cmd.Context())
	if err != nil {
		fmt.Fprintf(out, "Platform: unknown (%v)\n", err)
		return
	}

	fmt.Fprintf(out, "Platform: %s/%s\n", info.OS, info.Arch)
	if info.Platform != "" {
		fmt.Fprintf(out, "Distribution: %s %s\n", info.Platform, info.Version)
	}
	if !info.OS.IsKnown() {
		fmt.Fprintln(out, "  → This operating system is not supported by the catalog")
	}
}
