// Package lifecycle installs, upgrades and removes packages.
//
// Every operation runs Resolve, Confirm, Stage, Verify, Finalize in that order: nothing on
// disk changes before the user agrees, and nothing is extracted, linked or put on PATH
// before the download matched its catalog digest.
package lifecycle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ravendevteam/toolbox/internal/catalog"
	terrors "github.com/ravendevteam/toolbox/internal/errors"
	"github.com/ravendevteam/toolbox/internal/integrity"
	"github.com/ravendevteam/toolbox/internal/resolver"
)

// Deps bundles the collaborators of an Engine. Shortcuts, Path, Extractor and
// Progress are optional.
type Deps struct {
	Resolver  *resolver.Resolver
	Fetcher   Fetcher
	Confirmer Confirmer
	Shortcuts Shortcuts
	Path      PathRegistrar
	Extractor Extractor
	Progress  Progress
	Out       io.Writer
	Logger    *slog.Logger
}

// Engine drives package state transitions
type Engine struct {
	resolver  *resolver.Resolver
	fetcher   Fetcher
	confirm   Confirmer
	shortcuts Shortcuts
	path      PathRegistrar
	extractor Extractor
	progress  Progress
	out       io.Writer
	logger    *slog.Logger
}

// New creates an engine
func New(d Deps) *Engine {
	e := &Engine{
		resolver:  d.Resolver,
		fetcher:   d.Fetcher,
		confirm:   d.Confirmer,
		shortcuts: d.Shortcuts,
		path:      d.Path,
		extractor: d.Extractor,
		progress:  d.Progress,
		out:       d.Out,
		logger:    d.Logger,
	}
	if e.out == nil {
		e.out = io.Discard
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

type mode struct {
	op        string
	prompt    string
	verb      string
	done      string
	shortcuts bool
}

var (
	installMode = mode{op: "install", prompt: "Okay to install? Y/n", verb: "Installing", done: "Installation complete", shortcuts: true}
	upgradeMode = mode{op: "upgrade", prompt: "Okay to upgrade? Y/n", verb: "Upgrading", done: "Upgrade complete"}
)

// Install downloads, verifies and sets up name
func (e *Engine) Install(ctx context.Context, cat *catalog.Catalog, name string) error {
	return e.deploy(ctx, cat, name, installMode)
}

// Upgrade replaces the installed files of name with the catalog version.
// Existing shortcuts are left as they are.
func (e *Engine) Upgrade(ctx context.Context, cat *catalog.Catalog, name string) error {
	return e.deploy(ctx, cat, name, upgradeMode)
}

func (e *Engine) deploy(ctx context.Context, cat *catalog.Catalog, name string, m mode) error {
	r, err := e.resolver.Resolve(cat, name)
	if err != nil {
		return err
	}

	Describe(e.out, r.Package, r.OS)

	if err := e.ask(r, m.op, m.prompt); err != nil {
		return err
	}

	fmt.Fprintf(e.out, "%s %s...\n", m.verb, r.Name())
	e.logger.Info("deploying package",
		"op", m.op,
		"package", r.Name(),
		"version", r.Package.Version,
		"url", r.URL,
		"install_dir", r.InstallDir,
	)

	// Stage
	created, err := ensureDir(r.InstallDir)
	if err != nil {
		return terrors.NewPackageError(r.Name(), m.op, err)
	}
	rollback := func() {
		if created == "" {
			return
		}
		if err := os.RemoveAll(created); err != nil {
			e.logger.Warn("cannot remove directory", "path", created, "error", err)
		}
	}

	staged := stagingPath(r)
	if err := e.fetch(ctx, r, staged); err != nil {
		os.Remove(staged)
		rollback()
		return terrors.NewPackageError(r.Name(), m.op, err)
	}

	// Verify
	if !integrity.Verify(staged, r.Sha256) {
		actual, _ := integrity.Digest(staged)
		e.logger.Warn("checksum mismatch", "package", r.Name(), "expected", r.Sha256, "actual", actual)
		os.Remove(staged)
		rollback()
		return terrors.NewPackageError(r.Name(), m.op, terrors.ErrChecksumMismatch)
	}

	// Finalize
	if err := e.finalize(r, staged); err != nil {
		os.Remove(staged)
		rollback()
		return terrors.NewPackageError(r.Name(), m.op, err)
	}

	if m.shortcuts && r.Package.Shortcut && e.shortcuts != nil {
		fmt.Fprintln(e.out, "Creating Shortcuts...")
		if err := e.shortcuts.Create(r); err != nil {
			return terrors.NewPackageError(r.Name(), m.op, err)
		}
	}

	if r.Package.RequirePath && e.path != nil {
		if err := e.path.Add(r.InstallDir); err != nil {
			return terrors.NewPackageError(r.Name(), m.op, fmt.Errorf("add to PATH: %w", err))
		}
	}

	fmt.Fprintln(e.out, m.done)
	return nil
}

func (e *Engine) fetch(ctx context.Context, r *resolver.Resolved, dest string) error {
	var progress func(written, total int64)
	if e.progress != nil {
		progress = e.progress.Start("Downloading")
		defer e.progress.Finish()
	}
	return e.fetcher.Fetch(ctx, r.URL, dest, progress)
}

// finalize moves a verified download into place, unpacking archives
func (e *Engine) finalize(r *resolver.Resolved, staged string) error {
	if r.IsArchive() {
		if e.extractor == nil {
			return fmt.Errorf("no extractor for %s archives", r.Extension)
		}
		if err := e.extractor.Extract(staged, r.InstallDir); err != nil {
			return fmt.Errorf("extract: %w", err)
		}
		return os.Remove(staged)
	}

	if err := replaceFile(staged, r.ArtifactPath); err != nil {
		return err
	}
	if runtime.GOOS != "windows" {
		return os.Chmod(r.ArtifactPath, 0755)
	}
	return nil
}

// Remove deletes the install directory of name and undoes its shortcuts and PATH entry
func (e *Engine) Remove(ctx context.Context, cat *catalog.Catalog, name string) error {
	pkg, ok := cat.Find(name)
	if !ok {
		return terrors.NewPackageError(name, "remove", terrors.ErrPackageNotFound)
	}
	if pkg.IsSelf() {
		return terrors.NewPackageError(pkg.Name, "remove", terrors.ErrProtectedPackage)
	}

	r, err := e.resolver.Bind(pkg)
	if err != nil {
		return err
	}

	if !dirExists(r.InstallDir) {
		return terrors.NewPackageError(r.Name(), "remove", terrors.ErrNotInstalled)
	}

	Describe(e.out, r.Package, r.OS)

	if err := e.ask(r, "remove", "Okay to remove? Y/n"); err != nil {
		return err
	}

	fmt.Fprintf(e.out, "Removing %s...\n", r.Name())
	e.logger.Info("removing package", "package", r.Name(), "install_dir", r.InstallDir)

	if err := os.RemoveAll(r.InstallDir); err != nil {
		return terrors.NewPackageError(r.Name(), "remove", err)
	}

	if r.Package.Shortcut && e.shortcuts != nil {
		fmt.Fprintln(e.out, "Removing Shortcuts...")
		if err := e.shortcuts.Remove(r); err != nil {
			return terrors.NewPackageError(r.Name(), "remove", err)
		}
	}

	// The entry may predate a catalog change to requirepath
	if e.path != nil {
		if err := e.path.Remove(r.InstallDir); err != nil {
			return terrors.NewPackageError(r.Name(), "remove", fmt.Errorf("remove from PATH: %w", err))
		}
	}

	fmt.Fprintln(e.out, "Removal complete")
	return nil
}

// Installed reports whether name has an install directory on disk
func (e *Engine) Installed(cat *catalog.Catalog, name string) (bool, error) {
	r, err := e.resolver.Resolve(cat, name)
	if err != nil {
		return false, err
	}
	return dirExists(r.InstallDir), nil
}

func (e *Engine) ask(r *resolver.Resolved, op, prompt string) error {
	if e.confirm == nil {
		return nil
	}
	ok, err := e.confirm.Confirm(prompt)
	if err != nil {
		return terrors.NewPackageError(r.Name(), op, err)
	}
	if !ok {
		return terrors.NewPackageError(r.Name(), op, terrors.ErrCancelled)
	}
	return nil
}

func stagingPath(r *resolver.Resolved) string {
	return filepath.Join(r.InstallDir, ".staged-"+filepath.Base(r.ArtifactPath))
}
