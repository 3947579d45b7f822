// Package app assembles the per-invocation environment shared by every command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ravendevteam/toolbox/internal/archive"
	"github.com/ravendevteam/toolbox/internal/catalog"
	"github.com/ravendevteam/toolbox/internal/config"
	terrors "github.com/ravendevteam/toolbox/internal/errors"
	"github.com/ravendevteam/toolbox/internal/download"
	"github.com/ravendevteam/toolbox/internal/lifecycle"
	"github.com/ravendevteam/toolbox/internal/pathenv"
	"github.com/ravendevteam/toolbox/internal/platform"
	"github.com/ravendevteam/toolbox/internal/refresh"
	"github.com/ravendevteam/toolbox/internal/resolver"
	"github.com/ravendevteam/toolbox/internal/shortcut"
	"github.com/ravendevteam/toolbox/internal/ui"
)

// Options carries command-line state into New
type Options struct {
	Version   string
	Verbose   bool
	AssumeYes bool
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
}

// Env is everything a command needs, built once per invocation
type Env struct {
	Paths   *config.Paths
	Config  *config.Config
	OS      platform.OS
	Version string
	Logger  *slog.Logger
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Now     func() time.Time

	assumeYes bool
	client    *download.Client
	store     *catalog.Store
	refresher *refresh.Refresher
}

// New resolves paths, loads config.toml and wires the catalog components
func New(opts Options) (*Env, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	paths, err := config.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	cfg, err := config.Load(paths.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(opts.Err, cfg.LogLevel, opts.Verbose)

	env := &Env{
		Paths:     paths,
		Config:    cfg,
		OS:        platform.Current(),
		Version:   opts.Version,
		Logger:    logger,
		In:        opts.In,
		Out:       opts.Out,
		Err:       opts.Err,
		Now:       time.Now,
		assumeYes: opts.AssumeYes || cfg.AssumeYes,
		client:    download.New("toolbox/" + opts.Version),
	}
	env.wireCatalog()

	logger.Debug("environment ready",
		"os", env.OS,
		"data_dir", paths.DataDir,
		"toolbox_dir", paths.ToolboxDir,
		"config", paths.ConfigPath(),
	)
	return env, nil
}

func (e *Env) wireCatalog() {
	interval, _ := e.Config.Interval()

	e.store = catalog.NewStore(e.Paths.CatalogPath(), e.Paths.LastUpdatePath(), e.Logger)
	e.refresher = refresh.New(refresh.Options{
		Store:       e.store,
		Getter:      e.client,
		OverrideURL: e.Config.UpdateURL,
		DefaultURL:  config.DefaultUpdateURL,
		Interval:    interval,
		Version:     e.Version,
		Now:         func() time.Time { return e.Now() },
		Out:         e.Out,
		Logger:      e.Logger,
	})
}

// NewLogger creates the stderr text logger. verbose forces debug level.
func NewLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Store returns the local catalog store
func (e *Env) Store() *catalog.Store {
	return e.store
}

// Refresher returns the catalog refresher for this invocation
func (e *Env) Refresher() *refresh.Refresher {
	return e.refresher
}

// Catalog returns a usable catalog, refreshing it first when stale or broken.
// A failed refresh falls back to the cached copy.
func (e *Env) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	cat, refreshErr := e.refresher.Check(ctx)
	if cat != nil {
		if refreshErr != nil {
			e.Logger.Warn("catalog refresh failed, using cached catalog", "error", refreshErr)
			ui.Warn(e.Err, "Could not update the package catalog; using the cached copy.")
		}
		return cat, nil
	}

	_, loadErr := e.store.Load()
	return nil, errors.Join(loadErr, refreshErr)
}

// WithCatalog runs fn against the catalog. When fn fails because the catalog itself is
// wrong, the catalog is refreshed once and fn retried.
func (e *Env) WithCatalog(ctx context.Context, fn func(*catalog.Catalog) error) error {
	cat, err := e.Catalog(ctx)
	if err != nil {
		return err
	}

	err = fn(cat)
	if err == nil || !terrors.IsCatalogFailure(err) || e.refresher.Refreshed() {
		return err
	}

	e.Logger.Info("catalog failure, refreshing and retrying", "error", err)
	fresh, refreshErr := e.refresher.Refresh(ctx, cat)
	if refreshErr != nil {
		e.Logger.Warn("retry refresh failed", "error", refreshErr)
		return err
	}
	return fn(fresh)
}

// Update performs an explicit catalog refresh unless one already happened this run
func (e *Env) Update(ctx context.Context) (*catalog.Catalog, error) {
	if err := e.Paths.EnsureToolboxDir(); err != nil {
		return nil, fmt.Errorf("create %s: %w", e.Paths.ToolboxDir, err)
	}

	cat, err := e.refresher.Check(ctx)
	if err != nil {
		return nil, err
	}
	if e.refresher.Refreshed() {
		return cat, nil
	}
	return e.refresher.Refresh(ctx, cat)
}

// Layout returns the install layout, honoring the install_root override
func (e *Env) Layout() resolver.Layout {
	return resolver.Layout{
		OS:      e.OS,
		DataDir: e.Paths.DataDir,
		Root:    e.Config.Paths.InstallRoot,
	}
}

// Resolver returns a resolver for the running OS
func (e *Env) Resolver() *resolver.Resolver {
	return resolver.New(e.Layout())
}

// PathRegistrar returns the registrar for the platform PATH store
func (e *Env) PathRegistrar() *pathenv.Registrar {
	return pathenv.NewRegistrar(pathenv.DefaultStore(e.Paths.PathListPath()), e.Logger)
}

// Shortcuts returns the shortcut manager for the running OS
func (e *Env) Shortcuts() *shortcut.Manager {
	return shortcut.New(shortcut.Options{
		OS:       e.OS,
		HomeDir:  e.Paths.HomeDir,
		AppData:  os.Getenv("APPDATA"),
		DataHome: os.Getenv("XDG_DATA_HOME"),
		Dir:      e.Config.Paths.ShortcutDir,
	}, e.Logger)
}

// Prompter returns the Y/n prompt, honoring --yes and assume_yes
func (e *Env) Prompter() *ui.Prompter {
	return ui.NewPrompter(e.In, e.Out, e.assumeYes)
}

// Engine wires the lifecycle engine with the real collaborators
func (e *Env) Engine() *lifecycle.Engine {
	return lifecycle.New(lifecycle.Deps{
		Resolver:  e.Resolver(),
		Fetcher:   e.client,
		Confirmer: e.Prompter(),
		Shortcuts: e.Shortcuts(),
		Path:      e.PathRegistrar(),
		Extractor: archive.Extractor{},
		Progress:  ui.NewBar(e.Out),
		Out:       e.Out,
		Logger:    e.Logger,
	})
}
