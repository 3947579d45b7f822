// Package refresh keeps the local catalog current. It decides when the catalog is stale,
// picks the source to fetch from, and replaces the local copy after validation.
package refresh

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ravendevteam/toolbox/internal/catalog"
)

// DefaultInterval is how old the catalog may get before an automatic refresh
const DefaultInterval = 86400 * time.Second

// updateURLPattern accepts the update URLs a catalog may declare for itself
var updateURLPattern = regexp.MustCompile(`(?i)^(https?|ftp)://[\w.-]+(\.[\w.-]+)+[\w\-.,@?^=%&:/~+#]*$`)

// ValidUpdateURL reports whether s is usable as a catalog source
func ValidUpdateURL(s string) bool {
	return updateURLPattern.MatchString(s)
}

// State is what is known about the local catalog before deciding to refresh
type State struct {
	LastUpdate time.Time
	HasState   bool             // a readable lastupdate file exists
	Catalog    *catalog.Catalog // nil when absent or unusable
}

// NeedsRefresh reports whether the local catalog must be fetched again: no refresh
// state, no usable catalog, a catalog without updateurl, or one older than interval.
func NeedsRefresh(now time.Time, s State, interval time.Duration) bool {
	if interval <= 0 {
		interval = DefaultInterval
	}
	switch {
	case !s.HasState:
		return true
	case s.Catalog == nil:
		return true
	case !s.Catalog.HasUpdateURL():
		return true
	default:
		return now.Sub(s.LastUpdate) > interval
	}
}

// Getter downloads a small document
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Options configures a Refresher
type Options struct {
	Store       *catalog.Store
	Getter      Getter
	OverrideURL string // config update_url
	DefaultURL  string
	Interval    time.Duration
	Version     string // running toolbox version
	Now         func() time.Time
	Out         io.Writer
	Logger      *slog.Logger
}

// Refresher fetches the catalog at most once per invocation
type Refresher struct {
	opts      Options
	refreshed bool
}

// New creates a refresher
func New(opts Options) *Refresher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Refresher{opts: opts}
}

// Refreshed reports whether this refresher already fetched the catalog
func (r *Refresher) Refreshed() bool {
	return r.refreshed
}

// State reads the refresh state and tries to load the local catalog
func (r *Refresher) State() State {
	var s State
	s.LastUpdate, s.HasState = r.opts.Store.LastUpdate()

	cat, err := r.opts.Store.Load()
	if err != nil {
		r.opts.Logger.Debug("local catalog unusable", "error", err)
	} else {
		s.Catalog = cat
	}
	return s
}

// Check refreshes when the local catalog is stale. It returns the catalog to use,
// which may be the cached one when the refresh failed, and the refresh error if any.
func (r *Refresher) Check(ctx context.Context) (*catalog.Catalog, error) {
	s := r.State()
	if !NeedsRefresh(r.opts.Now(), s, r.opts.Interval) {
		r.opts.Logger.Debug("catalog is fresh", "last_update", s.LastUpdate)
		return s.Catalog, nil
	}

	fmt.Fprintln(r.opts.Out, "Automatically updating Raven Toolbox")
	cat, err := r.Refresh(ctx, s.Catalog)
	if err != nil {
		return s.Catalog, err
	}
	return cat, nil
}

// Refresh fetches the catalog from the best available source, validates it and swaps it
// in. cached is the current local catalog, or nil.
func (r *Refresher) Refresh(ctx context.Context, cached *catalog.Catalog) (*catalog.Catalog, error) {
	url := r.SourceURL(cached)
	r.opts.Logger.Info("refreshing catalog", "url", url)

	data, err := r.opts.Getter.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	cat, err := r.opts.Store.Replace(data, catalog.FormatFor(url))
	if err != nil {
		return nil, fmt.Errorf("catalog from %s rejected: %w", url, err)
	}

	if err := r.opts.Store.MarkUpdated(r.opts.Now()); err != nil {
		return nil, err
	}
	r.refreshed = true

	fmt.Fprintln(r.opts.Out, "Update complete")
	r.advise(cat)
	return cat, nil
}

// SourceURL picks the catalog's own updateurl when valid, then the configured override,
// then the built-in default.
func (r *Refresher) SourceURL(cached *catalog.Catalog) string {
	if cached != nil && ValidUpdateURL(strings.TrimSpace(cached.UpdateURL)) {
		return strings.TrimSpace(cached.UpdateURL)
	}
	if r.opts.OverrideURL != "" {
		return r.opts.OverrideURL
	}
	fmt.Fprintln(r.opts.Out, "Using default update URL")
	return r.opts.DefaultURL
}

// advise warns when the catalog lists a toolbox version other than the running one
func (r *Refresher) advise(cat *catalog.Catalog) {
	msg, ok := Advisory(cat, r.opts.Version)
	if ok {
		fmt.Fprintln(r.opts.Out, msg)
	}
}

// Advisory returns the outdated-version notice for running, if one applies
func Advisory(cat *catalog.Catalog, running string) (string, bool) {
	self, ok := cat.Self()
	if !ok || running == "" || self.Version == "" {
		return "", false
	}
	if strings.TrimPrefix(self.Version, "v") == strings.TrimPrefix(running, "v") {
		return "", false
	}
	return fmt.Sprintf("Toolbox %s is available (running %s). Run 'toolbox upgrade toolbox' to update.",
		self.Version, running), true
}
