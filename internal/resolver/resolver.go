// Package resolver finds a package in the catalog and projects it onto the running
// platform: the concrete download URL and digest, and where its files live on disk.
package resolver

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/ravendevteam/toolbox/internal/catalog"
	terrors "github.com/ravendevteam/toolbox/internal/errors"
	"github.com/ravendevteam/toolbox/internal/platform"
)

// Resolved is a package entry bound to one operating system
type Resolved struct {
	Package      *catalog.Package
	OS           platform.OS
	URL          string
	Sha256       string
	Extension    string // without the leading dot, "" when the URL has none
	InstallDir   string
	ArtifactPath string
}

// Name returns the catalog name of the package
func (r *Resolved) Name() string {
	return r.Package.Name
}

// IsArchive reports whether the artifact is extracted after download
func (r *Resolved) IsArchive() bool {
	switch r.Extension {
	case "zip", "tar.gz", "tgz":
		return true
	default:
		return false
	}
}

// Resolver maps catalog entries onto a Layout
type Resolver struct {
	layout Layout
}

// New creates a resolver for layout
func New(layout Layout) *Resolver {
	return &Resolver{layout: layout}
}

// Layout returns the directory layout in use
func (r *Resolver) Layout() Layout {
	return r.layout
}

// Resolve looks up name case-insensitively and binds it to the layout's OS
func (r *Resolver) Resolve(cat *catalog.Catalog, name string) (*Resolved, error) {
	pkg, ok := cat.Find(name)
	if !ok {
		return nil, terrors.NewPackageError(name, "resolve", terrors.ErrPackageNotFound)
	}
	return r.Bind(pkg)
}

// Bind projects an already located entry onto the layout's OS
func (r *Resolver) Bind(pkg *catalog.Package) (*Resolved, error) {
	os := r.layout.OS
	if !pkg.Supports(os) {
		return nil, terrors.NewPackageError(pkg.Name, "resolve", terrors.ErrUnsupportedOS)
	}

	rawURL, ok := pkg.URL.For(os)
	if !ok {
		return nil, terrors.NewPackageError(pkg.Name, "resolve",
			fmt.Errorf("%w: url has no entry for %s", terrors.ErrCatalogParse, os))
	}
	digest, ok := pkg.Sha256.For(os)
	if !ok {
		return nil, terrors.NewPackageError(pkg.Name, "resolve",
			fmt.Errorf("%w: sha256 has no entry for %s", terrors.ErrCatalogParse, os))
	}

	ext := Extension(rawURL)
	dir := r.layout.InstallDir(pkg)
	file := strings.ToLower(pkg.Name)
	if ext != "" {
		file += "." + ext
	}

	return &Resolved{
		Package:      pkg,
		OS:           os,
		URL:          rawURL,
		Sha256:       strings.ToLower(strings.TrimSpace(digest)),
		Extension:    ext,
		InstallDir:   dir,
		ArtifactPath: filepath.Join(dir, file),
	}, nil
}

// Extension returns the file extension of the URL path, lowercased and without the dot.
// Query strings and fragments are ignored; ".tar.gz" is kept whole.
func Extension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	base := strings.ToLower(path.Base(p))
	if strings.HasSuffix(base, ".tar.gz") && base != ".tar.gz" {
		return "tar.gz"
	}

	ext := path.Ext(base)
	if ext == "" || ext == base {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}
