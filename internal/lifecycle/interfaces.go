package lifecycle

import (
	"context"

	"github.com/ravendevteam/toolbox/internal/download"
	"github.com/ravendevteam/toolbox/internal/resolver"
)

// Fetcher downloads url to destPath
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string, progress download.ProgressFunc) error
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Shortcuts creates and removes launcher entries
type Shortcuts interface {
	Create(r *resolver.Resolved) error
	Remove(r *resolver.Resolved) error
}

// PathRegistrar edits the user's PATH. Both operations are idempotent.
type PathRegistrar interface {
	Add(dir string) error
	Remove(dir string) error
}

// Extractor unpacks an archive into destDir
type Extractor interface {
	Extract(archivePath, destDir string) error
}

// Progress renders transfer progress for one download at a time
type Progress interface {
	Start(label string) download.ProgressFunc
	Finish()
}
