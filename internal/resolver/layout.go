package resolver

import (
	"path/filepath"
	"strings"

	"github.com/ravendevteam/toolbox/internal/catalog"
	"github.com/ravendevteam/toolbox/internal/platform"
)

// Default macOS locations
const (
	MacAppDir = "/Applications"
	MacBinDir = "/usr/local/bin"
)

// Layout decides where each package is installed
type Layout struct {
	OS platform.OS

	// DataDir is the vendor data directory (%APPDATA%\ravensoftware, ~/.local/share/ravensoftware)
	DataDir string

	// Root replaces every OS default when set
	Root string
}

// InstallDir returns the dedicated directory owned by pkg
func (l Layout) InstallDir(pkg *catalog.Package) string {
	name := strings.ToLower(pkg.Name)

	if l.Root != "" {
		return filepath.Join(l.Root, name)
	}

	switch l.OS {
	case platform.MacOS:
		if pkg.RequirePath {
			return filepath.Join(MacBinDir, name)
		}
		return filepath.Join(MacAppDir, name)
	default:
		return filepath.Join(l.DataDir, name)
	}
}
