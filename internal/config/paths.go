package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Vendor is the directory namespace shared by all Raven applications.
const Vendor = "ravensoftware"

// Paths holds all resolved paths for toolbox operations
type Paths struct {
	DataDir    string // vendor data directory, e.g. %APPDATA%\ravensoftware
	ToolboxDir string // <DataDir>/toolbox
	HomeDir    string
}

// ResolvePaths resolves all paths based on environment and defaults
func ResolvePaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Data directory (can be overridden)
	dataDir := os.Getenv("TOOLBOX_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir(runtime.GOOS, home)
	}

	return &Paths{
		DataDir:    dataDir,
		ToolboxDir: filepath.Join(dataDir, "toolbox"),
		HomeDir:    home,
	}, nil
}

func defaultDataDir(goos, home string) string {
	switch goos {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, Vendor)
		}
		return filepath.Join(home, "AppData", "Roaming", Vendor)
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", Vendor)
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, Vendor)
		}
		return filepath.Join(home, ".local", "share", Vendor)
	}
}

// CatalogPath returns the path to the local package catalog
func (p *Paths) CatalogPath() string {
	return filepath.Join(p.ToolboxDir, "packages.json")
}

// LastUpdatePath returns the path to the refresh timestamp file
func (p *Paths) LastUpdatePath() string {
	return filepath.Join(p.ToolboxDir, "lastupdate")
}

// ConfigPath returns the path to config.toml
func (p *Paths) ConfigPath() string {
	return filepath.Join(p.ToolboxDir, "config.toml")
}

// PathListPath returns the file holding directories registered on PATH (Unix)
func (p *Paths) PathListPath() string {
	return filepath.Join(p.ToolboxDir, "path")
}

// ToolboxDirExists checks if the toolbox directory exists
func (p *Paths) ToolboxDirExists() bool {
	info, err := os.Stat(p.ToolboxDir)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureToolboxDir creates the toolbox directory if needed
func (p *Paths) EnsureToolboxDir() error {
	return os.MkdirAll(p.ToolboxDir, 0755)
}
