// Package shortcut creates launcher entries for installed packages: .lnk files in the
// Windows Start Menu and on the Desktop, .desktop entries on Linux and Desktop links on macOS.
package shortcut

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ravendevteam/toolbox/internal/platform"
	"github.com/ravendevteam/toolbox/internal/resolver"
	"github.com/ravendevteam/toolbox/internal/symlink"
)

// Options configures where shortcuts are written
type Options struct {
	OS       platform.OS
	HomeDir  string
	AppData  string // Windows roaming profile, %APPDATA%
	DataHome string // XDG data home on Linux

	// Dir replaces every default location when set
	Dir string
}

// Manager writes and removes shortcuts for one platform
type Manager struct {
	opts   Options
	linker *symlink.Linker
	logger *slog.Logger
}

// New creates a manager
func New(opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{opts: opts, linker: symlink.New(), logger: logger}
}

// Locations returns the directories receiving shortcuts
func (m *Manager) Locations() []string {
	if m.opts.Dir != "" {
		return []string{m.opts.Dir}
	}

	desktop := filepath.Join(m.opts.HomeDir, "Desktop")
	switch m.opts.OS {
	case platform.Windows:
		appData := m.opts.AppData
		if appData == "" {
			appData = filepath.Join(m.opts.HomeDir, "AppData", "Roaming")
		}
		return []string{filepath.Join(appData, "Microsoft", "Windows", "Start Menu"), desktop}
	case platform.Linux:
		dataHome := m.opts.DataHome
		if dataHome == "" {
			dataHome = filepath.Join(m.opts.HomeDir, ".local", "share")
		}
		locs := []string{filepath.Join(dataHome, "applications")}
		if info, err := os.Stat(desktop); err == nil && info.IsDir() {
			locs = append(locs, desktop)
		}
		return locs
	case platform.MacOS:
		return []string{desktop}
	default:
		return nil
	}
}

// FileName returns the shortcut file name for pkg on this platform
func (m *Manager) FileName(r *resolver.Resolved) string {
	switch m.opts.OS {
	case platform.Windows:
		return r.Name() + ".lnk"
	case platform.Linux:
		return strings.ToLower(r.Name()) + ".desktop"
	default:
		return r.Name()
	}
}

// Create writes a shortcut in every location
func (m *Manager) Create(r *resolver.Resolved) error {
	target := LaunchTarget(r)
	name := m.FileName(r)

	for _, dir := range m.Locations() {
		path := filepath.Join(dir, name)
		if err := m.write(path, target, r); err != nil {
			return fmt.Errorf("create shortcut %s: %w", path, err)
		}
		m.logger.Debug("shortcut created", "path", path, "target", target)
	}
	return nil
}

// Remove deletes shortcuts created for r. Missing shortcuts are ignored.
func (m *Manager) Remove(r *resolver.Resolved) error {
	name := m.FileName(r)

	for _, dir := range m.Locations() {
		path := filepath.Join(dir, name)

		var err error
		if m.opts.OS == platform.MacOS {
			err = m.linker.Unlink(path, r.InstallDir)
		} else {
			err = os.Remove(path)
			if os.IsNotExist(err) {
				err = nil
			}
		}
		if err != nil {
			return fmt.Errorf("remove shortcut %s: %w", path, err)
		}
		m.logger.Debug("shortcut removed", "path", path)
	}
	return nil
}

func (m *Manager) write(path, target string, r *resolver.Resolved) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	switch m.opts.OS {
	case platform.Windows:
		return writeLnk(path, target, r.Package.Description)
	case platform.Linux:
		return writeDesktopEntry(path, target, r)
	case platform.MacOS:
		return m.linker.Link(path, target)
	default:
		return fmt.Errorf("shortcuts are not supported on %s", m.opts.OS)
	}
}

// LaunchTarget picks what a shortcut should open. Archives are searched for an
// executable named after the package; otherwise the install directory is used.
func LaunchTarget(r *resolver.Resolved) string {
	if !r.IsArchive() {
		return r.ArtifactPath
	}

	base := strings.ToLower(r.Name())
	for _, candidate := range []string{base + ".exe", base + ".app", base, r.Name() + ".app", r.Name()} {
		p := filepath.Join(r.InstallDir, candidate)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return r.InstallDir
}
