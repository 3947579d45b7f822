// Package pathenv registers package directories on the user's PATH.
//
// On Windows the user PATH in the registry is edited directly. Elsewhere the directories
// are kept in a managed list file that `toolbox env` turns into shell exports.
package pathenv

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// Store persists the ordered list of PATH entries being managed
type Store interface {
	Load() ([]string, error)
	Save(entries []string) error
}

// Registrar adds and removes directories idempotently
type Registrar struct {
	store    Store
	foldCase bool
	logger   *slog.Logger
}

// NewRegistrar creates a registrar over store. Entries compare case-insensitively on Windows.
func NewRegistrar(store Store, logger *slog.Logger) *Registrar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registrar{
		store:    store,
		foldCase: runtime.GOOS == "windows",
		logger:   logger,
	}
}

func (r *Registrar) same(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if r.foldCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (r *Registrar) index(entries []string, dir string) int {
	for i, e := range entries {
		if e != "" && r.same(e, dir) {
			return i
		}
	}
	return -1
}

// Contains reports whether dir is registered
func (r *Registrar) Contains(dir string) (bool, error) {
	entries, err := r.store.Load()
	if err != nil {
		return false, err
	}
	return r.index(entries, dir) >= 0, nil
}

// Add appends dir unless it is already present
func (r *Registrar) Add(dir string) error {
	entries, err := r.store.Load()
	if err != nil {
		return err
	}
	if r.index(entries, dir) >= 0 {
		r.logger.Debug("path entry already present", "dir", dir)
		return nil
	}

	r.logger.Debug("adding path entry", "dir", dir)
	return r.store.Save(append(entries, dir))
}

// Remove drops every occurrence of dir. Absent entries are not an error.
func (r *Registrar) Remove(dir string) error {
	entries, err := r.store.Load()
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(entries))
	for _, e := range entries {
		if e != "" && r.same(e, dir) {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == len(entries) {
		return nil
	}

	r.logger.Debug("removing path entry", "dir", dir)
	return r.store.Save(kept)
}

// Entries returns the registered directories
func (r *Registrar) Entries() ([]string, error) {
	return r.store.Load()
}
