// Package symlink manages launcher links that point into package install directories.
package symlink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Linker creates and removes launcher symlinks
type Linker struct{}

// New creates a linker
func New() *Linker {
	return &Linker{}
}

// Status describes what currently occupies a link location
type Status struct {
	Path      string
	Target    string
	Exists    bool
	IsSymlink bool
	IsBroken  bool
}

// Link points linkPath at target, replacing a previous link at the same location.
// A regular file or directory at linkPath is never overwritten.
func (l *Linker) Link(linkPath, target string) error {
	st, err := l.Stat(linkPath)
	if err != nil {
		return err
	}

	switch {
	case !st.Exists:
		return createLink(linkPath, target)
	case !st.IsSymlink:
		return &os.PathError{Op: "link", Path: linkPath, Err: os.ErrExist}
	case samePath(st.Target, target):
		return nil
	default:
		return replaceLink(linkPath, target)
	}
}

// Unlink removes linkPath when it is a symlink into dir. Missing links are ignored.
func (l *Linker) Unlink(linkPath, dir string) error {
	st, err := l.Stat(linkPath)
	if err != nil {
		return err
	}
	if !st.Exists {
		return nil
	}
	if !st.IsSymlink {
		return &os.PathError{Op: "unlink", Path: linkPath, Err: os.ErrInvalid}
	}
	if !within(st.Target, dir) {
		return fmt.Errorf("unlink %s: points to %s, not into %s", linkPath, st.Target, dir)
	}
	return os.Remove(linkPath)
}

// Stat inspects path without following it
func (l *Linker) Stat(path string) (*Status, error) {
	st := &Status{Path: path}

	linfo, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}

	st.Exists = true
	st.IsSymlink = linfo.Mode()&os.ModeSymlink != 0
	if !st.IsSymlink {
		return st, nil
	}

	target, err := os.Readlink(path)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	st.Target = target

	if _, err := os.Stat(path); os.IsNotExist(err) {
		st.IsBroken = true
	}
	return st, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func within(target, dir string) bool {
	absT, errT := filepath.Abs(target)
	absD, errD := filepath.Abs(dir)
	if errT != nil || errD != nil {
		return false
	}
	rel, err := filepath.Rel(absD, absT)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
