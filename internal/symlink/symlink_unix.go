//go:build !windows

package symlink

import (
	"os"
	"path/filepath"
)

// createLink uses absolute targets so links survive being copied elsewhere
func createLink(linkPath, target string) error {
	if err := os.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return err
	}
	return os.Symlink(target, linkPath)
}

// replaceLink swaps the link via rename, which is atomic on POSIX systems
func replaceLink(linkPath, target string) error {
	tmpLink := linkPath + ".tmp"
	os.Remove(tmpLink)

	if err := os.Symlink(target, tmpLink); err != nil {
		return err
	}
	if err := os.Rename(tmpLink, linkPath); err != nil {
		os.Remove(tmpLink)
		return err
	}
	return nil
}
