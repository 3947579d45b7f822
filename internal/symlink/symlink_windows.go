//go:build windows

package symlink

import (
	"os"
	"path/filepath"
)

// createLink may require Developer Mode or elevation on Windows
func createLink(linkPath, target string) error {
	if err := os.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return err
	}
	return os.Symlink(target, linkPath)
}

// replaceLink removes and recreates, since rename over a link is not atomic here
func replaceLink(linkPath, target string) error {
	if err := os.Remove(linkPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(target, linkPath)
}
