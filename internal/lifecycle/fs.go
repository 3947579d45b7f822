package lifecycle

import (
	"os"
	"path/filepath"
)

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ensureDir creates dir and returns the topmost directory it had to create,
// or "" when dir already existed.
func ensureDir(dir string) (string, error) {
	dir = filepath.Clean(dir)

	created := ""
	for p := dir; ; {
		if _, err := os.Stat(p); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return "", err
		}
		created = p
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return created, nil
}

// replaceFile renames src over dst. A running executable on Windows cannot be
// overwritten, so it is moved aside first.
func replaceFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if _, statErr := os.Stat(dst); statErr != nil {
		return err
	}

	old := dst + ".old"
	os.Remove(old)
	if err := os.Rename(dst, old); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		os.Rename(old, dst)
		return err
	}
	return nil
}
