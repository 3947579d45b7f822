//go:build !windows

package shortcut

import "errors"

func writeLnk(path, target, description string) error {
	return errors.New(".lnk shortcuts can only be written on Windows")
}
