//go:build windows

package pathenv

import (
	"errors"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const (
	envKey    = `Environment`
	pathValue = "Path"
)

// RegistryStore edits the current user's PATH in HKCU\Environment
type RegistryStore struct{}

// Load splits the user PATH on ';'
func (RegistryStore) Load() ([]string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, envKey, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	v, _, err := k.GetStringValue(pathValue)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return splitList(v), nil
}

// Save joins entries with ';' and keeps variable references unexpanded
func (RegistryStore) Save(entries []string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, envKey, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	return k.SetExpandStringValue(pathValue, strings.Join(entries, ";"))
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DefaultStore returns the registry-backed store. listPath is unused on Windows.
func DefaultStore(listPath string) Store {
	return RegistryStore{}
}

// Managed reports whether the default store needs shell integration to take effect
func Managed() bool {
	return false
}
