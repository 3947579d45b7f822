//go:build !windows

package pathenv

// DefaultStore returns the list-file store at listPath
func DefaultStore(listPath string) Store {
	return NewFileStore(listPath)
}

// Managed reports whether the default store needs shell integration to take effect
func Managed() bool {
	return true
}
