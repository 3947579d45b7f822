package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrCatalogNotFound  = errors.New("package catalog not found")
	ErrCatalogParse     = errors.New("package catalog is invalid")
	ErrPackageNotFound  = errors.New("package not found")
	ErrUnsupportedOS    = errors.New("package is not available for this operating system")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrDownloadFailed   = errors.New("download failed")
	ErrNotInstalled     = errors.New("package is not installed")
	ErrProtectedPackage = errors.New("package is protected and cannot be removed")
	ErrCancelled        = errors.New("cancelled")
)

// PackageError wraps errors with package context
type PackageError struct {
	Package string
	Op      string
	Err     error
}

func (e *PackageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}

// NewPackageError creates a new package error
func NewPackageError(pkg, op string, err error) *PackageError {
	return &PackageError{Package: pkg, Op: op, Err: err}
}

// CatalogError wraps errors with catalog file context
type CatalogError struct {
	Path string
	Op   string
	Err  error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s catalog %s: %v", e.Op, e.Path, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new catalog error
func NewCatalogError(path, op string, err error) *CatalogError {
	return &CatalogError{Path: path, Op: op, Err: err}
}

// PathError wraps errors with path context
type PathError struct {
	Path string
	Op   string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a new path error
func NewPathError(path, op string, err error) *PathError {
	return &PathError{Path: path, Op: op, Err: err}
}

// IsCatalogFailure reports whether err means the local catalog is missing or unusable.
// These are the failures that warrant a refresh-then-retry.
func IsCatalogFailure(err error) bool {
	return errors.Is(err, ErrCatalogNotFound) || errors.Is(err, ErrCatalogParse)
}

// Describe returns the plain-language message shown to the user for err.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrCancelled):
		return "Cancelling..."
	case errors.Is(err, ErrPackageNotFound):
		return "Package not found"
	case errors.Is(err, ErrUnsupportedOS):
		return "This package isn't available for your OS"
	case errors.Is(err, ErrChecksumMismatch):
		return "Checksum mismatch: the downloaded file was removed"
	case errors.Is(err, ErrDownloadFailed):
		return "Error downloading the file. Please check your internet connection."
	case errors.Is(err, ErrNotInstalled):
		return "Package is not installed"
	case errors.Is(err, ErrProtectedPackage):
		return "Toolbox cannot remove itself"
	case errors.Is(err, ErrCatalogNotFound):
		return "No package catalog is available. Run 'toolbox update' when you are online."
	case errors.Is(err, ErrCatalogParse):
		return "The package catalog is invalid and could not be repaired by updating."
	default:
		return err.Error()
	}
}
