package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestPackageError_Unwrap(t *testing.T) {
	err := NewPackageError("ravenwriter", "install", ErrChecksumMismatch)

	if !errors.Is(err, ErrChecksumMismatch) {
		t.Error("PackageError should unwrap to its cause")
	}
	if got := err.Error(); got != "install ravenwriter: checksum mismatch" {
		t.Errorf("Error() = %q", got)
	}

	var pe *PackageError
	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.As(wrapped, &pe) || pe.Package != "ravenwriter" {
		t.Error("errors.As should find the PackageError")
	}
}

func TestIsCatalogFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", NewCatalogError("/tmp/packages.json", "load", ErrCatalogNotFound), true},
		{"parse", NewCatalogError("/tmp/packages.json", "load", ErrCatalogParse), true},
		{"inside package error", NewPackageError("x", "resolve", fmt.Errorf("%w: url", ErrCatalogParse)), true},
		{"package not found", NewPackageError("x", "resolve", ErrPackageNotFound), false},
		{"download", ErrDownloadFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCatalogFailure(tt.err); got != tt.want {
				t.Errorf("IsCatalogFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	sentinels := []error{
		ErrCatalogNotFound,
		ErrCatalogParse,
		ErrPackageNotFound,
		ErrUnsupportedOS,
		ErrChecksumMismatch,
		ErrDownloadFailed,
		ErrNotInstalled,
		ErrProtectedPackage,
		ErrCancelled,
	}

	seen := make(map[string]error)
	for _, s := range sentinels {
		msg := Describe(NewPackageError("pkg", "op", s))
		if prev, ok := seen[msg]; ok {
			t.Errorf("%v and %v share message %q", prev, s, msg)
		}
		seen[msg] = s
	}

	if got := Describe(ErrCancelled); got != "Cancelling..." {
		t.Errorf("Describe(ErrCancelled) = %q", got)
	}

	other := errors.New("disk full")
	if got := Describe(NewPathError("/x", "write", other)); got != "write: /x: disk full" {
		t.Errorf("Describe(other) = %q", got)
	}
}
