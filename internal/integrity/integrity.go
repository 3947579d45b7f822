// Package integrity computes and checks SHA-256 digests of downloaded artifacts.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Digest returns the lowercase hex SHA-256 of the file at path
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return DigestReader(f)
}

// DigestReader returns the lowercase hex SHA-256 of everything read from r
func DigestReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify reports whether the file at path hashes to expected.
// Comparison ignores case and surrounding whitespace. Unreadable files never verify.
func Verify(path, expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return false
	}

	actual, err := Digest(path)
	if err != nil {
		return false
	}
	return strings.EqualFold(actual, expected)
}
