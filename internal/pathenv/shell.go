package pathenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shell is a supported shell dialect for env output
type Shell string

const (
	ShellPOSIX Shell = "sh"
	ShellFish  Shell = "fish"
)

// ParseShell maps a shell name or path ("/usr/bin/fish") to a dialect
func ParseShell(s string) (Shell, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ShellPOSIX, nil
	}

	switch strings.ToLower(filepath.Base(s)) {
	case "sh", "bash", "zsh", "dash", "ksh":
		return ShellPOSIX, nil
	case "fish":
		return ShellFish, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s\nSupported shells: bash, zsh, sh, fish", s)
	}
}

// DetectShell reads $SHELL, falling back to POSIX syntax
func DetectShell() Shell {
	if sh, err := ParseShell(os.Getenv("SHELL")); err == nil {
		return sh
	}
	return ShellPOSIX
}

// Snippet renders a line that prepends dirs to PATH in the given shell
func Snippet(sh Shell, dirs []string) string {
	if len(dirs) == 0 {
		return ""
	}

	quoted := make([]string, len(dirs))
	for i, d := range dirs {
		quoted[i] = quote(d)
	}

	if sh == ShellFish {
		return fmt.Sprintf("set -gx PATH %s $PATH\n", strings.Join(quoted, " "))
	}
	return fmt.Sprintf("export PATH=%s:\"$PATH\"\n", strings.Join(quoted, ":"))
}

// quote wraps s in single quotes for both POSIX shells and fish
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
