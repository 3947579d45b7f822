package lifecycle

import (
	"fmt"
	"io"
	"strings"

	"github.com/ravendevteam/toolbox/internal/catalog"
	"github.com/ravendevteam/toolbox/internal/platform"
)

// Describe writes the human-readable summary of pkg. URLs are shown for os when the
// catalog has one for it, and as the full per-OS listing otherwise.
func Describe(w io.Writer, pkg *catalog.Package, os platform.OS) {
	url, ok := pkg.URL.For(os)
	if !ok {
		url = pkg.URL.String()
	}

	oses := make([]string, len(pkg.OSList))
	for i, o := range pkg.OSList {
		oses[i] = string(o)
	}

	fmt.Fprintf(w, "Name: %s\n", pkg.Name)
	fmt.Fprintf(w, "Version: %s\n", pkg.Version)
	fmt.Fprintf(w, "URL: %s\n", url)
	fmt.Fprintf(w, "Description: %s\n", pkg.Description)
	fmt.Fprintf(w, "Will be added to path: %s\n", yesNo(pkg.RequirePath))
	// Historical label for the shortcut flag; catalogs and users already read it this way
	fmt.Fprintf(w, "Is a CLI app: %s\n", yesNo(pkg.Shortcut))
	fmt.Fprintf(w, "Available for: %s\n", strings.Join(oses, ", "))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
