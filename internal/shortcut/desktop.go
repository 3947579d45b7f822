package shortcut

import (
	"fmt"
	"os"
	"strings"

	"github.com/ravendevteam/toolbox/internal/resolver"
)

// writeDesktopEntry writes a freedesktop.org launcher
func writeDesktopEntry(path, target string, r *resolver.Resolved) error {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", escapeValue(r.Name()))
	if r.Package.Description != "" {
		fmt.Fprintf(&b, "Comment=%s\n", escapeValue(r.Package.Description))
	}
	fmt.Fprintf(&b, "Exec=%s\n", quoteExec(target))
	fmt.Fprintf(&b, "Path=%s\n", escapeValue(r.InstallDir))
	fmt.Fprintf(&b, "Terminal=%t\n", r.Package.RequirePath)
	fmt.Fprintf(&b, "X-Toolbox-Version=%s\n", escapeValue(r.Package.Version))

	return os.WriteFile(path, []byte(b.String()), 0755)
}

func escapeValue(s string) string {
	r := strings.NewReplacer("\\", `\\`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return r.Replace(s)
}

// quoteExec quotes an Exec argument using freedesktop desktop entry rules
func quoteExec(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`)
	return escapeValue(`"` + r.Replace(s) + `"`)
}
