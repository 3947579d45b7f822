// Package platform maps the running operating system onto the identifiers used in the
// package catalog ("Windows", "macOS", "Linux") and collects host details for diagnostics.
package platform

import (
	"context"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// OS is a catalog operating system identifier.
type OS string

const (
	Windows OS = "Windows"
	MacOS   OS = "macOS"
	Linux   OS = "Linux"
	Unknown OS = "Unknown"
)

// Known returns every identifier a catalog may reference.
func Known() []OS {
	return []OS{Windows, MacOS, Linux}
}

// String returns the catalog spelling of the identifier.
func (o OS) String() string {
	return string(o)
}

// IsKnown reports whether o is one of the supported identifiers.
func (o OS) IsKnown() bool {
	switch o {
	case Windows, MacOS, Linux:
		return true
	default:
		return false
	}
}

// Parse maps a catalog or GOOS spelling onto an identifier, case-insensitively.
func Parse(s string) OS {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows":
		return Windows
	case "macos", "darwin", "osx":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// Current returns the identifier for the running process.
func Current() OS {
	return Parse(runtime.GOOS)
}

// Info contains host details shown by the doctor command.
type Info struct {
	OS       OS
	Arch     string
	Platform string // distro or product name, e.g. "ubuntu"
	Family   string
	Version  string
}

// Detect gathers host details. Distribution lookups that fail leave the fields empty.
func Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   Current(),
		Arch: runtime.GOARCH,
	}

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return info, nil
	}

	info.Platform = strings.ToLower(strings.TrimSpace(platform))
	info.Family = strings.ToLower(strings.TrimSpace(family))
	info.Version = strings.TrimSpace(version)
	return info, nil
}
