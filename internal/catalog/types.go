// Package catalog loads, validates and persists the package manifest.
//
// A catalog is accepted as a unit: any entry missing a required field, or declaring a
// per-OS url/sha256 map that does not cover its os list, invalidates the whole file.
package catalog

import (
	"strings"

	"github.com/ravendevteam/toolbox/internal/platform"
)

// SelfName is the catalog entry describing toolbox itself.
const SelfName = "toolbox"

// Catalog is the full package manifest
type Catalog struct {
	Packages  []Package `json:"packages" yaml:"packages" validate:"required,min=1,dive"`
	UpdateURL string    `json:"updateurl,omitempty" yaml:"updateurl,omitempty"`
}

// Package is one installable entry
type Package struct {
	Name        string        `json:"name" yaml:"name" validate:"required,pkgname"`
	Version     string        `json:"version" yaml:"version" validate:"required"`
	URL         OSValue       `json:"url" yaml:"url" validate:"required"`
	Description string        `json:"description" yaml:"description"`
	Sha256      OSValue       `json:"sha256" yaml:"sha256" validate:"required"`
	RequirePath bool          `json:"requirepath" yaml:"requirepath"`
	Shortcut    bool          `json:"shortcut" yaml:"shortcut"`
	OSList      []platform.OS `json:"os" yaml:"os" validate:"required,min=1,dive,osid"`
}

// Find returns the entry whose name matches case-insensitively
func (c *Catalog) Find(name string) (*Package, bool) {
	for i := range c.Packages {
		if strings.EqualFold(c.Packages[i].Name, name) {
			return &c.Packages[i], true
		}
	}
	return nil, false
}

// HasUpdateURL reports whether the catalog declares its own remote source.
// Catalogs written before the field existed are treated as outdated.
func (c *Catalog) HasUpdateURL() bool {
	return strings.TrimSpace(c.UpdateURL) != ""
}

// Self returns the entry describing toolbox, if the catalog carries one
func (c *Catalog) Self() (*Package, bool) {
	return c.Find(SelfName)
}

// Supports reports whether os appears in the package's os list
func (p *Package) Supports(os platform.OS) bool {
	for _, o := range p.OSList {
		if platform.Parse(string(o)) == os {
			return true
		}
	}
	return false
}

// IsSelf reports whether the entry describes toolbox itself
func (p *Package) IsSelf() bool {
	return strings.EqualFold(p.Name, SelfName)
}
