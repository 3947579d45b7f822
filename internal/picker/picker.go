// Package picker offers an interactive package chooser for `install -i` and `upgrade -i`.
package picker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ravendevteam/toolbox/internal/catalog"
	"github.com/ravendevteam/toolbox/internal/platform"
)

const maxVisibleItems = 10 // Maximum items to show before scrolling

// Item is one selectable package
type Item struct {
	ID        string // catalog name
	Label     string
	Detail    string
	Installed bool
}

// Filter limits which packages are offered
type Filter int

const (
	// All packages available for the OS
	All Filter = iota
	// InstalledOnly offers packages with an install directory, for upgrades
	InstalledOnly
	// NotInstalled hides packages that are already present
	NotInstalled
	// Removable is InstalledOnly without toolbox itself
	Removable
)

// Items builds picker entries for the packages of cat that support os.
// installed may be nil when install state is unknown.
func Items(cat *catalog.Catalog, os platform.OS, installed func(*catalog.Package) bool, filter Filter) []Item {
	var items []Item
	for i := range cat.Packages {
		pkg := &cat.Packages[i]
		if !pkg.Supports(os) {
			continue
		}

		isInstalled := installed != nil && installed(pkg)
		switch {
		case (filter == InstalledOnly || filter == Removable) && !isInstalled:
			continue
		case filter == Removable && pkg.IsSelf():
			continue
		case filter == NotInstalled && isInstalled:
			continue
		}

		label := fmt.Sprintf("%s %s", pkg.Name, pkg.Version)
		if isInstalled {
			label += " (installed)"
		}
		items = append(items, Item{
			ID:        pkg.Name,
			Label:     label,
			Detail:    strings.TrimSpace(pkg.Description),
			Installed: isInstalled,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].ID) < strings.ToLower(items[j].ID)
	})
	return items
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Search  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
	),
}
