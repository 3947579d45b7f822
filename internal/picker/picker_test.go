package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravendevteam/toolbox/internal/catalog"
	"github.com/ravendevteam/toolbox/internal/platform"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{Packages: []catalog.Package{
		{Name: "zed", Version: "1", Description: "editor", OSList: []platform.OS{platform.Linux}},
		{Name: "Alpha", Version: "2", Description: "first", OSList: []platform.OS{platform.Linux, platform.Windows}},
		{Name: "winonly", Version: "3", OSList: []platform.OS{platform.Windows}},
		{Name: "toolbox", Version: "2.0.0", OSList: []platform.OS{platform.Linux, platform.Windows}},
	}}
}

func TestItems(t *testing.T) {
	installed := func(p *catalog.Package) bool { return p.Name == "zed" || p.IsSelf() }

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", All, []string{"Alpha", "toolbox", "zed"}},
		{"installed only", InstalledOnly, []string{"toolbox", "zed"}},
		{"not installed", NotInstalled, []string{"Alpha"}},
		{"removable", Removable, []string{"zed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Items(testCatalog(), platform.Linux, installed, tt.filter)
			if len(items) != len(tt.want) {
				t.Fatalf("Items() = %v, want %v", items, tt.want)
			}
			for i, id := range tt.want {
				if items[i].ID != id {
					t.Errorf("items[%d] = %q, want %q", i, items[i].ID, id)
				}
			}
		})
	}

	items := Items(testCatalog(), platform.Linux, installed, All)
	if items[2].Label != "zed 1 (installed)" {
		t.Errorf("label = %q", items[1].Label)
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_Navigation(t *testing.T) {
	items := []Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	m := New("Pick", items)

	if got := press(m, "down", "down").Selected(); got != "c" {
		t.Errorf("after two downs = %q, want c", got)
	}
	if got := press(m, "up").Selected(); got != "c" {
		t.Errorf("up from top should wrap, got %q", got)
	}
	if got := press(m, "down", "down", "down").Selected(); got != "a" {
		t.Errorf("down from bottom should wrap, got %q", got)
	}
}

func TestModel_Search(t *testing.T) {
	items := []Item{{ID: "editor", Detail: "writes text"}, {ID: "hasher", Detail: "checksums"}}
	m := New("Pick", items)

	m = press(m, "/", "c", "h", "e", "c", "k", "enter")
	if got := m.Selected(); got != "hasher" {
		t.Errorf("Selected() after search = %q, want hasher", got)
	}

	m = press(m, "enter")
	if !m.done {
		t.Error("enter should confirm the selection")
	}
}

func TestModel_Quit(t *testing.T) {
	m := press(New("Pick", []Item{{ID: "a"}}), "q")
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
