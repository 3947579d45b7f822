package config

import (
	"path/filepath"
	"testing"
)

func TestResolvePaths(t *testing.T) {
	// Test with TOOLBOX_DIR set
	testDir := t.TempDir()
	t.Setenv("TOOLBOX_DIR", testDir)

	paths, err := ResolvePaths()
	if err != nil {
		t.Fatalf("ResolvePaths() error: %v", err)
	}

	if paths.DataDir != testDir {
		t.Errorf("DataDir = %q, want %q", paths.DataDir, testDir)
	}

	if paths.ToolboxDir != filepath.Join(testDir, "toolbox") {
		t.Errorf("ToolboxDir = %q, want %q", paths.ToolboxDir, filepath.Join(testDir, "toolbox"))
	}

	if paths.ToolboxDirExists() {
		t.Error("ToolboxDirExists() = true before creation")
	}
	if err := paths.EnsureToolboxDir(); err != nil {
		t.Fatalf("EnsureToolboxDir() error: %v", err)
	}
	if !paths.ToolboxDirExists() {
		t.Error("ToolboxDirExists() = false after creation")
	}
}

func TestPathsFiles(t *testing.T) {
	paths := &Paths{ToolboxDir: filepath.Join("data", "toolbox")}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"catalog", paths.CatalogPath(), filepath.Join("data", "toolbox", "packages.json")},
		{"lastupdate", paths.LastUpdatePath(), filepath.Join("data", "toolbox", "lastupdate")},
		{"config", paths.ConfigPath(), filepath.Join("data", "toolbox", "config.toml")},
		{"path list", paths.PathListPath(), filepath.Join("data", "toolbox", "path")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestDefaultDataDir(t *testing.T) {
	home := filepath.Join("home", "user")

	t.Setenv("XDG_DATA_HOME", "")
	if got, want := defaultDataDir("linux", home), filepath.Join(home, ".local", "share", Vendor); got != want {
		t.Errorf("linux = %q, want %q", got, want)
	}

	xdg := filepath.Join("xdg", "data")
	t.Setenv("XDG_DATA_HOME", xdg)
	if got, want := defaultDataDir("linux", home), filepath.Join(xdg, Vendor); got != want {
		t.Errorf("linux with XDG_DATA_HOME = %q, want %q", got, want)
	}

	if got, want := defaultDataDir("darwin", home), filepath.Join(home, "Library", "Application Support", Vendor); got != want {
		t.Errorf("darwin = %q, want %q", got, want)
	}

	appData := filepath.Join("Users", "user", "AppData", "Roaming")
	t.Setenv("APPDATA", appData)
	if got, want := defaultDataDir("windows", home), filepath.Join(appData, Vendor); got != want {
		t.Errorf("windows = %q, want %q", got, want)
	}
}
