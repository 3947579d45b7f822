package symlink

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
}

func TestLinker_LinkAndUnlink(t *testing.T) {
	skipOnWindows(t)
	root := t.TempDir()
	installDir := filepath.Join(root, "apps", "editor")
	target := filepath.Join(installDir, "editor")
	if err := os.MkdirAll(installDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("bin"), 0755); err != nil {
		t.Fatal(err)
	}

	l := New()
	link := filepath.Join(root, "Desktop", "editor")

	if err := l.Link(link, target); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	// Linking again to the same target is a no-op
	if err := l.Link(link, target); err != nil {
		t.Fatalf("second Link() error: %v", err)
	}

	st, err := l.Stat(link)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if !st.Exists || !st.IsSymlink || st.IsBroken {
		t.Errorf("Stat() = %+v", st)
	}
	if st.Target != target {
		t.Errorf("Target = %q, want %q", st.Target, target)
	}

	// Refuses links that point elsewhere
	if err := l.Unlink(link, filepath.Join(root, "apps", "other")); err == nil {
		t.Error("Unlink() should refuse a link into another directory")
	}

	if err := l.Unlink(link, installDir); err != nil {
		t.Fatalf("Unlink() error: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("link still exists after Unlink")
	}

	// Missing links are fine
	if err := l.Unlink(link, installDir); err != nil {
		t.Errorf("Unlink() on missing link: %v", err)
	}
}

func TestLinker_Replace(t *testing.T) {
	skipOnWindows(t)
	root := t.TempDir()
	oldTarget := filepath.Join(root, "old")
	newTarget := filepath.Join(root, "new")
	link := filepath.Join(root, "link")

	l := New()
	if err := l.Link(link, oldTarget); err != nil {
		t.Fatal(err)
	}
	if err := l.Link(link, newTarget); err != nil {
		t.Fatalf("Link() replace error: %v", err)
	}

	st, _ := l.Stat(link)
	if st.Target != newTarget {
		t.Errorf("Target = %q, want %q", st.Target, newTarget)
	}
	if !st.IsBroken {
		t.Error("link to a missing target should be reported broken")
	}
}

func TestLinker_KeepsRegularFiles(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "editor")
	if err := os.WriteFile(path, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	l := New()
	if err := l.Link(path, filepath.Join(root, "target")); err == nil {
		t.Error("Link() should not overwrite a regular file")
	}
	if err := l.Unlink(path, root); err == nil {
		t.Error("Unlink() should not remove a regular file")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "mine" {
		t.Error("regular file was modified")
	}
}

func TestWithin(t *testing.T) {
	tests := []struct {
		target, dir string
		want        bool
	}{
		{"/a/b/c", "/a/b", true},
		{"/a/b", "/a/b", true},
		{"/a/bc", "/a/b", false},
		{"/a", "/a/b", false},
		{"/x/y", "/a/b", false},
	}
	for _, tt := range tests {
		if got := within(filepath.FromSlash(tt.target), filepath.FromSlash(tt.dir)); got != tt.want {
			t.Errorf("within(%q, %q) = %v, want %v", tt.target, tt.dir, got, tt.want)
		}
	}
}
