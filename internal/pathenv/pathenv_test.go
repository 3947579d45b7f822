package pathenv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type memStore struct {
	entries []string
	saves   int
}

func (m *memStore) Load() ([]string, error) {
	return append([]string(nil), m.entries...), nil
}

func (m *memStore) Save(entries []string) error {
	m.entries = append([]string(nil), entries...)
	m.saves++
	return nil
}

func TestRegistrar_AddIsIdempotent(t *testing.T) {
	store := &memStore{entries: []string{"/usr/bin"}}
	r := NewRegistrar(store, nil)

	for i := 0; i < 3; i++ {
		if err := r.Add("/opt/tool"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	if len(store.entries) != 2 {
		t.Errorf("entries = %v, want exactly one added", store.entries)
	}
	if store.saves != 1 {
		t.Errorf("expected a single save, got %d", store.saves)
	}

	// A trailing separator names the same directory
	if err := r.Add("/opt/tool/"); err != nil {
		t.Fatal(err)
	}
	if len(store.entries) != 2 {
		t.Errorf("entries = %v after adding equivalent path", store.entries)
	}
}

func TestRegistrar_RemoveIsIdempotent(t *testing.T) {
	store := &memStore{entries: []string{"/usr/bin", "/opt/tool", "/opt/tool"}}
	r := NewRegistrar(store, nil)

	if err := r.Remove("/opt/tool"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(store.entries) != 1 || store.entries[0] != "/usr/bin" {
		t.Errorf("entries = %v", store.entries)
	}

	saves := store.saves
	if err := r.Remove("/opt/tool"); err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if store.saves != saves {
		t.Error("removing an absent entry should not rewrite the store")
	}

	ok, err := r.Contains("/usr/bin")
	if err != nil || !ok {
		t.Errorf("Contains(/usr/bin) = %v, %v", ok, err)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolbox", "path")
	s := NewFileStore(path)

	entries, err := s.Load()
	if err != nil || len(entries) != 0 {
		t.Fatalf("Load on missing file = %v, %v", entries, err)
	}

	r := NewRegistrar(s, nil)
	if err := r.Add("/opt/a"); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("/opt/b"); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("/opt/a"); err != nil {
		t.Fatal(err)
	}

	entries, err = s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(entries, ",") != "/opt/a,/opt/b" {
		t.Errorf("entries = %v", entries)
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "#") {
		t.Error("list file should start with a comment header")
	}
}

func TestParseShell(t *testing.T) {
	tests := []struct {
		in      string
		want    Shell
		wantErr bool
	}{
		{"bash", ShellPOSIX, false},
		{"/bin/zsh", ShellPOSIX, false},
		{"/usr/local/bin/fish", ShellFish, false},
		{"", ShellPOSIX, false},
		{"   ", ShellPOSIX, false},
		{" /bin/bash\n", ShellPOSIX, false},
		{"powershell", "", true},
	}
	for _, tt := range tests {
		got, err := ParseShell(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseShell(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseShell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	dirs := []string{"/opt/a", "/opt/it's"}

	if got := Snippet(ShellPOSIX, dirs); got != `export PATH='/opt/a':'/opt/it'\''s':"$PATH"`+"\n" {
		t.Errorf("posix snippet = %q", got)
	}
	if got := Snippet(ShellFish, dirs[:1]); got != "set -gx PATH '/opt/a' $PATH\n" {
		t.Errorf("fish snippet = %q", got)
	}
	if got := Snippet(ShellPOSIX, nil); got != "" {
		t.Errorf("empty snippet = %q", got)
	}
}
