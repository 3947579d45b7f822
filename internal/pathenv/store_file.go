package pathenv

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one directory per line in a plain text file
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the list file location
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored entries. A missing file is an empty list.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, sc.Err()
}

// Save rewrites the file with entries
func (s *FileStore) Save(entries []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# Directories added to PATH by toolbox. Load with: eval \"$(toolbox env)\"\n")
	for _, e := range entries {
		if e == "" {
			continue
		}
		buf.WriteString(e)
		buf.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
