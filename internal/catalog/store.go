package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	terrors "github.com/ravendevteam/toolbox/internal/errors"
)

// Format is the document encoding of a catalog file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file name or URL extension
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Store reads and writes the local catalog and its refresh timestamp
type Store struct {
	path      string
	statePath string
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewStore creates a store for the catalog at path with refresh state at statePath
func NewStore(path, statePath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:      path,
		statePath: statePath,
		validate:  NewValidator(),
		logger:    logger,
	}
}

// Path returns the catalog file path
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a catalog file is present
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Mode().IsRegular()
}

// Load reads, decodes and validates the catalog
func (s *Store) Load() (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, terrors.NewCatalogError(s.path, "load", terrors.ErrCatalogNotFound)
		}
		return nil, terrors.NewCatalogError(s.path, "load", err)
	}

	cat, err := s.Parse(data, FormatFor(s.path))
	if err != nil {
		return nil, terrors.NewCatalogError(s.path, "load", err)
	}

	s.logger.Debug("catalog loaded",
		"path", s.path,
		"package_count", len(cat.Packages),
		"update_url", cat.UpdateURL,
	)
	return cat, nil
}

// Parse decodes and validates raw catalog content
func (s *Store) Parse(data []byte, format Format) (*Catalog, error) {
	var cat Catalog

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("%w: %v", terrors.ErrCatalogParse, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&cat); err != nil {
			return nil, fmt.Errorf("%w: %v", terrors.ErrCatalogParse, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: trailing data after catalog document", terrors.ErrCatalogParse)
		}
	}

	if err := Validate(s.validate, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Replace validates data and atomically swaps it in as the local catalog.
// Invalid content leaves the existing catalog untouched.
func (s *Store) Replace(data []byte, format Format) (*Catalog, error) {
	cat, err := s.Parse(data, format)
	if err != nil {
		return nil, err
	}

	// Keep the on-disk encoding matching the file name
	if format != FormatFor(s.path) {
		data, err = encode(cat, FormatFor(s.path))
		if err != nil {
			return nil, err
		}
	}

	if err := writeAtomic(s.path, data); err != nil {
		return nil, terrors.NewCatalogError(s.path, "write", err)
	}
	return cat, nil
}

// LastUpdate returns the recorded refresh time. ok is false when no usable state exists.
func (s *Store) LastUpdate() (t time.Time, ok bool) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cannot read refresh state", "path", s.statePath, "error", err)
		}
		return time.Time{}, false
	}

	secs, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		s.logger.Warn("ignoring corrupt refresh state", "path", s.statePath, "error", err)
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}

// MarkUpdated records t as the last successful refresh
func (s *Store) MarkUpdated(t time.Time) error {
	line := strconv.FormatInt(t.Unix(), 10) + "\n"
	if err := writeAtomic(s.statePath, []byte(line)); err != nil {
		return terrors.NewPathError(s.statePath, "write refresh state", err)
	}
	return nil
}

func encode(cat *Catalog, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(cat)
	}
	return json.MarshalIndent(cat, "", "  ")
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
