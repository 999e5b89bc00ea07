package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/animedex/internal/model"
)

// Source provides the full ordered catalog in one call.
type Source interface {
	Load(ctx context.Context) ([]model.Entry, error)
	// Describe names the source for logs and error messages.
	Describe() string
}

// Writer persists a full catalog, replacing whatever was stored before.
type Writer interface {
	Save(ctx context.Context, entries []model.Entry) error
}

// JSONStorage reads and writes a catalog as a JSON array file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Describe implements Source.
func (s *JSONStorage) Describe() string {
	return "file " + s.path
}

// Load reads the catalog from the JSON file.
// A missing file is an error: a catalog has to exist to be browsed.
func (s *JSONStorage) Load(ctx context.Context) ([]model.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return decodeEntries(data)
}

// Save writes the catalog to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(ctx context.Context, entries []model.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if entries == nil {
		entries = []model.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// decodeEntries parses a JSON array of entries and normalizes nil image slices.
func decodeEntries(data []byte) ([]model.Entry, error) {
	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return model.NewCollection(entries), nil
}

// DefaultDataDir returns ~/.config/animedex.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "animedex"), nil
}

// DefaultCatalogPath returns the default catalog path: ~/.config/animedex/catalog.json
func DefaultCatalogPath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.json"), nil
}

// IsURL reports whether location is an http(s) URL.
func IsURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsSQLitePath reports whether location names a SQLite database file.
func IsSQLitePath(location string) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// OpenSource picks a Source for location: HTTP for URLs, SQLite for database
// files and JSON otherwise. httpTimeout applies to the HTTP source only.
// The caller must Close the returned source when it implements io.Closer.
func OpenSource(location string, httpTimeout time.Duration) (Source, error) {
	switch {
	case location == "":
		return nil, fmt.Errorf("no catalog source configured")
	case IsURL(location):
		return NewHTTPSource(location, httpTimeout), nil
	case IsSQLitePath(location):
		if _, err := os.Stat(location); err != nil {
			return nil, fmt.Errorf("open catalog database: %w", err)
		}
		db, err := NewSQLiteStorage(location)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return NewJSONStorage(location), nil
	}
}
