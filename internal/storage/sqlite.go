package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/animedex/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage stores a catalog in a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens (or creates) the database at path and migrates it.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Describe implements Source.
func (s *SQLiteStorage) Describe() string {
	return "database " + s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the migrated schema version.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL,
			romaji TEXT NOT NULL,
			english TEXT,
			native TEXT NOT NULL,
			preferred TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_position ON entries(position);

		CREATE TABLE IF NOT EXISTS entry_images (
			entry_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			url TEXT NOT NULL,
			PRIMARY KEY (entry_id, position),
			FOREIGN KEY (entry_id) REFERENCES entries(id) ON DELETE CASCADE
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds an image counter so image filters can be answered without a join.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE entries ADD COLUMN image_count INTEGER NOT NULL DEFAULT 0;
		UPDATE entries SET image_count = (
			SELECT COUNT(*) FROM entry_images WHERE entry_images.entry_id = entries.id
		);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the catalog in stored order.
func (s *SQLiteStorage) Load(ctx context.Context) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, romaji, english, native, preferred, image_count
		FROM entries
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.Entry{}
	index := map[int]int{}

	for rows.Next() {
		var e model.Entry
		var english sql.NullString
		var imageCount int

		if err := rows.Scan(&e.ID, &e.Title.Romaji, &english, &e.Title.Native, &e.Title.Preferred, &imageCount); err != nil {
			return nil, err
		}

		if english.Valid {
			e.Title.English = &english.String
		}
		e.Images = make([]string, 0, imageCount)

		index[e.ID] = len(entries)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT entry_id, url
		FROM entry_images
		ORDER BY entry_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entryID int
		var url string
		if err := rows.Scan(&entryID, &url); err != nil {
			return nil, err
		}
		if i, ok := index[entryID]; ok {
			entries[i].Images = append(entries[i].Images, url)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// CountByImages returns how many stored entries have images and how many don't.
func (s *SQLiteStorage) CountByImages(ctx context.Context) (with, without int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN image_count > 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN image_count = 0 THEN 1 ELSE 0 END), 0)
		FROM entries
	`).Scan(&with, &without)
	return with, without, err
}

// Save replaces the stored catalog.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(ctx context.Context, entries []model.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_images"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return err
	}

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, position, romaji, english, native, preferred, image_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	imageStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entry_images (entry_id, position, url)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer imageStmt.Close()

	for pos, e := range entries {
		if _, err := entryStmt.ExecContext(ctx,
			e.ID, pos, e.Title.Romaji, e.Title.English, e.Title.Native, e.Title.Preferred, len(e.Images),
		); err != nil {
			return err
		}
		for i, url := range e.Images {
			if _, err := imageStmt.ExecContext(ctx, e.ID, i, url); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default database path: ~/.config/animedex/catalog.db
func DefaultSQLitePath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.db"), nil
}
