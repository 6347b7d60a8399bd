package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ankify-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DictionaryStore = (*Store)(nil)

// DatabaseFile is the file name of the dictionary database in the data directory.
const DatabaseFile = "dictionary.db"

// Store is a SQLite-backed driven.DictionaryStore.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultDataDir returns ~/.ankify/data.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ankify", "data"), nil
}

// NewStore opens (creating if needed) the dictionary database in dataDir.
// If dataDir is empty, defaults to ~/.ankify/data/dictionary.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets lookups read while an import writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func termKey(term string) string {
	return norm.NFC.String(strings.TrimSpace(term))
}

// Lookup returns the records stored for term. Unknown terms are not OK.
func (s *Store) Lookup(ctx context.Context, term string) (domain.LookupResponse, error) {
	key := termKey(term)
	if key == "" {
		return domain.LookupResponse{OK: false}, nil
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT records FROM dictionary_terms WHERE term = ?", key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LookupResponse{OK: false}, nil
	}
	if err != nil {
		return domain.LookupResponse{}, fmt.Errorf("querying %q: %w", key, err)
	}

	var records []domain.RawDictRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return domain.LookupResponse{}, fmt.Errorf("decoding records for %q: %w", key, err)
	}
	if len(records) == 0 {
		return domain.LookupResponse{OK: false}, nil
	}
	return domain.FoundResponse(records), nil
}

// Put replaces the records stored for term.
func (s *Store) Put(ctx context.Context, term string, records []domain.RawDictRecord) error {
	key := termKey(term)
	if key == "" {
		return domain.ErrInvalidInput
	}
	if records == nil {
		records = []domain.RawDictRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding records for %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dictionary_terms (term, records, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(term) DO UPDATE SET
			records = excluded.records,
			updated_at = excluded.updated_at
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("storing %q: %w", key, err)
	}
	return nil
}

// Delete removes a term.
func (s *Store) Delete(ctx context.Context, term string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM dictionary_terms WHERE term = ?", termKey(term))
	if err != nil {
		return fmt.Errorf("deleting %q: %w", term, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of stored terms.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dictionary_terms").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting terms: %w", err)
	}
	return n, nil
}

// migrate applies every *.up.sql newer than the recorded schema version,
// in file name order, recording each version as it is applied.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_dictionary.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}
