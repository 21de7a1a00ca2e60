package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ludo-technologies/plagscan/domain"
)

const memoryDSN = ":memory:"

// SQLiteStore persists corpus entries in a SQLite database
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLiteStore opens or creates the corpus database at path.
// The special path ":memory:" opens a private in-memory database.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, domain.NewConfigError("sqlite corpus store requires a path", nil)
	}

	if path != memoryDSN {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, domain.NewStorageError("failed to create corpus directory", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, domain.NewStorageError("failed to open corpus database", err)
	}
	if path == memoryDSN {
		// every pooled connection would get its own empty database
		conn.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, domain.NewStorageError("failed to set pragma", err)
		}
	}

	store := &SQLiteStore{conn: conn, path: path}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, domain.NewStorageError("failed to initialize corpus schema", err)
	}

	slog.Debug("opened sqlite corpus store", "path", path)
	return store, nil
}

func (s *SQLiteStore) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS corpus_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			language TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_corpus_language ON corpus_entries(language);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// List returns all entries in ascending ID order
func (s *SQLiteStore) List(ctx context.Context) ([]domain.CorpusEntry, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, content, language, description, source, content_hash, created_at
		FROM corpus_entries ORDER BY id ASC`)
	if err != nil {
		return nil, domain.NewStorageError("failed to list corpus entries", err)
	}
	return scanEntries(rows)
}

// FilterByLanguage returns the entries of one language in ascending ID order
func (s *SQLiteStore) FilterByLanguage(ctx context.Context, lang domain.Language) ([]domain.CorpusEntry, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, content, language, description, source, content_hash, created_at
		FROM corpus_entries WHERE language = ? ORDER BY id ASC`, string(lang))
	if err != nil {
		return nil, domain.NewStorageError("failed to filter corpus entries", err)
	}
	return scanEntries(rows)
}

// Append inserts the entry and returns it with the ID assigned by the database
func (s *SQLiteStore) Append(ctx context.Context, entry domain.CorpusEntry) (domain.CorpusEntry, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO corpus_entries (content, language, description, source, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Content,
		string(entry.Language),
		entry.Description,
		entry.Source,
		entry.ContentHash,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.CorpusEntry{}, ErrDuplicateContent
		}
		return domain.CorpusEntry{}, domain.NewStorageError("failed to append corpus entry", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.CorpusEntry{}, domain.NewStorageError("failed to read inserted entry id", err)
	}
	entry.ID = id
	return entry, nil
}

// Path returns the database location
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]domain.CorpusEntry, error) {
	defer rows.Close()

	entries := make([]domain.CorpusEntry, 0)
	for rows.Next() {
		var (
			e         domain.CorpusEntry
			lang      string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Content, &lang, &e.Description, &e.Source, &e.ContentHash, &createdAt); err != nil {
			return nil, domain.NewStorageError("failed to scan corpus entry", err)
		}
		e.Language = domain.Language(lang)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("failed to read corpus entries", err)
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// StoreOptions selects a corpus store implementation
type StoreOptions struct {
	// Kind is "memory" or "sqlite"
	Kind string
	Path string
}

// Store kinds
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// OpenStore creates the configured store
func OpenStore(opts StoreOptions) (domain.CorpusStore, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", StoreMemory:
		return NewMemoryStore(), nil
	case StoreSQLite:
		return OpenSQLiteStore(opts.Path)
	default:
		return nil, domain.NewConfigError(fmt.Sprintf("unsupported corpus store: %s", opts.Kind), nil)
	}
}
