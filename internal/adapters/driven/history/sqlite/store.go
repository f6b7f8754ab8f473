// Package sqlite persists question/answer exchanges in a local
// SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quantia-labs/docqa-cli/internal/adapters/driven/history/sqlite/migrations"
	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
)

var _ driven.HistoryStore = (*Store)(nil)

// Store is a SQLite-backed history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new history store at the specified data directory.
// If dataDir is empty, defaults to ~/.docqa/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docqa", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode keeps concurrent readers from blocking writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// Save records an exchange. A missing ID or timestamp is filled in.
func (s *Store) Save(ctx context.Context, ex driven.Exchange) error {
	if ex.Question == "" {
		return fmt.Errorf("%w: exchange question is empty", domain.ErrInvalidInput)
	}
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.AskedAt.IsZero() {
		ex.AskedAt = time.Now().UTC()
	}

	sourcesJSON, err := json.Marshal(ex.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, question, answer, sources, asked_at)
		VALUES (?, ?, ?, ?, ?)
	`, ex.ID, ex.Question, ex.Answer, string(sourcesJSON), ex.AskedAt)
	if err != nil {
		return fmt.Errorf("saving exchange: %w", err)
	}
	return nil
}

// List returns the most recent exchanges, newest first. A limit of 0
// or less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]driven.Exchange, error) {
	query := `
		SELECT id, question, answer, sources, asked_at
		FROM exchanges ORDER BY asked_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []driven.Exchange //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ex driven.Exchange
		var sourcesJSON string
		var askedAt sql.NullTime
		if err := rows.Scan(&ex.ID, &ex.Question, &ex.Answer, &sourcesJSON, &askedAt); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}

		if err := json.Unmarshal([]byte(sourcesJSON), &ex.Sources); err != nil {
			return nil, fmt.Errorf("unmarshaling sources: %w", err)
		}
		if askedAt.Valid {
			ex.AskedAt = askedAt.Time
		}
		exchanges = append(exchanges, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchanges: %w", err)
	}

	return exchanges, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
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
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
