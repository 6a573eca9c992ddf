// Package sqlite provides durable SQLite-backed implementations of the
// storage ports. Model publication is transactional: the version row
// and the active pointer are written in one transaction, so a crash
// mid-publish leaves the prior active version intact.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/verilabs/veritext/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// model and corpus store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.veritext/data/veritext.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".veritext", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "veritext.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// ModelStore returns a ModelStore interface backed by this store.
func (s *Store) ModelStore() driven.ModelStore {
	return &modelStore{store: s}
}

// CorpusStore returns a CorpusStore interface backed by this store.
func (s *Store) CorpusStore() driven.CorpusStore {
	return &corpusStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
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
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
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

// ==================== Model Store ====================

// modelStore implements driven.ModelStore.
type modelStore struct {
	store *Store
}

var _ driven.ModelStore = (*modelStore)(nil)

const modelColumns = "id, vocabulary, weights, training_corpus_size, holdout_accuracy, created_at"

// GetActive retrieves the currently active model version.
func (m *modelStore) GetActive(ctx context.Context) (*domain.ModelVersion, error) {
	row := m.store.db.QueryRowContext(ctx, `
		SELECT `+modelColumns+`
		FROM model_versions
		WHERE id = (SELECT version_id FROM active_model WHERE id = 1)
	`)
	version, err := scanModelVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoModel
	}
	return version, err
}

// Publish stores the candidate and swaps the active pointer in one
// transaction. All-or-nothing: any failure rolls back both writes.
func (m *modelStore) Publish(ctx context.Context, candidate *domain.ModelVersion) error {
	if candidate == nil || candidate.ID == "" {
		return domain.ErrInvalidInput
	}

	vocabJSON, err := json.Marshal(candidate.Vocabulary)
	if err != nil {
		return fmt.Errorf("marshalling vocabulary: %w", err)
	}
	weightsJSON, err := json.Marshal(candidate.Weights)
	if err != nil {
		return fmt.Errorf("marshalling weights: %w", err)
	}

	tx, err := m.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO model_versions (`+modelColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, candidate.ID, string(vocabJSON), string(weightsJSON),
		candidate.TrainingCorpusSize, candidate.HoldoutAccuracy,
		candidate.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting version: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO active_model (id, version_id) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET version_id = excluded.version_id
	`, candidate.ID)
	if err != nil {
		return fmt.Errorf("swapping active pointer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing publish: %w", err)
	}
	return nil
}

// Get retrieves a model version by id.
func (m *modelStore) Get(ctx context.Context, id string) (*domain.ModelVersion, error) {
	row := m.store.db.QueryRowContext(ctx, `
		SELECT `+modelColumns+` FROM model_versions WHERE id = ?
	`, id)
	version, err := scanModelVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return version, err
}

// List returns all stored versions, newest first.
func (m *modelStore) List(ctx context.Context) ([]domain.ModelVersion, error) {
	rows, err := m.store.db.QueryContext(ctx, `
		SELECT `+modelColumns+` FROM model_versions ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying versions: %w", err)
	}
	defer rows.Close()

	var versions []domain.ModelVersion
	for rows.Next() {
		version, err := scanModelVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *version)
	}
	return versions, rows.Err()
}

// Prune deletes non-active versions beyond the newest keep of them.
func (m *modelStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return domain.ErrInvalidInput
	}
	_, err := m.store.db.ExecContext(ctx, `
		DELETE FROM model_versions
		WHERE id NOT IN (SELECT version_id FROM active_model)
		  AND id NOT IN (
			SELECT id FROM model_versions
			WHERE id NOT IN (SELECT version_id FROM active_model)
			ORDER BY created_at DESC
			LIMIT ?
		  )
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning versions: %w", err)
	}
	return nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanModelVersion hydrates a ModelVersion from a row.
func scanModelVersion(row rowScanner) (*domain.ModelVersion, error) {
	var (
		version     domain.ModelVersion
		vocabJSON   string
		weightsJSON string
		createdAt   string
	)
	if err := row.Scan(
		&version.ID, &vocabJSON, &weightsJSON,
		&version.TrainingCorpusSize, &version.HoldoutAccuracy, &createdAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(vocabJSON), &version.Vocabulary); err != nil {
		return nil, fmt.Errorf("unmarshalling vocabulary: %w", err)
	}
	if err := json.Unmarshal([]byte(weightsJSON), &version.Weights); err != nil {
		return nil, fmt.Errorf("unmarshalling weights: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	version.CreatedAt = ts
	return &version, nil
}

// ==================== Corpus Store ====================

// corpusStore implements driven.CorpusStore.
type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

// Append adds examples to the end of the corpus in one transaction.
// Concurrent appends serialise on the database write lock, so two
// submissions never interleave.
func (c *corpusStore) Append(ctx context.Context, examples []domain.TrainingExample) error {
	if len(examples) == 0 {
		return nil
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO corpus (text, label, added_at) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, ex := range examples {
		if _, err := stmt.ExecContext(ctx, ex.Text, string(ex.Label),
			ex.AddedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("inserting example: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing append: %w", err)
	}
	return nil
}

// All returns every example in insertion order.
func (c *corpusStore) All(ctx context.Context) ([]domain.TrainingExample, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT text, label, added_at FROM corpus ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var examples []domain.TrainingExample
	for rows.Next() {
		var (
			ex      domain.TrainingExample
			label   string
			addedAt string
		)
		if err := rows.Scan(&ex.Text, &label, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning example: %w", err)
		}
		ex.Label = domain.Label(label)
		if ts, err := time.Parse(time.RFC3339Nano, addedAt); err == nil {
			ex.AddedAt = ts
		}
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

// Len returns the current corpus length.
func (c *corpusStore) Len(ctx context.Context) (int, error) {
	var n int
	row := c.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus")
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting corpus: %w", err)
	}
	return n, nil
}
