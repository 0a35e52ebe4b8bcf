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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/deckforge/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "slides.db"

// Store is a SQLite-based annotation store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.deckforge/data/slides.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".deckforge", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// WAL mode lets the TUI browse while an annotation run writes
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

// AnnotationStore returns a driven.AnnotationStore backed by this store.
// Closing it closes the database.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// migrate runs all pending migrations. Each migration records its own
// version in schema_migrations.
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
		// "001_initial.up.sql" -> 1
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
	}

	return nil
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

const recordColumns = `document_id, presentation_id, object_id, summary, category, tags, slide, raw, annotated_at`

// Save upserts a record keyed by document ID.
func (s *annotationStore) Save(ctx context.Context, record domain.StoredSlideRecord) error {
	if record.DocumentID == "" {
		return fmt.Errorf("%w: record has no document ID", domain.ErrInvalidInput)
	}
	tags := record.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}
	slideJSON, err := json.Marshal(record.Slide)
	if err != nil {
		return fmt.Errorf("marshalling slide: %w", err)
	}
	var raw sql.NullString
	if len(record.Slide.Raw) > 0 {
		raw = sql.NullString{String: string(record.Slide.Raw), Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO slide_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			presentation_id = excluded.presentation_id,
			object_id = excluded.object_id,
			summary = excluded.summary,
			category = excluded.category,
			tags = excluded.tags,
			slide = excluded.slide,
			raw = excluded.raw,
			annotated_at = excluded.annotated_at
	`, record.DocumentID, record.PresentationID, record.Slide.ObjectID, record.Summary,
		string(record.Category), string(tagsJSON), string(slideJSON), raw,
		record.AnnotatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving slide record: %w", err)
	}
	return nil
}

// Get retrieves a record by document ID.
func (s *annotationStore) Get(ctx context.Context, documentID string) (*domain.StoredSlideRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM slide_records WHERE document_id = ?`, documentID)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ListByCategory returns records whose category equals cat, newest first.
func (s *annotationStore) ListByCategory(ctx context.Context, cat domain.Category) ([]domain.StoredSlideRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM slide_records
		WHERE category = ?
		ORDER BY annotated_at DESC, document_id
	`, string(cat))
	if err != nil {
		return nil, fmt.Errorf("querying slide records: %w", err)
	}
	return scanRecords(rows)
}

// List returns all records, newest first.
func (s *annotationStore) List(ctx context.Context) ([]domain.StoredSlideRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM slide_records
		ORDER BY annotated_at DESC, document_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying slide records: %w", err)
	}
	return scanRecords(rows)
}

// CountByCategory returns counts for categories that have records.
func (s *annotationStore) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM slide_records
		GROUP BY category ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("counting slide records: %w", err)
	}
	defer rows.Close()

	var counts []domain.CategoryCount
	for rows.Next() {
		var c domain.CategoryCount
		var cat string
		if err := rows.Scan(&cat, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		c.Category = domain.Category(cat)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}
	return counts, nil
}

// Delete removes a record.
func (s *annotationStore) Delete(ctx context.Context, documentID string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM slide_records WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting slide record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting slide record: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveCollection upserts a collection by name.
func (s *annotationStore) SaveCollection(ctx context.Context, c domain.Collection) error {
	ids := c.PresentationIDs
	if ids == nil {
		ids = []string{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshalling presentation ids: %w", err)
	}
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO collections (name, presentation_ids, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			presentation_ids = excluded.presentation_ids,
			updated_at = excluded.updated_at
	`, c.Name, string(idsJSON), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

// GetCollection retrieves a collection by name.
func (s *annotationStore) GetCollection(ctx context.Context, name string) (*domain.Collection, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT name, presentation_ids FROM collections WHERE name = ?", name)
	c, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListCollections returns all collections ordered by name.
func (s *annotationStore) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT name, presentation_ids FROM collections ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying collections: %w", err)
	}
	defer rows.Close()

	var out []domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *annotationStore) Close() error {
	return s.store.Close()
}

// ==================== Helper Functions ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.StoredSlideRecord, error) {
	var rec domain.StoredSlideRecord
	var objectID, category, tagsJSON, slideJSON string
	var raw sql.NullString
	var annotatedAt int64
	if err := row.Scan(&rec.DocumentID, &rec.PresentationID, &objectID, &rec.Summary,
		&category, &tagsJSON, &slideJSON, &raw, &annotatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning slide record: %w", err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
		return nil, fmt.Errorf("unmarshalling tags of %s: %w", rec.DocumentID, err)
	}
	if err := json.Unmarshal([]byte(slideJSON), &rec.Slide); err != nil {
		return nil, fmt.Errorf("unmarshalling slide of %s: %w", rec.DocumentID, err)
	}
	if rec.Slide.ObjectID == "" {
		rec.Slide.ObjectID = objectID
	}
	if raw.Valid {
		rec.Slide.Raw = json.RawMessage(raw.String)
	}
	rec.Category = domain.Category(category)
	rec.AnnotatedAt = time.Unix(0, annotatedAt).UTC()
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]domain.StoredSlideRecord, error) {
	defer rows.Close()

	var out []domain.StoredSlideRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slide records: %w", err)
	}
	return out, nil
}

func scanCollection(row scanner) (*domain.Collection, error) {
	var c domain.Collection
	var idsJSON string
	if err := row.Scan(&c.Name, &idsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning collection: %w", err)
	}
	if err := json.Unmarshal([]byte(idsJSON), &c.PresentationIDs); err != nil {
		return nil, fmt.Errorf("unmarshalling collection %s: %w", c.Name, err)
	}
	return &c, nil
}
