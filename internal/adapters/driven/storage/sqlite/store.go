// Package sqlite provides a persistent AnnotationStore backed by SQLite.
// Documents and their annotations survive across runs, so repeated
// tagging calls against the same document accumulate enrichments.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/annolab/geotag/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/annolab/geotag/internal/core/domain"
	"github.com/annolab/geotag/internal/core/ports/driven"
)

// Store is a SQLite-backed document and annotation store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.geotag/data/annotations.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".geotag", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "annotations.db")

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

// SaveDocument stores or replaces a document along with its source
// annotations. Enrichments from earlier runs are kept.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, uri, text) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET uri = excluded.uri, text = excluded.text
	`, doc.ID, doc.URI, doc.Text)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM annotations WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("clearing annotations: %w", err)
	}
	for i, a := range doc.Annotations {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO annotations (document_id, type, begin_offset, end_offset, position)
			VALUES (?, ?, ?, ?, ?)
		`, doc.ID, a.Type, a.Begin, a.End, i)
		if err != nil {
			return fmt.Errorf("inserting annotation %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetDocument retrieves a document and its source annotations by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	doc := domain.Document{ID: id}
	row := s.db.QueryRowContext(ctx, "SELECT uri, text FROM documents WHERE id = ?", id)
	if err := row.Scan(&doc.URI, &doc.Text); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, begin_offset, end_offset FROM annotations
		WHERE document_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Annotation
		if err := rows.Scan(&a.Type, &a.Begin, &a.End); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		doc.Annotations = append(doc.Annotations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}
	return &doc, nil
}

// GeoAnnotations returns the enrichments persisted for a document in
// write order.
func (s *Store) GeoAnnotations(ctx context.Context, documentID string) ([]domain.GeoAnnotation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, begin_offset, end_offset, geonames_id, name, latitude, longitude,
		       feature_class, feature_code, country_code, adm1, adm2, adm3, adm4, elevation
		FROM geo_annotations WHERE document_id = ? ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying geo annotations: %w", err)
	}
	defer rows.Close()

	var out []domain.GeoAnnotation
	for rows.Next() {
		ann := domain.GeoAnnotation{DocumentID: documentID}
		var elevation sql.NullInt64
		err := rows.Scan(&ann.ID, &ann.Begin, &ann.End,
			&ann.Entity.ID, &ann.Entity.Name, &ann.Entity.Latitude, &ann.Entity.Longitude,
			&ann.Entity.FeatureClass, &ann.Entity.FeatureCode, &ann.Entity.CountryCode,
			&ann.Entity.Adm1, &ann.Entity.Adm2, &ann.Entity.Adm3, &ann.Entity.Adm4,
			&elevation)
		if err != nil {
			return nil, fmt.Errorf("scanning geo annotation: %w", err)
		}
		if elevation.Valid {
			v := int(elevation.Int64)
			ann.Entity.Elevation = &v
		}
		out = append(out, ann)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating geo annotations: %w", err)
	}
	return out, nil
}

// Modifications returns the modification records for a document in write
// order.
func (s *Store) Modifications(ctx context.Context, documentID string) ([]domain.DocumentModification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user, timestamp, comment FROM document_modifications
		WHERE document_id = ? ORDER BY id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying modifications: %w", err)
	}
	defer rows.Close()

	var out []domain.DocumentModification
	for rows.Next() {
		var mod domain.DocumentModification
		var unix int64
		if err := rows.Scan(&mod.User, &unix, &mod.Comment); err != nil {
			return nil, fmt.Errorf("scanning modification: %w", err)
		}
		mod.Timestamp = timeFromUnix(unix)
		out = append(out, mod)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating modifications: %w", err)
	}
	return out, nil
}

// AnnotationStore returns a driven.AnnotationStore bound to one document.
func (s *Store) AnnotationStore(documentID string) driven.AnnotationStore {
	return &annotationStore{store: s, documentID: documentID}
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
