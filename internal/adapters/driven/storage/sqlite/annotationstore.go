package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/annolab/geotag/internal/core/domain"
	"github.com/annolab/geotag/internal/core/ports/driven"
)

var _ driven.AnnotationStore = (*annotationStore)(nil)

// annotationStore implements driven.AnnotationStore for one document.
type annotationStore struct {
	store      *Store
	documentID string
}

// SpansByType enumerates spans of the given annotation type in document
// order, with covered text taken from the stored document text.
func (a *annotationStore) SpansByType(ctx context.Context, annotationType string) ([]domain.Span, error) {
	var text string
	row := a.store.db.QueryRowContext(ctx, "SELECT text FROM documents WHERE id = ?", a.documentID)
	if err := row.Scan(&text); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document %q: %w", a.documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning document text: %w", err)
	}

	rows, err := a.store.db.QueryContext(ctx, `
		SELECT begin_offset, end_offset FROM annotations
		WHERE document_id = ? AND type = ? ORDER BY position
	`, a.documentID, annotationType)
	if err != nil {
		return nil, fmt.Errorf("querying spans: %w", err)
	}
	defer rows.Close()

	spans := []domain.Span{}
	for rows.Next() {
		var span domain.Span
		if err := rows.Scan(&span.Begin, &span.End); err != nil {
			return nil, fmt.Errorf("scanning span: %w", err)
		}
		if span.Begin >= 0 && span.End <= len(text) && span.Begin <= span.End {
			span.Text = text[span.Begin:span.End]
		}
		spans = append(spans, span)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spans: %w", err)
	}
	return spans, nil
}

// SaveAnnotation persists a new entity annotation.
func (a *annotationStore) SaveAnnotation(ctx context.Context, ann *domain.GeoAnnotation) error {
	var elevation sql.NullInt64
	if ann.Entity.Elevation != nil {
		elevation = sql.NullInt64{Int64: int64(*ann.Entity.Elevation), Valid: true}
	}

	_, err := a.store.db.ExecContext(ctx, `
		INSERT INTO geo_annotations (
			id, document_id, begin_offset, end_offset, geonames_id, name,
			latitude, longitude, feature_class, feature_code, country_code,
			adm1, adm2, adm3, adm4, elevation, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COUNT(*) FROM geo_annotations WHERE document_id = ?))
	`, ann.ID, a.documentID, ann.Begin, ann.End, ann.Entity.ID, ann.Entity.Name,
		ann.Entity.Latitude, ann.Entity.Longitude, ann.Entity.FeatureClass,
		ann.Entity.FeatureCode, ann.Entity.CountryCode,
		ann.Entity.Adm1, ann.Entity.Adm2, ann.Entity.Adm3, ann.Entity.Adm4,
		elevation, a.documentID)
	if err != nil {
		return fmt.Errorf("inserting geo annotation: %w", err)
	}
	return nil
}

// SaveModification persists a document modification record.
func (a *annotationStore) SaveModification(ctx context.Context, mod *domain.DocumentModification) error {
	_, err := a.store.db.ExecContext(ctx, `
		INSERT INTO document_modifications (document_id, user, timestamp, comment)
		VALUES (?, ?, ?, ?)
	`, a.documentID, mod.User, mod.Timestamp.Unix(), mod.Comment)
	if err != nil {
		return fmt.Errorf("inserting modification: %w", err)
	}
	return nil
}

func timeFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
