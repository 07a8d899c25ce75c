package driven

import (
	"context"

	"github.com/annolab/geotag/internal/core/domain"
)

// AnnotationStore is the document-store capability this layer consumes.
// Implementations own the document representation; the core only ever
// sees spans and writes enrichment records.
type AnnotationStore interface {
	// SpansByType enumerates spans of the given annotation type in
	// document order. Order is significant: reference assignment follows
	// it. An unknown type yields an empty slice, not an error.
	SpansByType(ctx context.Context, annotationType string) ([]domain.Span, error)

	// SaveAnnotation persists a new entity annotation.
	SaveAnnotation(ctx context.Context, ann *domain.GeoAnnotation) error

	// SaveModification persists a document modification record.
	SaveModification(ctx context.Context, mod *domain.DocumentModification) error
}
