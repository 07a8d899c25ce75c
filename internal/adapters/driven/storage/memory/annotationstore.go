// Package memory provides an in-memory AnnotationStore over a single
// document. It backs tests and the default CLI flow, where a document is
// loaded from a file, enriched, and written back out.
package memory

import (
	"context"
	"sync"

	"github.com/annolab/geotag/internal/core/domain"
	"github.com/annolab/geotag/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore holds one document and the enrichments written to it.
type AnnotationStore struct {
	mu            sync.RWMutex
	doc           domain.Document
	annotations   []domain.GeoAnnotation
	modifications []domain.DocumentModification
}

// NewAnnotationStore creates a store over the given document.
func NewAnnotationStore(doc domain.Document) *AnnotationStore {
	return &AnnotationStore{doc: doc}
}

// SpansByType enumerates spans of the given annotation type in document
// order. An unknown type yields an empty slice.
func (s *AnnotationStore) SpansByType(_ context.Context, annotationType string) ([]domain.Span, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spans := []domain.Span{}
	for _, a := range s.doc.Annotations {
		if a.Type != annotationType {
			continue
		}
		spans = append(spans, domain.Span{
			Begin: a.Begin,
			End:   a.End,
			Text:  s.doc.Covered(a),
		})
	}
	return spans, nil
}

// SaveAnnotation persists a new entity annotation.
func (s *AnnotationStore) SaveAnnotation(_ context.Context, ann *domain.GeoAnnotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.annotations = append(s.annotations, *ann)
	return nil
}

// SaveModification persists a document modification record.
func (s *AnnotationStore) SaveModification(_ context.Context, mod *domain.DocumentModification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modifications = append(s.modifications, *mod)
	return nil
}

// Document returns the stored document.
func (s *AnnotationStore) Document() domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Annotations returns the persisted entity annotations in write order.
func (s *AnnotationStore) Annotations() []domain.GeoAnnotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GeoAnnotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// Modifications returns the persisted modification records in write order.
func (s *AnnotationStore) Modifications() []domain.DocumentModification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DocumentModification, len(s.modifications))
	copy(out, s.modifications)
	return out
}
