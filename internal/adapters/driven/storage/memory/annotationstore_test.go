package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annolab/geotag/internal/core/domain"
)

func testDocument() domain.Document {
	return domain.Document{
		ID:   "doc-1",
		URI:  "file:///tmp/train.txt",
		Text: "From Berlin to Hamburg by train.",
		Annotations: []domain.Annotation{
			{Type: "LocationMention", Begin: 5, End: 11},
			{Type: "Token", Begin: 0, End: 4},
			{Type: "LocationMention", Begin: 15, End: 22},
		},
	}
}

func TestAnnotationStore_SpansByType(t *testing.T) {
	store := NewAnnotationStore(testDocument())
	ctx := context.Background()

	spans, err := store.SpansByType(ctx, "LocationMention")
	require.NoError(t, err)
	require.Len(t, spans, 2)

	// Document order preserved, covered text derived from offsets.
	assert.Equal(t, domain.Span{Begin: 5, End: 11, Text: "Berlin"}, spans[0])
	assert.Equal(t, domain.Span{Begin: 15, End: 22, Text: "Hamburg"}, spans[1])
}

func TestAnnotationStore_SpansByType_UnknownType(t *testing.T) {
	store := NewAnnotationStore(testDocument())

	spans, err := store.SpansByType(context.Background(), "NoSuchType")
	require.NoError(t, err, "an unknown type is no candidates, not a failure")
	assert.NotNil(t, spans)
	assert.Empty(t, spans)
}

func TestAnnotationStore_SaveAnnotation(t *testing.T) {
	store := NewAnnotationStore(testDocument())
	ctx := context.Background()

	span := domain.Span{Begin: 5, End: 11, Text: "Berlin"}
	ann := domain.NewGeoAnnotation("doc-1", &span, domain.GeoEntity{ID: 2950159, Name: "Berlin"})
	require.NoError(t, store.SaveAnnotation(ctx, ann))

	saved := store.Annotations()
	require.Len(t, saved, 1)
	assert.NotEmpty(t, saved[0].ID)
	assert.Equal(t, "doc-1", saved[0].DocumentID)
	assert.Equal(t, 5, saved[0].Begin)
	assert.Equal(t, 11, saved[0].End)
	assert.Equal(t, int64(2950159), saved[0].Entity.ID)
}

func TestAnnotationStore_SaveModification(t *testing.T) {
	store := NewAnnotationStore(testDocument())
	ctx := context.Background()

	mod := domain.DocumentModification{
		User:      "geotag",
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Comment:   "GeoNames Date: 2023-11-01",
	}
	require.NoError(t, store.SaveModification(ctx, &mod))

	saved := store.Modifications()
	require.Len(t, saved, 1)
	assert.Equal(t, mod, saved[0])
}

func TestAnnotationStore_AccessorsReturnCopies(t *testing.T) {
	store := NewAnnotationStore(testDocument())
	ctx := context.Background()

	span := domain.Span{Begin: 5, End: 11, Text: "Berlin"}
	require.NoError(t, store.SaveAnnotation(ctx, domain.NewGeoAnnotation("doc-1", &span, domain.GeoEntity{ID: 1})))

	anns := store.Annotations()
	anns[0].Entity.Name = "mutated"
	assert.NotEqual(t, "mutated", store.Annotations()[0].Entity.Name)
}
