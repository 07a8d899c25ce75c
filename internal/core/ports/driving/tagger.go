package driving

import (
	"context"

	"github.com/annolab/geotag/internal/core/domain"
)

// Tagger runs one tagging call: project candidate spans into a gazetteer
// query, send it, and reconcile the response back onto the same spans.
type Tagger interface {
	// Tag runs the full query/round-trip/reconcile sequence for one
	// document-processing call.
	Tag(ctx context.Context, cfg domain.TagConfig) (*domain.TagReport, error)

	// BuildQuery produces the outbound payload and the call-scoped
	// reference table, for callers that own the transport themselves.
	BuildQuery(ctx context.Context, cfg domain.TagConfig) ([]byte, *domain.ReferenceTable, error)

	// Reconcile applies a response against the table minted by the
	// matching BuildQuery call.
	Reconcile(ctx context.Context, payload []byte, table *domain.ReferenceTable) (*domain.TagReport, error)
}
