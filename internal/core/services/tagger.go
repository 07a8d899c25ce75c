package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/annolab/geotag/internal/core/domain"
	"github.com/annolab/geotag/internal/core/ports/driven"
	"github.com/annolab/geotag/internal/core/ports/driving"
	"github.com/annolab/geotag/internal/logger"
	"github.com/annolab/geotag/internal/wire"
)

// Ensure TaggerService implements the interface.
var _ driving.Tagger = (*TaggerService)(nil)

// TaggerService bridges an annotation store and a gazetteer service.
// One Tag call is one strict query-build / round-trip / reconcile
// sequence; the reference table correlating the two halves is created
// fresh inside BuildQuery and never outlives the call.
type TaggerService struct {
	store      driven.AnnotationStore
	channel    driven.QueryChannel
	documentID string
}

// NewTaggerService creates a tagger for one document. The channel may be
// nil when callers only use the BuildQuery/Reconcile pair.
func NewTaggerService(store driven.AnnotationStore, channel driven.QueryChannel, documentID string) *TaggerService {
	return &TaggerService{
		store:      store,
		channel:    channel,
		documentID: documentID,
	}
}

// Tag runs the full tagging call.
func (s *TaggerService) Tag(ctx context.Context, cfg domain.TagConfig) (*domain.TagReport, error) {
	payload, table, err := s.BuildQuery(ctx, cfg)
	if err != nil {
		return nil, err
	}

	response, err := s.channel.RoundTrip(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("gazetteer round trip: %w", err)
	}

	return s.Reconcile(ctx, response, table)
}

// BuildQuery projects candidate spans into an outbound query payload and
// mints the call-scoped reference table. References are assigned in
// span-encounter order starting at 1, and each query entry appears in
// table order exactly once.
func (s *TaggerService) BuildQuery(ctx context.Context, cfg domain.TagConfig) ([]byte, *domain.ReferenceTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	spans, err := s.store.SpansByType(ctx, cfg.AnnotationType)
	if err != nil {
		return nil, nil, fmt.Errorf("enumerate %q spans: %w", cfg.AnnotationType, err)
	}

	table := domain.NewReferenceTable()
	entries := make([]wire.QueryEntry, 0, len(spans))
	for _, span := range spans {
		ref := table.Add(span)
		entries = append(entries, wire.QueryEntry{
			Reference: strconv.Itoa(ref),
			Text:      span.Text,
		})
	}
	logger.Debug("Built query: %d span(s) of type %q, mode %s",
		table.Len(), cfg.AnnotationType, cfg.EffectiveMode())

	payload, err := wire.NewQuery(&cfg, entries).Encode()
	if err != nil {
		return nil, nil, err
	}
	return payload, table, nil
}

// Reconcile applies a response payload against the table minted by the
// matching BuildQuery call. Every result reference is resolved before
// anything is persisted: a single dangling reference means the two halves
// of the protocol are out of sync, and the whole call aborts with the
// document store untouched. On success exactly one modification record is
// written, then one annotation per result in received order. Multiple
// results may enrich the same span.
func (s *TaggerService) Reconcile(ctx context.Context, payload []byte, table *domain.ReferenceTable) (*domain.TagReport, error) {
	envelope, err := wire.DecodeResults(payload)
	if err != nil {
		return nil, err
	}

	annotations := make([]*domain.GeoAnnotation, 0, len(envelope.Results))
	for i, result := range envelope.Results {
		ref, err := strconv.Atoi(result.Reference)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w: reference %q is not an integer",
				i, domain.ErrUnresolvedReference, result.Reference)
		}
		span, ok := table.Resolve(ref)
		if !ok {
			return nil, fmt.Errorf("result %d: %w: reference %q not in 1..%d",
				i, domain.ErrUnresolvedReference, result.Reference, table.Len())
		}
		annotations = append(annotations, domain.NewGeoAnnotation(s.documentID, span, result.Entry.ToDomain()))
	}

	mod := envelope.Modification.ToDomain()
	if err := s.store.SaveModification(ctx, &mod); err != nil {
		return nil, fmt.Errorf("save modification: %w", err)
	}
	for _, ann := range annotations {
		if err := s.store.SaveAnnotation(ctx, ann); err != nil {
			return nil, fmt.Errorf("save annotation for span [%d,%d): %w", ann.Begin, ann.End, err)
		}
	}
	logger.Debug("Reconciled %d result(s) onto %d span(s)", len(annotations), table.Len())

	return &domain.TagReport{
		QueriesSent:      table.Len(),
		AnnotationsAdded: len(annotations),
		Modification:     mod,
	}, nil
}
