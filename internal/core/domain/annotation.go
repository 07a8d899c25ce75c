package domain

import (
	"time"

	"github.com/google/uuid"
)

// GeoEntity is the gazetteer payload describing one GeoNames record.
type GeoEntity struct {
	// ID is the GeoNames record identifier.
	ID int64

	// Name is the canonical entry name, usually English.
	Name string

	// Latitude and Longitude locate the record.
	Latitude  float64
	Longitude float64

	// FeatureClass and FeatureCode classify the record.
	FeatureClass string
	FeatureCode  string

	// CountryCode is the ISO country code.
	CountryCode string

	// Adm1..Adm4 are administrative division codes, possibly empty.
	Adm1 string
	Adm2 string
	Adm3 string
	Adm4 string

	// Elevation in metres, if the record carries one.
	Elevation *int
}

// GeoAnnotation is a persisted enrichment: a GeoEntity attached to the
// span it was looked up for. Offsets are always copied from the resolved
// span, never taken from the wire.
type GeoAnnotation struct {
	// ID is the unique identifier for the annotation.
	ID string

	// DocumentID links to the enriched document.
	DocumentID string

	// Begin and End are copied from the resolved span.
	Begin int
	End   int

	// Entity is the gazetteer payload, copied verbatim from the result.
	Entity GeoEntity

	// Span is a non-owning back-reference to the span this annotation
	// enriches. It never implies ownership of the span.
	Span *Span
}

// NewGeoAnnotation builds an annotation for a resolved span.
func NewGeoAnnotation(documentID string, span *Span, entity GeoEntity) *GeoAnnotation {
	return &GeoAnnotation{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Begin:      span.Begin,
		End:        span.End,
		Entity:     entity,
		Span:       span,
	}
}

// DocumentModification is a document-level audit record written once per
// successful tagging call.
type DocumentModification struct {
	// User names the component that modified the document.
	User string

	// Timestamp is when the modification happened.
	Timestamp time.Time

	// Comment is free-form provenance, e.g. the gazetteer data date.
	Comment string
}

// TagReport summarises one completed tagging call.
type TagReport struct {
	// QueriesSent is the number of spans projected into the query.
	QueriesSent int

	// AnnotationsAdded is the number of entity annotations persisted.
	AnnotationsAdded int

	// Modification is the audit record persisted for the call.
	Modification DocumentModification
}
