package domain

// ReferenceTable correlates outbound query entries with their originating
// spans. References are positive integers assigned in span-encounter order
// starting at 1, so table position n-1 holds reference n.
//
// A ReferenceTable is scoped to exactly one query/reconcile call. It must
// be created fresh per call and passed from the query builder to the
// reconciler as a value, never stored in package state: a table shared
// across concurrent calls would let one document's spans resolve another
// document's results.
type ReferenceTable struct {
	spans []Span
}

// NewReferenceTable creates an empty table for one call.
func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{}
}

// Add appends a span and returns its assigned reference (first span is 1).
func (t *ReferenceTable) Add(span Span) int {
	t.spans = append(t.spans, span)
	return len(t.spans)
}

// Resolve returns the span assigned the given reference. The bool is
// false for references that were never assigned in this call, including
// zero and negative values.
func (t *ReferenceTable) Resolve(reference int) (*Span, bool) {
	if reference < 1 || reference > len(t.spans) {
		return nil, false
	}
	return &t.spans[reference-1], true
}

// Len returns the number of spans in the table.
func (t *ReferenceTable) Len() int {
	return len(t.spans)
}
