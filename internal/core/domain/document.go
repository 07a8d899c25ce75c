package domain

// Span is a half-open offset range [Begin, End) over document text,
// together with the covered text itself. A Span is an immutable snapshot
// taken when a query is built; the document store owns the underlying
// annotation.
type Span struct {
	// Begin is the inclusive start offset in the document text.
	Begin int

	// End is the exclusive end offset in the document text.
	End int

	// Text is the substring of the document covered by [Begin, End).
	Text string
}

// Annotation is an existing annotation read from a document, the raw
// material candidate spans are selected from.
type Annotation struct {
	// Type is the annotation type name, e.g. a fully qualified
	// class name in UIMA-style stores.
	Type string

	// Begin is the inclusive start offset.
	Begin int

	// End is the exclusive end offset.
	End int
}

// Document is a plain text document carrying typed annotations.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Text is the full document text annotations offset into.
	Text string

	// Annotations are the existing typed spans over Text.
	Annotations []Annotation
}

// Covered returns the text covered by an annotation, clamped to the
// document bounds. Out-of-range offsets yield an empty string rather
// than a panic; stores validate offsets on load.
func (d *Document) Covered(a Annotation) string {
	if a.Begin < 0 || a.End > len(d.Text) || a.Begin > a.End {
		return ""
	}
	return d.Text[a.Begin:a.End]
}
