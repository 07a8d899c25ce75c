// Package domain defines the core business entities for geotag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Span: An offset range over document text naming a candidate mention
//   - ReferenceTable: The call-scoped span table results resolve against
//   - TagConfig: The typed configuration surface for one tagging call
//   - GeoEntity: The gazetteer payload attached to a resolved span
//   - GeoAnnotation: A persisted enrichment record
//   - DocumentModification: The per-call audit record
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library (plus google/uuid for identifiers).
// All other packages depend on domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/google/uuid
//   - Cannot Import: Any internal/ package
package domain
