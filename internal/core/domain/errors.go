package domain

import "errors"

// Domain errors represent protocol and configuration failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates a configuration value violates a mode
	// constraint. Detected at query-build time, before any I/O.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMalformedResponse indicates the inbound bytes are not a valid
	// UTF-8 JSON result envelope. Reconciliation aborts before any
	// document-store mutation.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnresolvedReference indicates a result named a reference absent
	// from the current call's reference table. The two halves of the
	// protocol are out of sync; the whole call is aborted rather than
	// masking the desynchronisation.
	ErrUnresolvedReference = errors.New("unresolved reference")
)
