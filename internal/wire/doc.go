// Package wire defines the JSON envelopes exchanged with the gazetteer
// service and their strict encode/decode rules.
//
// The channel is plain JSON and stateless from the service's point of
// view: the only continuity between request and response is the string
// reference carried on each query entry and echoed on each result entry.
// Field names are part of the service contract and must not change.
package wire
