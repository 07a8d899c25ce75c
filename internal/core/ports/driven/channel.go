package driven

import "context"

// QueryChannel carries exactly one outbound UTF-8 JSON document to the
// gazetteer service and returns exactly one inbound JSON document. The
// channel is opaque: timeouts, retries and request/response correlation
// across concurrent documents belong to the implementation, not the core.
type QueryChannel interface {
	// RoundTrip sends the query bytes and blocks for the response bytes.
	RoundTrip(ctx context.Context, query []byte) ([]byte, error)
}
