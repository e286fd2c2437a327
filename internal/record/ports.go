package record

import (
	"context"
	"net/http"
	"time"
)

// Store is the mapping from canonical URL to its current record. Snapshot
// preserves first-submission order; any other ordering is the listing
// package's job.
type Store interface {
	Get(url string) (Record, bool)
	Set(rec Record)
	Snapshot() []Record
	Len() int
}

// FetchRequest captures everything needed to fetch a URL.
type FetchRequest struct {
	URL     string
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation. A non-2xx
// response is still a response: StatusCode is populated and Body may be empty.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Fetcher performs a single bounded HTTP GET. Implementations return an error
// only for transport-level failures; HTTP error statuses come back as
// responses.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (FetchResponse, error)
}

// Clock abstracts wall time for testable timestamps.
type Clock interface {
	Now() time.Time
}

// Publisher receives every record transition, in the order it was written.
type Publisher interface {
	Publish(rec Record)
}
