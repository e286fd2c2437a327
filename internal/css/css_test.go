package css

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/urlboard/urlboard/internal/record"
)

type stubFetcher struct {
	mu        sync.Mutex
	responses map[string]record.FetchResponse
	errs      map[string]error
	requests  []record.FetchRequest
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		responses: make(map[string]record.FetchResponse),
		errs:      make(map[string]error),
	}
}

func (s *stubFetcher) Fetch(_ context.Context, req record.FetchRequest) (record.FetchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if err, ok := s.errs[req.URL]; ok {
		return record.FetchResponse{}, err
	}
	resp, ok := s.responses[req.URL]
	if !ok {
		return record.FetchResponse{StatusCode: http.StatusNotFound}, nil
	}
	return resp, nil
}

// TestExtractInlineStyles gathers <style> bodies in document order.
func TestExtractInlineStyles(t *testing.T) {
	t.Parallel()

	inliner := NewInliner(newStubFetcher(), nil)
	html := `<html><head>
		<style>body{margin:0}</style>
		<style>p{color:red}</style>
	</head><body></body></html>`

	got := inliner.Extract(context.Background(), html, "https://example.com")
	require.Equal(t, "body{margin:0}\n\np{color:red}", got)
}

// TestExtractFetchesExternalSheets resolves relative hrefs against the page.
func TestExtractFetchesExternalSheets(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.responses["https://example.com/assets/site.css"] = record.FetchResponse{
		StatusCode: http.StatusOK,
		Body:       []byte("a{text-decoration:none}"),
	}
	inliner := NewInliner(fetcher, nil)

	html := `<html><head>
		<style>body{margin:0}</style>
		<link rel="stylesheet" href="/assets/site.css">
	</head></html>`

	got := inliner.Extract(context.Background(), html, "https://example.com/page")
	require.Equal(t, "body{margin:0}\n\na{text-decoration:none}", got)

	require.Len(t, fetcher.requests, 1)
	require.Equal(t, "https://example.com/assets/site.css", fetcher.requests[0].URL)
	require.NotEmpty(t, fetcher.requests[0].Headers.Get("User-Agent"))
}

// TestExtractSwallowsSheetFailures keeps whatever CSS did resolve.
func TestExtractSwallowsSheetFailures(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.errs["https://example.com/broken.css"] = errors.New("connection refused")
	fetcher.responses["https://example.com/ok.css"] = record.FetchResponse{
		StatusCode: http.StatusOK,
		Body:       []byte("h1{font-weight:bold}"),
	}
	inliner := NewInliner(fetcher, nil)

	html := `<html><head>
		<link rel="stylesheet" href="https://example.com/broken.css">
		<link rel="stylesheet" href="https://example.com/missing.css">
		<link rel="stylesheet" href="https://example.com/ok.css">
	</head></html>`

	got := inliner.Extract(context.Background(), html, "https://example.com")
	require.Equal(t, "h1{font-weight:bold}", got)
}

// TestExtractNoStyles returns an empty string for a bare page.
func TestExtractNoStyles(t *testing.T) {
	t.Parallel()

	inliner := NewInliner(newStubFetcher(), nil)
	require.Empty(t, inliner.Extract(context.Background(), "<html><body>plain</body></html>", "https://example.com"))
}
