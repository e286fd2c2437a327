// Package collyfetcher implements record.Fetcher using gocolly.
package collyfetcher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/urlboard/urlboard/internal/record"
)

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher implements record.Fetcher using the Colly collector. Each Fetch
// clones the base collector so requests never share per-visit state.
type Fetcher struct {
	cfg           Config
	transport     http.RoundTripper
	baseCollector *colly.Collector
}

type collectorHooks interface {
	OnRequest(colly.RequestCallback)
	OnResponse(colly.ResponseCallback)
	OnError(colly.ErrorCallback)
}

// New builds a Fetcher with a pooled transport.
func New(cfg Config) *Fetcher {
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true

	transport := newHTTPTransport()
	c.WithTransport(transport)

	return &Fetcher{
		cfg:           cfg,
		transport:     transport,
		baseCollector: c,
	}
}

// Fetch executes a single HTTP GET. HTTP error statuses are returned as
// responses with StatusCode set; only transport-level failures produce an
// error.
func (f *Fetcher) Fetch(ctx context.Context, req record.FetchRequest) (record.FetchResponse, error) {
	var (
		result   record.FetchResponse
		fetchErr error
	)
	start := time.Now()
	collector := f.buildCollector(req, start, &result, &fetchErr)

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(req.URL)
	}()

	var visitErr error
	select {
	case <-ctx.Done():
		return record.FetchResponse{}, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case visitErr = <-done:
	}

	// Visit errors for non-2xx statuses too; when the OnError hook captured a
	// status code the fetch still counts as an HTTP response.
	if result.StatusCode != 0 {
		return result, nil
	}
	if fetchErr != nil {
		return record.FetchResponse{}, fmt.Errorf("fetch %s: %w", req.URL, fetchErr)
	}
	if visitErr != nil {
		return record.FetchResponse{}, fmt.Errorf("fetch %s: %w", req.URL, visitErr)
	}
	return result, nil
}

func (f *Fetcher) buildCollector(
	req record.FetchRequest,
	start time.Time,
	result *record.FetchResponse,
	fetchErr *error,
) *colly.Collector {
	collector := f.baseCollector.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.IgnoreRobotsTxt = true
	timeout := f.cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	collector.SetRequestTimeout(timeout)

	transport := f.transport
	if transport == nil {
		transport = newHTTPTransport()
	}
	collector.WithTransport(transport)

	f.configureCollectorHooks(collector, req, start, result, fetchErr)
	return collector
}

func (f *Fetcher) configureCollectorHooks(
	hooks collectorHooks,
	req record.FetchRequest,
	start time.Time,
	result *record.FetchResponse,
	fetchErr *error,
) {
	hooks.OnRequest(func(r *colly.Request) {
		f.copyHeaders(req, r)
	})

	hooks.OnResponse(func(r *colly.Response) {
		*result = record.FetchResponse{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Headers:    r.Headers.Clone(),
			Body:       append([]byte(nil), r.Body...),
			Duration:   time.Since(start),
		}
	})

	hooks.OnError(func(r *colly.Response, err error) {
		// Colly reports non-2xx statuses here; keep the status code so the
		// caller can distinguish an HTTP failure from a dead connection.
		if r != nil && r.StatusCode != 0 {
			*result = record.FetchResponse{
				URL:        req.URL,
				StatusCode: r.StatusCode,
				Body:       append([]byte(nil), r.Body...),
				Duration:   time.Since(start),
			}
			if r.Request != nil && r.Request.URL != nil {
				result.URL = r.Request.URL.String()
			}
			if r.Headers != nil {
				result.Headers = r.Headers.Clone()
			}
		}
		*fetchErr = err
	})
}

func (f *Fetcher) copyHeaders(req record.FetchRequest, r *colly.Request) {
	if req.Headers == nil {
		return
	}
	for key, values := range req.Headers {
		for _, v := range values {
			r.Headers.Add(key, v)
		}
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
