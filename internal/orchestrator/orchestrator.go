// Package orchestrator drives each submitted URL through its fetch lifecycle.
package orchestrator

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/urlboard/urlboard/internal/listing"
	"github.com/urlboard/urlboard/internal/metrics"
	"github.com/urlboard/urlboard/internal/record"
	"github.com/urlboard/urlboard/internal/urlnorm"
)

// CSSExtractor produces inlined stylesheet text for a fetched page.
// Extraction is best-effort; implementations return "" instead of failing.
type CSSExtractor interface {
	Extract(ctx context.Context, html, baseURL string) string
}

// Config controls fetch behavior.
//   - FetchTimeout bounds each individual fetch (default 10s).
//   - BaseContext is the parent context for background fetches; they are
//     deliberately detached from the submitting request's context.
type Config struct {
	FetchTimeout time.Duration
	BaseContext  context.Context
}

const defaultFetchTimeout = 10 * time.Second

// Options are per-submission knobs.
type Options struct {
	FetchCSS bool
}

// Orchestrator owns all record mutation. It writes loading records
// synchronously on submission, fetches each URL on its own goroutine, and
// publishes every transition in write order.
type Orchestrator struct {
	store     record.Store
	fetcher   record.Fetcher
	publisher record.Publisher
	clock     record.Clock
	css       CSSExtractor
	cfg       Config
	logger    *zap.Logger

	// writeMu keeps each "write record, then publish" pair atomic so
	// subscribers observe transitions in store order.
	writeMu sync.Mutex
}

// New constructs an Orchestrator.
func New(
	store record.Store,
	fetcher record.Fetcher,
	publisher record.Publisher,
	clock record.Clock,
	css CSSExtractor,
	cfg Config,
	logger *zap.Logger,
) *Orchestrator {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.BaseContext == nil {
		cfg.BaseContext = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		store:     store,
		fetcher:   fetcher,
		publisher: publisher,
		clock:     clock,
		css:       css,
		cfg:       cfg,
		logger:    logger,
	}
}

// SubmitBatch normalizes and deduplicates rawURLs, writes a loading record
// for each canonical URL (carrying forward createdAt on resubmission), and
// returns the batch before any fetch can complete. Fetches run concurrently
// in the background; failures are terminal per URL and isolated from
// siblings.
func (o *Orchestrator) SubmitBatch(rawURLs []string, opts Options) []record.Record {
	urls := urlnorm.NormalizeAll(rawURLs)
	batch := make([]record.Record, 0, len(urls))

	for _, url := range urls {
		createdAt := o.clock.Now()
		if existing, ok := o.store.Get(url); ok {
			createdAt = time.UnixMilli(existing.CreatedAt)
		}
		loading := record.NewLoading(url, createdAt, o.clock.Now())
		o.writeAndPublish(loading)
		batch = append(batch, loading)
	}

	for _, loading := range batch {
		go o.fetchURL(loading.URL, loading.CreatedAt, opts)
	}
	return batch
}

// List returns one page of the current snapshot, optionally sorted. An empty
// sortBy keeps insertion order.
func (o *Orchestrator) List(sortField listing.SortField, order listing.Order, params listing.PageParams) listing.Page[record.Record] {
	records := o.store.Snapshot()
	if sortField != "" {
		records = listing.Sort(records, sortField, order)
	}
	return listing.Paginate(records, params)
}

// Content returns the fetched body for an exact canonical URL. It fails with
// record.ErrNotFound for URLs never submitted and record.ErrNotReady for
// records that have not reached success.
func (o *Orchestrator) Content(url string) (string, error) {
	rec, ok := o.store.Get(url)
	if !ok {
		return "", record.ErrNotFound
	}
	if rec.Status != record.StatusSuccess {
		return "", record.ErrNotReady
	}
	return rec.Content, nil
}

func (o *Orchestrator) fetchURL(url string, createdAt int64, opts Options) {
	ctx, cancel := context.WithTimeout(o.cfg.BaseContext, o.cfg.FetchTimeout)
	defer cancel()

	start := time.Now()
	resp, err := o.fetcher.Fetch(ctx, record.FetchRequest{URL: url})
	elapsed := time.Since(start)

	var rec record.Record
	switch {
	case err != nil:
		rec = record.NewFailed(url, createdAt, o.clock.Now(), err.Error(), elapsed)
		metrics.ObserveFetch(url, "failed", 0, elapsed)
		o.logger.Debug("fetch failed", zap.String("url", url), zap.Error(err))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		rec = record.NewFailed(url, createdAt, o.clock.Now(), msg, elapsed)
		metrics.ObserveFetch(url, "failed", 0, elapsed)
		o.logger.Debug("fetch returned error status", zap.String("url", url), zap.Int("status", resp.StatusCode))
	default:
		content := string(resp.Body)
		cssText := ""
		if opts.FetchCSS && o.css != nil {
			cssText = o.css.Extract(ctx, content, url)
		}
		rec = record.NewSuccess(url, createdAt, o.clock.Now(), content, cssText, elapsed)
		metrics.ObserveFetch(url, "success", len(resp.Body), elapsed)
	}

	o.writeAndPublish(rec)
}

func (o *Orchestrator) writeAndPublish(rec record.Record) {
	o.writeMu.Lock()
	defer o.writeMu.Unlock()
	o.store.Set(rec)
	metrics.SetRecordsTracked(o.store.Len())
	if o.publisher != nil {
		o.publisher.Publish(rec)
	}
}
