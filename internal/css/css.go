// Package css extracts and inlines stylesheet text from fetched pages.
package css

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/urlboard/urlboard/internal/record"
)

const sheetUserAgent = "Mozilla/5.0 (compatible; URL-Fetcher/1.0)"

// Inliner collects inline <style> bodies and external stylesheets referenced
// by a page. Every failure is swallowed: CSS is a best-effort enrichment and
// must never fail the record it decorates.
type Inliner struct {
	fetcher record.Fetcher
	logger  *zap.Logger
}

// NewInliner wires the fetcher used for external stylesheet downloads.
func NewInliner(fetcher record.Fetcher, logger *zap.Logger) *Inliner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inliner{fetcher: fetcher, logger: logger}
}

// Extract parses html, gathers <style> contents in document order, then
// fetches each link[rel=stylesheet] href resolved against baseURL. The blocks
// are joined with blank lines. An unparseable document or failed sheet fetch
// yields a shorter result, never an error.
func (i *Inliner) Extract(ctx context.Context, html, baseURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		i.logger.Debug("css extraction skipped: unparseable document",
			zap.String("url", baseURL), zap.Error(err))
		return ""
	}

	var blocks []string
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); text != "" {
			blocks = append(blocks, text)
		}
	})

	base, err := url.Parse(baseURL)
	if err != nil {
		i.logger.Debug("css extraction: invalid base url",
			zap.String("url", baseURL), zap.Error(err))
		return strings.Join(blocks, "\n\n")
	}

	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			i.logger.Debug("css extraction: invalid stylesheet href",
				zap.String("href", href), zap.Error(err))
			return
		}
		sheet := i.fetchSheet(ctx, base.ResolveReference(ref).String())
		if sheet != "" {
			blocks = append(blocks, sheet)
		}
	})

	return strings.Join(blocks, "\n\n")
}

func (i *Inliner) fetchSheet(ctx context.Context, sheetURL string) string {
	if i.fetcher == nil {
		return ""
	}
	resp, err := i.fetcher.Fetch(ctx, record.FetchRequest{
		URL:     sheetURL,
		Headers: http.Header{"User-Agent": {sheetUserAgent}},
	})
	if err != nil {
		i.logger.Warn("stylesheet fetch failed", zap.String("url", sheetURL), zap.Error(err))
		return ""
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		i.logger.Warn("stylesheet fetch returned error status",
			zap.String("url", sheetURL), zap.Int("status", resp.StatusCode))
		return ""
	}
	return string(resp.Body)
}
