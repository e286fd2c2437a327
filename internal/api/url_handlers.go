package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/urlboard/urlboard/internal/listing"
	"github.com/urlboard/urlboard/internal/orchestrator"
	"github.com/urlboard/urlboard/internal/record"
	"github.com/urlboard/urlboard/internal/urlnorm"
)

type fetchRequest struct {
	URLs     []string `json:"urls"`
	FetchCSS bool     `json:"fetchCss"`
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var field listing.SortField
	if raw := q.Get("sortBy"); raw != "" {
		parsed, ok := listing.ParseSortField(raw)
		if !ok {
			s.writeError(w, http.StatusBadRequest, "sortBy must be 'createdAt' or 'updatedAt'")
			return
		}
		field = parsed
	}
	order := listing.ParseOrder(q.Get("order"))

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	params := listing.ValidatePageParams(page, limit)

	s.writeData(w, http.StatusOK, s.orch.List(field, order, params))
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		s.writeError(w, http.StatusBadRequest, "'url' query param is missing")
		return
	}

	content, err := s.orch.Content(target)
	switch {
	case errors.Is(err, record.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, record.ErrNotReady):
		s.writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	default:
		s.writeData(w, http.StatusOK, content)
	}
}

func (s *Server) submitFetch(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.URLs) == 0 {
		s.writeError(w, http.StatusBadRequest, "urls must be a non-empty array")
		return
	}
	for _, raw := range req.URLs {
		if !urlShaped(raw) {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid url: %q", raw))
			return
		}
	}

	batch := s.orch.SubmitBatch(req.URLs, orchestrator.Options{FetchCSS: req.FetchCSS})
	s.writeData(w, http.StatusOK, batch)
}

// urlShaped reports whether raw survives normalization as a parseable URL
// with a host.
func urlShaped(raw string) bool {
	parsed, err := url.Parse(urlnorm.Normalize(raw))
	return err == nil && parsed.Host != ""
}
