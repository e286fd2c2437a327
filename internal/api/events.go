package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/urlboard/urlboard/internal/metrics"
)

// streamEvents pushes every record transition to the client as a
// server-sent-events stream, one "data:" frame per update. The stream ends
// when the client disconnects or the broadcaster shuts down.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", origin)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := s.broadcaster.Subscribe()
	defer s.broadcaster.Unsubscribe(sub)
	metrics.IncEventSubscribers()
	defer metrics.DecEventSubscribers()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case rec, open := <-sub.C():
			if !open {
				return
			}
			payload, err := json.Marshal(rec)
			if err != nil {
				s.logger.Error("marshal event failed", zap.String("url", rec.URL), zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
