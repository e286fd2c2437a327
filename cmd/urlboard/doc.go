// Package main hosts the URL board service entrypoint.
//
// Architecture overview:
//   - HTTP API: internal/api.Server exposes health, metrics, and URL record
//     endpoints. Batch submissions are validated and normalized before loading
//     records are written, so a rejected batch writes nothing.
//   - Fetch pipeline: the orchestrator spawns one goroutine per submitted URL
//     under a detached, timeout-bounded context. Each fetch resolves to exactly
//     one terminal record (success or failed); HTTP error statuses become failed
//     records rather than API errors. Optional CSS enrichment runs through a
//     separate goquery-based inliner with its own fetch timeout.
//   - Live updates: every record transition is fanned out by the broadcaster to
//     per-subscriber buffered channels and streamed over /api/url/events as
//     server-sent events. Publishing never blocks; slow subscribers drop frames.
//   - Configuration & plumbing: Viper populates config from env/files (prefix
//     URLBOARD); zap provides structured logging; Prometheus collectors are
//     exported on /metrics. Records live in an in-memory store keyed by
//     canonical URL, so state does not survive a restart.
//
// Operational notes:
//   - Shutdown: SIGINT/SIGTERM closes the broadcaster first, ending every open
//     event stream, then drains the HTTP server with a 10s grace period.
//   - Run locally: go run ./cmd/urlboard -config config.yaml (or rely solely on
//     env overrides such as URLBOARD_SERVER_PORT and URLBOARD_FETCH_TIMEOUT_SECONDS).
package main
