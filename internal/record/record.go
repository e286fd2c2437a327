// Package record defines core types shared across subsystems.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Status represents the lifecycle state of a tracked URL.
type Status string

// Status values stored for each canonical URL.
const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Terminal reports whether no further transition occurs without a fresh
// submission.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Sentinel errors raised by content lookups.
var (
	// ErrNotFound indicates a URL that was never submitted.
	ErrNotFound = errors.New("URL not found")
	// ErrNotReady indicates a URL whose fetch has not succeeded yet.
	ErrNotReady = errors.New("URL content not available yet")
)

// Record is the stored state for one canonical URL. The populated field set is
// determined by Status: Content, FetchTime and CSS exist only on success,
// ErrorMessage and FetchTime only on failure. Timestamps are epoch
// milliseconds.
type Record struct {
	URL       string
	Status    Status
	CreatedAt int64
	UpdatedAt int64

	Content      string
	CSS          string
	FetchTime    int64
	ErrorMessage string
}

// NewLoading builds a loading record, carrying forward createdAt from any
// prior submission of the same URL.
func NewLoading(url string, createdAt, updatedAt time.Time) Record {
	return Record{
		URL:       url,
		Status:    StatusLoading,
		CreatedAt: createdAt.UnixMilli(),
		UpdatedAt: updatedAt.UnixMilli(),
	}
}

// NewSuccess builds a terminal success record.
func NewSuccess(url string, createdAt int64, updatedAt time.Time, content, css string, fetchTime time.Duration) Record {
	return Record{
		URL:       url,
		Status:    StatusSuccess,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt.UnixMilli(),
		Content:   content,
		CSS:       css,
		FetchTime: fetchTime.Milliseconds(),
	}
}

// NewFailed builds a terminal failed record carrying the human-readable cause.
func NewFailed(url string, createdAt int64, updatedAt time.Time, errorMessage string, fetchTime time.Duration) Record {
	return Record{
		URL:          url,
		Status:       StatusFailed,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt.UnixMilli(),
		ErrorMessage: errorMessage,
		FetchTime:    fetchTime.Milliseconds(),
	}
}

// MarshalJSON serializes only the fields that belong to the record's status
// variant, so a loading record never carries ghost success fields on the wire.
func (r Record) MarshalJSON() ([]byte, error) {
	base := map[string]any{
		"url":       r.URL,
		"status":    r.Status,
		"createdAt": r.CreatedAt,
		"updatedAt": r.UpdatedAt,
	}
	switch r.Status {
	case StatusLoading:
	case StatusSuccess:
		base["content"] = r.Content
		base["fetchTime"] = r.FetchTime
		if r.CSS != "" {
			base["css"] = r.CSS
		}
	case StatusFailed:
		base["errorMessage"] = r.ErrorMessage
		base["fetchTime"] = r.FetchTime
	default:
		return nil, fmt.Errorf("marshal record: unknown status %q", r.Status)
	}
	data, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}

// UnmarshalJSON restores a record from its wire form.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		URL          string `json:"url"`
		Status       Status `json:"status"`
		CreatedAt    int64  `json:"createdAt"`
		UpdatedAt    int64  `json:"updatedAt"`
		Content      string `json:"content"`
		CSS          string `json:"css"`
		FetchTime    int64  `json:"fetchTime"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	*r = Record{
		URL:          raw.URL,
		Status:       raw.Status,
		CreatedAt:    raw.CreatedAt,
		UpdatedAt:    raw.UpdatedAt,
		Content:      raw.Content,
		CSS:          raw.CSS,
		FetchTime:    raw.FetchTime,
		ErrorMessage: raw.ErrorMessage,
	}
	return nil
}
