// Package memory provides the in-process record table. State lives only for
// the process lifetime; there is deliberately no durable backing store.
package memory

import (
	"sync"

	"github.com/urlboard/urlboard/internal/record"
)

// RecordStore maps canonical URLs to their current record. The canonical URL
// is the primary key: later submissions overwrite in place.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]record.Record
	order   []string
}

// NewRecordStore constructs an empty RecordStore.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]record.Record),
	}
}

// Get fetches the current record for a canonical URL.
func (s *RecordStore) Get(url string) (record.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[url]
	return rec, ok
}

// Set overwrites the record stored for rec.URL. First-ever writes register the
// URL's insertion position, which Snapshot preserves.
func (s *RecordStore) Set(rec record.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.URL]; !exists {
		s.order = append(s.order, rec.URL)
	}
	s.records[rec.URL] = rec
}

// Snapshot returns a copy of all current records in insertion order.
func (s *RecordStore) Snapshot() []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]record.Record, 0, len(s.records))
	for _, url := range s.order {
		out = append(out, s.records[url])
	}
	return out
}

// Len reports how many URLs are currently tracked.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
