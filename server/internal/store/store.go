package store

import (
	"sync"
	"time"

	"github.com/riskboard/riskboard/pkg/report"
)

// DefaultHistoryLen is how many publications History keeps when New is
// given a non-positive length.
const DefaultHistoryLen = 20

// Entry is a published report together with its revision and publish time.
type Entry struct {
	Report      *report.Report
	Revision    int
	Reason      string
	PublishedAt time.Time
}

// Publication is the metadata of one past Put.
type Publication struct {
	Revision    int       `json:"revision"`
	Reason      string    `json:"reason"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
}

// Store is a thread-safe holder for the current report.
type Store struct {
	mu       sync.RWMutex
	current  *Entry
	history  []Publication
	maxHist  int
	revision int
	now      func() time.Time // injectable for deterministic tests
}

// New creates an empty Store keeping up to historyLen publications.
func New(historyLen int) *Store {
	if historyLen <= 0 {
		historyLen = DefaultHistoryLen
	}
	return &Store{
		maxHist: historyLen,
		now:     time.Now,
	}
}

// Put publishes r as the current report and returns its entry.
// Callers must not modify r after calling Put.
func (s *Store) Put(r *report.Report, reason string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	e := &Entry{
		Report:      r,
		Revision:    s.revision,
		Reason:      reason,
		PublishedAt: s.now(),
	}
	s.current = e
	s.history = append(s.history, Publication{
		Revision:    e.Revision,
		Reason:      reason,
		Title:       r.Options.Title,
		PublishedAt: e.PublishedAt,
	})
	if len(s.history) > s.maxHist {
		s.history = s.history[len(s.history)-s.maxHist:]
	}
	return e
}

// Current returns the latest entry and whether anything has been published.
func (s *Store) Current() (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// History returns the retained publications, newest first.
func (s *Store) History() []Publication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Publication, len(s.history))
	for i, p := range s.history {
		out[len(s.history)-1-i] = p
	}
	return out
}

// Revision returns the revision of the current entry, 0 when empty.
func (s *Store) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}
