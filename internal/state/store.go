package state

import (
	"context"
	"strings"
	"sync"
	"time"
)

// FetchFunc retrieves the full collection for one resource.
type FetchFunc[E any] func(ctx context.Context) ([]E, error)

// SearchTextFunc extracts the designated filter fields from an entity.
type SearchTextFunc[E any] func(E) []string

// ListStore holds the last-fetched collection for one resource. Refresh
// replaces the whole snapshot; overlapping refreshes are not sequenced, so
// the last response to be applied wins regardless of request order.
type ListStore[E any] struct {
	fetch      FetchFunc[E]
	searchText SearchTextFunc[E]

	mu                  sync.RWMutex
	items               []E
	loaded              bool
	lastUpdated         time.Time
	lastErr             error
	consecutiveFailures int
}

// NewListStore builds a store over the given fetch function. searchText may
// be nil, in which case Filter always returns the full snapshot.
func NewListStore[E any](fetch FetchFunc[E], searchText SearchTextFunc[E]) *ListStore[E] {
	return &ListStore[E]{fetch: fetch, searchText: searchText}
}

// Refresh fetches the collection and replaces the snapshot wholesale. On
// fetch failure the previous snapshot is kept and the error recorded for
// visibility. The fetch runs without the lock held, so concurrent refreshes
// race and whichever response is applied last determines the final state.
func (s *ListStore[E]) Refresh(ctx context.Context) error {
	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		s.lastUpdated = time.Now()
		s.consecutiveFailures++
		return err
	}

	s.items = cloneItems(items)
	s.loaded = true
	s.lastErr = nil
	s.lastUpdated = time.Now()
	s.consecutiveFailures = 0
	return nil
}

// Items returns a copy of the current snapshot in server order.
func (s *ListStore[E]) Items() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// Filter returns the snapshot entries whose designated text fields contain
// query, case-insensitively, preserving snapshot order. It never fetches
// and never mutates the snapshot.
func (s *ListStore[E]) Filter(query string) []E {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || s.searchText == nil {
		return s.Items()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []E
	for _, item := range s.items {
		for _, field := range s.searchText(item) {
			if strings.Contains(strings.ToLower(field), q) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// Loaded reports whether at least one refresh has succeeded. A store that
// has never loaded drives the UI's loading and inline-error states.
func (s *ListStore[E]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LastError returns the most recent refresh failure, or nil after a
// successful refresh.
func (s *ListStore[E]) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LastUpdated returns the time of the most recent refresh attempt.
func (s *ListStore[E]) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// ConsecutiveFailures returns the number of refresh failures since the last
// success.
func (s *ListStore[E]) ConsecutiveFailures() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consecutiveFailures
}

func cloneItems[E any](items []E) []E {
	if len(items) == 0 {
		return nil
	}
	dup := make([]E, len(items))
	copy(dup, items)
	return dup
}
