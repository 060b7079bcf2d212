// Package catalog implements the reload-over-merge pattern shared by
// the list views: a mutation never patches local state, it triggers a
// full refetch, so displayed order and content always match the server.
package catalog

import (
	"context"
	"sync"
)

// Slot is one named piece of list state that at most one in-flight
// request may authoritatively update. Each Refresh is issued a
// monotonically increasing token; a response that is no longer the
// latest issued for the slot is discarded on arrival, resolving the
// last-response-wins race between overlapping refreshes.
type Slot[T any] struct {
	mu     sync.Mutex
	fetch  func(context.Context) ([]T, error)
	items  []T
	loaded bool
	seq    uint64
}

// NewSlot creates a Slot that fills itself with fetch.
func NewSlot[T any](fetch func(context.Context) ([]T, error)) *Slot[T] {
	return &Slot[T]{fetch: fetch}
}

// Refresh performs a fresh full fetch. On failure the slot keeps its
// prior items and the error is returned to the caller; nothing retries.
func (s *Slot[T]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	token := s.seq
	fetch := s.fetch
	s.mu.Unlock()

	items, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		// A newer refresh was issued while this one was in flight.
		return nil
	}
	if err != nil {
		return err
	}
	s.items = items
	s.loaded = true
	return nil
}

// Items returns the current list. The slice is shared; callers treat it
// as read-only.
func (s *Slot[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Loaded reports whether at least one fetch has completed successfully.
func (s *Slot[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}
