// Package store keeps the last link each user submitted, bridging the gap
// between the URL message and the format-selection callback that follows it.
package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the user has not submitted a link
// since the process started.
var ErrNotFound = errors.New("no pending link for user")

// Store is an in-memory, last-write-wins map from user id to the raw URL
// string that user most recently submitted. A callback arriving after the
// user sent a newer link resolves to the newer link; that staleness is
// accepted behavior, not a bug. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	pending map[int64]string
}

func New() *Store {
	return &Store{pending: make(map[int64]string)}
}

// Put records url as the pending link for userID, replacing any earlier one.
func (s *Store) Put(userID int64, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = url
}

// Get returns the pending link for userID, or ErrNotFound.
func (s *Store) Get(userID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	url, ok := s.pending[userID]
	if !ok {
		return "", ErrNotFound
	}
	return url, nil
}
