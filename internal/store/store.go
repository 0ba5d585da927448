package store

import (
	"sync"
	"time"

	"github.com/sprintlens/sprintlens/internal/report"
	"github.com/sprintlens/sprintlens/pkg/types"
)

// Store holds the current dataset snapshot together with the report bundle
// computed from it. Replace swaps both atomically, so readers always see a
// bundle that matches its snapshot.
//
// All methods are safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	snap      *types.Snapshot
	bundle    *report.Bundle
	updatedAt time.Time
	version   int

	now func() time.Time // injectable for deterministic tests
}

// New creates an empty Store. It holds no data until the first Replace.
func New() *Store {
	return &Store{now: time.Now}
}

// Replace computes the report bundle for snap and installs both as the
// current state. On error (bug-ratio precondition violation) the previous
// state is kept untouched.
//
// Callers must not modify snap after calling Replace.
func (s *Store) Replace(snap *types.Snapshot) error {
	bundle, err := report.NewEngine(snap).Build()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.bundle = bundle
	s.updatedAt = s.now()
	s.version++
	return nil
}

// Bundle returns the current report bundle and whether one is loaded.
func (s *Store) Bundle() (*report.Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle, s.bundle != nil
}

// Snapshot returns the current dataset snapshot and whether one is loaded.
func (s *Store) Snapshot() (*types.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snap != nil
}

// UpdatedAt returns when the current state was installed.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Version increments on every successful Replace, starting at 1.
func (s *Store) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
