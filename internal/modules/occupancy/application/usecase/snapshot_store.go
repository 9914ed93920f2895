package usecase

import (
	"sync"
	"time"

	"occupancyDash/internal/modules/occupancy/domain"
)

// SnapshotStore holds the most recently applied status. Writes replace the
// snapshot wholesale; readers always get their own copy.
type SnapshotStore struct {
	mu        sync.RWMutex
	current   *domain.DetailedStatus
	version   uint64
	updatedAt time.Time
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Replace stores status as the new snapshot and returns its version.
func (s *SnapshotStore) Replace(status *domain.DetailedStatus) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = status.Clone()
	s.version++
	s.updatedAt = time.Now().UTC()
	return s.version
}

// Current returns a copy of the snapshot, or false while nothing has arrived yet.
func (s *SnapshotStore) Current() (*domain.DetailedStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current.Clone(), true
}

// Version is incremented on every Replace; zero means no snapshot yet.
func (s *SnapshotStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// UpdatedAt is when the current snapshot was stored, zero before the first one.
func (s *SnapshotStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
