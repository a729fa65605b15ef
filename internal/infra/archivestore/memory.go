package archivestore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/commit-canvas/internal/domain/chart"
	"github.com/yanqian/commit-canvas/pkg/util"
)

type memoryEntry struct {
	archive   chart.Archive
	expiresAt time.Time
}

// MemoryStore keeps archives in process memory. Useful for tests and local dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     util.NowUTC,
	}
}

// Get implements chart.ArchiveStore.
func (s *MemoryStore) Get(_ context.Context, key string) (chart.Archive, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return chart.Archive{}, false, nil
	}
	if util.Expired(s.now(), entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return chart.Archive{}, false, nil
	}
	return entry.archive, true, nil
}

// Save stores a copy of the archive with an optional TTL.
func (s *MemoryStore) Save(_ context.Context, key string, archive chart.Archive, ttl time.Duration) error {
	archive.Data = append([]byte(nil), archive.Data...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		archive:   archive,
		expiresAt: util.Expiry(s.now(), ttl),
	}
	return nil
}

// Len reports the number of cached archives, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ chart.ArchiveStore = (*MemoryStore)(nil)
