package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local Store with per-entry TTL. It backs tests
// and deployments without Redis.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time

	cleanupTicker *time.Ticker
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewMemoryStore creates a memory store with a background sweep for expired
// entries.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries:       make(map[string]memoryEntry),
		now:           time.Now,
		cleanupTicker: time.NewTicker(time.Hour),
		stopChan:      make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Get returns the value for key, or ErrNotFound when absent or expired.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists || s.now().After(entry.expiresAt) {
		return "", ErrNotFound
	}
	return entry.value, nil
}

// Set stores value under key for ttl.
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.cleanupTicker.C:
			s.sweep()
		case <-s.stopChan:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Close stops the background sweep.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() {
		s.cleanupTicker.Stop()
		close(s.stopChan)
	})
}
