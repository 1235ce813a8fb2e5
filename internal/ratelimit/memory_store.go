package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryClockStore is a process-local ClockStore for single-worker
// deployments and tests.
type MemoryClockStore struct {
	mu   sync.Mutex
	next time.Time
}

func NewMemoryClockStore() *MemoryClockStore {
	return &MemoryClockStore{}
}

func (s *MemoryClockStore) ReserveSlot(_ context.Context, spacing time.Duration) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	slot := s.next
	if slot.Before(now) {
		slot = now
	}
	s.next = slot.Add(spacing)
	return slot, nil
}

func (s *MemoryClockStore) Penalize(_ context.Context, cooldown time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next = time.Now().Add(cooldown)
	return nil
}
