package core

import (
	"context"
	"fmt"
	"sync"
)

const defaultActivityLimit = 1024

// MemoryActivitySink keeps the most recent entries in memory, oldest first.
type MemoryActivitySink struct {
	mu      sync.Mutex
	limit   int
	entries []ActivityEntry
}

func NewMemoryActivitySink(limit int) *MemoryActivitySink {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return &MemoryActivitySink{limit: limit}
}

func (s *MemoryActivitySink) Record(_ context.Context, entry ActivityEntry) error {
	if s == nil {
		return fmt.Errorf("core: activity sink is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
	return nil
}

// Entries returns a copy of the recorded entries.
func (s *MemoryActivitySink) Entries() []ActivityEntry {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ActivityEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

var _ ActivitySink = (*MemoryActivitySink)(nil)
