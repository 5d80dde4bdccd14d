package events

import "sync"

// Sequencer hands out per-partition sequence numbers starting at 1.
type Sequencer struct {
	mu   sync.Mutex
	next map[string]int64
}

func NewSequencer() *Sequencer {
	return &Sequencer{next: make(map[string]int64)}
}

func (s *Sequencer) Next(partitionKey string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[partitionKey]++
	return s.next[partitionKey]
}

// Forget drops the counter for a partition, e.g. when its session is evicted.
func (s *Sequencer) Forget(partitionKey string) {
	s.mu.Lock()
	delete(s.next, partitionKey)
	s.mu.Unlock()
}
