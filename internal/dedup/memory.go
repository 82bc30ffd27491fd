package dedup

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local backend: a bounded set of signatures with
// insertion-order eviction. State is lost on restart.
type Memory struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
	max   int
}

// NewMemory returns a Memory store retaining at most max signatures
// after a trim pass.
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = 1000
	}
	return &Memory{
		seen: make(map[string]struct{}),
		max:  max,
	}
}

func (m *Memory) Seen(ctx context.Context, signature string) (bool, error) {
	m.mu.Lock()
	_, ok := m.seen[signature]
	m.mu.Unlock()
	return ok, nil
}

func (m *Memory) Mark(ctx context.Context, signature string) error {
	m.mu.Lock()
	if _, ok := m.seen[signature]; !ok {
		m.seen[signature] = struct{}{}
		m.order = append(m.order, signature)
	}
	m.mu.Unlock()
	return nil
}

// Len reports the current number of retained signatures.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

// Trim drops the oldest entries until at most max remain. It holds the
// lock for the whole pass so Seen/Mark never observe a half-evicted set.
func (m *Memory) Trim() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.order) <= m.max {
		return
	}
	cut := len(m.order) - m.max
	for _, sig := range m.order[:cut] {
		delete(m.seen, sig)
	}
	kept := make([]string, m.max)
	copy(kept, m.order[cut:])
	m.order = kept
}

// Janitor runs Trim on the given interval until ctx is cancelled.
func (m *Memory) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Trim()
		}
	}
}
