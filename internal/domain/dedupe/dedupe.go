// Package dedupe tracks record ids already admitted at the ingest
// boundary. Merged card datasets routinely repeat printings under one id;
// only the first occurrence may reach the scoring corpus, or frequency
// tables double-count its mechanics.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen record ids.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if
	// not. Returns true if id was already seen, false if it was newly
	// recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with a seen-set. Unbounded mode
// (maxSize <= 0) suits one-pass dataset loads where every id must be
// remembered. Bounded mode keeps the newest maxSize ids and evicts LIFO,
// for long-running merge feeds where memory must stay flat.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	stack   []string
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a deduper with configuration options. The
// default is unbounded.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	return d
}

// SeenAndRecord atomically checks if id was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			// Evict the most recently admitted id so long-lived entries
			// stay pinned.
			last := d.stack[len(d.stack)-1]
			d.stack = d.stack[:len(d.stack)-1]
			delete(d.seen, last)
			d.size.Add(-1)
		}
		d.stack = append(d.stack, id)
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

// Size returns the current number of tracked ids.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
