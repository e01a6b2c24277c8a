package store

import (
	"log/slog"
	"sync"

	"github.com/boolean-maybe/hound/entry"
	"github.com/boolean-maybe/hound/filter"
)

// MemBackend is an in-memory backend. It serves as the reference
// implementation, the test double, and the target of the mem: scheme.
type MemBackend struct {
	mu      sync.RWMutex
	id      string
	entries []*entry.Entry
	closed  bool
}

func init() {
	Register("mem", func(string) (Backend, error) {
		return NewMemBackend(nil), nil
	})
}

// NewMemBackend builds a backend over the given entries. The slice is
// not copied; callers must not mutate it afterwards.
func NewMemBackend(entries []*entry.Entry) *MemBackend {
	return &MemBackend{id: NewInstanceID(), entries: entries}
}

// Add appends entries to the backend.
func (b *MemBackend) Add(entries ...*entry.Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entries...)
}

// Name implements Backend.
func (b *MemBackend) Name() string {
	return "mem:" + b.id
}

// Filter implements Backend: evaluates the filter model against every
// entry and applies the sort list.
func (b *MemBackend) Filter(f filter.Node, opts *Options) (Iterator, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var matched []*entry.Entry
	for _, e := range b.entries {
		if filter.Matches(f, e) {
			matched = append(matched, e)
		}
	}
	if opts != nil {
		SortEntries(matched, opts.Sorts)
	}
	slog.Debug("filtered entries", "backend", b.Name(), "total", len(b.entries), "matched", len(matched))
	return NewSliceIterator(matched), nil
}

// Close implements Backend.
func (b *MemBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
