// Package store defines the backend abstraction the compiled filter
// is executed against, and resolves backend URIs to instances.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/boolean-maybe/hound/entry"
	"github.com/boolean-maybe/hound/filter"
)

var (
	// ErrNoData is the normal termination signal of an iterator, not
	// an error condition.
	ErrNoData = errors.New("no more entries")

	// ErrAgain is a transient condition; callers retry the Next call
	// at the point of occurrence.
	ErrAgain = errors.New("try again")
)

// Projection is the set of attributes a backend is asked to
// materialize per entry.
type Projection uint32

// ProjectionAll requests every known attribute. The compiler never
// requests a subset.
const ProjectionAll = ^Projection(0)

// Options carries the per-query options handed to a backend.
type Options struct {
	Projection Projection
	Sorts      []filter.SortEntry
}

// Iterator is a lazy sequence of entries produced by a backend query.
type Iterator interface {
	// Next returns the next entry, ErrNoData when the sequence is
	// exhausted, or ErrAgain for a transient condition.
	Next() (*entry.Entry, error)
}

// Backend is a queryable metadata store resolved from a URI.
type Backend interface {
	// Name identifies the backend in diagnostics.
	Name() string

	// Filter evaluates a filter tree and returns the matching entries
	// in sort order.
	Filter(f filter.Node, opts *Options) (Iterator, error)

	// Close releases the backend. It is called exactly once, before
	// the process exits.
	Close() error
}

// ResolverFunc builds a backend from the URI part after the scheme.
type ResolverFunc func(rest string) (Backend, error)

var resolvers = map[string]ResolverFunc{}

// Register installs a resolver for a URI scheme. Backend packages
// register themselves at init time.
func Register(scheme string, fn ResolverFunc) {
	resolvers[scheme] = fn
}

// Resolve maps a backend URI to a backend instance. Aliases are
// expanded first: an alias maps a bare name to a full URI.
func Resolve(uri string, aliases map[string]string) (Backend, error) {
	if full, ok := aliases[uri]; ok {
		slog.Debug("expanded backend alias", "alias", uri, "uri", full)
		uri = full
	}

	scheme, rest, ok := strings.Cut(uri, ":")
	if !ok {
		return nil, fmt.Errorf("invalid backend URI %q: missing scheme", uri)
	}
	fn, ok := resolvers[scheme]
	if !ok {
		return nil, fmt.Errorf("invalid backend URI %q: unknown scheme %q", uri, scheme)
	}

	backend, err := fn(rest)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", uri, err)
	}
	slog.Debug("resolved backend", "uri", uri, "backend", backend.Name())
	return backend, nil
}

// NewInstanceID generates a 6-character random ID used to tell apart
// backend instances in log lines.
func NewInstanceID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	id, err := gonanoid.Generate(alphabet, 6)
	if err != nil {
		// Fallback if the random source fails
		return "error0"
	}
	return id
}

// SortEntries orders entries in place by the sort list: the first
// entry is the primary key, later entries break ties. Duplicate fields
// are applied as given.
func SortEntries(entries []*entry.Entry, sorts []filter.SortEntry) {
	if len(sorts) == 0 {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		for _, s := range sorts {
			c := compareField(entries[i], entries[j], s.Field)
			if c == 0 {
				continue
			}
			if s.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compareField(a, b *entry.Entry, f filter.Field) int {
	switch f {
	case filter.FieldName:
		return strings.Compare(a.Name, b.Name)
	case filter.FieldPath:
		return strings.Compare(a.Path, b.Path)
	case filter.FieldType:
		return int(a.Type) - int(b.Type)
	}
	return compareInt64(fieldInt64(a, f), fieldInt64(b, f))
}

func fieldInt64(e *entry.Entry, f filter.Field) int64 {
	switch f {
	case filter.FieldSize:
		return e.Size
	case filter.FieldPerm:
		return int64(e.Mode)
	case filter.FieldATime:
		return e.ATime.Unix()
	case filter.FieldMTime:
		return e.MTime.Unix()
	case filter.FieldCTime:
		return e.CTime.Unix()
	case filter.FieldIno:
		return int64(e.Ino)
	case filter.FieldNlink:
		return int64(e.Nlink)
	case filter.FieldUID:
		return int64(e.UID)
	case filter.FieldGID:
		return int64(e.GID)
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SliceIterator adapts a materialized entry slice to the Iterator
// contract.
type SliceIterator struct {
	entries []*entry.Entry
	pos     int
}

// NewSliceIterator wraps entries in an iterator.
func NewSliceIterator(entries []*entry.Entry) *SliceIterator {
	return &SliceIterator{entries: entries}
}

// Next implements Iterator.
func (it *SliceIterator) Next() (*entry.Entry, error) {
	if it.pos >= len(it.entries) {
		return nil, ErrNoData
	}
	e := it.entries[it.pos]
	it.pos++
	return e, nil
}
