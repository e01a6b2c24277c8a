// Package testutil holds shared fixtures for backend and compiler
// tests.
package testutil

import (
	"time"

	"github.com/boolean-maybe/hound/entry"
)

// FixtureTime is the reference "now" the aged fixtures are built
// against, so time predicate tests can pin their own clock.
var FixtureTime = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// NewEntry builds a regular file entry with sensible defaults; tests
// override fields with the With* helpers.
func NewEntry(path string, size int64) *entry.Entry {
	name := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			name = path[i+1:]
			break
		}
	}
	return &entry.Entry{
		Path:   path,
		Name:   name,
		Size:   size,
		Blocks: (size + 511) / 512,
		Type:   entry.TypeRegular,
		Mode:   0o644,
		Ino:    1,
		Nlink:  1,
		UID:    1000,
		GID:    1000,
		ATime:  FixtureTime,
		MTime:  FixtureTime,
		CTime:  FixtureTime,
	}
}

// WithType sets the entry's type letter.
func WithType(e *entry.Entry, t entry.Type) *entry.Entry {
	e.Type = t
	return e
}

// WithMode sets the entry's permission bits.
func WithMode(e *entry.Entry, mode uint32) *entry.Entry {
	e.Mode = mode
	return e
}

// WithAge sets all three timestamps to the given duration before
// FixtureTime.
func WithAge(e *entry.Entry, age time.Duration) *entry.Entry {
	t := FixtureTime.Add(-age)
	e.ATime, e.MTime, e.CTime = t, t, t
	return e
}

// AgedEntries is a standard spread of file ages for time predicate
// tests: half a day, two days and five days old.
func AgedEntries() []*entry.Entry {
	return []*entry.Entry{
		WithAge(NewEntry("half-day.txt", 100), 12*time.Hour),
		WithAge(NewEntry("two-days.txt", 200), 48*time.Hour),
		WithAge(NewEntry("five-days.txt", 300), 120*time.Hour),
	}
}
