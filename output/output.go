// Package output executes actions against backends and formats the
// results.
package output

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/boolean-maybe/hound/entry"
	"github.com/boolean-maybe/hound/filter"
	"github.com/boolean-maybe/hound/store"
)

// ErrQuit reports that a -quit action fired; the caller shuts down
// cleanly with a success status.
var ErrQuit = errors.New("quit requested")

// Executor runs actions against a fixed set of resolved backends. It
// satisfies the parser's ActionFunc contract via Exec.
type Executor struct {
	Backends []store.Backend
	Stdout   io.Writer

	// PosixlyCorrect switches -ls block counts from 1K units to raw
	// 512-byte blocks.
	PosixlyCorrect bool

	widths lsWidths
}

// NewExecutor builds an executor writing to stdout, honoring the
// POSIXLY_CORRECT convention.
func NewExecutor(backends []store.Backend) *Executor {
	return &Executor{
		Backends:       backends,
		Stdout:         os.Stdout,
		PosixlyCorrect: os.Getenv("POSIXLY_CORRECT") != "",
		widths:         defaultLsWidths(),
	}
}

// Exec runs one action over every backend: the pre-action step opens
// the target file for file-based actions, the per-entry step drains
// each backend's iterator, and the post-action step prints the -count
// summary and closes the file.
func (x *Executor) Exec(act filter.Action, name, fileArg string, f filter.Node, sorts []filter.SortEntry) error {
	var w io.Writer = x.Stdout
	var file *os.File

	switch act {
	case filter.ActPrint, filter.ActPrint0, filter.ActLs, filter.ActCount, filter.ActQuit:
	case filter.ActFls, filter.ActFprint, filter.ActFprint0:
		var err error
		file, err = os.Create(fileArg)
		if err != nil {
			return fmt.Errorf("open %s: %w", fileArg, err)
		}
		w = file
	default:
		return fmt.Errorf("%s: not implemented", name)
	}

	slog.Debug("executing action", "action", name, "backends", len(x.Backends))

	total := 0
	var actErr error
	for _, b := range x.Backends {
		n, err := x.find(b, act, w, f, sorts)
		total += n
		if err != nil {
			actErr = err
			break
		}
	}

	if actErr == nil && act == filter.ActCount {
		fmt.Fprintf(x.Stdout, "%d matching entries\n", total)
	}

	if file != nil {
		if err := file.Close(); err != nil && actErr == nil {
			return fmt.Errorf("close %s: %w", fileArg, err)
		}
	}
	return actErr
}

// find drains one backend for one action. Transient iteration errors
// are retried on the spot; anything else but the end-of-data signal is
// fatal.
func (x *Executor) find(b store.Backend, act filter.Action, w io.Writer, f filter.Node, sorts []filter.SortEntry) (int, error) {
	it, err := b.Filter(f, &store.Options{
		Projection: store.ProjectionAll,
		Sorts:      sorts,
	})
	if err != nil {
		return 0, fmt.Errorf("filtering %s: %w", b.Name(), err)
	}

	count := 0
	for {
		e, err := it.Next()
		if err != nil {
			if errors.Is(err, store.ErrAgain) {
				continue
			}
			if errors.Is(err, store.ErrNoData) {
				return count, nil
			}
			return count, fmt.Errorf("iterating %s: %w", b.Name(), err)
		}

		switch act {
		case filter.ActPrint:
			fmt.Fprintf(w, "%s\n", e.Path)
		case filter.ActPrint0:
			fmt.Fprintf(w, "%s\x00", e.Path)
		case filter.ActFprint:
			fmt.Fprintf(w, "%s\n", e.Path)
		case filter.ActFprint0:
			fmt.Fprintf(w, "%s\x00", e.Path)
		case filter.ActLs, filter.ActFls:
			x.printLsDils(w, e)
		case filter.ActCount:
			count++
		case filter.ActQuit:
			return count, ErrQuit
		}
	}
}

// typeChar is the leading character of the -ls mode column. Regular
// files show '-' rather than their type letter.
func typeChar(t entry.Type) byte {
	if t == entry.TypeRegular {
		return '-'
	}
	return byte(t)
}
