// Package fsstore implements the fs: backend: a directory tree walked
// with lstat-level attributes and filtered locally.
package fsstore

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/boolean-maybe/hound/entry"
	"github.com/boolean-maybe/hound/filter"
	"github.com/boolean-maybe/hound/store"
)

func init() {
	store.Register("fs", func(rest string) (store.Backend, error) {
		return New(rest)
	})
}

// Backend walks a directory tree rooted at a path.
type Backend struct {
	id   string
	root string
}

// New builds a backend over the directory at root.
func New(root string) (*Backend, error) {
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}
	return &Backend{id: store.NewInstanceID(), root: root}, nil
}

// Name implements store.Backend.
func (b *Backend) Name() string {
	return "fs:" + b.id
}

// Filter implements store.Backend. The tree is materialized in one
// walk, filtered with the model evaluator, and sorted.
func (b *Backend) Filter(f filter.Node, opts *store.Options) (store.Iterator, error) {
	var matched []*entry.Entry

	err := filepath.WalkDir(b.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		e := newEntry(path, info)
		if filter.Matches(f, e) {
			matched = append(matched, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", b.root, err)
	}

	if opts != nil {
		store.SortEntries(matched, opts.Sorts)
	}
	slog.Debug("walked tree", "backend", b.Name(), "root", b.root, "matched", len(matched))
	return store.NewSliceIterator(matched), nil
}

// Close implements store.Backend. The walk holds no resources past
// Filter, so this is a no-op.
func (b *Backend) Close() error {
	return nil
}

func newEntry(path string, info fs.FileInfo) *entry.Entry {
	e := &entry.Entry{
		Path:   path,
		Name:   filepath.Base(path),
		Size:   info.Size(),
		Blocks: (info.Size() + 511) / 512,
		Type:   entry.TypeFromMode(info.Mode()),
		Mode:   entry.PermBits(info.Mode()),
		MTime:  info.ModTime(),
		ATime:  info.ModTime(),
		CTime:  info.ModTime(),
		Nlink:  1,
	}
	if e.Type == entry.TypeSymlink {
		if target, err := os.Readlink(path); err == nil {
			e.Symlink = target
		}
	}
	// Platform-specific attributes override the portable defaults.
	sysStat(info, e)
	return e
}
