// Package gitstore implements the git: backend: the file tree of a
// repository's HEAD commit, with the commit timestamp standing in for
// the file times.
package gitstore

import (
	"fmt"
	"log/slog"
	"path"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/boolean-maybe/hound/entry"
	"github.com/boolean-maybe/hound/filter"
	"github.com/boolean-maybe/hound/store"
)

func init() {
	store.Register("git", func(rest string) (store.Backend, error) {
		return Open(rest)
	})
}

// Backend queries the HEAD tree of a git repository.
type Backend struct {
	id   string
	path string
	repo *git.Repository
}

// Open opens the repository at the given path.
func Open(repoPath string) (*Backend, error) {
	if repoPath == "" {
		repoPath = "."
	}
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", repoPath, err)
	}
	return &Backend{id: store.NewInstanceID(), path: repoPath, repo: repo}, nil
}

// Name implements store.Backend.
func (b *Backend) Name() string {
	return "git:" + b.id
}

// Filter implements store.Backend: enumerates the blobs of the HEAD
// commit tree, synthesizes entries and evaluates the filter model.
func (b *Backend) Filter(f filter.Node, opts *store.Options) (store.Iterator, error) {
	head, err := b.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	commit, err := b.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", head.Hash(), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree of %s: %w", head.Hash(), err)
	}

	when := commit.Committer.When
	var matched []*entry.Entry
	err = tree.Files().ForEach(func(file *object.File) error {
		e, err := newEntry(file, when)
		if err != nil {
			return err
		}
		if filter.Matches(f, e) {
			matched = append(matched, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating tree: %w", err)
	}

	if opts != nil {
		store.SortEntries(matched, opts.Sorts)
	}
	slog.Debug("enumerated HEAD tree", "backend", b.Name(), "commit", head.Hash().String(), "matched", len(matched))
	return store.NewSliceIterator(matched), nil
}

// Close implements store.Backend.
func (b *Backend) Close() error {
	return nil
}

func newEntry(file *object.File, when time.Time) (*entry.Entry, error) {
	e := &entry.Entry{
		Path:   file.Name,
		Name:   path.Base(file.Name),
		Size:   file.Blob.Size,
		Blocks: (file.Blob.Size + 511) / 512,
		Type:   entry.TypeRegular,
		Mode:   uint32(file.Mode) & 0o777,
		Nlink:  1,
		ATime:  when,
		MTime:  when,
		CTime:  when,
	}
	if file.Mode == filemode.Symlink {
		e.Type = entry.TypeSymlink
		e.Mode = 0o777
		target, err := file.Contents()
		if err != nil {
			return nil, fmt.Errorf("reading symlink %s: %w", file.Name, err)
		}
		e.Symlink = target
	}
	return e, nil
}
