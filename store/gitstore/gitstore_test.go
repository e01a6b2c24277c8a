package gitstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/boolean-maybe/hound/entry"
	"github.com/boolean-maybe/hound/filter"
	"github.com/boolean-maybe/hound/store"
)

var commitTime = time.Date(2026, time.February, 1, 10, 30, 0, 0, time.UTC)

// initRepo creates a repository with one commit holding README.md and
// docs/guide.md.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docs", "guide.md"), []byte("guide\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"README.md", "docs/guide.md"} {
		if _, err := wt.Add(path); err != nil {
			t.Fatalf("Add(%s): %v", path, err)
		}
	}

	sig := &object.Signature{Name: "tester", Email: "tester@example.com", When: commitTime}
	if _, err := wt.Commit("initial import", &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return dir
}

func collect(t *testing.T, b *Backend, f filter.Node) map[string]*entry.Entry {
	t.Helper()
	it, err := b.Filter(f, &store.Options{Projection: store.ProjectionAll})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	out := make(map[string]*entry.Entry)
	for {
		e, err := it.Next()
		if errors.Is(err, store.ErrNoData) {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out[e.Path] = e
	}
}

func TestBackendHeadTree(t *testing.T) {
	dir := initRepo(t)
	b, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = b.Close() }()

	got := collect(t, b, nil)
	if len(got) != 2 {
		t.Fatalf("enumerated %d files, want 2", len(got))
	}

	readme, ok := got["README.md"]
	if !ok {
		t.Fatal("README.md missing from HEAD tree")
	}
	if readme.Name != "README.md" {
		t.Errorf("name = %q", readme.Name)
	}
	if readme.Size != int64(len("# readme\n")) {
		t.Errorf("size = %d", readme.Size)
	}
	if readme.Type != entry.TypeRegular {
		t.Errorf("type = %c, want f", readme.Type)
	}
	if !readme.MTime.Equal(commitTime) {
		t.Errorf("mtime = %v, want commit time %v", readme.MTime, commitTime)
	}

	guide, ok := got["docs/guide.md"]
	if !ok {
		t.Fatal("docs/guide.md missing from HEAD tree")
	}
	if guide.Name != "guide.md" {
		t.Errorf("nested name = %q, want guide.md", guide.Name)
	}
}

func TestBackendFilterByName(t *testing.T) {
	dir := initRepo(t)
	b, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = b.Close() }()

	a := filter.NewArena()
	defer a.Release()

	p, err := filter.NewPattern(filter.Translate("guide*"), false)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	got := collect(t, b, a.Regex(filter.FieldName, p))
	if len(got) != 1 {
		t.Fatalf("matched %d files, want 1", len(got))
	}
	if _, ok := got["docs/guide.md"]; !ok {
		t.Error("docs/guide.md not matched")
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Open on a plain directory: expected error")
	}
}

func TestFilterWithoutCommits(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	b, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = b.Close() }()

	if _, err := b.Filter(nil, &store.Options{}); err == nil {
		t.Error("Filter on an empty repository: expected HEAD error")
	}
}
