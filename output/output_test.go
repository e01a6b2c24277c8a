package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boolean-maybe/hound/filter"
	"github.com/boolean-maybe/hound/store"
	"github.com/boolean-maybe/hound/testutil"
)

func testExecutor(backends ...store.Backend) (*Executor, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	x := &Executor{Backends: backends, Stdout: buf, widths: defaultLsWidths()}
	return x, buf
}

func fixtureBackend() *store.MemBackend {
	return store.NewMemBackend(nil)
}

func TestExecPrint(t *testing.T) {
	b := store.NewMemBackend(nil)
	b.Add(
		testutil.NewEntry("a.txt", 1),
		testutil.NewEntry("b.txt", 2),
	)
	x, buf := testExecutor(b)

	if err := x.Exec(filter.ActPrint, "-print", "", nil, nil); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := buf.String(); got != "a.txt\nb.txt\n" {
		t.Errorf("output = %q", got)
	}
}

func TestExecPrint0(t *testing.T) {
	b := store.NewMemBackend(nil)
	b.Add(testutil.NewEntry("a.txt", 1), testutil.NewEntry("b.txt", 2))
	x, buf := testExecutor(b)

	if err := x.Exec(filter.ActPrint0, "-print0", "", nil, nil); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := buf.String(); got != "a.txt\x00b.txt\x00" {
		t.Errorf("output = %q", got)
	}
}

func TestExecCount(t *testing.T) {
	b := store.NewMemBackend(nil)
	b.Add(
		testutil.NewEntry("a.txt", 1),
		testutil.NewEntry("b.txt", 2),
		testutil.NewEntry("c.log", 3),
	)
	x, buf := testExecutor(b)

	a := filter.NewArena()
	defer a.Release()
	p, err := filter.NewPattern(filter.Translate("*.txt"), false)
	if err != nil {
		t.Fatal(err)
	}

	if err := x.Exec(filter.ActCount, "-count", "", a.Regex(filter.FieldName, p), nil); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := buf.String(); got != "2 matching entries\n" {
		t.Errorf("output = %q", got)
	}
}

func TestExecCountSpansBackends(t *testing.T) {
	b1 := store.NewMemBackend(nil)
	b1.Add(testutil.NewEntry("one", 1))
	b2 := store.NewMemBackend(nil)
	b2.Add(testutil.NewEntry("two", 1), testutil.NewEntry("three", 1))
	x, buf := testExecutor(b1, b2)

	if err := x.Exec(filter.ActCount, "-count", "", nil, nil); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := buf.String(); got != "3 matching entries\n" {
		t.Errorf("output = %q", got)
	}
}

func TestExecQuit(t *testing.T) {
	b := store.NewMemBackend(nil)
	b.Add(testutil.NewEntry("a.txt", 1))
	x, buf := testExecutor(b)

	err := x.Exec(filter.ActQuit, "-quit", "", nil, nil)
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("Exec(-quit) = %v, want ErrQuit", err)
	}
	if buf.Len() != 0 {
		t.Errorf("quit produced output: %q", buf.String())
	}
}

func TestExecQuitOnEmptyBackend(t *testing.T) {
	x, _ := testExecutor(fixtureBackend())

	// No entries means the quit never fires.
	if err := x.Exec(filter.ActQuit, "-quit", "", nil, nil); err != nil {
		t.Fatalf("Exec(-quit) on empty backend = %v", err)
	}
}

func TestExecFprint(t *testing.T) {
	b := store.NewMemBackend(nil)
	b.Add(testutil.NewEntry("a.txt", 1))
	x, buf := testExecutor(b)

	target := filepath.Join(t.TempDir(), "out.list")
	if err := x.Exec(filter.ActFprint, "-fprint", target, nil, nil); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("-fprint wrote to stdout: %q", buf.String())
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading %s: %v", target, err)
	}
	if string(data) != "a.txt\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestExecFprintBadPath(t *testing.T) {
	x, _ := testExecutor(fixtureBackend())

	target := filepath.Join(t.TempDir(), "missing-dir", "out.list")
	if err := x.Exec(filter.ActFprint, "-fprint", target, nil, nil); err == nil {
		t.Error("Exec(-fprint) with unwritable path: expected error")
	}
}

func TestExecLs(t *testing.T) {
	b := store.NewMemBackend(nil)
	e := testutil.NewEntry("notes.txt", 1234)
	e.Ino = 42
	b.Add(e)
	x, buf := testExecutor(b)

	if err := x.Exec(filter.ActLs, "-ls", "", nil, nil); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	line := buf.String()
	for _, part := range []string{"42", "-rw-r--r--", "1234", "notes.txt"} {
		if !strings.Contains(line, part) {
			t.Errorf("ls line %q missing %q", line, part)
		}
	}
}

func TestExecLsSymlinkTarget(t *testing.T) {
	b := store.NewMemBackend(nil)
	e := testutil.NewEntry("link", 0)
	e.Type = 'l'
	e.Symlink = "target.txt"
	b.Add(e)
	x, buf := testExecutor(b)

	if err := x.Exec(filter.ActLs, "-ls", "", nil, nil); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if !strings.Contains(buf.String(), " -> target.txt") {
		t.Errorf("ls line %q missing link target", buf.String())
	}
}

func TestExecUnimplementedAction(t *testing.T) {
	x, _ := testExecutor(fixtureBackend())

	err := x.Exec(filter.ActDelete, "-delete", "", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "not implemented") {
		t.Fatalf("Exec(-delete) = %v, want not implemented", err)
	}
}

func TestExecSortedPrint(t *testing.T) {
	b := store.NewMemBackend(nil)
	b.Add(
		testutil.NewEntry("bravo", 2),
		testutil.NewEntry("alpha", 1),
		testutil.NewEntry("charlie", 3),
	)
	x, buf := testExecutor(b)

	sorts := []filter.SortEntry{{Field: filter.FieldName, Ascending: false}}
	if err := x.Exec(filter.ActPrint, "-print", "", nil, sorts); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := buf.String(); got != "charlie\nbravo\nalpha\n" {
		t.Errorf("output = %q", got)
	}
}
