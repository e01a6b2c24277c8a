package output

import (
	"testing"
	"time"

	"github.com/boolean-maybe/hound/entry"
	"github.com/boolean-maybe/hound/testutil"
)

func TestModeString(t *testing.T) {
	tests := []struct {
		name string
		typ  entry.Type
		mode uint32
		want string
	}{
		{name: "regular rw-r--r--", typ: entry.TypeRegular, mode: 0o644, want: "-rw-r--r--"},
		{name: "executable", typ: entry.TypeRegular, mode: 0o755, want: "-rwxr-xr-x"},
		{name: "directory", typ: entry.TypeDir, mode: 0o755, want: "drwxr-xr-x"},
		{name: "symlink", typ: entry.TypeSymlink, mode: 0o777, want: "lrwxrwxrwx"},
		{name: "no permissions", typ: entry.TypeRegular, mode: 0, want: "----------"},
		{name: "setuid with execute", typ: entry.TypeRegular, mode: 0o4755, want: "-rwsr-xr-x"},
		{name: "setuid without execute", typ: entry.TypeRegular, mode: 0o4644, want: "-rwSr--r--"},
		{name: "setgid with execute", typ: entry.TypeRegular, mode: 0o2755, want: "-rwxr-sr-x"},
		{name: "setgid without execute", typ: entry.TypeRegular, mode: 0o2644, want: "-rw-r-Sr--"},
		{name: "sticky with execute", typ: entry.TypeDir, mode: 0o1777, want: "drwxrwxrwt"},
		{name: "sticky without execute", typ: entry.TypeDir, mode: 0o1776, want: "drwxrwxrwT"},
		{name: "fifo", typ: entry.TypeFifo, mode: 0o600, want: "prw-------"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.WithMode(testutil.NewEntry("x", 0), tt.mode)
			e.Type = tt.typ
			if got := modeString(e); got != tt.want {
				t.Errorf("modeString(%c, %o) = %q, want %q", tt.typ, tt.mode, got, tt.want)
			}
		})
	}
}

func TestLsTime(t *testing.T) {
	now := time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "same year shows clock",
			t:    time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC),
			want: "Mar  5 14:30",
		},
		{
			name: "old year shows year",
			t:    time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC),
			want: "Dec 31  2024",
		},
		{
			name: "two digit day",
			t:    time.Date(2026, time.January, 15, 8, 5, 0, 0, time.UTC),
			want: "Jan 15 08:05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lsTime(tt.t, now); got != tt.want {
				t.Errorf("lsTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRatchet(t *testing.T) {
	width := 3
	if got := ratchet(&width, "42"); got != " 42" {
		t.Errorf("ratchet narrow = %q", got)
	}
	if got := ratchet(&width, "12345"); got != "12345" {
		t.Errorf("ratchet wide = %q", got)
	}
	if width != 5 {
		t.Errorf("width after widening = %d, want 5", width)
	}
	if got := ratchet(&width, "7"); got != "    7" {
		t.Errorf("ratchet after widening = %q", got)
	}

	lwidth := 4
	if got := ratchetLeft(&lwidth, "ab"); got != "ab  " {
		t.Errorf("ratchetLeft = %q", got)
	}
}

func TestTypeChar(t *testing.T) {
	if c := typeChar(entry.TypeRegular); c != '-' {
		t.Errorf("typeChar(f) = %c, want -", c)
	}
	if c := typeChar(entry.TypeDir); c != 'd' {
		t.Errorf("typeChar(d) = %c, want d", c)
	}
}
