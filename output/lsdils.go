package output

import (
	"fmt"
	"io"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/boolean-maybe/hound/entry"
)

// lsWidths holds the column widths of the -ls output. Columns start
// narrow and ratchet wider whenever a value does not fit, matching
// classic ls -dils behavior.
type lsWidths struct {
	ino    int
	blocks int
	nlink  int
	uid    int
	gid    int
	size   int
}

func defaultLsWidths() lsWidths {
	return lsWidths{ino: 9, blocks: 6, nlink: 3, uid: 8, gid: 8, size: 8}
}

// The special permission bits, by mode-string position.
var lsSpecialBits = [9]uint32{
	0, 0, entry.ModeSetuid,
	0, 0, entry.ModeSetgid,
	0, 0, entry.ModeSticky,
}

// The 9 permission bits to test, by mode-string position.
var lsModeBits = [9]uint32{
	0o400, 0o200, 0o100,
	0o040, 0o020, 0o010,
	0o004, 0o002, 0o001,
}

// modeString renders the 10-character type+permission column,
// including the s/S/t/T special-bit forms.
func modeString(e *entry.Entry) string {
	var buf [10]byte
	buf[0] = typeChar(e.Type)
	for i := 0; i < 9; i++ {
		var mapping string
		switch {
		case e.Mode&lsSpecialBits[i] != 0 && e.Mode&lsModeBits[i] != 0:
			mapping = "..s..s..t"
		case e.Mode&lsSpecialBits[i] != 0:
			mapping = "..S..S..T"
		case e.Mode&lsModeBits[i] != 0:
			mapping = "rwxrwxrwx"
		default:
			mapping = "---------"
		}
		buf[i+1] = mapping[i]
	}
	return string(buf[:])
}

// lsTime renders the timestamp column: "Jan 31 12:00" within the
// current year, "Jan 31  2006" otherwise.
func lsTime(t, now time.Time) string {
	if t.Year() < now.Year() {
		return t.Format("Jan _2  2006")
	}
	return t.Format("Jan _2 15:04")
}

func userName(uid uint32) string {
	if u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil {
		return u.Username
	}
	return strconv.FormatUint(uint64(uid), 10)
}

func groupName(gid uint32) string {
	if g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10)); err == nil {
		return g.Name
	}
	return strconv.FormatUint(uint64(gid), 10)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// ratchet widens a column to fit s and returns the padded value,
// right-aligned.
func ratchet(width *int, s string) string {
	if len(s) > *width {
		*width = len(s)
	}
	return padLeft(s, *width)
}

// ratchetLeft is ratchet for the left-aligned name columns.
func ratchetLeft(width *int, s string) string {
	if len(s) > *width {
		*width = len(s)
	}
	return padRight(s, *width)
}

// printLsDils writes one ls -dils style line for an entry.
func (x *Executor) printLsDils(w io.Writer, e *entry.Entry) {
	blocks := e.Blocks
	if !x.PosixlyCorrect {
		blocks /= 2
	}

	fmt.Fprintf(w, "%s %s %s %s %s %s %s %s %s",
		ratchet(&x.widths.ino, strconv.FormatUint(e.Ino, 10)),
		ratchet(&x.widths.blocks, strconv.FormatInt(blocks, 10)),
		modeString(e),
		ratchet(&x.widths.nlink, strconv.FormatUint(uint64(e.Nlink), 10)),
		ratchetLeft(&x.widths.uid, userName(e.UID)),
		ratchetLeft(&x.widths.gid, groupName(e.GID)),
		ratchet(&x.widths.size, strconv.FormatInt(e.Size, 10)),
		lsTime(e.MTime, time.Now()),
		e.Path,
	)
	if e.Symlink != "" {
		fmt.Fprintf(w, " -> %s", e.Symlink)
	}
	fmt.Fprintln(w)
}
