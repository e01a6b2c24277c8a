package entry

import (
	"io/fs"
	"time"
)

// Type is the single-letter file type used by -type arguments and
// stored on every entry.
type Type byte

const (
	TypeBlock   Type = 'b'
	TypeChar    Type = 'c'
	TypeDir     Type = 'd'
	TypeRegular Type = 'f'
	TypeSymlink Type = 'l'
	TypeFifo    Type = 'p'
	TypeSocket  Type = 's'
)

// Permission mode special bits, octal 07000 range.
const (
	ModeSetuid uint32 = 0o4000
	ModeSetgid uint32 = 0o2000
	ModeSticky uint32 = 0o1000
)

// Entry is one filesystem entry as materialized by a backend. All
// attributes are always projected; backends fill in what they know and
// leave the rest at zero values.
type Entry struct {
	Path string // full path inside the backend
	Name string // base name

	Size   int64
	Blocks int64 // 512-byte blocks

	Type Type
	Mode uint32 // 12 permission bits (rwxrwxrwx + suid/sgid/sticky)

	Ino   uint64
	Nlink uint32
	UID   uint32
	GID   uint32

	ATime time.Time
	MTime time.Time
	CTime time.Time

	Symlink string // link target, empty unless Type == TypeSymlink
}

// TypeFromMode maps an fs.FileMode to the entry type letter.
// Regular files map to 'f'.
func TypeFromMode(mode fs.FileMode) Type {
	switch {
	case mode.IsRegular():
		return TypeRegular
	case mode.IsDir():
		return TypeDir
	case mode&fs.ModeSymlink != 0:
		return TypeSymlink
	case mode&fs.ModeCharDevice != 0:
		return TypeChar
	case mode&fs.ModeDevice != 0:
		return TypeBlock
	case mode&fs.ModeNamedPipe != 0:
		return TypeFifo
	case mode&fs.ModeSocket != 0:
		return TypeSocket
	}
	return TypeRegular
}

// PermBits extracts the 12 permission bits from an fs.FileMode.
func PermBits(mode fs.FileMode) uint32 {
	bits := uint32(mode.Perm())
	if mode&fs.ModeSetuid != 0 {
		bits |= ModeSetuid
	}
	if mode&fs.ModeSetgid != 0 {
		bits |= ModeSetgid
	}
	if mode&fs.ModeSticky != 0 {
		bits |= ModeSticky
	}
	return bits
}
