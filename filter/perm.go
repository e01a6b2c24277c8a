package filter

import (
	"strconv"
	"strings"

	"github.com/boolean-maybe/hound/entry"
)

// ParseMode parses the MODE part of a -perm argument, after any
// leading '/' or '-' has been stripped: either an octal number up to
// 07777 or a comma-separated list of chmod-style symbolic clauses.
// The boolean result reports whether the input was well formed.
func ParseMode(input string) (uint32, bool) {
	if input == "" {
		return 0, false
	}

	c := input[0]
	if c >= '0' && c <= '7' {
		mode, err := strconv.ParseUint(input, 8, 32)
		if err != nil || mode > 0o7777 {
			return 0, false
		}
		return uint32(mode), true
	}
	if c == '8' || c == '9' {
		return 0, false
	}

	// Symbolic clauses apply left to right, each one reading and
	// mutating the same mode value.
	var mode uint32
	rest := input
	for {
		var ok bool
		rest, ok = parseSymbolic(rest, &mode)
		if !ok {
			return 0, false
		}
		if strings.HasPrefix(rest, ",") {
			rest = rest[1:]
			continue
		}
		if rest != "" {
			return 0, false
		}
		return mode, true
	}
}

// parseSymbolic parses one <who>*<op><perm>* clause and applies it to
// *mode. It returns the unconsumed tail and whether the clause was
// well formed up to that tail.
func parseSymbolic(input string, mode *uint32) (string, bool) {
	var user, group, other, all bool

	input = parseSymbolicWho(input, &user, &group, &other, &all)

	if input == "" || (input[0] != '-' && input[0] != '+' && input[0] != '=') {
		// The operation is required.
		return input, false
	}
	op := input[0]
	input = input[1:]

	var perm uint32
	perm, input = parseSymbolicCopyPerm(user, group, other, input, *mode)

	// A copy letter ('u', 'g' or 'o') must be the only perm character
	// in the clause.
	if perm != 0 && input != "" && input[0] != ',' {
		return input, false
	}

	var flags uint32
	flags, input = parseSymbolicPermissions(user, group, other, all, input, *mode)
	perm |= flags

	switch op {
	case '-':
		*mode &^= perm
	case '+':
		*mode |= perm
	case '=':
		if perm != 0 {
			*mode = perm
		}
	}

	return input, true
}

func parseSymbolicWho(input string, user, group, other, all *bool) string {
	for input != "" {
		switch input[0] {
		case 'u':
			*user = true
		case 'g':
			*group = true
		case 'o':
			*other = true
		case 'a':
			*user, *group, *other = true, true, true
			*all = true
		default:
			return input
		}
		input = input[1:]
	}
	return input
}

// parseSymbolicCopyPerm handles the copy-source perm letters 'u', 'g'
// and 'o', which copy that class's existing bits into the classes
// named by who.
func parseSymbolicCopyPerm(user, group, other bool, input string, mode uint32) (uint32, string) {
	var perm uint32

	if input == "" {
		return 0, input
	}

	switch input[0] {
	case 'u':
		bits := mode & 0o700
		if user {
			perm |= bits
		}
		if group {
			perm |= bits >> 3
		}
		if other {
			perm |= bits >> 6
		}
	case 'g':
		bits := mode & 0o070
		if user {
			perm |= bits << 3
		}
		if group {
			perm |= bits
		}
		if other {
			perm |= bits >> 3
		}
	case 'o':
		bits := mode & 0o007
		if user {
			perm |= bits << 6
		}
		if group {
			perm |= bits << 3
		}
		if other {
			perm |= bits
		}
	default:
		return 0, input
	}

	return perm, input[1:]
}

// parseSymbolicPermissions handles the flag perm letters r, w, x, X,
// s and t, honoring the who classes collected earlier.
func parseSymbolicPermissions(user, group, other, all bool, input string, mode uint32) (uint32, string) {
	who := user || group || other
	var perm uint32

	for input != "" {
		switch input[0] {
		case 'r':
			perm |= pick(user, 0o400) | pick(group, 0o040) | pick(other, 0o004) | pick(!who, 0o444)
		case 'w':
			perm |= pick(user, 0o200) | pick(group, 0o020) | pick(other, 0o002) | pick(!who, 0o222)
		case 'x':
			perm |= pick(user, 0o100) | pick(group, 0o010) | pick(other, 0o001) | pick(!who, 0o111)
		case 'X':
			// Execute only when some execute bit is already present
			// anywhere in the mode.
			if mode&0o111 != 0 {
				perm |= pick(user, 0o100) | pick(group, 0o010) | pick(other, 0o001) | pick(!who, 0o111)
			}
		case 's':
			// 's' is ignored, not an error, when only 'o' is given.
			if other && !group && !user {
				break
			}
			perm |= pick(user, entry.ModeSetuid) | pick(group, entry.ModeSetgid)
		case 't':
			// 't' applies when who is empty or includes 'a'; with
			// plain ugo it is accepted but does nothing.
			perm |= pick(!who || all, entry.ModeSticky)
		default:
			return perm, input
		}
		input = input[1:]
	}
	return perm, input
}

func pick(cond bool, bits uint32) uint32 {
	if cond {
		return bits
	}
	return 0
}
