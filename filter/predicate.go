package filter

import (
	"math"
	"strconv"
	"time"

	"github.com/boolean-maybe/hound/entry"
)

// Time units for the minute- and day-granularity predicates, in
// seconds.
const (
	secondsPerMinute int64 = 60
	secondsPerDay    int64 = 86400
)

func timeField(pred Predicate) Field {
	switch pred {
	case PredAmin, PredAtime:
		return FieldATime
	case PredCmin, PredCtime:
		return FieldCTime
	}
	return FieldMTime
}

// timeDeltaFilter compiles a [+|-]N time predicate argument. '+N'
// means strictly more than N units ago, '-N' strictly less than N
// units ago, and a bare N an exact match widened to the half-open
// range (now-N-unit, now-N).
func timeDeltaFilter(a *Arena, pred Predicate, unitSeconds int64, arg string, now time.Time) (Node, error) {
	field := timeField(pred)

	s := arg
	var sign byte
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		sign = s[0]
		s = s[1:]
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, Usagef("invalid argument `%s' to `%s'", arg, pred)
	}
	if n > uint64(math.MaxInt64/unitSeconds) {
		return nil, Usagef("invalid argument `%s' to `%s': out of range", arg, pred)
	}
	delta := int64(n) * unitSeconds

	then := now.Unix() - delta
	switch sign {
	case '-':
		return a.Compare(field, OpStrictlyGreater, then), nil
	case '+':
		return a.Compare(field, OpStrictlyLower, then), nil
	}
	return a.And(
		a.Compare(field, OpStrictlyGreater, then-unitSeconds),
		a.Compare(field, OpStrictlyLower, then),
	), nil
}

// Size unit suffixes scale N. No suffix means 512-byte blocks.
var sizeUnits = map[byte]int64{
	'c': 1,
	'w': 2,
	'b': 512,
	'k': 1024,
	'M': 1024 * 1024,
	'G': 1024 * 1024 * 1024,
}

// sizeFilter compiles a [+|-]N[cwbkMG] size predicate argument.
// Unlike time predicates, the exact form compares with Equal and does
// not widen to a range.
func sizeFilter(a *Arena, arg string) (Node, error) {
	s := arg
	var sign byte
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		sign = s[0]
		s = s[1:]
	}

	unit := sizeUnits['b']
	if len(s) > 0 {
		if u, ok := sizeUnits[s[len(s)-1]]; ok {
			unit = u
			s = s[:len(s)-1]
		}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, Usagef("invalid argument `%s' to `-size'", arg)
	}
	if n > uint64(math.MaxInt64/unit) {
		return nil, Usagef("invalid argument `%s' to `-size': out of range", arg)
	}
	size := int64(n) * unit

	op := OpEqual
	switch sign {
	case '+':
		op = OpStrictlyGreater
	case '-':
		op = OpStrictlyLower
	}
	return a.Compare(FieldSize, op, size), nil
}

// typeFilter compiles a -type argument: exactly one of the file type
// letters.
func typeFilter(a *Arena, arg string) (Node, error) {
	if len(arg) != 1 {
		return nil, Usagef("arguments to -type should only contain one letter")
	}

	switch entry.Type(arg[0]) {
	case entry.TypeBlock, entry.TypeChar, entry.TypeDir, entry.TypeRegular,
		entry.TypeSymlink, entry.TypeFifo, entry.TypeSocket:
		return a.Compare(FieldType, OpEqual, int64(arg[0])), nil
	}
	return nil, Usagef("unknown argument to -type: %s", arg)
}

// globFilter compiles a -name/-iname/-path/-ipath argument by
// translating the shell glob to a regex leaf.
func globFilter(a *Arena, field Field, glob string, caseInsensitive bool) (Node, error) {
	pattern, err := NewPattern(Translate(glob), caseInsensitive)
	if err != nil {
		return nil, err
	}
	return a.Regex(field, pattern), nil
}

// permFilter compiles a -perm argument. A leading '/' selects
// "any bit set", a leading '-' "all bits set"; otherwise the mode must
// match exactly.
func permFilter(a *Arena, arg string) (Node, error) {
	if arg == "" {
		return nil, Usagef("arguments to -perm should contain at least one digit or a symbolic mode")
	}

	op := OpEqual
	modeArg := arg
	switch arg[0] {
	case '/':
		op = OpBitsAnySet
		modeArg = arg[1:]
	case '-':
		op = OpBitsAllSet
		modeArg = arg[1:]
	}

	mode, ok := ParseMode(modeArg)
	if !ok {
		return nil, Usagef("invalid mode: %s", modeArg)
	}
	return a.Compare(FieldPerm, op, int64(mode)), nil
}
