// Package filter compiles find-style command line expressions into an
// immutable filter DAG plus an ordered sort specification.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/boolean-maybe/hound/entry"
)

// Field identifies the entry attribute a comparison or sort applies to.
type Field int

const (
	FieldName Field = iota
	FieldPath
	FieldSize
	FieldType
	FieldPerm
	FieldATime
	FieldMTime
	FieldCTime
	FieldIno
	FieldNlink
	FieldUID
	FieldGID
)

var fieldNames = map[Field]string{
	FieldName:  "name",
	FieldPath:  "path",
	FieldSize:  "size",
	FieldType:  "type",
	FieldPerm:  "perm",
	FieldATime: "atime",
	FieldMTime: "mtime",
	FieldCTime: "ctime",
	FieldIno:   "ino",
	FieldNlink: "nlink",
	FieldUID:   "uid",
	FieldGID:   "gid",
}

func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// ParseField maps a -sort/-rsort argument to a Field.
func ParseField(s string) (Field, error) {
	for f, name := range fieldNames {
		if name == s {
			return f, nil
		}
	}
	return 0, Usagef("unknown field: `%s'", s)
}

// Operator is a comparison operator. Operators are total over their
// operand's type; there is no partial-ordering ambiguity.
type Operator int

const (
	OpEqual Operator = iota
	OpStrictlyGreater
	OpStrictlyLower
	OpBitsAllSet
	OpBitsAnySet
	OpRegexMatch
)

// LogicalOp tags a composite node.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
	LogicalNot
)

// Node is one filter in the compiled DAG. A nil Node matches every
// entry; composite nodes may legitimately hold nil children (the
// implicit match-all context at the start of a parse level).
type Node interface {
	// matches evaluates the node against a fully projected entry.
	matches(e *entry.Entry) bool
}

// Matches evaluates a filter against an entry, treating nil as
// match-all. This is the model evaluation backends use.
func Matches(n Node, e *entry.Entry) bool {
	if n == nil {
		return true
	}
	return n.matches(e)
}

// Pattern is a compiled regex operand. Source is the translated
// PCRE-style regex exactly as a backend would receive it; the compiled
// form used for local evaluation swaps the trailing (?!\n)$ lookahead
// for \z, which is equivalent under Go's regexp semantics.
type Pattern struct {
	Source          string
	CaseInsensitive bool

	re *regexp.Regexp
}

// NewPattern compiles a translated regex source for model evaluation.
func NewPattern(source string, caseInsensitive bool) (*Pattern, error) {
	goSource := source
	if strings.HasSuffix(goSource, `(?!\n)$`) {
		goSource = strings.TrimSuffix(goSource, `(?!\n)$`) + `\z`
	}
	if caseInsensitive {
		goSource = "(?i)" + goSource
	}
	re, err := regexp.Compile(goSource)
	if err != nil {
		return nil, fmt.Errorf("compiling regex %q: %w", source, err)
	}
	return &Pattern{Source: source, CaseInsensitive: caseInsensitive, re: re}, nil
}

// MatchString reports whether the pattern matches s.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// CompareNode is a leaf comparing one entry field against a value.
// Exactly one of Int/Pattern is meaningful, depending on Op.
type CompareNode struct {
	Field   Field
	Op      Operator
	Int     int64
	Pattern *Pattern
}

func (c *CompareNode) matches(e *entry.Entry) bool {
	if c.Op == OpRegexMatch {
		switch c.Field {
		case FieldPath:
			return c.Pattern.MatchString(e.Path)
		default:
			return c.Pattern.MatchString(e.Name)
		}
	}

	var v int64
	switch c.Field {
	case FieldSize:
		v = e.Size
	case FieldType:
		v = int64(e.Type)
	case FieldPerm:
		v = int64(e.Mode)
	case FieldATime:
		v = e.ATime.Unix()
	case FieldMTime:
		v = e.MTime.Unix()
	case FieldCTime:
		v = e.CTime.Unix()
	case FieldIno:
		v = int64(e.Ino)
	case FieldNlink:
		v = int64(e.Nlink)
	case FieldUID:
		v = int64(e.UID)
	case FieldGID:
		v = int64(e.GID)
	}

	switch c.Op {
	case OpEqual:
		return v == c.Int
	case OpStrictlyGreater:
		return v > c.Int
	case OpStrictlyLower:
		return v < c.Int
	case OpBitsAllSet:
		return v&c.Int == c.Int
	case OpBitsAnySet:
		return v&c.Int != 0
	}
	return false
}

// LogicalNode is an AND/OR/NOT composite. AND and OR always have
// exactly two children, NOT exactly one (Left). Children are shared
// references, never copies: the OR rewrite points two siblings at the
// same left-hand subtree, so the structure is a DAG. Nodes are never
// mutated once handed out.
type LogicalNode struct {
	Op    LogicalOp
	Left  Node
	Right Node
}

func (l *LogicalNode) matches(e *entry.Entry) bool {
	switch l.Op {
	case LogicalAnd:
		return Matches(l.Left, e) && Matches(l.Right, e)
	case LogicalOr:
		return Matches(l.Left, e) || Matches(l.Right, e)
	case LogicalNot:
		return !Matches(l.Left, e)
	}
	return false
}

// Arena owns every filter node built during one compiler invocation.
// Allocation is append-only with a single writer; nothing is freed
// individually. Release drops the whole DAG at once when compilation
// and any action execution are done.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Release drops every node the arena owns. The arena must not be used
// afterwards.
func (a *Arena) Release() {
	a.nodes = nil
}

func (a *Arena) keep(n Node) Node {
	a.nodes = append(a.nodes, n)
	return n
}

// Compare allocates a numeric comparison leaf.
func (a *Arena) Compare(f Field, op Operator, v int64) Node {
	return a.keep(&CompareNode{Field: f, Op: op, Int: v})
}

// Regex allocates a regex comparison leaf.
func (a *Arena) Regex(f Field, p *Pattern) Node {
	return a.keep(&CompareNode{Field: f, Op: OpRegexMatch, Pattern: p})
}

// And composes two filters. Either side may be nil (match-all).
func (a *Arena) And(left, right Node) Node {
	return a.keep(&LogicalNode{Op: LogicalAnd, Left: left, Right: right})
}

// Or composes two filters. Either side may be nil (match-all).
func (a *Arena) Or(left, right Node) Node {
	return a.keep(&LogicalNode{Op: LogicalOr, Left: left, Right: right})
}

// Not negates a filter.
func (a *Arena) Not(n Node) Node {
	return a.keep(&LogicalNode{Op: LogicalNot, Left: n})
}

// SortEntry is one (field, direction) pair of the sort specification.
type SortEntry struct {
	Field     Field
	Ascending bool
}

// UsageError marks a malformed command line. The process exits with
// the usage status (EX_USAGE) rather than the generic failure status.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

// Usagef builds a UsageError with a formatted message.
func Usagef(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}
