package filter

import "strings"

// TokenKind classifies one command line argument.
type TokenKind int

const (
	TokenURI TokenKind = iota
	TokenAnd
	TokenOr
	TokenNot
	TokenParenOpen
	TokenParenClose
	TokenPredicate
	TokenAction
	TokenSort
	TokenRSort
)

// Predicate enumerates every predicate keyword the classifier knows,
// whether or not the compiler implements it.
type Predicate int

const (
	PredUnknown Predicate = iota
	PredAmin
	PredAnewer
	PredAtime
	PredCmin
	PredCnewer
	PredContext
	PredCtime
	PredEmpty
	PredExecutable
	PredFalse
	PredFstype
	PredGid
	PredGroup
	PredIlname
	PredIname
	PredInum
	PredIpath
	PredIregex
	PredIwholename
	PredLinks
	PredLname
	PredMmin
	PredMtime
	PredName
	PredNewer
	PredNewerXY
	PredNogroup
	PredNouser
	PredPath
	PredPerm
	PredReadable
	PredRegex
	PredSamefile
	PredSize
	PredTrue
	PredType
	PredUid
	PredUsed
	PredUser
	PredWholename
	PredWriteable
	PredXtype
)

// Action enumerates every action keyword the classifier knows.
type Action int

const (
	ActUnknown Action = iota
	ActCount
	ActDelete
	ActExec
	ActExecdir
	ActFls
	ActFprint
	ActFprint0
	ActFprintf
	ActLs
	ActOk
	ActOkdir
	ActPrint
	ActPrint0
	ActPrintf
	ActPrune
	ActQuit
)

var predicates = map[string]Predicate{
	"-amin":       PredAmin,
	"-anewer":     PredAnewer,
	"-atime":      PredAtime,
	"-cmin":       PredCmin,
	"-cnewer":     PredCnewer,
	"-context":    PredContext,
	"-ctime":      PredCtime,
	"-empty":      PredEmpty,
	"-executable": PredExecutable,
	"-false":      PredFalse,
	"-fstype":     PredFstype,
	"-gid":        PredGid,
	"-group":      PredGroup,
	"-ilname":     PredIlname,
	"-iname":      PredIname,
	"-inum":       PredInum,
	"-ipath":      PredIpath,
	"-iregex":     PredIregex,
	"-iwholename": PredIwholename,
	"-links":      PredLinks,
	"-lname":      PredLname,
	"-mmin":       PredMmin,
	"-mtime":      PredMtime,
	"-name":       PredName,
	"-newer":      PredNewer,
	"-newerXY":    PredNewerXY,
	"-nogroup":    PredNogroup,
	"-nouser":     PredNouser,
	"-path":       PredPath,
	"-perm":       PredPerm,
	"-readable":   PredReadable,
	"-regex":      PredRegex,
	"-samefile":   PredSamefile,
	"-size":       PredSize,
	"-true":       PredTrue,
	"-type":       PredType,
	"-uid":        PredUid,
	"-used":       PredUsed,
	"-user":       PredUser,
	"-wholename":  PredWholename,
	"-writeable":  PredWriteable,
	"-xtype":      PredXtype,
}

var actions = map[string]Action{
	"-count":   ActCount,
	"-delete":  ActDelete,
	"-exec":    ActExec,
	"-execdir": ActExecdir,
	"-fls":     ActFls,
	"-fprint":  ActFprint,
	"-fprint0": ActFprint0,
	"-fprintf": ActFprintf,
	"-ls":      ActLs,
	"-ok":      ActOk,
	"-okdir":   ActOkdir,
	"-print":   ActPrint,
	"-print0":  ActPrint0,
	"-printf":  ActPrintf,
	"-prune":   ActPrune,
	"-quit":    ActQuit,
}

var actionNames = map[Action]string{
	ActCount:   "-count",
	ActDelete:  "-delete",
	ActExec:    "-exec",
	ActExecdir: "-execdir",
	ActFls:     "-fls",
	ActFprint:  "-fprint",
	ActFprint0: "-fprint0",
	ActFprintf: "-fprintf",
	ActLs:      "-ls",
	ActOk:      "-ok",
	ActOkdir:   "-okdir",
	ActPrint:   "-print",
	ActPrint0:  "-print0",
	ActPrintf:  "-printf",
	ActPrune:   "-prune",
	ActQuit:    "-quit",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "action(unknown)"
}

func (p Predicate) String() string {
	for name, pred := range predicates {
		if pred == p {
			return name
		}
	}
	return "predicate(unknown)"
}

// Token is the classification of one argument. For predicates and
// actions the Text field keeps the original spelling for error
// messages.
type Token struct {
	Kind TokenKind
	Pred Predicate
	Act  Action
	Text string
}

// First letters that mark an unrecognized dash word as a (bad)
// predicate rather than a (bad) action, mirroring the original
// keyword tables.
const predicateLeads = "agimnrstuwx"

// Classify maps one raw argument to a token. Operators win over the
// predicate and action keyword tables; anything that does not start
// with an operator or a dash is a URI. Classify only reports, it never
// rejects: unknown dash words come back as unknown predicates or
// actions for the parser to refuse.
func Classify(arg string) Token {
	switch arg {
	case "(":
		return Token{Kind: TokenParenOpen, Text: arg}
	case ")":
		return Token{Kind: TokenParenClose, Text: arg}
	case "!", "-not":
		return Token{Kind: TokenNot, Text: arg}
	case "-a", "-and":
		return Token{Kind: TokenAnd, Text: arg}
	case "-o", "-or":
		return Token{Kind: TokenOr, Text: arg}
	case "-sort":
		return Token{Kind: TokenSort, Text: arg}
	case "-rsort":
		return Token{Kind: TokenRSort, Text: arg}
	}

	if len(arg) > 1 && arg[0] == '-' {
		if p, ok := predicates[arg]; ok {
			return Token{Kind: TokenPredicate, Pred: p, Text: arg}
		}
		if a, ok := actions[arg]; ok {
			return Token{Kind: TokenAction, Act: a, Text: arg}
		}
		if strings.ContainsRune(predicateLeads, rune(arg[1])) {
			return Token{Kind: TokenPredicate, Pred: PredUnknown, Text: arg}
		}
		return Token{Kind: TokenAction, Act: ActUnknown, Text: arg}
	}

	return Token{Kind: TokenURI, Text: arg}
}
