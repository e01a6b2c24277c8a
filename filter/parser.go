package filter

import (
	"fmt"
	"log/slog"
	"time"
)

// ActionFunc is invoked by the parser whenever an action token is
// reached. It receives the action, its spelling, the trailing file
// argument for file-based actions (empty otherwise), the filter
// accumulated so far combined with the enclosing context, and a
// snapshot of the sort list. Execution is a blocking side effect:
// parsing resumes when it returns.
type ActionFunc func(act Action, name, fileArg string, f Node, sorts []SortEntry) error

// Parser compiles a find-style token stream into a filter DAG and a
// sort list. It is an explicit cursor over the argument slice; the
// previous token kind is carried across recursion levels so nested
// parses can validate binary-operator placement and callers can tell
// why a recursive parse returned.
type Parser struct {
	arena *Arena
	args  []string
	pos   int
	prev  TokenKind
	sorts []SortEntry
	exec  ActionFunc
	acted bool
	now   time.Time
}

// NewParser builds a parser over args, allocating filter nodes from
// arena. exec is called for every action token; it may be nil only if
// the expression contains no action.
func NewParser(arena *Arena, args []string, exec ActionFunc) *Parser {
	return &Parser{
		arena: arena,
		args:  args,
		prev:  TokenURI,
		exec:  exec,
		now:   time.Now(),
	}
}

// Parse consumes the whole token stream. It returns the compiled
// filter, the accumulated sort list, and whether any action ran (the
// caller runs the default print action when none did).
func (p *Parser) Parse() (Node, []SortEntry, bool, error) {
	f, err := p.parseExpression(nil)
	if err != nil {
		return nil, nil, false, err
	}
	if p.pos != len(p.args) {
		return nil, nil, false, Usagef("you have too many ')'")
	}
	slog.Debug("parsed expression", "args", len(p.args), "nodes", p.arena.Len(), "sorts", len(p.sorts))
	return f, p.sorts, p.acted, nil
}

// parseExpression parses one nesting level. ctx is the filter the
// caller has already accumulated; it seeds action executions and the
// OR rewrite but is never folded into the returned filter. The
// function returns when the stream ends, on a closing parenthesis
// (left at the cursor for the caller), or after an OR absorbed the
// rest of the level.
func (p *Parser) parseExpression(ctx Node) (Node, error) {
	var filter Node
	negate := false

	for p.pos < len(p.args) {
		arg := p.args[p.pos]
		tok := Classify(arg)
		prev := p.prev
		p.prev = tok.Kind

		switch tok.Kind {
		case TokenURI:
			return nil, Usagef("paths must precede expression: %s", arg)

		case TokenAnd, TokenOr:
			switch prev {
			case TokenAction, TokenPredicate, TokenParenClose:
			default:
				return nil, Usagef("invalid expression; you have used a binary operator '%s' with nothing before it.", arg)
			}
			if tok.Kind == TokenAnd {
				// AND is the default combinator between terms; the
				// token itself is a no-op.
				break
			}

			// OR rewrite: the backend evaluates one filter in one
			// scan, so "<A> -o <B>" must compile to a single tree
			// whose match set is exactly A ∪ B. The right-hand parse
			// is seeded with ¬(A ∧ ctx) so any action or nested OR it
			// contains only ever sees entries the left side rejected.
			left := p.arena.And(filter, ctx)
			notLeft := p.arena.Not(left)

			p.pos++ // consume the -o/-or token
			right, err := p.parseExpression(notLeft)
			if err != nil {
				return nil, err
			}
			// The recursive parse stopped at a ')' or at the end of
			// the stream; OR closes off this level too.
			return p.arena.Or(filter, right), nil

		case TokenNot:
			negate = !negate

		case TokenParenOpen:
			p.pos++ // consume the ( token
			sub, err := p.parseExpression(p.arena.And(filter, ctx))
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.args) || p.prev != TokenParenClose {
				return nil, Usagef("invalid expression; I was expecting to find a ')' somewhere but did not see one.")
			}
			if negate {
				sub = p.arena.Not(sub)
				negate = false
			}
			filter = p.arena.And(filter, sub)

		case TokenParenClose:
			if prev == TokenParenOpen {
				return nil, Usagef("invalid expression; empty parentheses are not allowed.")
			}
			// End of a sub-expression; leave the cursor on the ')'
			// for the caller to step over.
			return filter, nil

		case TokenSort, TokenRSort:
			if p.pos+1 >= len(p.args) {
				return nil, Usagef("missing argument to `%s'", arg)
			}
			p.pos++
			field, err := ParseField(p.args[p.pos])
			if err != nil {
				return nil, err
			}
			p.sorts = append(p.sorts, SortEntry{
				Field:     field,
				Ascending: tok.Kind == TokenSort,
			})

		case TokenPredicate:
			leaf, err := p.parsePredicate(tok)
			if err != nil {
				return nil, err
			}
			if negate {
				leaf = p.arena.Not(leaf)
				negate = false
			}
			filter = p.arena.And(filter, leaf)

		case TokenAction:
			if err := p.parseAction(tok, ctx, filter); err != nil {
				return nil, err
			}
		}

		p.pos++
	}

	return filter, nil
}

// parsePredicate compiles the predicate at the cursor and its trailing
// argument into a filter leaf, advancing the cursor past the argument.
func (p *Parser) parsePredicate(tok Token) (Node, error) {
	if tok.Pred == PredUnknown {
		return nil, Usagef("unknown predicate: `%s'", tok.Text)
	}
	if p.pos+1 >= len(p.args) {
		return nil, Usagef("missing argument to `%s'", tok.Text)
	}
	p.pos++
	arg := p.args[p.pos]

	switch tok.Pred {
	case PredAmin, PredCmin, PredMmin:
		return timeDeltaFilter(p.arena, tok.Pred, secondsPerMinute, arg, p.now)
	case PredAtime, PredCtime, PredMtime:
		return timeDeltaFilter(p.arena, tok.Pred, secondsPerDay, arg, p.now)
	case PredName:
		return globFilter(p.arena, FieldName, arg, false)
	case PredIname:
		return globFilter(p.arena, FieldName, arg, true)
	case PredPath:
		return globFilter(p.arena, FieldPath, arg, false)
	case PredIpath:
		return globFilter(p.arena, FieldPath, arg, true)
	case PredType:
		return typeFilter(p.arena, arg)
	case PredSize:
		return sizeFilter(p.arena, arg)
	case PredPerm:
		return permFilter(p.arena, arg)
	}
	return nil, fmt.Errorf("%s: not implemented", tok.Text)
}

// fileActions take a trailing filename argument.
func fileAction(act Action) bool {
	switch act {
	case ActFls, ActFprint, ActFprint0, ActFprintf:
		return true
	}
	return false
}

// parseAction triggers immediate execution of the action at the
// cursor against the filter accumulated so far, combined with the
// enclosing context. Parsing continues afterwards; an action does not
// terminate the expression.
func (p *Parser) parseAction(tok Token, ctx, filter Node) error {
	if tok.Act == ActUnknown {
		return Usagef("unknown action: `%s'", tok.Text)
	}
	if p.exec == nil {
		return fmt.Errorf("%s: no action executor", tok.Text)
	}

	var fileArg string
	if fileAction(tok.Act) {
		if p.pos+1 >= len(p.args) {
			return Usagef("missing argument to `%s'", tok.Text)
		}
		p.pos++
		fileArg = p.args[p.pos]
	}

	sorts := make([]SortEntry, len(p.sorts))
	copy(sorts, p.sorts)

	p.acted = true
	return p.exec(tok.Act, tok.Text, fileArg, p.arena.And(filter, ctx), sorts)
}
