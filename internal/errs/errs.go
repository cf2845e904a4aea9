// Package errs implements the two error taxonomies of §7: static errors
// (lexical, syntax, and resolve-time) reported with source context and
// accumulated before exit, and runtime errors, which are token-tagged and
// unwind to the top level.
package errs

import (
	"fmt"
	"strings"

	"github.com/golox-lang/golox/internal/token"
)

// Kind distinguishes the phase a StaticError was raised in.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Resolve
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	case Resolve:
		return "Resolve"
	default:
		return "Static"
	}
}

// StaticError is a single compile-time diagnostic: a lexical, syntax, or
// resolve error tied to a source position.
type StaticError struct {
	Kind    Kind
	Pos     token.Position
	Message string
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Pos.Line, e.Message)
}

// Format renders the error with a caret pointing at the offending column,
// using source (the full program text) for context. Used by the CLI under
// --verbose (in the REPL as well); the plain one-line form (Error()) is used
// otherwise.
func (e *StaticError) Format(source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[line %d] %s error: %s\n", e.Pos.Line, e.Kind, e.Message)

	lines := strings.Split(source, "\n")
	if e.Pos.Line >= 1 && e.Pos.Line <= len(lines) {
		line := lines[e.Pos.Line-1]
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		fmt.Fprintf(&b, "%s%s\n", prefix, line)
		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		b.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		b.WriteString("^")
	}
	return b.String()
}

// List accumulates StaticErrors across an entire scan/parse/resolve pass, so
// that a file with several independent mistakes reports all of them in one
// run rather than stopping at the first (§7: "Resolver errors accumulate;
// all are reported before exit.").
type List struct {
	Errors []*StaticError
}

// Add appends a new static error to the list.
func (l *List) Add(kind Kind, pos token.Position, format string, args ...any) {
	l.Errors = append(l.Errors, &StaticError{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any error has been recorded.
func (l *List) HasErrors() bool {
	return len(l.Errors) > 0
}

// Error implements the error interface so a non-empty List can be returned
// and checked with a plain `if err != nil`.
func (l *List) Error() string {
	lines := make([]string, len(l.Errors))
	for i, e := range l.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// FormatAll renders every error in the list with source context, separated
// by blank lines.
func (l *List) FormatAll(source string) string {
	parts := make([]string, len(l.Errors))
	for i, e := range l.Errors {
		parts[i] = e.Format(source)
	}
	return strings.Join(parts, "\n\n")
}

// RuntimeError is a token-tagged runtime failure (§7). It implements error
// and is returned as an ordinary Go error value from evaluate/execute; the
// call protocol never needs to distinguish it from a return signal because
// the two are carried on separate channels (an error return vs. a control
// signal — see the evaluator package).
type RuntimeError struct {
	Token   token.Token
	Message string
}

func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Pos.Line)
}
