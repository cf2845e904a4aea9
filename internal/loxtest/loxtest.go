// Package loxtest is a small golden-file test harness for running whole
// `.lox` scripts end to end (scan → parse → resolve → evaluate) and
// snapshotting their observable output, grounded in the teacher's
// TestDWScriptFixtures (internal/interp/fixture_test.go), which drives the
// same kind of fixture directory through go-snaps.MatchSnapshot rather than
// hand-rolled golden files.
package loxtest

import (
	"bytes"
	"fmt"

	"github.com/golox-lang/golox/internal/builtins"
	"github.com/golox-lang/golox/internal/errs"
	"github.com/golox-lang/golox/internal/evaluator"
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/scanner"
)

// Result is the full observable outcome of running one script: everything
// `print` wrote, plus whichever phase failed (at most one is non-nil).
type Result struct {
	Stdout       string
	ParseErrors  *errs.List
	ResolveError *errs.List
	RuntimeError error
}

// Run executes src through the same phases as `golox run`: scan, parse,
// resolve, then interpret, stopping at the first phase that reports a
// problem. Unlike `golox run`, it does not collect the scanner's own error
// list (an ILLEGAL token surfaces as a parse error instead), and clock()
// always returns 0. It never panics; a malformed program is reported through
// Result's fields.
func Run(src string) Result {
	toks := scanner.New(src).ScanTokens()

	stmts, parseErrs := parser.New(toks).Parse()
	if parseErrs.HasErrors() {
		return Result{ParseErrors: parseErrs}
	}

	locals, resolveErrs := resolver.Resolve(stmts)
	if resolveErrs.HasErrors() {
		return Result{ResolveError: resolveErrs}
	}

	var out bytes.Buffer
	h := heap.New(heap.DefaultThreshold)
	eval := evaluator.New(h, &out)
	builtins.Register(h, eval.Globals, func() float64 { return 0 })
	eval.SetLocals(locals)

	err := eval.Interpret(stmts)
	return Result{Stdout: out.String(), RuntimeError: err}
}

// Snapshot renders a Result as a single string suitable for
// snaps.MatchSnapshot: stdout if the program ran cleanly, otherwise the
// error from whichever phase failed, labeled by phase so a snapshot diff
// makes clear what kind of regression occurred.
func (r Result) Snapshot() string {
	switch {
	case r.ParseErrors != nil:
		return fmt.Sprintf("parse error:\n%s", r.ParseErrors.Error())
	case r.ResolveError != nil:
		return fmt.Sprintf("resolve error:\n%s", r.ResolveError.Error())
	case r.RuntimeError != nil:
		return fmt.Sprintf("runtime error:\n%s", r.RuntimeError.Error())
	default:
		return r.Stdout
	}
}
