// Package evaluator implements the tree-walking evaluator of §4.4–4.6: it
// walks the resolved AST directly (no bytecode, no intermediate form),
// dispatching on node kind with an exhaustive switch in the teacher's
// giant-switch idiom (internal/interp/interpreter.go's `Eval`) rather than
// the visitor double-dispatch the reference implementation uses (§9's
// explicit redesign).
package evaluator

import (
	"fmt"
	"io"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/environment"
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/value"
)

// Evaluator owns the managed heap, the current environment chain, and the
// resolver's distance table. One Evaluator corresponds to one program run
// (a file execution or a whole REPL session — bindings persist across REPL
// lines the same way the global frame persists across top-level statements
// in a single file).
type Evaluator struct {
	Heap    *heap.Heap
	Globals environment.Chain
	env     environment.Chain
	locals  resolver.Locals
	Stdout  io.Writer

	// Trace, when set, makes Interpret emit one line per executed top-level
	// statement to e.Heap.Stderr (§4.10), alongside the heap's own
	// per-GC-cycle trace line.
	Trace bool

	// functionRefs caches the heap.Function ref allocated for each
	// resolved ast.Function, keyed by node identity — see functionRef.
	functionRefs map[*ast.Function]value.Ref
}

// New constructs an Evaluator over h with a fresh global frame. Callers
// evaluating successive REPL lines against the same globals re-resolve each
// line and call SetLocals before Interpret to merge in that line's distances.
func New(h *heap.Heap, stdout io.Writer) *Evaluator {
	globals := environment.New(h)
	return &Evaluator{
		Heap:         h,
		Globals:      globals,
		env:          globals,
		locals:       resolver.Locals{},
		Stdout:       stdout,
		functionRefs: map[*ast.Function]value.Ref{},
	}
}

// SetLocals merges a freshly resolved distance table into the evaluator's
// running table. The REPL resolves and runs one line at a time against a
// shared evaluator, so this must add rather than replace: a closure defined
// on an earlier line keeps its body's entries keyed by that line's AST node
// identities, and those entries must still be present when the closure is
// later called from a subsequent line.
func (e *Evaluator) SetLocals(locals resolver.Locals) {
	for expr, distance := range locals {
		e.locals[expr] = distance
	}
}

// Interpret runs a sequence of top-level statements, collecting garbage
// after each one (§5: "Collection timing... after each top-level
// statement"). It stops and returns the first runtime error encountered, if
// any; statements already executed keep whatever side effects they had.
func (e *Evaluator) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if e.Trace {
			fmt.Fprintf(e.Heap.Stderr, "trace[%s]: %s\n", e.Heap.SessionID, ast.Print(stmt))
		}
		if _, err := e.execute(stmt); err != nil {
			return err
		}
		e.Heap.RunFromEnv(e.env.Ref)
	}
	return nil
}

// control is the statement-execution result: either signalNone (fall
// through to the next statement) or signalReturn (unwind to the nearest
// enclosing call, carrying Value) — the Go-native replacement for the
// reference implementation's thrown ReturnFromLoxFn (§9).
type signal uint8

const (
	signalNone signal = iota
	signalReturn
)

type control struct {
	signal signal
	value  value.Value
}

var noControl = control{signal: signalNone}

func (e *Evaluator) execute(s ast.Stmt) (control, error) {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		_, err := e.evaluate(s.Expression)
		return noControl, err
	case *ast.PrintStmt:
		return e.executePrint(s)
	case *ast.VarStmt:
		return e.executeVar(s)
	case *ast.Block:
		return e.executeBlock(s.Statements, e.env.NewEnclosed())
	case *ast.If:
		return e.executeIf(s)
	case *ast.While:
		return e.executeWhile(s)
	case *ast.FunctionStmt:
		return e.executeFunctionStmt(s)
	case *ast.Return:
		return e.executeReturn(s)
	case *ast.ClassStmt:
		return e.executeClassStmt(s)
	default:
		return noControl, fmt.Errorf("evaluator: unhandled statement type %T", s)
	}
}

func (e *Evaluator) executePrint(s *ast.PrintStmt) (control, error) {
	v, err := e.evaluate(s.Expression)
	if err != nil {
		return noControl, err
	}
	fmt.Fprintln(e.Stdout, e.Heap.Describe(v))
	return noControl, nil
}

func (e *Evaluator) executeVar(s *ast.VarStmt) (control, error) {
	v := value.Nil
	if s.Initializer != nil {
		var err error
		v, err = e.evaluate(s.Initializer)
		if err != nil {
			return noControl, err
		}
	}
	e.env.Define(s.Name.Lexeme, v)
	return noControl, nil
}

// executeBlock runs stmts in scope, restoring the caller's environment on
// every exit path — normal completion, a runtime error, or a return signal
// (§4.5, §9's rooting requirement: the current environment must always be a
// reachable frame for GC marking).
func (e *Evaluator) executeBlock(stmts []ast.Stmt, scope environment.Chain) (control, error) {
	previous := e.env
	e.env = scope
	defer func() { e.env = previous }()

	for _, stmt := range stmts {
		ctrl, err := e.execute(stmt)
		if err != nil {
			return noControl, err
		}
		if ctrl.signal != signalNone {
			return ctrl, nil
		}
	}
	return noControl, nil
}

func (e *Evaluator) executeIf(s *ast.If) (control, error) {
	cond, err := e.evaluate(s.Condition)
	if err != nil {
		return noControl, err
	}
	if cond.IsTruthy() {
		return e.execute(s.Then)
	}
	if s.Else != nil {
		return e.execute(s.Else)
	}
	return noControl, nil
}

func (e *Evaluator) executeWhile(s *ast.While) (control, error) {
	for {
		cond, err := e.evaluate(s.Condition)
		if err != nil {
			return noControl, err
		}
		if !cond.IsTruthy() {
			return noControl, nil
		}
		ctrl, err := e.execute(s.Body)
		if err != nil {
			return noControl, err
		}
		if ctrl.signal != signalNone {
			return ctrl, nil
		}
	}
}

// executeFunctionStmt allocates a Closure capturing the *current*
// environment (lexical capture, §4.5) and binds it by name.
func (e *Evaluator) executeFunctionStmt(s *ast.FunctionStmt) (control, error) {
	closureRef := e.makeClosure(s.Fn, e.env.Ref, false)
	e.env.Define(s.Fn.Name.Lexeme, value.Callable(closureRef))
	return noControl, nil
}

func (e *Evaluator) executeReturn(s *ast.Return) (control, error) {
	v := value.Nil
	if s.Value != nil {
		var err error
		v, err = e.evaluate(s.Value)
		if err != nil {
			return noControl, err
		}
	}
	return control{signal: signalReturn, value: v}, nil
}

// makeClosure wraps decl's heap.Function (registering it and every Function
// lexically nested inside it, the first time either is seen) in a fresh
// Closure over env.
func (e *Evaluator) makeClosure(decl *ast.Function, env value.Ref, isInitializer bool) value.Ref {
	return e.Heap.NewClosure(&heap.Closure{Function: e.functionRef(decl), Env: env, IsInitializer: isInitializer})
}

// functionRef returns the heap.Function ref for decl, allocating (and
// caching) it on first use. Caching matters because a nested FunctionStmt
// is registered twice in the source of truth — once eagerly, as an entry in
// its enclosing Function's NestedFunctions (so the GC can reach it before
// any Closure captures it, §4.2/§9), and again when control actually
// reaches that inner function's declaration and wraps it in a Closure; both
// must resolve to the same heap object.
func (e *Evaluator) functionRef(decl *ast.Function) value.Ref {
	if ref, ok := e.functionRefs[decl]; ok {
		return ref
	}
	nested := make([]value.Ref, len(decl.NestedFunctions))
	for i, inner := range decl.NestedFunctions {
		nested[i] = e.functionRef(inner)
	}
	ref := e.Heap.NewFunction(&heap.Function{Decl: decl, Nested: nested})
	e.functionRefs[decl] = ref
	return ref
}
