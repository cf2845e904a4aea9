// Package resolver implements the single static pass of §4.3: it walks the
// parsed AST and annotates every Variable/Assign/This/Super reference with
// a scope distance (the number of enclosing block/function/method scopes
// between the reference and the scope that declares the name), while
// enforcing the handful of static rules Lox checks before a program ever
// runs (no self-reading initializers, no top-level `return`, etc).
//
// Distances are returned as a side table keyed by AST node identity (a Go
// map keyed on the node's pointer, since every node is created exactly once
// by the parser) rather than stored on the node itself, keeping the AST
// package free of any resolver-specific state.
package resolver

import (
	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/errs"
	"github.com/golox-lang/golox/internal/token"
)

// Locals maps a resolver-annotated expression node to its scope distance.
// Expressions absent from the map are globals.
type Locals map[ast.Expr]int

type functionKind uint8

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind uint8

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope maps a name to whether its declaration has finished (false between
// `declare` and `define`, which is what makes `var a = a;` an error: `a` is
// visible in the scope but not yet ready to be read).
type scope map[string]bool

// Resolver runs the static pass described above.
type Resolver struct {
	scopes          []scope
	locals          Locals
	currentFunction functionKind
	currentClass    classKind
	// functionStack mirrors the call stack of resolveFunction invocations;
	// its top, if any, is the *ast.Function currently being resolved, used
	// to populate NestedFunctions (§4.3, §9) when a nested FunctionStmt or
	// method is encountered.
	functionStack []*ast.Function
	errors        *errs.List
}

// New creates an empty Resolver.
func New() *Resolver {
	return &Resolver{locals: Locals{}, errors: &errs.List{}}
}

// Resolve runs the pass over a whole program's top-level statements and
// returns the populated Locals table plus any static errors found.
func Resolve(stmts []ast.Stmt) (Locals, *errs.List) {
	r := New()
	r.resolveStmts(stmts)
	return r.locals, r.errors
}

func (r *Resolver) errorAt(pos token.Position, message string) {
	r.errors.Add(errs.Resolve, pos, "%s", message)
}

// --- scope stack ---------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return // globals permit redeclaration; nothing to track.
	}
	top := r.scopes[len(r.scopes)-1]
	if _, ok := top[name.Lexeme]; ok {
		r.errorAt(name.Pos, "Already a variable with this name in this scope.")
	}
	top[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records the scope distance for a reference to name, if any
// enclosing scope declares it; unresolved names are left unannotated and
// treated as globals at evaluation time.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}
