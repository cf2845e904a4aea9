package resolver

import "github.com/golox-lang/golox/internal/ast"

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		r.declare(s.Fn.Name)
		r.define(s.Fn.Name)
		r.noteNested(s.Fn)
		r.resolveFunction(s.Fn, fnFunction)
	case *ast.Return:
		r.resolveReturn(s)
	case *ast.ClassStmt:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveReturn(s *ast.Return) {
	if r.currentFunction == fnNone {
		r.errorAt(s.Keyword.Pos, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == fnInitializer {
			r.errorAt(s.Keyword.Pos, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
}

// noteNested links fn into the NestedFunctions list of whatever Function is
// currently being resolved (§4.3/§9), so the GC can reach fn transitively
// through its enclosing Function even before any Closure captures it.
func (r *Resolver) noteNested(fn *ast.Function) {
	if len(r.functionStack) == 0 {
		return
	}
	enclosing := r.functionStack[len(r.functionStack)-1]
	enclosing.NestedFunctions = append(enclosing.NestedFunctions, fn)
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	r.functionStack = append(r.functionStack, fn)

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.functionStack = r.functionStack[:len(r.functionStack)-1]
	r.currentFunction = enclosingFunction
}

// resolveClass installs the super-scope/this-scope layout exactly as in the
// reference resolver (§9 Open Question: the evaluator must install the same
// two scopes in the same order at call time, or distances computed here are
// wrong): an outer "super" scope exists only when there is a superclass,
// and an inner "this" scope always exists around every method body.
func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorAt(s.Superclass.Name.Pos, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.noteNested(method)
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}
