package resolver

import "github.com/golox-lang/golox/internal/ast"

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		// no sub-expressions, nothing to resolve.
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Unary:
		r.resolveExpr(e.Operand)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Variable:
		r.resolveVariable(e)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword.Pos, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		r.resolveSuper(e)
	}
}

// resolveVariable enforces "reading a local variable inside its own
// initializer" (§4.3): a name that is declared but not yet defined in the
// innermost scope refers to itself, which is a static error.
func (r *Resolver) resolveVariable(e *ast.Variable) {
	if len(r.scopes) > 0 {
		if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
			r.errorAt(e.Name.Pos, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
}

func (r *Resolver) resolveSuper(e *ast.Super) {
	switch r.currentClass {
	case classNone:
		r.errorAt(e.Keyword.Pos, "Can't use 'super' outside of a class.")
	case classClass:
		r.errorAt(e.Keyword.Pos, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(e, e.Keyword)
}
