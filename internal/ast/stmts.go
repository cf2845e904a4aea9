package ast

import "github.com/golox-lang/golox/internal/token"

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expression Expr
}

func (s *ExpressionStmt) stmtNode()         {}
func (s *ExpressionStmt) Pos() token.Position { return s.Expression.Pos() }

// PrintStmt evaluates an expression and writes its canonical string form.
type PrintStmt struct {
	Keyword    token.Token
	Expression Expr
}

func (s *PrintStmt) stmtNode()         {}
func (s *PrintStmt) Pos() token.Position { return s.Keyword.Pos }

// VarStmt declares a new binding in the current environment. Initializer is
// nil when the declaration has no "= expr" clause, in which case the bound
// value is Nil.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func (s *VarStmt) stmtNode()         {}
func (s *VarStmt) Pos() token.Position { return s.Name.Pos }

// Block introduces a new lexical scope around a list of statements.
type Block struct {
	LeftBrace  token.Token
	Statements []Stmt
}

func (s *Block) stmtNode()         {}
func (s *Block) Pos() token.Position { return s.LeftBrace.Pos }

// If runs Then if Condition is truthy, else Else (which may be nil).
type If struct {
	Keyword   token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (s *If) stmtNode()         {}
func (s *If) Pos() token.Position { return s.Keyword.Pos }

// While repeatedly runs Body while Condition is truthy.
type While struct {
	Keyword   token.Token
	Condition Expr
	Body      Stmt
}

func (s *While) stmtNode()         {}
func (s *While) Pos() token.Position { return s.Keyword.Pos }

// Function is a compiled function/method declaration: name, parameters, and
// body. It is shared by FunctionStmt (top-level/local declarations) and by
// ClassStmt's Methods list.
//
// NestedFunctions is populated by the resolver (§4.3, §9 "Static
// nested-function list"): it lists every Function literal lexically nested
// in this one's body, discovered during resolution, so the garbage collector
// can mark inner functions reachable from their enclosing Function even
// before any Closure has captured them.
type Function struct {
	Name            token.Token
	Params          []token.Token
	Body            []Stmt
	NestedFunctions []*Function
}

func (f *Function) Pos() token.Position { return f.Name.Pos }

// FunctionStmt declares a named function in the current environment,
// wrapping Fn in a Closure that captures the current environment.
type FunctionStmt struct {
	Fn *Function
}

func (s *FunctionStmt) stmtNode()         {}
func (s *FunctionStmt) Pos() token.Position { return s.Fn.Pos() }

// Return unwinds the innermost enclosing call, yielding Value (Nil if the
// return has no expression).
type Return struct {
	Keyword token.Token
	Value   Expr
}

func (s *Return) stmtNode()         {}
func (s *Return) Pos() token.Position { return s.Keyword.Pos }

// ClassStmt declares a class: optional superclass reference, and methods
// (each compiled as a Function; "init" is distinguished by name, see §4.5).
type ClassStmt struct {
	Name       token.Token
	Superclass *Variable // nil when there is no "< Superclass" clause
	Methods    []*Function
}

func (s *ClassStmt) stmtNode()         {}
func (s *ClassStmt) Pos() token.Position { return s.Name.Pos }
