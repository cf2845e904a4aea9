package ast

import "github.com/golox-lang/golox/internal/token"

// Literal is a constant value written directly in source: a number, string,
// boolean, or nil.
type Literal struct {
	Token token.Token
	Value any // float64, string, bool, or nil
}

func (e *Literal) exprNode()          {}
func (e *Literal) Pos() token.Position { return e.Token.Pos }

// Grouping is a parenthesized expression: "(" expr ")".
type Grouping struct {
	LeftParen token.Token
	Inner     Expr
}

func (e *Grouping) exprNode()          {}
func (e *Grouping) Pos() token.Position { return e.LeftParen.Pos }

// Unary is a prefix operator applied to a single operand: "!" or "-".
type Unary struct {
	Op      token.Token
	Operand Expr
}

func (e *Unary) exprNode()          {}
func (e *Unary) Pos() token.Position { return e.Op.Pos }

// Binary is an infix arithmetic, comparison, or equality operator.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (e *Binary) exprNode()          {}
func (e *Binary) Pos() token.Position { return e.Op.Pos }

// Logical is "and"/"or", evaluated with short-circuiting (§4.4).
type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (e *Logical) exprNode()          {}
func (e *Logical) Pos() token.Position { return e.Op.Pos }

// Variable is a reference to a named binding. Resolve annotates it with a
// scope distance (see resolver.Locals); an un-annotated Variable resolves
// against globals at run time.
type Variable struct {
	Name token.Token
}

func (e *Variable) exprNode()          {}
func (e *Variable) Pos() token.Position { return e.Name.Pos }

// Assign stores a new value into an existing binding and yields that value.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (e *Assign) exprNode()          {}
func (e *Assign) Pos() token.Position { return e.Name.Pos }

// Call invokes a callee with a list of argument expressions. Paren is the
// closing ")" token, used to tag arity/callability errors.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (e *Call) exprNode()          {}
func (e *Call) Pos() token.Position { return e.Paren.Pos }

// Get reads a property (field or method) off an instance: "obj.name".
type Get struct {
	Object Expr
	Name   token.Token
}

func (e *Get) exprNode()          {}
func (e *Get) Pos() token.Position { return e.Name.Pos }

// Set stores a value into an instance field: "obj.name = value".
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *Set) exprNode()          {}
func (e *Set) Pos() token.Position { return e.Name.Pos }

// This is a reference to the implicit receiver inside a method body.
type This struct {
	Keyword token.Token
}

func (e *This) exprNode()          {}
func (e *This) Pos() token.Position { return e.Keyword.Pos }

// Super is a reference to a superclass method: "super.name".
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (e *Super) exprNode()          {}
func (e *Super) Pos() token.Position { return e.Keyword.Pos }
