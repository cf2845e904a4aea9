// Package ast defines the abstract syntax tree produced by the parser.
//
// Every node is an immutable, concrete struct type (a tagged-variant design:
// exhaustive switches over concrete *T types in the resolver and evaluator,
// rather than a double-dispatch visitor). Go does not check these switches
// for exhaustiveness; the evaluator's switches report an unhandled node type
// as an error from their default branch.
package ast

import "github.com/golox-lang/golox/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the token most representative of this node's source
	// location, used to tag runtime and static errors.
	Pos() token.Position
}

// Expr is any node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action but produces no value.
type Stmt interface {
	Node
	stmtNode()
}
