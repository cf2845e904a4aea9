package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a single statement as a parenthesized, Lisp-like expression
// for debugging (the `golox parse` subcommand and the evaluator's --trace
// lines). It has no effect on evaluation results; it exists purely as a
// developer aid, so it favors a compact, exhaustive switch over a
// generalized visitor.
func Print(s Stmt) string {
	var b strings.Builder
	printStmt(&b, s)
	return b.String()
}

// PrintExpr renders a single expression the same way as Print.
func PrintExpr(e Expr) string {
	var b strings.Builder
	printExpr(&b, e)
	return b.String()
}

func printStmt(b *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *ExpressionStmt:
		parenthesize(b, ";", s.Expression)
	case *PrintStmt:
		parenthesize(b, "print", s.Expression)
	case *VarStmt:
		if s.Initializer == nil {
			fmt.Fprintf(b, "(var %s)", s.Name.Lexeme)
			return
		}
		b.WriteString("(var ")
		b.WriteString(s.Name.Lexeme)
		b.WriteString(" ")
		printExpr(b, s.Initializer)
		b.WriteString(")")
	case *Block:
		b.WriteString("(block")
		for _, inner := range s.Statements {
			b.WriteString(" ")
			printStmt(b, inner)
		}
		b.WriteString(")")
	case *If:
		b.WriteString("(if ")
		printExpr(b, s.Condition)
		b.WriteString(" ")
		printStmt(b, s.Then)
		if s.Else != nil {
			b.WriteString(" ")
			printStmt(b, s.Else)
		}
		b.WriteString(")")
	case *While:
		b.WriteString("(while ")
		printExpr(b, s.Condition)
		b.WriteString(" ")
		printStmt(b, s.Body)
		b.WriteString(")")
	case *FunctionStmt:
		fmt.Fprintf(b, "(fun %s)", s.Fn.Name.Lexeme)
	case *Return:
		if s.Value == nil {
			b.WriteString("(return)")
			return
		}
		parenthesize(b, "return", s.Value)
	case *ClassStmt:
		b.WriteString("(class ")
		b.WriteString(s.Name.Lexeme)
		if s.Superclass != nil {
			b.WriteString(" < ")
			b.WriteString(s.Superclass.Name.Lexeme)
		}
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "(unknown-stmt %T)", s)
	}
}

func printExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Literal:
		b.WriteString(literalString(e.Value))
	case *Grouping:
		parenthesize(b, "group", e.Inner)
	case *Unary:
		parenthesize(b, e.Op.Lexeme, e.Operand)
	case *Binary:
		parenthesize(b, e.Op.Lexeme, e.Left, e.Right)
	case *Logical:
		parenthesize(b, e.Op.Lexeme, e.Left, e.Right)
	case *Variable:
		b.WriteString(e.Name.Lexeme)
	case *Assign:
		b.WriteString("(= ")
		b.WriteString(e.Name.Lexeme)
		b.WriteString(" ")
		printExpr(b, e.Value)
		b.WriteString(")")
	case *Call:
		b.WriteString("(call ")
		printExpr(b, e.Callee)
		for _, arg := range e.Args {
			b.WriteString(" ")
			printExpr(b, arg)
		}
		b.WriteString(")")
	case *Get:
		b.WriteString("(. ")
		printExpr(b, e.Object)
		b.WriteString(" ")
		b.WriteString(e.Name.Lexeme)
		b.WriteString(")")
	case *Set:
		b.WriteString("(set ")
		printExpr(b, e.Object)
		b.WriteString(" ")
		b.WriteString(e.Name.Lexeme)
		b.WriteString(" ")
		printExpr(b, e.Value)
		b.WriteString(")")
	case *This:
		b.WriteString("this")
	case *Super:
		b.WriteString("(super ")
		b.WriteString(e.Method.Lexeme)
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "(unknown-expr %T)", e)
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		printExpr(b, e)
	}
	b.WriteString(")")
}

func literalString(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
