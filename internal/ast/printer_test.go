package ast

import (
	"testing"

	"github.com/golox-lang/golox/internal/token"
)

func TestPrintExprBinary(t *testing.T) {
	expr := &Binary{
		Left:  &Unary{Op: token.Token{Type: token.MINUS, Lexeme: "-"}, Operand: &Literal{Value: 123.0}},
		Op:    token.Token{Type: token.STAR, Lexeme: "*"},
		Right: &Grouping{Inner: &Literal{Value: 45.67}},
	}

	got := PrintExpr(expr)
	want := "(* (- 123) (group 45.67))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintStmtVar(t *testing.T) {
	stmt := &VarStmt{
		Name:        token.Token{Lexeme: "x"},
		Initializer: &Literal{Value: 1.0},
	}
	got := Print(stmt)
	want := "(var x 1)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintStmtClassWithSuperclass(t *testing.T) {
	stmt := &ClassStmt{
		Name:       token.Token{Lexeme: "B"},
		Superclass: &Variable{Name: token.Token{Lexeme: "A"}},
	}
	got := Print(stmt)
	want := "(class B < A)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
