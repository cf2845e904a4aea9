package parser

import (
	"testing"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/scanner"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *Parser) {
	t.Helper()
	toks := scanner.New(src).ScanTokens()
	p := New(toks)
	stmts, errList := p.Parse()
	if errList.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, errList.Error())
	}
	return stmts, p
}

func TestParseExpressionPrecedence(t *testing.T) {
	stmts, _ := parse(t, "print -1 * (2 + 3) == -5;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	printStmt, ok := stmts[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("expected *ast.PrintStmt, got %T", stmts[0])
	}
	got := ast.PrintExpr(printStmt.Expression)
	want := "(== (* (- 1) (group (+ 2 3))) (- 5))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseVarDeclaration(t *testing.T) {
	stmts, _ := parse(t, "var a = 1;")
	v, ok := stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", stmts[0])
	}
	if v.Name.Lexeme != "a" {
		t.Errorf("Name = %q, want %q", v.Name.Lexeme, "a")
	}
	if ast.PrintExpr(v.Initializer) != "1" {
		t.Errorf("Initializer = %q", ast.PrintExpr(v.Initializer))
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, _ := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	block, ok := stmts[0].(*ast.Block)
	if !ok || len(block.Statements) != 2 {
		t.Fatalf("expected desugared 2-statement block, got %#v", stmts[0])
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("first statement should be the initializer var decl, got %T", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("second statement should be the desugared while, got %T", block.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.Block)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("while body should be [print; increment;], got %#v", whileStmt.Body)
	}
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts, _ := parse(t, `class B < A { init(x) { this.x = x; } greet() { print this.x; } }`)
	class, ok := stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", stmts[0])
	}
	if class.Name.Lexeme != "B" {
		t.Errorf("Name = %q", class.Name.Lexeme)
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Fatalf("expected superclass A, got %#v", class.Superclass)
	}
	if len(class.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(class.Methods))
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	stmts, _ := parse(t, "a = 1; a.b = 2;")
	if _, ok := stmts[0].(*ast.ExpressionStmt).Expression.(*ast.Assign); !ok {
		t.Errorf("expected *ast.Assign, got %T", stmts[0].(*ast.ExpressionStmt).Expression)
	}
	if _, ok := stmts[1].(*ast.ExpressionStmt).Expression.(*ast.Set); !ok {
		t.Errorf("expected *ast.Set, got %T", stmts[1].(*ast.ExpressionStmt).Expression)
	}
}

func TestParseInvalidAssignmentTargetReportsError(t *testing.T) {
	toks := scanner.New("1 = 2;").ScanTokens()
	p := New(toks)
	_, errList := p.Parse()
	if !errList.HasErrors() {
		t.Fatal("expected a syntax error for assigning to a literal")
	}
}

func TestParseMissingSemicolonSynchronizes(t *testing.T) {
	toks := scanner.New("print 1\nprint 2;").ScanTokens()
	p := New(toks)
	stmts, errList := p.Parse()
	if !errList.HasErrors() {
		t.Fatal("expected a syntax error for the missing semicolon")
	}
	// synchronize() should still let the second, well-formed statement parse.
	var sawSecondPrint bool
	for _, s := range stmts {
		if ps, ok := s.(*ast.PrintStmt); ok && ast.PrintExpr(ps.Expression) == "2" {
			sawSecondPrint = true
		}
	}
	if !sawSecondPrint {
		t.Error("expected parser to recover and parse the second print statement")
	}
}

func TestParseCallArguments(t *testing.T) {
	stmts, _ := parse(t, "make(1, 2, 3);")
	call, ok := stmts[0].(*ast.ExpressionStmt).Expression.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", stmts[0].(*ast.ExpressionStmt).Expression)
	}
	if len(call.Args) != 3 {
		t.Errorf("expected 3 arguments, got %d", len(call.Args))
	}
}

func TestParseSuperCall(t *testing.T) {
	stmts, _ := parse(t, "class B < A { greet() { super.greet(); } }")
	class := stmts[0].(*ast.ClassStmt)
	method := class.Methods[0]
	call := method.Body[0].(*ast.ExpressionStmt).Expression.(*ast.Call)
	super, ok := call.Callee.(*ast.Super)
	if !ok {
		t.Fatalf("expected *ast.Super callee, got %T", call.Callee)
	}
	if super.Method.Lexeme != "greet" {
		t.Errorf("Method = %q", super.Method.Lexeme)
	}
}
