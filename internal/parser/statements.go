package parser

import (
	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/token"
)

// declaration → classDecl | funDecl | varDecl | statement ;
func (p *Parser) declaration() ast.Stmt {
	return p.recoverable(func() ast.Stmt {
		switch {
		case p.match(token.CLASS):
			return p.classDeclaration()
		case p.match(token.FUN):
			return &ast.FunctionStmt{Fn: p.function("function")}
		case p.match(token.VAR):
			return p.varDeclaration()
		default:
			return p.statement()
		}
	})
}

// classDecl → "class" IDENTIFIER ( "<" IDENTIFIER )? "{" function* "}" ;
func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		superName := p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Name: superName}
	}

	p.consume(token.LEFTBRACE, "Expect '{' before class body.")
	var methods []*ast.Function
	for !p.check(token.RIGHTBRACE) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHTBRACE, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// function → IDENTIFIER "(" parameters? ")" block ; kind is "function" or
// "method", used only to word error messages.
func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFTPAREN, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RIGHTPAREN) {
		for {
			if len(params) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHTPAREN, "Expect ')' after parameters.")
	p.consume(token.LEFTBRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.Function{Name: name, Params: params, Body: body}
}

// varDecl → "var" IDENTIFIER ( "=" expression )? ";" ;
func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: init}
}

// statement → exprStmt | forStmt | ifStmt | printStmt | returnStmt |
// whileStmt | block ;
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LEFTBRACE):
		brace := p.previous()
		return &ast.Block{LeftBrace: brace, Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHTBRACE) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RIGHTBRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Keyword: keyword, Expression: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

func (p *Parser) ifStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFTPAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHTPAREN, "Expect ')' after if condition.")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Keyword: keyword, Condition: condition, Then: then, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFTPAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHTPAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Keyword: keyword, Condition: condition, Body: body}
}

// forStmt desugars entirely into a while loop built from Block/If/While
// nodes at parse time (the standard Lox "for is syntactic sugar" approach):
// `for (init; cond; incr) body` becomes
// `{ init; while (cond) { body; incr; } }`, with a missing cond treated as
// literal `true` and a missing incr simply omitted.
func (p *Parser) forStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFTPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHTPAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHTPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{LeftBrace: keyword, Statements: []ast.Stmt{
			body,
			&ast.ExpressionStmt{Expression: increment},
		}}
	}
	if condition == nil {
		condition = &ast.Literal{Token: keyword, Value: true}
	}
	body = &ast.While{Keyword: keyword, Condition: condition, Body: body}

	if init != nil {
		body = &ast.Block{LeftBrace: keyword, Statements: []ast.Stmt{init, body}}
	}
	return body
}
