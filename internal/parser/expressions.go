package parser

import (
	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/token"
)

// expression → assignment ;
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment → ( call "." )? IDENTIFIER "=" assignment | logicOr ;
//
// Assignment is parsed by first parsing the left side as any expression,
// then — only if an '=' follows — re-interpreting it as an assignment
// target. This avoids needing unbounded lookahead to tell `a = 1` from
// `a.b = 1` from `a == 1` apart.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		}
		p.errorAt(equals, "Invalid assignment target.")
	}
	return expr
}

// logicOr → logicAnd ( "or" logicAnd )* ;
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// logicAnd → equality ( "and" equality )* ;
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// equality → comparison ( ( "!=" | "==" ) comparison )* ;
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANGEQUAL, token.EQUALEQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// term → factor ( ( "-" | "+" ) factor )* ;
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// factor → unary ( ( "/" | "*" ) unary )* ;
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary → ( "!" | "-" ) unary | call ;
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		operand := p.unary()
		return &ast.Unary{Op: op, Operand: operand}
	}
	return p.call()
}

// call → primary ( "(" arguments? ")" | "." IDENTIFIER )* ;
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LEFTPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHTPAREN) {
		for {
			if len(args) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHTPAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

// primary → "true" | "false" | "nil" | "this" | NUMBER | STRING | IDENTIFIER
//         | "(" expression ")" | "super" "." IDENTIFIER ;
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Token: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Token: p.previous(), Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Token: p.previous(), Value: nil}
	case p.match(token.NUMBER, token.STRING):
		tok := p.previous()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LEFTPAREN):
		leftParen := p.previous()
		expr := p.expression()
		p.consume(token.RIGHTPAREN, "Expect ')' after expression.")
		return &ast.Grouping{LeftParen: leftParen, Inner: expr}
	}
	panic(p.errorAt(p.peek(), "Expect expression."))
}
