package parser

import (
	"strconv"

	"juno/internal/ast"
	"juno/internal/token"
)

// precedenceOf returns the binding power of a binary operator token, or 0
// if the token is not a binary operator. Multiplicative operators bind
// tighter than additive ones; all six comparison operators share the
// additive level on purpose, matching the source language's behaviour
// (so "1 + 2 < 3 + 4" without parentheses parses left to right as
// "((1 + 2) < 3) + 4").
func precedenceOf(k token.Kind) int {
	switch {
	case k == token.Asterisk || k == token.Slash:
		return 2
	case k == token.Plus || k == token.Minus || (token.Token{Kind: k}).IsComparison():
		return 1
	default:
		return 0
	}
}

func binaryOpOf(k token.Kind) ast.BinaryOp {
	switch k {
	case token.Plus:
		return ast.Add
	case token.Minus:
		return ast.Sub
	case token.Asterisk:
		return ast.Mul
	case token.Slash:
		return ast.Div
	case token.Lt:
		return ast.Lt
	case token.Gt:
		return ast.Gt
	case token.Lte:
		return ast.Lte
	case token.Gte:
		return ast.Gte
	case token.Eq:
		return ast.Eq
	case token.Neq:
		return ast.Neq
	default:
		return ast.Add
	}
}

// parseExpression implements precedence climbing: it parses a primary
// expression, then repeatedly folds in trailing binary operators whose
// precedence is >= minPrec.
func (p *Parser) parseExpression(minPrec int) (ast.Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		prec := precedenceOf(p.peek().Kind)
		if prec == 0 || prec < minPrec {
			return lhs, nil
		}
		opTok := p.advance()
		rhs, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{Op: binaryOpOf(opTok.Kind), LHS: lhs, RHS: rhs, Pos: opTok.Pos}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.peek().Kind {
	case token.Number:
		t := p.advance()
		v, err := strconv.ParseFloat(t.Lexeme, 64)
		if err != nil {
			return nil, p.errorf(t, "invalid number literal %q", t.Lexeme)
		}
		return &ast.NumberLit{Value: v, Pos: t.Pos}, nil

	case token.String:
		t := p.advance()
		return &ast.StringLit{Value: t.Lexeme, Pos: t.Pos}, nil

	case token.Ident:
		t := p.advance()
		if p.at(token.LParen) {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.CallExpr{Callee: t.Lexeme, Args: args, Pos: t.Pos}, nil
		}
		return &ast.Ident{Name: t.Lexeme, Pos: t.Pos}, nil

	case token.LParen:
		p.advance()
		inner, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil

	case token.KwFn:
		proto, err := p.parseFnProto(false)
		if err != nil {
			return nil, err
		}
		return &ast.FuncExpr{Proto: proto, Pos: proto.Pos}, nil

	default:
		t := p.peek()
		return nil, p.errorf(t, "unexpected token %s %q in expression", t.Kind, t.Lexeme)
	}
}

func (p *Parser) parseArgList() ([]ast.Expr, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.at(token.RParen) {
		arg, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return args, nil
}
