package parser

import (
	"juno/internal/ast"
	"juno/internal/token"
)

// parseStatement dispatches on the current token kind, per the statement
// grammar in the language surface.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.peek().Kind {
	case token.KwExtern:
		return p.parseExternProto()
	case token.KwIf:
		return p.parseIf()
	case token.Special:
		return p.parseSpecial()
	case token.KwLet:
		return p.parseVarDecl(false)
	case token.KwFn:
		return p.parseNamedFnProto()
	case token.KwReturn:
		return p.parseReturn()
	case token.Ident:
		if p.isAssignmentAhead() {
			return p.parseAssignmentLike()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

// isAssignmentAhead reports whether the current identifier is followed by
// '=' or a compound-assign operator, distinguishing an Assignment from a
// bare expression statement that happens to start with an identifier.
func (p *Parser) isAssignmentAhead() bool {
	next := p.peekAt(1)
	return next.Kind == token.Equals || next.IsCompoundAssign()
}

func (p *Parser) parseAssignmentLike() (ast.Stmt, error) {
	name := p.advance()
	op := p.advance()

	value, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}

	if op.Kind == token.Equals {
		return &ast.Assign{Name: name.Lexeme, Value: value, Pos: name.Pos}, nil
	}

	var cop ast.CompoundOp
	switch op.Kind {
	case token.AddEq:
		cop = ast.AddAssign
	case token.SubEq:
		cop = ast.SubAssign
	case token.MulEq:
		cop = ast.MulAssign
	case token.DivEq:
		cop = ast.DivAssign
	default:
		return nil, p.errorf(op, "unknown compound-assignment operator %q", op.Lexeme)
	}
	return &ast.CompoundAssign{Name: name.Lexeme, Op: cop, Value: value, Pos: name.Pos}, nil
}

func (p *Parser) parseExprStatement() (ast.Stmt, error) {
	pos := p.peek().Pos
	expr, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	// Trailing ';' is optional on an expression statement.
	p.match(token.Semi)
	return &ast.ExprStmt{Expr: expr, Pos: pos}, nil
}

// parseSpecial handles '@comptime' (which must prefix a 'let' declaration)
// and '@profile' (which must prefix a block). Any other annotation is a
// ParseError.
func (p *Parser) parseSpecial() (ast.Stmt, error) {
	special := p.advance()
	switch special.Lexeme {
	case "@comptime":
		if !p.at(token.KwLet) {
			return nil, p.errorf(p.peek(), "expected 'let' after '@comptime'")
		}
		return p.parseVarDecl(true)
	case "@profile":
		if !p.at(token.LBrace) {
			return nil, p.errorf(p.peek(), "expected '{' after '@profile'")
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		block.Profiled = true
		return block, nil
	default:
		return nil, p.errorf(special, "unknown annotation %q", special.Lexeme)
	}
}

func (p *Parser) parseVarDecl(comptime bool) (ast.Stmt, error) {
	letTok, err := p.expect(token.KwLet)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	var typ *ast.Type
	if p.match(token.Colon) {
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Equals); err != nil {
		return nil, err
	}

	init, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}

	return &ast.VarDecl{Name: name.Lexeme, Type: typ, Init: init, Comptime: comptime, Pos: letTok.Pos}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	retTok, err := p.expect(token.KwReturn)
	if err != nil {
		return nil, err
	}

	if p.match(token.Semi) {
		return &ast.Return{Value: nil, Pos: retTok.Pos}, nil
	}

	value, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, Pos: retTok.Pos}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok, err := p.expect(token.KwIf)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.If{Cond: cond, Then: then, Pos: ifTok.Pos}
	if !p.match(token.KwElse) {
		return node, nil
	}

	if p.at(token.KwIf) {
		elseIf, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		node.ElseIf = elseIf.(*ast.If)
		return node, nil
	}

	elseBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Else = elseBlock
	return node, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Pos: lbrace.Pos}
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return nil, p.errorf(p.peek(), "unterminated block, expected '}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseNamedFnProto() (ast.Stmt, error) {
	proto, err := p.parseFnProto(true)
	if err != nil {
		return nil, err
	}
	return proto, nil
}

// parseFnProto parses "fn [name](params) -> type { ... }". requireName
// controls whether the name is mandatory (top-level declarations) or must
// be absent (lambdas, parsed via parseExpression).
func (p *Parser) parseFnProto(requireName bool) (*ast.FnProto, error) {
	fnTok, err := p.expect(token.KwFn)
	if err != nil {
		return nil, err
	}

	name := ""
	if requireName {
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		name = nameTok.Lexeme
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	var ret *ast.Type
	if p.match(token.Arrow) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FnProto{Name: name, Params: params, Return: ret, Body: body, Pos: fnTok.Pos}, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(token.RParen) {
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Lexeme, Type: typ})
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseExternProto() (ast.Stmt, error) {
	externTok, err := p.expect(token.KwExtern)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwFn); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var ret *ast.Type
	if p.match(token.Arrow) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return &ast.ExternProto{Name: nameTok.Lexeme, Params: params, Return: ret, Pos: externTok.Pos}, nil
}
