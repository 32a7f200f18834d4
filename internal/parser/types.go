package parser

import (
	"juno/internal/ast"
	"juno/internal/token"
)

// parseType parses a Simple type name. Generic, function, array and
// optional type syntax is reserved but not accepted by this
// implementation; see ast.TypeKind.
func (p *Parser) parseType() (*ast.Type, error) {
	t, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	return &ast.Type{Kind: ast.TypeSimple, Name: t.Lexeme}, nil
}
