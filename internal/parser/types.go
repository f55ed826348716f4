package parser

import (
	"strconv"

	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/pkg/token"
)

// parseTypeExpression parses one of the surface type forms (spec.md §6):
// Name, Name<T1,T2>, (T1,T2), and the postfix T[N]/T[] forms applied to
// whichever of those came first. curToken is left on the expression's last
// token. curToken must be positioned on the expression's first token when
// called.
func (p *Parser) parseTypeExpression() (ast.TypeExpression, error) {
	var base ast.TypeExpression
	var err error

	switch p.curToken.Type {
	case token.IDENT:
		base, err = p.parseNamedTypeExpression()
	case token.LPAREN:
		base, err = p.parseTupleTypeExpression()
	default:
		return nil, errors.NewSyntaxError(p.curToken.Pos, "expected a type expression, got %s", p.curToken.Type)
	}
	if err != nil {
		return nil, err
	}

	for p.peekTokenIs(token.LBRACK) {
		p.nextToken() // consume '['
		pos := p.curToken.Pos
		if p.peekTokenIs(token.RBRACK) {
			p.nextToken()
			out := &ast.SliceTypeExpression{ElementType: base}
			out.Position = pos
			base = out
			continue
		}
		if err := p.expect(token.INT); err != nil {
			return nil, err
		}
		length, err := strconv.Atoi(p.curToken.Literal)
		if err != nil {
			return nil, errors.NewSyntaxError(p.curToken.Pos, "invalid array length %q", p.curToken.Literal)
		}
		if err := p.expect(token.RBRACK); err != nil {
			return nil, err
		}
		out := &ast.ArrayTypeExpression{ElementType: base, Length: length}
		out.Position = pos
		base = out
	}

	return base, nil
}

func (p *Parser) parseNamedTypeExpression() (ast.TypeExpression, error) {
	pos := p.curToken.Pos
	name := p.curToken.Literal

	var args []ast.TypeExpression
	if p.peekTokenIs(token.LESS) {
		p.nextToken() // consume '<'
		for {
			p.nextToken()
			arg, err := p.parseTypeExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if err := p.expect(token.GREATER); err != nil {
			return nil, err
		}
	}

	out := &ast.NamedTypeExpression{Name: name, GenericArguments: args}
	out.Position = pos
	return out, nil
}

func (p *Parser) parseTupleTypeExpression() (ast.TypeExpression, error) {
	pos := p.curToken.Pos
	var elements []ast.TypeExpression
	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		elem, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	out := &ast.TupleTypeExpression{Elements: elements}
	out.Position = pos
	return out, nil
}
