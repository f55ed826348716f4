package parser

import (
	"strconv"

	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/pkg/token"
)

func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		return nil, errors.NewSyntaxError(p.curToken.Pos, "unexpected token %s in expression", p.curToken.Type)
	}

	left := prefix()
	if p.lastErr != nil {
		return nil, p.lastErr
	}

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left, nil
		}
		p.nextToken()
		left = infix(left)
		if p.lastErr != nil {
			return nil, p.lastErr
		}
	}

	return left, nil
}

func (p *Parser) fail(err error) ast.Expression {
	if p.lastErr == nil {
		p.lastErr = err
	}
	return nil
}

func (p *Parser) parseIdentifier() ast.Expression {
	out := &ast.Identifier{Name: p.curToken.Literal}
	out.Position = p.curToken.Pos
	return out
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		return p.fail(errors.NewSyntaxError(p.curToken.Pos, "invalid integer literal %q", p.curToken.Literal))
	}
	out := &ast.IntegerLiteral{Value: value}
	out.Position = p.curToken.Pos
	return out
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		return p.fail(errors.NewSyntaxError(p.curToken.Pos, "invalid float literal %q", p.curToken.Literal))
	}
	out := &ast.FloatLiteral{Value: value}
	out.Position = p.curToken.Pos
	return out
}

func (p *Parser) parseStringLiteral() ast.Expression {
	out := &ast.StringLiteral{Value: p.curToken.Literal}
	out.Position = p.curToken.Pos
	return out
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return p.fail(err)
	}
	if err := p.expect(token.RPAREN); err != nil {
		return p.fail(err)
	}
	return expr
}

func (p *Parser) parseNegateExpression() ast.Expression {
	return p.parseUnaryPrefix(ast.OpNegate)
}

func (p *Parser) parseRefExpression() ast.Expression {
	return p.parseUnaryPrefix(ast.OpRef)
}

func (p *Parser) parseUnaryPrefix(op ast.Op) ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	rhs, err := p.parseExpression(PREFIX)
	if err != nil {
		return p.fail(err)
	}
	out := &ast.UnaryOperation{Op: op, Rhs: rhs}
	out.Position = pos
	return out
}

func binaryOpFor(t token.Type) ast.Op {
	switch t {
	case token.PLUS:
		return ast.OpPlus
	case token.MINUS:
		return ast.OpMinus
	case token.ASTERISK:
		return ast.OpTimes
	case token.SLASH:
		return ast.OpDivide
	default:
		return ast.OpPlus
	}
}

func (p *Parser) parseBinaryOperation(left ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	op := binaryOpFor(p.curToken.Type)
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	rhs, err := p.parseExpression(precedence)
	if err != nil {
		return p.fail(err)
	}
	out := &ast.BinaryOperation{Lhs: left, Op: op, Rhs: rhs}
	out.Position = pos
	return out
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	rhs, err := p.parseExpression(ASSIGN - 1)
	if err != nil {
		return p.fail(err)
	}
	out := &ast.BinaryOperation{Lhs: left, Op: ast.OpAssign, Rhs: rhs}
	out.Position = pos
	return out
}

func (p *Parser) parseFieldAccess(left ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	if err := p.expect(token.IDENT); err != nil {
		return p.fail(err)
	}
	field := &ast.Identifier{Name: p.curToken.Literal}
	field.Position = p.curToken.Pos
	out := &ast.BinaryOperation{Lhs: left, Op: ast.OpField, Rhs: field}
	out.Position = pos
	return out
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	index, err := p.parseExpression(LOWEST)
	if err != nil {
		return p.fail(err)
	}
	if err := p.expect(token.RBRACK); err != nil {
		return p.fail(err)
	}
	out := &ast.BinaryOperation{Lhs: left, Op: ast.OpIndex, Rhs: index}
	out.Position = pos
	return out
}

func (p *Parser) parseCallExpression(target ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	var args []ast.Expression
	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return p.fail(err)
		}
		args = append(args, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if err := p.expect(token.RPAREN); err != nil {
		return p.fail(err)
	}
	out := &ast.CallExpression{Target: target, Args: args}
	out.Position = pos
	return out
}
