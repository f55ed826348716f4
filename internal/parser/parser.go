// Package parser implements a recursive-descent/Pratt parser over the
// token stream produced by internal/lexer, grounded on the teacher's
// precedence-table and prefix/infix parse function shape
// (internal/parser/parser.go in CWBudde-go-dws), simplified: this
// grammar has no speculative backtracking, so there is no token cursor or
// saved-state mechanism, just curToken/peekToken.
package parser

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/lexer"
	"github.com/p7g/llvm-lang/pkg/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
	MEMBER
)

var precedences = map[token.Type]int{
	token.ASSIGN:   ASSIGN,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACK:   INDEX,
	token.DOT:      MEMBER,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a token stream into a Program.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	// lastErr carries errors out of prefix/infix parse functions, which
	// return a bare ast.Expression (matching the teacher's fn signatures);
	// parseExpression checks it after every call and aborts immediately.
	lastErr error
}

// New returns a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:  p.parseIdentifier,
		token.INT:    p.parseIntegerLiteral,
		token.FLOAT:  p.parseFloatLiteral,
		token.STRING: p.parseStringLiteral,
		token.LPAREN: p.parseGroupedExpression,
		token.MINUS:  p.parseNegateExpression,
		token.AMP:    p.parseRefExpression,
		token.ASTERISK: func() ast.Expression {
			return p.parseUnaryPrefix(ast.OpDeref)
		},
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseBinaryOperation,
		token.MINUS:    p.parseBinaryOperation,
		token.ASTERISK: p.parseBinaryOperation,
		token.SLASH:    p.parseBinaryOperation,
		token.ASSIGN:   p.parseAssignExpression,
		token.DOT:      p.parseFieldAccess,
		token.LBRACK:   p.parseIndexExpression,
		token.LPAREN:   p.parseCallExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expect(t token.Type) error {
	if !p.peekTokenIs(t) {
		return errors.NewSyntaxError(p.peekToken.Pos, "expected %s, got %s", t, p.peekToken.Type)
	}
	p.nextToken()
	return nil
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a Program, stopping at
// the first syntax error.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		stmt, err := p.parseTopLevelDeclaration()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
	}

	return program, nil
}

func (p *Parser) parseTopLevelDeclaration() (ast.Statement, error) {
	switch p.curToken.Type {
	case token.STRUCT:
		return p.parseStructDeclaration()
	case token.UNION:
		return p.parseUnionDeclaration()
	case token.ENUM:
		return p.parseEnumDeclaration()
	case token.NEWTYPE:
		return p.parseNewTypeDeclaration()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.LET:
		return p.parseVariableDeclaration()
	default:
		// Any other statement is accepted here; misplaced return, break and
		// continue are rejected later by the validator.
		return p.parseStatement()
	}
}

func (p *Parser) parseGenericParameters() ([]string, error) {
	if !p.peekTokenIs(token.LESS) {
		return nil, nil
	}
	p.nextToken() // consume '<'

	var names []string
	for {
		if err := p.expect(token.IDENT); err != nil {
			return nil, err
		}
		names = append(names, p.curToken.Literal)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if err := p.expect(token.GREATER); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *Parser) parseStructFields() ([]*ast.StructTypeField, error) {
	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var fields []*ast.StructTypeField
	for !p.peekTokenIs(token.RBRACE) {
		if err := p.expect(token.IDENT); err != nil {
			return nil, err
		}
		name := p.curToken.Literal
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		p.nextToken()
		typ, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.StructTypeField{Name: name, Type: typ})

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *Parser) parseStructDeclaration() (ast.Statement, error) {
	pos := p.curToken.Pos
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	name := p.curToken.Literal

	generics, err := p.parseGenericParameters()
	if err != nil {
		return nil, err
	}

	fields, err := p.parseStructFields()
	if err != nil {
		return nil, err
	}

	out := &ast.StructTypeDeclaration{
		Fields: fields,
	}
	out.GenericParameters = generics
	out.Name = name
	out.Position = pos
	return out, nil
}

func (p *Parser) parseUnionVariant() (ast.UnionTypeVariant, error) {
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	pos := p.curToken.Pos
	name := p.curToken.Literal

	switch {
	case p.peekTokenIs(token.LPAREN):
		p.nextToken()
		var elements []ast.TypeExpression
		for !p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			t, err := p.parseTypeExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, t)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		out := &ast.UnionTypeTupleVariant{Elements: elements}
		out.Name = name
		out.Position = pos
		return out, nil

	case p.peekTokenIs(token.LBRACE):
		p.nextToken()
		fields, err := p.parseStructFieldsBody()
		if err != nil {
			return nil, err
		}
		out := &ast.UnionTypeStructVariant{Fields: fields}
		out.Name = name
		out.Position = pos
		return out, nil

	default:
		out := &ast.UnionTypeSymbolVariant{}
		out.Name = name
		out.Position = pos
		return out, nil
	}
}

// parseStructFieldsBody parses "field: Type, ..." up to (but not consuming)
// the closing brace; curToken must already be on the opening brace.
func (p *Parser) parseStructFieldsBody() ([]*ast.StructTypeField, error) {
	var fields []*ast.StructTypeField
	for !p.peekTokenIs(token.RBRACE) {
		if err := p.expect(token.IDENT); err != nil {
			return nil, err
		}
		name := p.curToken.Literal
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		p.nextToken()
		typ, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.StructTypeField{Name: name, Type: typ})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *Parser) parseUnionDeclaration() (ast.Statement, error) {
	pos := p.curToken.Pos
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	name := p.curToken.Literal

	generics, err := p.parseGenericParameters()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var variants []ast.UnionTypeVariant
	for !p.peekTokenIs(token.RBRACE) {
		v, err := p.parseUnionVariant()
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	out := &ast.UnionTypeDeclaration{Variants: variants}
	out.GenericParameters = generics
	out.Name = name
	out.Position = pos
	return out, nil
}

func (p *Parser) parseEnumDeclaration() (ast.Statement, error) {
	pos := p.curToken.Pos
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	name := p.curToken.Literal

	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var variants []string
	for !p.peekTokenIs(token.RBRACE) {
		if err := p.expect(token.IDENT); err != nil {
			return nil, err
		}
		variants = append(variants, p.curToken.Literal)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	out := &ast.EnumTypeDeclaration{Variants: variants}
	out.Name = name
	out.Position = pos
	return out, nil
}

func (p *Parser) parseNewTypeDeclaration() (ast.Statement, error) {
	pos := p.curToken.Pos
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	name := p.curToken.Literal

	generics, err := p.parseGenericParameters()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	p.nextToken()
	inner, err := p.parseTypeExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	out := &ast.NewTypeDeclaration{InnerType: inner}
	out.GenericParameters = generics
	out.Name = name
	out.Position = pos
	return out, nil
}

func (p *Parser) parseFunctionParameters() ([]*ast.FunctionParameter, error) {
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.FunctionParameter
	for !p.peekTokenIs(token.RPAREN) {
		if err := p.expect(token.IDENT); err != nil {
			return nil, err
		}
		name := p.curToken.Literal
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		p.nextToken()
		typ, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.FunctionParameter{Name: name, Type: typ})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFunctionDeclaration() (ast.Statement, error) {
	pos := p.curToken.Pos
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	name := p.curToken.Literal

	generics, err := p.parseGenericParameters()
	if err != nil {
		return nil, err
	}

	params, err := p.parseFunctionParameters()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	p.nextToken()
	returnType, err := p.parseTypeExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	out := &ast.FunctionDeclaration{
		ReturnType:        returnType,
		GenericParameters: generics,
		Parameters:        params,
		Body:              body,
	}
	out.Name = name
	out.Position = pos
	return out, nil
}

func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	pos := p.curToken.Pos
	if err := p.expect(token.IDENT); err != nil {
		return nil, err
	}
	name := p.curToken.Literal

	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	p.nextToken()
	typ, err := p.parseTypeExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	p.nextToken()
	init, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	out := &ast.VariableDeclaration{
		Type:        typ,
		Initializer: init,
	}
	out.Name = name
	out.Position = pos
	return out, nil
}

// parseStatement parses a single statement with curToken already positioned
// on its first token.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case token.LET:
		return p.parseVariableDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	out := &ast.ReturnStatement{}
	out.Position = p.curToken.Pos

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return out, nil
	}

	p.nextToken()
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	out.Value = value

	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parseBreakStatement() (ast.Statement, error) {
	out := &ast.BreakStatement{}
	out.Position = p.curToken.Pos
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		out.Label = p.curToken.Literal
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parseContinueStatement() (ast.Statement, error) {
	out := &ast.ContinueStatement{}
	out.Position = p.curToken.Pos
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		out.Label = p.curToken.Literal
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	pos := p.curToken.Pos
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	out := &ast.ExpressionStatement{Expr: expr}
	out.Position = pos
	return out, nil
}
