package ast

import (
	"strings"

	"github.com/p7g/llvm-lang/pkg/token"
)

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statement()
}

type baseStatement struct{ baseNode }

func (baseStatement) statement() {}

// Program is the ordered sequence of top-level statements, usually
// declarations.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n\n")
}

func (*Program) node() {}

// ExpressionStatement evaluates an expression for its side effects.
type ExpressionStatement struct {
	baseStatement
	Expr Expression
}

func (n *ExpressionStatement) String() string { return n.Expr.String() + ";" }

// ReturnStatement exits the enclosing function, optionally with a value.
type ReturnStatement struct {
	baseStatement
	Value Expression // nil for a bare `return;`
}

func (n *ReturnStatement) String() string {
	if n.Value == nil {
		return "return;"
	}
	return "return " + n.Value.String() + ";"
}

// BreakStatement exits the enclosing loop.
type BreakStatement struct {
	baseStatement
	Label string // "" when absent
}

func (n *BreakStatement) String() string { return "break;" }

// ContinueStatement restarts the enclosing loop.
type ContinueStatement struct {
	baseStatement
	Label string // "" when absent
}

func (n *ContinueStatement) String() string { return "continue;" }

// Declaration is implemented by every top-level, name-introducing
// statement.
type Declaration interface {
	Statement
	DeclName() string
	declaration()
}

type baseDeclaration struct {
	baseStatement
	Name string
}

func (d baseDeclaration) DeclName() string { return d.Name }
func (baseDeclaration) declaration()       {}

// FunctionParameter is one named, typed parameter in a FunctionDeclaration.
type FunctionParameter struct {
	baseNode
	Name string
	Type TypeExpression
}

func (n *FunctionParameter) String() string { return n.Name + ": " + n.Type.String() }

// FunctionDeclaration declares a (possibly generic) function.
type FunctionDeclaration struct {
	baseDeclaration
	ReturnType        TypeExpression
	GenericParameters []string // nil when not generic
	Parameters        []*FunctionParameter
	Body              []Statement
}

// A function's FunctionType is registered in the declared-type table
// alongside the named types, so FunctionDeclaration is a TypeDeclaration.
func (FunctionDeclaration) typeDeclaration() {}

func (n *FunctionDeclaration) String() string {
	params := make([]string, len(n.Parameters))
	for i, p := range n.Parameters {
		params[i] = p.String()
	}
	typeParams := ""
	if n.GenericParameters != nil {
		typeParams = "<" + strings.Join(n.GenericParameters, ", ") + ">"
	}
	body := make([]string, len(n.Body))
	for i, s := range n.Body {
		body[i] = s.String()
	}
	return "function " + n.Name + typeParams + "(" + strings.Join(params, ", ") + "): " +
		n.ReturnType.String() + " {\n" + indent(strings.Join(body, "\n")) + "\n}"
}

// VariableDeclaration declares a `let` binding with an explicit type.
type VariableDeclaration struct {
	baseDeclaration
	Type        TypeExpression
	Initializer Expression
}

func (n *VariableDeclaration) String() string {
	return "let " + n.Name + ": " + n.Type.String() + " = " + n.Initializer.String() + ";"
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
