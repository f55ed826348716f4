// Package ast implements the closed-sum, immutable AST consumed by the
// semantic pipeline. Node kinds are a fixed set of structs implementing
// Node/Expression/Statement/TypeExpression; adding a new kind means adding
// a case to BaseVisitor/BaseMapper, whose default cases panic at run time
// on an unhandled kind (see visitor.go, mapper.go).
package ast

import (
	"strconv"
	"strings"

	"github.com/p7g/llvm-lang/internal/types"
	"github.com/p7g/llvm-lang/pkg/token"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
	node()
}

type baseNode struct {
	Position token.Position
}

func (n baseNode) Pos() token.Position { return n.Position }
func (baseNode) node()                 {}

// Op enumerates the binary and unary operators the language surface
// produces.
type Op int

const (
	OpAssign Op = iota
	OpNegate
	OpPlus
	OpMinus
	OpTimes
	OpDivide
	OpIndex
	OpField
	OpDeref
	OpRef
)

func (op Op) String() string {
	switch op {
	case OpAssign:
		return "="
	case OpNegate, OpMinus:
		return "-"
	case OpPlus:
		return "+"
	case OpTimes:
		return "*"
	case OpDivide:
		return "/"
	case OpIndex:
		return "[]"
	case OpField:
		return "."
	case OpDeref:
		return "*"
	case OpRef:
		return "&"
	default:
		return "?"
	}
}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expression()
}

type baseExpression struct{ baseNode }

func (baseExpression) expression() {}

// Identifier references a binding by name.
type Identifier struct {
	baseExpression
	Name string
}

func (n *Identifier) String() string { return n.Name }

// IntegerLiteral is a signed 64-bit integer literal; its inferred type is
// always int64 (spec.md §4.4 — no literal suffixes in this surface grammar).
type IntegerLiteral struct {
	baseExpression
	Value int64
}

func (n *IntegerLiteral) String() string { return strconv.FormatInt(n.Value, 10) }

// FloatLiteral is a 64-bit float literal.
type FloatLiteral struct {
	baseExpression
	Value float64
}

func (n *FloatLiteral) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// StringLiteral is a UTF-8 string literal, inferred as a fixed-length byte
// array (spec.md open question, resolved: ArrayType(len(utf8), uint8)).
type StringLiteral struct {
	baseExpression
	Value string
}

func (n *StringLiteral) String() string { return `"` + n.Value + `"` }

// BinaryOperation is a two-operand expression. For OpIndex, Rhs is the
// subscript expression; for OpField, Rhs is an *Identifier naming the field
// and is not evaluated in scope.
type BinaryOperation struct {
	baseExpression
	Lhs Expression
	Op  Op
	Rhs Expression
}

func (n *BinaryOperation) String() string {
	switch n.Op {
	case OpIndex:
		return n.Lhs.String() + "[" + n.Rhs.String() + "]"
	case OpField:
		return n.Lhs.String() + "." + n.Rhs.String()
	default:
		return n.Lhs.String() + " " + n.Op.String() + " " + n.Rhs.String()
	}
}

// UnaryOperation is a one-operand expression: negate, ref (&x), or deref
// (*x). ref/deref are parsed and represented but not semantically modeled
// beyond passing the operand's type through (spec.md §4.4; original_source
// keeps them reserved the same way).
type UnaryOperation struct {
	baseExpression
	Op  Op
	Rhs Expression
}

func (n *UnaryOperation) String() string { return n.Op.String() + n.Rhs.String() }

// CallExpression applies Target to Args.
type CallExpression struct {
	baseExpression
	Target Expression
	Args   []Expression
}

func (n *CallExpression) String() string {
	target := n.Target
	if te, ok := target.(*TypedExpression); ok {
		target = te.Value
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return target.String() + "(" + strings.Join(parts, ", ") + ")"
}

// TypedExpression wraps an expression with its inferred type. It is
// produced only by the expression-annotator pass (internal/semantic/passes)
// and is the only expression kind permitted to survive into the type
// checker.
type TypedExpression struct {
	baseExpression
	Value Expression
	Type  types.Type
}

func (n *TypedExpression) String() string { return "(" + n.Value.String() + ")::" + n.Type.String() }

