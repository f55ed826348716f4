package ast

import (
	"strconv"
	"strings"

	"github.com/p7g/llvm-lang/internal/types"
)

// TypeExpression is implemented by every surface-syntax type node.
type TypeExpression interface {
	Node
	typeExpression()
}

type baseTypeExpression struct{ baseNode }

func (baseTypeExpression) typeExpression() {}

// NamedTypeExpression names a primitive or declared type, optionally with
// generic arguments.
type NamedTypeExpression struct {
	baseTypeExpression
	Name             string
	GenericArguments []TypeExpression // nil when absent (distinct from empty)
}

func (n *NamedTypeExpression) String() string {
	if len(n.GenericArguments) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.GenericArguments))
	for i, a := range n.GenericArguments {
		parts[i] = a.String()
	}
	return n.Name + "<" + strings.Join(parts, ", ") + ">"
}

// TupleTypeExpression is a structural product type expression.
type TupleTypeExpression struct {
	baseTypeExpression
	Elements []TypeExpression
}

func (n *TupleTypeExpression) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	trailing := ""
	if len(n.Elements) == 1 {
		trailing = ","
	}
	return "(" + strings.Join(parts, ", ") + trailing + ")"
}

// ArrayTypeExpression is a fixed-length structural sequence type
// expression.
type ArrayTypeExpression struct {
	baseTypeExpression
	ElementType TypeExpression
	Length      int
}

func (n *ArrayTypeExpression) String() string {
	return n.ElementType.String() + "[" + strconv.Itoa(n.Length) + "]"
}

// SliceTypeExpression is an unsized structural sequence type expression.
type SliceTypeExpression struct {
	baseTypeExpression
	ElementType TypeExpression
}

func (n *SliceTypeExpression) String() string { return n.ElementType.String() + "[]" }

// InstantiatedTypeExpression wraps a fully resolved Type. It is produced
// only by the type-expression instantiator pass.
type InstantiatedTypeExpression struct {
	baseTypeExpression
	Type types.Type
}

func (n *InstantiatedTypeExpression) String() string { return n.Type.String() }
