package ast

import "strings"

// TypeDeclaration is implemented by every named-type declaration and by
// FunctionDeclaration.
type TypeDeclaration interface {
	Declaration
	typeDeclaration()
}

// genericTypeDeclaration carries the optional generic-parameter list shared
// by every TypeDeclaration except EnumTypeDeclaration.
type genericTypeDeclaration struct {
	baseDeclaration
	GenericParameters []string // nil when not generic
}

func (genericTypeDeclaration) typeDeclaration() {}

func (d genericTypeDeclaration) genericParamsString() string {
	if len(d.GenericParameters) == 0 {
		return ""
	}
	return "<" + strings.Join(d.GenericParameters, ", ") + ">"
}

// NewTypeDeclaration declares a nominal wrapper: `newtype Name<T> = Inner;`.
type NewTypeDeclaration struct {
	genericTypeDeclaration
	InnerType TypeExpression
}

func (n *NewTypeDeclaration) String() string {
	return "newtype " + n.Name + n.genericParamsString() + " = " + n.InnerType.String() + ";"
}

// StructTypeField is one named, typed member of a struct declaration.
type StructTypeField struct {
	baseNode
	Name string
	Type TypeExpression
}

func (n *StructTypeField) String() string { return n.Name + ": " + n.Type.String() }

// StructTypeDeclaration declares a nominal struct type.
type StructTypeDeclaration struct {
	genericTypeDeclaration
	Fields []*StructTypeField
}

func (n *StructTypeDeclaration) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.String()
	}
	return "struct " + n.Name + n.genericParamsString() + " {\n" +
		indent(strings.Join(parts, ",\n")) + "\n}"
}

// EnumTypeDeclaration declares a closed set of unitary variants.
type EnumTypeDeclaration struct {
	baseDeclaration
	Variants []string
}

func (EnumTypeDeclaration) typeDeclaration() {}

func (n *EnumTypeDeclaration) String() string {
	return "enum " + n.Name + " {\n" + indent(strings.Join(n.Variants, "\n")) + "\n}"
}

// UnionTypeVariant is implemented by each of the three union-variant
// shapes: symbol, tuple, struct.
type UnionTypeVariant interface {
	Node
	VariantName() string
	unionTypeVariant()
}

type baseUnionVariant struct {
	baseNode
	Name string
}

func (v baseUnionVariant) VariantName() string { return v.Name }
func (baseUnionVariant) unionTypeVariant()      {}

// UnionTypeSymbolVariant carries no payload.
type UnionTypeSymbolVariant struct{ baseUnionVariant }

func (n *UnionTypeSymbolVariant) String() string { return n.Name }

// UnionTypeTupleVariant carries an ordered, unnamed payload.
type UnionTypeTupleVariant struct {
	baseUnionVariant
	Elements []TypeExpression
}

func (n *UnionTypeTupleVariant) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}

// UnionTypeStructVariant carries a named-field payload.
type UnionTypeStructVariant struct {
	baseUnionVariant
	Fields []*StructTypeField
}

func (n *UnionTypeStructVariant) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.String()
	}
	return n.Name + " {\n" + indent(strings.Join(parts, ",\n")) + "\n}"
}

// UnionTypeDeclaration declares a nominal, closed sum of variants.
type UnionTypeDeclaration struct {
	genericTypeDeclaration
	Variants []UnionTypeVariant
}

func (n *UnionTypeDeclaration) String() string {
	parts := make([]string, len(n.Variants))
	for i, v := range n.Variants {
		parts[i] = v.String()
	}
	return "union " + n.Name + n.genericParamsString() + " {\n" +
		indent(strings.Join(parts, "\n")) + "\n}"
}
