// Package types implements the type intermediate representation: a closed
// sum of value-equal, immutable type descriptors. Recursion through
// user-declared types is expressed by name via TypeRef and resolved on
// demand during instantiation; the IR itself never forms reference cycles.
package types

import (
	"fmt"
	"strings"
)

// Type is the closed sum of all type-IR kinds. Every concrete type in this
// package embeds the unexported marker so the set of implementations stays
// closed to this package.
type Type interface {
	fmt.Stringer
	isType()
}

type typeNode struct{}

func (typeNode) isType() {}

// ValidIntSizes are the permitted bit widths for IntType.
var ValidIntSizes = [...]int{8, 16, 32, 64, 128}

// ValidFloatSizes are the permitted bit widths for FloatType.
var ValidFloatSizes = [...]int{32, 64}

// IntType is a fixed-width signed or unsigned integer.
type IntType struct {
	typeNode
	Size   int
	Signed bool
}

func (t *IntType) String() string {
	prefix := "u"
	if t.Signed {
		prefix = ""
	}
	return fmt.Sprintf("%sint%d", prefix, t.Size)
}

// FloatType is a fixed-width IEEE float.
type FloatType struct {
	typeNode
	Size int
}

func (t *FloatType) String() string { return fmt.Sprintf("float%d", t.Size) }

// BoolType is the boolean primitive.
type BoolType struct{ typeNode }

func (*BoolType) String() string { return "bool" }

// SymbolType is an interned-identifier primitive, checked at compile time
// and represented as usize at runtime.
type SymbolType struct{ typeNode }

func (*SymbolType) String() string { return "symbol" }

// VoidType is the absence of a value (e.g. a function with no return type).
type VoidType struct{ typeNode }

func (*VoidType) String() string { return "void" }

// EnumType is a closed set of named, unitary variants.
type EnumType struct {
	typeNode
	Name     string
	Variants []string
}

func (t *EnumType) String() string { return t.Name }

// TypeVariable is a binder-scoped generic parameter. A TypeVariable that
// survives instantiation unbound is a reference error.
type TypeVariable struct {
	typeNode
	Name string
}

func (t *TypeVariable) String() string { return t.Name }

// TypeRef is an unresolved, by-name reference to a declared type, carrying
// its own (unresolved) type arguments. It exists so the IR can express
// recursive declared types without reference cycles; it is eliminated
// during instantiation.
type TypeRef struct {
	typeNode
	Name          string
	TypeArguments []Type
}

func (t *TypeRef) String() string {
	return t.Name + formatTypeArgs(nil, t.TypeArguments)
}

// TupleType is a structural, ordered product of element types.
type TupleType struct {
	typeNode
	Elements []Type
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	trailing := ""
	if len(t.Elements) == 1 {
		trailing = ","
	}
	return "(" + strings.Join(parts, ", ") + trailing + ")"
}

// ArrayType is a fixed-length, structural, homogeneous sequence.
type ArrayType struct {
	typeNode
	Length      int
	ElementType Type
}

func (t *ArrayType) String() string { return fmt.Sprintf("%s[%d]", t.ElementType, t.Length) }

// SliceType is an unsized, structural, homogeneous sequence.
type SliceType struct {
	typeNode
	ElementType Type
}

func (t *SliceType) String() string { return fmt.Sprintf("%s[]", t.ElementType) }

// ScopedType is embedded by every type that can declare generic type
// parameters: NewType, StructType, UnionType, FunctionType. TypeArguments is
// empty until the type is instantiated, at which point it holds one entry
// per TypeParameters, in order.
type ScopedType struct {
	TypeParameters []*TypeVariable
	TypeArguments  []Type
}

func (s ScopedType) String() string {
	n := len(s.TypeParameters)
	if len(s.TypeArguments) > n {
		n = len(s.TypeArguments)
	}
	if n == 0 {
		return ""
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(s.TypeArguments) && s.TypeArguments[i] != nil {
			parts[i] = s.TypeArguments[i].String()
		} else if i < len(s.TypeParameters) {
			parts[i] = s.TypeParameters[i].String()
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func formatTypeArgs(params []*TypeVariable, args []Type) string {
	return ScopedType{TypeParameters: params, TypeArguments: args}.String()
}

// IsConcrete reports whether a scoped type has been fully instantiated: its
// type arguments match its parameters in arity and none of them is nil.
func (s ScopedType) IsConcrete() bool {
	if len(s.TypeParameters) == 0 {
		return true
	}
	if len(s.TypeArguments) != len(s.TypeParameters) {
		return false
	}
	for _, a := range s.TypeArguments {
		if a == nil {
			return false
		}
	}
	return true
}

// NewType is a nominal wrapper around an inner type ("newtype Name = T").
type NewType struct {
	typeNode
	ScopedType
	Name      string
	InnerType Type
}

func (t *NewType) String() string { return t.Name + t.ScopedType.String() }

// UnionVariant is one alternative of a UnionType: Payload is VoidType for a
// symbol variant, TupleType for a tuple variant, or an anonymous StructType
// for a struct variant.
type UnionVariant struct {
	Name    string
	Payload Type
}

// UnionType is a closed, nominal sum of named variants, each carrying a
// symbol, tuple, or struct-shaped payload.
type UnionType struct {
	typeNode
	ScopedType
	Name     string
	Variants []UnionVariant
}

func (t *UnionType) String() string { return t.Name + t.ScopedType.String() }

// StructField is one named, typed member of a StructType.
type StructField struct {
	Name string
	Type Type
}

// StructType is a nominal (or anonymous, for union struct-variant payloads)
// product of named fields.
type StructType struct {
	typeNode
	ScopedType
	Name   string
	Fields []StructField
}

func (t *StructType) String() string { return t.Name + t.ScopedType.String() }

// FunctionParameter is one named, typed parameter of a FunctionType.
type FunctionParameter struct {
	Name string
	Type Type
}

// FunctionType is a nominal (or anonymous, when Name == "") callable
// signature.
type FunctionType struct {
	typeNode
	ScopedType
	Name       string
	ReturnType Type // nil means void
	Parameters []FunctionParameter
}

func (t *FunctionType) String() string {
	name := t.Name
	if name == "" {
		name = "<anon>"
	}
	parts := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		parts[i] = fmt.Sprintf("%s %s", p.Type, p.Name)
	}
	ret := Type(&VoidType{})
	if t.ReturnType != nil {
		ret = t.ReturnType
	}
	return fmt.Sprintf("%s %s%s(%s)", ret, name, t.ScopedType.String(), strings.Join(parts, ", "))
}

// Scoped returns the type's embedded ScopedType for generic code that needs
// to inspect type parameters/arguments without a type switch on the kind.
func Scoped(t Type) (ScopedType, bool) {
	switch v := t.(type) {
	case *NewType:
		return v.ScopedType, true
	case *UnionType:
		return v.ScopedType, true
	case *StructType:
		return v.ScopedType, true
	case *FunctionType:
		return v.ScopedType, true
	default:
		return ScopedType{}, false
	}
}

// Equal reports structural, value equality between two types. Two concrete
// instantiations of the same template with equal argument tuples are equal;
// two TypeVariable or TypeRef values are equal only if their names (and, for
// TypeRef, type arguments) match — they are never equal to anything else,
// since an unresolved reference cannot be compared with a concrete type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *IntType:
		y, ok := b.(*IntType)
		return ok && x.Size == y.Size && x.Signed == y.Signed
	case *FloatType:
		y, ok := b.(*FloatType)
		return ok && x.Size == y.Size
	case *BoolType:
		_, ok := b.(*BoolType)
		return ok
	case *SymbolType:
		_, ok := b.(*SymbolType)
		return ok
	case *VoidType:
		_, ok := b.(*VoidType)
		return ok
	case *EnumType:
		y, ok := b.(*EnumType)
		return ok && x.Name == y.Name && equalStrings(x.Variants, y.Variants)
	case *TypeVariable:
		y, ok := b.(*TypeVariable)
		return ok && x.Name == y.Name
	case *TypeRef:
		y, ok := b.(*TypeRef)
		return ok && x.Name == y.Name && equalTypeSlices(x.TypeArguments, y.TypeArguments)
	case *TupleType:
		y, ok := b.(*TupleType)
		return ok && equalTypeSlices(x.Elements, y.Elements)
	case *ArrayType:
		y, ok := b.(*ArrayType)
		return ok && x.Length == y.Length && Equal(x.ElementType, y.ElementType)
	case *SliceType:
		y, ok := b.(*SliceType)
		return ok && Equal(x.ElementType, y.ElementType)
	case *NewType:
		y, ok := b.(*NewType)
		return ok && x.Name == y.Name && equalTypeSlices(x.TypeArguments, y.TypeArguments) &&
			Equal(x.InnerType, y.InnerType)
	case *StructType:
		y, ok := b.(*StructType)
		if !ok || x.Name != y.Name || !equalTypeSlices(x.TypeArguments, y.TypeArguments) ||
			len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !Equal(x.Fields[i].Type, y.Fields[i].Type) {
				return false
			}
		}
		return true
	case *UnionType:
		y, ok := b.(*UnionType)
		if !ok || x.Name != y.Name || !equalTypeSlices(x.TypeArguments, y.TypeArguments) ||
			len(x.Variants) != len(y.Variants) {
			return false
		}
		for i := range x.Variants {
			if x.Variants[i].Name != y.Variants[i].Name ||
				!Equal(x.Variants[i].Payload, y.Variants[i].Payload) {
				return false
			}
		}
		return true
	case *FunctionType:
		y, ok := b.(*FunctionType)
		if !ok || x.Name != y.Name || !equalTypeSlices(x.TypeArguments, y.TypeArguments) ||
			len(x.Parameters) != len(y.Parameters) || !Equal(x.ReturnType, y.ReturnType) {
			return false
		}
		for i := range x.Parameters {
			if x.Parameters[i].Name != y.Parameters[i].Name ||
				!Equal(x.Parameters[i].Type, y.Parameters[i].Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalTypeSlices(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether t is an IntType or FloatType.
func IsNumeric(t Type) bool {
	switch t.(type) {
	case *IntType, *FloatType:
		return true
	default:
		return false
	}
}
