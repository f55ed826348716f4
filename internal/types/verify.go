package types

import (
	"strconv"

	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/pkg/token"
)

// Verify validates Type-IR well-formedness, independent of the pipeline, as
// a standalone testable property (spec.md §4.8). Declaration registration
// uses VerifyDeclaration instead, not Verify. A raw TypeVariable or TypeRef
// surviving to verification is a reference error; every other violation is
// a type error.
func Verify(t Type) error {
	return verify(t, token.Position{})
}

func verify(t Type, pos token.Position) error {
	switch v := t.(type) {
	case *BoolType, *SymbolType, *VoidType:
		return nil
	case *TypeVariable:
		return errors.NewReferenceError(pos, "type variable %s is not defined", v.Name)
	case *TypeRef:
		return errors.NewReferenceError(pos, "type %s is not defined", v.Name)
	case *IntType:
		if !validSize(v.Size, ValidIntSizes[:]) {
			return errors.NewTypeError(pos, "integer size must be one of: %s", sizeList(ValidIntSizes[:]))
		}
		return nil
	case *FloatType:
		if !validSize(v.Size, ValidFloatSizes[:]) {
			return errors.NewTypeError(pos, "float size must be one of: %s", sizeList(ValidFloatSizes[:]))
		}
		return nil
	case *EnumType:
		return verifyNoDuplicateStrings(pos, v.Variants, "duplicate enum variant %s")
	case *NewType:
		if err := verifyScoped(pos, v.ScopedType); err != nil {
			return err
		}
		return verify(v.InnerType, pos)
	case *UnionType:
		if err := verifyScoped(pos, v.ScopedType); err != nil {
			return err
		}
		names := make([]string, len(v.Variants))
		for i, variant := range v.Variants {
			names[i] = variant.Name
		}
		if err := verifyNoDuplicateStrings(pos, names, "duplicate union variant %s"); err != nil {
			return err
		}
		for _, variant := range v.Variants {
			if err := verify(variant.Payload, pos); err != nil {
				return err
			}
		}
		return nil
	case *StructType:
		if err := verifyScoped(pos, v.ScopedType); err != nil {
			return err
		}
		names := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			names[i] = f.Name
		}
		if err := verifyNoDuplicateStrings(pos, names, "duplicate field name %s"); err != nil {
			return err
		}
		for _, f := range v.Fields {
			if err := verify(f.Type, pos); err != nil {
				return err
			}
		}
		return nil
	case *TupleType:
		for _, e := range v.Elements {
			if err := verify(e, pos); err != nil {
				return err
			}
		}
		return nil
	case *ArrayType:
		if v.Length < 0 {
			return errors.NewTypeError(pos, "array length must be a non-negative integer")
		}
		return verify(v.ElementType, pos)
	case *SliceType:
		return verify(v.ElementType, pos)
	case *FunctionType:
		if err := verifyScoped(pos, v.ScopedType); err != nil {
			return err
		}
		names := make([]string, len(v.Parameters))
		for i, p := range v.Parameters {
			names[i] = p.Name
		}
		if err := verifyNoDuplicateStrings(pos, names, "duplicate parameter name %s"); err != nil {
			return err
		}
		if v.ReturnType != nil {
			if err := verify(v.ReturnType, pos); err != nil {
				return err
			}
		}
		for _, p := range v.Parameters {
			if err := verify(p.Type, pos); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.NewNotImplementedError(pos, "verify: unhandled type kind %T", t)
	}
}

// VerifyDeclaration checks the immediate structural constraints of a
// freshly built declared-type table entry: unique type parameters and
// unique field/variant/parameter names at this declaration's own level.
// Unlike Verify, it does not recurse into field/variant/parameter/return
// types and does not reject a TypeRef or TypeVariable found there — those
// are expected to persist, unresolved, in a declaration's nested type
// positions until the instantiator pass resolves them (spec.md §4.3/§4.5).
// Verify itself is reserved for the fully instantiated Type IR, where no
// TypeRef should remain (spec.md §4.8, testable property 5).
func VerifyDeclaration(t Type) error {
	pos := token.Position{}
	switch v := t.(type) {
	case *EnumType:
		return verifyNoDuplicateStrings(pos, v.Variants, "duplicate enum variant %s")
	case *NewType:
		return verifyScoped(pos, v.ScopedType)
	case *UnionType:
		if err := verifyScoped(pos, v.ScopedType); err != nil {
			return err
		}
		names := make([]string, len(v.Variants))
		for i, variant := range v.Variants {
			names[i] = variant.Name
		}
		return verifyNoDuplicateStrings(pos, names, "duplicate union variant %s")
	case *StructType:
		if err := verifyScoped(pos, v.ScopedType); err != nil {
			return err
		}
		names := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			names[i] = f.Name
		}
		return verifyNoDuplicateStrings(pos, names, "duplicate field name %s")
	case *FunctionType:
		if err := verifyScoped(pos, v.ScopedType); err != nil {
			return err
		}
		names := make([]string, len(v.Parameters))
		for i, p := range v.Parameters {
			names[i] = p.Name
		}
		return verifyNoDuplicateStrings(pos, names, "duplicate parameter name %s")
	default:
		return nil
	}
}

func verifyScoped(pos token.Position, s ScopedType) error {
	if len(s.TypeParameters) == 0 {
		return nil
	}
	names := make([]string, len(s.TypeParameters))
	for i, p := range s.TypeParameters {
		names[i] = p.Name
	}
	return verifyNoDuplicateStrings(pos, names, "duplicate type variable %s")
}

func verifyNoDuplicateStrings(pos token.Position, names []string, format string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return errors.NewTypeError(pos, format, n)
		}
		seen[n] = true
	}
	return nil
}

func validSize(size int, valid []int) bool {
	for _, s := range valid {
		if s == size {
			return true
		}
	}
	return false
}

func sizeList(sizes []int) string {
	out := ""
	for i, s := range sizes {
		if i > 0 {
			out += ", "
		}
		out += strconv.Itoa(s)
	}
	return out
}
