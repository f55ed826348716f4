package passes

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
)

// resolveTypeExpression fully resolves a surface type expression into a
// concrete Type, instantiating any generic arguments along the way. It is
// used to seed scope bindings during expression annotation (spec.md §4.4)
// so that a parameter or variable of a declared, non-generic type (a
// struct, union, newtype or function) resolves to the same concrete Type
// the instantiator pass would later produce for it, rather than the
// TypeRef generate_type always lowers a named type to (spec.md §4.2).
//
// Only call this where every name in scope is either a primitive or a
// top-level declared type: inside a generic function or struct body a
// name may refer to the declaration's own type parameter, which this
// function cannot resolve.
func resolveTypeExpression(n ast.TypeExpression, declared DeclaredTypes) (types.Type, error) {
	switch t := n.(type) {
	case *ast.NamedTypeExpression:
		return resolveNamedTypeExpression(t, declared)
	case *ast.SliceTypeExpression:
		elem, err := resolveTypeExpression(t.ElementType, declared)
		if err != nil {
			return nil, err
		}
		return &types.SliceType{ElementType: elem}, nil
	case *ast.ArrayTypeExpression:
		elem, err := resolveTypeExpression(t.ElementType, declared)
		if err != nil {
			return nil, err
		}
		return &types.ArrayType{Length: t.Length, ElementType: elem}, nil
	case *ast.TupleTypeExpression:
		elements := make([]types.Type, len(t.Elements))
		for i, e := range t.Elements {
			elem, err := resolveTypeExpression(e, declared)
			if err != nil {
				return nil, err
			}
			elements[i] = elem
		}
		return &types.TupleType{Elements: elements}, nil
	default:
		return nil, errors.NewNotImplementedError(n.Pos(), "resolve_type_expression: unhandled type expression kind %T", n)
	}
}

func resolveNamedTypeExpression(n *ast.NamedTypeExpression, declared DeclaredTypes) (types.Type, error) {
	if types.IsPrimitiveName(n.Name) {
		if len(n.GenericArguments) > 0 {
			return nil, errors.NewTypeError(n.Pos(), "type %s is not generic", n.Name)
		}
		return types.Primitives[n.Name], nil
	}

	template, ok := declared[n.Name]
	if !ok {
		return nil, errors.NewReferenceError(n.Pos(), "type %q not found", n.Name)
	}

	scoped, isScoped := types.Scoped(template)
	sub := types.Substitution{}
	if isScoped {
		if len(n.GenericArguments) > len(scoped.TypeParameters) {
			return nil, errors.NewTypeError(n.Pos(), "too many type arguments")
		}
		for i, param := range scoped.TypeParameters {
			if i >= len(n.GenericArguments) {
				break
			}
			arg, err := resolveTypeExpression(n.GenericArguments[i], declared)
			if err != nil {
				return nil, err
			}
			sub[param.Name] = arg
		}
	}

	return types.Instantiate(n.Pos(), template, sub, types.MapResolver(declared))
}
