// Package passes implements the five typed passes of the semantic
// pipeline (the validator is the sixth and lives alongside in validate.go):
// type-expression lowering, declared-type resolution, expression
// annotation, type-expression instantiation, and type checking, grounded on
// original_source/llvm_lang/passes/*.py and the teacher's per-pass file
// layout (internal/semantic/passes/*.go in CWBudde-go-dws).
package passes

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
)

// GenerateType lowers a surface TypeExpression into the type IR. It never
// produces a NewType/StructType/UnionType/EnumType directly — those only
// arise as output of the declared-type resolver; a NamedTypeExpression
// always lowers to an unresolved TypeRef (spec.md §4.2).
func GenerateType(node ast.TypeExpression) (types.Type, error) {
	switch n := node.(type) {
	case *ast.NamedTypeExpression:
		var args []types.Type
		if len(n.GenericArguments) > 0 {
			args = make([]types.Type, len(n.GenericArguments))
			for i, a := range n.GenericArguments {
				t, err := GenerateType(a)
				if err != nil {
					return nil, err
				}
				args[i] = t
			}
		}
		return &types.TypeRef{Name: n.Name, TypeArguments: args}, nil
	case *ast.TupleTypeExpression:
		elements := make([]types.Type, len(n.Elements))
		for i, e := range n.Elements {
			t, err := GenerateType(e)
			if err != nil {
				return nil, err
			}
			elements[i] = t
		}
		return &types.TupleType{Elements: elements}, nil
	case *ast.ArrayTypeExpression:
		elem, err := GenerateType(n.ElementType)
		if err != nil {
			return nil, err
		}
		return &types.ArrayType{Length: n.Length, ElementType: elem}, nil
	case *ast.SliceTypeExpression:
		elem, err := GenerateType(n.ElementType)
		if err != nil {
			return nil, err
		}
		return &types.SliceType{ElementType: elem}, nil
	default:
		return nil, errors.NewNotImplementedError(node.Pos(), "generate_type: unhandled type expression kind %T", node)
	}
}
