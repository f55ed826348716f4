package passes

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
	"github.com/p7g/llvm-lang/pkg/token"
)

// DeclaredTypes is the name -> Type table the resolver builds, initialized
// as a copy of the primitives table (spec.md §3.4).
type DeclaredTypes map[string]types.Type

// ResolveDeclaredTypes walks the top-level declarations once, building each
// declaration's Type-IR entry and inserting it into a fresh declared-type
// table seeded with the primitives (spec.md §4.3). Re-declaration of a name
// already in the table is a TypeError.
func ResolveDeclaredTypes(program *ast.Program) (DeclaredTypes, error) {
	table := DeclaredTypes(types.ClonePrimitives())

	for _, stmt := range program.Statements {
		decl, ok := stmt.(ast.TypeDeclaration)
		if !ok {
			continue
		}
		if _, exists := table[decl.DeclName()]; exists {
			return nil, errors.NewTypeError(decl.Pos(), "redeclaration of type %s", decl.DeclName())
		}

		typ, err := resolveOneDeclaredType(decl)
		if err != nil {
			return nil, err
		}
		if err := types.VerifyDeclaration(typ); err != nil {
			return nil, err
		}
		table[decl.DeclName()] = typ
	}

	return resolveNonGenericEntries(table)
}

// resolveNonGenericEntries fully resolves the nested TypeRefs (field types,
// parameter/return types, union payloads) of every non-generic entry against
// the complete table, so that later passes compare concrete types to
// concrete types instead of a concrete type to an unresolved name. A generic
// entry is left exactly as generate_type produced it: its own type
// parameters still appear as unresolved TypeRefs in its nested positions,
// and it is only ever fully resolved by the instantiator, per call site
// (spec.md §4.5, §9 "Generic functions").
func resolveNonGenericEntries(table DeclaredTypes) (DeclaredTypes, error) {
	resolver := types.MapResolver(table)
	resolved := make(DeclaredTypes, len(table))

	for name, typ := range table {
		if scoped, ok := types.Scoped(typ); ok && len(scoped.TypeParameters) > 0 {
			resolved[name] = typ
			continue
		}
		r, err := types.Instantiate(token.Position{}, typ, types.Substitution{}, resolver)
		if err != nil {
			return nil, err
		}
		resolved[name] = r
	}

	return resolved, nil
}

func resolveOneDeclaredType(decl ast.TypeDeclaration) (types.Type, error) {
	switch n := decl.(type) {
	case *ast.NewTypeDeclaration:
		inner, err := GenerateType(n.InnerType)
		if err != nil {
			return nil, err
		}
		return &types.NewType{
			ScopedType: types.ScopedType{TypeParameters: typeVariables(n.GenericParameters)},
			Name:       n.Name,
			InnerType:  inner,
		}, nil

	case *ast.StructTypeDeclaration:
		fields := make([]types.StructField, len(n.Fields))
		for i, f := range n.Fields {
			t, err := GenerateType(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = types.StructField{Name: f.Name, Type: t}
		}
		return &types.StructType{
			ScopedType: types.ScopedType{TypeParameters: typeVariables(n.GenericParameters)},
			Name:       n.Name,
			Fields:     fields,
		}, nil

	case *ast.UnionTypeDeclaration:
		variants := make([]types.UnionVariant, len(n.Variants))
		for i, variant := range n.Variants {
			payload, err := generateUnionVariantPayload(variant)
			if err != nil {
				return nil, err
			}
			variants[i] = types.UnionVariant{Name: variant.VariantName(), Payload: payload}
		}
		return &types.UnionType{
			ScopedType: types.ScopedType{TypeParameters: typeVariables(n.GenericParameters)},
			Name:       n.Name,
			Variants:   variants,
		}, nil

	case *ast.EnumTypeDeclaration:
		return &types.EnumType{Name: n.Name, Variants: append([]string(nil), n.Variants...)}, nil

	case *ast.FunctionDeclaration:
		params := make([]types.FunctionParameter, len(n.Parameters))
		for i, p := range n.Parameters {
			t, err := GenerateType(p.Type)
			if err != nil {
				return nil, err
			}
			params[i] = types.FunctionParameter{Name: p.Name, Type: t}
		}
		ret, err := GenerateType(n.ReturnType)
		if err != nil {
			return nil, err
		}
		return &types.FunctionType{
			ScopedType: types.ScopedType{TypeParameters: typeVariables(n.GenericParameters)},
			Name:       n.Name,
			ReturnType: ret,
			Parameters: params,
		}, nil

	default:
		return nil, errors.NewNotImplementedError(decl.Pos(), "unsupported type declaration %T", decl)
	}
}

// generateUnionVariantPayload encodes a union variant's payload as a Type:
// VoidType for a symbol variant, TupleType for a tuple variant, and an
// anonymous StructType for a struct variant. This corrects the
// `TypeRef("T", ())` placeholder left in original_source's
// resolve_declared_types.py — spec.md §4.3 requires the real payload.
func generateUnionVariantPayload(variant ast.UnionTypeVariant) (types.Type, error) {
	switch v := variant.(type) {
	case *ast.UnionTypeSymbolVariant:
		return &types.VoidType{}, nil
	case *ast.UnionTypeTupleVariant:
		elements := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			t, err := GenerateType(e)
			if err != nil {
				return nil, err
			}
			elements[i] = t
		}
		return &types.TupleType{Elements: elements}, nil
	case *ast.UnionTypeStructVariant:
		fields := make([]types.StructField, len(v.Fields))
		for i, f := range v.Fields {
			t, err := GenerateType(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = types.StructField{Name: f.Name, Type: t}
		}
		return &types.StructType{Name: v.Name, Fields: fields}, nil
	default:
		return nil, errors.NewNotImplementedError(variant.Pos(), "unsupported union variant %T", variant)
	}
}

func typeVariables(names []string) []*types.TypeVariable {
	if len(names) == 0 {
		return nil
	}
	vars := make([]*types.TypeVariable, len(names))
	for i, n := range names {
		vars[i] = &types.TypeVariable{Name: n}
	}
	return vars
}
