package passes

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
)

// instantiateMapper replaces every ast.TypeExpression with an
// *ast.InstantiatedTypeExpression whose payload is a concrete Type,
// grounded on original_source/llvm_lang/passes/instantiate_type_expressions.py.
// Generic function declarations and generic newtype/struct/union
// declarations are left untouched (opaque) — their bodies, fields and
// payloads are not walked here, since they name the declaration's own type
// parameters; a generic type is instantiated where it is used with type
// arguments (spec.md §4.5, §9 "Generic functions").
type instantiateMapper struct {
	ast.BaseMapper
	declared DeclaredTypes
	err      error
}

// InstantiateTypeExpressions resolves every TypeRef in program's type
// expressions against declared, producing InstantiatedTypeExpression nodes.
func InstantiateTypeExpressions(program *ast.Program, declared DeclaredTypes) (*ast.Program, error) {
	m := &instantiateMapper{declared: declared}
	m.Self = m

	out := m.MapProgram(program)
	if m.err != nil {
		return nil, m.err
	}
	return out, nil
}

func (m *instantiateMapper) MapStatement(s ast.Statement) ast.Statement {
	if m.err != nil {
		return s
	}
	generic := false
	switch n := s.(type) {
	case *ast.FunctionDeclaration:
		generic = len(n.GenericParameters) > 0
	case *ast.NewTypeDeclaration:
		generic = len(n.GenericParameters) > 0
	case *ast.StructTypeDeclaration:
		generic = len(n.GenericParameters) > 0
	case *ast.UnionTypeDeclaration:
		generic = len(n.GenericParameters) > 0
	}
	if generic {
		return s
	}
	return m.BaseMapper.MapStatement(s)
}

func (m *instantiateMapper) MapTypeExpression(t ast.TypeExpression) ast.TypeExpression {
	if m.err != nil {
		return t
	}
	switch n := t.(type) {
	case *ast.NamedTypeExpression:
		return m.instantiateNamed(n)
	case *ast.SliceTypeExpression:
		return m.instantiateSlice(n)
	case *ast.ArrayTypeExpression:
		return m.instantiateArray(n)
	case *ast.TupleTypeExpression:
		return m.instantiateTuple(n)
	default:
		m.err = errors.NewNotImplementedError(t.Pos(), "instantiate_type_expressions: unhandled type expression kind %T", t)
		return t
	}
}

// instantiateElement maps a nested type expression and unwraps the concrete
// Type it resolves to, for composing into a parent array/slice/tuple type.
func (m *instantiateMapper) instantiateElement(t ast.TypeExpression) (types.Type, bool) {
	mapped := m.MapTypeExpression(t)
	if m.err != nil {
		return nil, false
	}
	inst, ok := mapped.(*ast.InstantiatedTypeExpression)
	if !ok {
		m.err = errors.NewNotImplementedError(t.Pos(), "instantiate_type_expressions: element did not resolve to a concrete type")
		return nil, false
	}
	return inst.Type, true
}

func (m *instantiateMapper) instantiateSlice(n *ast.SliceTypeExpression) ast.TypeExpression {
	elem, ok := m.instantiateElement(n.ElementType)
	if !ok {
		return n
	}
	out := &ast.InstantiatedTypeExpression{Type: &types.SliceType{ElementType: elem}}
	out.Position = n.Pos()
	return out
}

func (m *instantiateMapper) instantiateArray(n *ast.ArrayTypeExpression) ast.TypeExpression {
	elem, ok := m.instantiateElement(n.ElementType)
	if !ok {
		return n
	}
	out := &ast.InstantiatedTypeExpression{Type: &types.ArrayType{Length: n.Length, ElementType: elem}}
	out.Position = n.Pos()
	return out
}

func (m *instantiateMapper) instantiateTuple(n *ast.TupleTypeExpression) ast.TypeExpression {
	elements := make([]types.Type, len(n.Elements))
	for i, e := range n.Elements {
		elem, ok := m.instantiateElement(e)
		if !ok {
			return n
		}
		elements[i] = elem
	}
	out := &ast.InstantiatedTypeExpression{Type: &types.TupleType{Elements: elements}}
	out.Position = n.Pos()
	return out
}

func (m *instantiateMapper) instantiateNamed(n *ast.NamedTypeExpression) ast.TypeExpression {
	resolver := types.MapResolver(m.declared)

	if types.IsPrimitiveName(n.Name) {
		if len(n.GenericArguments) > 0 {
			m.err = errors.NewTypeError(n.Pos(), "type %s is not generic", n.Name)
			return n
		}
		out := &ast.InstantiatedTypeExpression{Type: types.Primitives[n.Name]}
		out.Position = n.Pos()
		return out
	}

	template, ok := m.declared[n.Name]
	if !ok {
		m.err = errors.NewReferenceError(n.Pos(), "type %q not found", n.Name)
		return n
	}

	scoped, isScoped := types.Scoped(template)
	sub := types.Substitution{}
	if isScoped {
		if len(n.GenericArguments) > len(scoped.TypeParameters) {
			m.err = errors.NewTypeError(n.Pos(), "too many type arguments")
			return n
		}
		for i, param := range scoped.TypeParameters {
			if i >= len(n.GenericArguments) {
				break
			}
			argExpr := m.MapTypeExpression(n.GenericArguments[i])
			if m.err != nil {
				return n
			}
			inst, ok := argExpr.(*ast.InstantiatedTypeExpression)
			if !ok {
				m.err = errors.NewNotImplementedError(n.Pos(), "instantiate: generic argument did not resolve to a concrete type")
				return n
			}
			sub[param.Name] = inst.Type
		}
	}

	result, err := types.Instantiate(n.Pos(), template, sub, resolver)
	if err != nil {
		m.err = err
		return n
	}

	out := &ast.InstantiatedTypeExpression{Type: result}
	out.Position = n.Pos()
	return out
}
