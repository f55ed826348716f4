package passes

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/scopes"
	"github.com/p7g/llvm-lang/internal/types"
	"github.com/p7g/llvm-lang/pkg/token"
)

// annotateMapper wraps every Expression subtree in a *ast.TypedExpression
// carrying its inferred type, driven by a scope stack seeded from the
// declared-type table (spec.md §4.4), grounded on
// original_source/llvm_lang/passes/annotate_expressions.py.
type annotateMapper struct {
	ast.BaseMapper
	declared DeclaredTypes
	scopes   *scopes.Stack
	err      error
	// generic is true while mapping the body of a generic function, where a
	// type expression may name the function's own type parameter instead
	// of a declared type; resolveTypeExpression cannot see those, so
	// parameter/variable scope types fall back to the unresolved
	// GenerateType form there (spec.md §9 "Generic functions").
	generic bool
}

// AnnotateExpressions wraps every expression in the program with its
// inferred type. declared is the table produced by ResolveDeclaredTypes.
func AnnotateExpressions(program *ast.Program, declared DeclaredTypes) (*ast.Program, error) {
	m := &annotateMapper{declared: declared, scopes: scopes.NewSeeded(declared)}
	m.Self = m

	out := m.MapProgram(program)
	if m.err != nil {
		return nil, m.err
	}
	return out, nil
}

func (m *annotateMapper) MapStatement(s ast.Statement) ast.Statement {
	if m.err != nil {
		return s
	}
	switch n := s.(type) {
	case *ast.FunctionDeclaration:
		return m.mapFunctionDeclaration(n)
	case *ast.VariableDeclaration:
		return m.mapVariableDeclaration(n)
	default:
		return m.BaseMapper.MapStatement(s)
	}
}

func (m *annotateMapper) mapFunctionDeclaration(n *ast.FunctionDeclaration) ast.Statement {
	// The function's own name is already bound in the root scope: the root
	// was seeded from the declared-type table, which resolve_declared_types
	// populated with every top-level declaration up front. This is what
	// lets one function call another declared later in the program.
	if _, ok := m.declared[n.Name]; !ok {
		m.err = errors.NewReferenceError(n.Pos(), "undeclared function %s", n.Name)
		return n
	}

	prevGeneric := m.generic
	m.generic = len(n.GenericParameters) > 0
	defer func() { m.generic = prevGeneric }()

	m.scopes.Push()
	defer m.scopes.Pop()

	for _, p := range n.Parameters {
		paramType, err := m.resolveScopeType(p.Type)
		if err != nil {
			m.err = err
			return n
		}
		if err := m.scopes.Add(p.Pos(), p.Name, paramType); err != nil {
			m.err = err
			return n
		}
	}

	body := make([]ast.Statement, len(n.Body))
	for i, stmt := range n.Body {
		body[i] = m.MapStatement(stmt)
		if m.err != nil {
			return n
		}
	}

	out := &ast.FunctionDeclaration{
		ReturnType:        n.ReturnType,
		GenericParameters: n.GenericParameters,
		Parameters:        n.Parameters,
		Body:              body,
	}
	out.Name = n.Name
	out.Position = n.Pos()
	return out
}

func (m *annotateMapper) mapVariableDeclaration(n *ast.VariableDeclaration) ast.Statement {
	initializer := m.MapExpression(n.Initializer)
	if m.err != nil {
		return n
	}
	declType, err := m.resolveScopeType(n.Type)
	if err != nil {
		m.err = err
		return n
	}
	if err := m.scopes.Add(n.Pos(), n.Name, declType); err != nil {
		m.err = err
		return n
	}
	out := &ast.VariableDeclaration{
		Type:        n.Type,
		Initializer: initializer,
	}
	out.Name = n.Name
	out.Position = n.Pos()
	return out
}

// resolveScopeType computes the Type to bind a parameter or variable name
// to in scope. Outside a generic function it resolves fully against the
// declared-type table, so a struct/union/function-typed name is usable
// immediately (field access, calls) without waiting for the instantiator
// pass. Inside a generic function, a type expression may name that
// function's own type parameter, which isn't in the declared-type table;
// fall back to the unresolved generate_type form, which the body never
// needs to compare against anything concrete (spec.md §4.4, §9).
func (m *annotateMapper) resolveScopeType(t ast.TypeExpression) (types.Type, error) {
	if m.generic {
		return GenerateType(t)
	}
	return resolveTypeExpression(t, m.declared)
}

func (m *annotateMapper) MapExpression(e ast.Expression) ast.Expression {
	if m.err != nil {
		return e
	}
	mapped := m.BaseMapper.MapExpression(e)
	if m.err != nil {
		return e
	}
	typ, err := inferType(mapped, m.scopes)
	if err != nil {
		m.err = err
		return e
	}
	out := &ast.TypedExpression{Value: mapped, Type: typ}
	out.Position = e.Pos()
	return out
}

// inferType computes the type of an already-mapped expression (one whose
// children, if any, are already *ast.TypedExpression). It is also the
// entry point used directly by tests exercising spec.md §4.4's inference
// table in isolation.
func inferType(node ast.Expression, scopeStack *scopes.Stack) (types.Type, error) {
	switch n := node.(type) {
	case *ast.TypedExpression:
		return n.Type, nil
	case *ast.Identifier:
		return scopeStack.Resolve(n.Pos(), n.Name)
	case *ast.IntegerLiteral:
		return types.Primitives["int64"], nil
	case *ast.FloatLiteral:
		return types.Primitives["float64"], nil
	case *ast.StringLiteral:
		return &types.ArrayType{Length: len(n.Value), ElementType: types.Primitives["uint8"]}, nil
	case *ast.BinaryOperation:
		return inferBinaryOperation(n)
	case *ast.UnaryOperation:
		rhs, ok := n.Rhs.(*ast.TypedExpression)
		if !ok {
			return nil, errors.NewNotImplementedError(n.Pos(), "infer_type: unary operand was not annotated")
		}
		return rhs.Type, nil
	case *ast.CallExpression:
		return inferCallExpression(n)
	default:
		return nil, errors.NewNotImplementedError(node.Pos(), "infer_type: unhandled expression kind %T", node)
	}
}

func inferBinaryOperation(n *ast.BinaryOperation) (types.Type, error) {
	lhs, ok := n.Lhs.(*ast.TypedExpression)
	if !ok {
		return nil, errors.NewNotImplementedError(n.Pos(), "infer_type: lhs was not annotated")
	}
	lhsType := lhs.Type

	switch n.Op {
	case ast.OpPlus, ast.OpMinus, ast.OpTimes, ast.OpDivide:
		rhs, ok := n.Rhs.(*ast.TypedExpression)
		if !ok {
			return nil, errors.NewNotImplementedError(n.Pos(), "infer_type: rhs was not annotated")
		}
		if !types.Equal(lhsType, rhs.Type) {
			return nil, errors.NewTypeError(n.Pos(), "both sides of %q must have the same type", n.Op)
		}
		if !types.IsNumeric(lhsType) {
			return nil, errors.NewTypeError(n.Pos(), "operands of %q must be numeric, got %s", n.Op, lhsType)
		}
		return lhsType, nil

	case ast.OpField:
		structType, ok := lhsType.(*types.StructType)
		if !ok {
			return nil, errors.NewTypeError(n.Pos(), "cannot access field of non-struct type %s", lhsType)
		}
		fieldName, ok := n.Rhs.(*ast.Identifier)
		if !ok {
			return nil, errors.NewSyntaxError(n.Pos(), "field access requires an identifier")
		}
		for _, f := range structType.Fields {
			if f.Name == fieldName.Name {
				return f.Type, nil
			}
		}
		return nil, errors.NewTypeError(n.Pos(), "struct type %s has no field %q", structType, fieldName.Name)

	case ast.OpIndex:
		rhs, ok := n.Rhs.(*ast.TypedExpression)
		if !ok {
			return nil, errors.NewNotImplementedError(n.Pos(), "infer_type: rhs was not annotated")
		}
		elementType, err := indexElementType(n.Pos(), lhsType)
		if err != nil {
			return nil, err
		}
		if _, ok := rhs.Type.(*types.IntType); !ok {
			return nil, errors.NewTypeError(n.Pos(), "cannot index %s with %s", lhsType, rhs.Type)
		}
		return elementType, nil

	case ast.OpAssign:
		if err := checkAssignTarget(n.Lhs); err != nil {
			return nil, err
		}
		rhs, ok := n.Rhs.(*ast.TypedExpression)
		if !ok {
			return nil, errors.NewNotImplementedError(n.Pos(), "infer_type: rhs was not annotated")
		}
		return rhs.Type, nil

	default:
		return nil, errors.NewNotImplementedError(n.Pos(), "infer_type: unhandled binary operator %s", n.Op)
	}
}

func indexElementType(pos token.Position, t types.Type) (types.Type, error) {
	switch v := t.(type) {
	case *types.ArrayType:
		return v.ElementType, nil
	case *types.SliceType:
		return v.ElementType, nil
	default:
		return nil, errors.NewTypeError(pos, "type %s cannot be indexed", t)
	}
}

// checkAssignTarget validates the lvalue shape of an assignment's lhs:
// an Identifier, or a BinaryOperation whose top operator is index or
// field, or a UnaryOperation(deref, _) (spec.md §4.4).
func checkAssignTarget(lhs ast.Expression) error {
	target := lhs
	if te, ok := target.(*ast.TypedExpression); ok {
		target = te.Value
	}
	switch v := target.(type) {
	case *ast.Identifier:
		return nil
	case *ast.BinaryOperation:
		if v.Op == ast.OpIndex || v.Op == ast.OpField {
			return nil
		}
	case *ast.UnaryOperation:
		if v.Op == ast.OpDeref {
			return nil
		}
	}
	return errors.NewSyntaxError(lhs.Pos(), "invalid assignment target %s", lhs)
}

func inferCallExpression(n *ast.CallExpression) (types.Type, error) {
	target, ok := n.Target.(*ast.TypedExpression)
	if !ok {
		return nil, errors.NewNotImplementedError(n.Pos(), "infer_type: call target was not annotated")
	}
	fnType, ok := target.Type.(*types.FunctionType)
	if !ok {
		return nil, errors.NewTypeError(n.Pos(), "%s is not a function", target.Value)
	}

	for i, arg := range n.Args {
		argExpr, ok := arg.(*ast.TypedExpression)
		if !ok {
			return nil, errors.NewNotImplementedError(n.Pos(), "infer_type: argument %d was not annotated", i)
		}
		if i >= len(fnType.Parameters) {
			break
		}
		if !types.Equal(argExpr.Type, fnType.Parameters[i].Type) {
			return nil, errors.NewTypeError(n.Pos(), "type %s is not assignable to %s", argExpr.Type, fnType.Parameters[i].Type)
		}
	}

	if fnType.ReturnType == nil {
		return &types.VoidType{}, nil
	}
	return fnType.ReturnType, nil
}
