package passes

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
)

// checkVisitor walks the fully-instantiated AST (every Expression is a
// TypedExpression, every TypeExpression an InstantiatedTypeExpression) and
// checks the constraints annotate_expressions and instantiate_type_expressions
// left for last: return-type compatibility, initializer-vs-declared-type
// equality, and call arity, grounded on
// original_source/llvm_lang/passes/check_types.py.
type checkVisitor struct {
	ast.BaseVisitor
	returnTypes []types.Type
	err         error
}

// CheckTypes is the sixth and final pass of the pipeline. It mutates
// nothing; a non-nil error means the program is ill-typed.
func CheckTypes(program *ast.Program) (*ast.Program, error) {
	v := &checkVisitor{}
	v.Self = v
	v.VisitProgram(program)
	if v.err != nil {
		return nil, v.err
	}
	return program, nil
}

func (v *checkVisitor) currentReturnType() types.Type {
	return v.returnTypes[len(v.returnTypes)-1]
}

func (v *checkVisitor) VisitStatement(s ast.Statement) {
	if v.err != nil {
		return
	}
	switch n := s.(type) {
	case *ast.FunctionDeclaration:
		v.visitFunctionDeclaration(n)
	case *ast.ReturnStatement:
		v.visitReturnStatement(n)
	case *ast.VariableDeclaration:
		v.visitVariableDeclaration(n)
	default:
		v.BaseVisitor.VisitStatement(s)
	}
}

func (v *checkVisitor) visitFunctionDeclaration(n *ast.FunctionDeclaration) {
	// Generic function bodies are left opaque by the instantiator and carry
	// no InstantiatedTypeExpression return type; nothing to check here until
	// a call site specializes them.
	if len(n.GenericParameters) > 0 {
		return
	}
	ret, ok := n.ReturnType.(*ast.InstantiatedTypeExpression)
	if !ok {
		v.err = errors.NewNotImplementedError(n.Pos(), "check_types: function %s return type was not instantiated", n.Name)
		return
	}

	v.returnTypes = append(v.returnTypes, ret.Type)
	for _, stmt := range n.Body {
		v.VisitStatement(stmt)
		if v.err != nil {
			break
		}
	}
	v.returnTypes = v.returnTypes[:len(v.returnTypes)-1]
}

func (v *checkVisitor) visitReturnStatement(n *ast.ReturnStatement) {
	current := v.currentReturnType()

	if n.Value == nil {
		if !types.Equal(current, &types.VoidType{}) {
			v.err = errors.NewTypeError(n.Pos(), "missing return value, expected %s", current)
		}
		return
	}

	v.VisitExpression(n.Value)
	if v.err != nil {
		return
	}
	val, ok := n.Value.(*ast.TypedExpression)
	if !ok {
		v.err = errors.NewNotImplementedError(n.Pos(), "check_types: return value was not annotated")
		return
	}
	if !types.Equal(val.Type, current) {
		v.err = errors.NewTypeError(n.Pos(), "cannot return %s, function returns %s", val.Type, current)
	}
}

func (v *checkVisitor) visitVariableDeclaration(n *ast.VariableDeclaration) {
	v.VisitExpression(n.Initializer)
	if v.err != nil {
		return
	}
	declared, ok := n.Type.(*ast.InstantiatedTypeExpression)
	if !ok {
		v.err = errors.NewNotImplementedError(n.Pos(), "check_types: declared type of %s was not instantiated", n.Name)
		return
	}
	init, ok := n.Initializer.(*ast.TypedExpression)
	if !ok {
		v.err = errors.NewNotImplementedError(n.Pos(), "check_types: initializer of %s was not annotated", n.Name)
		return
	}
	if !types.Equal(init.Type, declared.Type) {
		v.err = errors.NewTypeError(n.Pos(), "cannot initialize %s of type %s with value of type %s", n.Name, declared.Type, init.Type)
	}
}

func (v *checkVisitor) VisitExpression(e ast.Expression) {
	if v.err != nil {
		return
	}
	if typed, ok := e.(*ast.TypedExpression); ok {
		if call, ok := typed.Value.(*ast.CallExpression); ok {
			v.checkCallArity(call)
			if v.err != nil {
				return
			}
		}
	}
	v.BaseVisitor.VisitExpression(e)
}

func (v *checkVisitor) checkCallArity(n *ast.CallExpression) {
	target, ok := n.Target.(*ast.TypedExpression)
	if !ok {
		v.err = errors.NewNotImplementedError(n.Pos(), "check_types: call target was not annotated")
		return
	}
	fnType, ok := target.Type.(*types.FunctionType)
	if !ok {
		v.err = errors.NewTypeError(n.Pos(), "%s is not callable", target.Type)
		return
	}
	if len(n.Args) != len(fnType.Parameters) {
		v.err = errors.NewTypeError(n.Pos(), "function %s expects %d arguments, got %d", fnType.Name, len(fnType.Parameters), len(n.Args))
	}
}
