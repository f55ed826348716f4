package passes

import (
	"testing"

	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
)

// instantiated builds an *ast.InstantiatedTypeExpression wrapping typ, the
// shape every TypeExpression takes by the time CheckTypes runs.
func instantiated(typ types.Type) *ast.InstantiatedTypeExpression {
	return &ast.InstantiatedTypeExpression{Type: typ}
}

func typedInt(v int64) *ast.TypedExpression {
	return &ast.TypedExpression{Value: &ast.IntegerLiteral{Value: v}, Type: types.Primitives["int64"]}
}

func TestCheckTypesReturnMatchingTypePasses(t *testing.T) {
	f := &ast.FunctionDeclaration{
		ReturnType: instantiated(types.Primitives["int64"]),
		Body:       []ast.Statement{&ast.ReturnStatement{Value: typedInt(1)}},
	}
	f.Name = "f"
	if _, err := CheckTypes(program(f)); err != nil {
		t.Fatalf("CheckTypes failed: %v", err)
	}
}

func TestCheckTypesReturnMismatchFails(t *testing.T) {
	f := &ast.FunctionDeclaration{
		ReturnType: instantiated(types.Primitives["bool"]),
		Body:       []ast.Statement{&ast.ReturnStatement{Value: typedInt(1)}},
	}
	f.Name = "f"
	_, err := CheckTypes(program(f))
	if err == nil {
		t.Fatal("expected a type error returning int64 from a bool function")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.TypeMismatch {
		t.Errorf("error = %#v, want TypeError", err)
	}
}

func TestCheckTypesBareReturnRequiresVoid(t *testing.T) {
	f := &ast.FunctionDeclaration{
		ReturnType: instantiated(types.Primitives["int64"]),
		Body:       []ast.Statement{&ast.ReturnStatement{}},
	}
	f.Name = "f"
	_, err := CheckTypes(program(f))
	if err == nil {
		t.Fatal("expected a type error for a bare return in a non-void function")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.TypeMismatch {
		t.Errorf("error = %#v, want TypeError", err)
	}
}

func TestCheckTypesBareReturnInVoidFunctionPasses(t *testing.T) {
	f := &ast.FunctionDeclaration{
		ReturnType: instantiated(&types.VoidType{}),
		Body:       []ast.Statement{&ast.ReturnStatement{}},
	}
	f.Name = "f"
	if _, err := CheckTypes(program(f)); err != nil {
		t.Fatalf("CheckTypes failed: %v", err)
	}
}

func TestCheckTypesVariableInitializerMismatchFails(t *testing.T) {
	decl := &ast.VariableDeclaration{Type: instantiated(types.Primitives["bool"]), Initializer: typedInt(1)}
	decl.Name = "x"
	f := &ast.FunctionDeclaration{
		ReturnType: instantiated(&types.VoidType{}),
		Body:       []ast.Statement{decl},
	}
	f.Name = "f"
	_, err := CheckTypes(program(f))
	if err == nil {
		t.Fatal("expected a type error initializing a bool with an int64")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.TypeMismatch {
		t.Errorf("error = %#v, want TypeError", err)
	}
}

func TestCheckTypesCallArityMismatchFails(t *testing.T) {
	fnType := &types.FunctionType{
		Name:       "add",
		Parameters: []types.FunctionParameter{{Name: "a", Type: types.Primitives["int64"]}, {Name: "b", Type: types.Primitives["int64"]}},
		ReturnType: types.Primitives["int64"],
	}
	call := &ast.TypedExpression{
		Value: &ast.CallExpression{
			Target: &ast.TypedExpression{Value: &ast.Identifier{Name: "add"}, Type: fnType},
			Args:   []ast.Expression{typedInt(1)},
		},
		Type: types.Primitives["int64"],
	}
	f := &ast.FunctionDeclaration{
		ReturnType: instantiated(types.Primitives["int64"]),
		Body:       []ast.Statement{&ast.ReturnStatement{Value: call}},
	}
	f.Name = "main"
	_, err := CheckTypes(program(f))
	if err == nil {
		t.Fatal("expected a type error calling a 2-parameter function with 1 argument")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.TypeMismatch {
		t.Errorf("error = %#v, want TypeError", err)
	}
}

func TestCheckTypesGenericFunctionBodySkipped(t *testing.T) {
	// A generic function's return type is never instantiated; CheckTypes
	// must not try to assert it and fail with NotImplementedError.
	f := &ast.FunctionDeclaration{
		ReturnType:        namedType("T"),
		GenericParameters: []string{"T"},
		Body:              []ast.Statement{&ast.ReturnStatement{Value: typedInt(1)}},
	}
	f.Name = "identity"
	if _, err := CheckTypes(program(f)); err != nil {
		t.Fatalf("CheckTypes should skip a generic function body entirely, got %v", err)
	}
}
