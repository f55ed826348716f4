package passes

import (
	"testing"

	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
)

func namedType(name string) *ast.NamedTypeExpression {
	return &ast.NamedTypeExpression{Name: name}
}

func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts}
}

func TestValidateReturnInsideFunctionIsOK(t *testing.T) {
	f := &ast.FunctionDeclaration{
		ReturnType: namedType("void"),
		Body:       []ast.Statement{&ast.ReturnStatement{}},
	}
	if _, err := ValidateSemantics(program(f)); err != nil {
		t.Fatalf("ValidateSemantics failed: %v", err)
	}
}

func TestValidateReturnOutsideFunctionFails(t *testing.T) {
	_, err := ValidateSemantics(program(&ast.ReturnStatement{}))
	if err == nil {
		t.Fatal("expected a syntax error for a bare return at the top level")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.Syntax {
		t.Errorf("error = %#v, want SyntaxError", err)
	}
}

func TestValidateBreakAlwaysFailsWithNoLoopConstructs(t *testing.T) {
	f := &ast.FunctionDeclaration{
		ReturnType: namedType("void"),
		Body:       []ast.Statement{&ast.BreakStatement{}},
	}
	_, err := ValidateSemantics(program(f))
	if err == nil {
		t.Fatal("expected a syntax error: there are no loop constructs, so loopDepth is always 0")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.Syntax {
		t.Errorf("error = %#v, want SyntaxError", err)
	}
}

func TestValidateContinueAlwaysFailsWithNoLoopConstructs(t *testing.T) {
	f := &ast.FunctionDeclaration{
		ReturnType: namedType("void"),
		Body:       []ast.Statement{&ast.ContinueStatement{}},
	}
	_, err := ValidateSemantics(program(f))
	if err == nil {
		t.Fatal("expected a syntax error: there are no loop constructs, so loopDepth is always 0")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.Syntax {
		t.Errorf("error = %#v, want SyntaxError", err)
	}
}

func TestValidateNestedFunctionReturnTracksDepthIndependently(t *testing.T) {
	inner := &ast.FunctionDeclaration{
		ReturnType: namedType("void"),
		Body:       []ast.Statement{&ast.ReturnStatement{}},
	}
	outer := &ast.FunctionDeclaration{
		ReturnType: namedType("void"),
		Body:       []ast.Statement{inner, &ast.ReturnStatement{}},
	}
	if _, err := ValidateSemantics(program(outer)); err != nil {
		t.Fatalf("ValidateSemantics failed: %v", err)
	}
}
