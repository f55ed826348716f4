package compiler

import (
	"testing"

	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
)

func kindOf(t *testing.T, err error) errors.Kind {
	t.Helper()
	ce, ok := err.(*errors.CompilerError)
	if !ok {
		t.Fatalf("error = %#v (%T), want *errors.CompilerError", err, err)
	}
	return ce.Kind
}

func TestHappyPathNominalStruct(t *testing.T) {
	source := `
		struct Greeter { name: uint8[] }
		function greet(g: Greeter): uint8[] {
			return g.name;
		}
	`
	program, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	greeter, ok := program.DeclaredTypes["Greeter"].(*types.StructType)
	if !ok {
		t.Fatalf("DeclaredTypes[Greeter] = %#v, want *types.StructType", program.DeclaredTypes["Greeter"])
	}
	if len(greeter.Fields) != 1 || greeter.Fields[0].Name != "name" {
		t.Fatalf("Greeter fields = %#v", greeter.Fields)
	}
	if _, ok := greeter.Fields[0].Type.(*types.SliceType); !ok {
		t.Errorf("Greeter.name type = %#v, want *types.SliceType", greeter.Fields[0].Type)
	}
}

func TestGenericUnionInstantiation(t *testing.T) {
	source := `
		union Result<T, U> { Ok(T), Err(U) }
		function f(r: Result<int32, uint8[]>): int64 {
			return 0;
		}
	`
	_, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
}

func TestGenericArityMismatchOnInstantiation(t *testing.T) {
	source := `
		union Result<T, U> { Ok(T), Err(U) }
		function f(r: Result<int32>): int32 {
			return 0;
		}
	`
	_, err := Compile(source)
	if err == nil {
		t.Fatal("expected a type error for a missing type argument")
	}
	if kind := kindOf(t, err); kind != errors.TypeMismatch {
		t.Errorf("Kind = %s, want TypeError", kind)
	}
}

func TestPrimitiveWithTypeArgumentsRejected(t *testing.T) {
	source := `
		function f(x: int32<int64>): int32 {
			return 0;
		}
	`
	_, err := Compile(source)
	if err == nil {
		t.Fatal("expected a type error for a primitive with type arguments")
	}
	if kind := kindOf(t, err); kind != errors.TypeMismatch {
		t.Errorf("Kind = %s, want TypeError", kind)
	}
}

func TestReturnTypeMismatch(t *testing.T) {
	source := `
		function f(): int32 {
			return 1.0;
		}
	`
	_, err := Compile(source)
	if err == nil {
		t.Fatal("expected a type error returning a float64 from an int32 function")
	}
	if kind := kindOf(t, err); kind != errors.TypeMismatch {
		t.Errorf("Kind = %s, want TypeError", kind)
	}
}

func TestMisplacedControlFlowAtTopLevel(t *testing.T) {
	tests := []string{
		`return;`,
		`break;`,
		`continue;`,
	}
	for _, source := range tests {
		_, err := Compile(source)
		if err == nil {
			t.Errorf("%q: expected a syntax error at top level", source)
			continue
		}
		if kind := kindOf(t, err); kind != errors.Syntax {
			t.Errorf("%q: Kind = %s, want SyntaxError", source, kind)
		}
	}
}

func TestBreakAndContinueOutsideLoop(t *testing.T) {
	tests := []string{
		`function f(): void { break; }`,
		`function f(): void { continue; }`,
	}
	for _, source := range tests {
		_, err := Compile(source)
		if err == nil {
			t.Errorf("%q: expected a syntax error with no enclosing loop", source)
			continue
		}
		if kind := kindOf(t, err); kind != errors.Syntax {
			t.Errorf("%q: Kind = %s, want SyntaxError", source, kind)
		}
	}
}

func TestRedeclarationOfType(t *testing.T) {
	source := `
		struct Foo { x: int64 }
		struct Foo { y: int64 }
	`
	_, err := Compile(source)
	if err == nil {
		t.Fatal("expected a type error redeclaring Foo")
	}
	if kind := kindOf(t, err); kind != errors.TypeMismatch {
		t.Errorf("Kind = %s, want TypeError", kind)
	}
}

func TestFieldAccessThroughParameterTypeChecks(t *testing.T) {
	source := `
		struct Point { x: int64, y: int64 }
		function sum(p: Point): int64 {
			return p.x + p.y;
		}
	`
	if _, err := Compile(source); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
}

func TestVariableOfStructTypeFieldAccessChecks(t *testing.T) {
	source := `
		struct Point { x: int64, y: int64 }
		function getX(p: Point): int64 {
			let q: Point = p;
			return q.x;
		}
	`
	if _, err := Compile(source); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
}

func TestCallingAnotherDeclaredLaterInSource(t *testing.T) {
	source := `
		function a(): int64 {
			return b();
		}
		function b(): int64 {
			return 1;
		}
	`
	if _, err := Compile(source); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
}

func TestNewTypeDeclarationRoundTrips(t *testing.T) {
	source := `
		newtype UserId = int64;
		function wrap(id: UserId): UserId {
			return id;
		}
	`
	if _, err := Compile(source); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
}

func TestCallArityMismatch(t *testing.T) {
	source := `
		function add(a: int64, b: int64): int64 {
			return a + b;
		}
		function main(): int64 {
			return add(1);
		}
	`
	_, err := Compile(source)
	if err == nil {
		t.Fatal("expected a type error calling add with the wrong number of arguments")
	}
	if kind := kindOf(t, err); kind != errors.TypeMismatch {
		t.Errorf("Kind = %s, want TypeError", kind)
	}
}
