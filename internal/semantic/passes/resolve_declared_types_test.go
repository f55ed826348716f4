package passes

import (
	"testing"

	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
)

func structDecl(name string, fields ...*ast.StructTypeField) *ast.StructTypeDeclaration {
	d := &ast.StructTypeDeclaration{Fields: fields}
	d.Name = name
	return d
}

func field(name string, t ast.TypeExpression) *ast.StructTypeField {
	return &ast.StructTypeField{Name: name, Type: t}
}

func TestResolveDeclaredTypesSeedsPrimitives(t *testing.T) {
	table, err := ResolveDeclaredTypes(program())
	if err != nil {
		t.Fatalf("ResolveDeclaredTypes failed: %v", err)
	}
	if _, ok := table["int64"]; !ok {
		t.Error("declared-type table should be seeded with the primitives table")
	}
	if _, ok := table["bool"]; !ok {
		t.Error("declared-type table should contain bool")
	}
}

func TestResolveDeclaredTypesStruct(t *testing.T) {
	decl := structDecl("Greeter", field("name", &ast.SliceTypeExpression{ElementType: namedType("uint8")}))
	table, err := ResolveDeclaredTypes(program(decl))
	if err != nil {
		t.Fatalf("ResolveDeclaredTypes failed: %v", err)
	}
	st, ok := table["Greeter"].(*types.StructType)
	if !ok {
		t.Fatalf("table[Greeter] = %#v, want *types.StructType", table["Greeter"])
	}
	if len(st.Fields) != 1 || st.Fields[0].Name != "name" {
		t.Fatalf("st.Fields = %#v", st.Fields)
	}
	// A non-generic entry is fully resolved: the field's slice element is
	// the concrete uint8 primitive, not an unresolved TypeRef.
	slice, ok := st.Fields[0].Type.(*types.SliceType)
	if !ok {
		t.Fatalf("st.Fields[0].Type = %#v, want *types.SliceType", st.Fields[0].Type)
	}
	if _, ok := slice.ElementType.(*types.IntType); !ok {
		t.Errorf("slice.ElementType = %#v, want *types.IntType (resolved uint8)", slice.ElementType)
	}
}

func TestResolveDeclaredTypesGenericStructLeavesTypeParameterUnresolved(t *testing.T) {
	decl := structDecl("Box", field("value", namedType("T")))
	decl.GenericParameters = []string{"T"}
	table, err := ResolveDeclaredTypes(program(decl))
	if err != nil {
		t.Fatalf("ResolveDeclaredTypes failed: %v", err)
	}
	st, ok := table["Box"].(*types.StructType)
	if !ok {
		t.Fatalf("table[Box] = %#v, want *types.StructType", table["Box"])
	}
	if len(st.TypeParameters) != 1 || st.TypeParameters[0].Name != "T" {
		t.Fatalf("st.TypeParameters = %#v", st.TypeParameters)
	}
	// A generic entry's own type parameter stays an unresolved reference;
	// the instantiator resolves it per call site.
	if _, ok := st.Fields[0].Type.(*types.TypeRef); !ok {
		t.Errorf("st.Fields[0].Type = %#v, want an unresolved *types.TypeRef naming T", st.Fields[0].Type)
	}
}

func TestResolveDeclaredTypesRedeclarationErrors(t *testing.T) {
	a := structDecl("Foo", field("x", namedType("int64")))
	b := structDecl("Foo", field("y", namedType("int64")))
	_, err := ResolveDeclaredTypes(program(a, b))
	if err == nil {
		t.Fatal("expected a type error for redeclaring Foo")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.TypeMismatch {
		t.Errorf("error = %#v, want TypeError", err)
	}
}

func TestResolveDeclaredTypesDuplicateFieldNameRejected(t *testing.T) {
	decl := structDecl("Dup", field("x", namedType("int64")), field("x", namedType("int64")))
	_, err := ResolveDeclaredTypes(program(decl))
	if err == nil {
		t.Fatal("expected a type error for a duplicate field name")
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Kind != errors.TypeMismatch {
		t.Errorf("error = %#v, want TypeError", err)
	}
}

func TestResolveDeclaredTypesEnum(t *testing.T) {
	decl := &ast.EnumTypeDeclaration{Variants: []string{"Red", "Green", "Blue"}}
	decl.Name = "Color"
	table, err := ResolveDeclaredTypes(program(decl))
	if err != nil {
		t.Fatalf("ResolveDeclaredTypes failed: %v", err)
	}
	enum, ok := table["Color"].(*types.EnumType)
	if !ok {
		t.Fatalf("table[Color] = %#v, want *types.EnumType", table["Color"])
	}
	if len(enum.Variants) != 3 {
		t.Fatalf("enum.Variants = %#v", enum.Variants)
	}
}

func TestResolveDeclaredTypesEnumDuplicateVariantRejected(t *testing.T) {
	decl := &ast.EnumTypeDeclaration{Variants: []string{"Red", "Red"}}
	decl.Name = "Color"
	_, err := ResolveDeclaredTypes(program(decl))
	if err == nil {
		t.Fatal("expected a type error for a duplicate enum variant")
	}
}

func TestResolveDeclaredTypesUnionVariantPayloads(t *testing.T) {
	okVariant := &ast.UnionTypeTupleVariant{Elements: []ast.TypeExpression{namedType("int32")}}
	okVariant.Name = "Ok"
	errVariant := &ast.UnionTypeSymbolVariant{}
	errVariant.Name = "Err"

	decl := &ast.UnionTypeDeclaration{Variants: []ast.UnionTypeVariant{okVariant, errVariant}}
	decl.Name = "Result"

	table, err := ResolveDeclaredTypes(program(decl))
	if err != nil {
		t.Fatalf("ResolveDeclaredTypes failed: %v", err)
	}
	u, ok := table["Result"].(*types.UnionType)
	if !ok {
		t.Fatalf("table[Result] = %#v, want *types.UnionType", table["Result"])
	}
	if len(u.Variants) != 2 {
		t.Fatalf("u.Variants = %#v", u.Variants)
	}
	if _, ok := u.Variants[0].Payload.(*types.TupleType); !ok {
		t.Errorf("Ok payload = %#v, want *types.TupleType", u.Variants[0].Payload)
	}
	if _, ok := u.Variants[1].Payload.(*types.VoidType); !ok {
		t.Errorf("Err payload = %#v, want *types.VoidType", u.Variants[1].Payload)
	}
}

func TestResolveDeclaredTypesNewType(t *testing.T) {
	decl := &ast.NewTypeDeclaration{InnerType: namedType("int64")}
	decl.Name = "UserId"
	table, err := ResolveDeclaredTypes(program(decl))
	if err != nil {
		t.Fatalf("ResolveDeclaredTypes failed: %v", err)
	}
	nt, ok := table["UserId"].(*types.NewType)
	if !ok {
		t.Fatalf("table[UserId] = %#v, want *types.NewType", table["UserId"])
	}
	if _, ok := nt.InnerType.(*types.IntType); !ok {
		t.Errorf("nt.InnerType = %#v, want resolved *types.IntType", nt.InnerType)
	}
}

func TestResolveDeclaredTypesFunctionSignature(t *testing.T) {
	f := &ast.FunctionDeclaration{
		ReturnType: namedType("int64"),
		Parameters: []*ast.FunctionParameter{{Name: "a", Type: namedType("int64")}},
	}
	f.Name = "identity"
	table, err := ResolveDeclaredTypes(program(f))
	if err != nil {
		t.Fatalf("ResolveDeclaredTypes failed: %v", err)
	}
	fnType, ok := table["identity"].(*types.FunctionType)
	if !ok {
		t.Fatalf("table[identity] = %#v, want *types.FunctionType", table["identity"])
	}
	if len(fnType.Parameters) != 1 || fnType.Parameters[0].Name != "a" {
		t.Fatalf("fnType.Parameters = %#v", fnType.Parameters)
	}
	if _, ok := fnType.ReturnType.(*types.IntType); !ok {
		t.Errorf("fnType.ReturnType = %#v, want resolved *types.IntType", fnType.ReturnType)
	}
}
