package scopes

import (
	"testing"

	"github.com/p7g/llvm-lang/internal/types"
	"github.com/p7g/llvm-lang/pkg/token"
)

func TestAddAndResolve(t *testing.T) {
	s := New()
	if err := s.Add(token.Position{}, "x", &types.BoolType{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got, err := s.Resolve(token.Position{}, "x")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !types.Equal(got, &types.BoolType{}) {
		t.Errorf("Resolve(x) = %s, want bool", got)
	}
}

func TestResolveUnbound(t *testing.T) {
	s := New()
	if _, err := s.Resolve(token.Position{}, "missing"); err == nil {
		t.Error("resolving an unbound name should error")
	}
}

func TestSameScopeRedeclarationErrors(t *testing.T) {
	s := New()
	if err := s.Add(token.Position{}, "x", &types.BoolType{}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if err := s.Add(token.Position{}, "x", &types.SymbolType{}); err == nil {
		t.Error("redeclaring x in the same scope should error")
	}
}

func TestInnerScopeMayShadowOuter(t *testing.T) {
	s := New()
	if err := s.Add(token.Position{}, "x", &types.BoolType{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	s.Push()
	if err := s.Add(token.Position{}, "x", &types.SymbolType{}); err != nil {
		t.Fatalf("shadowing Add in inner scope should succeed, got %v", err)
	}
	got, err := s.Resolve(token.Position{}, "x")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !types.Equal(got, &types.SymbolType{}) {
		t.Errorf("inner scope should shadow outer: got %s, want symbol", got)
	}
	s.Pop()
	got, err = s.Resolve(token.Position{}, "x")
	if err != nil {
		t.Fatalf("Resolve after Pop failed: %v", err)
	}
	if !types.Equal(got, &types.BoolType{}) {
		t.Errorf("after popping the shadow, x should resolve to bool again, got %s", got)
	}
}

func TestPushPopDepth(t *testing.T) {
	s := New()
	if s.Depth() != 1 {
		t.Fatalf("fresh stack should have depth 1, got %d", s.Depth())
	}
	s.Push()
	s.Push()
	if s.Depth() != 3 {
		t.Fatalf("after two pushes depth should be 3, got %d", s.Depth())
	}
	s.Pop()
	if s.Depth() != 2 {
		t.Fatalf("after one pop depth should be 2, got %d", s.Depth())
	}
}

func TestNewSeededPrepopulatesRoot(t *testing.T) {
	seed := map[string]types.Type{"int64": types.Primitives["int64"]}
	s := NewSeeded(seed)
	got, err := s.Resolve(token.Position{}, "int64")
	if err != nil {
		t.Fatalf("Resolve(int64) failed: %v", err)
	}
	if !types.Equal(got, types.Primitives["int64"]) {
		t.Errorf("got %s, want int64", got)
	}
}
