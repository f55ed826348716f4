// Package compiler wires the parser and the semantic pipeline together
// behind a single entry point, grounded on
// original_source/llvm_lang/compiler.py's `compile` function and on the
// teacher's top-level Analyzer.Analyze orchestration.
package compiler

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/lexer"
	"github.com/p7g/llvm-lang/internal/parser"
	"github.com/p7g/llvm-lang/internal/semantic"
	"github.com/p7g/llvm-lang/internal/semantic/passes"
)

// CheckedProgram is the result of a successful compile: the fully
// instantiated and type-checked AST plus the declared-type table that
// produced it (spec.md §6).
type CheckedProgram struct {
	ASTRoot       *ast.Program
	DeclaredTypes passes.DeclaredTypes
}

// Compile runs parse -> validate_semantics -> resolve_declared_types ->
// annotate_expressions -> instantiate_type_expressions -> check_types over
// sourceText, stopping at the first error from any stage.
func Compile(sourceText string) (*CheckedProgram, error) {
	l := lexer.New(sourceText)
	p := parser.New(l)

	program, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}

	ctx := semantic.NewPassContext()
	pm := semantic.NewPassManager(semantic.DefaultPasses()...)

	program, err = pm.RunAll(program, ctx)
	if err != nil {
		return nil, err
	}

	return &CheckedProgram{ASTRoot: program, DeclaredTypes: ctx.Declared}, nil
}
