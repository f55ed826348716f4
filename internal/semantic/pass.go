// Package semantic composes the six passes under passes/ into a single
// pipeline, grounded on the teacher's Pass/PassManager architecture
// (internal/semantic/pass.go in CWBudde-go-dws) and on
// original_source/llvm_lang/compiler.py's `reduce` over a pass list.
//
// Unlike the teacher, a pass here returns its own error rather than
// appending to a shared context's error list: this pipeline has no
// warnings/hints distinction, so the first error always halts compilation
// (spec.md §5 treats every pass's failure as fatal).
package semantic

import "github.com/p7g/llvm-lang/internal/ast"

// Pass is a single stage of the semantic pipeline.
type Pass interface {
	// Name identifies the pass for logging and diagnostics.
	Name() string

	// Run executes the pass, returning the (possibly rebuilt) program or
	// the first error it encountered.
	Run(program *ast.Program, ctx *PassContext) (*ast.Program, error)
}

// PassManager runs a fixed sequence of passes, threading the program and a
// shared PassContext through each in turn.
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a manager that runs passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// AddPass appends a pass to run after all previously added passes.
func (pm *PassManager) AddPass(pass Pass) {
	pm.passes = append(pm.passes, pass)
}

// Passes returns the manager's registered passes in execution order.
func (pm *PassManager) Passes() []Pass {
	return pm.passes
}

// RunAll runs every pass in order, stopping at the first error.
func (pm *PassManager) RunAll(program *ast.Program, ctx *PassContext) (*ast.Program, error) {
	for _, pass := range pm.passes {
		out, err := pass.Run(program, ctx)
		if err != nil {
			return nil, err
		}
		program = out
	}
	return program, nil
}
