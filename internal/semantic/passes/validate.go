package passes

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/errors"
)

// validationVisitor walks the AST tracking function/loop nesting depth,
// grounded on original_source/llvm_lang/passes/validate_semantics.py and
// the teacher's break/continue-outside-loop check in
// internal/semantic/passes/validation_pass.go. The surface grammar this
// module's parser produces has no loop constructs yet (spec.md §1 leaves
// loops/conditionals out of the core's scope beyond their effect on
// validation), so loopDepth stays at zero for now and every break/continue
// is rejected — the counter exists so a future statement-level pass can
// increment it without touching this visitor's contract.
type validationVisitor struct {
	ast.BaseVisitor
	functionDepth int
	loopDepth     int
	err           error
}

// ValidateSemantics enforces structural constraints that require no type
// information: return must be inside a function, break/continue must be
// inside a loop. Returns the program unchanged on success (spec.md §4.1).
func ValidateSemantics(program *ast.Program) (*ast.Program, error) {
	v := &validationVisitor{}
	v.Self = v
	v.VisitProgram(program)
	if v.err != nil {
		return nil, v.err
	}
	return program, nil
}

func (v *validationVisitor) VisitStatement(s ast.Statement) {
	if v.err != nil {
		return
	}
	switch n := s.(type) {
	case *ast.FunctionDeclaration:
		v.functionDepth++
		for _, stmt := range n.Body {
			v.VisitStatement(stmt)
		}
		v.functionDepth--
	case *ast.ReturnStatement:
		if v.functionDepth == 0 {
			v.err = errors.NewSyntaxError(n.Pos(), "return outside of function")
			return
		}
		v.BaseVisitor.VisitStatement(s)
	case *ast.BreakStatement:
		if v.loopDepth == 0 {
			v.err = errors.NewSyntaxError(n.Pos(), "break outside of loop")
			return
		}
	case *ast.ContinueStatement:
		if v.loopDepth == 0 {
			v.err = errors.NewSyntaxError(n.Pos(), "continue outside of loop")
			return
		}
	default:
		v.BaseVisitor.VisitStatement(s)
	}
}
