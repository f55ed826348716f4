package semantic

import (
	"github.com/p7g/llvm-lang/internal/ast"
	"github.com/p7g/llvm-lang/internal/semantic/passes"
)

// DefaultPasses returns the five-pass pipeline in spec order: validate,
// resolve_declared_types, annotate_expressions, instantiate_type_expressions,
// check_types. Each adapts one of passes/'s standalone functions to the Pass
// interface.
func DefaultPasses() []Pass {
	return []Pass{
		validatePass{},
		resolveDeclaredTypesPass{},
		annotateExpressionsPass{},
		instantiateTypeExpressionsPass{},
		checkTypesPass{},
	}
}

type validatePass struct{}

func (validatePass) Name() string { return "validate_semantics" }

func (validatePass) Run(program *ast.Program, _ *PassContext) (*ast.Program, error) {
	return passes.ValidateSemantics(program)
}

type resolveDeclaredTypesPass struct{}

func (resolveDeclaredTypesPass) Name() string { return "resolve_declared_types" }

func (resolveDeclaredTypesPass) Run(program *ast.Program, ctx *PassContext) (*ast.Program, error) {
	declared, err := passes.ResolveDeclaredTypes(program)
	if err != nil {
		return nil, err
	}
	ctx.Declared = declared
	return program, nil
}

type annotateExpressionsPass struct{}

func (annotateExpressionsPass) Name() string { return "annotate_expressions" }

func (annotateExpressionsPass) Run(program *ast.Program, ctx *PassContext) (*ast.Program, error) {
	return passes.AnnotateExpressions(program, ctx.Declared)
}

type instantiateTypeExpressionsPass struct{}

func (instantiateTypeExpressionsPass) Name() string { return "instantiate_type_expressions" }

func (instantiateTypeExpressionsPass) Run(program *ast.Program, ctx *PassContext) (*ast.Program, error) {
	return passes.InstantiateTypeExpressions(program, ctx.Declared)
}

type checkTypesPass struct{}

func (checkTypesPass) Name() string { return "check_types" }

func (checkTypesPass) Run(program *ast.Program, _ *PassContext) (*ast.Program, error) {
	return passes.CheckTypes(program)
}
