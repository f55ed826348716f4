package semantic

import "github.com/p7g/llvm-lang/internal/semantic/passes"

// PassContext threads state produced by one pass to the passes that need it.
// The declared-type table is the only thing later passes depend on; it is
// filled in by the declared-type resolver and read by every pass after it,
// grounded on the teacher's PassContext in internal/semantic/pass_context.go
// though without that type's scope stack and registries, which this
// pipeline's passes keep privately instead (internal/scopes.Stack).
type PassContext struct {
	Declared passes.DeclaredTypes
}

// NewPassContext returns an empty context ready for the first pass.
func NewPassContext() *PassContext {
	return &PassContext{}
}
