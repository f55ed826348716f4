// Package scopes implements the lexical binding stack used by the
// expression annotator, grounded on
// original_source/llvm_lang/scopes.py. A scope is an insertion-ordered
// name -> Type map; lookup walks the stack from innermost to outermost.
// Only same-scope redeclaration is an error — an inner scope may shadow a
// binding from an outer one (spec.md §9 open question, resolved against
// the Python Scope.add_binding, which checks only its own bindings).
package scopes

import (
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/internal/types"
	"github.com/p7g/llvm-lang/pkg/token"
)

// Scope is a single frame of lexical bindings.
type Scope struct {
	order    []string
	bindings map[string]types.Type
}

func newScope() *Scope {
	return &Scope{bindings: make(map[string]types.Type)}
}

// Has reports whether name is bound in this scope (not any enclosing one).
func (s *Scope) Has(name string) bool {
	_, ok := s.bindings[name]
	return ok
}

// Add binds name to typ in this scope. It is an error to rebind a name
// already present in this scope.
func (s *Scope) Add(pos token.Position, name string, typ types.Type) error {
	if s.Has(name) {
		return errors.NewSyntaxError(pos, "redeclaring binding %s", name)
	}
	s.bindings[name] = typ
	s.order = append(s.order, name)
	return nil
}

// Get returns the type bound to name in this scope.
func (s *Scope) Get(name string) (types.Type, bool) {
	t, ok := s.bindings[name]
	return t, ok
}

// Stack is a sequence of Scopes with push/pop and chained lookup.
type Stack struct {
	frames []*Scope
}

// New returns a Stack with a single, empty root scope.
func New() *Stack {
	return &Stack{frames: []*Scope{newScope()}}
}

// NewSeeded returns a Stack whose root scope is pre-populated from seed, in
// iteration order. Used to seed the annotator's scope stack from the
// declared-type table (spec.md §3.5).
func NewSeeded(seed map[string]types.Type) *Stack {
	s := New()
	root := s.frames[0]
	for name, typ := range seed {
		root.bindings[name] = typ
		root.order = append(root.order, name)
	}
	return s
}

// Push introduces a new, empty innermost scope.
func (s *Stack) Push() {
	s.frames = append(s.frames, newScope())
}

// Pop discards the innermost scope.
func (s *Stack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Add binds name in the innermost scope.
func (s *Stack) Add(pos token.Position, name string, typ types.Type) error {
	return s.frames[len(s.frames)-1].Add(pos, name, typ)
}

// Resolve looks up name from innermost to outermost scope.
func (s *Stack) Resolve(pos token.Position, name string) (types.Type, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i].Get(name); ok {
			return t, nil
		}
	}
	return nil, errors.NewReferenceError(pos, "unbound identifier %s", name)
}

// Depth returns the number of frames currently on the stack, mainly useful
// for tests asserting push/pop balance.
func (s *Stack) Depth() int {
	return len(s.frames)
}
