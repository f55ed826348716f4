package ast

// Visitor is the side-effecting traversal flavor: it inspects nodes without
// rebuilding the tree (used by the semantic validator and the type
// checker). Concrete visitors embed BaseVisitor and set Self to
// themselves so that recursive descent re-enters the concrete overrides
// rather than the base defaults — Go has no virtual dispatch through
// embedding, so the indirection is explicit.
type Visitor interface {
	VisitStatement(Statement)
	VisitExpression(Expression)
}

// BaseVisitor provides the default "visit every child" traversal. Embed it
// and override the Visit* methods that matter; BaseVisitor.VisitStatement
// and VisitExpression call back into Self for every child so overrides
// still apply recursively.
type BaseVisitor struct {
	Self Visitor
}

func (b *BaseVisitor) self() Visitor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

// VisitProgram visits every top-level statement in order.
func (b *BaseVisitor) VisitProgram(p *Program) {
	for _, s := range p.Statements {
		b.self().VisitStatement(s)
	}
}

// VisitStatement dispatches on the statement's concrete kind and visits its
// children.
func (b *BaseVisitor) VisitStatement(s Statement) {
	v := b.self()
	switch n := s.(type) {
	case *ExpressionStatement:
		v.VisitExpression(n.Expr)
	case *ReturnStatement:
		if n.Value != nil {
			v.VisitExpression(n.Value)
		}
	case *BreakStatement, *ContinueStatement:
	case *VariableDeclaration:
		v.VisitExpression(n.Initializer)
	case *FunctionDeclaration:
		for _, stmt := range n.Body {
			v.VisitStatement(stmt)
		}
	case *NewTypeDeclaration, *StructTypeDeclaration, *UnionTypeDeclaration, *EnumTypeDeclaration:
		// Type declarations carry no expressions to visit.
	default:
		panic("ast.BaseVisitor.VisitStatement: unhandled statement kind")
	}
}

// VisitExpression dispatches on the expression's concrete kind and visits
// its children. Field-access Rhs (an Identifier naming the field) is not
// visited as a value expression, matching spec.md §3.1.
func (b *BaseVisitor) VisitExpression(e Expression) {
	v := b.self()
	switch n := e.(type) {
	case *Identifier, *IntegerLiteral, *FloatLiteral, *StringLiteral:
	case *BinaryOperation:
		v.VisitExpression(n.Lhs)
		if n.Op != OpField {
			v.VisitExpression(n.Rhs)
		}
	case *UnaryOperation:
		v.VisitExpression(n.Rhs)
	case *CallExpression:
		v.VisitExpression(n.Target)
		for _, a := range n.Args {
			v.VisitExpression(a)
		}
	case *TypedExpression:
		v.VisitExpression(n.Value)
	default:
		panic("ast.BaseVisitor.VisitExpression: unhandled expression kind")
	}
}
