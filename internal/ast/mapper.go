package ast

// Mapper is the value-producing traversal flavor: it rebuilds the tree,
// optionally replacing nodes (used by the expression annotator and the
// type-expression instantiator). As with Visitor, concrete mappers embed
// BaseMapper and set Self to themselves so recursive descent re-enters
// their overrides.
type Mapper interface {
	MapStatement(Statement) Statement
	MapExpression(Expression) Expression
	MapTypeExpression(TypeExpression) TypeExpression
}

// BaseMapper's default for every node kind is "reconstruct the node with
// mapped children" — the identity transform unless a concrete mapper
// overrides the relevant Map* method.
type BaseMapper struct {
	Self Mapper
}

func (b *BaseMapper) self() Mapper {
	if b.Self != nil {
		return b.Self
	}
	return b
}

// MapProgram rebuilds every top-level statement.
func (b *BaseMapper) MapProgram(p *Program) *Program {
	out := make([]Statement, len(p.Statements))
	v := b.self()
	for i, s := range p.Statements {
		out[i] = v.MapStatement(s)
	}
	return &Program{Statements: out}
}

func (b *BaseMapper) MapStatement(s Statement) Statement {
	v := b.self()
	switch n := s.(type) {
	case *ExpressionStatement:
		return &ExpressionStatement{baseStatement: n.baseStatement, Expr: v.MapExpression(n.Expr)}
	case *ReturnStatement:
		value := n.Value
		if value != nil {
			value = v.MapExpression(value)
		}
		return &ReturnStatement{baseStatement: n.baseStatement, Value: value}
	case *BreakStatement:
		return n
	case *ContinueStatement:
		return n
	case *VariableDeclaration:
		return &VariableDeclaration{
			baseDeclaration: n.baseDeclaration,
			Type:            v.MapTypeExpression(n.Type),
			Initializer:     v.MapExpression(n.Initializer),
		}
	case *FunctionDeclaration:
		params := make([]*FunctionParameter, len(n.Parameters))
		for i, p := range n.Parameters {
			params[i] = &FunctionParameter{baseNode: p.baseNode, Name: p.Name, Type: v.MapTypeExpression(p.Type)}
		}
		body := make([]Statement, len(n.Body))
		for i, stmt := range n.Body {
			body[i] = v.MapStatement(stmt)
		}
		return &FunctionDeclaration{
			baseDeclaration:   n.baseDeclaration,
			ReturnType:        v.MapTypeExpression(n.ReturnType),
			GenericParameters: n.GenericParameters,
			Parameters:        params,
			Body:              body,
		}
	case *NewTypeDeclaration:
		return &NewTypeDeclaration{
			genericTypeDeclaration: n.genericTypeDeclaration,
			InnerType:              v.MapTypeExpression(n.InnerType),
		}
	case *StructTypeDeclaration:
		fields := make([]*StructTypeField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = &StructTypeField{baseNode: f.baseNode, Name: f.Name, Type: v.MapTypeExpression(f.Type)}
		}
		return &StructTypeDeclaration{genericTypeDeclaration: n.genericTypeDeclaration, Fields: fields}
	case *UnionTypeDeclaration:
		variants := make([]UnionTypeVariant, len(n.Variants))
		for i, variant := range n.Variants {
			variants[i] = mapUnionVariant(v, variant)
		}
		return &UnionTypeDeclaration{genericTypeDeclaration: n.genericTypeDeclaration, Variants: variants}
	case *EnumTypeDeclaration:
		return n
	default:
		panic("ast.BaseMapper.MapStatement: unhandled statement kind")
	}
}

func mapUnionVariant(v Mapper, variant UnionTypeVariant) UnionTypeVariant {
	switch n := variant.(type) {
	case *UnionTypeSymbolVariant:
		return n
	case *UnionTypeTupleVariant:
		elements := make([]TypeExpression, len(n.Elements))
		for i, e := range n.Elements {
			elements[i] = v.MapTypeExpression(e)
		}
		return &UnionTypeTupleVariant{baseUnionVariant: n.baseUnionVariant, Elements: elements}
	case *UnionTypeStructVariant:
		fields := make([]*StructTypeField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = &StructTypeField{baseNode: f.baseNode, Name: f.Name, Type: v.MapTypeExpression(f.Type)}
		}
		return &UnionTypeStructVariant{baseUnionVariant: n.baseUnionVariant, Fields: fields}
	default:
		panic("ast.mapUnionVariant: unhandled union variant kind")
	}
}

func (b *BaseMapper) MapExpression(e Expression) Expression {
	v := b.self()
	switch n := e.(type) {
	case *Identifier, *IntegerLiteral, *FloatLiteral, *StringLiteral:
		return n
	case *BinaryOperation:
		rhs := n.Rhs
		if n.Op != OpField {
			rhs = v.MapExpression(n.Rhs)
		}
		return &BinaryOperation{baseExpression: n.baseExpression, Lhs: v.MapExpression(n.Lhs), Op: n.Op, Rhs: rhs}
	case *UnaryOperation:
		return &UnaryOperation{baseExpression: n.baseExpression, Op: n.Op, Rhs: v.MapExpression(n.Rhs)}
	case *CallExpression:
		args := make([]Expression, len(n.Args))
		for i, a := range n.Args {
			args[i] = v.MapExpression(a)
		}
		return &CallExpression{baseExpression: n.baseExpression, Target: v.MapExpression(n.Target), Args: args}
	case *TypedExpression:
		return &TypedExpression{baseExpression: n.baseExpression, Value: v.MapExpression(n.Value), Type: n.Type}
	default:
		panic("ast.BaseMapper.MapExpression: unhandled expression kind")
	}
}

func (b *BaseMapper) MapTypeExpression(t TypeExpression) TypeExpression {
	v := b.self()
	switch n := t.(type) {
	case *NamedTypeExpression:
		var args []TypeExpression
		if n.GenericArguments != nil {
			args = make([]TypeExpression, len(n.GenericArguments))
			for i, a := range n.GenericArguments {
				args[i] = v.MapTypeExpression(a)
			}
		}
		return &NamedTypeExpression{baseTypeExpression: n.baseTypeExpression, Name: n.Name, GenericArguments: args}
	case *TupleTypeExpression:
		elements := make([]TypeExpression, len(n.Elements))
		for i, e := range n.Elements {
			elements[i] = v.MapTypeExpression(e)
		}
		return &TupleTypeExpression{baseTypeExpression: n.baseTypeExpression, Elements: elements}
	case *ArrayTypeExpression:
		return &ArrayTypeExpression{
			baseTypeExpression: n.baseTypeExpression,
			ElementType:        v.MapTypeExpression(n.ElementType),
			Length:             n.Length,
		}
	case *SliceTypeExpression:
		return &SliceTypeExpression{baseTypeExpression: n.baseTypeExpression, ElementType: v.MapTypeExpression(n.ElementType)}
	case *InstantiatedTypeExpression:
		return n
	default:
		panic("ast.BaseMapper.MapTypeExpression: unhandled type expression kind")
	}
}
