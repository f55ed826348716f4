package types

import (
	"github.com/p7g/llvm-lang/internal/errors"
	"github.com/p7g/llvm-lang/pkg/token"
)

// Substitution maps a template's type variables to concrete arguments,
// keyed by variable name (TypeVariable values are compared by name, not
// pointer identity, so a map[string]Type avoids relying on interning).
type Substitution map[string]Type

func (s Substitution) lookup(v *TypeVariable) (Type, bool) {
	t, ok := s[v.Name]
	return t, ok
}

// Resolver resolves an unresolved TypeRef's name against the declared-type
// table (and any local generic bindings a caller wants to expose).
type Resolver interface {
	Resolve(pos token.Position, name string) (Type, bool)
}

// MapResolver is the common Resolver backed by a plain name table.
type MapResolver map[string]Type

func (r MapResolver) Resolve(_ token.Position, name string) (Type, bool) {
	t, ok := r[name]
	return t, ok
}

// Instantiate substitutes type in t according to arguments, resolving any
// TypeRef against resolver along the way (spec.md §4.5).
func Instantiate(pos token.Position, t Type, arguments Substitution, resolver Resolver) (Type, error) {
	if scoped, ok := Scoped(t); ok {
		var typeArgs []Type
		var err error
		if len(scoped.TypeArguments) > 0 {
			typeArgs = make([]Type, len(scoped.TypeArguments))
			for i, a := range scoped.TypeArguments {
				if v, isVar := a.(*TypeVariable); isVar {
					if bound, ok := arguments.lookup(v); ok {
						typeArgs[i] = bound
						continue
					}
					typeArgs[i] = v
					continue
				}
				typeArgs[i], err = Instantiate(pos, a, arguments, resolver)
				if err != nil {
					return nil, err
				}
			}
		} else {
			typeArgs = make([]Type, 0, len(arguments))
			for _, p := range scoped.TypeParameters {
				if bound, ok := arguments.lookup(p); ok {
					typeArgs = append(typeArgs, bound)
				}
			}
		}
		return instantiateScoped(pos, t, typeArgs, resolver)
	}
	return instantiateUnscoped(pos, t, arguments, resolver)
}

func instantiateUnscoped(pos token.Position, t Type, arguments Substitution, resolver Resolver) (Type, error) {
	switch v := t.(type) {
	case *BoolType, *IntType, *FloatType, *SymbolType, *EnumType, *VoidType:
		return t, nil
	case *TypeVariable:
		if bound, ok := arguments.lookup(v); ok {
			return bound, nil
		}
		return v, nil
	case *TypeRef:
		// generate_type never distinguishes a reference to an enclosing
		// declaration's own type parameter from a reference to another
		// declared type — both lower to the same TypeRef shape (spec.md
		// §4.2). Try the substitution first, so a field or variant payload
		// naming a type parameter (e.g. union Result<T, U> { Ok(T) }) picks
		// up the caller's concrete argument instead of failing to resolve
		// against the declared-type table, which never has an entry for it.
		if bound, ok := arguments[v.Name]; ok {
			return bound, nil
		}
		target, ok := resolver.Resolve(pos, v.Name)
		if !ok {
			return nil, errors.NewReferenceError(pos, "type %s not found", v.Name)
		}
		if len(v.TypeArguments) > 0 {
			scoped, isScoped := Scoped(target)
			if !isScoped {
				return nil, errors.NewTypeError(pos, "type %s is not generic", v.Name)
			}
			if len(v.TypeArguments) > len(scoped.TypeParameters) {
				return nil, errors.NewTypeError(pos, "too many type arguments")
			}
			sub := make(Substitution, len(v.TypeArguments))
			for i, a := range v.TypeArguments {
				inst, err := Instantiate(pos, a, arguments, resolver)
				if err != nil {
					return nil, err
				}
				sub[scoped.TypeParameters[i].Name] = inst
			}
			return Instantiate(pos, target, sub, resolver)
		}
		return Instantiate(pos, target, arguments, resolver)
	case *TupleType:
		elements := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			inst, err := Instantiate(pos, e, arguments, resolver)
			if err != nil {
				return nil, err
			}
			elements[i] = inst
		}
		return &TupleType{Elements: elements}, nil
	case *ArrayType:
		elem, err := Instantiate(pos, v.ElementType, arguments, resolver)
		if err != nil {
			return nil, err
		}
		return &ArrayType{Length: v.Length, ElementType: elem}, nil
	case *SliceType:
		elem, err := Instantiate(pos, v.ElementType, arguments, resolver)
		if err != nil {
			return nil, err
		}
		return &SliceType{ElementType: elem}, nil
	default:
		return nil, errors.NewNotImplementedError(pos, "instantiate_unscoped: unhandled type kind %T", t)
	}
}

// zipTypeVariables pairs a scoped template's parameters with the supplied
// concrete arguments, requiring an exact arity match (spec.md §4.5).
func zipTypeVariables(pos token.Position, params []*TypeVariable, args []Type) (Substitution, error) {
	if len(args) > len(params) {
		return nil, errors.NewTypeError(pos, "too many type arguments")
	}
	if len(args) < len(params) {
		return nil, errors.NewTypeError(pos, "missing type argument %s", params[len(args)].Name)
	}
	sub := make(Substitution, len(params))
	for i, p := range params {
		sub[p.Name] = args[i]
	}
	return sub, nil
}

func instantiateScoped(pos token.Position, t Type, args []Type, resolver Resolver) (Type, error) {
	switch v := t.(type) {
	case *NewType:
		sub, err := zipTypeVariables(pos, v.TypeParameters, args)
		if err != nil {
			return nil, err
		}
		inner, err := Instantiate(pos, v.InnerType, sub, resolver)
		if err != nil {
			return nil, err
		}
		return &NewType{
			ScopedType: ScopedType{TypeParameters: v.TypeParameters, TypeArguments: args},
			Name:       v.Name,
			InnerType:  inner,
		}, nil
	case *StructType:
		sub, err := zipTypeVariables(pos, v.TypeParameters, args)
		if err != nil {
			return nil, err
		}
		fields := make([]StructField, len(v.Fields))
		for i, f := range v.Fields {
			ft, err := Instantiate(pos, f.Type, sub, resolver)
			if err != nil {
				return nil, err
			}
			fields[i] = StructField{Name: f.Name, Type: ft}
		}
		return &StructType{
			ScopedType: ScopedType{TypeParameters: v.TypeParameters, TypeArguments: args},
			Name:       v.Name,
			Fields:     fields,
		}, nil
	case *UnionType:
		sub, err := zipTypeVariables(pos, v.TypeParameters, args)
		if err != nil {
			return nil, err
		}
		variants := make([]UnionVariant, len(v.Variants))
		for i, variant := range v.Variants {
			payload, err := Instantiate(pos, variant.Payload, sub, resolver)
			if err != nil {
				return nil, err
			}
			variants[i] = UnionVariant{Name: variant.Name, Payload: payload}
		}
		return &UnionType{
			ScopedType: ScopedType{TypeParameters: v.TypeParameters, TypeArguments: args},
			Name:       v.Name,
			Variants:   variants,
		}, nil
	case *FunctionType:
		sub, err := zipTypeVariables(pos, v.TypeParameters, args)
		if err != nil {
			return nil, err
		}
		params := make([]FunctionParameter, len(v.Parameters))
		for i, p := range v.Parameters {
			pt, err := Instantiate(pos, p.Type, sub, resolver)
			if err != nil {
				return nil, err
			}
			params[i] = FunctionParameter{Name: p.Name, Type: pt}
		}
		var ret Type
		if v.ReturnType != nil {
			ret, err = Instantiate(pos, v.ReturnType, sub, resolver)
			if err != nil {
				return nil, err
			}
		}
		return &FunctionType{
			ScopedType: ScopedType{TypeParameters: v.TypeParameters, TypeArguments: args},
			Name:       v.Name,
			ReturnType: ret,
			Parameters: params,
		}, nil
	default:
		return nil, errors.NewNotImplementedError(pos, "instantiate_scoped: unhandled type kind %T", t)
	}
}
