package types

// Primitives is the process-wide name -> Type table seeded into every fresh
// declared-type table. It is never mutated after init.
var Primitives = buildPrimitives()

func buildPrimitives() map[string]Type {
	m := map[string]Type{
		"bool":   &BoolType{},
		"symbol": &SymbolType{},
		"void":   &VoidType{},
	}
	for _, size := range ValidIntSizes {
		for _, signed := range [...]bool{true, false} {
			t := &IntType{Size: size, Signed: signed}
			m[t.String()] = t
		}
	}
	for _, size := range ValidFloatSizes {
		t := &FloatType{Size: size}
		m[t.String()] = t
	}
	return m
}

// ClonePrimitives returns a fresh copy of the primitives table, suitable as
// the seed for a declared-type table that the resolver then augments.
func ClonePrimitives() map[string]Type {
	m := make(map[string]Type, len(Primitives))
	for k, v := range Primitives {
		m[k] = v
	}
	return m
}

// IsPrimitiveName reports whether name names an entry of Primitives.
func IsPrimitiveName(name string) bool {
	_, ok := Primitives[name]
	return ok
}
