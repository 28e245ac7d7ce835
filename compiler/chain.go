package compiler

import "dmasm/operands"

// chainBuilder fuses a run of field accesses rooted at one base variable
// into a single nested operand, so `a.b.c` costs one GetVar instead of a
// get/set pair per hop.
type chainBuilder struct {
	base   operands.Variable
	fields []operands.DMString
}

func newChain(base operands.Variable) chainBuilder {
	return chainBuilder{base: base}
}

// push appends a pending field hop. The full slice expression forces a copy
// on growth; builders are owned by value and must not share backing arrays.
func (b *chainBuilder) push(field operands.DMString) {
	b.fields = append(b.fields[:len(b.fields):len(b.fields)], field)
}

// hold resolves the chain as built, without a final field. Used to fetch
// the holder of a safe-navigated field.
func (b chainBuilder) hold() operands.Variable {
	return resolveChain(b.base, b.fields)
}

// field resolves the chain plus one final hop into a variable operand.
func (b chainBuilder) field(name operands.DMString) operands.Variable {
	fields := append(b.fields[:len(b.fields):len(b.fields)], name)
	return resolveChain(b.base, fields)
}

// resolveChain picks the cheapest encoding: a chain already rooted at the
// cache register reads its first hop as a bare Field, every other hop wraps
// the accumulated operand in SetCache.
func resolveChain(base operands.Variable, fields []operands.DMString) operands.Variable {
	v := base
	for i, f := range fields {
		if i == 0 {
			if _, ok := v.(operands.Cache); ok {
				v = operands.Field{Name: f}
				continue
			}
		}
		v = operands.SetCache{Base: v, Then: operands.Field{Name: f}}
	}
	return v
}
