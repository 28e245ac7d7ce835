package compiler

import (
	"dmasm/asm"
	"dmasm/ast"
	"dmasm/operands"
)

// emitFollow compiles a postfix access chain atop a starting kind.
// Consecutive plain field accesses are buffered without emitting anything
// until a different access ends the run, so `a.b.c.d` costs one terminal
// instruction rather than a get per hop.
func (c *Compiler) emitFollow(follows []ast.Follow, kind evalKind) (evalKind, error) {
	var buffer []operands.DMString
	var err error

	for _, follow := range follows {
		switch f := follow.(type) {
		case ast.FieldFollow:
			// `.` and `:` compile identically; no type distinction
			// is enforced.
			if !f.Kind.Safe() {
				buffer = append(buffer, operands.DMString(f.Name))
				continue
			}

			kind, err = c.commitFields(kind, &buffer)
			if err != nil {
				return nil, err
			}
			builder, err := c.moveToChain(kind)
			if err != nil {
				return nil, err
			}
			kind = kindSafeField{chain: builder, field: operands.DMString(f.Name)}

		case ast.IndexFollow:
			kind, err = c.commitFields(kind, &buffer)
			if err != nil {
				return nil, err
			}
			if _, err := c.moveToStack(kind); err != nil {
				return nil, err
			}

			index, err := c.emitExpr(f.Index)
			if err != nil {
				return nil, err
			}
			if _, err := c.moveToStack(index); err != nil {
				return nil, err
			}

			kind = kindListRef{}

		case ast.CallFollow:
			kind, err = c.emitFollowCall(f, kind, &buffer)
			if err != nil {
				return nil, err
			}
		}
	}

	return c.commitFields(kind, &buffer)
}

// emitFollowCall compiles one call access. Three shapes: a direct global
// proc call off the `global.` pseudo-object, an ordinary method call, and a
// null-guarded safe call.
func (c *Compiler) emitFollowCall(f ast.CallFollow, kind evalKind, buffer *[]operands.DMString) (evalKind, error) {
	// Keyword arguments on method calls do crazy, not-so-well defined
	// things in the reference implementation. Reject them.
	for _, arg := range f.Args {
		if _, ok := arg.(ast.AssignExpr); ok {
			return nil, errProc(ErrNamedArguments, f.Name)
		}
	}

	if _, isGlobal := kind.(kindGlobal); isGlobal && len(*buffer) == 0 && !f.Kind.Safe() {
		// global.f(...) is a direct global proc call.
		for _, arg := range f.Args {
			argKind, err := c.emitExpr(arg)
			if err != nil {
				return nil, err
			}
			if _, err := c.moveToStack(argKind); err != nil {
				return nil, err
			}
		}
		c.emit(asm.CallGlob{
			ArgCount: uint32(len(f.Args)),
			Proc:     operands.Proc("/proc/" + f.Name),
		})
		return kindStack{}, nil
	}

	kind, err := c.commitFields(kind, buffer)
	if err != nil {
		return nil, err
	}
	if _, err := c.moveToStack(kind); err != nil {
		return nil, err
	}

	var guard operands.Label
	if f.Kind.Safe() {
		// Null receiver: skip argument evaluation and the call, landing
		// just past it with null already pushed.
		guard = c.allocLabel()
		c.emit(asm.SetCacheJmpIfNull{Label: guard})
	} else {
		c.emit(asm.SetVar{Var: operands.Cache{}})
	}

	// Arguments may dispatch through the cache register themselves, so the
	// receiver is parked on the save area until they are evaluated.
	c.emit(asm.PushCache{})
	for _, arg := range f.Args {
		argKind, err := c.emitExpr(arg)
		if err != nil {
			return nil, err
		}
		if _, err := c.moveToStack(argKind); err != nil {
			return nil, err
		}
	}
	c.emit(asm.PopCache{})

	c.emit(asm.Call{
		Proc:     operands.DynamicProc{Name: operands.DMString(f.Name)},
		ArgCount: uint32(len(f.Args)),
	})

	if f.Kind.Safe() {
		c.emitLabel(guard)
	}
	return kindStack{}, nil
}

// commitFields resolves the buffered field run against the current kind,
// leaving the last hop open as a kindField. A small state machine: the
// global pseudo-object reinterprets its first buffered name as a global
// variable and goes around again.
func (c *Compiler) commitFields(kind evalKind, buffer *[]operands.DMString) (evalKind, error) {
	fields := *buffer
	*buffer = nil

	for {
		if len(fields) == 0 {
			return kind, nil
		}

		var builder chainBuilder
		switch k := kind.(type) {
		case kindGlobal:
			// global.a.b: the first name is a global variable, not a
			// field of a pseudo-object.
			kind = kindVar{v: operands.Global{Name: fields[0]}}
			fields = fields[1:]
			continue

		case kindRange:
			return nil, errCode(ErrUnexpectedRange)

		case kindField:
			k.chain.push(k.field)
			builder = k.chain

		default:
			var err error
			builder, err = c.moveToChain(kind)
			if err != nil {
				return nil, err
			}
		}

		last := fields[len(fields)-1]
		for _, field := range fields[:len(fields)-1] {
			builder.push(field)
		}
		return kindField{chain: builder, field: last}, nil
	}
}
