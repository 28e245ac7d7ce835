package compiler

import (
	"fmt"

	"dmasm/asm"
	"dmasm/ast"
	"dmasm/operands"
)

// emitTerm compiles a leaf term.
func (c *Compiler) emitTerm(term ast.Term) (evalKind, error) {
	switch t := term.(type) {
	case ast.NestedExpr:
		return c.emitExpr(t.Expr)

	case ast.NullLit:
		c.emit(asm.PushVal{Value: operands.Null{}})
		return kindStack{}, nil
	case ast.IntLit:
		c.emit(asm.PushInt{Value: t.Value})
		return kindStack{}, nil
	case ast.FloatLit:
		c.emit(asm.PushVal{Value: operands.Number(t.Value)})
		return kindStack{}, nil
	case ast.StringLit:
		c.emit(asm.PushVal{Value: operands.Str(t.Value)})
		return kindStack{}, nil
	case ast.ResourceLit:
		c.emit(asm.PushVal{Value: operands.Resource(t.Path)})
		return kindStack{}, nil
	case ast.BitFlags:
		c.emit(asm.PushInt{Value: t.Bits})
		return kindStack{}, nil

	case ast.Ident:
		return c.findVar(t.Name), nil

	case ast.TypePath:
		if t.HasVars {
			return nil, errCode(ErrUnsupportedPrefabVars)
		}
		c.emit(asm.PushVal{Value: operands.Path(t.Path)})
		return kindStack{}, nil

	case ast.InterpString:
		return nil, errCode(ErrUnsupportedStringInterpolation)
	case ast.InputTerm:
		return nil, errCode(ErrUnsupportedInput)
	case ast.SelfCall, ast.ParentCall:
		// Can't compile these until full proc bodies are compiled.
		return nil, errCode(ErrUnsupportedRelativeCall)

	case ast.CallTerm:
		return c.emitCall(t)
	case ast.DynamicCall:
		return c.emitDynamicCall(t)
	case ast.NewTerm:
		return c.emitNewTerm(t)
	case ast.LocateTerm:
		return c.emitLocate(t)
	case ast.PickTerm:
		return c.emitPick(t)
	case ast.ListTerm:
		return c.emitList(t)
	}

	return nil, &Error{Code: ErrUnsupportedTerm, Detail: fmt.Sprintf("%T", term)}
}

// emitCall compiles a plain call `f(args)`: the builtin table first, then a
// global proc call in whichever argument convention the args classify to.
func (c *Compiler) emitCall(t ast.CallTerm) (evalKind, error) {
	if handled, err := c.emitBuiltin(t.Name, t.Args); handled || err != nil {
		if err != nil {
			return nil, err
		}
		return kindStack{}, nil
	}

	shape, err := classifyArgs(t.Args)
	if err != nil {
		return nil, err
	}

	proc := operands.Proc("/proc/" + t.Name)
	switch shape {
	case ShapePositional:
		if err := c.emitPositionalArgs(t.Args); err != nil {
			return nil, err
		}
		c.emit(asm.CallGlob{ArgCount: uint32(len(t.Args)), Proc: proc})

	case ShapeAssoc:
		if err := c.emitAssocArgs(t.Args); err != nil {
			return nil, err
		}
		c.emit(asm.CallGlobAssoc{ArgCount: uint32(len(t.Args)), Proc: proc})

	case ShapeArgList:
		if err := c.emitArgListArg(t.Args); err != nil {
			return nil, err
		}
		c.emit(asm.CallGlobArgList{Proc: proc})
	}

	return kindStack{}, nil
}

// emitDynamicCall compiles `call(...)(...)`. One left-hand argument is a
// path call, two are an object/name call.
func (c *Compiler) emitDynamicCall(t ast.DynamicCall) (evalKind, error) {
	if len(t.LHS) == 0 {
		return nil, &Error{
			Code:  ErrMissingArgument,
			Proc:  "call",
			Index: 1,
			Name:  "ProcRef/Object/LibName",
		}
	}
	if len(t.LHS) > 2 {
		return nil, &Error{Code: ErrTooManyArguments, Proc: "call", Expected: 2}
	}

	shape, err := classifyArgs(t.RHS)
	if err != nil {
		return nil, err
	}

	if err := c.emitPositionalArgs(t.LHS); err != nil {
		return nil, err
	}

	switch shape {
	case ShapePositional:
		if err := c.emitPositionalArgs(t.RHS); err != nil {
			return nil, err
		}
	case ShapeAssoc:
		if err := c.emitAssocArgs(t.RHS); err != nil {
			return nil, err
		}
	case ShapeArgList:
		if err := c.emitArgListArg(t.RHS); err != nil {
			return nil, err
		}
	}

	count := uint32(len(t.RHS))
	switch {
	case len(t.LHS) == 1 && shape == ShapePositional:
		c.emit(asm.CallPath{ArgCount: count})
	case len(t.LHS) == 1 && shape == ShapeAssoc:
		c.emit(asm.CallPathAssoc{ArgCount: count})
	case len(t.LHS) == 1:
		c.emit(asm.CallPathArgList{})
	case shape == ShapePositional:
		c.emit(asm.CallName{ArgCount: count})
	case shape == ShapeAssoc:
		c.emit(asm.CallNameAssoc{ArgCount: count})
	default:
		c.emit(asm.CallNameArgList{})
	}

	return kindStack{}, nil
}

// emitNewTerm pushes the target type, then compiles the arguments as a call.
func (c *Compiler) emitNewTerm(t ast.NewTerm) (evalKind, error) {
	switch {
	case t.Prefab != nil:
		if t.Prefab.HasVars {
			return nil, errCode(ErrUnsupportedPrefabVars)
		}
		c.emit(asm.PushVal{Value: operands.Path(t.Prefab.Path)})

	case t.MiniExpr != nil:
		// The restricted `new holder.field` form: resolve the chain and
		// leave the type value on the stack.
		kind := c.findVar(t.MiniExpr.Ident)
		follows := make([]ast.Follow, len(t.MiniExpr.Fields))
		for i, field := range t.MiniExpr.Fields {
			follows[i] = field
		}
		kind, err := c.emitFollow(follows, kind)
		if err != nil {
			return nil, err
		}
		if _, err := c.moveToStack(kind); err != nil {
			return nil, err
		}

	default:
		return nil, errCode(ErrUnsupportedImplicitNew)
	}

	if err := c.emitPositionalArgs(t.Args); err != nil {
		return nil, err
	}
	c.emit(asm.New{ArgCount: uint32(len(t.Args))})
	return kindStack{}, nil
}

// emitLocate compiles the three supported locate forms.
func (c *Compiler) emitLocate(t ast.LocateTerm) (evalKind, error) {
	// Push everything first to simplify the dispatch below.
	if err := c.emitPositionalArgs(t.Args); err != nil {
		return nil, err
	}

	switch {
	case len(t.Args) == 0:
		return nil, errCode(ErrUnsupportedImplicitLocate)

	// locate(ref|type)
	case len(t.Args) == 1 && t.In == nil:
		c.emit(asm.LocateRef{})

	// locate(type) in container
	case len(t.Args) == 1:
		kind, err := c.emitExpr(t.In)
		if err != nil {
			return nil, err
		}
		if _, err := c.moveToStack(kind); err != nil {
			return nil, err
		}
		c.emit(asm.LocateType{})

	// locate(X, Y, Z)
	case len(t.Args) == 3 && t.In == nil:
		c.emit(asm.LocatePos{})

	default:
		return nil, errCode(ErrInvalidLocateArgs)
	}

	return kindStack{}, nil
}

// emitPick compiles pick. One unweighted argument is a plain random
// selection; multiple branches become a weighted branch table where every
// branch body jumps to a shared end label.
func (c *Compiler) emitPick(t ast.PickTerm) (evalKind, error) {
	switch len(t.Entries) {
	case 0:
		return nil, &Error{Code: ErrMissingArgument, Proc: "pick", Index: 1}

	case 1:
		entry := t.Entries[0]
		if entry.Weight != nil {
			// A weight on a single list is meaningless.
			return nil, errCode(ErrUnexpectedProbability)
		}
		kind, err := c.emitExpr(entry.Value)
		if err != nil {
			return nil, err
		}
		if _, err := c.moveToStack(kind); err != nil {
			return nil, err
		}
		c.emit(asm.Pick{})
		return kindStack{}, nil
	}

	cases := make([]operands.Label, len(t.Entries))
	for i, entry := range t.Entries {
		cases[i] = c.allocLabel()
		if entry.Weight == nil {
			c.emit(asm.PushInt{Value: 100})
			continue
		}
		kind, err := c.emitExpr(entry.Weight)
		if err != nil {
			return nil, err
		}
		if _, err := c.moveToStack(kind); err != nil {
			return nil, err
		}
	}
	c.emit(asm.PickSwitch{Cases: cases})

	end := c.allocLabel()
	for i, entry := range t.Entries {
		c.emitLabel(cases[i])
		kind, err := c.emitExpr(entry.Value)
		if err != nil {
			return nil, err
		}
		if _, err := c.moveToStack(kind); err != nil {
			return nil, err
		}
		c.emit(asm.Jmp{Label: end})
	}
	c.emitLabel(end)

	return kindStack{}, nil
}

// emitList compiles a list literal. Any associative entry switches the
// whole literal to key/value pairs; plain entries then carry a null key.
func (c *Compiler) emitList(t ast.ListTerm) (evalKind, error) {
	assoc := false
	for _, entry := range t.Entries {
		if _, inner := splitArgList(entry); inner {
			// A spreadable argument list is not a concrete value.
			return nil, errCode(ErrUnexpectedArgList)
		}
		if _, ok := entry.(ast.AssignExpr); ok {
			assoc = true
		}
	}

	if !assoc {
		if err := c.emitPositionalArgs(t.Entries); err != nil {
			return nil, err
		}
		c.emit(asm.NewList{Count: uint32(len(t.Entries))})
		return kindStack{}, nil
	}

	if err := c.emitAssocArgs(t.Entries); err != nil {
		return nil, err
	}
	c.emit(asm.NewAssocList{Count: uint32(len(t.Entries))})
	return kindStack{}, nil
}
