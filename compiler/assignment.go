package compiler

import (
	"dmasm/asm"
	"dmasm/ast"
	"dmasm/operands"
)

var augOps = map[ast.AssignOp]asm.AugOp{
	ast.AssignAdd:    asm.AugAdd,
	ast.AssignSub:    asm.AugSub,
	ast.AssignMul:    asm.AugMul,
	ast.AssignDiv:    asm.AugDiv,
	ast.AssignMod:    asm.AugMod,
	ast.AssignBand:   asm.AugBand,
	ast.AssignBor:    asm.AugBor,
	ast.AssignBxor:   asm.AugBxor,
	ast.AssignLShift: asm.AugLShift,
	ast.AssignRShift: asm.AugRShift,
}

// emitAssign compiles assignment and compound assignment. The left-hand
// side is compiled first so a field or list target addresses its base
// before the right-hand side runs; simple writable slots emit nothing for
// the target, so the right-hand side effectively evaluates first there.
// The left-hand side is compiled without its own short-circuit scope: a
// safe-navigated target short-circuits the whole enclosing expression.
func (c *Compiler) emitAssign(op ast.AssignOp, lhs, rhs ast.Expression) (evalKind, error) {
	kind, err := c.emitInnerExpr(lhs)
	if err != nil {
		return nil, err
	}

	switch k := kind.(type) {
	case kindVar:
		if !isWritable(k.v) {
			return nil, errCode(ErrExpectedLValue)
		}
		if err := c.emitAssignRHS(rhs); err != nil {
			return nil, err
		}
		c.emitStore(op, k.v)
		return kindVar{v: k.v}, nil

	case kindField:
		v := k.chain.field(k.field)
		if err := c.emitAssignRHS(rhs); err != nil {
			return nil, err
		}
		c.emitStore(op, v)
		// The store routed the holder through the cache register, so the
		// assigned field is readable off it as the expression result.
		return kindVar{v: operands.Field{Name: k.field}}, nil

	case kindSafeField:
		label := c.shortCircuit()
		c.emit(asm.GetVar{Var: k.chain.hold()})
		c.emit(asm.SetCacheJmpIfNull{Label: label})
		v := operands.Field{Name: k.field}
		if err := c.emitAssignRHS(rhs); err != nil {
			return nil, err
		}
		c.emitStore(op, v)
		return kindVar{v: v}, nil

	case kindListRef:
		// List and index are already on the stack, in source order.
		if err := c.emitAssignRHS(rhs); err != nil {
			return nil, err
		}
		if op == ast.Assign {
			c.emit(asm.ListSet{})
		} else {
			c.emit(asm.ListAug{Op: augOps[op]})
		}
		return kindStack{}, nil
	}

	return nil, errCode(ErrExpectedLValue)
}

func (c *Compiler) emitAssignRHS(rhs ast.Expression) error {
	kind, err := c.emitExpr(rhs)
	if err != nil {
		return err
	}
	_, err = c.moveToStack(kind)
	return err
}

func (c *Compiler) emitStore(op ast.AssignOp, v operands.Variable) {
	if op == ast.Assign {
		c.emit(asm.SetVar{Var: v})
		return
	}
	c.emit(asm.Aug{Op: augOps[op], Var: v})
}
