package compiler

import (
	"dmasm/asm"
	"dmasm/ast"
	"dmasm/operands"
)

// emitUnary applies unary operators to a compiled base. Operators are
// stored outermost first, so they apply in reverse slice order.
func (c *Compiler) emitUnary(ops []ast.UnaryOp, kind evalKind) (evalKind, error) {
	var err error
	for i := len(ops) - 1; i >= 0; i-- {
		switch ops[i] {
		case ast.UnaryNeg:
			kind, err = c.emitSimpleUnary(asm.UnaryNeg{}, kind)
		case ast.UnaryNot:
			kind, err = c.emitSimpleUnary(asm.BoolNot{}, kind)
		case ast.UnaryBitNot:
			kind, err = c.emitSimpleUnary(asm.BitNot{}, kind)

		case ast.UnaryPreIncr:
			kind, err = c.emitStep(kind, true, false)
		case ast.UnaryPostIncr:
			kind, err = c.emitStep(kind, true, true)
		case ast.UnaryPreDecr:
			kind, err = c.emitStep(kind, false, false)
		case ast.UnaryPostDecr:
			kind, err = c.emitStep(kind, false, true)
		}
		if err != nil {
			return nil, err
		}
	}
	return kind, nil
}

func (c *Compiler) emitSimpleUnary(ins asm.Instruction, kind evalKind) (evalKind, error) {
	if _, err := c.moveToStack(kind); err != nil {
		return nil, err
	}
	c.emit(ins)
	return kindStack{}, nil
}

// emitStep compiles ++/--. The target must resolve to a variable operand;
// the in-place update brackets the read on the post side or precedes it on
// the pre side.
func (c *Compiler) emitStep(kind evalKind, up, post bool) (evalKind, error) {
	v, err := c.stepTarget(kind)
	if err != nil {
		return nil, err
	}

	if post {
		c.emit(asm.GetVar{Var: v})
	}
	if up {
		c.emit(asm.Inc{Var: v})
	} else {
		c.emit(asm.Dec{Var: v})
	}
	if post {
		return kindStack{}, nil
	}
	return kindVar{v: v}, nil
}

// stepTarget resolves the operand ++/-- updates in place. Safe fields keep
// their null guard: a null holder short-circuits with null before any
// update happens.
func (c *Compiler) stepTarget(kind evalKind) (operands.Variable, error) {
	switch k := kind.(type) {
	case kindVar:
		if !isWritable(k.v) {
			return nil, errCode(ErrExpectedFieldReference)
		}
		return k.v, nil

	case kindField:
		return k.chain.field(k.field), nil

	case kindSafeField:
		label := c.shortCircuit()
		c.emit(asm.GetVar{Var: k.chain.hold()})
		c.emit(asm.SetCacheJmpIfNull{Label: label})
		return operands.Field{Name: k.field}, nil
	}

	return nil, errCode(ErrExpectedFieldReference)
}
