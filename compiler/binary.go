package compiler

import (
	"dmasm/asm"
	"dmasm/ast"
)

var binaryIns = map[ast.BinaryOp]asm.Instruction{
	ast.BinaryAdd:    asm.Add{},
	ast.BinarySub:    asm.Sub{},
	ast.BinaryMul:    asm.Mul{},
	ast.BinaryDiv:    asm.Div{},
	ast.BinaryMod:    asm.Mod{},
	ast.BinaryPow:    asm.Pow{},
	ast.BinaryLt:     asm.CmpLt{},
	ast.BinaryLe:     asm.CmpLe{},
	ast.BinaryGt:     asm.CmpGt{},
	ast.BinaryGe:     asm.CmpGe{},
	ast.BinaryEq:     asm.CmpEq{},
	ast.BinaryNe:     asm.CmpNe{},
	ast.BinaryBand:   asm.Band{},
	ast.BinaryBor:    asm.Bor{},
	ast.BinaryBxor:   asm.Bxor{},
	ast.BinaryLShift: asm.LShift{},
	ast.BinaryRShift: asm.RShift{},
	ast.BinaryIn:     asm.IsIn{},
}

// emitBinary compiles a binary operation. && and || jump to the shared
// short-circuit label while the left operand still determines the result;
// `to` leaves its two operands on the stack as a range.
func (c *Compiler) emitBinary(op ast.BinaryOp, lhs, rhs ast.Expression) (evalKind, error) {
	kind, err := c.emitExpr(lhs)
	if err != nil {
		return nil, err
	}
	if _, err := c.moveToStack(kind); err != nil {
		return nil, err
	}

	switch op {
	case ast.BinaryAnd:
		c.emit(asm.JmpAnd{Label: c.shortCircuit()})
	case ast.BinaryOr:
		c.emit(asm.JmpOr{Label: c.shortCircuit()})
	}

	kind, err = c.emitExpr(rhs)
	if err != nil {
		return nil, err
	}
	if _, err := c.moveToStack(kind); err != nil {
		return nil, err
	}

	switch op {
	case ast.BinaryAnd, ast.BinaryOr:
		// The right operand's value is the result; the jump already
		// covered the short-circuit case.
	case ast.BinaryTo:
		return kindRange{}, nil
	default:
		c.emit(binaryIns[op])
	}

	return kindStack{}, nil
}
