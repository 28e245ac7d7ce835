package compiler

import (
	"dmasm/asm"
	"dmasm/ast"
)

// emitTernary compiles `cond ? then : else` with its own pair of labels;
// both branches converge on the end label with their value pushed.
func (c *Compiler) emitTernary(cond, then, otherwise ast.Expression) (evalKind, error) {
	elseLabel := c.allocLabel()
	endLabel := c.allocLabel()

	kind, err := c.emitExpr(cond)
	if err != nil {
		return nil, err
	}
	if _, err := c.moveToStack(kind); err != nil {
		return nil, err
	}
	c.emit(asm.Test{})
	c.emit(asm.Jz{Label: elseLabel})

	kind, err = c.emitExpr(then)
	if err != nil {
		return nil, err
	}
	if _, err := c.moveToStack(kind); err != nil {
		return nil, err
	}
	c.emit(asm.Jmp{Label: endLabel})

	c.emitLabel(elseLabel)
	kind, err = c.emitExpr(otherwise)
	if err != nil {
		return nil, err
	}
	if _, err := c.moveToStack(kind); err != nil {
		return nil, err
	}
	c.emitLabel(endLabel)

	return kindStack{}, nil
}
