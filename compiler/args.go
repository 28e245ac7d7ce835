package compiler

import (
	"dmasm/asm"
	"dmasm/ast"
	"dmasm/operands"
)

// ArgShape classifies a call's arguments: plain positional values, keyword
// key/value pairs, or one pre-built spreadable list from arglist().
type ArgShape int

const (
	ShapePositional ArgShape = iota
	ShapeAssoc
	ShapeArgList
)

// splitArgList matches a bare `arglist(expr)` argument and returns the
// wrapped expression.
func splitArgList(expr ast.Expression) (ast.Expression, bool) {
	base, ok := expr.(ast.Base)
	if !ok || len(base.Unary) != 0 || len(base.Follow) != 0 {
		return nil, false
	}
	call, ok := base.Term.(ast.CallTerm)
	if !ok || call.Name != "arglist" || len(call.Args) != 1 {
		return nil, false
	}
	return call.Args[0], true
}

// classifyArgs resolves the argument convention of a call site. arglist()
// must stand alone; a `=` entry anywhere makes the whole call associative.
func classifyArgs(args []ast.Expression) (ArgShape, error) {
	shape := ShapePositional
	for _, arg := range args {
		if _, ok := splitArgList(arg); ok {
			if len(args) != 1 {
				return shape, errCode(ErrUnexpectedArgList)
			}
			return ShapeArgList, nil
		}
		if assign, ok := arg.(ast.AssignExpr); ok {
			if assign.Op != ast.Assign {
				return shape, errCode(ErrNamedArguments)
			}
			shape = ShapeAssoc
		}
	}
	return shape, nil
}

// emitPositionalArgs brings each argument onto the stack in order.
func (c *Compiler) emitPositionalArgs(args []ast.Expression) error {
	for _, arg := range args {
		kind, err := c.emitExpr(arg)
		if err != nil {
			return err
		}
		if _, err := c.moveToStack(kind); err != nil {
			return err
		}
	}
	return nil
}

// emitAssocArgs pushes one key/value pair per argument. A `key = value`
// entry with a bare identifier key pushes the identifier's name; any other
// key expression is evaluated. Positional entries carry a null key.
func (c *Compiler) emitAssocArgs(args []ast.Expression) error {
	for _, arg := range args {
		assign, ok := arg.(ast.AssignExpr)
		if !ok {
			c.emit(asm.PushVal{Value: operands.Null{}})
			if err := c.emitPositionalArgs([]ast.Expression{arg}); err != nil {
				return err
			}
			continue
		}

		if name, ok := identName(assign.LHS); ok {
			c.emit(asm.PushVal{Value: operands.Str(name)})
		} else if err := c.emitPositionalArgs([]ast.Expression{assign.LHS}); err != nil {
			return err
		}

		if err := c.emitPositionalArgs([]ast.Expression{assign.RHS}); err != nil {
			return err
		}
	}
	return nil
}

// emitArgListArg pushes the single pre-built argument list.
func (c *Compiler) emitArgListArg(args []ast.Expression) error {
	inner, ok := splitArgList(args[0])
	if !ok {
		return errCode(ErrUnexpectedArgList)
	}
	return c.emitPositionalArgs([]ast.Expression{inner})
}

// identName matches a bare identifier expression.
func identName(expr ast.Expression) (string, bool) {
	base, ok := expr.(ast.Base)
	if !ok || len(base.Unary) != 0 || len(base.Follow) != 0 {
		return "", false
	}
	ident, ok := base.Term.(ast.Ident)
	if !ok {
		return "", false
	}
	return ident.Name, true
}
