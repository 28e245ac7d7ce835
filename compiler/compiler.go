// Package compiler turns parsed DM expressions into a flat instruction/label
// stream for the assembler. Compilation is a pure, single-threaded walk of
// the tree: one Compiler instance owns one output buffer, a label counter
// and a stack of short-circuit scopes, and hands the finished stream to the
// caller only on success.
package compiler

import (
	"fmt"

	"dmasm/asm"
	"dmasm/ast"
	"dmasm/operands"
	"dmasm/parser"
)

// debugFile is the source marker opening every compiled expression.
const debugFile = "<dmasm expression>"

// Compile compiles an expression tree against a list of declared parameter
// names. The produced stream returns a list of the expression value followed
// by the current value of each parameter.
func Compile(expr ast.Expression, params []string) ([]asm.Node, error) {
	return New().Compile(expr, params)
}

// CompileSource parses and compiles a source expression.
func CompileSource(code string, params []string) ([]asm.Node, error) {
	return New().CompileSource(code, params)
}

// Compiler compiles one expression at a time. Instances are not safe for
// concurrent use, but independent instances never share state.
type Compiler struct {
	builtins *Registry

	params        []string
	nodes         []asm.Node
	labelCount    uint32
	shortCircuits []scope
}

// scope is one short-circuit bookkeeping entry: the lazily-placed label that
// jumps past the rest of the enclosing expression, and whether anything
// referenced it.
type scope struct {
	label operands.Label
	used  bool
}

// New returns a compiler using the default builtin table.
func New() *Compiler {
	return NewWithBuiltins(DefaultBuiltins())
}

// NewWithBuiltins returns a compiler resolving builtin proc names through
// the given registry.
func NewWithBuiltins(builtins *Registry) *Compiler {
	return &Compiler{builtins: builtins}
}

// Compile compiles an expression tree. See the package-level Compile.
func (c *Compiler) Compile(expr ast.Expression, params []string) ([]asm.Node, error) {
	c.params = params
	c.nodes = []asm.Node{asm.DbgFile{Path: debugFile}}
	c.labelCount = 0
	c.shortCircuits = c.shortCircuits[:0]

	kind, err := c.emitExpr(expr)
	if err != nil {
		return nil, err
	}
	if _, err := c.moveToStack(kind); err != nil {
		return nil, err
	}

	// Calling convention: the unit returns [expression value, params...]
	// so an inspecting caller can see both the result and the parameter
	// values it was computed from.
	for i := range c.params {
		c.emit(asm.GetVar{Var: operands.Arg(i)})
	}
	c.emit(asm.NewList{Count: uint32(len(c.params)) + 1})
	c.emit(asm.Ret{})

	nodes := c.nodes
	c.nodes = nil
	return nodes, nil
}

// CompileSource parses and compiles a source expression.
func (c *Compiler) CompileSource(code string, params []string) ([]asm.Node, error) {
	expr, err := parser.Parse(code)
	if err != nil {
		return nil, &Error{Code: ErrParse, Err: err}
	}
	return c.Compile(expr, params)
}

// evalKind describes where an in-progress expression's result currently
// lives. Each value is produced by exactly one emission step and consumed by
// exactly one later step.
type evalKind interface {
	kind()
}

type (
	// kindStack: the result is on top of the operand stack.
	kindStack struct{}
	// kindListRef: index on top of the stack, list beneath it.
	kindListRef struct{}
	// kindRange: two stack values from the `to` operator. Never a scalar.
	kindRange struct{}
	// kindGlobal: the global pseudo-object. Must be followed by exactly
	// one field or call access.
	kindGlobal struct{}
	// kindVar: readable/writable through a variable operand.
	kindVar struct{ v operands.Variable }
	// kindField: a deferred final field hop, kept open so a write can
	// target it directly.
	kindField struct {
		chain chainBuilder
		field operands.DMString
	}
	// kindSafeField: like kindField, but null-guarded. A null holder
	// short-circuits the rest of the enclosing expression.
	kindSafeField struct {
		chain chainBuilder
		field operands.DMString
	}
)

func (kindStack) kind()     {}
func (kindListRef) kind()   {}
func (kindRange) kind()     {}
func (kindGlobal) kind()    {}
func (kindVar) kind()       {}
func (kindField) kind()     {}
func (kindSafeField) kind() {}

// isWritable reports whether a variable operand is an independently
// assignable slot, as opposed to a computed reference.
func isWritable(v operands.Variable) bool {
	switch v.(type) {
	case operands.Usr,
		operands.Src,
		operands.Args,
		operands.Dot,
		operands.CacheIndex,
		operands.Arg,
		operands.Local,
		operands.Global:
		return true
	}
	return false
}

func (c *Compiler) emit(ins asm.Instruction) {
	c.nodes = append(c.nodes, ins)
}

func (c *Compiler) emitLabel(label operands.Label) {
	c.nodes = append(c.nodes, asm.Label{Name: label})
}

// allocLabel returns a fresh label name. The counter is strictly increasing
// per instance, so identical input always yields identical label names.
func (c *Compiler) allocLabel() operands.Label {
	label := operands.Label(fmt.Sprintf("LAB_%04X", c.labelCount))
	c.labelCount++
	return label
}

// shortCircuit returns the nearest enclosing short-circuit label and marks
// it used. Short-circuiting operators never allocate their own label.
func (c *Compiler) shortCircuit() operands.Label {
	top := &c.shortCircuits[len(c.shortCircuits)-1]
	top.used = true
	return top.label
}

// findVar resolves a bare identifier. Declared parameters win, most recent
// declaration first; the fixed names resolve to pseudo-slots; anything else
// is a global variable reference, since the surrounding program's namespace
// is not available here.
func (c *Compiler) findVar(ident string) evalKind {
	for i := len(c.params) - 1; i >= 0; i-- {
		if c.params[i] == ident {
			return kindVar{v: operands.Arg(i)}
		}
	}

	switch ident {
	case ".":
		return kindVar{v: operands.Dot{}}
	case "usr":
		return kindVar{v: operands.Usr{}}
	case "src":
		return kindVar{v: operands.Src{}}
	case "args":
		return kindVar{v: operands.Args{}}
	case "world":
		return kindVar{v: operands.World{}}
	case "global":
		return kindGlobal{}
	}

	return kindVar{v: operands.Global{Name: operands.DMString(ident)}}
}

// moveToStack materializes a kind onto the operand stack.
func (c *Compiler) moveToStack(kind evalKind) (evalKind, error) {
	switch k := kind.(type) {
	case kindStack:

	case kindListRef:
		c.emit(asm.ListGet{})

	case kindRange:
		return nil, errCode(ErrUnexpectedRange)
	case kindGlobal:
		return nil, errCode(ErrUnexpectedGlobal)

	case kindVar:
		c.emit(asm.GetVar{Var: k.v})

	case kindField:
		c.emit(asm.GetVar{Var: k.chain.field(k.field)})

	case kindSafeField:
		// Null holder: push null and skip the rest of the expression.
		label := c.shortCircuit()
		c.emit(asm.GetVar{Var: k.chain.hold()})
		c.emit(asm.SetCacheJmpIfNull{Label: label})
		c.emit(asm.GetVar{Var: operands.Field{Name: k.field}})
	}

	return kindStack{}, nil
}

// moveToChain materializes a kind as the root of a field chain.
func (c *Compiler) moveToChain(kind evalKind) (chainBuilder, error) {
	switch k := kind.(type) {
	case kindStack:
		c.emit(asm.SetVar{Var: operands.Cache{}})
		return newChain(operands.Cache{}), nil

	case kindListRef:
		c.emit(asm.ListGet{})
		c.emit(asm.SetVar{Var: operands.Cache{}})
		return newChain(operands.Cache{}), nil

	case kindRange:
		return chainBuilder{}, errCode(ErrUnexpectedRange)
	case kindGlobal:
		return chainBuilder{}, errCode(ErrUnexpectedGlobal)

	case kindVar:
		return newChain(k.v), nil

	case kindField:
		k.chain.push(k.field)
		return k.chain, nil

	case kindSafeField:
		label := c.shortCircuit()
		c.emit(asm.GetVar{Var: k.chain.hold()})
		c.emit(asm.SetCacheJmpIfNull{Label: label})
		c.emit(asm.GetVar{Var: operands.Field{Name: k.field}})
		c.emit(asm.SetVar{Var: operands.Cache{}})
		return newChain(operands.Cache{}), nil
	}

	return chainBuilder{}, errCode(ErrUnexpectedRange)
}

// emitExpr wraps inner emission in a fresh short-circuit scope. The label is
// placed only if something referenced it; all short-circuit paths converge
// there with a value already on the stack.
func (c *Compiler) emitExpr(expr ast.Expression) (evalKind, error) {
	label := c.allocLabel()
	c.shortCircuits = append(c.shortCircuits, scope{label: label})

	kind, err := c.emitInnerExpr(expr)
	if err == nil {
		// A safe field's guard targets this scope's label, so it has to be
		// materialized before the scope is gone.
		if _, ok := kind.(kindSafeField); ok {
			kind, err = c.moveToStack(kind)
		}
	}

	top := c.shortCircuits[len(c.shortCircuits)-1]
	c.shortCircuits = c.shortCircuits[:len(c.shortCircuits)-1]
	if err != nil {
		return nil, err
	}

	if top.used {
		if _, err := c.moveToStack(kind); err != nil {
			return nil, err
		}
		c.emitLabel(top.label)
		return kindStack{}, nil
	}

	return kind, nil
}

func (c *Compiler) emitInnerExpr(expr ast.Expression) (evalKind, error) {
	switch e := expr.(type) {
	case ast.TernaryExpr:
		return c.emitTernary(e.Cond, e.Then, e.Else)
	case ast.BinaryExpr:
		return c.emitBinary(e.Op, e.LHS, e.RHS)
	case ast.AssignExpr:
		return c.emitAssign(e.Op, e.LHS, e.RHS)
	case ast.Base:
		kind, err := c.emitTerm(e.Term)
		if err != nil {
			return nil, err
		}
		kind, err = c.emitFollow(e.Follow, kind)
		if err != nil {
			return nil, err
		}
		return c.emitUnary(e.Unary, kind)
	}
	return nil, &Error{Code: ErrUnsupportedTerm, Detail: fmt.Sprintf("%T", expr)}
}
