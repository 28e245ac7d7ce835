package compiler

import (
	"dmasm/asm"
	"dmasm/ast"
)

// BuiltinProc maps a proc name to a dedicated instruction with a fixed
// arity. Calls that miss the table fall back to ordinary global proc calls.
type BuiltinProc struct {
	Arity int
	Ins   asm.Instruction
}

// Registry resolves builtin proc names at compile time. The default table
// covers the procs the VM implements as single instructions; callers with a
// fuller opcode table can register more.
type Registry struct {
	procs map[string]BuiltinProc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{procs: make(map[string]BuiltinProc)}
}

// Register adds or replaces a builtin.
func (r *Registry) Register(name string, arity int, ins asm.Instruction) {
	r.procs[name] = BuiltinProc{Arity: arity, Ins: ins}
}

// Lookup resolves a name. The second result reports whether the name is a
// builtin at all.
func (r *Registry) Lookup(name string) (BuiltinProc, bool) {
	proc, ok := r.procs[name]
	return proc, ok
}

// DefaultBuiltins returns the standard table.
func DefaultBuiltins() *Registry {
	r := NewRegistry()
	r.Register("abs", 1, asm.Abs{})
	r.Register("sqrt", 1, asm.Sqrt{})
	r.Register("sin", 1, asm.Sin{})
	r.Register("cos", 1, asm.Cos{})
	r.Register("length", 1, asm.Length{})
	r.Register("istype", 2, asm.IsType{})
	r.Register("prob", 1, asm.Prob{})
	r.Register("initial", 1, asm.Initial{})
	return r
}

// emitBuiltin tries the builtin table for a plain call. It reports whether
// the call was handled.
func (c *Compiler) emitBuiltin(name string, args []ast.Expression) (bool, error) {
	proc, ok := c.builtins.Lookup(name)
	if !ok {
		return false, nil
	}
	if len(args) != proc.Arity {
		return false, errProc(ErrIncorrectArgCount, name)
	}
	if err := c.emitPositionalArgs(args); err != nil {
		return false, err
	}
	c.emit(proc.Ins)
	return true, nil
}
