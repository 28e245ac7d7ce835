// Package operands defines the operand types carried by instructions in the
// output stream: constant values, variable references, labels, and proc paths.
package operands

import (
	"fmt"
	"strings"
)

// DMString is a VM string operand. The assembler interns these into the
// string table; here they are plain Go strings.
type DMString string

func (s DMString) String() string {
	return fmt.Sprintf("%q", string(s))
}

// Label names a jump target. Labels are unique within one compiled
// expression.
type Label string

// Proc names a global proc by absolute path, e.g. "/proc/rand".
type Proc string

// Value is a constant operand for PushVal.
type Value interface {
	value()
	String() string
}

// Null is the null constant.
type Null struct{}

// Number is a float constant. The VM's numeric type is a 32-bit float.
type Number float32

// Str is a string constant.
type Str DMString

// Resource is a resource file reference, e.g. 'sound.ogg'.
type Resource string

// Path is a type path constant, e.g. /obj/item.
type Path string

func (Null) value()     {}
func (Number) value()   {}
func (Str) value()      {}
func (Resource) value() {}
func (Path) value()     {}

func (Null) String() string       { return "null" }
func (n Number) String() string   { return strings.TrimSuffix(fmt.Sprintf("%g", float32(n)), ".0") }
func (s Str) String() string      { return DMString(s).String() }
func (r Resource) String() string { return fmt.Sprintf("'%s'", string(r)) }
func (p Path) String() string     { return string(p) }

// Variable is a directly addressable VM slot, usable as a GetVar/SetVar
// operand. Field, DynamicProc and SetCache are derived references rooted at
// the cache register rather than independent slots.
type Variable interface {
	variable()
	String() string
}

// The fixed pseudo-slots.
type (
	// Usr is the caller.
	Usr struct{}
	// Src is the implicit receiver.
	Src struct{}
	// Args is the argument list of the running proc.
	Args struct{}
	// Dot is the default return value accumulator.
	Dot struct{}
	// World is the world object.
	World struct{}
	// Cache is the scratch accumulator register used while walking chains
	// and dispatching calls.
	Cache struct{}
	// CacheIndex is the current-iteration value register.
	CacheIndex struct{}
)

// Arg is a numbered argument slot.
type Arg uint32

// Local is a numbered local slot.
type Local uint32

// Global is a named global variable.
type Global struct {
	Name DMString
}

// Field is the named field of whatever the cache register currently holds.
type Field struct {
	Name DMString
}

// DynamicProc is the named proc of whatever the cache register currently
// holds, resolved at call time.
type DynamicProc struct {
	Name DMString
}

// SetCache evaluates Base into the cache register, then evaluates Then
// against it. Nesting SetCache operands encodes a whole field chain in a
// single GetVar/SetVar.
type SetCache struct {
	Base Variable
	Then Variable
}

func (Usr) variable()         {}
func (Src) variable()         {}
func (Args) variable()        {}
func (Dot) variable()         {}
func (World) variable()       {}
func (Cache) variable()       {}
func (CacheIndex) variable()  {}
func (Arg) variable()         {}
func (Local) variable()       {}
func (Global) variable()      {}
func (Field) variable()       {}
func (DynamicProc) variable() {}
func (SetCache) variable()    {}

func (Usr) String() string           { return "usr" }
func (Src) String() string           { return "src" }
func (Args) String() string          { return "args" }
func (Dot) String() string           { return "dot" }
func (World) String() string         { return "world" }
func (Cache) String() string         { return "cache" }
func (CacheIndex) String() string    { return "cache_index" }
func (a Arg) String() string         { return fmt.Sprintf("arg(%d)", uint32(a)) }
func (l Local) String() string       { return fmt.Sprintf("local(%d)", uint32(l)) }
func (g Global) String() string      { return fmt.Sprintf("global(%s)", g.Name) }
func (f Field) String() string       { return fmt.Sprintf("field(%s)", f.Name) }
func (p DynamicProc) String() string { return fmt.Sprintf("proc(%s)", p.Name) }
func (s SetCache) String() string    { return fmt.Sprintf("set_cache(%s, %s)", s.Base, s.Then) }
