// Package asm defines the instruction/label stream produced by the compiler
// and consumed by the assembler. The stream is an ordered slice of Nodes;
// every node is either an Instruction or a Label marking a jump target.
package asm

import (
	"fmt"
	"strings"

	"dmasm/operands"
)

// Node is one element of the output stream.
type Node interface {
	node()
}

// Label marks a jump target. Every label referenced by an instruction in the
// stream is emitted exactly once.
type Label struct {
	Name operands.Label
}

func (Label) node() {}

// Instruction is a single VM instruction.
type Instruction interface {
	Node
	String() string
}

// Stack and constant operations.
type (
	// DbgFile records the source file for debugging.
	DbgFile struct{ Path string }
	// PushInt pushes an integer constant.
	PushInt struct{ Value int32 }
	// PushVal pushes a constant value.
	PushVal struct{ Value operands.Value }
)

// Variable operations.
type (
	// GetVar pushes the value of a variable.
	GetVar struct{ Var operands.Variable }
	// SetVar pops into a variable.
	SetVar struct{ Var operands.Variable }
)

// List operations. The list reference convention is: index on top of the
// stack, list beneath it.
type (
	// ListGet pops index and list, pushes list[index].
	ListGet struct{}
	// ListSet pops value, index and list, writes list[index] and pushes the
	// value back as the result of the assignment.
	ListSet struct{}
	// NewList pops Count values and pushes a list of them.
	NewList struct{ Count uint32 }
	// NewAssocList pops Count key/value pairs and pushes an associative
	// list. Positional entries carry a null key.
	NewAssocList struct{ Count uint32 }
)

// Control flow. Jz consumes the flag set by Test; JmpAnd/JmpOr test the top
// of the stack in place, consuming it only when falling through.
type (
	// Test pops the top of the stack into the truth flag.
	Test struct{}
	// Jmp jumps unconditionally.
	Jmp struct{ Label operands.Label }
	// Jz jumps when the truth flag is clear.
	Jz struct{ Label operands.Label }
	// JmpAnd jumps when the top of the stack is falsy, leaving it in place;
	// otherwise pops it.
	JmpAnd struct{ Label operands.Label }
	// JmpOr jumps when the top of the stack is truthy, leaving it in place;
	// otherwise pops it.
	JmpOr struct{ Label operands.Label }
	// SetCacheJmpIfNull pops into the cache register; when the value is
	// null it pushes null back and jumps. The null guard of safe
	// navigation.
	SetCacheJmpIfNull struct{ Label operands.Label }
	// Ret returns the top of the stack.
	Ret struct{}
)

// Cache save area. Arguments of a call may themselves dispatch through the
// cache register, so the receiver is parked on the cache stack around
// argument evaluation.
type (
	// PushCache pushes the cache register onto the cache stack.
	PushCache struct{}
	// PopCache pops the cache stack back into the cache register.
	PopCache struct{}
)

// Calls. ArgCount counts stack operands: values for the positional forms,
// key/value pairs for the assoc forms. The arg-list forms take one pre-built
// list from the stack.
type (
	// Call invokes a proc resolved through a variable operand, usually a
	// DynamicProc rooted at the cache register.
	Call struct {
		Proc     operands.Variable
		ArgCount uint32
	}
	// CallGlob invokes a global proc by path with positional arguments.
	CallGlob struct {
		ArgCount uint32
		Proc     operands.Proc
	}
	// CallGlobAssoc invokes a global proc with keyword arguments.
	CallGlobAssoc struct {
		ArgCount uint32
		Proc     operands.Proc
	}
	// CallGlobArgList invokes a global proc spreading a pre-built list.
	CallGlobArgList struct{ Proc operands.Proc }

	// CallPath pops positional args and a proc path pushed beneath them.
	CallPath struct{ ArgCount uint32 }
	// CallPathAssoc is CallPath with keyword arguments.
	CallPathAssoc struct{ ArgCount uint32 }
	// CallPathArgList is CallPath spreading a pre-built list.
	CallPathArgList struct{}

	// CallName pops positional args, a proc name and an object pushed
	// beneath them.
	CallName struct{ ArgCount uint32 }
	// CallNameAssoc is CallName with keyword arguments.
	CallNameAssoc struct{ ArgCount uint32 }
	// CallNameArgList is CallName spreading a pre-built list.
	CallNameArgList struct{}
)

// Object construction and lookup.
type (
	// New pops ArgCount args and a type beneath them, pushes the instance.
	New struct{ ArgCount uint32 }
	// LocateRef pops a ref or type and pushes the located datum.
	LocateRef struct{}
	// LocateType pops a container and a type beneath it.
	LocateType struct{}
	// LocatePos pops z, y, x and pushes the turf.
	LocatePos struct{}
)

// Pick.
type (
	// Pick pops a list and pushes a random element.
	Pick struct{}
	// PickSwitch pops one weight per case and branches to the chosen case's
	// label.
	PickSwitch struct{ Cases []operands.Label }
)

// Binary operators. Each pops two operands and pushes the result.
type (
	Add    struct{}
	Sub    struct{}
	Mul    struct{}
	Div    struct{}
	Mod    struct{}
	Pow    struct{}
	Band   struct{}
	Bor    struct{}
	Bxor   struct{}
	LShift struct{}
	RShift struct{}
	CmpLt  struct{}
	CmpLe  struct{}
	CmpGt  struct{}
	CmpGe  struct{}
	CmpEq  struct{}
	CmpNe  struct{}
	IsIn   struct{}
)

// Unary operators.
type (
	UnaryNeg struct{}
	BoolNot  struct{}
	BitNot   struct{}
)

// In-place variable updates.
type (
	// Inc increments a variable in place.
	Inc struct{ Var operands.Variable }
	// Dec decrements a variable in place.
	Dec struct{ Var operands.Variable }
	// Aug pops the right operand and applies Op to the variable in place.
	Aug struct {
		Op  AugOp
		Var operands.Variable
	}
	// ListAug pops the right operand, an index and a list, applies Op to
	// list[index] in place and pushes the new value.
	ListAug struct{ Op AugOp }
)

// Builtin procs with dedicated instructions.
type (
	Abs     struct{}
	Sqrt    struct{}
	Sin     struct{}
	Cos     struct{}
	Length  struct{}
	IsType  struct{}
	Prob    struct{}
	Initial struct{}
)

// AugOp selects the operation of a compound store.
type AugOp int

const (
	AugAdd AugOp = iota
	AugSub
	AugMul
	AugDiv
	AugMod
	AugBand
	AugBor
	AugBxor
	AugLShift
	AugRShift
)

var augNames = map[AugOp]string{
	AugAdd:    "Add",
	AugSub:    "Sub",
	AugMul:    "Mul",
	AugDiv:    "Div",
	AugMod:    "Mod",
	AugBand:   "Band",
	AugBor:    "Bor",
	AugBxor:   "Bxor",
	AugLShift: "LShift",
	AugRShift: "RShift",
}

func (op AugOp) String() string {
	if name, ok := augNames[op]; ok {
		return name
	}
	return "Unknown"
}

func (DbgFile) node()           {}
func (PushInt) node()           {}
func (PushVal) node()           {}
func (GetVar) node()            {}
func (SetVar) node()            {}
func (ListGet) node()           {}
func (ListSet) node()           {}
func (NewList) node()           {}
func (NewAssocList) node()      {}
func (Test) node()              {}
func (Jmp) node()               {}
func (Jz) node()                {}
func (JmpAnd) node()            {}
func (JmpOr) node()             {}
func (SetCacheJmpIfNull) node() {}
func (Ret) node()               {}
func (PushCache) node()         {}
func (PopCache) node()          {}
func (Call) node()              {}
func (CallGlob) node()          {}
func (CallGlobAssoc) node()     {}
func (CallGlobArgList) node()   {}
func (CallPath) node()          {}
func (CallPathAssoc) node()     {}
func (CallPathArgList) node()   {}
func (CallName) node()          {}
func (CallNameAssoc) node()     {}
func (CallNameArgList) node()   {}
func (New) node()               {}
func (LocateRef) node()         {}
func (LocateType) node()        {}
func (LocatePos) node()         {}
func (Pick) node()              {}
func (PickSwitch) node()        {}
func (Add) node()               {}
func (Sub) node()               {}
func (Mul) node()               {}
func (Div) node()               {}
func (Mod) node()               {}
func (Pow) node()               {}
func (Band) node()              {}
func (Bor) node()               {}
func (Bxor) node()              {}
func (LShift) node()            {}
func (RShift) node()            {}
func (CmpLt) node()             {}
func (CmpLe) node()             {}
func (CmpGt) node()             {}
func (CmpGe) node()             {}
func (CmpEq) node()             {}
func (CmpNe) node()             {}
func (IsIn) node()              {}
func (UnaryNeg) node()          {}
func (BoolNot) node()           {}
func (BitNot) node()            {}
func (Inc) node()               {}
func (Dec) node()               {}
func (Aug) node()               {}
func (ListAug) node()           {}
func (Abs) node()               {}
func (Sqrt) node()              {}
func (Sin) node()               {}
func (Cos) node()               {}
func (Length) node()            {}
func (IsType) node()            {}
func (Prob) node()              {}
func (Initial) node()           {}

func (i DbgFile) String() string { return fmt.Sprintf("DbgFile %q", i.Path) }
func (i PushInt) String() string { return fmt.Sprintf("PushInt %d", i.Value) }
func (i PushVal) String() string { return fmt.Sprintf("PushVal %s", i.Value) }
func (i GetVar) String() string  { return fmt.Sprintf("GetVar %s", i.Var) }
func (i SetVar) String() string  { return fmt.Sprintf("SetVar %s", i.Var) }

func (ListGet) String() string        { return "ListGet" }
func (ListSet) String() string        { return "ListSet" }
func (i NewList) String() string      { return fmt.Sprintf("NewList %d", i.Count) }
func (i NewAssocList) String() string { return fmt.Sprintf("NewAssocList %d", i.Count) }

func (Test) String() string { return "Test" }
func (i Jmp) String() string {
	return fmt.Sprintf("Jmp %s", i.Label)
}
func (i Jz) String() string     { return fmt.Sprintf("Jz %s", i.Label) }
func (i JmpAnd) String() string { return fmt.Sprintf("JmpAnd %s", i.Label) }
func (i JmpOr) String() string  { return fmt.Sprintf("JmpOr %s", i.Label) }
func (i SetCacheJmpIfNull) String() string {
	return fmt.Sprintf("SetCacheJmpIfNull %s", i.Label)
}
func (Ret) String() string { return "Ret" }

func (PushCache) String() string { return "PushCache" }
func (PopCache) String() string  { return "PopCache" }

func (i Call) String() string { return fmt.Sprintf("Call %s %d", i.Proc, i.ArgCount) }
func (i CallGlob) String() string {
	return fmt.Sprintf("CallGlob %d %s", i.ArgCount, i.Proc)
}
func (i CallGlobAssoc) String() string {
	return fmt.Sprintf("CallGlobAssoc %d %s", i.ArgCount, i.Proc)
}
func (i CallGlobArgList) String() string { return fmt.Sprintf("CallGlobArgList %s", i.Proc) }
func (i CallPath) String() string        { return fmt.Sprintf("CallPath %d", i.ArgCount) }
func (i CallPathAssoc) String() string   { return fmt.Sprintf("CallPathAssoc %d", i.ArgCount) }
func (CallPathArgList) String() string   { return "CallPathArgList" }
func (i CallName) String() string        { return fmt.Sprintf("CallName %d", i.ArgCount) }
func (i CallNameAssoc) String() string   { return fmt.Sprintf("CallNameAssoc %d", i.ArgCount) }
func (CallNameArgList) String() string   { return "CallNameArgList" }

func (i New) String() string      { return fmt.Sprintf("New %d", i.ArgCount) }
func (LocateRef) String() string  { return "LocateRef" }
func (LocateType) String() string { return "LocateType" }
func (LocatePos) String() string  { return "LocatePos" }

func (Pick) String() string { return "Pick" }
func (i PickSwitch) String() string {
	parts := make([]string, len(i.Cases))
	for n, label := range i.Cases {
		parts[n] = string(label)
	}
	return fmt.Sprintf("PickSwitch [%s]", strings.Join(parts, " "))
}

func (Add) String() string    { return "Add" }
func (Sub) String() string    { return "Sub" }
func (Mul) String() string    { return "Mul" }
func (Div) String() string    { return "Div" }
func (Mod) String() string    { return "Mod" }
func (Pow) String() string    { return "Pow" }
func (Band) String() string   { return "Band" }
func (Bor) String() string    { return "Bor" }
func (Bxor) String() string   { return "Bxor" }
func (LShift) String() string { return "LShift" }
func (RShift) String() string { return "RShift" }
func (CmpLt) String() string  { return "CmpLt" }
func (CmpLe) String() string  { return "CmpLe" }
func (CmpGt) String() string  { return "CmpGt" }
func (CmpGe) String() string  { return "CmpGe" }
func (CmpEq) String() string  { return "CmpEq" }
func (CmpNe) String() string  { return "CmpNe" }
func (IsIn) String() string   { return "IsIn" }

func (UnaryNeg) String() string { return "UnaryNeg" }
func (BoolNot) String() string  { return "BoolNot" }
func (BitNot) String() string   { return "BitNot" }

func (i Inc) String() string     { return fmt.Sprintf("Inc %s", i.Var) }
func (i Dec) String() string     { return fmt.Sprintf("Dec %s", i.Var) }
func (i Aug) String() string     { return fmt.Sprintf("Aug%s %s", i.Op, i.Var) }
func (i ListAug) String() string { return fmt.Sprintf("ListAug%s", i.Op) }

func (Abs) String() string     { return "Abs" }
func (Sqrt) String() string    { return "Sqrt" }
func (Sin) String() string     { return "Sin" }
func (Cos) String() string     { return "Cos" }
func (Length) String() string  { return "Length" }
func (IsType) String() string  { return "IsType" }
func (Prob) String() string    { return "Prob" }
func (Initial) String() string { return "Initial" }
