// Package ast defines the DM expression tree handed to the compiler.
// Expressions are operator nodes over Base nodes; a Base is a term with an
// optional run of postfix follows (field accesses, indexes, calls) and
// prefix/postfix unary operators.
package ast

// Expression is any expression node.
type Expression interface {
	exprNode()
}

// Base is a term plus its follow chain and unary operators. Unary operators
// are stored outermost first, so they apply to the term/follow result in
// reverse slice order.
type Base struct {
	Unary  []UnaryOp
	Term   Term
	Follow []Follow
}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Op  BinaryOp
	LHS Expression
	RHS Expression
}

// AssignExpr is an assignment or compound assignment.
type AssignExpr struct {
	Op  AssignOp
	LHS Expression
	RHS Expression
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Cond Expression
	Then Expression
	Else Expression
}

func (Base) exprNode()        {}
func (BinaryExpr) exprNode()  {}
func (AssignExpr) exprNode()  {}
func (TernaryExpr) exprNode() {}

// Term is the leaf of a Base node.
type Term interface {
	termNode()
}

type (
	// NullLit is the null literal.
	NullLit struct{}
	// IntLit is an integer literal.
	IntLit struct{ Value int32 }
	// FloatLit is a floating point literal.
	FloatLit struct{ Value float32 }
	// StringLit is a plain string literal with no embedded expressions.
	StringLit struct{ Value string }
	// InterpString is a string literal containing embedded expressions.
	InterpString struct{ Raw string }
	// ResourceLit is a resource file literal, e.g. 'sound.ogg'.
	ResourceLit struct{ Path string }
	// Ident is a bare identifier.
	Ident struct{ Name string }
	// BitFlags is an `as(...)` flag set, pushed as its integer encoding.
	BitFlags struct{ Bits int32 }
	// NestedExpr is a parenthesized expression.
	NestedExpr struct{ Expr Expression }

	// TypePath is a type path literal, e.g. /obj/item. HasVars marks an
	// inline var block `/type{...}`, which the compiler rejects.
	TypePath struct {
		Path    string
		HasVars bool
	}

	// CallTerm is a plain call `f(args)`.
	CallTerm struct {
		Name string
		Args []Expression
	}

	// DynamicCall is `call(lhs...)(rhs...)`.
	DynamicCall struct {
		LHS []Expression
		RHS []Expression
	}

	// SelfCall is `.(args)`, ParentCall is `..(args)`. Both are rejected
	// until full proc bodies are compiled.
	SelfCall   struct{ Args []Expression }
	ParentCall struct{ Args []Expression }

	// NewTerm is a `new` expression. Exactly one of Prefab and MiniExpr is
	// set; neither set means implicit `new`. Args is nil when no argument
	// list is written at all.
	NewTerm struct {
		Prefab   *TypePath
		MiniExpr *MiniExpr
		Args     []Expression
	}

	// LocateTerm is `locate(args)` with an optional `in` container.
	LocateTerm struct {
		Args []Expression
		In   Expression
	}

	// PickTerm is `pick(...)`. Entries with a nil Weight are unweighted.
	PickTerm struct{ Entries []PickEntry }

	// ListTerm is a `list(...)` literal. Associative entries appear as
	// AssignExpr values.
	ListTerm struct{ Entries []Expression }

	// InputTerm is an `input(...)` expression, rejected by the compiler.
	InputTerm struct{}
)

// MiniExpr is the restricted `new ident.field...` target form.
type MiniExpr struct {
	Ident  string
	Fields []FieldFollow
}

// PickEntry is one branch of a pick expression.
type PickEntry struct {
	Weight Expression
	Value  Expression
}

func (NullLit) termNode()      {}
func (IntLit) termNode()       {}
func (FloatLit) termNode()     {}
func (StringLit) termNode()    {}
func (InterpString) termNode() {}
func (ResourceLit) termNode()  {}
func (Ident) termNode()        {}
func (BitFlags) termNode()     {}
func (NestedExpr) termNode()   {}
func (TypePath) termNode()     {}
func (CallTerm) termNode()     {}
func (DynamicCall) termNode()  {}
func (SelfCall) termNode()     {}
func (ParentCall) termNode()   {}
func (NewTerm) termNode()      {}
func (LocateTerm) termNode()   {}
func (PickTerm) termNode()     {}
func (ListTerm) termNode()     {}
func (InputTerm) termNode()    {}

// Follow is one postfix access applied to a Base.
type Follow interface {
	followNode()
}

type (
	// FieldFollow is `.name`, `:name` or their safe variants.
	FieldFollow struct {
		Kind AccessKind
		Name string
	}

	// IndexFollow is `[index]`.
	IndexFollow struct{ Index Expression }

	// CallFollow is `.name(args)` or a variant.
	CallFollow struct {
		Kind AccessKind
		Name string
		Args []Expression
	}
)

func (FieldFollow) followNode() {}
func (IndexFollow) followNode() {}
func (CallFollow) followNode()  {}

// AccessKind distinguishes the four field access spellings.
type AccessKind int

const (
	AccessDot AccessKind = iota
	AccessColon
	AccessSafeDot
	AccessSafeColon
)

// Safe reports whether the access is null-guarded.
func (k AccessKind) Safe() bool {
	return k == AccessSafeDot || k == AccessSafeColon
}

func (k AccessKind) String() string {
	switch k {
	case AccessDot:
		return "."
	case AccessColon:
		return ":"
	case AccessSafeDot:
		return "?."
	case AccessSafeColon:
		return "?:"
	}
	return "?"
}

// BinaryOp is a binary operator.
type BinaryOp int

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryPow
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
	BinaryEq
	BinaryNe
	BinaryBand
	BinaryBor
	BinaryBxor
	BinaryLShift
	BinaryRShift
	BinaryAnd
	BinaryOr
	BinaryIn
	BinaryTo
)

var binaryNames = map[BinaryOp]string{
	BinaryAdd:    "+",
	BinarySub:    "-",
	BinaryMul:    "*",
	BinaryDiv:    "/",
	BinaryMod:    "%",
	BinaryPow:    "**",
	BinaryLt:     "<",
	BinaryLe:     "<=",
	BinaryGt:     ">",
	BinaryGe:     ">=",
	BinaryEq:     "==",
	BinaryNe:     "!=",
	BinaryBand:   "&",
	BinaryBor:    "|",
	BinaryBxor:   "^",
	BinaryLShift: "<<",
	BinaryRShift: ">>",
	BinaryAnd:    "&&",
	BinaryOr:     "||",
	BinaryIn:     "in",
	BinaryTo:     "to",
}

func (op BinaryOp) String() string { return binaryNames[op] }

// AssignOp is an assignment operator.
type AssignOp int

const (
	Assign AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignBand
	AssignBor
	AssignBxor
	AssignLShift
	AssignRShift
)

var assignNames = map[AssignOp]string{
	Assign:       "=",
	AssignAdd:    "+=",
	AssignSub:    "-=",
	AssignMul:    "*=",
	AssignDiv:    "/=",
	AssignMod:    "%=",
	AssignBand:   "&=",
	AssignBor:    "|=",
	AssignBxor:   "^=",
	AssignLShift: "<<=",
	AssignRShift: ">>=",
}

func (op AssignOp) String() string { return assignNames[op] }

// UnaryOp is a unary operator.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryBitNot
	UnaryPreIncr
	UnaryPostIncr
	UnaryPreDecr
	UnaryPostDecr
)

var unaryNames = map[UnaryOp]string{
	UnaryNeg:      "-",
	UnaryNot:      "!",
	UnaryBitNot:   "~",
	UnaryPreIncr:  "++",
	UnaryPostIncr: "++",
	UnaryPreDecr:  "--",
	UnaryPostDecr: "--",
}

func (op UnaryOp) String() string { return unaryNames[op] }
