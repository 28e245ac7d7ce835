package compiler

import "fmt"

// ErrorCode classifies a terminal compilation error.
type ErrorCode int

const (
	// ErrParse wraps a front-end parse failure.
	ErrParse ErrorCode = iota
	// ErrUnsupportedTerm marks an AST term the compiler does not handle.
	ErrUnsupportedTerm
	// ErrUnsupportedPrefabVars marks a type path with an inline var block.
	ErrUnsupportedPrefabVars
	// ErrExpectedLValue marks an assignment to a non-addressable target.
	ErrExpectedLValue
	// ErrExpectedFieldReference marks ++/-- on something that is not a
	// variable or field.
	ErrExpectedFieldReference
	// ErrNamedArguments marks keyword arguments on a method call.
	ErrNamedArguments
	// ErrIncorrectArgCount marks a builtin called with the wrong arity.
	ErrIncorrectArgCount
	// ErrMissingArgument marks a required argument absent at Index.
	ErrMissingArgument
	// ErrTooManyArguments marks more arguments than Expected.
	ErrTooManyArguments
	// ErrUnexpectedRange marks a range used where a single value is needed.
	ErrUnexpectedRange
	// ErrUnexpectedGlobal marks the global pseudo-object used as a value.
	ErrUnexpectedGlobal
	// ErrUnexpectedArgList marks arglist() where a concrete value is
	// required, or mixed with other arguments.
	ErrUnexpectedArgList
	// ErrUnexpectedProbability marks a pick weight on a lone branch.
	ErrUnexpectedProbability
	// ErrUnsupportedImplicitNew marks `new` with no type.
	ErrUnsupportedImplicitNew
	// ErrUnsupportedImplicitLocate marks `locate()` with no arguments.
	ErrUnsupportedImplicitLocate
	// ErrUnsupportedRelativeCall marks `.()` and `..()` calls.
	ErrUnsupportedRelativeCall
	// ErrUnsupportedStringInterpolation marks a string with embedded
	// expressions.
	ErrUnsupportedStringInterpolation
	// ErrUnsupportedInput marks an input() expression.
	ErrUnsupportedInput
	// ErrInvalidLocateArgs marks a locate call with an unhandled arg count.
	ErrInvalidLocateArgs
)

// Error is a terminal compilation error. Proc, Index, Expected and Name are
// populated for the call-site errors; Name is an optional parameter-name
// hint, empty when the call site has none. Err holds the wrapped front-end
// error for ErrParse.
type Error struct {
	Code     ErrorCode
	Proc     string
	Index    int
	Expected int
	Name     string
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrParse:
		return fmt.Sprintf("parse error: %v", e.Err)
	case ErrUnsupportedTerm:
		return fmt.Sprintf("unsupported expression term %s", e.Detail)
	case ErrUnsupportedPrefabVars:
		return "type paths with inline variable declarations are unsupported"
	case ErrExpectedLValue:
		return "expected an assignable location"
	case ErrExpectedFieldReference:
		return "expected a variable or field reference"
	case ErrNamedArguments:
		return fmt.Sprintf("named arguments are not implemented (call to %s)", e.Proc)
	case ErrIncorrectArgCount:
		return fmt.Sprintf("incorrect argument count for %s", e.Proc)
	case ErrMissingArgument:
		if e.Name != "" {
			return fmt.Sprintf("missing argument %d (%s) to %s", e.Index, e.Name, e.Proc)
		}
		return fmt.Sprintf("missing argument %d to %s", e.Index, e.Proc)
	case ErrTooManyArguments:
		return fmt.Sprintf("too many arguments to %s (expected %d)", e.Proc, e.Expected)
	case ErrUnexpectedRange:
		return "unexpected range expression"
	case ErrUnexpectedGlobal:
		return "global is not a value"
	case ErrUnexpectedArgList:
		return "arglist() is not valid here"
	case ErrUnexpectedProbability:
		return "unexpected probability on a single pick argument"
	case ErrUnsupportedImplicitNew:
		return "new with an implicit type is unsupported"
	case ErrUnsupportedImplicitLocate:
		return "locate() with no arguments is unsupported"
	case ErrUnsupportedRelativeCall:
		return "relative calls are unsupported"
	case ErrUnsupportedStringInterpolation:
		return "string interpolation is unsupported"
	case ErrUnsupportedInput:
		return "input() is unsupported"
	case ErrInvalidLocateArgs:
		return "invalid number of arguments to locate"
	}
	return "unknown compile error"
}

func (e *Error) Unwrap() error { return e.Err }

func errCode(code ErrorCode) *Error { return &Error{Code: code} }

func errProc(code ErrorCode, proc string) *Error {
	return &Error{Code: code, Proc: proc}
}
