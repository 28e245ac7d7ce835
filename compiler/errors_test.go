package compiler

import (
	"errors"
	"testing"
)

func compileErr(t *testing.T, code string, params ...string) *Error {
	t.Helper()
	_, err := CompileSource(code, params)
	if err == nil {
		t.Fatalf("CompileSource(%q) succeeded, want error", code)
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("CompileSource(%q) returned %T, want *Error", code, err)
	}
	return cerr
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want ErrorCode
	}{
		{"syntax error", "1 +", ErrParse},
		{"assignment to a value", "1 = 2", ErrExpectedLValue},
		{"assignment to a call result", "f() = 2", ErrExpectedLValue},
		{"increment of a call result", "f()++", ErrExpectedFieldReference},
		{"named argument on method call", "a.f(x = 1)", ErrNamedArguments},
		{"compound op as keyword argument", "f(x += 1)", ErrNamedArguments},
		{"builtin arity", "abs(1, 2)", ErrIncorrectArgCount},
		{"bare range", "1 to 2", ErrUnexpectedRange},
		{"range in arithmetic", "(1 to 2) + 3", ErrUnexpectedRange},
		{"global as value", "global", ErrUnexpectedGlobal},
		{"arglist mixed with arguments", "f(arglist(a), 1)", ErrUnexpectedArgList},
		{"arglist in list literal", "list(arglist(a))", ErrUnexpectedArgList},
		{"weight on single pick", "pick(50; x)", ErrUnexpectedProbability},
		{"implicit new", "new()", ErrUnsupportedImplicitNew},
		{"implicit locate", "locate()", ErrUnsupportedImplicitLocate},
		{"locate arity", "locate(1, 2, 3, 4)", ErrInvalidLocateArgs},
		{"prefab with var block", "/obj{x}", ErrUnsupportedPrefabVars},
		{"new prefab with var block", "new /obj{x}(1)", ErrUnsupportedPrefabVars},
		{"self call", ".(1)", ErrUnsupportedRelativeCall},
		{"parent call", "..()", ErrUnsupportedRelativeCall},
		{"string interpolation", `"say [x]"`, ErrUnsupportedStringInterpolation},
		{"input", "input()", ErrUnsupportedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cerr := compileErr(t, tt.code, "a", "x")
			if cerr.Code != tt.want {
				t.Errorf("CompileSource(%q) = %v (code %d), want code %d",
					tt.code, cerr, cerr.Code, tt.want)
			}
		})
	}
}

func TestDynamicCallArgumentErrors(t *testing.T) {
	cerr := compileErr(t, "call()(1)")
	if cerr.Code != ErrMissingArgument || cerr.Proc != "call" || cerr.Index != 1 {
		t.Errorf("call()(1): got %+v", cerr)
	}
	if cerr.Name == "" {
		t.Error("call()(1): missing parameter name hint")
	}

	cerr = compileErr(t, "call(a, b, c)(1)", "a", "b", "c")
	if cerr.Code != ErrTooManyArguments || cerr.Expected != 2 {
		t.Errorf("call(a, b, c)(1): got %+v", cerr)
	}
}

func TestPickMissingArgument(t *testing.T) {
	cerr := compileErr(t, "pick()")
	if cerr.Code != ErrMissingArgument || cerr.Proc != "pick" || cerr.Index != 1 {
		t.Errorf("pick(): got %+v", cerr)
	}
}

// Errors carry readable messages; spot check the formatting paths that
// interpolate call-site details.
func TestErrorMessages(t *testing.T) {
	if got := compileErr(t, "call()(1)").Error(); got != "missing argument 1 (ProcRef/Object/LibName) to call" {
		t.Errorf("unexpected message %q", got)
	}
	if got := compileErr(t, "a.f(x = 1)", "a", "x").Error(); got != "named arguments are not implemented (call to f)" {
		t.Errorf("unexpected message %q", got)
	}
	if got := compileErr(t, "call(a, b, c)(1)", "a", "b", "c").Error(); got != "too many arguments to call (expected 2)" {
		t.Errorf("unexpected message %q", got)
	}
}
