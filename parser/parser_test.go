package parser

import (
	"reflect"
	"testing"

	"github.com/kr/pretty"

	"dmasm/ast"
)

func base(term ast.Term, follows ...ast.Follow) ast.Expression {
	return ast.Base{Term: term, Follow: follows}
}

func num(v int32) ast.Expression { return base(ast.IntLit{Value: v}) }

func ident(name string) ast.Expression { return base(ast.Ident{Name: name}) }

func bin(op ast.BinaryOp, lhs, rhs ast.Expression) ast.Expression {
	return ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Expression
	}{
		{
			name:  "multiplication binds tighter",
			input: "1 + 2 * 3",
			want:  bin(ast.BinaryAdd, num(1), bin(ast.BinaryMul, num(2), num(3))),
		},
		{
			name:  "subtraction is left associative",
			input: "1 - 2 - 3",
			want:  bin(ast.BinarySub, bin(ast.BinarySub, num(1), num(2)), num(3)),
		},
		{
			name:  "power is right associative",
			input: "2 ** 3 ** 4",
			want:  bin(ast.BinaryPow, num(2), bin(ast.BinaryPow, num(3), num(4))),
		},
		{
			name:  "bitwise binds looser than equality",
			input: "a & b == c",
			want: bin(ast.BinaryBand, ident("a"),
				bin(ast.BinaryEq, ident("b"), ident("c"))),
		},
		{
			name:  "shift binds looser than relational",
			input: "a << b < c",
			want: bin(ast.BinaryLShift, ident("a"),
				bin(ast.BinaryLt, ident("b"), ident("c"))),
		},
		{
			name:  "assignment is right associative",
			input: "a = b = 1",
			want: ast.AssignExpr{
				Op:  ast.Assign,
				LHS: ident("a"),
				RHS: ast.AssignExpr{Op: ast.Assign, LHS: ident("b"), RHS: num(1)},
			},
		},
		{
			name:  "compound assignment",
			input: "a <<= 2",
			want:  ast.AssignExpr{Op: ast.AssignLShift, LHS: ident("a"), RHS: num(2)},
		},
		{
			name:  "ternary",
			input: "a ? 1 : 2",
			want:  ast.TernaryExpr{Cond: ident("a"), Then: num(1), Else: num(2)},
		},
		{
			name:  "in operator",
			input: "a in b",
			want:  bin(ast.BinaryIn, ident("a"), ident("b")),
		},
		{
			name:  "range",
			input: "1 to 5",
			want:  bin(ast.BinaryTo, num(1), num(5)),
		},
		{
			name:  "field chain",
			input: "a.b.c",
			want: base(ast.Ident{Name: "a"},
				ast.FieldFollow{Kind: ast.AccessDot, Name: "b"},
				ast.FieldFollow{Kind: ast.AccessDot, Name: "c"}),
		},
		{
			name:  "glued colon is a field access",
			input: "a:b",
			want: base(ast.Ident{Name: "a"},
				ast.FieldFollow{Kind: ast.AccessColon, Name: "b"}),
		},
		{
			name:  "safe accesses",
			input: "a?.b?:c",
			want: base(ast.Ident{Name: "a"},
				ast.FieldFollow{Kind: ast.AccessSafeDot, Name: "b"},
				ast.FieldFollow{Kind: ast.AccessSafeColon, Name: "c"}),
		},
		{
			name:  "method call",
			input: "a.f(1, 2)",
			want: base(ast.Ident{Name: "a"},
				ast.CallFollow{
					Kind: ast.AccessDot,
					Name: "f",
					Args: []ast.Expression{num(1), num(2)},
				}),
		},
		{
			name:  "index chain",
			input: "a[1][2]",
			want: base(ast.Ident{Name: "a"},
				ast.IndexFollow{Index: num(1)},
				ast.IndexFollow{Index: num(2)}),
		},
		{
			name:  "postfix increment after follow",
			input: "a.b++",
			want: ast.Base{
				Unary:  []ast.UnaryOp{ast.UnaryPostIncr},
				Term:   ast.Ident{Name: "a"},
				Follow: []ast.Follow{ast.FieldFollow{Kind: ast.AccessDot, Name: "b"}},
			},
		},
		{
			name:  "stacked prefix operators",
			input: "!-a",
			want: ast.Base{
				Unary: []ast.UnaryOp{ast.UnaryNot, ast.UnaryNeg},
				Term:  ast.Ident{Name: "a"},
			},
		},
		{
			name:  "plain call",
			input: "f(x)",
			want:  base(ast.CallTerm{Name: "f", Args: []ast.Expression{ident("x")}}),
		},
		{
			name:  "type path",
			input: "/obj/item",
			want:  base(ast.TypePath{Path: "/obj/item"}),
		},
		{
			name:  "type path with var block",
			input: "/obj{name}",
			want:  base(ast.TypePath{Path: "/obj", HasVars: true}),
		},
		{
			name:  "new with prefab",
			input: "new /obj(1)",
			want: base(ast.NewTerm{
				Prefab: &ast.TypePath{Path: "/obj"},
				Args:   []ast.Expression{num(1)},
			}),
		},
		{
			name:  "new with mini expression",
			input: "new a.b",
			want: base(ast.NewTerm{
				MiniExpr: &ast.MiniExpr{
					Ident:  "a",
					Fields: []ast.FieldFollow{{Kind: ast.AccessDot, Name: "b"}},
				},
			}),
		},
		{
			name:  "locate in container",
			input: "locate(/obj) in x",
			want: base(ast.LocateTerm{
				Args: []ast.Expression{base(ast.TypePath{Path: "/obj"})},
				In:   ident("x"),
			}),
		},
		{
			name:  "pick with weight",
			input: "pick(50; a, b)",
			want: base(ast.PickTerm{Entries: []ast.PickEntry{
				{Weight: num(50), Value: ident("a")},
				{Value: ident("b")},
			}}),
		},
		{
			name:  "dynamic call",
			input: `call(a)(1)`,
			want: base(ast.DynamicCall{
				LHS: []ast.Expression{ident("a")},
				RHS: []ast.Expression{num(1)},
			}),
		},
		{
			name:  "associative list literal",
			input: `list("a" = 1)`,
			want: base(ast.ListTerm{Entries: []ast.Expression{
				ast.AssignExpr{
					Op:  ast.Assign,
					LHS: base(ast.StringLit{Value: "a"}),
					RHS: num(1),
				},
			}}),
		},
		{
			name:  "self call",
			input: ".(1)",
			want:  base(ast.SelfCall{Args: []ast.Expression{num(1)}}),
		},
		{
			name:  "parent call",
			input: "..()",
			want:  base(ast.ParentCall{}),
		},
		{
			name:  "dot as value",
			input: ". + 1",
			want:  bin(ast.BinaryAdd, ident("."), num(1)),
		},
		{
			name:  "nested expression",
			input: "(1 + 2) * 3",
			want: bin(ast.BinaryMul,
				base(ast.NestedExpr{Expr: bin(ast.BinaryAdd, num(1), num(2))}),
				num(3)),
		},
		{
			name:  "large int literal overflows to float",
			input: "16777217000",
			want:  base(ast.FloatLit{Value: 16777217000}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) mismatch:\n%s", tt.input,
					pretty.Sprintf("% #v\nwant\n% #v", got, tt.want))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"1 +",
		"(1",
		"a ? b",
		")",
		"a b",
		"a[1",
		"f(1,",
		"a?.",
		"/obj{name",
		"call(a)",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", input)
			}
		})
	}
}
