package parser

import "testing"

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{
			name:  "arithmetic",
			input: "1 + 2 * 3",
			want:  []TokenType{TOKEN_INT, TOKEN_PLUS, TOKEN_INT, TOKEN_STAR, TOKEN_INT},
		},
		{
			name:  "comparison chain",
			input: "a <= b >> 2 != c",
			want: []TokenType{
				TOKEN_IDENT, TOKEN_LE, TOKEN_IDENT, TOKEN_RSHIFT,
				TOKEN_INT, TOKEN_NE, TOKEN_IDENT,
			},
		},
		{
			name:  "safe access",
			input: "a?.b?:c",
			want: []TokenType{
				TOKEN_IDENT, TOKEN_SAFEDOT, TOKEN_IDENT,
				TOKEN_SAFECOLON, TOKEN_IDENT,
			},
		},
		{
			name:  "question alone",
			input: "a ? b : c",
			want: []TokenType{
				TOKEN_IDENT, TOKEN_QUESTION, TOKEN_IDENT,
				TOKEN_COLON, TOKEN_IDENT,
			},
		},
		{
			name:  "compound assignment",
			input: "a <<= b >>= c |= d",
			want: []TokenType{
				TOKEN_IDENT, TOKEN_LSHIFT_ASSIGN, TOKEN_IDENT,
				TOKEN_RSHIFT_ASSIGN, TOKEN_IDENT, TOKEN_BITOR_ASSIGN,
				TOKEN_IDENT,
			},
		},
		{
			name:  "keywords",
			input: "new locate pick in to null input",
			want: []TokenType{
				TOKEN_NEW, TOKEN_LOCATE, TOKEN_PICK, TOKEN_IN,
				TOKEN_TO, TOKEN_NULL, TOKEN_INPUT,
			},
		},
		{
			name:  "parent call dots",
			input: "..()",
			want:  []TokenType{TOKEN_DOTDOT, TOKEN_LPAREN, TOKEN_RPAREN},
		},
		{
			name:  "increments",
			input: "++a--",
			want:  []TokenType{TOKEN_INCR, TOKEN_IDENT, TOKEN_DECR},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input)
			for i, want := range tt.want {
				tok := lexer.NextToken()
				if tok.Type != want {
					t.Fatalf("token %d: got %s, want %s", i, tok.Type, want)
				}
			}
			if tok := lexer.NextToken(); tok.Type != TOKEN_EOF {
				t.Fatalf("trailing token %s, want EOF", tok.Type)
			}
		})
	}
}

func TestLexerValues(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		value string
	}{
		{"42", TOKEN_INT, "42"},
		{"0x1F", TOKEN_INT, "0x1F"},
		{"1.5", TOKEN_FLOAT, "1.5"},
		{"2e3", TOKEN_FLOAT, "2e3"},
		{"1.5e-2", TOKEN_FLOAT, "1.5e-2"},
		{`"hello"`, TOKEN_STRING, "hello"},
		{`"tab\there"`, TOKEN_STRING, "tab\there"},
		{`"say [x]"`, TOKEN_ISTRING, "say [x]"},
		{"'snd.ogg'", TOKEN_RESOURCE, "snd.ogg"},
		{"_under1", TOKEN_IDENT, "_under1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewLexer(tt.input).NextToken()
			if tok.Type != tt.typ || tok.Value != tt.value {
				t.Fatalf("got %s %q, want %s %q", tok.Type, tok.Value, tt.typ, tt.value)
			}
		})
	}
}

// The number scanner must not absorb a trailing `..` range-looking dot or a
// field access after an integer.
func TestLexerIntThenDot(t *testing.T) {
	lexer := NewLexer("1.name")
	if tok := lexer.NextToken(); tok.Type != TOKEN_INT || tok.Value != "1" {
		t.Fatalf("got %s %q, want INT 1", tok.Type, tok.Value)
	}
	if tok := lexer.NextToken(); tok.Type != TOKEN_DOT {
		t.Fatalf("got %s, want .", tok.Type)
	}
	if tok := lexer.NextToken(); tok.Type != TOKEN_IDENT || tok.Value != "name" {
		t.Fatalf("got %s %q, want IDENT name", tok.Type, tok.Value)
	}
}

func TestLexerSpaceBefore(t *testing.T) {
	lexer := NewLexer("a :b")
	lexer.NextToken() // a
	colon := lexer.NextToken()
	if colon.Type != TOKEN_COLON || !colon.SpaceBefore {
		t.Fatalf("got %s SpaceBefore=%v, want : with SpaceBefore", colon.Type, colon.SpaceBefore)
	}
	b := lexer.NextToken()
	if b.SpaceBefore {
		t.Fatal("b should not report leading space")
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	if tok := NewLexer(`"oops`).NextToken(); tok.Type != TOKEN_ERROR {
		t.Fatalf("got %s, want ERROR", tok.Type)
	}
	if tok := NewLexer("'oops").NextToken(); tok.Type != TOKEN_ERROR {
		t.Fatalf("got %s, want ERROR", tok.Type)
	}
}
