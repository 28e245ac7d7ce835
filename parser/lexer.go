package parser

import "strings"

// Lexer produces tokens from a DM expression source string. It is a plain
// byte scanner; DM expression tokens are ASCII.
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) ch() byte { return l.peekAt(0) }

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() Token {
	spaceBefore := false
	for l.pos < len(l.input) && isSpace(l.ch()) {
		spaceBefore = true
		l.pos++
	}

	tok := Token{Pos: l.pos, SpaceBefore: spaceBefore}
	if l.pos >= len(l.input) {
		tok.Type = TOKEN_EOF
		return tok
	}

	ch := l.ch()
	switch {
	case isIdentStart(ch):
		start := l.pos
		for l.pos < len(l.input) && isIdentPart(l.ch()) {
			l.pos++
		}
		tok.Value = l.input[start:l.pos]
		if kw, ok := keywords[tok.Value]; ok {
			tok.Type = kw
		} else {
			tok.Type = TOKEN_IDENT
		}
		return tok

	case isDigit(ch):
		return l.lexNumber(tok)

	case ch == '"':
		return l.lexString(tok)

	case ch == '\'':
		return l.lexResource(tok)
	}

	one := func(t TokenType) Token {
		tok.Type = t
		tok.Value = l.input[tok.Pos : l.pos+1]
		l.pos++
		return tok
	}
	two := func(t TokenType) Token {
		tok.Type = t
		tok.Value = l.input[tok.Pos : l.pos+2]
		l.pos += 2
		return tok
	}
	three := func(t TokenType) Token {
		tok.Type = t
		tok.Value = l.input[tok.Pos : l.pos+3]
		l.pos += 3
		return tok
	}

	next := l.peekAt(1)
	switch ch {
	case '+':
		switch next {
		case '+':
			return two(TOKEN_INCR)
		case '=':
			return two(TOKEN_PLUS_ASSIGN)
		}
		return one(TOKEN_PLUS)
	case '-':
		switch next {
		case '-':
			return two(TOKEN_DECR)
		case '=':
			return two(TOKEN_MINUS_ASSIGN)
		}
		return one(TOKEN_MINUS)
	case '*':
		switch next {
		case '*':
			return two(TOKEN_POWER)
		case '=':
			return two(TOKEN_STAR_ASSIGN)
		}
		return one(TOKEN_STAR)
	case '/':
		if next == '=' {
			return two(TOKEN_SLASH_ASSIGN)
		}
		return one(TOKEN_SLASH)
	case '%':
		if next == '=' {
			return two(TOKEN_PERCENT_ASSIGN)
		}
		return one(TOKEN_PERCENT)
	case '<':
		switch next {
		case '=':
			return two(TOKEN_LE)
		case '>':
			return two(TOKEN_NE)
		case '<':
			if l.peekAt(2) == '=' {
				return three(TOKEN_LSHIFT_ASSIGN)
			}
			return two(TOKEN_LSHIFT)
		}
		return one(TOKEN_LT)
	case '>':
		switch next {
		case '=':
			return two(TOKEN_GE)
		case '>':
			if l.peekAt(2) == '=' {
				return three(TOKEN_RSHIFT_ASSIGN)
			}
			return two(TOKEN_RSHIFT)
		}
		return one(TOKEN_GT)
	case '=':
		if next == '=' {
			return two(TOKEN_EQ)
		}
		return one(TOKEN_ASSIGN)
	case '!':
		if next == '=' {
			return two(TOKEN_NE)
		}
		return one(TOKEN_NOT)
	case '&':
		switch next {
		case '&':
			return two(TOKEN_AND)
		case '=':
			return two(TOKEN_BITAND_ASSIGN)
		}
		return one(TOKEN_BITAND)
	case '|':
		switch next {
		case '|':
			return two(TOKEN_OR)
		case '=':
			return two(TOKEN_BITOR_ASSIGN)
		}
		return one(TOKEN_BITOR)
	case '^':
		if next == '=' {
			return two(TOKEN_BITXOR_ASSIGN)
		}
		return one(TOKEN_BITXOR)
	case '~':
		return one(TOKEN_BITNOT)
	case '?':
		switch next {
		case '.':
			return two(TOKEN_SAFEDOT)
		case ':':
			return two(TOKEN_SAFECOLON)
		}
		return one(TOKEN_QUESTION)
	case '.':
		if next == '.' {
			return two(TOKEN_DOTDOT)
		}
		return one(TOKEN_DOT)
	case ':':
		return one(TOKEN_COLON)
	case '(':
		return one(TOKEN_LPAREN)
	case ')':
		return one(TOKEN_RPAREN)
	case '[':
		return one(TOKEN_LBRACKET)
	case ']':
		return one(TOKEN_RBRACKET)
	case '{':
		return one(TOKEN_LBRACE)
	case '}':
		return one(TOKEN_RBRACE)
	case ',':
		return one(TOKEN_COMMA)
	case ';':
		return one(TOKEN_SEMICOLON)
	}

	tok.Type = TOKEN_ERROR
	tok.Value = string(ch)
	l.pos++
	return tok
}

func (l *Lexer) lexNumber(tok Token) Token {
	start := l.pos

	if l.ch() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.pos += 2
		for l.pos < len(l.input) && isHexDigit(l.ch()) {
			l.pos++
		}
		tok.Type = TOKEN_INT
		tok.Value = l.input[start:l.pos]
		return tok
	}

	isFloat := false
	for l.pos < len(l.input) && isDigit(l.ch()) {
		l.pos++
	}
	if l.ch() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++
		for l.pos < len(l.input) && isDigit(l.ch()) {
			l.pos++
		}
	}
	if l.ch() == 'e' || l.ch() == 'E' {
		offset := 1
		if l.peekAt(1) == '+' || l.peekAt(1) == '-' {
			offset = 2
		}
		if isDigit(l.peekAt(offset)) {
			isFloat = true
			l.pos += offset
			for l.pos < len(l.input) && isDigit(l.ch()) {
				l.pos++
			}
		}
	}

	if isFloat {
		tok.Type = TOKEN_FLOAT
	} else {
		tok.Type = TOKEN_INT
	}
	tok.Value = l.input[start:l.pos]
	return tok
}

// lexString scans a double-quoted string. An unescaped `[` marks an
// embedded expression; the token becomes TOKEN_ISTRING carrying the raw
// text, which the compiler rejects as unsupported.
func (l *Lexer) lexString(tok Token) Token {
	l.pos++ // opening quote
	var b strings.Builder
	interp := false

	for l.pos < len(l.input) && l.ch() != '"' {
		ch := l.ch()
		if ch == '\\' && l.pos+1 < len(l.input) {
			l.pos++
			switch l.ch() {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(l.ch())
			}
			l.pos++
			continue
		}
		if ch == '[' {
			interp = true
		}
		b.WriteByte(ch)
		l.pos++
	}

	if l.pos >= len(l.input) {
		tok.Type = TOKEN_ERROR
		tok.Value = "unterminated string"
		return tok
	}
	l.pos++ // closing quote

	if interp {
		tok.Type = TOKEN_ISTRING
	} else {
		tok.Type = TOKEN_STRING
	}
	tok.Value = b.String()
	return tok
}

func (l *Lexer) lexResource(tok Token) Token {
	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.input) && l.ch() != '\'' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		tok.Type = TOKEN_ERROR
		tok.Value = "unterminated resource literal"
		return tok
	}
	tok.Type = TOKEN_RESOURCE
	tok.Value = l.input[start:l.pos]
	l.pos++ // closing quote
	return tok
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
