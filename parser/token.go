package parser

// TokenType identifies a lexical token.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	// Literals and names
	TOKEN_INT
	TOKEN_FLOAT
	TOKEN_STRING
	TOKEN_ISTRING // string containing embedded [] expressions
	TOKEN_RESOURCE
	TOKEN_IDENT

	// Keywords
	TOKEN_NULL
	TOKEN_NEW
	TOKEN_LOCATE
	TOKEN_PICK
	TOKEN_CALL
	TOKEN_LIST
	TOKEN_INPUT
	TOKEN_IN
	TOKEN_TO

	// Operators
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_POWER
	TOKEN_LT
	TOKEN_LE
	TOKEN_GT
	TOKEN_GE
	TOKEN_EQ
	TOKEN_NE
	TOKEN_AND
	TOKEN_OR
	TOKEN_NOT
	TOKEN_BITAND
	TOKEN_BITOR
	TOKEN_BITXOR
	TOKEN_BITNOT
	TOKEN_LSHIFT
	TOKEN_RSHIFT
	TOKEN_INCR
	TOKEN_DECR

	// Assignment operators
	TOKEN_ASSIGN
	TOKEN_PLUS_ASSIGN
	TOKEN_MINUS_ASSIGN
	TOKEN_STAR_ASSIGN
	TOKEN_SLASH_ASSIGN
	TOKEN_PERCENT_ASSIGN
	TOKEN_BITAND_ASSIGN
	TOKEN_BITOR_ASSIGN
	TOKEN_BITXOR_ASSIGN
	TOKEN_LSHIFT_ASSIGN
	TOKEN_RSHIFT_ASSIGN

	// Access and punctuation
	TOKEN_QUESTION
	TOKEN_COLON
	TOKEN_DOT
	TOKEN_DOTDOT
	TOKEN_SAFEDOT
	TOKEN_SAFECOLON
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_LBRACE
	TOKEN_RBRACE
	TOKEN_COMMA
	TOKEN_SEMICOLON
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ERROR:          "ERROR",
	TOKEN_INT:            "INT",
	TOKEN_FLOAT:          "FLOAT",
	TOKEN_STRING:         "STRING",
	TOKEN_ISTRING:        "ISTRING",
	TOKEN_RESOURCE:       "RESOURCE",
	TOKEN_IDENT:          "IDENT",
	TOKEN_NULL:           "null",
	TOKEN_NEW:            "new",
	TOKEN_LOCATE:         "locate",
	TOKEN_PICK:           "pick",
	TOKEN_CALL:           "call",
	TOKEN_LIST:           "list",
	TOKEN_INPUT:          "input",
	TOKEN_IN:             "in",
	TOKEN_TO:             "to",
	TOKEN_PLUS:           "+",
	TOKEN_MINUS:          "-",
	TOKEN_STAR:           "*",
	TOKEN_SLASH:          "/",
	TOKEN_PERCENT:        "%",
	TOKEN_POWER:          "**",
	TOKEN_LT:             "<",
	TOKEN_LE:             "<=",
	TOKEN_GT:             ">",
	TOKEN_GE:             ">=",
	TOKEN_EQ:             "==",
	TOKEN_NE:             "!=",
	TOKEN_AND:            "&&",
	TOKEN_OR:             "||",
	TOKEN_NOT:            "!",
	TOKEN_BITAND:         "&",
	TOKEN_BITOR:          "|",
	TOKEN_BITXOR:         "^",
	TOKEN_BITNOT:         "~",
	TOKEN_LSHIFT:         "<<",
	TOKEN_RSHIFT:         ">>",
	TOKEN_INCR:           "++",
	TOKEN_DECR:           "--",
	TOKEN_ASSIGN:         "=",
	TOKEN_PLUS_ASSIGN:    "+=",
	TOKEN_MINUS_ASSIGN:   "-=",
	TOKEN_STAR_ASSIGN:    "*=",
	TOKEN_SLASH_ASSIGN:   "/=",
	TOKEN_PERCENT_ASSIGN: "%=",
	TOKEN_BITAND_ASSIGN:  "&=",
	TOKEN_BITOR_ASSIGN:   "|=",
	TOKEN_BITXOR_ASSIGN:  "^=",
	TOKEN_LSHIFT_ASSIGN:  "<<=",
	TOKEN_RSHIFT_ASSIGN:  ">>=",
	TOKEN_QUESTION:       "?",
	TOKEN_COLON:          ":",
	TOKEN_DOT:            ".",
	TOKEN_DOTDOT:         "..",
	TOKEN_SAFEDOT:        "?.",
	TOKEN_SAFECOLON:      "?:",
	TOKEN_LPAREN:         "(",
	TOKEN_RPAREN:         ")",
	TOKEN_LBRACKET:       "[",
	TOKEN_RBRACKET:       "]",
	TOKEN_LBRACE:         "{",
	TOKEN_RBRACE:         "}",
	TOKEN_COMMA:          ",",
	TOKEN_SEMICOLON:      ";",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

var keywords = map[string]TokenType{
	"null":   TOKEN_NULL,
	"new":    TOKEN_NEW,
	"locate": TOKEN_LOCATE,
	"pick":   TOKEN_PICK,
	"call":   TOKEN_CALL,
	"list":   TOKEN_LIST,
	"input":  TOKEN_INPUT,
	"in":     TOKEN_IN,
	"to":     TOKEN_TO,
}

// Token is one lexical token. SpaceBefore records whether whitespace
// preceded it; the colon access operator is only recognized when glued to
// both neighbors, which keeps it apart from the ternary separator.
type Token struct {
	Type        TokenType
	Value       string
	Pos         int
	SpaceBefore bool
}
