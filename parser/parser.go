// Package parser turns DM expression source text into an ast.Expression.
// It is a hand-rolled lexer and precedence-climbing parser; only standalone
// expressions are parsed, never statements or proc bodies.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"dmasm/ast"
)

// Operator precedence, loosest first. Bitwise operators binding looser than
// equality, and shifts looser than relational, is DM's ordering.
const (
	PREC_LOWEST = iota
	PREC_ASSIGN
	PREC_TERNARY
	PREC_IN
	PREC_TO
	PREC_OR
	PREC_AND
	PREC_BITOR
	PREC_BITXOR
	PREC_BITAND
	PREC_EQUALITY
	PREC_SHIFT
	PREC_RELATIONAL
	PREC_ADDITIVE
	PREC_MULTIPLICATIVE
	PREC_POWER
)

var precedences = map[TokenType]int{
	TOKEN_ASSIGN:         PREC_ASSIGN,
	TOKEN_PLUS_ASSIGN:    PREC_ASSIGN,
	TOKEN_MINUS_ASSIGN:   PREC_ASSIGN,
	TOKEN_STAR_ASSIGN:    PREC_ASSIGN,
	TOKEN_SLASH_ASSIGN:   PREC_ASSIGN,
	TOKEN_PERCENT_ASSIGN: PREC_ASSIGN,
	TOKEN_BITAND_ASSIGN:  PREC_ASSIGN,
	TOKEN_BITOR_ASSIGN:   PREC_ASSIGN,
	TOKEN_BITXOR_ASSIGN:  PREC_ASSIGN,
	TOKEN_LSHIFT_ASSIGN:  PREC_ASSIGN,
	TOKEN_RSHIFT_ASSIGN:  PREC_ASSIGN,
	TOKEN_QUESTION:       PREC_TERNARY,
	TOKEN_IN:             PREC_IN,
	TOKEN_TO:             PREC_TO,
	TOKEN_OR:             PREC_OR,
	TOKEN_AND:            PREC_AND,
	TOKEN_BITOR:          PREC_BITOR,
	TOKEN_BITXOR:         PREC_BITXOR,
	TOKEN_BITAND:         PREC_BITAND,
	TOKEN_EQ:             PREC_EQUALITY,
	TOKEN_NE:             PREC_EQUALITY,
	TOKEN_LSHIFT:         PREC_SHIFT,
	TOKEN_RSHIFT:         PREC_SHIFT,
	TOKEN_LT:             PREC_RELATIONAL,
	TOKEN_LE:             PREC_RELATIONAL,
	TOKEN_GT:             PREC_RELATIONAL,
	TOKEN_GE:             PREC_RELATIONAL,
	TOKEN_PLUS:           PREC_ADDITIVE,
	TOKEN_MINUS:          PREC_ADDITIVE,
	TOKEN_STAR:           PREC_MULTIPLICATIVE,
	TOKEN_SLASH:          PREC_MULTIPLICATIVE,
	TOKEN_PERCENT:        PREC_MULTIPLICATIVE,
	TOKEN_POWER:          PREC_POWER,
}

var binaryOps = map[TokenType]ast.BinaryOp{
	TOKEN_PLUS:    ast.BinaryAdd,
	TOKEN_MINUS:   ast.BinarySub,
	TOKEN_STAR:    ast.BinaryMul,
	TOKEN_SLASH:   ast.BinaryDiv,
	TOKEN_PERCENT: ast.BinaryMod,
	TOKEN_POWER:   ast.BinaryPow,
	TOKEN_LT:      ast.BinaryLt,
	TOKEN_LE:      ast.BinaryLe,
	TOKEN_GT:      ast.BinaryGt,
	TOKEN_GE:      ast.BinaryGe,
	TOKEN_EQ:      ast.BinaryEq,
	TOKEN_NE:      ast.BinaryNe,
	TOKEN_BITAND:  ast.BinaryBand,
	TOKEN_BITOR:   ast.BinaryBor,
	TOKEN_BITXOR:  ast.BinaryBxor,
	TOKEN_LSHIFT:  ast.BinaryLShift,
	TOKEN_RSHIFT:  ast.BinaryRShift,
	TOKEN_AND:     ast.BinaryAnd,
	TOKEN_OR:      ast.BinaryOr,
	TOKEN_IN:      ast.BinaryIn,
	TOKEN_TO:      ast.BinaryTo,
}

var assignOps = map[TokenType]ast.AssignOp{
	TOKEN_ASSIGN:         ast.Assign,
	TOKEN_PLUS_ASSIGN:    ast.AssignAdd,
	TOKEN_MINUS_ASSIGN:   ast.AssignSub,
	TOKEN_STAR_ASSIGN:    ast.AssignMul,
	TOKEN_SLASH_ASSIGN:   ast.AssignDiv,
	TOKEN_PERCENT_ASSIGN: ast.AssignMod,
	TOKEN_BITAND_ASSIGN:  ast.AssignBand,
	TOKEN_BITOR_ASSIGN:   ast.AssignBor,
	TOKEN_BITXOR_ASSIGN:  ast.AssignBxor,
	TOKEN_LSHIFT_ASSIGN:  ast.AssignLShift,
	TOKEN_RSHIFT_ASSIGN:  ast.AssignRShift,
}

// ParseError is a syntax error at a byte offset of the input.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg)
}

// Parser parses one expression.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser returns a parser over input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.current = p.lexer.NextToken()
	p.peek = p.lexer.NextToken()
	return p
}

// Parse parses a complete expression, requiring all input to be consumed.
func Parse(input string) (ast.Expression, error) {
	p := NewParser(input)
	expr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_EOF {
		return nil, p.errorf("unexpected %s", p.current.Type)
	}
	return expr, nil
}

func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Pos: p.current.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(t TokenType) error {
	if p.current.Type != t {
		return p.errorf("expected %s, found %s", t, p.current.Type)
	}
	p.nextToken()
	return nil
}

// ParseExpression parses at the given minimum precedence.
func (p *Parser) ParseExpression(prec int) (ast.Expression, error) {
	left, err := p.parseBase()
	if err != nil {
		return nil, err
	}

	for {
		opPrec, ok := precedences[p.current.Type]
		if !ok || opPrec <= prec {
			return left, nil
		}

		switch {
		case p.current.Type == TOKEN_QUESTION:
			left, err = p.parseTernary(left)

		case p.current.Type >= TOKEN_ASSIGN && p.current.Type <= TOKEN_RSHIFT_ASSIGN:
			op := assignOps[p.current.Type]
			p.nextToken()
			var rhs ast.Expression
			rhs, err = p.ParseExpression(PREC_ASSIGN - 1)
			left = ast.AssignExpr{Op: op, LHS: left, RHS: rhs}

		default:
			op := binaryOps[p.current.Type]
			p.nextToken()
			rhsPrec := opPrec
			if op == ast.BinaryPow {
				rhsPrec = opPrec - 1
			}
			var rhs ast.Expression
			rhs, err = p.ParseExpression(rhsPrec)
			left = ast.BinaryExpr{Op: op, LHS: left, RHS: rhs}
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseTernary(cond ast.Expression) (ast.Expression, error) {
	p.nextToken() // ?

	then, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOKEN_COLON); err != nil {
		return nil, err
	}
	otherwise, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	return ast.TernaryExpr{Cond: cond, Then: then, Else: otherwise}, nil
}

// parseBase parses prefix unary operators, a term, its follow chain and any
// postfix ++/--.
func (p *Parser) parseBase() (ast.Expression, error) {
	var unary []ast.UnaryOp

prefix:
	for {
		switch p.current.Type {
		case TOKEN_MINUS:
			unary = append(unary, ast.UnaryNeg)
		case TOKEN_NOT:
			unary = append(unary, ast.UnaryNot)
		case TOKEN_BITNOT:
			unary = append(unary, ast.UnaryBitNot)
		case TOKEN_INCR:
			unary = append(unary, ast.UnaryPreIncr)
		case TOKEN_DECR:
			unary = append(unary, ast.UnaryPreDecr)
		default:
			break prefix
		}
		p.nextToken()
	}

	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	follows, err := p.parseFollows()
	if err != nil {
		return nil, err
	}

	for {
		if p.current.Type == TOKEN_INCR {
			unary = append(unary, ast.UnaryPostIncr)
		} else if p.current.Type == TOKEN_DECR {
			unary = append(unary, ast.UnaryPostDecr)
		} else {
			break
		}
		p.nextToken()
	}

	return ast.Base{Unary: unary, Term: term, Follow: follows}, nil
}

func (p *Parser) parseTerm() (ast.Term, error) {
	switch p.current.Type {
	case TOKEN_INT:
		value := p.current.Value
		p.nextToken()
		n, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			// Out of int32 range; DM overflows integer literals to
			// floats.
			f, ferr := strconv.ParseFloat(value, 32)
			if ferr != nil {
				return nil, p.errorf("bad integer literal %q", value)
			}
			return ast.FloatLit{Value: float32(f)}, nil
		}
		return ast.IntLit{Value: int32(n)}, nil

	case TOKEN_FLOAT:
		value := p.current.Value
		p.nextToken()
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, p.errorf("bad float literal %q", value)
		}
		return ast.FloatLit{Value: float32(f)}, nil

	case TOKEN_STRING:
		value := p.current.Value
		p.nextToken()
		return ast.StringLit{Value: value}, nil

	case TOKEN_ISTRING:
		value := p.current.Value
		p.nextToken()
		return ast.InterpString{Raw: value}, nil

	case TOKEN_RESOURCE:
		value := p.current.Value
		p.nextToken()
		return ast.ResourceLit{Path: value}, nil

	case TOKEN_NULL:
		p.nextToken()
		return ast.NullLit{}, nil

	case TOKEN_IDENT:
		name := p.current.Value
		if p.peek.Type == TOKEN_LPAREN && !p.peek.SpaceBefore {
			p.nextToken()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return ast.CallTerm{Name: name, Args: args}, nil
		}
		p.nextToken()
		return ast.Ident{Name: name}, nil

	case TOKEN_DOT:
		if p.peek.Type == TOKEN_LPAREN {
			p.nextToken()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return ast.SelfCall{Args: args}, nil
		}
		p.nextToken()
		return ast.Ident{Name: "."}, nil

	case TOKEN_DOTDOT:
		p.nextToken()
		var args []ast.Expression
		if p.current.Type == TOKEN_LPAREN {
			var err error
			args, err = p.parseArgs()
			if err != nil {
				return nil, err
			}
		}
		return ast.ParentCall{Args: args}, nil

	case TOKEN_LPAREN:
		p.nextToken()
		expr, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return ast.NestedExpr{Expr: expr}, nil

	case TOKEN_SLASH:
		return p.parseTypePath()

	case TOKEN_NEW:
		return p.parseNew()
	case TOKEN_LOCATE:
		return p.parseLocate()
	case TOKEN_PICK:
		return p.parsePick()
	case TOKEN_CALL:
		return p.parseDynamicCall()
	case TOKEN_LIST:
		return p.parseList()
	case TOKEN_INPUT:
		return p.parseInput()
	}

	return nil, p.errorf("unexpected %s", p.current.Type)
}

func (p *Parser) parseFollows() ([]ast.Follow, error) {
	var follows []ast.Follow

	for {
		var kind ast.AccessKind
		switch p.current.Type {
		case TOKEN_DOT:
			if p.peek.Type != TOKEN_IDENT {
				return follows, nil
			}
			kind = ast.AccessDot

		case TOKEN_COLON:
			// Only a colon glued to both neighbors is a field access;
			// a spaced colon belongs to an enclosing ternary.
			if p.current.SpaceBefore || p.peek.SpaceBefore || p.peek.Type != TOKEN_IDENT {
				return follows, nil
			}
			kind = ast.AccessColon

		case TOKEN_SAFEDOT:
			if p.peek.Type != TOKEN_IDENT {
				return nil, p.errorf("expected field name after ?.")
			}
			kind = ast.AccessSafeDot

		case TOKEN_SAFECOLON:
			if p.peek.Type != TOKEN_IDENT {
				return nil, p.errorf("expected field name after ?:")
			}
			kind = ast.AccessSafeColon

		case TOKEN_LBRACKET:
			p.nextToken()
			index, err := p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, err
			}
			if err := p.expect(TOKEN_RBRACKET); err != nil {
				return nil, err
			}
			follows = append(follows, ast.IndexFollow{Index: index})
			continue

		default:
			return follows, nil
		}

		p.nextToken() // the access operator
		name := p.current.Value
		if p.peek.Type == TOKEN_LPAREN && !p.peek.SpaceBefore {
			p.nextToken() // the name
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			follows = append(follows, ast.CallFollow{Kind: kind, Name: name, Args: args})
			continue
		}
		p.nextToken()
		follows = append(follows, ast.FieldFollow{Kind: kind, Name: name})
	}
}

// parseArgs parses a parenthesized, comma-separated argument list. The
// current token must be the opening paren.
func (p *Parser) parseArgs() ([]ast.Expression, error) {
	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	if p.current.Type == TOKEN_RPAREN {
		p.nextToken()
		return nil, nil
	}

	var args []ast.Expression
	for {
		arg, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			continue
		}
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *Parser) parseTypePath() (ast.TypePath, error) {
	var b strings.Builder
	for p.current.Type == TOKEN_SLASH {
		b.WriteByte('/')
		p.nextToken()
		if p.current.Type != TOKEN_IDENT {
			return ast.TypePath{}, p.errorf("expected identifier in type path")
		}
		b.WriteString(p.current.Value)
		p.nextToken()
	}

	path := ast.TypePath{Path: b.String()}

	if p.current.Type == TOKEN_LBRACE {
		// Inline var block; recorded so the compiler can reject it.
		path.HasVars = true
		depth := 0
		for {
			switch p.current.Type {
			case TOKEN_LBRACE:
				depth++
			case TOKEN_RBRACE:
				depth--
			case TOKEN_EOF:
				return ast.TypePath{}, p.errorf("unterminated var block in type path")
			}
			p.nextToken()
			if depth == 0 {
				break
			}
		}
	}

	return path, nil
}

func (p *Parser) parseNew() (ast.Term, error) {
	p.nextToken() // new
	term := ast.NewTerm{}

	switch p.current.Type {
	case TOKEN_SLASH:
		prefab, err := p.parseTypePath()
		if err != nil {
			return nil, err
		}
		term.Prefab = &prefab

	case TOKEN_IDENT:
		mini := &ast.MiniExpr{Ident: p.current.Value}
		p.nextToken()
		for p.current.Type == TOKEN_DOT && p.peek.Type == TOKEN_IDENT {
			p.nextToken()
			mini.Fields = append(mini.Fields, ast.FieldFollow{
				Kind: ast.AccessDot,
				Name: p.current.Value,
			})
			p.nextToken()
		}
		term.MiniExpr = mini
	}

	if p.current.Type == TOKEN_LPAREN {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		term.Args = args
	}

	return term, nil
}

func (p *Parser) parseLocate() (ast.Term, error) {
	p.nextToken() // locate
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	term := ast.LocateTerm{Args: args}
	if p.current.Type == TOKEN_IN {
		p.nextToken()
		term.In, err = p.ParseExpression(PREC_IN)
		if err != nil {
			return nil, err
		}
	}
	return term, nil
}

func (p *Parser) parsePick() (ast.Term, error) {
	p.nextToken() // pick
	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}

	var entries []ast.PickEntry
	for p.current.Type != TOKEN_RPAREN {
		expr, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}

		entry := ast.PickEntry{Value: expr}
		if p.current.Type == TOKEN_SEMICOLON {
			p.nextToken()
			entry.Weight = expr
			entry.Value, err = p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)

		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			continue
		}
		break
	}

	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return ast.PickTerm{Entries: entries}, nil
}

func (p *Parser) parseDynamicCall() (ast.Term, error) {
	p.nextToken() // call
	lhs, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_LPAREN {
		return nil, p.errorf("expected argument list after call(...)")
	}
	rhs, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return ast.DynamicCall{LHS: lhs, RHS: rhs}, nil
}

func (p *Parser) parseList() (ast.Term, error) {
	p.nextToken() // list
	entries, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return ast.ListTerm{Entries: entries}, nil
}

func (p *Parser) parseInput() (ast.Term, error) {
	p.nextToken() // input
	if p.current.Type == TOKEN_LPAREN {
		if _, err := p.parseArgs(); err != nil {
			return nil, err
		}
	}
	return ast.InputTerm{}, nil
}
