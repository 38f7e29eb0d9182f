package parser

import (
	"strconv"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/token"
)

// Precedence levels, low to high, for precedence-climbing over the
// operator set: or, and, not, =, !=, <, <=, >, >=, +, -, *, /.
const (
	precLowest = iota
	precOr
	precAnd
	precCompare
	precAdd
	precMul
)

var binPrec = map[token.Kind]int{
	token.KW_OR:   precOr,
	token.KW_AND:  precAnd,
	token.EQUALS:  precCompare,
	token.NOT_EQ:  precCompare,
	token.LT:      precCompare,
	token.LTE:     precCompare,
	token.GT:      precCompare,
	token.GTE:     precCompare,
	token.PLUS:    precAdd,
	token.MINUS:   precAdd,
	token.STAR:    precMul,
	token.SLASH:   precMul,
}

var binOp = map[token.Kind]ir.Op{
	token.KW_OR:  ir.OpOr,
	token.KW_AND: ir.OpAnd,
	token.EQUALS: ir.OpEq,
	token.NOT_EQ: ir.OpNeq,
	token.LT:     ir.OpLt,
	token.LTE:    ir.OpLte,
	token.GT:     ir.OpGt,
	token.GTE:    ir.OpGte,
	token.PLUS:   ir.OpAdd,
	token.MINUS:  ir.OpSub,
	token.STAR:   ir.OpMul,
	token.SLASH:  ir.OpDiv,
}

// parseExpr parses a full expression at the lowest precedence.
func (p *Parser) parseExpr() (ir.Expr, error) {
	return p.parseBinary(precLowest)
}

func (p *Parser) parseBinary(minPrec int) (ir.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binPrec[p.cur.Kind]
		if !ok || prec <= minPrec {
			return left, nil
		}
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(prec)
		if err != nil {
			return nil, err
		}
		left = &ir.Binary{Loc: opTok.Loc, Op: binOp[opTok.Kind], Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ir.Expr, error) {
	switch p.cur.Kind {
	case token.KW_NOT:
		loc := p.cur.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ir.Unary{Loc: loc, Op: ir.OpNot, Expr: e}, nil
	case token.MINUS:
		loc := p.cur.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ir.Unary{Loc: loc, Op: ir.OpSub, Expr: e}, nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (ir.Expr, error) {
	tok := p.cur
	switch tok.Kind {
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case token.STRING:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ir.Literal{Loc: tok.Loc, Kind: ir.LiteralString, Str: tok.StrValue}, nil
	case token.NUMBER:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ir.Literal{Loc: tok.Loc, Kind: ir.LiteralNumber, Num: tok.NumValue}, nil
	case token.KW_TRUE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ir.Literal{Loc: tok.Loc, Kind: ir.LiteralBool, Bool: true}, nil
	case token.KW_FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ir.Literal{Loc: tok.Loc, Kind: ir.LiteralBool, Bool: false}, nil
	case token.KW_NULL:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ir.Literal{Loc: tok.Loc, Kind: ir.LiteralNull}, nil
	default:
		if isIdentLike(tok.Kind) {
			return p.parseIdentOrCallOrField()
		}
		return nil, &Error{Loc: tok.Loc, Kind: ir.KindMalformedExpression, Found: tok.Kind,
			Msg: "expected an expression, found " + tok.Kind.String()}
	}
}

// isIdentLike reports whether a token can stand in for an identifier
// in an expression: a plain IDENT, or any keyword-shaped token used
// outside its declaration context.
func isIdentLike(k token.Kind) bool {
	return k == token.IDENT || token.IsKeyword(k)
}

func (p *Parser) parseIdentOrCallOrField() (ir.Expr, error) {
	tok := p.cur
	name := identText(tok)
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.Kind == token.LPAREN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var args []ir.Expr
		for p.cur.Kind != token.RPAREN {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Kind == token.COMMA {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ir.Call{Loc: tok.Loc, Name: name, Args: args}, nil
	}

	if p.cur.Kind == token.DOT {
		path := []string{name}
		for p.cur.Kind == token.DOT {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if !isIdentLike(p.cur.Kind) {
				return nil, &Error{Loc: p.cur.Loc, Kind: ir.KindMalformedExpression,
					Found: p.cur.Kind, Msg: "expected a field name after '.'"}
			}
			path = append(path, identText(p.cur))
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		return &ir.FieldRef{Loc: tok.Loc, Path: path}, nil
	}

	return &ir.Ident{Loc: tok.Loc, Name: name}, nil
}

// identText returns the textual name of an IDENT or keyword-shaped
// token, for use where the grammar accepts either.
func identText(t token.Token) string {
	if t.Kind == token.IDENT {
		return t.Literal
	}
	return t.Literal
}

// parseIntLiteral parses a bare NUMBER token as a non-negative integer
// (used for str(N), decimal(p,s), limit:N).
func (p *Parser) parseIntLiteral() (int, error) {
	if p.cur.Kind != token.NUMBER {
		return 0, p.errorf(ir.KindMalformedExpression, "expected an integer, found %s", p.cur.Kind)
	}
	text := p.cur.Literal
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, p.errorf(ir.KindMalformedExpression, "expected an integer, found %q", text)
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	return n, nil
}
