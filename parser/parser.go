// Package parser builds a per-file Module AST from a token stream via
// single-pass recursive descent with one-token lookahead. The parser
// never backtracks across declaration boundaries; on error inside one
// top-level declaration it recovers by skipping to the next top-level
// declaration so the rest of the file still parses.
package parser

import (
	"fmt"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/token"
)

// Parser walks a flat token slice produced by the lexer.
type Parser struct {
	toks []token.Token
	pos  int
	cur  token.Token
	file string
}

// Parse consumes the full token stream for one file and returns its
// Module AST plus any parse errors found. Errors are collected across
// every recoverable top-level declaration and malformed use clause;
// only a missing or malformed module header is fatal, returning its
// Error with no module.
func Parse(toks []token.Token, file string) (*ir.Module, []*Error) {
	p := &Parser{toks: toks, file: file}
	if len(toks) > 0 {
		p.cur = toks[0]
	}
	return p.parseModule()
}

func (p *Parser) advance() error {
	p.pos++
	if p.pos >= len(p.toks) {
		p.cur = token.Token{Kind: token.EOF, Loc: p.cur.Loc}
		return nil
	}
	p.cur = p.toks[p.pos]
	return nil
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.toks) {
		return token.Token{Kind: token.EOF, Loc: p.cur.Loc}
	}
	return p.toks[p.pos+1]
}

func (p *Parser) errorf(kind ir.DiagnosticKind, format string, args ...any) *Error {
	return &Error{Loc: p.cur.Loc, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(k token.Kind) error {
	if p.cur.Kind != k {
		return &Error{Loc: p.cur.Loc, Kind: ir.KindExpectedToken, Expected: []token.Kind{k}, Found: p.cur.Kind}
	}
	return p.advance()
}

// expectIdentLike accepts an IDENT or any keyword-shaped token used as
// a bare name, returning its text.
func (p *Parser) expectIdentLike() (string, error) {
	if !isIdentLike(p.cur.Kind) {
		return "", &Error{Loc: p.cur.Loc, Kind: ir.KindExpectedToken, Expected: []token.Kind{token.IDENT}, Found: p.cur.Kind}
	}
	name := identText(p.cur)
	if err := p.advance(); err != nil {
		return "", err
	}
	return name, nil
}

func (p *Parser) expectString() (string, error) {
	if p.cur.Kind != token.STRING {
		return "", &Error{Loc: p.cur.Loc, Kind: ir.KindExpectedToken, Expected: []token.Kind{token.STRING}, Found: p.cur.Kind}
	}
	s := p.cur.StrValue
	return s, p.advance()
}

// skipNewline consumes the current token if it is a NEWLINE and
// otherwise does nothing.
func (p *Parser) skipNewline() error {
	if p.cur.Kind == token.NEWLINE {
		return p.advance()
	}
	return nil
}

// enterBlock verifies the current token is INDENT and consumes it.
func (p *Parser) enterBlock() error {
	if p.cur.Kind != token.INDENT {
		return &Error{Loc: p.cur.Loc, Kind: ir.KindExpectedToken, Expected: []token.Kind{token.INDENT}, Found: p.cur.Kind,
			Hint: "expected an indented block here"}
	}
	return p.advance()
}

// exitBlock verifies the current token is DEDENT and consumes it.
func (p *Parser) exitBlock() error {
	if p.cur.Kind != token.DEDENT {
		return &Error{Loc: p.cur.Loc, Kind: ir.KindExpectedToken, Expected: []token.Kind{token.DEDENT}, Found: p.cur.Kind}
	}
	return p.advance()
}

// recoverToNextTopLevel skips tokens until the parser is positioned at
// a token that starts a new top-level declaration (depth returns to
// zero after the failing declaration's block), or EOF. This bounds
// the blast radius of one malformed declaration to itself.
func (p *Parser) recoverToNextTopLevel() {
	depth := 0
	for {
		switch p.cur.Kind {
		case token.EOF:
			return
		case token.INDENT:
			depth++
		case token.DEDENT:
			depth--
		case token.NEWLINE:
			if depth <= 0 {
				_ = p.advance()
				if depth < 0 {
					depth = 0
				}
				if isTopLevelStart(p.cur.Kind) || p.cur.Kind == token.EOF {
					return
				}
				continue
			}
		}
		if err := p.advance(); err != nil {
			return
		}
	}
}

func isTopLevelStart(k token.Kind) bool {
	switch k {
	case token.KW_ENTITY, token.KW_SURFACE, token.KW_WORKSPACE, token.KW_PERSONA,
		token.KW_SCENARIO, token.KW_LLM_MODEL, token.KW_LLM_INTENT, token.KW_LLM_CONFIG,
		token.KW_EVENT, token.KW_SUBSCRIBE, token.KW_PROCESS, token.KW_SCHEDULE:
		return true
	}
	return false
}

func (p *Parser) parseModule() (*ir.Module, []*Error) {
	var errs []*Error
	loc := p.cur.Loc

	if p.cur.Kind != token.KW_MODULE {
		errs = append(errs, &Error{Loc: loc, Kind: ir.KindMissingModuleHeader,
			Expected: []token.Kind{token.KW_MODULE}, Found: p.cur.Kind,
			Msg: "a file must begin with a 'module' declaration"})
		return nil, errs
	}
	if err := p.advance(); err != nil {
		errs = append(errs, asErr(err))
		return nil, errs
	}

	name, err := p.parseDottedName()
	if err != nil {
		errs = append(errs, asErr(err))
		return nil, errs
	}
	if err := p.expect(token.NEWLINE); err != nil {
		errs = append(errs, asErr(err))
		return nil, errs
	}

	mod := &ir.Module{Loc: loc, Name: name}

	for p.cur.Kind == token.KW_USE {
		if err := p.advance(); err != nil {
			errs = append(errs, asErr(err))
			break
		}
		useName, err := p.parseDottedName()
		if err != nil {
			errs = append(errs, asErr(err))
			p.recoverToNextTopLevel()
			break
		}
		mod.Uses = append(mod.Uses, useName)
		if err := p.expect(token.NEWLINE); err != nil {
			errs = append(errs, asErr(err))
		}
	}

	if p.cur.Kind == token.KW_APP {
		appLoc := p.cur.Loc
		if err := p.advance(); err != nil {
			errs = append(errs, asErr(err))
		} else {
			appName, err := p.expectIdentLike()
			if err != nil {
				errs = append(errs, asErr(err))
			} else {
				title, err := p.expectString()
				if err != nil {
					errs = append(errs, asErr(err))
				} else {
					mod.App = &ir.AppDecl{Loc: appLoc, Name: appName, Title: title}
				}
			}
			if err := p.expect(token.NEWLINE); err != nil {
				errs = append(errs, asErr(err))
			}
		}
	}

	for p.cur.Kind != token.EOF {
		decl, err := p.parseDeclaration()
		if err != nil {
			errs = append(errs, asErr(err))
			p.recoverToNextTopLevel()
			continue
		}
		if decl != nil {
			mod.Declarations = append(mod.Declarations, decl)
		}
	}

	return mod, errs
}

func (p *Parser) parseDottedName() (string, error) {
	first, err := p.expectIdentLike()
	if err != nil {
		return "", err
	}
	name := first
	for p.cur.Kind == token.DOT {
		if err := p.advance(); err != nil {
			return "", err
		}
		part, err := p.expectIdentLike()
		if err != nil {
			return "", err
		}
		name += "." + part
	}
	return name, nil
}

func (p *Parser) parseDeclaration() (ir.Declaration, error) {
	switch p.cur.Kind {
	case token.KW_ENTITY:
		return p.parseEntity()
	case token.KW_SURFACE:
		return p.parseSurface()
	case token.KW_WORKSPACE:
		return p.parseWorkspace()
	case token.KW_PERSONA:
		return p.parsePersona()
	case token.KW_SCENARIO:
		return p.parseScenario()
	case token.KW_LLM_MODEL:
		return p.parseLlmModel()
	case token.KW_LLM_INTENT:
		return p.parseLlmIntent()
	case token.KW_LLM_CONFIG:
		return p.parseLlmConfig()
	case token.KW_EVENT:
		return p.parseEventModel()
	case token.KW_SUBSCRIBE:
		return p.parseSubscribe()
	case token.KW_PROCESS:
		return p.parseProcess()
	case token.KW_SCHEDULE:
		return p.parseSchedule()
	default:
		return nil, &Error{Loc: p.cur.Loc, Kind: ir.KindExpectedToken, Found: p.cur.Kind,
			Msg: "expected a declaration (entity, surface, workspace, persona, scenario, llm_model, llm_intent, llm_config, event, subscribe, process, schedule), found " + p.cur.Kind.String()}
	}
}

func asErr(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Msg: err.Error()}
}
