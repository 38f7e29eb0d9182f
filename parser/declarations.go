package parser

import (
	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/token"
)

// --- Entity -----------------------------------------------------------

func (p *Parser) parseEntity() (*ir.Entity, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	e := &ir.Entity{Loc: loc, Name: name, DisplayName: name}
	if p.cur.Kind == token.STRING {
		e.DisplayName, err = p.expectString()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		if err := p.parseEntityItem(e); err != nil {
			return nil, err
		}
	}
	return e, p.exitBlock()
}

func (p *Parser) parseEntityItem(e *ir.Entity) error {
	switch p.cur.Kind {
	case token.KW_TRANSITIONS:
		return p.parseTransitions(e)
	case token.KW_INVARIANT:
		return p.parseInvariant(e)
	case token.KW_PERMIT:
		return p.parseAccessBlock(&e.Permit)
	case token.KW_FORBID:
		return p.parseAccessBlock(&e.Forbid)
	case token.KW_AUDIT:
		return p.parseAudit(e)
	case token.KW_ARCHETYPE:
		return p.parseStringOrIdentAttr(token.KW_ARCHETYPE, &e.Archetype)
	case token.KW_INTENT:
		return p.parseStringAttr(token.KW_INTENT, &e.Intent)
	case token.KW_DOMAIN:
		return p.parseStringOrIdentAttr(token.KW_DOMAIN, &e.Domain)
	case token.KW_PATTERNS:
		return p.parsePatterns(e)
	case token.KW_INDEX:
		return p.parseIndex(e)
	default:
		f, err := p.parseField()
		if err != nil {
			return err
		}
		e.Fields = append(e.Fields, *f)
		return nil
	}
}

func (p *Parser) parseField() (*ir.Field, error) {
	loc := p.cur.Loc
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	ft, err := p.parseFieldType()
	if err != nil {
		return nil, err
	}
	f := &ir.Field{Loc: loc, Name: name, Type: ft}
	for isModifierToken(p.cur.Kind) {
		f.Modifiers = append(f.Modifiers, modifierFor(p.cur.Kind))
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.cur.Kind == token.EQUALS {
		if err := p.advance(); err != nil {
			return nil, err
		}
		def, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		f.Default = &def
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return f, nil
}

func isModifierToken(k token.Kind) bool {
	switch k {
	case token.KW_PK, token.KW_REQUIRED, token.KW_OPTIONAL, token.KW_UNIQUE,
		token.KW_AUTO_ADD, token.KW_AUTO_UPDATE:
		return true
	}
	return false
}

func modifierFor(k token.Kind) ir.Modifier {
	switch k {
	case token.KW_PK:
		return ir.ModPK
	case token.KW_REQUIRED:
		return ir.ModRequired
	case token.KW_OPTIONAL:
		return ir.ModOptional
	case token.KW_UNIQUE:
		return ir.ModUnique
	case token.KW_AUTO_ADD:
		return ir.ModAutoAdd
	case token.KW_AUTO_UPDATE:
		return ir.ModAutoUpdate
	}
	return ""
}

func (p *Parser) parseFieldType() (ir.FieldType, error) {
	switch p.cur.Kind {
	case token.KW_COMPUTED:
		if err := p.advance(); err != nil {
			return ir.FieldType{}, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return ir.FieldType{}, err
		}
		return ir.FieldType{Kind: ir.FieldTypeComputed, Computed: expr}, nil
	case token.KW_ENUM:
		return p.parseEnumType()
	case token.KW_REF:
		return p.parseRefType(ir.RefMandatory)
	case token.KW_HAS_MANY:
		return p.parseRefType(ir.RefHasMany)
	case token.KW_BELONGS_TO:
		return p.parseRefType(ir.RefBelongsTo)
	case token.IDENT:
		return p.parseScalarType()
	default:
		return ir.FieldType{}, p.errorf(ir.KindInvalidFieldType, "expected a field type, found %s", p.cur.Kind)
	}
}

func (p *Parser) parseScalarType() (ir.FieldType, error) {
	name := p.cur.Literal
	scalar, ok := ir.ScalarKinds[name]
	if !ok {
		return ir.FieldType{}, p.errorf(ir.KindInvalidFieldType, "unknown scalar type %q", name)
	}
	if err := p.advance(); err != nil {
		return ir.FieldType{}, err
	}
	ft := ir.FieldType{Kind: ir.FieldTypeScalar, Scalar: scalar}
	if p.cur.Kind == token.LPAREN {
		if err := p.advance(); err != nil {
			return ir.FieldType{}, err
		}
		switch scalar {
		case ir.ScalarStr:
			n, err := p.parseIntLiteral()
			if err != nil {
				return ir.FieldType{}, err
			}
			ft.StrLen = n
		case ir.ScalarDecimal:
			prec, err := p.parseIntLiteral()
			if err != nil {
				return ir.FieldType{}, err
			}
			if err := p.expect(token.COMMA); err != nil {
				return ir.FieldType{}, err
			}
			scale, err := p.parseIntLiteral()
			if err != nil {
				return ir.FieldType{}, err
			}
			ft.DecPrec, ft.DecScale = prec, scale
		default:
			return ir.FieldType{}, p.errorf(ir.KindInvalidFieldType, "%q does not take arguments", name)
		}
		if err := p.expect(token.RPAREN); err != nil {
			return ir.FieldType{}, err
		}
	}
	return ft, nil
}

func (p *Parser) parseEnumType() (ir.FieldType, error) {
	if err := p.advance(); err != nil {
		return ir.FieldType{}, err
	}
	if err := p.expect(token.LBRACK); err != nil {
		return ir.FieldType{}, err
	}
	ft := ir.FieldType{Kind: ir.FieldTypeEnum}
	for p.cur.Kind != token.RBRACK {
		v, err := p.parseEnumVariant()
		if err != nil {
			return ir.FieldType{}, err
		}
		ft.EnumValues = append(ft.EnumValues, v)
		if p.cur.Kind == token.COMMA {
			if err := p.advance(); err != nil {
				return ir.FieldType{}, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.RBRACK); err != nil {
		return ir.FieldType{}, err
	}
	if len(ft.EnumValues) == 0 {
		return ir.FieldType{}, p.errorf(ir.KindMalformedExpression, "enum must declare at least one variant")
	}
	if p.cur.Kind == token.EQUALS {
		if err := p.advance(); err != nil {
			return ir.FieldType{}, err
		}
		v, err := p.parseEnumVariant()
		if err != nil {
			return ir.FieldType{}, err
		}
		ft.EnumDefault = v
	}
	return ft, nil
}

func (p *Parser) parseEnumVariant() (string, error) {
	if p.cur.Kind == token.STRING {
		return p.expectString()
	}
	return p.expectIdentLike()
}

func (p *Parser) parseRefType(kind ir.RefKind) (ir.FieldType, error) {
	if err := p.advance(); err != nil {
		return ir.FieldType{}, err
	}
	target, err := p.expectIdentLike()
	if err != nil {
		return ir.FieldType{}, err
	}
	return ir.FieldType{Kind: ir.FieldTypeRef, RefKind: kind, RefTarget: target}, nil
}

func (p *Parser) parseTransitions(e *ir.Entity) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if err := p.enterBlock(); err != nil {
		return err
	}
	for p.cur.Kind != token.DEDENT {
		t, err := p.parseTransition()
		if err != nil {
			return err
		}
		e.Transitions = append(e.Transitions, *t)
	}
	return p.exitBlock()
}

func (p *Parser) parseTransition() (*ir.Transition, error) {
	loc := p.cur.Loc
	t := &ir.Transition{Loc: loc}
	if p.cur.Kind == token.STAR {
		t.IsWildcardFrom = true
		t.From = "*"
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		name, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		t.From = name
	}
	if err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	to, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	t.To = to
	if p.cur.Kind == token.COLON {
		if err := p.advance(); err != nil {
			return nil, err
		}
		guard, err := p.parseGuard()
		if err != nil {
			return nil, err
		}
		t.Guard = guard
	}
	return t, p.expect(token.NEWLINE)
}

// parseGuard parses `role(R)` or `requires field_name` as an Expr;
// both render as Call nodes so the validator can dispatch on
// Call.Name without a separate guard AST.
func (p *Parser) parseGuard() (ir.Expr, error) {
	loc := p.cur.Loc
	switch p.cur.Kind {
	case token.KW_ROLE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		role, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ir.Call{Loc: loc, Name: "role", Args: []ir.Expr{&ir.Ident{Loc: loc, Name: role}}}, nil
	case token.KW_REQUIRES:
		if err := p.advance(); err != nil {
			return nil, err
		}
		field, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		return &ir.Call{Loc: loc, Name: "requires", Args: []ir.Expr{&ir.FieldRef{Loc: loc, Path: []string{field}}}}, nil
	default:
		return nil, p.errorf(ir.KindMalformedExpression, "expected a guard (role(...) or requires ...), found %s", p.cur.Kind)
	}
}

func (p *Parser) parseInvariant(e *ir.Entity) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return err
	}
	e.Invariants = append(e.Invariants, expr)
	return p.expect(token.NEWLINE)
}

func (p *Parser) parseAccessBlock(out *[]ir.AccessRule) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if err := p.enterBlock(); err != nil {
		return err
	}
	for p.cur.Kind != token.DEDENT {
		loc := p.cur.Loc
		actionName, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		if err := p.expect(token.COLON); err != nil {
			return err
		}
		pred, err := p.parseExpr()
		if err != nil {
			return err
		}
		*out = append(*out, ir.AccessRule{Loc: loc, Action: ir.Action(actionName), Pred: pred})
		if err := p.expect(token.NEWLINE); err != nil {
			return err
		}
	}
	return p.exitBlock()
}

func (p *Parser) parseAudit(e *ir.Entity) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	switch {
	case p.cur.Kind == token.KW_FALSE:
		e.Audit = ir.AuditSpec{Mode: ir.AuditNone}
		if err := p.advance(); err != nil {
			return err
		}
	case p.cur.Kind == token.IDENT && p.cur.Literal == "all":
		e.Audit = ir.AuditSpec{Mode: ir.AuditAll}
		if err := p.advance(); err != nil {
			return err
		}
	case p.cur.Kind == token.LBRACK:
		if err := p.advance(); err != nil {
			return err
		}
		var actions []ir.Action
		for p.cur.Kind != token.RBRACK {
			name, err := p.expectIdentLike()
			if err != nil {
				return err
			}
			actions = append(actions, ir.Action(name))
			if p.cur.Kind == token.COMMA {
				if err := p.advance(); err != nil {
					return err
				}
				continue
			}
			break
		}
		if err := p.expect(token.RBRACK); err != nil {
			return err
		}
		e.Audit = ir.AuditSpec{Mode: ir.AuditActions, Actions: actions}
	default:
		return p.errorf(ir.KindMalformedExpression, "expected 'all', 'false', or an action list, found %s", p.cur.Kind)
	}
	return p.expect(token.NEWLINE)
}

func (p *Parser) parseStringAttr(kw token.Kind, out *string) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	s, err := p.expectString()
	if err != nil {
		return err
	}
	*out = s
	return p.expect(token.NEWLINE)
}

func (p *Parser) parseStringOrIdentAttr(kw token.Kind, out *string) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	var v string
	var err error
	if p.cur.Kind == token.STRING {
		v, err = p.expectString()
	} else {
		v, err = p.expectIdentLike()
	}
	if err != nil {
		return err
	}
	*out = v
	return p.expect(token.NEWLINE)
}

func (p *Parser) parsePatterns(e *ir.Entity) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	idents, err := p.parseIdentList()
	if err != nil {
		return err
	}
	e.Patterns = idents
	return p.expect(token.NEWLINE)
}

func (p *Parser) parseIdentList() ([]string, error) {
	if err := p.expect(token.LBRACK); err != nil {
		return nil, err
	}
	var out []string
	for p.cur.Kind != token.RBRACK {
		name, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		out = append(out, name)
		if p.cur.Kind == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return out, p.expect(token.RBRACK)
}

func (p *Parser) parseIndex(e *ir.Entity) error {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return err
	}
	fields, err := p.parseIdentList()
	if err != nil {
		return err
	}
	e.Indexes = append(e.Indexes, ir.IndexSpec{Loc: loc, Fields: fields})
	return p.expect(token.NEWLINE)
}

// --- Surface ------------------------------------------------------

func (p *Parser) parseSurface() (*ir.Surface, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	s := &ir.Surface{Loc: loc, Name: name, DisplayName: name}
	if p.cur.Kind == token.STRING {
		s.DisplayName, err = p.expectString()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		if err := p.parseSurfaceItem(s); err != nil {
			return nil, err
		}
	}
	return s, p.exitBlock()
}

func (p *Parser) parseSurfaceItem(s *ir.Surface) error {
	switch p.cur.Kind {
	case token.KW_USES:
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expect(token.KW_ENTITY); err != nil {
			return err
		}
		name, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		s.Entity = name
		return p.expect(token.NEWLINE)
	case token.KW_MODE:
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expect(token.COLON); err != nil {
			return err
		}
		mode, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		s.Mode = ir.SurfaceMode(mode)
		return p.expect(token.NEWLINE)
	case token.KW_SECTION:
		return p.parseSection(s)
	case token.IDENT:
		if p.cur.Literal == "ux" {
			return p.parseSurfaceUX(s)
		}
		return p.errorf(ir.KindExpectedToken, "unexpected surface item %q", p.cur.Literal)
	default:
		return p.errorf(ir.KindExpectedToken, "unexpected surface item, found %s", p.cur.Kind)
	}
}

func (p *Parser) parseSection(s *ir.Surface) error {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return err
	}
	sec := ir.Section{Loc: loc, Name: name, DisplayName: name}
	if p.cur.Kind == token.STRING {
		sec.DisplayName, err = p.expectString()
		if err != nil {
			return err
		}
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if err := p.enterBlock(); err != nil {
		return err
	}
	for p.cur.Kind != token.DEDENT {
		field, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		sec.Fields = append(sec.Fields, field)
		if err := p.expect(token.NEWLINE); err != nil {
			return err
		}
	}
	if err := p.exitBlock(); err != nil {
		return err
	}
	s.Sections = append(s.Sections, sec)
	return nil
}

func (p *Parser) parseSurfaceUX(s *ir.Surface) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if err := p.enterBlock(); err != nil {
		return err
	}
	ux := &ir.SurfaceUX{PersonaVariant: map[string]ir.SurfaceUXVariant{}}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		if err := p.expect(token.COLON); err != nil {
			return err
		}
		switch key {
		case "sort":
			v, err := p.expectIdentLike()
			if err != nil {
				return err
			}
			ux.Sort = v
		case "filter":
			expr, err := p.parseExpr()
			if err != nil {
				return err
			}
			ux.Filter = expr
		case "search":
			fields, err := p.parseIdentList()
			if err != nil {
				return err
			}
			ux.Search = fields
		case "empty":
			v, err := p.expectString()
			if err != nil {
				return err
			}
			ux.Empty = v
		default:
			return p.errorf(ir.KindExpectedToken, "unknown ux attribute %q", key)
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return err
		}
	}
	if err := p.exitBlock(); err != nil {
		return err
	}
	s.UX = ux
	return nil
}

// --- Workspace ------------------------------------------------------

func (p *Parser) parseWorkspace() (*ir.Workspace, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	w := &ir.Workspace{Loc: loc, Name: name, DisplayName: name}
	if p.cur.Kind == token.STRING {
		w.DisplayName, err = p.expectString()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		if err := p.parseWorkspaceItem(w); err != nil {
			return nil, err
		}
	}
	return w, p.exitBlock()
}

func (p *Parser) parseWorkspaceItem(w *ir.Workspace) error {
	switch {
	case p.cur.Kind == token.IDENT && p.cur.Literal == "purpose":
		return p.parseStringAttr(token.IDENT, &w.Purpose)
	case p.cur.Kind == token.IDENT && p.cur.Literal == "engine_hint":
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expect(token.COLON); err != nil {
			return err
		}
		hint, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		w.EngineHint = ir.EngineHint(hint)
		return p.expect(token.NEWLINE)
	case p.cur.Kind == token.IDENT && p.cur.Literal == "signal":
		return p.parseSignal(w)
	default:
		return p.errorf(ir.KindExpectedToken, "unexpected workspace item, found %s", p.cur.Kind)
	}
}

func (p *Parser) parseSignal(w *ir.Workspace) error {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return err
	}
	sig := ir.Signal{Loc: loc, Name: name, PersonaVariant: map[string]ir.SignalUXVariant{}}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if err := p.enterBlock(); err != nil {
		return err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		if err := p.expect(token.COLON); err != nil {
			return err
		}
		switch key {
		case "source":
			v, err := p.expectIdentLike()
			if err != nil {
				return err
			}
			sig.Source = v
		case "filter":
			expr, err := p.parseExpr()
			if err != nil {
				return err
			}
			sig.Filter = expr
		case "sort":
			v, err := p.expectIdentLike()
			if err != nil {
				return err
			}
			sig.Sort = v
		case "limit":
			n, err := p.parseIntLiteral()
			if err != nil {
				return err
			}
			sig.Limit = n
		case "display":
			v, err := p.expectIdentLike()
			if err != nil {
				return err
			}
			sig.Display = ir.SignalDisplay(v)
		case "action":
			v, err := p.expectIdentLike()
			if err != nil {
				return err
			}
			sig.Action = v
		case "aggregate":
			agg, err := p.parseAggregateBlock()
			if err != nil {
				return err
			}
			sig.Aggregate = agg
			w.Signals = append(w.Signals, sig)
			return p.exitBlock()
		default:
			return p.errorf(ir.KindExpectedToken, "unknown signal attribute %q", key)
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return err
		}
	}
	w.Signals = append(w.Signals, sig)
	return p.exitBlock()
}

func (p *Parser) parseAggregateBlock() (map[string]ir.Expr, error) {
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	out := map[string]ir.Expr{}
	for p.cur.Kind != token.DEDENT {
		name, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		out[name] = expr
		if err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
	}
	return out, p.exitBlock()
}

// --- Persona / Scenario --------------------------------------------

func (p *Parser) parsePersona() (*ir.Persona, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	pr := &ir.Persona{Loc: loc, Name: name}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		switch key {
		case "description":
			v, err := p.expectString()
			if err != nil {
				return nil, err
			}
			pr.Description = v
		case "goals":
			v, err := p.parseStringListOrIdentList()
			if err != nil {
				return nil, err
			}
			pr.Goals = v
		case "proficiency_level":
			v, err := p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			pr.Proficiency = ir.ProficiencyLevel(v)
		case "session_style":
			v, err := p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			pr.SessionStyle = v
		case "default_workspace":
			v, err := p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			pr.DefaultWorkspace = v
		case "default_route":
			v, err := p.expectString()
			if err != nil {
				return nil, err
			}
			pr.DefaultRoute = v
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unknown persona attribute %q", key)
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
	}
	return pr, p.exitBlock()
}

func (p *Parser) parseStringListOrIdentList() ([]string, error) {
	if err := p.expect(token.LBRACK); err != nil {
		return nil, err
	}
	var out []string
	for p.cur.Kind != token.RBRACK {
		var v string
		var err error
		if p.cur.Kind == token.STRING {
			v, err = p.expectString()
		} else {
			v, err = p.expectIdentLike()
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if p.cur.Kind == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return out, p.expect(token.RBRACK)
}

func (p *Parser) parseScenario() (*ir.Scenario, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	sc := &ir.Scenario{Loc: loc, Name: name, StartRoutes: map[string]string{}, Fixtures: map[string][]ir.FixtureRow{}}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		switch {
		case p.cur.Kind == token.IDENT && p.cur.Literal == "start_route":
			if err := p.advance(); err != nil {
				return nil, err
			}
			persona, err := p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			route, err := p.expectString()
			if err != nil {
				return nil, err
			}
			sc.StartRoutes[persona] = route
			if err := p.expect(token.NEWLINE); err != nil {
				return nil, err
			}
		case p.cur.Kind == token.IDENT && p.cur.Literal == "demo":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			if err := p.expect(token.NEWLINE); err != nil {
				return nil, err
			}
			if err := p.enterBlock(); err != nil {
				return nil, err
			}
			for p.cur.Kind != token.DEDENT {
				entity, err := p.expectIdentLike()
				if err != nil {
					return nil, err
				}
				if err := p.expect(token.COLON); err != nil {
					return nil, err
				}
				if err := p.expect(token.NEWLINE); err != nil {
					return nil, err
				}
				if err := p.enterBlock(); err != nil {
					return nil, err
				}
				for p.cur.Kind != token.DEDENT {
					row, err := p.parseFixtureRow()
					if err != nil {
						return nil, err
					}
					sc.Fixtures[entity] = append(sc.Fixtures[entity], *row)
				}
				if err := p.exitBlock(); err != nil {
					return nil, err
				}
			}
			if err := p.exitBlock(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unexpected scenario item, found %s", p.cur.Kind)
		}
	}
	return sc, p.exitBlock()
}

func (p *Parser) parseFixtureRow() (*ir.FixtureRow, error) {
	loc := p.cur.Loc
	row := &ir.FixtureRow{Loc: loc, Values: map[string]ir.Expr{}}
	if err := p.expect(token.LBRACK); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.RBRACK {
		field, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.EQUALS); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		row.Values[field] = val
		if p.cur.Kind == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}
	return row, p.expect(token.NEWLINE)
}

// --- LLM ------------------------------------------------------------

func (p *Parser) parseLlmModel() (*ir.LlmModel, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	m := &ir.LlmModel{Loc: loc, Name: name}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		switch key {
		case "provider":
			m.Provider, err = p.expectIdentLike()
		case "model_id":
			m.ModelID, err = p.expectString()
		case "tier":
			m.Tier, err = p.expectIdentLike()
		case "max_tokens":
			m.MaxTokens, err = p.parseIntLiteral()
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unknown llm_model attribute %q", key)
		}
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
	}
	return m, p.exitBlock()
}

func (p *Parser) parseLlmIntent() (*ir.LlmIntent, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	in := &ir.LlmIntent{Loc: loc, Name: name}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		switch key {
		case "model":
			in.Model, err = p.expectIdentLike()
			if err != nil {
				return nil, err
			}
		case "prompt":
			in.Prompt, err = p.expectString()
			if err != nil {
				return nil, err
			}
		case "output_schema":
			in.OutputSchema, err = p.expectIdentLike()
			if err != nil {
				return nil, err
			}
		case "timeout":
			d, err := p.parseDuration()
			if err != nil {
				return nil, err
			}
			in.Timeout = d.asDuration()
		case "retry":
			if err := p.parseRetry(in); err != nil {
				return nil, err
			}
			continue
		case "pii":
			if err := p.parsePii(in); err != nil {
				return nil, err
			}
			continue
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unknown llm_intent attribute %q", key)
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
	}
	return in, p.exitBlock()
}

func (p *Parser) parseDuration() (durationField, error) {
	n, err := p.parseIntLiteral()
	if err != nil {
		return 0, err
	}
	unit, err := p.expectIdentLike()
	if err != nil {
		return 0, err
	}
	return durationFromUnits(n, unit)
}

func (p *Parser) parseRetry(in *ir.LlmIntent) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if err := p.enterBlock(); err != nil {
		return err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		if err := p.expect(token.COLON); err != nil {
			return err
		}
		switch key {
		case "max_attempts":
			in.Retry.MaxAttempts, err = p.parseIntLiteral()
		case "backoff":
			in.Retry.Backoff, err = p.expectIdentLike()
		case "delays":
			if err := p.expect(token.LBRACK); err != nil {
				return err
			}
			for p.cur.Kind != token.RBRACK {
				d, derr := p.parseDuration()
				if derr != nil {
					return derr
				}
				in.Retry.Delays = append(in.Retry.Delays, d.asDuration())
				if p.cur.Kind == token.COMMA {
					if err := p.advance(); err != nil {
						return err
					}
					continue
				}
				break
			}
			err = p.expect(token.RBRACK)
		default:
			return p.errorf(ir.KindExpectedToken, "unknown retry attribute %q", key)
		}
		if err != nil {
			return err
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return err
		}
	}
	return p.exitBlock()
}

func (p *Parser) parsePii(in *ir.LlmIntent) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if err := p.enterBlock(); err != nil {
		return err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return err
		}
		if err := p.expect(token.COLON); err != nil {
			return err
		}
		switch key {
		case "scan":
			switch p.cur.Kind {
			case token.KW_TRUE:
				in.Pii.Scan = true
			case token.KW_FALSE:
				in.Pii.Scan = false
			default:
				return p.errorf(ir.KindExpectedToken, "expected true or false, found %s", p.cur.Kind)
			}
			if err := p.advance(); err != nil {
				return err
			}
		case "action":
			v, err := p.expectIdentLike()
			if err != nil {
				return err
			}
			in.Pii.Action = ir.PiiAction(v)
		default:
			return p.errorf(ir.KindExpectedToken, "unknown pii attribute %q", key)
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return err
		}
	}
	return p.exitBlock()
}

func (p *Parser) parseLlmConfig() (*ir.LlmConfig, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	c := &ir.LlmConfig{Loc: loc, RateLimits: map[string]int{}}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		switch key {
		case "default_model":
			c.DefaultModel, err = p.expectIdentLike()
		case "artifact_store":
			c.ArtifactStore, err = p.expectIdentLike()
		case "log_prompts":
			c.LogPrompts, err = p.parseBool()
		case "log_responses":
			c.LogResponses, err = p.parseBool()
		case "rate_limits":
			if err := p.expect(token.NEWLINE); err != nil {
				return nil, err
			}
			if err := p.enterBlock(); err != nil {
				return nil, err
			}
			for p.cur.Kind != token.DEDENT {
				model, e2 := p.expectIdentLike()
				if e2 != nil {
					return nil, e2
				}
				if e2 := p.expect(token.COLON); e2 != nil {
					return nil, e2
				}
				rpm, e2 := p.parseIntLiteral()
				if e2 != nil {
					return nil, e2
				}
				c.RateLimits[model] = rpm
				if e2 := p.expect(token.NEWLINE); e2 != nil {
					return nil, e2
				}
			}
			if err := p.exitBlock(); err != nil {
				return nil, err
			}
			continue
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unknown llm_config attribute %q", key)
		}
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
	}
	return c, p.exitBlock()
}

func (p *Parser) parseBool() (bool, error) {
	switch p.cur.Kind {
	case token.KW_TRUE:
		return true, p.advance()
	case token.KW_FALSE:
		return false, p.advance()
	default:
		return false, p.errorf(ir.KindExpectedToken, "expected true or false, found %s", p.cur.Kind)
	}
}

// --- Events / Processes / Schedules ---------------------------------

func (p *Parser) parseEventModel() (*ir.EventModel, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	em := &ir.EventModel{Loc: loc, Name: name}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		switch key {
		case "topic":
			em.Topic, err = p.expectIdentLike()
		case "event":
			em.Event, err = p.expectIdentLike()
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unknown event attribute %q", key)
		}
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
	}
	return em, p.exitBlock()
}

func (p *Parser) parseSubscribe() (*ir.Subscribe, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	s := &ir.Subscribe{Loc: loc, Name: name}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		key, err := p.expectIdentLike()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		switch key {
		case "topic":
			s.Topic, err = p.expectIdentLike()
		case "event":
			s.Event, err = p.expectIdentLike()
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unknown subscribe attribute %q", key)
		}
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
	}
	return s, p.exitBlock()
}

func (p *Parser) parseProcess() (*ir.Process, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	proc := &ir.Process{Loc: loc, Name: name}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		switch {
		case p.cur.Kind == token.KW_TRIGGER:
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			proc.Trigger, err = p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.NEWLINE); err != nil {
				return nil, err
			}
		case p.cur.Kind == token.IDENT && p.cur.Literal == "input":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			proc.Input, err = p.expectIdentLike()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.NEWLINE); err != nil {
				return nil, err
			}
		case p.cur.Kind == token.IDENT && p.cur.Literal == "timeout":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			d, err := p.parseDuration()
			if err != nil {
				return nil, err
			}
			proc.Timeout = d.asDuration()
			if err := p.expect(token.NEWLINE); err != nil {
				return nil, err
			}
		case p.cur.Kind == token.KW_STEP:
			step, err := p.parseStep()
			if err != nil {
				return nil, err
			}
			proc.Steps = append(proc.Steps, *step)
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unexpected process item, found %s", p.cur.Kind)
		}
	}
	return proc, p.exitBlock()
}

func (p *Parser) parseSchedule() (*ir.Schedule, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	sch := &ir.Schedule{Loc: loc, Name: name}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.enterBlock(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.DEDENT {
		switch {
		case p.cur.Kind == token.IDENT && p.cur.Literal == "cron":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			sch.Cron, err = p.expectString()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.NEWLINE); err != nil {
				return nil, err
			}
		case p.cur.Kind == token.KW_STEP:
			step, err := p.parseStep()
			if err != nil {
				return nil, err
			}
			sch.Steps = append(sch.Steps, *step)
		default:
			return nil, p.errorf(ir.KindExpectedToken, "unexpected schedule item, found %s", p.cur.Kind)
		}
	}
	return sch, p.exitBlock()
}

// parseStep parses one `step name: kind ...` line, e.g.
// `step notify: channel_message mail_topic` or
// `step wait_a_day: wait 1 day`.
func (p *Parser) parseStep() (*ir.Step, error) {
	loc := p.cur.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	kind, err := p.expectIdentLike()
	if err != nil {
		return nil, err
	}
	st := &ir.Step{Loc: loc, Name: name}
	switch kind {
	case "service_call":
		st.Kind = ir.StepServiceCall
		st.Service, err = p.expectIdentLike()
	case "channel_message":
		st.Kind = ir.StepChannelMessage
		st.Channel, err = p.expectIdentLike()
	case "wait":
		st.Kind = ir.StepWait
		d, derr := p.parseDuration()
		if derr != nil {
			return nil, derr
		}
		st.Duration = d.asDuration()
	case "human_task":
		st.Kind = ir.StepHumanTask
		st.Role, err = p.expectIdentLike()
	case "signal":
		st.Kind = ir.StepSignal
		st.Signal, err = p.expectIdentLike()
	default:
		return nil, p.errorf(ir.KindExpectedToken, "unknown step kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return st, p.expect(token.NEWLINE)
}
