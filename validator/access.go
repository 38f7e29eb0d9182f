package validator

import "github.com/dazzle-lang/dazzle/ir"

// collectRoleNames gathers every name a `role(R)` guard or access rule
// could plausibly mean: every declared persona, plus every role named
// in a permit/forbid predicate anywhere in the program. Transitions'
// guard validation and this file's own access-rule validation share
// this set so "role(R) warns when R is not referenced by any persona
// or access rule" is judged against the same pool.
func collectRoleNames(spec *ir.AppSpec) map[string]bool {
	names := map[string]bool{}
	for _, p := range spec.Personas() {
		names[p.Name] = true
	}
	for _, e := range spec.Entities() {
		for _, rule := range e.Permit {
			collectRoleIdentsInto(rule.Pred, names)
		}
		for _, rule := range e.Forbid {
			collectRoleIdentsInto(rule.Pred, names)
		}
	}
	return names
}

func collectRoleIdentsInto(expr ir.Expr, out map[string]bool) {
	switch v := expr.(type) {
	case *ir.Call:
		if v.Name == "role" && len(v.Args) == 1 {
			if ident, ok := v.Args[0].(*ir.Ident); ok {
				out[ident.Name] = true
			}
		}
		for _, a := range v.Args {
			collectRoleIdentsInto(a, out)
		}
	case *ir.Binary:
		collectRoleIdentsInto(v.Left, out)
		collectRoleIdentsInto(v.Right, out)
	case *ir.Unary:
		collectRoleIdentsInto(v.Expr, out)
	}
}

// checkAccess enforces that permit/forbid predicates are well-formed
// boolean combinations of `role(IDENT)`, `authenticated`, and
// relational predicates over entity fields. The validator checks
// syntactic well-formedness only — evaluation semantics (AND permits,
// NOT forbids) are a runtime concern, not a compile-time one.
func checkAccess(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, e := range spec.Entities() {
		for _, rule := range e.Permit {
			diags = append(diags, checkPredicate(e, rule.Pred)...)
		}
		for _, rule := range e.Forbid {
			diags = append(diags, checkPredicate(e, rule.Pred)...)
		}
	}
	return diags
}

func checkPredicate(e *ir.Entity, expr ir.Expr) ir.Diagnostics {
	switch v := expr.(type) {
	case nil:
		return nil
	case *ir.Ident:
		if v.Name != "authenticated" && v.Name != "current_user" {
			return ir.Diagnostics{{
				Severity: ir.SeverityError,
				Location: v.Loc,
				Kind:     ir.KindInvalidAccessPredicate,
				Message:  "unrecognized identifier \"" + v.Name + "\" in an access predicate on " + e.Name,
			}}
		}
		return nil
	case *ir.Call:
		if v.Name != "role" || len(v.Args) != 1 {
			return ir.Diagnostics{{
				Severity: ir.SeverityError,
				Location: v.Loc,
				Kind:     ir.KindInvalidAccessPredicate,
				Message:  "unrecognized call `" + v.Name + "(...)` in an access predicate on " + e.Name,
			}}
		}
		if _, ok := v.Args[0].(*ir.Ident); !ok {
			return ir.Diagnostics{{
				Severity: ir.SeverityError,
				Location: v.Loc,
				Kind:     ir.KindInvalidAccessPredicate,
				Message:  "role(...) expects a bare role name on " + e.Name,
			}}
		}
		return nil
	case *ir.Unary:
		if v.Op != ir.OpNot {
			return ir.Diagnostics{{
				Severity: ir.SeverityError,
				Location: v.Loc,
				Kind:     ir.KindInvalidAccessPredicate,
				Message:  "unary operator " + string(v.Op) + " is not valid in an access predicate on " + e.Name,
			}}
		}
		return checkPredicate(e, v.Expr)
	case *ir.Binary:
		switch v.Op {
		case ir.OpAnd, ir.OpOr:
			var diags ir.Diagnostics
			diags = append(diags, checkPredicate(e, v.Left)...)
			diags = append(diags, checkPredicate(e, v.Right)...)
			return diags
		case ir.OpEq, ir.OpNeq, ir.OpLt, ir.OpLte, ir.OpGt, ir.OpGte:
			return checkRelationalOperands(e, v)
		default:
			return ir.Diagnostics{{
				Severity: ir.SeverityError,
				Location: v.Loc,
				Kind:     ir.KindInvalidAccessPredicate,
				Message:  "operator " + string(v.Op) + " is not valid in an access predicate on " + e.Name,
			}}
		}
	default:
		return ir.Diagnostics{{
			Severity: ir.SeverityError,
			Location: expr.Location(),
			Kind:     ir.KindInvalidAccessPredicate,
			Message:  "malformed access predicate on " + e.Name,
		}}
	}
}

func checkRelationalOperands(e *ir.Entity, b *ir.Binary) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, operand := range []ir.Expr{b.Left, b.Right} {
		switch o := operand.(type) {
		case *ir.FieldRef:
			if len(o.Path) == 1 && e.FieldByName(o.Path[0]) == nil {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: o.Loc,
					Kind:     ir.KindFieldNotOnEntity,
					Message:  "access predicate on " + e.Name + " references unknown field \"" + o.Path[0] + "\"",
				})
			}
		case *ir.Ident:
			if o.Name != "current_user" && e.FieldByName(o.Name) == nil {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: o.Loc,
					Kind:     ir.KindFieldNotOnEntity,
					Message:  "access predicate on " + e.Name + " references unknown field \"" + o.Name + "\"",
				})
			}
		case *ir.Literal:
			// literal operand, nothing to resolve
		default:
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: operand.Location(),
				Kind:     ir.KindInvalidAccessPredicate,
				Message:  "unsupported operand in a relational access predicate on " + e.Name,
			})
		}
	}
	return diags
}
