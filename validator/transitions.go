package validator

import "github.com/dazzle-lang/dazzle/ir"

// checkTransitions enforces state-machine well-formedness and
// termination: every state name must be a declared enum variant,
// wildcards are `from`-only, guards must resolve, duplicate edges are
// errors, and the state graph's reachability/outgoing-edge shape
// produces two distinct warning kinds.
func checkTransitions(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	roleNames := collectRoleNames(spec)
	for _, e := range spec.Entities() {
		if len(e.Transitions) == 0 {
			continue
		}
		status := e.StatusField()
		if status == nil {
			continue
		}
		diags = append(diags, checkEntityTransitions(e, status, roleNames)...)
	}
	return diags
}

func checkEntityTransitions(e *ir.Entity, status *ir.Field, roleNames map[string]bool) ir.Diagnostics {
	var diags ir.Diagnostics
	states := map[string]bool{}
	for _, v := range status.Type.EnumValues {
		states[v] = true
	}

	type edge struct{ from, to string }
	seenEdges := map[edge]bool{}
	hasIncoming := map[string]bool{}
	hasOutgoing := map[string]bool{}
	adjacency := map[string][]string{}
	var wildcardTargets []string

	for _, t := range e.Transitions {
		if t.To == "*" {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: t.Loc,
				Kind:     ir.KindWildcardInToPosition,
				Message:  "transition on " + e.Name + " uses '*' in the 'to' position",
			})
		} else if !states[t.To] {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: t.Loc,
				Kind:     ir.KindUnknownState,
				Message:  "transition on " + e.Name + " targets unknown state \"" + t.To + "\"",
			})
		}
		if !t.IsWildcardFrom && t.From != "*" && !states[t.From] {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: t.Loc,
				Kind:     ir.KindUnknownState,
				Message:  "transition on " + e.Name + " originates from unknown state \"" + t.From + "\"",
			})
		}

		key := edge{t.From, t.To}
		if seenEdges[key] {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: t.Loc,
				Kind:     ir.KindDuplicateTransition,
				Message:  "duplicate transition " + t.From + " -> " + t.To + " on " + e.Name,
			})
		}
		seenEdges[key] = true

		if t.IsWildcardFrom || t.From == "*" {
			hasOutgoing[t.From] = true
			wildcardTargets = append(wildcardTargets, t.To)
		} else {
			hasOutgoing[t.From] = true
			adjacency[t.From] = append(adjacency[t.From], t.To)
		}
		hasIncoming[t.To] = true

		diags = append(diags, checkGuard(e, status, t, roleNames)...)
	}

	hasGlobalWildcard := len(wildcardTargets) > 0

	reachable := map[string]bool{status.Type.EnumDefault: true}
	queue := []string{status.Type.EnumDefault}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := append([]string{}, adjacency[cur]...)
		if hasGlobalWildcard {
			next = append(next, wildcardTargets...)
		}
		for _, n := range next {
			if !reachable[n] {
				reachable[n] = true
				queue = append(queue, n)
			}
		}
	}

	for _, s := range status.Type.EnumValues {
		if s != status.Type.EnumDefault && !reachable[s] {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityWarning,
				Location: e.Loc,
				Kind:     ir.KindUnreachableFromDefault,
				Message:  "state \"" + s + "\" on " + e.Name + " is unreachable from the default state \"" + status.Type.EnumDefault + "\"",
			})
		}
		if !hasIncoming[s] && !hasOutgoing[s] && !hasGlobalWildcard {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityWarning,
				Location: e.Loc,
				Kind:     ir.KindNoOutgoingTransition,
				Message:  "state \"" + s + "\" on " + e.Name + " has no incoming or outgoing transitions",
			})
		}
	}

	return diags
}

// checkGuard validates `requires field` and `role(R)` guards attached
// to a single transition.
func checkGuard(e *ir.Entity, status *ir.Field, t ir.Transition, roleNames map[string]bool) ir.Diagnostics {
	if t.Guard == nil {
		return nil
	}
	call, ok := t.Guard.(*ir.Call)
	if !ok {
		return nil
	}
	switch call.Name {
	case "requires":
		if len(call.Args) != 1 {
			return nil
		}
		ref, ok := call.Args[0].(*ir.FieldRef)
		if !ok || len(ref.Path) != 1 {
			return nil
		}
		if e.FieldByName(ref.Path[0]) == nil && ref.Path[0] != status.Name {
			return ir.Diagnostics{{
				Severity: ir.SeverityError,
				Location: ref.Loc,
				Kind:     ir.KindFieldNotOnEntity,
				Message:  "guard `requires " + ref.Path[0] + "` on " + e.Name + " names a field not on the entity",
			}}
		}
	case "role":
		if len(call.Args) != 1 {
			return nil
		}
		ident, ok := call.Args[0].(*ir.Ident)
		if !ok {
			return nil
		}
		if !roleNames[ident.Name] {
			return ir.Diagnostics{{
				Severity: ir.SeverityWarning,
				Location: ident.Loc,
				Kind:     ir.KindUnreferencedRole,
				Message:  "role \"" + ident.Name + "\" in a guard on " + e.Name + " is not referenced by any persona or access rule",
			}}
		}
	}
	return nil
}
