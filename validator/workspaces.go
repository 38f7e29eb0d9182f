package validator

import "github.com/dazzle-lang/dazzle/ir"

var validAggregateCalls = map[string]bool{
	"count": true,
	"sum":   true,
	"avg":   true,
	"min":   true,
	"max":   true,
}

// checkWorkspaces enforces that engine_hint is one of the five
// recognized archetypes, aggregate expressions are one of
// count/sum/avg/min/max, and limit is positive.
func checkWorkspaces(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, w := range spec.Workspaces() {
		if w.EngineHint != "" && !ir.ValidEngineHints[w.EngineHint] {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: w.Loc,
				Kind:     ir.KindInvalidEngineHint,
				Message:  "workspace \"" + w.Name + "\" declares unrecognized engine_hint \"" + string(w.EngineHint) + "\"",
			})
		}
		for _, sig := range w.Signals {
			if sig.Limit < 0 {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: sig.Loc,
					Kind:     ir.KindInvalidAggregation,
					Message:  "signal \"" + sig.Name + "\" on workspace \"" + w.Name + "\" has a non-positive limit",
				})
			}
			for _, expr := range sig.Aggregate {
				diags = append(diags, checkAggregateExpr(w, sig, expr)...)
			}
		}
	}
	return diags
}

func checkAggregateExpr(w *ir.Workspace, sig ir.Signal, expr ir.Expr) ir.Diagnostics {
	call, ok := expr.(*ir.Call)
	if !ok || !validAggregateCalls[call.Name] {
		name := "?"
		if ok {
			name = call.Name
		}
		return ir.Diagnostics{{
			Severity: ir.SeverityError,
			Location: expr.Location(),
			Kind:     ir.KindInvalidAggregation,
			Message:  "signal \"" + sig.Name + "\" on workspace \"" + w.Name + "\" uses unrecognized aggregate \"" + name + "\"",
			Hint:     "use one of count, sum, avg, min, max",
		}}
	}
	if len(call.Args) == 0 {
		return ir.Diagnostics{{
			Severity: ir.SeverityError,
			Location: call.Loc,
			Kind:     ir.KindInvalidAggregation,
			Message:  call.Name + "() on signal \"" + sig.Name + "\" (" + w.Name + ") requires at least one argument",
		}}
	}
	return nil
}
