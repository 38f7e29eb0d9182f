package validator

import "github.com/dazzle-lang/dazzle/ir"

// checkPrimaryKeys enforces that each entity has exactly one
// pk-modified field, and that no field is both required and optional.
func checkPrimaryKeys(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, e := range spec.Entities() {
		pkCount := 0
		for i := range e.Fields {
			f := &e.Fields[i]
			if f.HasModifier(ir.ModPK) {
				pkCount++
			}
			if f.HasModifier(ir.ModRequired) && f.HasModifier(ir.ModOptional) {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: f.Loc,
					Kind:     ir.KindInvalidFieldType,
					Message:  "field \"" + f.Name + "\" on " + e.Name + " is marked both required and optional",
				})
			}
			if f.HasModifier(ir.ModPK) && f.HasModifier(ir.ModOptional) {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: f.Loc,
					Kind:     ir.KindInvalidFieldType,
					Message:  "field \"" + f.Name + "\" on " + e.Name + " is a primary key but marked optional (pk implies required)",
				})
			}
		}
		switch {
		case pkCount == 0:
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: e.Loc,
				Kind:     ir.KindNoPrimaryKey,
				Message:  "entity \"" + e.Name + "\" declares no pk field",
				Hint:     "add `pk` to exactly one field",
			})
		case pkCount > 1:
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: e.Loc,
				Kind:     ir.KindMultiplePrimaryKeys,
				Message:  "entity \"" + e.Name + "\" declares more than one pk field",
			})
		}
	}
	return diags
}
