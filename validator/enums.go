package validator

import "github.com/dazzle-lang/dazzle/ir"

// checkEnums rejects duplicate variants within a declaration, and
// rejects specific reserved variant tokens with a targeted
// substitution hint (e.g. `enum[open,submitted,closed]` flags
// "submitted" and suggests "sent" instead).
func checkEnums(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, e := range spec.Entities() {
		for i := range e.Fields {
			f := &e.Fields[i]
			if f.Type.Kind != ir.FieldTypeEnum {
				continue
			}
			seen := map[string]bool{}
			for _, v := range f.Type.EnumValues {
				if seen[v] {
					diags = append(diags, ir.Diagnostic{
						Severity: ir.SeverityError,
						Location: f.Loc,
						Kind:     ir.KindDuplicateEnumVariant,
						Message:  "duplicate enum variant \"" + v + "\" on field \"" + f.Name + "\" (" + e.Name + ")",
					})
					continue
				}
				seen[v] = true

				if sub, reserved := ReservedWords[v]; reserved {
					diags = append(diags, ir.Diagnostic{
						Severity: ir.SeverityError,
						Location: f.Loc,
						Kind:     ir.KindReservedEnumValue,
						Message:  "enum variant \"" + v + "\" on field \"" + f.Name + "\" (" + e.Name + ") is a reserved word",
						Hint:     `use "` + sub + `" instead`,
					})
				}
			}
		}
	}
	return diags
}
