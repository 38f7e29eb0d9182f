package validator

import "github.com/dazzle-lang/dazzle/ir"

var validSurfaceModes = map[ir.SurfaceMode]bool{
	ir.ModeList:   true,
	ir.ModeView:   true,
	ir.ModeCreate: true,
	ir.ModeEdit:   true,
	ir.ModeCustom: true,
}

// checkSurfaces enforces that every field named in a section exists on
// the bound entity, that `mode` is recognized, and that pk/auto_*
// fields listed explicitly in create/edit surfaces are a warning
// rather than an error. An entity simply lacking a surface for some
// action (e.g. a task type with only list/create surfaces) is never
// itself a finding.
func checkSurfaces(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, s := range spec.Surfaces() {
		if !validSurfaceModes[s.Mode] {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: s.Loc,
				Kind:     ir.KindInvalidSurfaceMode,
				Message:  "surface \"" + s.Name + "\" declares unrecognized mode \"" + string(s.Mode) + "\"",
				Hint:     "mode must be one of list, view, create, edit, custom",
			})
		}

		entity := spec.FindEntity(s.Entity)
		if entity == nil {
			// Reported by references.go; avoid cascading field errors
			// against a nonexistent entity.
			continue
		}

		for _, sec := range s.Sections {
			for _, fieldName := range sec.Fields {
				field := entity.FieldByName(fieldName)
				if field == nil {
					diags = append(diags, ir.Diagnostic{
						Severity: ir.SeverityError,
						Location: sec.Loc,
						Kind:     ir.KindFieldNotOnEntity,
						Message:  "surface \"" + s.Name + "\" section \"" + sec.Name + "\" references unknown field \"" + fieldName + "\" on " + entity.Name,
					})
					continue
				}
				if (s.Mode == ir.ModeCreate || s.Mode == ir.ModeEdit) &&
					(field.HasModifier(ir.ModPK) || field.HasModifier(ir.ModAutoAdd) || field.HasModifier(ir.ModAutoUpdate)) {
					diags = append(diags, ir.Diagnostic{
						Severity: ir.SeverityWarning,
						Location: sec.Loc,
						Kind:     ir.KindGeneratedFieldListed,
						Message:  "surface \"" + s.Name + "\" explicitly lists generated field \"" + fieldName + "\" in " + string(s.Mode) + " mode",
					})
				}
			}
			if len(sec.Fields) == 0 {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityWarning,
					Location: sec.Loc,
					Kind:     ir.KindEmptySection,
					Message:  "surface \"" + s.Name + "\" section \"" + sec.Name + "\" declares no fields",
				})
			}
		}
	}
	return diags
}
