package validator

import "github.com/dazzle-lang/dazzle/ir"

// checkReferences enforces the universal invariant that every ref,
// has_many, belongs_to, uses entity, workspace source, and action
// reference resolves to a declaration whose category matches.
func checkReferences(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics

	for _, e := range spec.Entities() {
		for i := range e.Fields {
			f := &e.Fields[i]
			if f.Type.Kind != ir.FieldTypeRef {
				continue
			}
			if spec.FindEntity(f.Type.RefTarget) == nil {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: f.Loc,
					Kind:     ir.KindUnknownEntity,
					Message:  string(f.Type.RefKind) + " field \"" + f.Name + "\" on " + e.Name + " targets unknown entity \"" + f.Type.RefTarget + "\"",
				})
			}
		}
	}

	for _, s := range spec.Surfaces() {
		if spec.FindEntity(s.Entity) == nil {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: s.Loc,
				Kind:     ir.KindUnknownEntity,
				Message:  "surface \"" + s.Name + "\" uses unknown entity \"" + s.Entity + "\"",
			})
		}
	}

	for _, w := range spec.Workspaces() {
		for _, sig := range w.Signals {
			if spec.FindEntity(sig.Source) == nil {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: sig.Loc,
					Kind:     ir.KindUnknownEntity,
					Message:  "signal \"" + sig.Name + "\" on workspace \"" + w.Name + "\" sources unknown entity \"" + sig.Source + "\"",
				})
			}
			if sig.Action != "" && spec.FindSurface(sig.Action) == nil {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: sig.Loc,
					Kind:     ir.KindUnknownEntity,
					Message:  "signal \"" + sig.Name + "\" on workspace \"" + w.Name + "\" references unknown surface \"" + sig.Action + "\"",
				})
			}
		}
	}

	for _, p := range spec.Personas() {
		if p.DefaultWorkspace != "" && spec.FindWorkspace(p.DefaultWorkspace) == nil {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: p.Loc,
				Kind:     ir.KindUnknownEntity,
				Message:  "persona \"" + p.Name + "\" default_workspace references unknown workspace \"" + p.DefaultWorkspace + "\"",
			})
		}
	}

	for _, sc := range spec.Scenarios() {
		diags = append(diags, checkScenarioFixtures(spec, sc)...)
	}

	return diags
}

func checkScenarioFixtures(spec *ir.AppSpec, sc *ir.Scenario) ir.Diagnostics {
	var diags ir.Diagnostics
	for entityName, rows := range sc.Fixtures {
		entity := spec.FindEntity(entityName)
		if entity == nil {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: sc.Loc,
				Kind:     ir.KindUnknownEntity,
				Message:  "scenario \"" + sc.Name + "\" demo data references unknown entity \"" + entityName + "\"",
			})
			continue
		}
		for _, row := range rows {
			diags = append(diags, checkFixtureRow(entity, sc, row)...)
		}
	}
	return diags
}

func checkFixtureRow(entity *ir.Entity, sc *ir.Scenario, row ir.FixtureRow) ir.Diagnostics {
	var diags ir.Diagnostics
	for name, val := range row.Values {
		field := entity.FieldByName(name)
		if field == nil {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: row.Loc,
				Kind:     ir.KindInvalidScenarioFixture,
				Message:  "scenario \"" + sc.Name + "\" fixture for " + entity.Name + " sets unknown field \"" + name + "\"",
			})
			continue
		}
		if lit, ok := val.(*ir.Literal); ok {
			if !literalMatchesFieldType(lit, field.Type) {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: row.Loc,
					Kind:     ir.KindInvalidScenarioFixture,
					Message:  "scenario \"" + sc.Name + "\" fixture for " + entity.Name + " gives field \"" + name + "\" a value of the wrong type",
				})
			}
		}
	}
	for i := range entity.Fields {
		f := &entity.Fields[i]
		if f.HasModifier(ir.ModRequired) && !f.HasModifier(ir.ModAutoAdd) && !f.HasModifier(ir.ModAutoUpdate) && !f.HasModifier(ir.ModPK) {
			if _, ok := row.Values[f.Name]; !ok {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: row.Loc,
					Kind:     ir.KindInvalidScenarioFixture,
					Message:  "scenario \"" + sc.Name + "\" fixture for " + entity.Name + " omits required field \"" + f.Name + "\"",
				})
			}
		}
	}
	return diags
}

func literalMatchesFieldType(lit *ir.Literal, ft ir.FieldType) bool {
	switch ft.Kind {
	case ir.FieldTypeEnum:
		return lit.Kind == ir.LiteralString
	case ir.FieldTypeScalar:
		switch ft.Scalar {
		case ir.ScalarInt, ir.ScalarDecimal:
			return lit.Kind == ir.LiteralNumber
		case ir.ScalarBool:
			return lit.Kind == ir.LiteralBool
		default:
			return lit.Kind == ir.LiteralString
		}
	default:
		return true
	}
}
