package validator

import (
	"strings"
	"unicode"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/pkg/naming"
	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// checkLint runs every warning-only convention check: naming
// conventions, dead entities, duplicate labels within a surface
// section, and unpaired has_many/belongs_to relations.
func checkLint(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	diags = append(diags, checkNamingConventions(spec)...)
	diags = append(diags, checkDeadEntities(spec)...)
	diags = append(diags, checkDuplicateLabels(spec)...)
	diags = append(diags, checkUnpairedRelations(spec)...)
	return diags
}

func checkNamingConventions(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, e := range spec.Entities() {
		if !isPascalCase(e.Name) {
			diags = append(diags, namingWarning(e.Loc, "entity", e.Name, toPascalCase(e.Name)))
		}
		for i := range e.Fields {
			f := &e.Fields[i]
			if !isSnakeCase(f.Name) {
				diags = append(diags, namingWarning(f.Loc, "field", f.Name, naming.ToSnakeCase(f.Name)))
			}
		}
	}
	for _, s := range spec.Surfaces() {
		if !isSnakeCase(s.Name) {
			diags = append(diags, namingWarning(s.Loc, "surface", s.Name, naming.ToSnakeCase(s.Name)))
		}
	}
	for _, w := range spec.Workspaces() {
		if !isSnakeCase(w.Name) {
			diags = append(diags, namingWarning(w.Loc, "workspace", w.Name, naming.ToSnakeCase(w.Name)))
		}
	}
	for _, p := range spec.Personas() {
		if !isSnakeCase(p.Name) {
			diags = append(diags, namingWarning(p.Loc, "persona", p.Name, naming.ToSnakeCase(p.Name)))
		}
	}
	return diags
}

func namingWarning(loc ir.Location, kind, name, suggestion string) ir.Diagnostic {
	return ir.Diagnostic{
		Severity: ir.SeverityWarning,
		Location: loc,
		Kind:     ir.KindNamingConvention,
		Message:  kind + " name \"" + name + "\" does not follow the project's naming convention",
		Hint:     "consider \"" + suggestion + "\"",
	}
}

func isPascalCase(s string) bool {
	if s == "" || strings.Contains(s, "_") {
		return false
	}
	return unicode.IsUpper([]rune(s)[0])
}

func toPascalCase(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		parts[i] = titleCaser.String(p)
	}
	return strings.Join(parts, "")
}

func isSnakeCase(s string) bool {
	return s != "" && naming.ToSnakeCase(s) == s
}

// checkDeadEntities warns on entities reachable by no surface, no
// workspace signal, no reference from an entity's field, and no
// scenario fixture — data modeled but never exposed anywhere.
func checkDeadEntities(spec *ir.AppSpec) ir.Diagnostics {
	referenced := map[string]bool{}
	for _, s := range spec.Surfaces() {
		referenced[s.Entity] = true
	}
	for _, w := range spec.Workspaces() {
		for _, sig := range w.Signals {
			referenced[sig.Source] = true
		}
	}
	for _, e := range spec.Entities() {
		for i := range e.Fields {
			switch e.Fields[i].Type.Kind {
			case ir.FieldTypeRef:
				referenced[e.Fields[i].Type.RefTarget] = true
			}
		}
	}
	for _, sc := range spec.Scenarios() {
		for name := range sc.Fixtures {
			referenced[name] = true
		}
	}

	var diags ir.Diagnostics
	for _, e := range spec.Entities() {
		if !referenced[e.Name] {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityWarning,
				Location: e.Loc,
				Kind:     ir.KindDeadEntity,
				Message:  "entity \"" + e.Name + "\" is declared but referenced by no surface, workspace, or relation",
			})
		}
	}
	return diags
}

func checkDuplicateLabels(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, s := range spec.Surfaces() {
		for _, sec := range s.Sections {
			seen := map[string]bool{}
			for _, f := range sec.Fields {
				if seen[f] {
					diags = append(diags, ir.Diagnostic{
						Severity: ir.SeverityWarning,
						Location: sec.Loc,
						Kind:     ir.KindDuplicateLabel,
						Message:  "field \"" + f + "\" is listed more than once in surface \"" + s.Name + "\" section \"" + sec.Name + "\"",
					})
				}
				seen[f] = true
			}
		}
	}
	return diags
}

// checkUnpairedRelations accepts has_many/belongs_to regardless of
// inverse pairing, but flags an unpaired relation as a warning.
func checkUnpairedRelations(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, e := range spec.Entities() {
		for i := range e.Fields {
			f := &e.Fields[i]
			if f.Type.Kind != ir.FieldTypeRef {
				continue
			}
			target := spec.FindEntity(f.Type.RefTarget)
			if target == nil {
				continue // reported by references.go
			}
			switch f.Type.RefKind {
			case ir.RefHasMany:
				if !hasInverse(target, e.Name, ir.RefBelongsTo) {
					diags = append(diags, unpairedWarning(f.Loc, e.Name, target.Name, "has_many", "belongs_to"))
				}
			case ir.RefBelongsTo:
				if !hasInverse(target, e.Name, ir.RefHasMany) {
					diags = append(diags, unpairedWarning(f.Loc, e.Name, target.Name, "belongs_to", "has_many"))
				}
			}
		}
	}
	return diags
}

func hasInverse(entity *ir.Entity, target string, kind ir.RefKind) bool {
	for i := range entity.Fields {
		ft := entity.Fields[i].Type
		if ft.Kind == ir.FieldTypeRef && ft.RefKind == kind && ft.RefTarget == target {
			return true
		}
	}
	return false
}

func unpairedWarning(loc ir.Location, from, to, kind, wantKind string) ir.Diagnostic {
	suggestion := inflection.Plural(naming.ToSnakeCase(from))
	return ir.Diagnostic{
		Severity: ir.SeverityWarning,
		Location: loc,
		Kind:     ir.KindUnpairedRelation,
		Message:  from + "'s " + kind + " reference to " + to + " has no matching " + wantKind + " back on " + to,
		Hint:     "consider adding `" + suggestion + ": " + wantKind + " " + from + "` on " + to,
	}
}
