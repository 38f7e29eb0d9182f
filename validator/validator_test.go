package validator

import (
	"testing"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/lexer"
	"github.com/dazzle-lang/dazzle/linker"
	"github.com/dazzle-lang/dazzle/parser"
)

func buildSpec(t *testing.T, sources map[string]string) *ir.AppSpec {
	t.Helper()
	var modules []ir.Module
	for file, src := range sources {
		toks, lexErrs := lexer.Lex([]byte(src), file)
		if len(lexErrs) != 0 {
			t.Fatalf("%s: unexpected lex errors: %v", file, lexErrs)
		}
		mod, parseErrs := parser.Parse(toks, file)
		if len(parseErrs) != 0 {
			t.Fatalf("%s: unexpected parse errors: %v", file, parseErrs)
		}
		modules = append(modules, *mod)
	}
	spec, diags := linker.Link(modules)
	if spec == nil {
		t.Fatalf("unexpected link failure: %v", diags)
	}
	return spec
}

func hasKind(diags ir.Diagnostics, kind ir.DiagnosticKind) bool {
	for _, d := range diags {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Scenario 3: multi-word entity + partial CRUD surfaces produces no
// spurious warnings about the missing edit/delete/view surfaces.
func TestValidateMultiWordEntityPartialCRUD(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity MaintenanceTask "Maintenance Task":
    id: uuid pk
    title: str(200) required

surface task_list:
    uses entity MaintenanceTask
    mode: list
    section main:
        title

surface task_create:
    uses entity MaintenanceTask
    mode: create
    section main:
        title
`})
	diags := Validate(spec)
	for _, d := range diags {
		if d.Kind == ir.KindDeadEntity || d.Kind == ir.KindEmptySection {
			t.Fatalf("unexpected diagnostic about missing surfaces: %v", d)
		}
	}
}

// Scenario 4: a reserved enum variant produces a ReservedEnumValue
// error with the documented substitution hint.
func TestValidateReservedEnumValue(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity Order:
    id: uuid pk
    status: enum[open,submitted,closed]=open
`})
	diags := Validate(spec)
	found := false
	for _, d := range diags {
		if d.Kind == ir.KindReservedEnumValue {
			found = true
			if d.Hint != `use "sent" instead` {
				t.Fatalf("got hint %q", d.Hint)
			}
		}
	}
	if !found {
		t.Fatalf("expected a ReservedEnumValue diagnostic, got %v", diags)
	}
}

// Scenario 5: a fully reachable, fully terminated state machine
// produces zero warnings. The list surface keeps Ticket from being
// reported as a dead entity.
func TestValidateStateMachineFullyReachableNoWarnings(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity Ticket:
    id: uuid pk
    status: enum[new,open,closed]=new
    transitions:
        new -> open
        open -> closed

surface ticket_list:
    uses entity Ticket
    mode: list
    section main:
        status
`})
	diags := Validate(spec)
	if len(diags) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", diags)
	}
}

// Scenario 6: an orphan enum variant with no transitions in or out
// produces both UnreachableFromDefault and NoOutgoingTransition.
func TestValidateStateMachineOrphanState(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity Ticket:
    id: uuid pk
    status: enum[new,open,closed,parked]=new
    transitions:
        new -> open
        open -> closed
`})
	diags := Validate(spec)
	if !hasKind(diags, ir.KindUnreachableFromDefault) {
		t.Fatalf("expected UnreachableFromDefault, got %v", diags)
	}
	if !hasKind(diags, ir.KindNoOutgoingTransition) {
		t.Fatalf("expected NoOutgoingTransition, got %v", diags)
	}
}

func TestValidateUnknownEntityReference(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity Order:
    id: uuid pk
    customer: ref Customer
`})
	diags := Validate(spec)
	if !hasKind(diags, ir.KindUnknownEntity) {
		t.Fatalf("expected UnknownEntity, got %v", diags)
	}
}

func TestValidateMultiplePrimaryKeys(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity Thing:
    id: uuid pk
    other_id: uuid pk
`})
	diags := Validate(spec)
	if !hasKind(diags, ir.KindMultiplePrimaryKeys) {
		t.Fatalf("expected MultiplePrimaryKeys, got %v", diags)
	}
}

func TestValidateNoPrimaryKey(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity Thing:
    name: str(50) required
`})
	diags := Validate(spec)
	if !hasKind(diags, ir.KindNoPrimaryKey) {
		t.Fatalf("expected NoPrimaryKey, got %v", diags)
	}
}

func TestValidateDuplicateEnumVariant(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity Thing:
    id: uuid pk
    status: enum[open,open,closed]=open
`})
	diags := Validate(spec)
	if !hasKind(diags, ir.KindDuplicateEnumVariant) {
		t.Fatalf("expected DuplicateEnumVariant, got %v", diags)
	}
}

func TestValidateUnpairedRelationIsWarningOnly(t *testing.T) {
	spec := buildSpec(t, map[string]string{"a.dzl": `module a
entity Author:
    id: uuid pk

entity Book:
    id: uuid pk
    author: belongs_to Author
`})
	diags := Validate(spec)
	if !hasKind(diags, ir.KindUnpairedRelation) {
		t.Fatalf("expected UnpairedRelation, got %v", diags)
	}
	for _, d := range diags {
		if d.Kind == ir.KindUnpairedRelation && d.Severity != ir.SeverityWarning {
			t.Fatalf("expected UnpairedRelation to be a warning, got %v", d.Severity)
		}
	}
}
