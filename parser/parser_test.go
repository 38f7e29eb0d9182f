package parser

import (
	"testing"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/lexer"
)

func parseSrc(t *testing.T, src string) (*ir.Module, []*Error) {
	t.Helper()
	toks, lexErrs := lexer.Lex([]byte(src), "t.dzl")
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	return Parse(toks, "t.dzl")
}

func TestParseMinimalModule(t *testing.T) {
	src := `module m
entity Task "Task":
    id: uuid pk
    title: str(200) required
`
	mod, errs := parseSrc(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if mod.Name != "m" {
		t.Fatalf("got module name %q", mod.Name)
	}
	entities := mod.Entities()
	if len(entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(entities))
	}
	e := entities[0]
	if e.Name != "Task" || e.DisplayName != "Task" {
		t.Fatalf("got %+v", e)
	}
	if len(e.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(e.Fields))
	}
	if !e.Fields[0].HasModifier(ir.ModPK) {
		t.Fatalf("expected first field to be pk")
	}
}

func TestParseUseClauses(t *testing.T) {
	src := "module a\nuse b\nuse c\n"
	mod, errs := parseSrc(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(mod.Uses) != 2 || mod.Uses[0] != "b" || mod.Uses[1] != "c" {
		t.Fatalf("got uses %v", mod.Uses)
	}
}

func TestParseAppDeclaration(t *testing.T) {
	src := "module m\napp myapp \"My App\"\n"
	mod, errs := parseSrc(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if mod.App == nil || mod.App.Name != "myapp" || mod.App.Title != "My App" {
		t.Fatalf("got %+v", mod.App)
	}
}

func TestParseEnumAndRef(t *testing.T) {
	src := `module m
entity Ticket:
    id: uuid pk
    status: enum[new,open,closed]=new
    owner: ref Account
    transitions:
        new -> open
        open -> closed: role(agent)
`
	mod, errs := parseSrc(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	e := mod.Entities()[0]
	status := e.FieldByName("status")
	if status == nil || status.Type.Kind != ir.FieldTypeEnum {
		t.Fatalf("expected enum field, got %+v", status)
	}
	if status.Type.EnumDefault != "new" {
		t.Fatalf("expected default 'new', got %q", status.Type.EnumDefault)
	}
	owner := e.FieldByName("owner")
	if owner == nil || owner.Type.Kind != ir.FieldTypeRef || owner.Type.RefKind != ir.RefMandatory || owner.Type.RefTarget != "Account" {
		t.Fatalf("got %+v", owner)
	}
	if len(e.Transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(e.Transitions))
	}
	if e.Transitions[1].Guard == nil {
		t.Fatalf("expected a guard on second transition")
	}
}

func TestParseSurfaceWithSections(t *testing.T) {
	src := `module m
surface task_list:
    uses entity Task
    mode: list
    section main:
        title
        status
`
	mod, errs := parseSrc(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	surfaces := mod.Surfaces()
	if len(surfaces) != 1 {
		t.Fatalf("expected 1 surface, got %d", len(surfaces))
	}
	s := surfaces[0]
	if s.Entity != "Task" || s.Mode != ir.ModeList {
		t.Fatalf("got %+v", s)
	}
	if got := s.Fields(); len(got) != 2 || got[0] != "title" || got[1] != "status" {
		t.Fatalf("got fields %v", got)
	}
}

func TestParseInvariantAndPermit(t *testing.T) {
	src := `module m
entity Task:
    id: uuid pk
    owner: ref Account
    invariant: owner != null
    permit:
        read: authenticated
        update: role(owner) or role(admin)
`
	mod, errs := parseSrc(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	e := mod.Entities()[0]
	if len(e.Invariants) != 1 {
		t.Fatalf("expected 1 invariant, got %d", len(e.Invariants))
	}
	if len(e.Permit) != 2 {
		t.Fatalf("expected 2 permit rules, got %d", len(e.Permit))
	}
}

func TestParseReservedWordAsFieldName(t *testing.T) {
	// "email" is a scalar type name (lexed as a plain IDENT, not a
	// keyword), and it also works as a field name.
	src := `module m
entity Account:
    id: uuid pk
    email: email required
`
	mod, errs := parseSrc(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	e := mod.Entities()[0]
	f := e.FieldByName("email")
	if f == nil || f.Type.Scalar != ir.ScalarEmail {
		t.Fatalf("got %+v", f)
	}
}

func TestParseMissingModuleHeaderIsFatal(t *testing.T) {
	src := "entity Task:\n    id: uuid pk\n"
	_, errs := parseSrc(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected a fatal parse error for missing module header")
	}
}

func TestParseEnumZeroVariantsIsError(t *testing.T) {
	src := "module m\nentity A:\n    status: enum[]\n"
	_, errs := parseSrc(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for an empty enum")
	}
}

func TestParseErrorRecoveryContinuesNextDeclaration(t *testing.T) {
	src := `module m
entity Broken
entity Task:
    id: uuid pk
`
	mod, errs := parseSrc(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected at least one error from the malformed entity")
	}
	found := false
	for _, e := range mod.Entities() {
		if e.Name == "Task" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parsing to recover and still find entity Task, got %+v", mod.Entities())
	}
}
