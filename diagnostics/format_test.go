package diagnostics

import (
	"strings"
	"testing"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/sebdah/goldie/v2"
)

func sampleDiagnostics() ir.Diagnostics {
	return ir.Diagnostics{
		{
			Severity: ir.SeverityError,
			Location: ir.Location{File: "orders.dzl", Line: 12, Column: 5, Span: 4},
			Kind:     ir.KindNoPrimaryKey,
			Message:  "entity \"Order\" declares no primary key field",
			Hint:     "add `pk` to exactly one field",
		},
		{
			Severity: ir.SeverityWarning,
			Location: ir.Location{File: "orders.dzl", Line: 20, Column: 1, Span: 1},
			Kind:     ir.KindDeadEntity,
			Message:  "entity \"Draft\" is declared but referenced by no surface, workspace, or relation",
		},
	}
}

func TestLineFormatsLocationSeverityKindMessage(t *testing.T) {
	d := sampleDiagnostics()[0]
	got := Line(d)
	want := `orders.dzl:12:5: error: NoPrimaryKey: entity "Order" declares no primary key field (add ` + "`pk`" + ` to exactly one field)`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLineOmitsParenWhenNoHint(t *testing.T) {
	d := sampleDiagnostics()[1]
	got := Line(d)
	if got != `orders.dzl:20:1: warning: DeadEntity: entity "Draft" is declared but referenced by no surface, workspace, or relation` {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestFormatTextEndsWithCountSummary(t *testing.T) {
	out := FormatText(sampleDiagnostics())
	want := "orders.dzl:12:5: error: NoPrimaryKey: entity \"Order\" declares no primary key field (add `pk` to exactly one field)\n" +
		"orders.dzl:20:1: warning: DeadEntity: entity \"Draft\" is declared but referenced by no surface, workspace, or relation\n" +
		"1 error(s), 1 warning(s)\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestFormatTextEmptyIsJustTheSummary(t *testing.T) {
	out := FormatText(nil)
	if out != "0 error(s), 0 warning(s)\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFormatJSONRoundTripsFields(t *testing.T) {
	out, err := FormatJSON(sampleDiagnostics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`"severity": "error"`,
		`"code": "NoPrimaryKey"`,
		`"file": "orders.dzl"`,
		`"line": 12`,
		`"column": 5`,
		`"span": 4`,
		`"hint": "add` + " `pk` to exactly one field\"",
	} {
		if !contains(s, want) {
			t.Fatalf("expected JSON to contain %q, got:\n%s", want, s)
		}
	}
	if contains(s, `"hint"`) == false {
		t.Fatalf("expected at least one hint field")
	}
}

func TestFormatJSONOmitsEmptyHint(t *testing.T) {
	out, err := FormatJSON(sampleDiagnostics()[1:])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contains(string(out), `"hint"`) {
		t.Fatalf("expected hint field to be omitted when empty, got:\n%s", out)
	}
}

func TestFormatYAMLRoundTripsFields(t *testing.T) {
	out, err := FormatYAML(sampleDiagnostics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	for _, want := range []string{"severity: error", "code: NoPrimaryKey", "file: orders.dzl"} {
		if !contains(s, want) {
			t.Fatalf("expected YAML to contain %q, got:\n%s", want, s)
		}
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

// TestFormatTextGoldenOutput pins the exact line-oriented rendering
// against a fixture file.
func TestFormatTextGoldenOutput(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "format_text_two_diagnostics", []byte(FormatText(sampleDiagnostics())))
}
