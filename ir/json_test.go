package ir

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestSignalMarshalJSONMinimalGolden(t *testing.T) {
	s := Signal{
		Loc:     Location{File: "w.dzl", Line: 3, Column: 2, Span: 6},
		Name:    "recent_orders",
		Source:  "Order",
		Sort:    "-created_at",
		Limit:   20,
		Display: DisplayList,
	}

	out, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "signal_minimal", out)
}

func TestSignalMarshalJSONIncludesFilterAndPersonaVariant(t *testing.T) {
	s := Signal{
		Loc:    Location{File: "w.dzl", Line: 3, Column: 2, Span: 6},
		Name:   "recent_orders",
		Source: "Order",
		Filter: &Ident{Name: "pending"},
		PersonaVariant: map[string]SignalUXVariant{
			"ops": {Sort: "-priority", Filter: &Ident{Name: "escalated"}, Display: DisplayKanban},
		},
	}

	out, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := string(out)
	for _, want := range []string{
		`"filter":{"Loc":{"File":"","Line":0,"Column":0,"Span":0},"Name":"pending"}`,
		`"persona_variant":[{"persona":"ops","sort":"-priority","filter":{"Loc":{"File":"","Line":0,"Column":0,"Span":0},"Name":"escalated"},"display":"kanban"}]`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestFixtureRowMarshalJSONPreservesExprFields(t *testing.T) {
	r := FixtureRow{
		Loc:    Location{File: "demo.dzl", Line: 5, Column: 1, Span: 1},
		Values: map[string]Expr{"title": &Literal{Kind: LiteralString, Str: "Widget"}},
	}

	out, err := r.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := string(out)
	want := `"value":{"Loc":{"File":"","Line":0,"Column":0,"Span":0},"Kind":0,"Str":"Widget","Num":0,"Bool":false}`
	if !strings.Contains(got, want) {
		t.Fatalf("expected fixture value to preserve literal fields, got:\n%s", got)
	}
}

func TestLlmConfigMarshalJSONIncludesLoc(t *testing.T) {
	c := &LlmConfig{
		Loc:          Location{File: "app.dzl", Line: 1, Column: 1, Span: 10},
		DefaultModel: "gpt-4",
	}

	out, err := c.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), `"loc":{"File":"app.dzl","Line":1,"Column":1,"Span":10}`) {
		t.Fatalf("expected loc to survive marshaling, got:\n%s", out)
	}
}

func TestFixtureRowMarshalJSONIncludesLoc(t *testing.T) {
	r := FixtureRow{
		Loc:    Location{File: "demo.dzl", Line: 5, Column: 1, Span: 1},
		Values: map[string]Expr{"title": &Literal{Kind: LiteralString, Str: "Widget"}},
	}

	out, err := r.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), `"loc":{"File":"demo.dzl","Line":5,"Column":1,"Span":1}`) {
		t.Fatalf("expected loc to survive marshaling, got:\n%s", out)
	}
}
