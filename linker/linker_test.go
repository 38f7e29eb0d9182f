package linker

import (
	"testing"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/lexer"
	"github.com/dazzle-lang/dazzle/parser"
)

func mustParse(t *testing.T, file, src string) ir.Module {
	t.Helper()
	toks, lexErrs := lexer.Lex([]byte(src), file)
	if len(lexErrs) != 0 {
		t.Fatalf("%s: unexpected lex errors: %v", file, lexErrs)
	}
	mod, parseErrs := parser.Parse(toks, file)
	if len(parseErrs) != 0 {
		t.Fatalf("%s: unexpected parse errors: %v", file, parseErrs)
	}
	return *mod
}

func TestLinkMinimalInfersAppName(t *testing.T) {
	a := mustParse(t, "a.dzl", "module billing\nentity Invoice:\n    id: uuid pk\n")

	spec, diags := Link([]ir.Module{a})
	if spec == nil {
		t.Fatalf("expected a spec, got diagnostics %v", diags)
	}
	if spec.AppName != "billing" || spec.AppTitle != "billing" {
		t.Fatalf("got app name/title %q/%q", spec.AppName, spec.AppTitle)
	}
	if len(diags) != 1 || diags[0].Kind != ir.KindAppDeclarationInferred {
		t.Fatalf("expected exactly one AppDeclarationInferred warning, got %v", diags)
	}
	if diags[0].Severity != ir.SeverityWarning {
		t.Fatalf("expected a warning, got %v", diags[0].Severity)
	}
}

func TestLinkExplicitAppDeclarationWins(t *testing.T) {
	a := mustParse(t, "a.dzl", "module billing\napp billing \"Billing Desk\"\nentity Invoice:\n    id: uuid pk\n")

	spec, diags := Link([]ir.Module{a})
	if spec == nil {
		t.Fatalf("expected a spec, got diagnostics %v", diags)
	}
	if spec.AppName != "billing" || spec.AppTitle != "Billing Desk" {
		t.Fatalf("got %q/%q", spec.AppName, spec.AppTitle)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestLinkCycleBetweenTwoModules(t *testing.T) {
	a := mustParse(t, "a.dzl", "module a\nuse b\nentity X:\n    id: uuid pk\n")
	b := mustParse(t, "b.dzl", "module b\nuse a\nentity Y:\n    id: uuid pk\n")

	spec, diags := Link([]ir.Module{a, b})
	if spec != nil {
		t.Fatalf("expected link to abort on a cycle, got %+v", spec)
	}
	if len(diags) != 1 || diags[0].Kind != ir.KindCycle {
		t.Fatalf("expected a single Cycle diagnostic, got %v", diags)
	}
	if diags[0].Message == "" {
		t.Fatalf("expected a non-empty cycle message")
	}
}

func TestLinkUseSelfIsADegenerateCycle(t *testing.T) {
	a := mustParse(t, "a.dzl", "module a\nuse a\nentity X:\n    id: uuid pk\n")

	spec, diags := Link([]ir.Module{a})
	if spec != nil {
		t.Fatalf("expected link to abort, got %+v", spec)
	}
	if len(diags) != 1 || diags[0].Kind != ir.KindCycle {
		t.Fatalf("expected a single Cycle diagnostic, got %v", diags)
	}
}

func TestLinkUnknownModuleReference(t *testing.T) {
	a := mustParse(t, "a.dzl", "module a\nuse ghost\nentity X:\n    id: uuid pk\n")

	spec, diags := Link([]ir.Module{a})
	if spec != nil {
		t.Fatalf("expected link to abort, got %+v", spec)
	}
	if len(diags) != 1 || diags[0].Kind != ir.KindUnknownModule {
		t.Fatalf("expected a single UnknownModule diagnostic, got %v", diags)
	}
}

func TestLinkDuplicateSymbolAcrossModules(t *testing.T) {
	a := mustParse(t, "a.dzl", "module a\nentity X:\n    id: uuid pk\n")
	b := mustParse(t, "b.dzl", "module b\nentity X:\n    id: uuid pk\n")

	spec, diags := Link([]ir.Module{a, b})
	if spec != nil {
		t.Fatalf("expected link to abort, got %+v", spec)
	}
	if len(diags) != 1 || diags[0].Kind != ir.KindDuplicateSymbol {
		t.Fatalf("expected a single DuplicateSymbol diagnostic, got %v", diags)
	}
}

func TestLinkDuplicateLlmConfig(t *testing.T) {
	a := mustParse(t, "a.dzl", "module a\nllm_config:\n    default_model: fast\n")
	b := mustParse(t, "b.dzl", "module b\nllm_config:\n    default_model: slow\n")

	spec, diags := Link([]ir.Module{a, b})
	if spec != nil {
		t.Fatalf("expected link to abort, got %+v", spec)
	}
	if len(diags) != 1 || diags[0].Kind != ir.KindMultipleLlmConfig {
		t.Fatalf("expected a single MultipleLlmConfig diagnostic, got %v", diags)
	}
}

func TestLinkMultipleAppDeclarations(t *testing.T) {
	a := mustParse(t, "a.dzl", "module a\napp demo \"Demo\"\nentity X:\n    id: uuid pk\n")
	b := mustParse(t, "b.dzl", "module b\napp demo2 \"Demo Two\"\nentity Y:\n    id: uuid pk\n")

	spec, diags := Link([]ir.Module{a, b})
	if spec != nil {
		t.Fatalf("expected link to abort, got %+v", spec)
	}
	if len(diags) != 1 || diags[0].Kind != ir.KindMultipleAppDeclarations {
		t.Fatalf("expected a single MultipleAppDeclarations diagnostic, got %v", diags)
	}
}

func TestLinkTopoOrdersDependenciesFirst(t *testing.T) {
	a := mustParse(t, "a.dzl", "module a\nentity X:\n    id: uuid pk\n")
	b := mustParse(t, "b.dzl", "module b\nuse a\nentity Y:\n    id: uuid pk\n")

	spec, diags := Link([]ir.Module{b, a})
	if spec == nil {
		t.Fatalf("expected a spec, got diagnostics %v", diags)
	}
	if spec.Modules[0].Name != "a" || spec.Modules[1].Name != "b" {
		t.Fatalf("expected [a, b] order, got %v", []string{spec.Modules[0].Name, spec.Modules[1].Name})
	}
}
