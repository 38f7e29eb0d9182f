package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dazzle-lang/dazzle/ir"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverAndParseFindsModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "modules", "a.dsl"), "module a\nentity X:\n    id: uuid pk\n")
	writeFile(t, filepath.Join(root, "modules", "b.dsl"), "module b\nuse a\n")

	res, err := DiscoverAndParse(root, []string{"modules"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(res.Files))
	}
}

func TestDiscoverAndParseIgnoresNonDSLFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "modules", "a.dsl"), "module a\n")
	writeFile(t, filepath.Join(root, "modules", "README.md"), "not dsl")

	res, err := DiscoverAndParse(root, []string{"modules"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(res.Files))
	}
}

func TestDiscoverAndParseMissingModuleHeader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "modules", "a.dsl"), "entity X:\n    id: uuid pk\n")

	res, err := DiscoverAndParse(root, []string{"modules"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == ir.KindMissingModuleHeader {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MissingModuleHeader diagnostic, got %v", res.Diagnostics)
	}
}

func TestDiscoverAndParseDuplicateModuleDifferentContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "modules", "a.dsl"), "module dup\nentity X:\n    id: uuid pk\n")
	writeFile(t, filepath.Join(root, "modules", "b.dsl"), "module dup\nentity Y:\n    id: uuid pk\n")

	res, err := DiscoverAndParse(root, []string{"modules"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == ir.KindDuplicateModule {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DuplicateModule diagnostic, got %v", res.Diagnostics)
	}
}

func TestDiscoverAndParseDuplicateModuleIdenticalContentIsIgnored(t *testing.T) {
	root := t.TempDir()
	content := "module dup\nentity X:\n    id: uuid pk\n"
	writeFile(t, filepath.Join(root, "modules", "a.dsl"), content)
	writeFile(t, filepath.Join(root, "modules", "b.dsl"), content)

	res, err := DiscoverAndParse(root, []string{"modules"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range res.Diagnostics {
		if d.Kind == ir.KindDuplicateModule {
			t.Fatalf("did not expect DuplicateModule for identical content, got %v", res.Diagnostics)
		}
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected the duplicate to be silently ignored, got %d files", len(res.Files))
	}
}

func TestLoadManifestTOML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dazzle.toml"), `
[project]
name = "demo"
version = "0.1.0"

[modules]
paths = ["modules"]

[stack]
name = "nextjs"
`)
	m, err := LoadManifest(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Project.Name != "demo" || m.Project.Version != "0.1.0" {
		t.Fatalf("got %+v", m.Project)
	}
	if len(m.Modules.Paths) != 1 || m.Modules.Paths[0] != "modules" {
		t.Fatalf("got %+v", m.Modules)
	}
	if m.Stack.Name != "nextjs" {
		t.Fatalf("got %+v", m.Stack)
	}
}

func TestLoadManifestMissingRequiredKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dazzle.toml"), `
[project]
name = "demo"

[modules]
paths = ["modules"]
`)
	if _, err := LoadManifest(root); err == nil {
		t.Fatalf("expected an error for missing version")
	}
}

func TestLoadManifestYAMLFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dazzle.yaml"), "project:\n  name: demo\n  version: \"0.1.0\"\nmodules:\n  paths:\n    - modules\n")
	m, err := LoadManifest(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Project.Name != "demo" {
		t.Fatalf("got %+v", m.Project)
	}
}
