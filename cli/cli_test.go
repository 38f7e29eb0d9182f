package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeDemoProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	manifest := `[project]
name = "demo"
version = "0.1.0"

[modules]
paths = ["modules"]
`
	if err := os.WriteFile(filepath.Join(root, "dazzle.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	modDir := filepath.Join(root, "modules")
	if err := os.MkdirAll(modDir, 0o755); err != nil {
		t.Fatal(err)
	}
	src := "module m\nentity Task \"Task\":\n    id: uuid pk\n    title: str(200) required\n"
	if err := os.WriteFile(filepath.Join(modDir, "a.dsl"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestRootCommandHelp(t *testing.T) {
	rootCmd := NewRootCommand("test", "test-date")
	rootCmd.SetArgs([]string{"--help"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("--help failed: %v", err)
	}
}

func TestCompileCommandStructure(t *testing.T) {
	rootCmd := NewRootCommand("test", "test-date")

	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "compile" {
			found = true
		}
	}
	if !found {
		t.Fatal("compile command not found")
	}
}

func TestCompileCommandTextFormat(t *testing.T) {
	root := writeDemoProject(t)

	rootCmd := NewRootCommand("test", "test-date")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"compile", root})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("expected diagnostic output, got none")
	}
}

func TestCompileCommandJSONFormat(t *testing.T) {
	root := writeDemoProject(t)

	rootCmd := NewRootCommand("test", "test-date")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"compile", root, "--format", "json"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if out.Len() == 0 || out.Bytes()[0] != '[' {
		t.Fatalf("expected a JSON array, got %q", out.String())
	}
}

func TestCompileCommandWritesAppSpecToOut(t *testing.T) {
	root := writeDemoProject(t)
	outPath := filepath.Join(root, "appspec.json")

	rootCmd := NewRootCommand("test", "test-date")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"compile", root, "--out", outPath})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected %s to be written: %v", outPath, err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty AppSpec JSON")
	}
}

func TestCompileCommandUnknownFormat(t *testing.T) {
	root := writeDemoProject(t)

	rootCmd := NewRootCommand("test", "test-date")
	rootCmd.SetArgs([]string{"compile", root, "--format", "xml"})
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected an error for an unrecognized format")
	}
}
