// Package loader discovers .dsl files from a project manifest and
// reads them into token/AST pairs ready for the linker. Discovery
// walks a set of configured directories, filters by extension, and
// sorts for determinism.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	dazzleerrors "github.com/dazzle-lang/dazzle/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest is the parsed project manifest: dazzle.toml by preference,
// dazzle.yaml as a fallback format for hosts that prefer YAML tooling.
type Manifest struct {
	Project ProjectSection `toml:"project" yaml:"project"`
	Modules ModulesSection `toml:"modules" yaml:"modules"`
	Stack   StackSection   `toml:"stack" yaml:"stack"`

	// Extra preserves unknown top-level keys verbatim so the core can
	// forward them to generators without understanding them itself.
	Extra map[string]any `toml:"-" yaml:"-"`
}

type ProjectSection struct {
	Name    string `toml:"name" yaml:"name"`
	Version string `toml:"version" yaml:"version"`
}

type ModulesSection struct {
	Paths []string `toml:"paths" yaml:"paths"`
}

// StackSection is consumed only by downstream generators; the core
// records and passes it through untouched.
type StackSection struct {
	Name string `toml:"name" yaml:"name"`
}

// LoadManifest reads dazzle.toml (or dazzle.yaml if the .toml file is
// absent) from root, validating the required keys.
func LoadManifest(root string) (*Manifest, error) {
	tomlPath := filepath.Join(root, "dazzle.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return loadTOMLManifest(tomlPath)
	}

	yamlPath := filepath.Join(root, "dazzle.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return loadYAMLManifest(yamlPath)
	}

	return nil, fmt.Errorf("no dazzle.toml or dazzle.yaml found in %s", root)
}

func loadTOMLManifest(path string) (*Manifest, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, dazzleerrors.WrapFileError(err, "parse", path)
	}
	m := &Manifest{Extra: map[string]any{}}
	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, dazzleerrors.WrapFileError(err, "parse", path)
	}
	for k, v := range raw {
		switch k {
		case "project", "modules", "stack":
		default:
			m.Extra[k] = v
		}
	}
	return m, validateManifest(m)
}

func loadYAMLManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dazzleerrors.WrapFileError(err, "read", path)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, dazzleerrors.WrapFileError(err, "parse", path)
	}
	m := &Manifest{Extra: map[string]any{}}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, dazzleerrors.WrapFileError(err, "parse", path)
	}
	for k, v := range raw {
		switch k {
		case "project", "modules", "stack":
		default:
			m.Extra[k] = v
		}
	}
	return m, validateManifest(m)
}

func validateManifest(m *Manifest) error {
	if m.Project.Name == "" {
		return fmt.Errorf("manifest missing required [project] name")
	}
	if m.Project.Version == "" {
		return fmt.Errorf("manifest missing required [project] version")
	}
	if len(m.Modules.Paths) == 0 {
		return fmt.Errorf("manifest missing required non-empty [modules] paths")
	}
	return nil
}
