// Package compile exposes the single synchronous operation that
// drives the whole front end end-to-end: load the manifest, discover
// and parse every module, link them into an AppSpec, and validate it.
// Callers give it a project root and get back either an AppSpec or a
// set of diagnostics, never both in a way that requires them to pick
// apart partial state.
package compile

import (
	"fmt"
	"log/slog"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/linker"
	"github.com/dazzle-lang/dazzle/loader"
	"github.com/dazzle-lang/dazzle/pkg/cache"
	"github.com/dazzle-lang/dazzle/validator"
)

// Result is everything a caller needs after a compile attempt. Spec
// resolves to nil whenever Diagnostics.HasErrors() is true — a caller
// must check errors before touching Spec, matching the rest of the
// pipeline's error-first convention.
type Result struct {
	Spec        *ir.AppSpec
	Diagnostics ir.Diagnostics
}

// Options controls how Compile discovers and caches source, letting
// an embedding host (editor server, incremental build) reuse a
// persistent ModuleCache across calls instead of reparsing everything
// on every keystroke.
type Options struct {
	// ModuleCache, if non-nil, is consulted and populated during
	// discovery so unchanged files skip lex/parse entirely.
	ModuleCache *cache.ModuleCache[*ir.Module]
}

// Compile runs the full pipeline against the project rooted at root
// (the directory containing dazzle.toml or dazzle.yaml).
func Compile(root string, opts Options) Result {
	manifest, err := loader.LoadManifest(root)
	if err != nil {
		return Result{Diagnostics: ir.Diagnostics{{
			Severity: ir.SeverityError,
			Kind:     ir.KindMissingModuleHeader,
			Message:  fmt.Sprintf("loading manifest: %v", err),
		}}}
	}

	loaded, err := loader.DiscoverAndParse(root, manifest.Modules.Paths, opts.ModuleCache)
	if err != nil {
		return Result{Diagnostics: ir.Diagnostics{{
			Severity: ir.SeverityError,
			Kind:     ir.KindUnknownModule,
			Message:  fmt.Sprintf("discovering modules: %v", err),
		}}}
	}
	slog.Info("modules discovered", "root", root, "count", len(loaded.Files))

	diags := ir.Sort(loaded.Diagnostics)
	for _, d := range diags {
		if !d.IsError() {
			slog.Warn(d.Message, "file", d.Location.File, "kind", string(d.Kind))
		}
	}
	if diags.HasErrors() {
		slog.Info("phase completed", "phase", "parse", "diagnostics", len(diags))
		return Result{Diagnostics: diags}
	}

	if len(loaded.Files) == 0 {
		return Result{Diagnostics: ir.Diagnostics{{
			Severity: ir.SeverityError,
			Kind:     ir.KindUnknownModule,
			Message:  "no modules found",
		}}}
	}

	modules := make([]ir.Module, len(loaded.Files))
	for i, f := range loaded.Files {
		modules[i] = *f.Module
	}

	spec, linkDiags := linker.Link(modules)
	diags = ir.Sort(append(diags, linkDiags...))
	slog.Info("phase completed", "phase", "link", "diagnostics", len(diags))
	if diags.HasErrors() {
		return Result{Diagnostics: diags}
	}

	validateDiags := validator.Validate(spec)
	diags = ir.Sort(append(diags, validateDiags...))
	slog.Info("phase completed", "phase", "validate", "diagnostics", len(diags))
	if diags.HasErrors() {
		return Result{Diagnostics: diags}
	}

	return Result{Spec: spec, Diagnostics: diags}
}
