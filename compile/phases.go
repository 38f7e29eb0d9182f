package compile

import (
	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/lexer"
	"github.com/dazzle-lang/dazzle/linker"
	"github.com/dazzle-lang/dazzle/parser"
	"github.com/dazzle-lang/dazzle/token"
	"github.com/dazzle-lang/dazzle/validator"
)

// LexFile runs only the lexer, for an embedding host that wants
// incremental token-level feedback (e.g. an editor's syntax
// highlighter) without paying for the rest of the pipeline.
func LexFile(src []byte, path string) ([]token.Token, ir.Diagnostics) {
	toks, errs := lexer.Lex(src, path)
	diags := make(ir.Diagnostics, len(errs))
	for i, e := range errs {
		diags[i] = e.Diagnostic()
	}
	return toks, ir.Sort(diags)
}

// ParseFile runs the lexer and parser for a single file, returning
// its Module (nil on a fatal parse failure) and any diagnostics.
// Useful for a language-server "parse this buffer" request, where the
// rest of the project hasn't necessarily changed.
func ParseFile(src []byte, path string) (*ir.Module, ir.Diagnostics) {
	toks, lexDiags := LexFile(src, path)
	if lexDiags.HasErrors() {
		return nil, lexDiags
	}

	mod, parseErrs := parser.Parse(toks, path)
	diags := make(ir.Diagnostics, len(parseErrs))
	for i, e := range parseErrs {
		diags[i] = e.Diagnostic()
	}
	return mod, ir.Sort(append(lexDiags, diags...))
}

// Link exposes the linker phase directly, for a host that has already
// parsed every module itself (e.g. reusing cached ASTs across many
// incremental ParseFile calls) and wants to re-link without
// rediscovering files from disk.
func Link(modules []ir.Module) (*ir.AppSpec, ir.Diagnostics) {
	return linker.Link(modules)
}

// Validate exposes the validator phase directly, for a host that
// wants to re-run rule checks against an AppSpec it already linked
// (e.g. after a lint-only re-check with no source changes).
func Validate(spec *ir.AppSpec) ir.Diagnostics {
	return validator.Validate(spec)
}
