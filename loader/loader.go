package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/lexer"
	"github.com/dazzle-lang/dazzle/parser"
	"github.com/dazzle-lang/dazzle/pkg/cache"
	dazzleerrors "github.com/dazzle-lang/dazzle/pkg/errors"
)

// ParsedFile pairs a discovered .dsl file's path with its parsed
// Module (nil if parsing failed).
type ParsedFile struct {
	Path   string
	Module *ir.Module
}

// Result is everything DiscoverAndParse produces: every module that
// parsed, plus every lex/parse diagnostic encountered, unsorted
// across files (the caller sorts them).
type Result struct {
	Files       []ParsedFile
	Diagnostics ir.Diagnostics
}

// DiscoverAndParse walks every configured module path under root,
// reads each `.dsl` file, and lexes+parses it. File discovery walks
// each configured directory, filters by extension, then sorts by
// full path so results are deterministic across platforms and
// directory-iteration order.
func DiscoverAndParse(root string, paths []string, moduleCache *cache.ModuleCache[*ir.Module]) (*Result, error) {
	var files []string
	for _, rel := range paths {
		dir := filepath.Join(root, rel)
		found, err := discoverDSLFiles(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	sort.Strings(files)

	res := &Result{}
	recovery := &dazzleerrors.DefaultErrorRecovery{}
	seenModules := map[string]string{} // module name -> raw content of first file declaring it
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			readErr := dazzleerrors.NewSpecificFileOperationError(path, "read", err)
			if recovery.CanRecover(err) {
				res.Diagnostics = append(res.Diagnostics, ir.Diagnostic{
					Severity: ir.SeverityWarning,
					Location: ir.Location{File: path},
					Kind:     ir.KindUnknownModule,
					Message:  "skipping " + path + ": " + readErr.Error(),
				})
				continue
			}
			return nil, readErr
		}

		var mod *ir.Module
		var cacheKey cache.Key
		if moduleCache != nil {
			cacheKey = cache.Key{FilePath: path, ContentHash: cache.HashContent(src)}
			if cached, ok := moduleCache.Get(cacheKey); ok {
				mod = cached
			}
		}

		if mod == nil {
			toks, lexErrs := lexer.Lex(src, path)
			for _, le := range lexErrs {
				res.Diagnostics = append(res.Diagnostics, le.Diagnostic())
			}
			if len(lexErrs) > 0 {
				continue
			}

			parsed, parseErrs := parser.Parse(toks, path)
			for _, pe := range parseErrs {
				res.Diagnostics = append(res.Diagnostics, pe.Diagnostic())
			}
			if parsed == nil {
				continue
			}
			mod = parsed
			if moduleCache != nil {
				moduleCache.Set(cacheKey, mod)
			}
		}

		if prior, dup := seenModules[mod.Name]; dup {
			if prior == string(src) {
				// Identical content (symlink or doubled manifest entry):
				// silently ignore the later copy.
				continue
			}
			res.Diagnostics = append(res.Diagnostics, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: mod.Loc,
				Kind:     ir.KindDuplicateModule,
				Message:  "module \"" + mod.Name + "\" is already declared in another file",
			})
			continue
		}
		seenModules[mod.Name] = string(src)

		res.Files = append(res.Files, ParsedFile{Path: path, Module: mod})
	}

	return res, nil
}

func discoverDSLFiles(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".dsl") {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out, err
}
