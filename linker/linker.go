package linker

import (
	"sort"

	"github.com/dazzle-lang/dazzle/ir"
)

// Link builds an AppSpec from a set of parsed modules. On any link
// error the pipeline aborts and Link returns a nil AppSpec with the
// errors collected so far.
func Link(modules []ir.Module) (*ir.AppSpec, ir.Diagnostics) {
	var diags ir.Diagnostics

	ordered, err := topoSort(modules)
	if err != nil {
		diags = append(diags, linkErrorDiagnostic(err))
		return nil, ir.Sort(diags)
	}

	table, llmConfig, err := buildSymbolTable(ordered)
	if err != nil {
		diags = append(diags, linkErrorDiagnostic(err))
		return nil, ir.Sort(diags)
	}

	appName, appTitle, appDiag, err := resolveApp(ordered)
	if err != nil {
		diags = append(diags, linkErrorDiagnostic(err))
		return nil, ir.Sort(diags)
	}
	if appDiag != nil {
		diags = append(diags, *appDiag)
	}

	spec := &ir.AppSpec{
		AppName:   appName,
		AppTitle:  appTitle,
		Modules:   ordered,
		Symbols:   table,
		LlmConfig: llmConfig,
	}
	return spec, ir.Sort(diags)
}

// resolveApp finds the single `app` declaration across every module.
// If none exists, app_name/app_title are derived from the
// lexicographically-first module name and an AppDeclarationInferred
// warning is emitted.
func resolveApp(modules []ir.Module) (name, title string, warn *ir.Diagnostic, err error) {
	var found *ir.AppDecl
	for i := range modules {
		if modules[i].App == nil {
			continue
		}
		if found != nil {
			return "", "", nil, &MultipleAppDeclarationsError{First: found.Loc, Second: modules[i].App.Loc}
		}
		found = modules[i].App
	}
	if found != nil {
		return found.Name, found.Title, nil, nil
	}

	if len(modules) == 0 {
		return "", "", nil, &NoModulesError{}
	}
	names := make([]string, len(modules))
	for i := range modules {
		names[i] = modules[i].Name
	}
	sort.Strings(names)
	inferred := names[0]
	return inferred, inferred, &ir.Diagnostic{
		Severity: ir.SeverityWarning,
		Location: modules[0].Loc,
		Kind:     ir.KindAppDeclarationInferred,
		Message:  "no 'app' declaration found; inferring app_name and app_title from module \"" + inferred + "\"",
	}, nil
}

// MultipleAppDeclarationsError reports a second `app` declaration
// found anywhere in the program.
type MultipleAppDeclarationsError struct {
	First  ir.Location
	Second ir.Location
}

func (e *MultipleAppDeclarationsError) Error() string {
	return "multiple 'app' declarations: first at " + e.First.String() + ", again at " + e.Second.String()
}

// NoModulesError reports an empty project.
type NoModulesError struct{}

func (e *NoModulesError) Error() string { return "no modules found" }

func linkErrorDiagnostic(err error) ir.Diagnostic {
	switch e := err.(type) {
	case *CycleError:
		return ir.Diagnostic{
			Severity: ir.SeverityError,
			Location: e.Loc,
			Kind:     ir.KindCycle,
			Message:  "dependency cycle among modules: " + joinNames(e.Members),
		}
	case *UnknownModuleError:
		return ir.Diagnostic{
			Severity: ir.SeverityError,
			Location: e.Loc,
			Kind:     ir.KindUnknownModule,
			Message:  "module \"" + e.Module + "\" uses unknown module \"" + e.Target + "\"",
		}
	case *DuplicateLlmConfigError:
		return ir.Diagnostic{
			Severity: ir.SeverityError,
			Location: e.Second,
			Kind:     ir.KindMultipleLlmConfig,
			Message:  "a second llm_config block was declared; only one is allowed per AppSpec",
		}
	case *MultipleAppDeclarationsError:
		return ir.Diagnostic{
			Severity: ir.SeverityError,
			Location: e.Second,
			Kind:     ir.KindMultipleAppDeclarations,
			Message:  "a second 'app' declaration was found; only one is allowed per AppSpec",
		}
	case *NoModulesError:
		return ir.Diagnostic{
			Severity: ir.SeverityError,
			Kind:     ir.KindUnknownModule,
			Message:  "no modules found",
		}
	default:
		// The only untyped error buildSymbolTable can return is
		// SymbolTable.Insert's duplicate-name error.
		return ir.Diagnostic{
			Severity: ir.SeverityError,
			Kind:     ir.KindDuplicateSymbol,
			Message:  err.Error(),
		}
	}
}
