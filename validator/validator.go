// Package validator runs semantic checks over a linked AppSpec. Every
// check function has the shape `func(*ir.AppSpec) ir.Diagnostics` and
// is composed by Validate, one narrowly scoped rule per file.
//
// The validator never rewrites IR: every check reads the AppSpec and
// returns diagnostics, and Validate returns only those diagnostics,
// leaving the caller's AppSpec unchanged.
package validator

import "github.com/dazzle-lang/dazzle/ir"

// checkFunc is the shape of every rule file's unexported check.
type checkFunc func(*ir.AppSpec) ir.Diagnostics

var checks = []checkFunc{
	checkReferences,
	checkPrimaryKeys,
	checkFieldTypes,
	checkEnums,
	checkTransitions,
	checkAccess,
	checkSurfaces,
	checkWorkspaces,
	checkProcesses,
	checkLint,
}

// Validate runs every rule against spec and returns all diagnostics in
// a deterministic sorted order. Running Validate twice on the same
// AppSpec returns identical diagnostics, since every check is a pure
// function of the (immutable) AppSpec.
func Validate(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, check := range checks {
		diags = append(diags, check(spec)...)
	}
	return ir.Sort(diags)
}
