package validator

import (
	"time"

	"github.com/dazzle-lang/dazzle/ir"
)

// checkProcesses enforces process well-formedness: each process has
// at least one step, human-task steps must reference a recognized
// role, timeouts must be positive, and signal steps must name a signal
// declared on some workspace. Service and channel step targets are not
// resolved. Schedules share the same step grammar and get the same
// checks.
func checkProcesses(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	roleNames := collectRoleNames(spec)

	for _, m := range spec.Modules {
		for _, d := range m.Declarations {
			switch v := d.(type) {
			case *ir.Process:
				diags = append(diags, checkSteps(v.Name, v.Loc, v.Steps, v.Timeout, roleNames, spec)...)
			case *ir.Schedule:
				diags = append(diags, checkSteps(v.Name, v.Loc, v.Steps, 0, roleNames, spec)...)
			}
		}
	}
	return diags
}

func checkSteps(name string, loc ir.Location, steps []ir.Step, timeout time.Duration, roleNames map[string]bool, spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	if len(steps) == 0 {
		diags = append(diags, ir.Diagnostic{
			Severity: ir.SeverityError,
			Location: loc,
			Kind:     ir.KindInvalidScenarioFixture,
			Message:  "process/schedule \"" + name + "\" declares no steps",
		})
	}
	for _, s := range steps {
		switch s.Kind {
		case ir.StepHumanTask:
			if s.Role != "" && !roleNames[s.Role] {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityWarning,
					Location: s.Loc,
					Kind:     ir.KindUnreferencedRole,
					Message:  "human_task step \"" + s.Name + "\" in \"" + name + "\" references role \"" + s.Role + "\", which no persona or access rule declares",
				})
			}
		case ir.StepSignal:
			if s.Signal != "" && !signalExists(spec, s.Signal) {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: s.Loc,
					Kind:     ir.KindUnknownField,
					Message:  "step \"" + s.Name + "\" in \"" + name + "\" references unknown signal \"" + s.Signal + "\"",
				})
			}
		}
		if s.Duration < 0 {
			diags = append(diags, ir.Diagnostic{
				Severity: ir.SeverityError,
				Location: s.Loc,
				Kind:     ir.KindInvalidDefault,
				Message:  "step \"" + s.Name + "\" in \"" + name + "\" has a negative duration",
			})
		}
	}
	if timeout < 0 {
		diags = append(diags, ir.Diagnostic{
			Severity: ir.SeverityError,
			Location: loc,
			Kind:     ir.KindInvalidDefault,
			Message:  "process/schedule \"" + name + "\" has a non-positive timeout",
		})
	}
	return diags
}

func signalExists(spec *ir.AppSpec, name string) bool {
	for _, w := range spec.Workspaces() {
		for _, sig := range w.Signals {
			if sig.Name == name {
				return true
			}
		}
	}
	return false
}
