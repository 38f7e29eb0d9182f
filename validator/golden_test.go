package validator

import (
	"testing"

	"github.com/dazzle-lang/dazzle/diagnostics"
	"github.com/dazzle-lang/dazzle/ir"
	"github.com/sebdah/goldie/v2"
)

// TestOrphanStateDiagnosticsGoldenText pins the rendered text form of
// the pair of warnings an unreachable, untransitioned enum state
// produces (scenario: an enum variant with no incoming or outgoing
// transitions, reachable from nothing). Location is a fixed stand-in
// for the entity's declaration site rather than one obtained from a
// live parse, the way diagnostics/format_test.go pins rendering
// against hand-built ir.Diagnostic values rather than parser output.
func TestOrphanStateDiagnosticsGoldenText(t *testing.T) {
	loc := ir.Location{File: "a.dzl", Line: 2, Column: 1, Span: 6}
	diags := ir.Diagnostics{
		{
			Severity: ir.SeverityWarning,
			Location: loc,
			Kind:     ir.KindUnreachableFromDefault,
			Message:  `state "parked" on Ticket is unreachable from the default state "new"`,
		},
		{
			Severity: ir.SeverityWarning,
			Location: loc,
			Kind:     ir.KindNoOutgoingTransition,
			Message:  `state "parked" on Ticket has no incoming or outgoing transitions`,
		},
	}

	g := goldie.New(t)
	g.Assert(t, "orphan_state_text", []byte(diagnostics.FormatText(diags)))
}
