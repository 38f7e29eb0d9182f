package parser

import (
	"fmt"

	"github.com/dazzle-lang/dazzle/ir"
	"github.com/dazzle-lang/dazzle/token"
)

// Error is a single parse failure: the offending token's location, the
// set of token kinds that would have been accepted, and an optional
// production-specific hint.
type Error struct {
	Loc      ir.Location
	Kind     ir.DiagnosticKind
	Expected []token.Kind
	Found    token.Kind
	Msg      string
	Hint     string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
	}
	return fmt.Sprintf("%s: expected %v, found %s", e.Loc, e.Expected, e.Found)
}

func (e *Error) Diagnostic() ir.Diagnostic {
	msg := e.Msg
	if msg == "" {
		msg = fmt.Sprintf("expected %s, found %s", expectedList(e.Expected), e.Found)
	}
	return ir.Diagnostic{
		Severity: ir.SeverityError,
		Location: e.Loc,
		Kind:     e.Kind,
		Message:  msg,
		Hint:     e.Hint,
	}
}

func expectedList(ks []token.Kind) string {
	if len(ks) == 0 {
		return "<nothing>"
	}
	if len(ks) == 1 {
		return ks[0].String()
	}
	s := "one of "
	for i, k := range ks {
		if i > 0 {
			s += ", "
		}
		s += k.String()
	}
	return s
}
