package lexer

import (
	"fmt"

	"github.com/dazzle-lang/dazzle/ir"
)

// Error is a single lexical failure. The lexer collects every Error it
// can find in one file before returning: lex errors halt lexing of
// that file but other files continue, so callers compiling multiple
// modules keep going file by file.
type Error struct {
	Loc  ir.Location
	Kind ir.DiagnosticKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Loc, e.Kind, e.Msg)
}

func (e *Error) Diagnostic() ir.Diagnostic {
	return ir.Diagnostic{
		Severity: ir.SeverityError,
		Location: e.Loc,
		Kind:     e.Kind,
		Message:  e.Msg,
	}
}

func newError(loc ir.Location, kind ir.DiagnosticKind, format string, args ...any) *Error {
	return &Error{Loc: loc, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
