// Package ir defines the frozen intermediate representation produced by
// the DAZZLE front-end compiler. Every exported type here is immutable
// once constructed: downstream consumers (validators, generators, the
// DNR runtime) borrow values, they never mutate them.
package ir

import "fmt"

// Location pins an IR node to the source text it was built from.
// Locations survive linking and validation so every diagnostic can
// point at the original site, even after declarations have been
// reordered into topological module order.
type Location struct {
	File   string
	Line   int
	Column int
	Span   int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Less orders locations by (file, line, column), the sort key every
// phase uses before returning diagnostics.
func (l Location) Less(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}
