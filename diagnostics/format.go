// Package diagnostics projects a []ir.Diagnostic into three output
// forms: a line-oriented human form, a structured JSON form, and a
// YAML form. All three are projections of the same slice — there is
// never a separate code path that could drift out of sync.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dazzle-lang/dazzle/ir"
	"gopkg.in/yaml.v3"
)

// jsonDiagnostic is the structured JSON shape:
// {severity, code, file, line, column, span, message, hint?}.
type jsonDiagnostic struct {
	Severity string `json:"severity" yaml:"severity"`
	Code     string `json:"code" yaml:"code"`
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Span     int    `json:"span" yaml:"span"`
	Message  string `json:"message" yaml:"message"`
	Hint     string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

func toJSONDiagnostic(d ir.Diagnostic) jsonDiagnostic {
	return jsonDiagnostic{
		Severity: string(d.Severity),
		Code:     string(d.Kind),
		File:     d.Location.File,
		Line:     d.Location.Line,
		Column:   d.Location.Column,
		Span:     d.Location.Span,
		Message:  d.Message,
		Hint:     d.Hint,
	}
}

// Line renders a single diagnostic as `path:line:col: severity: code:
// message`, the line-oriented form.
func Line(d ir.Diagnostic) string {
	loc := d.Location.File + ":" + strconv.Itoa(d.Location.Line) + ":" + strconv.Itoa(d.Location.Column)
	s := fmt.Sprintf("%s: %s: %s: %s", loc, d.Severity, d.Kind, d.Message)
	if d.Hint != "" {
		s += " (" + d.Hint + ")"
	}
	return s
}

// FormatText renders every diagnostic, one per line, in sorted order,
// followed by a one-line error/warning count summary.
func FormatText(diags ir.Diagnostics) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(Line(d))
		b.WriteByte('\n')
	}
	errs, warns := diags.Counts()
	fmt.Fprintf(&b, "%d error(s), %d warning(s)\n", errs, warns)
	return b.String()
}

// FormatJSON renders every diagnostic as a canonical JSON array.
func FormatJSON(diags ir.Diagnostics) ([]byte, error) {
	out := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = toJSONDiagnostic(d)
	}
	return json.MarshalIndent(out, "", "  ")
}

// FormatYAML renders every diagnostic as a YAML sequence, for hosts
// that prefer YAML tooling over JSON (e.g. CI log viewers).
func FormatYAML(diags ir.Diagnostics) ([]byte, error) {
	out := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = toJSONDiagnostic(d)
	}
	return yaml.Marshal(out)
}
