package validator

import (
	"strconv"

	"github.com/dazzle-lang/dazzle/ir"
)

// checkFieldTypes enforces str(N)/decimal(p,s) argument bounds and
// default-value type checking. `str(0)` and `decimal(0,0)` are
// boundary cases: a zero-length/zero-precision declaration is
// rejected, not silently accepted.
func checkFieldTypes(spec *ir.AppSpec) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, e := range spec.Entities() {
		for i := range e.Fields {
			f := &e.Fields[i]
			diags = append(diags, checkFieldTypeBounds(e, f)...)
			if f.Default != nil {
				diags = append(diags, checkDefaultType(e, f)...)
			}
		}
	}
	return diags
}

func checkFieldTypeBounds(e *ir.Entity, f *ir.Field) ir.Diagnostics {
	var diags ir.Diagnostics
	switch f.Type.Kind {
	case ir.FieldTypeScalar:
		switch f.Type.Scalar {
		case ir.ScalarStr:
			if f.Type.StrLen < 1 {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: f.Loc,
					Kind:     ir.KindInvalidFieldType,
					Message:  "str(" + strconv.Itoa(f.Type.StrLen) + ") on field \"" + f.Name + "\" (" + e.Name + "): length must be >= 1",
				})
			}
		case ir.ScalarDecimal:
			if f.Type.DecPrec < 1 {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: f.Loc,
					Kind:     ir.KindInvalidFieldType,
					Message:  "decimal(" + strconv.Itoa(f.Type.DecPrec) + "," + strconv.Itoa(f.Type.DecScale) + ") on field \"" + f.Name + "\" (" + e.Name + "): precision must be >= 1",
				})
			} else if f.Type.DecScale < 0 || f.Type.DecScale > f.Type.DecPrec {
				diags = append(diags, ir.Diagnostic{
					Severity: ir.SeverityError,
					Location: f.Loc,
					Kind:     ir.KindInvalidFieldType,
					Message:  "decimal(" + strconv.Itoa(f.Type.DecPrec) + "," + strconv.Itoa(f.Type.DecScale) + ") on field \"" + f.Name + "\" (" + e.Name + "): scale must satisfy 0 <= s <= p",
				})
			}
		}
	}
	return diags
}

func checkDefaultType(e *ir.Entity, f *ir.Field) ir.Diagnostics {
	lit, ok := (*f.Default).(*ir.Literal)
	if !ok {
		// A non-literal default (e.g. a call or field ref) isn't
		// type-checkable here; references.go resolves any identifiers
		// it contains.
		return nil
	}

	bad := func() ir.Diagnostics {
		return ir.Diagnostics{{
			Severity: ir.SeverityError,
			Location: lit.Loc,
			Kind:     ir.KindInvalidDefault,
			Message:  "default value for field \"" + f.Name + "\" (" + e.Name + ") does not match its declared type",
		}}
	}

	switch f.Type.Kind {
	case ir.FieldTypeEnum:
		if lit.Kind != ir.LiteralString {
			return bad()
		}
		for _, v := range f.Type.EnumValues {
			if v == lit.Str {
				return nil
			}
		}
		return ir.Diagnostics{{
			Severity: ir.SeverityError,
			Location: lit.Loc,
			Kind:     ir.KindInvalidDefault,
			Message:  "default value \"" + lit.Str + "\" for field \"" + f.Name + "\" (" + e.Name + ") is not a declared enum variant",
		}}
	case ir.FieldTypeScalar:
		switch f.Type.Scalar {
		case ir.ScalarInt, ir.ScalarDecimal:
			if lit.Kind != ir.LiteralNumber {
				return bad()
			}
		case ir.ScalarBool:
			if lit.Kind != ir.LiteralBool {
				return bad()
			}
		case ir.ScalarStr, ir.ScalarText, ir.ScalarEmail, ir.ScalarRichtext,
			ir.ScalarDatetime, ir.ScalarDate, ir.ScalarTime, ir.ScalarJSON:
			if lit.Kind != ir.LiteralString {
				return bad()
			}
		}
	}
	return nil
}

