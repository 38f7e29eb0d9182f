package ir

import "sort"

// Severity classifies a Diagnostic. Errors abort the pipeline before
// the next phase runs; warnings never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// DiagnosticKind names the specific condition a Diagnostic reports.
// Kinds are grouped below by the phase that can emit them.
type DiagnosticKind string

const (
	// Lex
	KindUnterminatedString  DiagnosticKind = "UnterminatedString"
	KindInvalidIndent       DiagnosticKind = "InvalidIndent"
	KindInconsistentDedent  DiagnosticKind = "InconsistentDedent"
	KindInvalidNumber       DiagnosticKind = "InvalidNumber"
	KindUnexpectedChar      DiagnosticKind = "UnexpectedChar"

	// Parse
	KindExpectedToken             DiagnosticKind = "ExpectedToken"
	KindUnexpectedEOF              DiagnosticKind = "UnexpectedEof"
	KindUnexpectedDedent            DiagnosticKind = "UnexpectedDedent"
	KindMalformedExpression          DiagnosticKind = "MalformedExpression"
	KindDuplicateDeclarationInBlock DiagnosticKind = "DuplicateDeclarationInBlock"

	// Link
	KindMissingModuleHeader    DiagnosticKind = "MissingModuleHeader"
	KindDuplicateModule        DiagnosticKind = "DuplicateModule"
	KindUnknownModule          DiagnosticKind = "UnknownModule"
	KindCycle                  DiagnosticKind = "Cycle"
	KindDuplicateSymbol        DiagnosticKind = "DuplicateSymbol"
	KindMultipleLlmConfig      DiagnosticKind = "MultipleLlmConfig"
	KindMultipleAppDeclarations DiagnosticKind = "MultipleAppDeclarations"

	// Validation errors
	KindUnknownEntity          DiagnosticKind = "UnknownEntity"
	KindUnknownField           DiagnosticKind = "UnknownField"
	KindMultiplePrimaryKeys    DiagnosticKind = "MultiplePrimaryKeys"
	KindNoPrimaryKey           DiagnosticKind = "NoPrimaryKey"
	KindInvalidFieldType       DiagnosticKind = "InvalidFieldType"
	KindInvalidDefault         DiagnosticKind = "InvalidDefault"
	KindDuplicateEnumVariant   DiagnosticKind = "DuplicateEnumVariant"
	KindReservedEnumValue      DiagnosticKind = "ReservedEnumValue"
	KindUnknownState           DiagnosticKind = "UnknownState"
	KindDuplicateTransition    DiagnosticKind = "DuplicateTransition"
	KindWildcardInToPosition   DiagnosticKind = "WildcardInToPosition"
	KindInvalidAccessPredicate DiagnosticKind = "InvalidAccessPredicate"
	KindUnknownPersonaRole     DiagnosticKind = "UnknownPersonaRole"
	KindInvalidAggregation     DiagnosticKind = "InvalidAggregation"
	KindInvalidEngineHint      DiagnosticKind = "InvalidEngineHint"
	KindFieldNotOnEntity       DiagnosticKind = "FieldNotOnEntity"
	KindInvalidScenarioFixture DiagnosticKind = "InvalidScenarioFixture"

	// Warnings
	KindUnreachableState         DiagnosticKind = "UnreachableState"
	KindUnreachableFromDefault   DiagnosticKind = "UnreachableFromDefault"
	KindNoOutgoingTransition     DiagnosticKind = "NoOutgoingTransition"
	KindDeadEntity               DiagnosticKind = "DeadEntity"
	KindNamingConvention         DiagnosticKind = "NamingConvention"
	KindAppDeclarationInferred   DiagnosticKind = "AppDeclarationInferred"
	KindUnreferencedRole         DiagnosticKind = "UnreferencedRole"
	KindDuplicateLabel           DiagnosticKind = "DuplicateLabel"
	KindEmptySection             DiagnosticKind = "EmptySection"
	KindUnpairedRelation         DiagnosticKind = "UnpairedRelation"
	KindGeneratedFieldListed     DiagnosticKind = "GeneratedFieldListed"
	KindInvalidSurfaceMode       DiagnosticKind = "InvalidSurfaceMode"
)

// Diagnostic is a single structured error or warning, identical across
// the line-oriented and JSON output forms.
type Diagnostic struct {
	Severity Severity
	Location Location
	Kind     DiagnosticKind
	Message  string
	Hint     string
}

func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }

// Diagnostics is a sortable collection maintaining the ordering
// guarantee every phase must honor: non-decreasing in
// (file, line, column, kind).
type Diagnostics []Diagnostic

func (ds Diagnostics) Len() int      { return len(ds) }
func (ds Diagnostics) Swap(i, j int) { ds[i], ds[j] = ds[j], ds[i] }
func (ds Diagnostics) Less(i, j int) bool {
	a, b := ds[i], ds[j]
	if a.Location != b.Location {
		return a.Location.Less(b.Location)
	}
	return a.Kind < b.Kind
}

// Sort orders diagnostics deterministically in place and returns the
// same slice, so call sites can chain it (`return Sort(diags)`).
func Sort(ds Diagnostics) Diagnostics {
	sort.Stable(ds)
	return ds
}

// HasErrors reports whether any diagnostic in the set is an error.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Counts returns the number of errors and warnings in the set.
func (ds Diagnostics) Counts() (errors, warnings int) {
	for _, d := range ds {
		if d.IsError() {
			errors++
		} else {
			warnings++
		}
	}
	return
}
