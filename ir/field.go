package ir

// ScalarKind enumerates the non-composite DAZZLE field types.
type ScalarKind string

const (
	ScalarUUID      ScalarKind = "uuid"
	ScalarStr       ScalarKind = "str"
	ScalarText      ScalarKind = "text"
	ScalarInt       ScalarKind = "int"
	ScalarDecimal   ScalarKind = "decimal"
	ScalarBool      ScalarKind = "bool"
	ScalarDatetime  ScalarKind = "datetime"
	ScalarDate      ScalarKind = "date"
	ScalarTime      ScalarKind = "time"
	ScalarEmail     ScalarKind = "email"
	ScalarJSON      ScalarKind = "json"
	ScalarImage     ScalarKind = "image"
	ScalarFile      ScalarKind = "file"
	ScalarRichtext  ScalarKind = "richtext"
)

// ScalarKinds lists every recognized scalar type name, used by the
// parser to validate a type-name token before building a FieldType.
var ScalarKinds = map[string]ScalarKind{
	"uuid":     ScalarUUID,
	"str":      ScalarStr,
	"text":     ScalarText,
	"int":      ScalarInt,
	"decimal":  ScalarDecimal,
	"bool":     ScalarBool,
	"datetime": ScalarDatetime,
	"date":     ScalarDate,
	"time":     ScalarTime,
	"email":    ScalarEmail,
	"json":     ScalarJSON,
	"image":    ScalarImage,
	"file":     ScalarFile,
	"richtext": ScalarRichtext,
}

// RefKind distinguishes the three entity-reference field shapes.
type RefKind string

const (
	RefMandatory RefKind = "ref"
	RefHasMany   RefKind = "has_many"
	RefBelongsTo RefKind = "belongs_to"
)

// FieldType is the closed sum type for a field's declared type. Kind
// says which of the fields below are meaningful.
type FieldType struct {
	Kind FieldTypeKind

	Scalar    ScalarKind // Kind == FieldTypeScalar
	StrLen    int        // str(N)
	DecPrec   int        // decimal(p,s)
	DecScale  int

	EnumValues  []string // Kind == FieldTypeEnum
	EnumDefault string   // empty if none declared

	RefKind   RefKind // Kind == FieldTypeRef
	RefTarget string  // entity name, unresolved until linking

	Computed Expr // Kind == FieldTypeComputed
}

type FieldTypeKind int

const (
	FieldTypeScalar FieldTypeKind = iota
	FieldTypeEnum
	FieldTypeRef
	FieldTypeComputed
)

// Modifier is one of the field modifier keywords.
type Modifier string

const (
	ModPK          Modifier = "pk"
	ModRequired    Modifier = "required"
	ModOptional    Modifier = "optional"
	ModUnique      Modifier = "unique"
	ModAutoAdd     Modifier = "auto_add"
	ModAutoUpdate  Modifier = "auto_update"
)

// Field is one ordered member of an entity's field list.
type Field struct {
	Loc       Location
	Name      string
	Type      FieldType
	Modifiers []Modifier
	Default   *Expr
}

// HasModifier reports whether m is present on the field.
func (f *Field) HasModifier(m Modifier) bool {
	for _, x := range f.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}
