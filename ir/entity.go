package ir

// Action is one of the five CRUD-ish operations an access rule or
// audit spec can name.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Transition is one edge of an entity's state machine, attached to the
// entity's designated status field.
type Transition struct {
	Loc       Location
	From      string // enum value, or "*" for the wildcard
	To        string
	Guard     Expr // nil if unguarded
	IsWildcardFrom bool
}

// AccessRule is a single permit/forbid clause for one action.
type AccessRule struct {
	Loc    Location
	Action Action
	Pred   Expr
}

// AuditMode says which actions are audited for an entity.
type AuditMode int

const (
	AuditNone AuditMode = iota
	AuditAll
	AuditActions
)

// AuditSpec is the entity's `audit:` declaration.
type AuditSpec struct {
	Mode    AuditMode
	Actions []Action // only meaningful when Mode == AuditActions
}

// IndexSpec is one ordered field tuple used as a search/ordering hint.
type IndexSpec struct {
	Loc    Location
	Fields []string
}

// Entity is a single data-model declaration.
type Entity struct {
	Loc         Location
	Name        string
	DisplayName string
	Intent      string
	Domain      string
	Patterns    []string
	Archetype   string

	Fields      []Field
	Transitions []Transition
	Invariants  []Expr
	Permit      []AccessRule
	Forbid      []AccessRule
	Audit       AuditSpec
	Indexes     []IndexSpec
}

func (e *Entity) Accept(v DeclVisitor) error { return v.VisitEntity(e) }
func (e *Entity) DeclName() string           { return e.Name }
func (e *Entity) DeclLocation() Location     { return e.Loc }

// PrimaryKeyField returns the entity's pk-modified field, or nil if
// none exists (a validation error the validator reports separately).
func (e *Entity) PrimaryKeyField() *Field {
	for i := range e.Fields {
		if e.Fields[i].HasModifier(ModPK) {
			return &e.Fields[i]
		}
	}
	return nil
}

// StatusField returns the entity's designated status enum field: the
// one named "status", or absent that, the first enum field declared.
// Returns nil if the entity has no enum field at all.
func (e *Entity) StatusField() *Field {
	var firstEnum *Field
	for i := range e.Fields {
		f := &e.Fields[i]
		if f.Type.Kind != FieldTypeEnum {
			continue
		}
		if f.Name == "status" {
			return f
		}
		if firstEnum == nil {
			firstEnum = f
		}
	}
	return firstEnum
}

// FieldByName looks up a field declared directly on the entity.
func (e *Entity) FieldByName(name string) *Field {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i]
		}
	}
	return nil
}
