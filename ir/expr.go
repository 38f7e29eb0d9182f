package ir

// Expr is the sum type used for guards, invariants, computed fields,
// aggregate clauses and access rules. The parser builds Expr trees
// without resolving identifiers; the validator does that resolution.
type Expr interface {
	exprNode()
	Location() Location
}

// Op is a binary or unary operator token spelled in source form.
type Op string

const (
	OpOr  Op = "or"
	OpAnd Op = "and"
	OpNot Op = "not"

	OpEq  Op = "="
	OpNeq Op = "!="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="

	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
)

// Literal is a scalar constant: string, number, bool, or null.
type Literal struct {
	Loc   Location
	Kind  LiteralKind
	Str   string
	Num   float64
	Bool  bool
}

type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
	LiteralNull
)

func (*Literal) exprNode()             {}
func (l *Literal) Location() Location { return l.Loc }

// Ident is a bare identifier reference, e.g. a role name or the
// `current_user` pseudo-identifier used in access predicates.
type Ident struct {
	Loc  Location
	Name string
}

func (*Ident) exprNode()             {}
func (i *Ident) Location() Location { return i.Loc }

// FieldRef is a dotted path reference, most commonly a bare field name
// inside an invariant or guard, or entity.field in a cross-entity
// aggregate expression.
type FieldRef struct {
	Loc  Location
	Path []string
}

func (*FieldRef) exprNode()             {}
func (f *FieldRef) Location() Location { return f.Loc }

// Binary is a two-operand expression.
type Binary struct {
	Loc   Location
	Op    Op
	Left  Expr
	Right Expr
}

func (*Binary) exprNode()             {}
func (b *Binary) Location() Location { return b.Loc }

// Unary is a single-operand expression (`not expr`, `-expr`).
type Unary struct {
	Loc  Location
	Op   Op
	Expr Expr
}

func (*Unary) exprNode()             {}
func (u *Unary) Location() Location { return u.Loc }

// Call is a function-call-shaped node: `role(R)`, `requires field`,
// `count(Entity)`, `sum(field)`, and similar. Arguments are a plain
// comma-separated list; a `WHERE` filter inside `count(...)` is not
// parsed.
type Call struct {
	Loc  Location
	Name string
	Args []Expr
}

func (*Call) exprNode()             {}
func (c *Call) Location() Location { return c.Loc }
