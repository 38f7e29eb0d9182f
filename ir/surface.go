package ir

// SurfaceMode is the CRUD-or-custom mode a surface renders.
type SurfaceMode string

const (
	ModeList   SurfaceMode = "list"
	ModeView   SurfaceMode = "view"
	ModeCreate SurfaceMode = "create"
	ModeEdit   SurfaceMode = "edit"
	ModeCustom SurfaceMode = "custom"
)

// Section groups a subset of a surface's fields under a label.
type Section struct {
	Loc         Location
	Name        string
	DisplayName string
	Fields      []string
}

// SurfaceUX holds the optional sort/filter/search/empty-state and
// persona-scoped variant configuration of a surface.
type SurfaceUX struct {
	Sort           string
	Filter         Expr
	Search         []string
	Empty          string
	PersonaVariant map[string]SurfaceUXVariant
}

// SurfaceUXVariant overrides UX fields for a single persona.
type SurfaceUXVariant struct {
	Sort   string
	Filter Expr
	Empty  string
}

// Surface is a single UI screen bound to one entity.
type Surface struct {
	Loc         Location
	Name        string
	DisplayName string
	Entity      string // unresolved entity reference
	Mode        SurfaceMode
	Sections    []Section
	UX          *SurfaceUX
}

func (s *Surface) Accept(v DeclVisitor) error { return v.VisitSurface(s) }
func (s *Surface) DeclName() string           { return s.Name }
func (s *Surface) DeclLocation() Location     { return s.Loc }

// Fields flattens every section's field list into the surface's full,
// DSL-authored field order, preserved verbatim rather than normalized.
func (s *Surface) Fields() []string {
	var out []string
	for _, sec := range s.Sections {
		out = append(out, sec.Fields...)
	}
	return out
}
