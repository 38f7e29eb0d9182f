package ir

// ProficiencyLevel is a persona's declared skill level.
type ProficiencyLevel string

const (
	ProficiencyNovice       ProficiencyLevel = "novice"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// Persona is a named user role with UX preferences.
type Persona struct {
	Loc              Location
	Name             string
	Description      string
	Goals            []string
	Proficiency      ProficiencyLevel
	SessionStyle     string
	DefaultWorkspace string // unresolved workspace reference
	DefaultRoute     string
}

func (p *Persona) Accept(v DeclVisitor) error { return v.VisitPersona(p) }
func (p *Persona) DeclName() string           { return p.Name }
func (p *Persona) DeclLocation() Location     { return p.Loc }

// Scenario is a named demo state: start routes per persona plus
// literal fixture rows keyed by entity name.
type Scenario struct {
	Loc         Location
	Name        string
	StartRoutes map[string]string // persona name -> route
	Fixtures    map[string][]FixtureRow
}

// FixtureRow is one literal demo row for an entity.
type FixtureRow struct {
	Loc    Location
	Values map[string]Expr
}

func (s *Scenario) Accept(v DeclVisitor) error { return v.VisitScenario(s) }
func (s *Scenario) DeclName() string           { return s.Name }
func (s *Scenario) DeclLocation() Location     { return s.Loc }
