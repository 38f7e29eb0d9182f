package ir

// EngineHint is a workspace layout hint consumed only by downstream
// generators; the core records and validates it but never interprets
// its rendering meaning.
type EngineHint string

const (
	EngineFocusMetric   EngineHint = "focus_metric"
	EngineScannerTable  EngineHint = "scanner_table"
	EngineDualPaneFlow  EngineHint = "dual_pane_flow"
	EngineMonitorWall   EngineHint = "monitor_wall"
	EngineCommandCenter EngineHint = "command_center"
)

// ValidEngineHints is the recognized archetype/engine-hint set.
var ValidEngineHints = map[EngineHint]bool{
	EngineFocusMetric:   true,
	EngineScannerTable:  true,
	EngineDualPaneFlow:  true,
	EngineMonitorWall:   true,
	EngineCommandCenter: true,
}

// SignalDisplay is how a signal's result set should be rendered.
type SignalDisplay string

const (
	DisplayList   SignalDisplay = "list"
	DisplayDetail SignalDisplay = "detail"
	DisplayGrid   SignalDisplay = "grid"
	DisplayKanban SignalDisplay = "kanban"
)

// Signal is one named data clause inside a workspace.
type Signal struct {
	Loc            Location
	Name           string
	Source         string // entity name, unresolved
	Filter         Expr
	Sort           string
	Limit          int // 0 means unset
	Display        SignalDisplay
	Aggregate      map[string]Expr
	Action         string // surface name reference, unresolved
	PersonaVariant map[string]SignalUXVariant
}

// SignalUXVariant overrides a signal's presentation for one persona.
type SignalUXVariant struct {
	Sort    string
	Filter  Expr
	Display SignalDisplay
}

// Workspace composes one or more signals into a navigable view.
type Workspace struct {
	Loc         Location
	Name        string
	DisplayName string
	Purpose     string
	EngineHint  EngineHint
	Signals     []Signal
}

func (w *Workspace) Accept(v DeclVisitor) error { return v.VisitWorkspace(w) }
func (w *Workspace) DeclName() string           { return w.Name }
func (w *Workspace) DeclLocation() Location     { return w.Loc }
