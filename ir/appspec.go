package ir

import "fmt"

// SymbolCategory partitions the global symbol table's namespace. Each
// category is independent: an Entity and a Surface may share a bare
// name without colliding.
type SymbolCategory string

const (
	CategoryEntity    SymbolCategory = "entity"
	CategorySurface   SymbolCategory = "surface"
	CategoryPersona   SymbolCategory = "persona"
	CategoryWorkspace SymbolCategory = "workspace"
	CategoryScenario  SymbolCategory = "scenario"
	CategoryLlmModel  SymbolCategory = "llm_model"
	CategoryLlmIntent SymbolCategory = "llm_intent"
	CategoryEvent     SymbolCategory = "event"
	CategoryTopic     SymbolCategory = "topic"
	CategoryProcess   SymbolCategory = "process"
	CategorySchedule  SymbolCategory = "schedule"
)

// SymbolKey is a fully module-qualified, category-qualified lookup key.
type SymbolKey struct {
	Category SymbolCategory
	Module   string
	Name     string
}

// SymbolTable is the global map from category-qualified names to
// declarations, built once by the linker in topological module order
// and read-only thereafter.
type SymbolTable struct {
	entries map[SymbolKey]Declaration
	// byCategory indexes bare (unqualified) names within a category to
	// their fully-qualified key, used for reference resolution where
	// the DSL names a target without a module qualifier.
	byCategory map[SymbolCategory]map[string]SymbolKey
}

// NewSymbolTable returns an empty, ready-to-populate table. Only the
// linker should call this; everyone else receives a built table via
// AppSpec.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		entries:    make(map[SymbolKey]Declaration),
		byCategory: make(map[SymbolCategory]map[string]SymbolKey),
	}
}

// Insert adds a declaration under the given category and module,
// returning an error if the bare name already exists in that category
// anywhere in the program: a name clash between two modules is a
// duplicate-symbol link error.
func (t *SymbolTable) Insert(category SymbolCategory, module string, decl Declaration) error {
	name := decl.DeclName()
	key := SymbolKey{Category: category, Module: module, Name: name}

	if _, exists := t.byCategory[category]; !exists {
		t.byCategory[category] = make(map[string]SymbolKey)
	}
	if existing, exists := t.byCategory[category][name]; exists {
		return fmt.Errorf("duplicate symbol %q in category %s (first declared in module %q, again in %q)",
			name, category, existing.Module, module)
	}

	t.entries[key] = decl
	t.byCategory[category][name] = key
	return nil
}

// Resolve looks up a bare name within a category, regardless of which
// module declared it. This is how cross-module references (e.g. a
// surface's `uses entity X`) are resolved once the full symbol table
// is built.
func (t *SymbolTable) Resolve(category SymbolCategory, name string) (Declaration, bool) {
	byName, ok := t.byCategory[category]
	if !ok {
		return nil, false
	}
	key, ok := byName[name]
	if !ok {
		return nil, false
	}
	return t.entries[key], true
}

// Len reports the number of distinct category/name pairs registered.
func (t *SymbolTable) Len() int { return len(t.entries) }

// AppSpec is the linked, validated IR root: the sole contract between
// the front-end compiler and every downstream consumer. It exclusively
// owns all of its declarations — consumers borrow, never mutate.
type AppSpec struct {
	AppName  string
	AppTitle string
	Modules  []Module
	// Symbols is excluded from canonical JSON: it is an index the
	// linker rebuilds from Modules, not independent state, so it has
	// nothing to contribute to a round trip beyond what Modules already
	// carries, and its unexported fields would marshal as "{}" anyway.
	Symbols     *SymbolTable `json:"-"`
	LlmConfig   *LlmConfig
	Diagnostics Diagnostics
}

// Entities returns every entity declared across the whole program, in
// (topological module order, then source order).
func (a *AppSpec) Entities() []*Entity {
	var out []*Entity
	for i := range a.Modules {
		out = append(out, a.Modules[i].Entities()...)
	}
	return out
}

func (a *AppSpec) Surfaces() []*Surface {
	var out []*Surface
	for i := range a.Modules {
		out = append(out, a.Modules[i].Surfaces()...)
	}
	return out
}

func (a *AppSpec) Workspaces() []*Workspace {
	var out []*Workspace
	for i := range a.Modules {
		out = append(out, a.Modules[i].Workspaces()...)
	}
	return out
}

func (a *AppSpec) Personas() []*Persona {
	var out []*Persona
	for i := range a.Modules {
		out = append(out, a.Modules[i].Personas()...)
	}
	return out
}

func (a *AppSpec) Scenarios() []*Scenario {
	var out []*Scenario
	for i := range a.Modules {
		out = append(out, a.Modules[i].Scenarios()...)
	}
	return out
}

// FindEntity resolves a bare entity name against the global symbol
// table, returning nil if none exists.
func (a *AppSpec) FindEntity(name string) *Entity {
	decl, ok := a.Symbols.Resolve(CategoryEntity, name)
	if !ok {
		return nil
	}
	e, _ := decl.(*Entity)
	return e
}

func (a *AppSpec) FindSurface(name string) *Surface {
	decl, ok := a.Symbols.Resolve(CategorySurface, name)
	if !ok {
		return nil
	}
	s, _ := decl.(*Surface)
	return s
}

func (a *AppSpec) FindWorkspace(name string) *Workspace {
	decl, ok := a.Symbols.Resolve(CategoryWorkspace, name)
	if !ok {
		return nil
	}
	w, _ := decl.(*Workspace)
	return w
}

func (a *AppSpec) FindPersona(name string) *Persona {
	decl, ok := a.Symbols.Resolve(CategoryPersona, name)
	if !ok {
		return nil
	}
	p, _ := decl.(*Persona)
	return p
}
