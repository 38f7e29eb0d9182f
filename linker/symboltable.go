package linker

import "github.com/dazzle-lang/dazzle/ir"

// symbolInserter implements ir.DeclVisitor so building the symbol
// table is an exhaustive dispatch over every declaration kind, the
// same double-dispatch pattern ir.Declaration is modeled on.
type symbolInserter struct {
	table  *ir.SymbolTable
	module string
	llm    **ir.LlmConfig
	err    error
}

func (s *symbolInserter) insert(category ir.SymbolCategory, decl ir.Declaration) {
	if s.err != nil {
		return
	}
	s.err = s.table.Insert(category, s.module, decl)
}

func (s *symbolInserter) VisitEntity(e *ir.Entity) error {
	s.insert(ir.CategoryEntity, e)
	return nil
}

func (s *symbolInserter) VisitSurface(v *ir.Surface) error {
	s.insert(ir.CategorySurface, v)
	return nil
}

func (s *symbolInserter) VisitWorkspace(v *ir.Workspace) error {
	s.insert(ir.CategoryWorkspace, v)
	return nil
}

func (s *symbolInserter) VisitPersona(v *ir.Persona) error {
	s.insert(ir.CategoryPersona, v)
	return nil
}

func (s *symbolInserter) VisitScenario(v *ir.Scenario) error {
	s.insert(ir.CategoryScenario, v)
	return nil
}

func (s *symbolInserter) VisitLlmModel(v *ir.LlmModel) error {
	s.insert(ir.CategoryLlmModel, v)
	return nil
}

func (s *symbolInserter) VisitLlmIntent(v *ir.LlmIntent) error {
	s.insert(ir.CategoryLlmIntent, v)
	return nil
}

func (s *symbolInserter) VisitLlmConfig(v *ir.LlmConfig) error {
	if *s.llm != nil {
		s.err = &DuplicateLlmConfigError{First: (*s.llm).Loc, Second: v.Loc}
		return nil
	}
	*s.llm = v
	return nil
}

func (s *symbolInserter) VisitEventModel(v *ir.EventModel) error {
	s.insert(ir.CategoryEvent, v)
	return nil
}

func (s *symbolInserter) VisitSubscribe(v *ir.Subscribe) error {
	// Subscribe declarations aren't referenced by name elsewhere in the
	// program, so they don't occupy a symbol-table category; the linker
	// still visits them for exhaustiveness.
	return nil
}

func (s *symbolInserter) VisitProcess(v *ir.Process) error {
	s.insert(ir.CategoryProcess, v)
	return nil
}

func (s *symbolInserter) VisitSchedule(v *ir.Schedule) error {
	s.insert(ir.CategorySchedule, v)
	return nil
}

// DuplicateLlmConfigError reports a second `llm_config` block
// anywhere in the program; at most one may exist.
type DuplicateLlmConfigError struct {
	First  ir.Location
	Second ir.Location
}

func (e *DuplicateLlmConfigError) Error() string {
	return "multiple llm_config blocks: first at " + e.First.String() + ", again at " + e.Second.String()
}

// buildSymbolTable walks every module's declarations in topological
// then source order, inserting each into a fresh SymbolTable.
func buildSymbolTable(modules []ir.Module) (*ir.SymbolTable, *ir.LlmConfig, error) {
	table := ir.NewSymbolTable()
	var llm *ir.LlmConfig
	for i := range modules {
		m := &modules[i]
		ins := &symbolInserter{table: table, module: m.Name, llm: &llm}
		for _, decl := range m.Declarations {
			if err := decl.Accept(ins); err != nil {
				return nil, nil, err
			}
			if ins.err != nil {
				return nil, nil, ins.err
			}
		}
	}
	return table, llm, nil
}
