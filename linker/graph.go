// Package linker resolves the module dependency graph built from
// `use` declarations, topologically orders modules, builds the global
// symbol table, and assembles the final AppSpec. Graph resolution uses
// an iterative Kahn sort.
package linker

import (
	"sort"

	"github.com/dazzle-lang/dazzle/ir"
)

// CycleError reports a set of modules that could not be fully
// ordered because they form a dependency cycle (which may include
// `use self`, the degenerate single-node cycle).
type CycleError struct {
	Loc     ir.Location
	Members []string
}

func (e *CycleError) Error() string { return "dependency cycle: " + joinNames(e.Members) }

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// UnknownModuleError reports a `use` clause naming a module that was
// never discovered.
type UnknownModuleError struct {
	Loc    ir.Location
	Module string
	Target string
}

func (e *UnknownModuleError) Error() string {
	return "module " + e.Module + " uses unknown module " + e.Target
}

// topoSort orders modules so that every module appears after all
// modules it uses:
//  1. Seed the queue with every module whose use-set is empty.
//  2. Pop, append to the output, decrement each consumer's pending
//     count, enqueue any that reach zero.
//  3. If fewer modules were ordered than exist, the unordered
//     remainder forms one or more cycles.
//
// Modules at the same topological depth are returned in lexicographic
// name order for determinism.
func topoSort(modules []ir.Module) ([]ir.Module, error) {
	byName := make(map[string]*ir.Module, len(modules))
	for i := range modules {
		byName[modules[i].Name] = &modules[i]
	}

	for i := range modules {
		for _, used := range modules[i].Uses {
			if used == modules[i].Name {
				return nil, &CycleError{Loc: modules[i].Loc, Members: []string{modules[i].Name}}
			}
			if _, ok := byName[used]; !ok {
				return nil, &UnknownModuleError{Loc: modules[i].Loc, Module: modules[i].Name, Target: used}
			}
		}
	}

	pending := make(map[string]int, len(modules))
	consumers := make(map[string][]string, len(modules))
	for i := range modules {
		m := &modules[i]
		pending[m.Name] = len(m.Uses)
		for _, used := range m.Uses {
			consumers[used] = append(consumers[used], m.Name)
		}
	}

	var queue []string
	for name, n := range pending {
		if n == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var order []ir.Module
	for len(queue) > 0 {
		var nextLevel []string
		for _, name := range queue {
			order = append(order, *byName[name])
			for _, consumer := range consumers[name] {
				pending[consumer]--
				if pending[consumer] == 0 {
					nextLevel = append(nextLevel, consumer)
				}
			}
		}
		sort.Strings(nextLevel)
		queue = nextLevel
	}

	if len(order) < len(modules) {
		var members []string
		for name, n := range pending {
			if n > 0 {
				members = append(members, name)
			}
		}
		sort.Strings(members)
		loc := byName[members[0]].Loc
		return nil, &CycleError{Loc: loc, Members: members}
	}

	return order, nil
}
