package stdapi

import (
	"github.com/wippyai/apigen/errors"
)

// Module is a named API surface: functions, interfaces and the headers
// generated code must include.
type Module struct {
	Arena      *Arena
	Name       string
	Headers    []string
	Functions  []*Function
	Interfaces []TypeID
}

// NewModule creates an empty module whose types live in a.
func NewModule(a *Arena, name string) *Module {
	return &Module{Arena: a, Name: name}
}

// AddHeaders appends raw include lines.
func (m *Module) AddHeaders(headers ...string) *Module {
	m.Headers = append(m.Headers, headers...)
	return m
}

// AddFunctions appends functions in order.
func (m *Module) AddFunctions(fns ...*Function) *Module {
	m.Functions = append(m.Functions, fns...)
	return m
}

// AddInterfaces appends interfaces in order.
func (m *Module) AddInterfaces(ids ...TypeID) *Module {
	m.Interfaces = append(m.Interfaces, ids...)
	return m
}

// Merge builds the union of modules. Order is preserved and functions,
// interfaces and headers shared by several inputs appear once. Every input
// must use the same arena.
func Merge(name string, modules ...*Module) (*Module, error) {
	if len(modules) == 0 {
		return nil, errors.InvalidInput(errors.PhaseBuild, []string{name}, "no modules to merge")
	}
	out := NewModule(modules[0].Arena, name)
	seenFn := make(map[*Function]bool)
	seenIface := make(map[TypeID]bool)
	seenHeader := make(map[string]bool)
	for _, mod := range modules {
		if mod.Arena != out.Arena {
			return nil, errors.New(errors.PhaseBuild, errors.KindInvalidInput).
				Path(name, mod.Name).
				Detail("module built in a different arena").
				Build()
		}
		for _, h := range mod.Headers {
			if !seenHeader[h] {
				seenHeader[h] = true
				out.Headers = append(out.Headers, h)
			}
		}
		for _, f := range mod.Functions {
			if !seenFn[f] {
				seenFn[f] = true
				out.Functions = append(out.Functions, f)
			}
		}
		for _, id := range mod.Interfaces {
			if !seenIface[id] {
				seenIface[id] = true
				out.Interfaces = append(out.Interfaces, id)
			}
		}
	}
	return out, nil
}

// FunctionByName returns the first function called name.
func (m *Module) FunctionByName(name string) (*Function, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// AllTypes returns every type reachable from the module in dependency
// order: function argument and return types first, then interfaces and
// their method signatures.
func (m *Module) AllTypes() []*Type {
	c := NewCollector(m.Arena)
	for _, f := range m.Functions {
		c.CollectFunction(f)
	}
	for _, id := range m.Interfaces {
		c.Collect(id)
		for _, method := range m.Arena.Methods(id) {
			c.CollectFunction(&method.Function)
		}
	}
	return c.Types()
}

// AllInterfaces returns reachable interfaces followed by declared interfaces
// that were not reachable.
func (m *Module) AllInterfaces() []*Type {
	var ifaces []*Type
	seen := make(map[TypeID]bool)
	for _, t := range m.AllTypes() {
		if t.Kind == KindInterface {
			seen[t.ID] = true
			ifaces = append(ifaces, t)
		}
	}
	for _, id := range m.Interfaces {
		if t := m.Arena.Type(id); t != nil && !seen[id] {
			seen[id] = true
			ifaces = append(ifaces, t)
		}
	}
	return ifaces
}
