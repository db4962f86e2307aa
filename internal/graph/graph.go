// Package graph provides the interface reference graph of a module.
//
// An interface refers to its base and to every interface its own methods
// take or return. Interfaces that refer to each other, directly or through
// a chain, form a cycle group. Wrapper classes of a group must all be
// declared before any of them is implemented.
package graph

import (
	"github.com/wippyai/apigen/stdapi"
)

// Graph is the interface reference graph of one module. It is built once
// and read-only afterwards.
type Graph struct {
	arena *stdapi.Arena

	// nodes lists the interfaces in module order
	nodes []stdapi.TypeID

	// refs maps an interface to the interfaces it refers to, in first
	// reference order
	refs map[stdapi.TypeID][]stdapi.TypeID

	groups [][]stdapi.TypeID
}

// Build constructs the graph of every interface reachable from m.
func Build(m *stdapi.Module) *Graph {
	g := &Graph{
		arena: m.Arena,
		refs:  make(map[stdapi.TypeID][]stdapi.TypeID),
	}
	if m.Arena == nil {
		return g
	}
	for _, iface := range m.AllInterfaces() {
		g.nodes = append(g.nodes, iface.ID)
		g.refs[iface.ID] = g.collectRefs(iface)
	}
	g.groups = g.components()
	return g
}

// collectRefs returns the base of iface followed by the interfaces its
// own method signatures hold.
func (g *Graph) collectRefs(iface *stdapi.Type) []stdapi.TypeID {
	var refs []stdapi.TypeID
	seen := make(map[stdapi.TypeID]bool)
	add := func(t *stdapi.Type) bool {
		if t.Kind != stdapi.KindInterface {
			return true
		}
		if !seen[t.ID] {
			seen[t.ID] = true
			refs = append(refs, t.ID)
		}
		return false
	}
	if base := g.arena.Type(iface.Base); base != nil {
		add(base)
	}
	for _, m := range iface.OwnMethods() {
		for _, arg := range m.Args {
			stdapi.Traverse(g.arena, arg.Type, add)
		}
		stdapi.Traverse(g.arena, m.Type, add)
	}
	return refs
}

// components computes the strongly connected components with Tarjan's
// algorithm. Components come out dependencies first.
func (g *Graph) components() [][]stdapi.TypeID {
	var (
		index   = make(map[stdapi.TypeID]int)
		low     = make(map[stdapi.TypeID]int)
		onStack = make(map[stdapi.TypeID]bool)
		stack   []stdapi.TypeID
		next    int
		out     [][]stdapi.TypeID
	)
	var connect func(v stdapi.TypeID)
	connect = func(v stdapi.TypeID) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.refs[v] {
			if _, visited := index[w]; !visited {
				connect(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], index[w])
			}
		}

		if low[v] == index[v] {
			var group []stdapi.TypeID
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				group = append(group, w)
				if w == v {
					break
				}
			}
			if group = g.sortByModule(group); len(group) > 0 {
				out = append(out, group)
			}
		}
	}
	for _, v := range g.nodes {
		if _, visited := index[v]; !visited {
			connect(v)
		}
	}
	return out
}

// sortByModule orders ids as they appear in the module.
func (g *Graph) sortByModule(ids []stdapi.TypeID) []stdapi.TypeID {
	in := make(map[stdapi.TypeID]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	sorted := make([]stdapi.TypeID, 0, len(ids))
	for _, id := range g.nodes {
		if in[id] {
			sorted = append(sorted, id)
		}
	}
	return sorted
}

// Interfaces returns the interfaces of the graph in module order.
func (g *Graph) Interfaces() []stdapi.TypeID {
	result := make([]stdapi.TypeID, len(g.nodes))
	copy(result, g.nodes)
	return result
}

// Refs returns the interfaces iface refers to.
func (g *Graph) Refs(iface stdapi.TypeID) []stdapi.TypeID {
	refs := g.refs[iface]
	result := make([]stdapi.TypeID, len(refs))
	copy(result, refs)
	return result
}

// RefersTo reports whether from refers to to directly.
func (g *Graph) RefersTo(from, to stdapi.TypeID) bool {
	for _, id := range g.refs[from] {
		if id == to {
			return true
		}
	}
	return false
}

// Cycles returns the groups of interfaces that refer to each other,
// including single interfaces that refer to themselves.
func (g *Graph) Cycles() [][]stdapi.TypeID {
	var cycles [][]stdapi.TypeID
	for _, group := range g.groups {
		if len(group) > 1 || g.RefersTo(group[0], group[0]) {
			cycles = append(cycles, group)
		}
	}
	return cycles
}

// Order returns the interfaces so that every interface comes after those
// it refers to, except for references within a cycle group.
func (g *Graph) Order() []stdapi.TypeID {
	var order []stdapi.TypeID
	for _, group := range g.groups {
		order = append(order, group...)
	}
	return order
}

// Names returns the interface names of ids.
func (g *Graph) Names(ids []stdapi.TypeID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = g.arena.Type(id).Name
	}
	return names
}
