package stdapi

import "slices"

// Rebuilder produces structurally transformed copies of type trees.
//
// Without an Override it is the identity. Override is consulted for every
// node first; returning ok=true replaces the node (and its subtree) with the
// returned id. Nodes whose children come back unchanged are reused rather
// than reallocated. Void, literals, strings, enums, opaques and interfaces
// are always reused.
type Rebuilder struct {
	Override func(r *Rebuilder, t *Type) (TypeID, bool)
	arena    *Arena
	memo     map[TypeID]TypeID
}

// NewRebuilder creates an identity rebuilder over a.
func NewRebuilder(a *Arena) *Rebuilder {
	return &Rebuilder{arena: a, memo: make(map[TypeID]TypeID)}
}

// Arena returns the arena new types are registered in.
func (r *Rebuilder) Arena() *Arena {
	return r.arena
}

// Rebuild returns the transformed counterpart of id.
func (r *Rebuilder) Rebuild(id TypeID) TypeID {
	if out, ok := r.memo[id]; ok {
		return out
	}
	t := r.arena.Type(id)
	if t == nil {
		return id
	}
	out := id
	if r.Override != nil {
		if replaced, ok := r.Override(r, t); ok {
			r.memo[id] = replaced
			return replaced
		}
	}
	Visit[*TypeID](r, t, &out)
	r.memo[id] = out
	return out
}

func (r *Rebuilder) VisitVoid(*Type, *TypeID)      {}
func (r *Rebuilder) VisitLiteral(*Type, *TypeID)   {}
func (r *Rebuilder) VisitString(*Type, *TypeID)    {}
func (r *Rebuilder) VisitEnum(*Type, *TypeID)      {}
func (r *Rebuilder) VisitOpaque(*Type, *TypeID)    {}
func (r *Rebuilder) VisitInterface(*Type, *TypeID) {}

func (r *Rebuilder) VisitConst(t *Type, out *TypeID) {
	if elem := r.Rebuild(t.Elem); elem != t.Elem {
		*out = r.arena.Const(elem)
	}
}

func (r *Rebuilder) VisitPointer(t *Type, out *TypeID) {
	if elem := r.Rebuild(t.Elem); elem != t.Elem {
		*out = r.arena.Pointer(elem)
	}
}

func (r *Rebuilder) VisitHandle(t *Type, out *TypeID) {
	if elem := r.Rebuild(t.Elem); elem != t.Elem {
		*out = r.arena.Handle(t.Name, elem, t.Range, t.Key)
	}
}

func (r *Rebuilder) VisitBitmask(t *Type, out *TypeID) {
	if elem := r.Rebuild(t.Elem); elem != t.Elem {
		*out = r.arena.Bitmask(elem, t.Values...)
	}
}

func (r *Rebuilder) VisitArray(t *Type, out *TypeID) {
	if elem := r.Rebuild(t.Elem); elem != t.Elem {
		*out = r.arena.Array(elem, t.Length)
	}
}

func (r *Rebuilder) VisitBlob(t *Type, out *TypeID) {
	if elem := r.Rebuild(t.Elem); elem != t.Elem {
		*out = r.arena.Blob(elem, t.Length)
	}
}

func (r *Rebuilder) VisitAlias(t *Type, out *TypeID) {
	if elem := r.Rebuild(t.Elem); elem != t.Elem {
		*out = r.arena.Alias(t.Expr, elem)
	}
}

func (r *Rebuilder) VisitStruct(t *Type, out *TypeID) {
	members := slices.Clone(t.Members)
	changed := false
	for i, m := range members {
		if rebuilt := r.Rebuild(m.Type); rebuilt != m.Type {
			members[i].Type = rebuilt
			changed = true
		}
	}
	if changed {
		*out = r.arena.Struct(t.Name, members...)
	}
}

// StripConst returns id with every const qualifier removed, for declaring
// mutable copies of const data. Types it registers are reused by later calls
// on the same arena.
func StripConst(a *Arena, id TypeID) TypeID {
	if out, ok := a.mutable[id]; ok {
		return out
	}
	r := NewRebuilder(a)
	r.Override = func(r *Rebuilder, t *Type) (TypeID, bool) {
		if t.Kind == KindConst {
			return r.Rebuild(t.Elem), true
		}
		return InvalidType, false
	}
	out := r.Rebuild(id)
	if a.mutable == nil {
		a.mutable = make(map[TypeID]TypeID)
	}
	a.mutable[id] = out
	a.mutable[out] = out
	return out
}
