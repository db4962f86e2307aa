package stdapi

// InterfaceBuilder accumulates the methods of an interface. The interface id
// is allocated up front so that method signatures may refer to interfaces
// that are still being built, including the interface itself.
type InterfaceBuilder struct {
	t *Type
}

// NewInterface allocates an interface deriving from base, which may be
// InvalidType for a root interface.
func (a *Arena) NewInterface(name string, base TypeID) *InterfaceBuilder {
	id := a.alloc(Type{Kind: KindInterface, Name: name, Expr: name, Base: base}, "")
	return &InterfaceBuilder{t: a.types[id]}
}

// ID returns the handle of the interface under construction.
func (b *InterfaceBuilder) ID() TypeID {
	return b.t.ID
}

// Method appends a method.
func (b *InterfaceBuilder) Method(ret TypeID, name string, args ...Arg) *InterfaceBuilder {
	b.add(ret, name, args, false)
	return b
}

// ConstMethod appends a const-qualified method.
func (b *InterfaceBuilder) ConstMethod(ret TypeID, name string, args ...Arg) *InterfaceBuilder {
	b.add(ret, name, args, true)
	return b
}

func (b *InterfaceBuilder) add(ret TypeID, name string, args []Arg, isConst bool) {
	if b.t.sealed {
		panic("stdapi: method " + name + " added to sealed interface " + b.t.Name)
	}
	m := &Method{
		Function: Function{
			Type:        ret,
			Name:        name,
			Call:        "__stdcall",
			SideEffects: true,
			Args:        indexArgs(args, 1),
		},
		Interface: b.t.ID,
		Const:     isConst,
	}
	b.t.methods = append(b.t.methods, m)
}

// Build seals the interface and returns its id.
func (b *InterfaceBuilder) Build() TypeID {
	b.t.sealed = true
	return b.t.ID
}

// MethodRef pairs a method with the interface that declares it.
type MethodRef struct {
	Method *Method
	Owner  TypeID
}

// Bases returns iface followed by its ancestors, nearest first.
// Cyclic base chains stop at the first repeat.
func (a *Arena) Bases(iface TypeID) []TypeID {
	var chain []TypeID
	seen := make(map[TypeID]bool)
	for id := iface; id.IsValid() && !seen[id]; {
		t := a.Type(id)
		if t == nil || t.Kind != KindInterface {
			break
		}
		seen[id] = true
		chain = append(chain, id)
		id = t.Base
	}
	return chain
}

// BaseMethods returns every method callable on iface, root ancestor first,
// paired with its declaring interface.
func (a *Arena) BaseMethods(iface TypeID) []MethodRef {
	chain := a.Bases(iface)
	var refs []MethodRef
	for i := len(chain) - 1; i >= 0; i-- {
		for _, m := range a.types[chain[i]].methods {
			refs = append(refs, MethodRef{Owner: chain[i], Method: m})
		}
	}
	return refs
}

// Methods returns every method callable on iface, inherited ones first.
func (a *Arena) Methods(iface TypeID) []*Method {
	refs := a.BaseMethods(iface)
	methods := make([]*Method, len(refs))
	for i, ref := range refs {
		methods[i] = ref.Method
	}
	return methods
}

// Implements reports whether iface is target or derives from it.
func (a *Arena) Implements(iface, target TypeID) bool {
	for _, id := range a.Bases(iface) {
		if id == target {
			return true
		}
	}
	return false
}
