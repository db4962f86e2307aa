package stdapi

// Collector records every type reachable from the roots it is given, each
// exactly once, dependencies before dependents. Cyclic interface references
// terminate because a type is marked before its children are visited.
type Collector struct {
	arena *Arena
	once  Once
	types []*Type
}

// NewCollector creates a collector over a.
func NewCollector(a *Arena) *Collector {
	return &Collector{arena: a}
}

// Collect adds id and everything it references. Unknown ids are ignored.
func (c *Collector) Collect(id TypeID) {
	t := c.arena.Type(id)
	if t == nil || !c.once.Enter(id) {
		return
	}
	Visit[struct{}](c, t, struct{}{})
	c.types = append(c.types, t)
}

// CollectFunction adds the argument types and then the return type of f.
func (c *Collector) CollectFunction(f *Function) {
	for _, arg := range f.Args {
		c.Collect(arg.Type)
	}
	c.Collect(f.Type)
}

// Types returns the collected types in dependency order.
func (c *Collector) Types() []*Type {
	return c.types
}

func (c *Collector) VisitVoid(*Type, struct{})    {}
func (c *Collector) VisitLiteral(*Type, struct{}) {}
func (c *Collector) VisitString(*Type, struct{})  {}
func (c *Collector) VisitEnum(*Type, struct{})    {}
func (c *Collector) VisitOpaque(*Type, struct{})  {}

// VisitBlob does not descend: blob contents are raw bytes.
func (c *Collector) VisitBlob(*Type, struct{}) {}

func (c *Collector) VisitConst(t *Type, _ struct{})   { c.Collect(t.Elem) }
func (c *Collector) VisitPointer(t *Type, _ struct{}) { c.Collect(t.Elem) }
func (c *Collector) VisitHandle(t *Type, _ struct{})  { c.Collect(t.Elem) }
func (c *Collector) VisitBitmask(t *Type, _ struct{}) { c.Collect(t.Elem) }
func (c *Collector) VisitArray(t *Type, _ struct{})   { c.Collect(t.Elem) }
func (c *Collector) VisitAlias(t *Type, _ struct{})   { c.Collect(t.Elem) }

func (c *Collector) VisitStruct(t *Type, _ struct{}) {
	for _, m := range t.Members {
		c.Collect(m.Type)
	}
}

func (c *Collector) VisitInterface(t *Type, _ struct{}) {
	c.Collect(t.Base)
	for _, m := range c.arena.Methods(t.ID) {
		c.CollectFunction(&m.Function)
	}
}
