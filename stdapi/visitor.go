package stdapi

import "fmt"

// Visitor has one method per type kind. A is the per-call argument threaded
// through a traversal, typically the C expression holding the value.
type Visitor[A any] interface {
	VisitVoid(t *Type, arg A)
	VisitLiteral(t *Type, arg A)
	VisitString(t *Type, arg A)
	VisitConst(t *Type, arg A)
	VisitPointer(t *Type, arg A)
	VisitHandle(t *Type, arg A)
	VisitEnum(t *Type, arg A)
	VisitBitmask(t *Type, arg A)
	VisitArray(t *Type, arg A)
	VisitBlob(t *Type, arg A)
	VisitStruct(t *Type, arg A)
	VisitAlias(t *Type, arg A)
	VisitOpaque(t *Type, arg A)
	VisitInterface(t *Type, arg A)
}

// Visit dispatches t to the method of v matching its kind.
// An unknown kind is a programming error and panics.
func Visit[A any](v Visitor[A], t *Type, arg A) {
	switch t.Kind {
	case KindVoid:
		v.VisitVoid(t, arg)
	case KindLiteral:
		v.VisitLiteral(t, arg)
	case KindString:
		v.VisitString(t, arg)
	case KindConst:
		v.VisitConst(t, arg)
	case KindPointer:
		v.VisitPointer(t, arg)
	case KindHandle:
		v.VisitHandle(t, arg)
	case KindEnum:
		v.VisitEnum(t, arg)
	case KindBitmask:
		v.VisitBitmask(t, arg)
	case KindArray:
		v.VisitArray(t, arg)
	case KindBlob:
		v.VisitBlob(t, arg)
	case KindStruct:
		v.VisitStruct(t, arg)
	case KindAlias:
		v.VisitAlias(t, arg)
	case KindOpaque:
		v.VisitOpaque(t, arg)
	case KindInterface:
		v.VisitInterface(t, arg)
	default:
		panic(fmt.Sprintf("stdapi: unhandled type kind %d (%s)", t.Kind, t.Expr))
	}
}

// NopVisitor implements every Visitor method as a no-op. Embed it to
// override only the kinds a traversal cares about.
type NopVisitor[A any] struct{}

func (NopVisitor[A]) VisitVoid(*Type, A)      {}
func (NopVisitor[A]) VisitLiteral(*Type, A)   {}
func (NopVisitor[A]) VisitString(*Type, A)    {}
func (NopVisitor[A]) VisitConst(*Type, A)     {}
func (NopVisitor[A]) VisitPointer(*Type, A)   {}
func (NopVisitor[A]) VisitHandle(*Type, A)    {}
func (NopVisitor[A]) VisitEnum(*Type, A)      {}
func (NopVisitor[A]) VisitBitmask(*Type, A)   {}
func (NopVisitor[A]) VisitArray(*Type, A)     {}
func (NopVisitor[A]) VisitBlob(*Type, A)      {}
func (NopVisitor[A]) VisitStruct(*Type, A)    {}
func (NopVisitor[A]) VisitAlias(*Type, A)     {}
func (NopVisitor[A]) VisitOpaque(*Type, A)    {}
func (NopVisitor[A]) VisitInterface(*Type, A) {}

// Once remembers which types a traversal has entered, by identity.
// The zero value is ready to use.
type Once struct {
	seen map[TypeID]struct{}
}

// Enter marks id as visited and reports whether this is the first time.
func (o *Once) Enter(id TypeID) bool {
	if o.seen == nil {
		o.seen = make(map[TypeID]struct{})
	}
	if _, ok := o.seen[id]; ok {
		return false
	}
	o.seen[id] = struct{}{}
	return true
}

// Seen reports whether id was entered.
func (o *Once) Seen(id TypeID) bool {
	_, ok := o.seen[id]
	return ok
}

// Reset forgets every visited type.
func (o *Once) Reset() {
	o.seen = nil
}

// VisitOnce dispatches t only if o has not entered it before and reports
// whether the visit happened.
func VisitOnce[A any](o *Once, v Visitor[A], t *Type, arg A) bool {
	if !o.Enter(t.ID) {
		return false
	}
	Visit(v, t, arg)
	return true
}
