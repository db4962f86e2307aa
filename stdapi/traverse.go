package stdapi

// Traverse walks the value structure of id depth first, calling fn on each
// node once. Returning false from fn skips the node's children. Interfaces
// are leaves: their methods are not part of a value.
func Traverse(a *Arena, id TypeID, fn func(t *Type) bool) {
	var once Once
	var walk func(id TypeID)
	walk = func(id TypeID) {
		t := a.Type(id)
		if t == nil || !once.Enter(id) || !fn(t) {
			return
		}
		switch t.Kind {
		case KindConst, KindPointer, KindHandle, KindArray, KindAlias:
			walk(t.Elem)
		case KindStruct:
			for _, m := range t.Members {
				walk(m.Type)
			}
		case KindVoid, KindLiteral, KindString, KindEnum, KindBitmask, KindBlob, KindOpaque, KindInterface:
		}
	}
	walk(id)
}

// ContainsInterface reports whether a value of type id holds an interface
// pointer anywhere in its structure.
func ContainsInterface(a *Arena, id TypeID) bool {
	found := false
	Traverse(a, id, func(t *Type) bool {
		if t.Kind == KindInterface {
			found = true
		}
		return !found
	})
	return found
}

// Resolve strips aliases, handles and const qualifiers from id.
func Resolve(a *Arena, id TypeID) *Type {
	for {
		t := a.Type(id)
		if t == nil {
			return nil
		}
		switch t.Kind {
		case KindAlias, KindHandle, KindConst:
			id = t.Elem
		default:
			return t
		}
	}
}
