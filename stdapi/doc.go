// Package stdapi is the type model shared by every API description and
// generator.
//
// # Arena
//
// All types live in an Arena and are addressed by TypeID handles allocated in
// increasing order. The predeclared C types (Void, Int, CString, ...) are
// registered by NewArena in a fixed order, so their constants are valid in
// every arena:
//
//	a := stdapi.NewArena()
//	glenum := a.Alias("GLenum", stdapi.UInt)
//	point := a.Struct("POINT",
//		stdapi.Member{Type: stdapi.Long, Name: "x"},
//		stdapi.Member{Type: stdapi.Long, Name: "y"})
//
// Each type carries a tag, an identifier fragment derived from its C
// expression that generators use to name helpers. Tags are unique within an
// arena; collisions get a numeric suffix.
//
// # Interfaces
//
// Interfaces are built incrementally and sealed. The id is available before
// Build, which is how interfaces that reference each other are expressed:
//
//	factory := a.NewInterface("IFactory", unknown)
//	object := a.NewInterface("IObject", unknown)
//	factory.Method(hresult, "Create", stdapi.Out(a.Pointer(a.Pointer(object.ID())), "ppObject"))
//	object.Method(hresult, "GetFactory", stdapi.Out(a.Pointer(a.Pointer(factory.ID())), "ppFactory"))
//	factory.Build()
//	object.Build()
//
// # Traversal
//
// Visitor is matched exhaustively by Visit. Once and VisitOnce memoize by
// identity, Collector yields reachable types dependencies first, and
// Rebuilder derives transformed copies such as StripConst.
package stdapi
