// Package specs holds the API descriptions the generators are built and
// tested against: a subset of GL covering the entry points the GL tracer
// treats specially, the GLX and WGL window-system bindings, and a small COM
// API with interfaces that return each other.
//
// APIs are looked up by name:
//
//	m, err := specs.Load("glx")
//
// GLX and WGL are merged with GL in a shared arena. Each Load builds a new
// arena, so modules can be mutated by the caller.
package specs
