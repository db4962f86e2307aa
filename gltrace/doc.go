// Package gltrace specializes trace generation for OpenGL and its
// window-system bindings.
//
// # User arrays
//
// Vertex arrays may live in client memory. Their extent is only known at
// draw time, so the array functions are not recorded when given a client
// pointer. Each draw call instead computes the vertex count it reads and
// records fake array calls carrying exactly that many vertices. Texture
// coordinate arrays are captured per unit, with the client active unit
// switched and restored through fake glClientActiveTexture calls.
//
// # Buffer mappings
//
// Writes through a mapped buffer bypass the API. The range written is
// recorded as a memcpy when the mapping ends or is explicitly flushed.
//
// # Platforms
//
// A Platform names the context lifetime functions and the proc-address
// functions of a window-system binding. Addresses handed out by the driver
// are replaced with the tracer's wrappers:
//
//	ext := gltrace.New(gltrace.WithPlatform(gltrace.GLX))
//	err := ext.Tracer().Generate(w, m)
package gltrace
