// Package trace generates the recording layer of an API: for every function
// an exported wrapper that writes an enter record with the inputs, calls the
// real entry point through its dispatch slot, and writes a leave record with
// the outputs and return value.
//
// # Values
//
// Values are serialized by walking their type. Structs, enums and bitmasks
// refer to static signature tables written once per type at the top of the
// file; every other kind is written inline.
//
// # Interfaces
//
// Each interface of the module gets a wrapper class deriving from it. Every
// interface pointer leaving the API is replaced by its wrapper, and every
// wrapper handed back to the API is replaced by the wrapped object, so calls
// made through returned objects are recorded too. Objects obtained by
// interface id are wrapped at run time by wrapIID.
//
// # Extensions
//
// Extension hooks let an API specific tracer add code around the default
// steps. Hooks embed Base and call back into the Tracer:
//
//	type myExt struct{ trace.Base }
//
//	func (myExt) FunctionBody(t *trace.Tracer, w *emit.Writer, f *stdapi.Function) {
//		if f.Name == "glBegin" {
//			w.Line("// ...")
//		}
//		t.FunctionBody(w, f)
//	}
package trace
