package specs

import "github.com/wippyai/apigen/stdapi"

// GL describes the core and extension GL entry points generated for the
// tracer: the client arrays, draw calls, buffer objects, program linking,
// state queries and debug markers.
func GL(t *GLTypes) *stdapi.Module {
	a := t.Arena
	fn := a.NewFunction
	in, out := stdapi.In, stdapi.Out
	void := stdapi.Void
	args := func(args ...stdapi.Arg) []stdapi.Arg { return args }
	sizeof := func(name, args string) string { return "_" + name + "_size(" + args + ")" }
	intv := a.Array(t.Int, "_gl_param_size(pname)")
	floatv := a.Array(t.Float, "_gl_param_size(pname)")
	constData := func(size string) stdapi.TypeID { return a.Blob(a.Const(t.Void), size) }

	return stdapi.NewModule(a, "gl").
		AddHeaders(`#include "glproc.hpp"`, `#include "glsize.hpp"`).
		AddFunctions(
			fn(void, "glEnable", args(in(t.Enum, "cap"))),
			fn(void, "glDisable", args(in(t.Enum, "cap"))),
			fn(t.Boolean, "glIsEnabled", args(in(t.Enum, "cap")), stdapi.NoSideEffects(), stdapi.WithFail("GL_FALSE")),
			fn(t.Enum, "glGetError", nil, stdapi.NoSideEffects(), stdapi.WithFail("GL_NO_ERROR")),
			fn(void, "glBegin", args(in(t.Enum, "mode"))),
			fn(void, "glEnd", nil),
			fn(void, "glVertex3f", args(in(t.Float, "x"), in(t.Float, "y"), in(t.Float, "z"))),

			// Client arrays.
			fn(void, "glEnableClientState", args(in(t.Enum, "array"))),
			fn(void, "glDisableClientState", args(in(t.Enum, "array"))),
			fn(void, "glClientActiveTexture", args(in(t.Enum, "texture"))),
			fn(void, "glVertexPointer", args(in(t.Int, "size"), in(t.Enum, "type"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glNormalPointer", args(in(t.Enum, "type"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glColorPointer", args(in(t.Int, "size"), in(t.Enum, "type"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glIndexPointer", args(in(t.Enum, "type"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glTexCoordPointer", args(in(t.Int, "size"), in(t.Enum, "type"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glEdgeFlagPointer", args(in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glFogCoordPointer", args(in(t.Enum, "type"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glSecondaryColorPointer", args(in(t.Int, "size"), in(t.Enum, "type"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glInterleavedArrays", args(in(t.Enum, "format"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glVertexAttribPointer", args(in(t.Uint, "index"), in(t.Int, "size"), in(t.Enum, "type"), in(t.Boolean, "normalized"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glVertexAttribPointerNV", args(in(t.Uint, "index"), in(t.Int, "size"), in(t.Enum, "type"), in(t.Sizei, "stride"), in(t.Pointer, "pointer"))),
			fn(void, "glEnableVertexAttribArray", args(in(t.Uint, "index"))),
			fn(void, "glLockArraysEXT", args(in(t.Int, "first"), in(t.Sizei, "count"))),
			fn(void, "glUnlockArraysEXT", nil),

			// Draws.
			fn(void, "glDrawArrays", args(in(t.Enum, "mode"), in(t.Int, "first"), in(t.Sizei, "count"))),
			fn(void, "glDrawElements", args(in(t.Enum, "mode"), in(t.Sizei, "count"), in(t.Enum, "type"), in(t.Pointer, "indices"))),

			// Buffer objects.
			fn(void, "glBindBuffer", args(in(t.Enum, "target"), in(t.Buffer, "buffer"))),
			fn(void, "glGenBuffers", args(in(t.Sizei, "n"), out(a.Array(t.Buffer, "n"), "buffer"))),
			fn(void, "glDeleteBuffers", args(in(t.Sizei, "n"), in(a.Array(a.Const(t.Buffer), "n"), "buffer"))),
			fn(void, "glBufferData", args(in(t.Enum, "target"), in(t.Sizeiptr, "size"), in(constData("size"), "data"), in(t.Enum, "usage"))),
			fn(void, "glBufferSubData", args(in(t.Enum, "target"), in(t.Intptr, "offset"), in(t.Sizeiptr, "size"), in(constData("size"), "data"))),
			fn(t.Map, "glMapBuffer", args(in(t.Enum, "target"), in(t.Enum, "access"))),
			fn(t.Map, "glMapBufferRange", args(in(t.Enum, "target"), in(t.Intptr, "offset"), in(t.Sizeiptr, "length"), in(t.Access, "access"))),
			fn(t.Boolean, "glUnmapBuffer", args(in(t.Enum, "target"))),
			fn(void, "glFlushMappedBufferRange", args(in(t.Enum, "target"), in(t.Intptr, "offset"), in(t.Sizeiptr, "length"))),
			fn(void, "glBufferParameteriAPPLE", args(in(t.Enum, "target"), in(t.Enum, "pname"), in(t.Int, "param"))),

			// Programs.
			fn(t.Program, "glCreateProgram", nil),
			fn(void, "glLinkProgram", args(in(t.Program, "program"))),
			fn(void, "glBindAttribLocation", args(in(t.Program, "program"), in(t.Uint, "index"), in(t.CharConst, "name"))),

			// State.
			fn(t.String, "glGetString", args(in(t.Enum, "name")), stdapi.NoSideEffects()),
			fn(void, "glGetIntegerv", args(in(t.Enum, "pname"), out(intv, "params")), stdapi.NoSideEffects()),
			fn(void, "glGetFloatv", args(in(t.Enum, "pname"), out(floatv, "params")), stdapi.NoSideEffects()),
			fn(void, "glGetPointerv", args(in(t.Enum, "pname"), out(a.Pointer(t.Map), "params")), stdapi.NoSideEffects()),
			fn(void, "glTexParameteri", args(in(t.Enum, "target"), in(t.Enum, "pname"), in(t.Int, "param"))),
			fn(void, "glTexParameterf", args(in(t.Enum, "target"), in(t.Enum, "pname"), in(t.Float, "param"))),
			fn(void, "glTexImage2D", args(
				in(t.Enum, "target"),
				in(t.Int, "level"),
				in(t.Int, "internalformat"),
				in(t.Sizei, "width"),
				in(t.Sizei, "height"),
				in(t.Int, "border"),
				in(t.Enum, "format"),
				in(t.Enum, "type"),
				in(constData(sizeof("glTexImage2D", "format, type, width, height")), "pixels"),
			)),

			// Debug markers.
			fn(void, "glStringMarkerGREMEDY", args(in(t.Sizei, "len"), in(a.CharString("const GLvoid *", "len > 0 ? len : strlen((const char *)string)"), "string"))),
			fn(void, "glDebugMessageInsert", args(
				in(t.Enum, "source"),
				in(t.Enum, "type"),
				in(t.Uint, "id"),
				in(t.Enum, "severity"),
				in(t.Sizei, "length"),
				in(a.CharString("const GLchar *", "length >= 0 ? length : strlen(buf)"), "buf"),
			)),
		)
}
