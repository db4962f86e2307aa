package gltrace

import (
	"strings"

	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
	"github.com/wippyai/apigen/trace"
)

// Header writes the GL helpers shared by every wrapper: the user array
// test, the capture flags, the buffer mapping records and the parameter
// tables.
func (e *Extension) Header(t *trace.Tracer, w *emit.Writer, m *stdapi.Module) {
	t.Header(w, m)
	w.Blank()
	w.Line("#include <algorithm>")
	w.Blank()
	w.Line(`#include "gltrace.hpp"`)
	w.Blank()

	vertexAttribHelper(w)
	shadowBufferHelper(w)
	needUserArrays(w)

	w.Line("static void _trace_user_arrays(GLuint count);")
	w.Blank()
	w.Line("// whether glLockArraysEXT() has ever been called")
	w.Line("static bool _checkLockArraysEXT = false;")
	w.Blank()
	w.Line("// whether glMapBufferRange(GL_MAP_WRITE_BIT) has ever been called")
	w.Line("static bool _checkBufferMapRange = false;")
	w.Blank()
	w.Line("// whether glBufferParameteriAPPLE(GL_BUFFER_FLUSHING_UNMAP_APPLE, GL_FALSE) has ever been called")
	w.Line("static bool _checkBufferFlushingUnmapAPPLE = false;")
	w.Blank()

	bufferMappings(w)
	e.params.writeHelpers(w)

	w.Line("// states such as GL_UNPACK_ROW_LENGTH are not available in GLES")
	w.Line("static inline bool")
	w.Brace("can_unpack_subimage(void)", func() {
		w.Line("gltrace::Context *ctx = gltrace::getContext();")
		w.Line("return (ctx->profile == gltrace::PROFILE_COMPAT);")
	})
	w.Blank()

	if ret, arg, ok := e.procAddressSignature(m); ok {
		w.Linef("static %s _wrapProcAddress(%s procName, %s procPtr);", ret, arg, ret)
		w.Blank()
	}
}

func vertexAttribHelper(w *emit.Writer) {
	w.Block("enum vertex_attrib {", func() {
		w.Line("VERTEX_ATTRIB,")
		w.Line("VERTEX_ATTRIB_NV,")
	}, "};")
	w.Blank()
	w.Brace("static vertex_attrib _get_vertex_attrib(void)", func() {
		w.Line("gltrace::Context *ctx = gltrace::getContext();")
		w.Brace("if (ctx->user_arrays_nv)", func() {
			w.Line("GLboolean _vertex_program = GL_FALSE;")
			w.Line("_glGetBooleanv(GL_VERTEX_PROGRAM_ARB, &_vertex_program);")
			w.Brace("if (_vertex_program)", func() {
				w.Brace("if (ctx->user_arrays_nv)", func() {
					w.Line("GLint _vertex_program_binding_nv = _glGetInteger(GL_VERTEX_PROGRAM_BINDING_NV);")
					w.Brace("if (_vertex_program_binding_nv)", func() {
						w.Line("return VERTEX_ATTRIB_NV;")
					})
				})
			})
		})
		w.Line("return VERTEX_ATTRIB;")
	})
	w.Blank()
}

// shadowBufferHelper writes the element buffer readback used by the index
// counting helpers. Contexts without buffer readback serve it from the
// shadow copy.
func shadowBufferHelper(w *emit.Writer) {
	w.Line("void _shadow_glGetBufferSubData(GLenum target, GLintptr offset,")
	w.Line("                                GLsizeiptr size, GLvoid *data)")
	w.Line("{")
	w.Indent()
	w.Line("gltrace::Context *ctx = gltrace::getContext();")
	w.Brace("if (!ctx->needsShadowBuffers() || target != GL_ELEMENT_ARRAY_BUFFER)", func() {
		w.Line("_glGetBufferSubData(target, offset, size, data);")
		w.Line("return;")
	})
	w.Blank()
	w.Line("GLint buffer_binding = _glGetInteger(GL_ELEMENT_ARRAY_BUFFER_BINDING);")
	w.Brace("if (buffer_binding > 0)", func() {
		w.Line("gltrace::Buffer & buf = ctx->buffers[buffer_binding];")
		w.Line("buf.getSubData(offset, size, data);")
	})
	w.Dedent()
	w.Line("}")
	w.Blank()
}

// profileCheck returns the condition under which a legacy array exists.
func profileCheck(a Array, profile string) string {
	check := profile + " == gltrace::PROFILE_COMPAT"
	if arraysES1[a.Camel] {
		check = "(" + check + " || " + profile + " == gltrace::PROFILE_ES1)"
	}
	return check
}

// texUnitLoopBegin opens the loop over texture units for the texture
// coordinate array, saving the client active unit. Other arrays are not
// indexed and get no loop.
func texUnitLoopBegin(w *emit.Writer, a Array) {
	if !a.IsTexCoord() {
		return
	}
	w.Line("GLint client_active_texture = _glGetInteger(GL_CLIENT_ACTIVE_TEXTURE);")
	w.Line("GLint max_texture_coords = 0;")
	w.Line("if (ctx->profile == gltrace::PROFILE_COMPAT)")
	w.Line("    _glGetIntegerv(GL_MAX_TEXTURE_COORDS, &max_texture_coords);")
	w.Line("else")
	w.Line("    _glGetIntegerv(GL_MAX_TEXTURE_UNITS, &max_texture_coords);")
	w.Line("for (GLint unit = 0; unit < max_texture_coords; ++unit) {")
	w.Indent()
	w.Line("GLint texture = GL_TEXTURE0 + unit;")
	w.Line("_glClientActiveTexture(texture);")
}

// texUnitRestore restores the client active unit saved by
// texUnitLoopBegin.
func texUnitRestore(w *emit.Writer, a Array) {
	if a.IsTexCoord() {
		w.Line("_glClientActiveTexture(client_active_texture);")
	}
}

func texUnitLoopEnd(w *emit.Writer, a Array) {
	if a.IsTexCoord() {
		w.Dedent()
		w.Line("}")
	}
	texUnitRestore(w, a)
}

// needUserArrays writes _need_user_arrays, true when an enabled array of
// the current context reads client memory.
func needUserArrays(w *emit.Writer) {
	w.Line("static inline bool _need_user_arrays(void)")
	w.Line("{")
	w.Indent()
	w.Line("gltrace::Context *ctx = gltrace::getContext();")
	w.Brace("if (!ctx->user_arrays)", func() {
		w.Line("return false;")
	})
	w.Blank()
	w.Line("enum gltrace::Profile profile = ctx->profile;")
	w.Blank()

	for _, a := range Arrays {
		w.Line("// " + a.Pointer())
		w.Brace("if ("+profileCheck(a, "profile")+")", func() {
			texUnitLoopBegin(w, a)
			w.Linef("if (_glIsEnabled(%s) &&", a.Enable())
			w.Linef("    _glGetInteger(%s) == 0) {", a.Binding())
			w.Indent()
			texUnitRestore(w, a)
			w.Line("return true;")
			w.Dedent()
			w.Line("}")
			texUnitLoopEnd(w, a)
		})
		w.Blank()
	}

	w.Line("// ES1 does not support generic vertex attributes")
	w.Line("if (profile == gltrace::PROFILE_ES1)")
	w.Line("    return false;")
	w.Blank()
	w.Line("vertex_attrib _vertex_attrib = _get_vertex_attrib();")
	w.Blank()
	w.Line("// glVertexAttribPointer")
	w.Brace("if (_vertex_attrib == VERTEX_ATTRIB)", func() {
		w.Line("GLint _max_vertex_attribs = _glGetInteger(GL_MAX_VERTEX_ATTRIBS);")
		w.Brace("for (GLint index = 0; index < _max_vertex_attribs; ++index)", func() {
			w.Line("if (_glGetVertexAttribi(index, GL_VERTEX_ATTRIB_ARRAY_ENABLED) &&")
			w.Line("    _glGetVertexAttribi(index, GL_VERTEX_ATTRIB_ARRAY_BUFFER_BINDING) == 0) {")
			w.Indent()
			w.Line("return true;")
			w.Dedent()
			w.Line("}")
		})
	})
	w.Blank()
	w.Line("// glVertexAttribPointerNV")
	w.Brace("if (_vertex_attrib == VERTEX_ATTRIB_NV)", func() {
		w.Linef("for (GLint index = 0; index < %d; ++index) {", MaxVertexAttribsNV)
		w.Indent()
		w.Brace("if (_glIsEnabled(GL_VERTEX_ATTRIB_ARRAY0_NV + index))", func() {
			w.Line("return true;")
		})
		w.Dedent()
		w.Line("}")
	})
	w.Blank()
	w.Line("return false;")
	w.Dedent()
	w.Line("}")
	w.Blank()
}

// MaxVertexAttribsNV is the fixed number of NV_vertex_program attributes.
const MaxVertexAttribsNV = 16

// bufferMappings writes the per-target mapping records kept for drivers
// that cannot report the mapped range.
func bufferMappings(w *emit.Writer) {
	w.Block("struct buffer_mapping {", func() {
		w.Line("void *map;")
		w.Line("GLint length;")
		w.Line("bool write;")
		w.Line("bool explicit_flush;")
	}, "};")
	w.Blank()
	for _, target := range BufferTargets {
		w.Linef("struct buffer_mapping _%s_mapping;", strings.ToLower(target))
	}
	w.Blank()
	w.Line("static inline struct buffer_mapping *")
	w.Brace("get_buffer_mapping(GLenum target)", func() {
		w.Brace("switch (target)", func() {
			for _, target := range BufferTargets {
				w.Linef("case GL_%s:", target)
				w.Linef("    return & _%s_mapping;", strings.ToLower(target))
			}
			w.Line("default:")
			w.Line(`    os::log("warning: unknown buffer target 0x%04X\n", target);`)
			w.Line("    return NULL;")
		})
	})
	w.Blank()
}

// procAddressSignature returns the return and name argument types of the
// platform's first proc-address function, when the module declares it.
func (e *Extension) procAddressSignature(m *stdapi.Module) (ret, arg string, ok bool) {
	if len(e.platform.ProcAddress) == 0 {
		return "", "", false
	}
	f, found := m.FunctionByName(e.platform.ProcAddress[0])
	if !found || len(f.Args) == 0 {
		return "", "", false
	}
	return m.Arena.Expr(f.Type), m.Arena.Expr(f.Args[0].Type), true
}
