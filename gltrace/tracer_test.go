package gltrace

import (
	"strings"
	"testing"

	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/specs"
	"github.com/wippyai/apigen/stdapi"
)

func generate(t *testing.T, api string, opts ...Option) string {
	t.Helper()
	m, err := specs.Load(api)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w := emit.New()
	if err := Generate(w, m, opts...); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return flatten(w.String())
}

// flatten drops indentation so that fragments can be matched regardless
// of nesting depth.
func flatten(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, " ")
	}
	return strings.Join(lines, "\n")
}

func mustContain(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, s := range want {
		if !strings.Contains(out, flatten(s)) {
			t.Errorf("output missing:\n%s", s)
		}
	}
}

func mustNotContain(t *testing.T, out string, absent ...string) {
	t.Helper()
	for _, s := range absent {
		if strings.Contains(out, s) {
			t.Errorf("output unexpectedly contains:\n%s", s)
		}
	}
}

func TestHeader(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		"#include \"gltrace.hpp\"",
		"static bool _checkLockArraysEXT = false;",
		"static bool _checkBufferMapRange = false;",
		"struct buffer_mapping {\nvoid *map;\nGLint length;\nbool write;\nbool explicit_flush;\n};",
		"struct buffer_mapping _pixel_unpack_buffer_mapping;",
		"case GL_ARRAY_BUFFER:\nreturn & _array_buffer_mapping;",
		"case GL_VIEWPORT: return 4;",
		"static __GLXextFuncPtr _wrapProcAddress(const GLubyte * procName, __GLXextFuncPtr procPtr);",
		"// glTexCoordPointer\nif ((profile == gltrace::PROFILE_COMPAT || profile == gltrace::PROFILE_ES1)) {",
		"// glFogCoordPointer\nif (profile == gltrace::PROFILE_COMPAT) {",
	)
}

func TestArrayPointerDeferral(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		`GLint _array_buffer = _glGetInteger(GL_ARRAY_BUFFER_BINDING);
if (!_array_buffer) {
gltrace::Context *ctx = gltrace::getContext();
ctx->user_arrays = true;
_glVertexPointer(size, type, stride, pointer);
return;
}
unsigned _call = trace::localWriter.beginEnter(&_glVertexPointer_sig);`,
		`ctx->user_arrays = true;
ctx->user_arrays_nv = true;
_glVertexAttribPointerNV(index, size, type, stride, pointer);`,
		`_glColorPointer(size, type, stride, pointer);
static bool _checked = false;
if (!_checked && size == GL_BGRA) {
GLint _size = 0;
_glGetIntegerv(GL_COLOR_ARRAY_SIZE, &_size);`,
	)
}

func TestInterleavedArrays(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		"GLboolean _texture_coord = GL_FALSE;",
		"switch (format) {\ncase GL_V2F:\n_vertex = GL_TRUE;\nbreak;",
		"case GL_T2F_N3F_V3F:\n_texture_coord = GL_TRUE;\n_normal = GL_TRUE;\n_vertex = GL_TRUE;\nbreak;",
		"default:\nreturn;\n}",
		`static const trace::FunctionSig &_sig = _normal ? _glEnableClientState_sig : _glDisableClientState_sig;
unsigned _call = trace::localWriter.beginEnter(&_sig, true);
trace::localWriter.beginArg(0);
trace::localWriter.writeEnum(&_enumGLenum_sig, GL_NORMAL_ARRAY);`,
	)
}

func TestDrawCapture(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		`if (_need_user_arrays()) {
GLuint _count = _glDrawArrays_count(first, count);
if (_checkLockArraysEXT) {`,
		"_count = std::max(_count, _locked_count);\n}\n_trace_user_arrays(_count);",
		"GLuint _count = _glDrawElements_count(count, type, indices);",
		"_checkLockArraysEXT = true;",
		"os::log(\"warning: user arrays with glArrayElement not supported",
	)
}

func TestTraceUserArrays(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		"static void _trace_user_arrays(GLuint count)\n{",
		`GLint _array_buffer = _glGetInteger(GL_ARRAY_BUFFER_BINDING);
if (_array_buffer) {
unsigned _fake_call = trace::localWriter.beginEnter(&_glBindBuffer_sig);
trace::localWriter.beginArg(0);
trace::localWriter.writeEnum(&_enumGLenum_sig, GL_ARRAY_BUFFER);
trace::localWriter.endArg();
trace::localWriter.beginArg(1);
trace::localWriter.writeUInt(0);`,
		`GLint size = 0;
_glGetIntegerv(GL_VERTEX_ARRAY_SIZE, &size);
GLint type = 0;
_glGetIntegerv(GL_VERTEX_ARRAY_TYPE, &type);
GLint stride = 0;
_glGetIntegerv(GL_VERTEX_ARRAY_STRIDE, &stride);
GLvoid * pointer = 0;
_glGetPointerv(GL_VERTEX_ARRAY_POINTER, &pointer);
size_t _size = _glVertexPointer_size(size, type, stride, count);
unsigned _call = trace::localWriter.beginEnter(&_glVertexPointer_sig, true);`,
		"trace::localWriter.writeBlob((const void *)pointer, _size);",
		"size_t _size = _glEdgeFlagPointer_size(stride, count);",
		"trace::localWriter.writeUInt(_array_buffer);",
	)
}

func TestTexCoordUnits(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		`bool client_active_texture_dirty = false;
GLint client_active_texture = _glGetInteger(GL_CLIENT_ACTIVE_TEXTURE);`,
		"for (GLint unit = 0; unit < max_texture_coords; ++unit) {\nGLint texture = GL_TEXTURE0 + unit;\n_glClientActiveTexture(texture);",
		`if (texture != client_active_texture || client_active_texture_dirty) {
client_active_texture_dirty = true;
unsigned _fake_call = trace::localWriter.beginEnter(&_glClientActiveTexture_sig);
trace::localWriter.beginArg(0);
trace::localWriter.writeEnum(&_enumGLenum_sig, texture);`,
		`_glClientActiveTexture(client_active_texture);
if (client_active_texture_dirty) {
unsigned _fake_call = trace::localWriter.beginEnter(&_glClientActiveTexture_sig);
trace::localWriter.beginArg(0);
trace::localWriter.writeEnum(&_enumGLenum_sig, client_active_texture);`,
	)
}

func TestVertexAttribCapture(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		"if (ctx->profile != gltrace::PROFILE_ES1) {\nvertex_attrib _vertex_attrib = _get_vertex_attrib();",
		`_glGetVertexAttribiv(index, GL_VERTEX_ATTRIB_ARRAY_ENABLED, &_enabled);
if (_enabled) {
GLint _binding = 0;
_glGetVertexAttribiv(index, GL_VERTEX_ATTRIB_ARRAY_BUFFER_BINDING, &_binding);`,
		"GLint normalized = 0;\n_glGetVertexAttribiv(index, GL_VERTEX_ATTRIB_ARRAY_NORMALIZED, &normalized);",
		"size_t _size = _glVertexAttribPointer_size(size, type, normalized, stride, count);",
		"GLint _max_vertex_attribs = 16;",
		"_glGetVertexAttribivNV(index, GL_ATTRIB_ARRAY_SIZE_NV, &size);",
		"_glGetVertexAttribPointervNV(index, GL_ATTRIB_ARRAY_POINTER_NV, &pointer);",
	)
}

func TestBufferMappings(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		`GLint access = 0;
_glGetBufferParameteriv(target, GL_BUFFER_ACCESS, &access);
if (access != GL_READ_ONLY) {`,
		`if (_checkBufferMapRange) {
_glGetBufferParameteriv(target, GL_BUFFER_MAP_LENGTH, &length);`,
		`struct buffer_mapping *mapping = get_buffer_mapping(target);
if (mapping) {
length = mapping->length;
flush = flush && !mapping->explicit_flush;
} else {
length = 0;
flush = false;
}`,
		`if (flush && length > 0) {
unsigned _call = trace::localWriter.beginEnter(&trace::memcpy_sig, true);
trace::localWriter.beginArg(0);
trace::localWriter.writePointer((uintptr_t)map);`,
		"trace::localWriter.writeBlob((const char *)map + offset, length);",
		"if (access & GL_MAP_WRITE_BIT) {\n_checkBufferMapRange = true;\n}",
		"mapping->map = _result;\nmapping->length = length;",
		"mapping->write = (access != GL_READ_ONLY);",
		"_checkBufferFlushingUnmapAPPLE = true;",
		"buf.bufferData(size, data);",
		"buf.bufferSubData(offset, size, data);",
		"ctx->buffers.erase(buffer[i]);",
	)
}

func TestLinkProgram(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		`_glLinkProgram(program);
GLint active_attributes = 0;
_glGetProgramiv(program, GL_ACTIVE_ATTRIBUTES, &active_attributes);`,
		"if (name[0] != 'g' || name[1] != 'l' || name[2] != '_') {",
		`if (location >= 0) {
unsigned _fake_call = trace::localWriter.beginEnter(&_glBindAttribLocation_sig);`,
	)
	// once on the untraced path, once before the fake bindings
	if n := strings.Count(out, "_glLinkProgram(program);"); n != 2 {
		t.Errorf("glLinkProgram invoked %d times, want 2", n)
	}
}

func TestSymbolicParams(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		`if (is_symbolic_pname(pname) && is_symbolic_param(param)) {
trace::localWriter.writeEnum(&_enumGLenum_sig, param);
} else {
trace::localWriter.writeSInt(param);
}`,
		`} else {
trace::localWriter.writeFloat(param);
}`,
		"case GL_TEXTURE_MIN_FILTER:",
	)
}

func TestUnpackBuffer(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		`_glGetIntegerv(GL_PIXEL_UNPACK_BUFFER_BINDING, &_unpack_buffer);
if (_unpack_buffer) {
trace::localWriter.writePointer((uintptr_t)pixels);
} else {
trace::localWriter.writeBlob(pixels, _glTexImage2D_size(format, type, width, height));
}`,
	)
}

func TestQueries(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		"_result = gltrace::_glGetString_override(name);",
		"gltrace::_glGetIntegerv_override(pname, params);",
		"pname == GL_DEBUG_CALLBACK_USER_PARAM)) {\n*params = NULL;\n}",
	)
	mustNotContain(t, out, "_glStringMarkerGREMEDY(len, string);")
}

func TestGLXContexts(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		"if (_result)\ngltrace::createContext((uintptr_t)_result);",
		`if (_result) {
if (ctx != NULL)
gltrace::setContext((uintptr_t)ctx);
else
gltrace::clearContext();
}`,
		"gltrace::releaseContext((uintptr_t)ctx);",
	)
}

func TestGLXProcAddress(t *testing.T) {
	out := generate(t, "glx", WithPlatform(GLX))

	mustContain(t, out,
		`if (strcmp("glStringMarkerGREMEDY", (const char *)procName) == 0) {
_result = (__GLXextFuncPtr)&glStringMarkerGREMEDY;
} else {
_result = _glXGetProcAddress(procName);
_result = _wrapProcAddress(procName, _result);
}`,
		"static __GLXextFuncPtr _wrapProcAddress(const GLubyte * procName, __GLXextFuncPtr procPtr) {",
		`if (!procPtr) {
if (strcmp("glDebugMessageInsert", (const char *)procName) == 0) {
return (__GLXextFuncPtr)&glDebugMessageInsert;
} else {
return NULL;
}
}`,
		`if (strcmp("glDrawArrays", (const char *)procName) == 0) {
_glDrawArrays = (PFN_GLDRAWARRAYS)procPtr;
return (__GLXextFuncPtr)&glDrawArrays;
}`,
		`os::log("warning: unknown function \"%s\"\n", (const char *)procName);
return procPtr;`,
	)
}

func TestWGL(t *testing.T) {
	out := generate(t, "wgl", WithPlatform(WGL))

	mustContain(t, out,
		`if (_wglGetCurrentContext() == hglrc) {
gltrace::clearContext();
}
gltrace::destroyContext((uintptr_t)hglrc);`,
		"if (hglrc != NULL)\ngltrace::setContext((uintptr_t)hglrc);",
		"_result = _wrapProcAddress(lpszProc, _result);",
		"static PROC _wrapProcAddress(LPCSTR procName, PROC procPtr) {",
	)
	mustNotContain(t, out, "gltrace::releaseContext")
}

func TestNoPlatform(t *testing.T) {
	out := generate(t, "gl")

	mustNotContain(t, out, "_wrapProcAddress", "gltrace::createContext")
	mustContain(t, out, "static void _trace_user_arrays(GLuint count)")
}

func TestParamWithoutPname(t *testing.T) {
	m, err := specs.Load("gl")
	if err != nil {
		t.Fatal(err)
	}
	a := m.Arena
	glint, _ := a.Lookup("GLint")
	glenum, _ := a.Lookup("GLenum")
	m.AddFunctions(a.NewFunction(stdapi.Void, "glFogiNV", []stdapi.Arg{
		stdapi.In(glenum, "target"),
		stdapi.In(glint, "param"),
	}))

	err = Generate(emit.New(), m)
	if !errors.Match(err, errors.PhaseGenerate, errors.KindInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestMissingArrayFunction(t *testing.T) {
	a := stdapi.NewArena()
	types := specs.NewGLTypes(a)
	m := stdapi.NewModule(a, "tiny").AddFunctions(
		a.NewFunction(stdapi.Void, "glEnable", []stdapi.Arg{stdapi.In(types.Enum, "cap")}),
	)

	err := Generate(emit.New(), m)
	if !errors.Match(err, errors.PhaseGenerate, errors.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
