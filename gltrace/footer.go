package gltrace

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/apigen/dispatch"
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
	"github.com/wippyai/apigen/trace"
)

// Footer writes _trace_user_arrays and, for platforms with a proc-address
// function, _wrapProcAddress.
func (e *Extension) Footer(t *trace.Tracer, w *emit.Writer, m *stdapi.Module) {
	e.Base.Footer(t, w, m)
	e.traceUserArrays(t, w)
	e.wrapProcAddress(t, w, m)
}

// traceUserArrays writes the capture of every enabled array reading client
// memory, as fake calls of the array functions whose pointer argument is
// replaced by the count vertices it addresses.
func (e *Extension) traceUserArrays(t *trace.Tracer, w *emit.Writer) {
	w.Line("static void _trace_user_arrays(GLuint count)")
	w.Line("{")
	w.Indent()
	w.Line("gltrace::Context *ctx = gltrace::getContext();")
	w.Blank()

	// The arrays are read from client memory, not from the array buffer.
	w.Line("GLint _array_buffer = _glGetInteger(GL_ARRAY_BUFFER_BINDING);")
	w.Brace("if (_array_buffer)", func() {
		e.fakeCall(t, w, "glBindBuffer", "GL_ARRAY_BUFFER", "0")
	})
	w.Blank()

	captured := 0
	for _, a := range Arrays {
		f, ok := t.Function(a.Pointer())
		if !ok {
			continue
		}
		e.traceArray(t, w, a, f)
		captured++
	}

	w.Brace("if (ctx->profile != gltrace::PROFILE_ES1)", func() {
		w.Line("vertex_attrib _vertex_attrib = _get_vertex_attrib();")
		w.Blank()
		for _, suffix := range []string{"", "NV"} {
			f, ok := t.Function("glVertexAttribPointer" + suffix)
			if !ok {
				continue
			}
			e.traceVertexAttribArray(t, w, f, suffix)
			captured++
		}
	})
	w.Blank()

	w.Brace("if (_array_buffer)", func() {
		e.fakeCall(t, w, "glBindBuffer", "GL_ARRAY_BUFFER", "_array_buffer")
	})
	w.Dedent()
	w.Line("}")
	w.Blank()

	e.log.Debug("user array capture generated", zap.Int("arrays", captured))
}

func (e *Extension) traceArray(t *trace.Tracer, w *emit.Writer, a Array, f *stdapi.Function) {
	arena := t.Arena()
	w.Line("// " + f.Prototype(arena, ""))
	w.Brace("if ("+profileCheck(a, "ctx->profile")+")", func() {
		if a.IsTexCoord() {
			w.Line("bool client_active_texture_dirty = false;")
		}
		texUnitLoopBegin(w, a)
		w.Brace("if (_glIsEnabled("+a.Enable()+"))", func() {
			w.Linef("GLint _binding = _glGetInteger(%s);", a.Binding())
			w.Brace("if (!_binding)", func() {
				for _, arg := range f.Args {
					e.queryArg(t, w, StateGetter, arg, "", "GL_"+a.Upper+"_ARRAY_"+strings.ToUpper(arg.Name))
				}
				w.Linef("size_t _size = _%s_size(%s, count);", f.Name, joinNames(f.Args[:max(len(f.Args)-1, 0)]))
				if a.IsTexCoord() {
					w.Brace("if (texture != client_active_texture || client_active_texture_dirty)", func() {
						w.Line("client_active_texture_dirty = true;")
						e.fakeCall(t, w, "glClientActiveTexture", "texture")
					})
				}
				e.arrayCall(t, w, f)
			})
		})
		texUnitLoopEnd(w, a)
		if a.IsTexCoord() {
			w.Brace("if (client_active_texture_dirty)", func() {
				e.fakeCall(t, w, "glClientActiveTexture", "client_active_texture")
			})
		}
	})
	w.Blank()
}

// traceVertexAttribArray captures the generic attribute arrays. The NV
// variant aliases the legacy arrays, has a fixed number of attributes and
// cannot source them from buffers.
func (e *Extension) traceVertexAttribArray(t *trace.Tracer, w *emit.Writer, f *stdapi.Function, suffix string) {
	upper := ""
	if suffix != "" {
		upper = "_" + suffix
	}
	getter := VertexAttribGetter(suffix)
	w.Line("// " + f.Prototype(t.Arena(), ""))
	w.Brace("if (_vertex_attrib == VERTEX_ATTRIB"+upper+")", func() {
		if suffix == "NV" {
			w.Linef("GLint _max_vertex_attribs = %d;", MaxVertexAttribsNV)
		} else {
			w.Line("GLint _max_vertex_attribs = _glGetInteger(GL_MAX_VERTEX_ATTRIBS);")
		}
		w.Brace("for (GLint index = 0; index < _max_vertex_attribs; ++index)", func() {
			w.Line("GLint _enabled = 0;")
			if suffix == "NV" {
				w.Line("_glGetIntegerv(GL_VERTEX_ATTRIB_ARRAY0_NV + index, &_enabled);")
			} else {
				w.Linef("_glGetVertexAttribiv%s(index, GL_VERTEX_ATTRIB_ARRAY_ENABLED%s, &_enabled);", suffix, upper)
			}
			w.Brace("if (_enabled)", func() {
				w.Line("GLint _binding = 0;")
				if suffix != "NV" {
					w.Linef("_glGetVertexAttribiv%s(index, GL_VERTEX_ATTRIB_ARRAY_BUFFER_BINDING%s, &_binding);", suffix, upper)
				}
				w.Brace("if (!_binding)", func() {
					var args []stdapi.Arg
					if len(f.Args) > 0 {
						args = f.Args[1:]
					}
					for _, arg := range args {
						pname := "GL_VERTEX_ATTRIB_ARRAY_" + strings.ToUpper(arg.Name) + upper
						if suffix == "NV" {
							pname = "GL_ATTRIB_ARRAY_" + strings.ToUpper(arg.Name) + upper
						}
						e.queryArg(t, w, getter, arg, "index, ", pname)
					}
					w.Linef("size_t _size = _%s_size(%s, count);", f.Name, joinNames(args[:max(len(args)-1, 0)]))
					e.arrayCall(t, w, f)
				})
			})
		})
	})
	w.Blank()
}

// queryArg declares a variable named after arg holding the current state
// pname.
func (e *Extension) queryArg(t *trace.Tracer, w *emit.Writer, g TypeGetter, arg stdapi.Arg, prefix, pname string) {
	fn, typ, err := g.Get(t.Arena(), arg.Type)
	if err != nil {
		t.Fail(err)
		return
	}
	w.Linef("%s %s = 0;", typ, arg.Name)
	w.Linef("_%s(%s%s, &%s);", fn, prefix, pname, arg.Name)
}

// arrayCall records the fake array call, with the pointer argument
// replaced by the _size bytes it addresses.
func (e *Extension) arrayCall(t *trace.Tracer, w *emit.Writer, f *stdapi.Function) {
	writer := t.Writer()
	w.Linef("unsigned _call = %s.beginEnter(&_%s_sig, true);", writer, f.Name)
	for _, arg := range f.Args {
		w.Linef("%s.beginArg(%d);", writer, arg.Index)
		if arg.Name == "pointer" {
			w.Linef("%s.writeBlob((const void *)%s, _size);", writer, arg.Name)
		} else {
			t.SerializeValue(w, arg.Type, arg.Name)
		}
		w.Linef("%s.endArg();", writer)
	}
	w.Linef("%s.endEnter();", writer)
	w.Linef("%s.beginLeave(_call);", writer)
	w.Linef("%s.endLeave();", writer)
}

func (e *Extension) fakeCall(t *trace.Tracer, w *emit.Writer, name string, args ...string) {
	if f, ok := t.Function(name); ok {
		t.FakeCall(w, f, args...)
	}
}

// wrapProcAddress writes _wrapProcAddress. It substitutes the wrapper of
// every known function for the driver's address, and hands out the
// wrappers of the debug functions the driver lacks.
func (e *Extension) wrapProcAddress(t *trace.Tracer, w *emit.Writer, m *stdapi.Module) {
	ret, arg, ok := e.procAddressSignature(m)
	if !ok {
		return
	}
	w.Brace("static "+ret+" _wrapProcAddress("+arg+" procName, "+ret+" procPtr)", func() {
		w.Brace("if (!procPtr)", func() {
			chained := false
			for _, name := range debugFunctions {
				if _, ok := m.FunctionByName(name); !ok {
					continue
				}
				head := "if"
				if chained {
					head = "} else if"
				}
				w.Linef(`%s (strcmp("%s", (const char *)procName) == 0) {`, head, name)
				w.Indent()
				w.Linef("return (%s)&%s;", ret, name)
				w.Dedent()
				chained = true
			}
			if chained {
				w.Line("} else {")
			} else {
				w.Line("{")
			}
			w.Indent()
			w.Line("return NULL;")
			w.Dedent()
			w.Line("}")
		})
		for _, f := range m.Functions {
			w.Brace(`if (strcmp("`+f.Name+`", (const char *)procName) == 0)`, func() {
				w.Linef("%s = (%s)procPtr;", dispatch.PointerValue(f), dispatch.PointerType(f))
				w.Linef("return (%s)&%s;", ret, f.Name)
			})
		}
		w.Line(`os::log("warning: unknown function \"%s\"\n", (const char *)procName);`)
		w.Line("return procPtr;")
	})
	w.Blank()
}

func joinNames(args []stdapi.Arg) string {
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = arg.Name
	}
	return strings.Join(names, ", ")
}
