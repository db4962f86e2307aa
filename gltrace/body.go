package gltrace

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
	"github.com/wippyai/apigen/trace"
)

// FunctionBody adds the state-dependent capture steps in front of the
// recorded call.
func (e *Extension) FunctionBody(t *trace.Tracer, w *emit.Writer, f *stdapi.Function) {
	if ctx, ok := e.platform.ReleaseContext[f.Name]; ok {
		w.Linef("gltrace::releaseContext((uintptr_t)%s);", ctx)
	}

	switch {
	case arrayPointerFunctions[f.Name]:
		e.deferArrayPointer(t, w, f)
	case drawFunctions[f.Name]:
		e.captureUserArrays(w, f)
	}

	switch f.Name {
	case "glLockArraysEXT":
		w.Line("_checkLockArraysEXT = true;")
	case "glBegin":
		w.Brace("if (_need_user_arrays())", func() {
			w.Line(`os::log("warning: user arrays with glArrayElement not supported\n");`)
		})
	case "glBufferParameteriAPPLE":
		w.Brace("if (pname == GL_BUFFER_FLUSHING_UNMAP_APPLE && param == GL_FALSE)", func() {
			w.Line("_checkBufferFlushingUnmapAPPLE = true;")
		})
	case "glBufferStorage", "glNamedBufferStorageEXT":
		w.Brace("if (flags & GL_MAP_COHERENT_BIT)", func() {
			w.Line(`os::log("warning: coherent mappings not fully supported\n");`)
		})
	case "glBufferData", "glBufferDataARB":
		w.Brace("if (target == GL_EXTERNAL_VIRTUAL_MEMORY_BUFFER_AMD)", func() {
			w.Line(`os::log("warning: GL_AMD_pinned_memory not fully supported\n");`)
		})
	case "glLinkProgram":
		e.bindAttribLocations(t, w, f, "program", "glGetProgramiv", "GL_ACTIVE_ATTRIBUTES", "", "GLchar")
	case "glLinkProgramARB":
		e.bindAttribLocations(t, w, f, "programObj", "glGetObjectParameterivARB", "GL_OBJECT_ACTIVE_ATTRIBUTES_ARB", "ARB", "GLcharARB")
	}
	e.flushMappedBuffer(t, w, f)
	shadowBufferUpdate(w, f)

	t.FunctionBody(w, f)

	e.trackContext(w, f)
}

// deferArrayPointer writes the early exit taken when an array function is
// given a pointer into client memory. The call is made but not recorded;
// the array is captured by the next draw call.
func (e *Extension) deferArrayPointer(t *trace.Tracer, w *emit.Writer, f *stdapi.Function) {
	w.Line("GLint _array_buffer = _glGetInteger(GL_ARRAY_BUFFER_BINDING);")
	w.Brace("if (!_array_buffer)", func() {
		w.Line("gltrace::Context *ctx = gltrace::getContext();")
		w.Line("ctx->user_arrays = true;")
		if f.Name == "glVertexAttribPointerNV" {
			w.Line("ctx->user_arrays_nv = true;")
		}
		e.Invoke(t, w, f)

		if f.Name == "glInterleavedArrays" {
			w.Blank()
			e.interleavedArrays(t, w)
		}
		if c, ok := bgraChecks[f.Name]; ok {
			w.Line("static bool _checked = false;")
			w.Brace("if (!_checked && size == GL_BGRA)", func() {
				w.Line("GLint _size = 0;")
				w.Linef("_%s(%s%s, &_size);", c.getter, c.extraArg, c.pname)
				w.Brace("if (_size != GL_BGRA)", func() {
					w.Linef(`os::log("warning: %s(%s) does not return GL_BGRA; trace will be incorrect\n");`, c.getter, c.pname)
				})
				w.Line("_checked = true;")
			})
		}
		w.Line("return;")
	})
}

// EnablesArray reports whether the interleaved format enables a.
func EnablesArray(format string, a Array) bool {
	return strings.Contains(format, "_"+a.Upper[:1])
}

// interleavedArrays breaks glInterleavedArrays down into the client state
// calls it implies.
func (e *Extension) interleavedArrays(t *trace.Tracer, w *emit.Writer) {
	enable, ok := t.Function("glEnableClientState")
	if !ok || len(enable.Args) == 0 {
		return
	}
	if _, ok := t.Function("glDisableClientState"); !ok {
		return
	}
	for _, a := range Arrays {
		w.Linef("GLboolean %s = GL_FALSE;", a.Flag())
	}
	w.Blank()

	w.Brace("switch (format)", func() {
		for _, format := range InterleavedFormats {
			w.Linef("case %s:", format)
			w.Indent()
			for _, a := range Arrays {
				if EnablesArray(format, a) {
					w.Linef("%s = GL_TRUE;", a.Flag())
				}
			}
			w.Line("break;")
			w.Dedent()
		}
		w.Line("default:")
		w.Line("    return;")
	})
	w.Blank()

	writer := t.Writer()
	for _, a := range Arrays {
		w.Block("{", func() {
			w.Linef("static const trace::FunctionSig &_sig = %s ? _glEnableClientState_sig : _glDisableClientState_sig;", a.Flag())
			w.Linef("unsigned _call = %s.beginEnter(&_sig, true);", writer)
			w.Linef("%s.beginArg(0);", writer)
			t.SerializeValue(w, enable.Args[0].Type, a.Enable())
			w.Linef("%s.endArg();", writer)
			w.Linef("%s.endEnter();", writer)
			w.Linef("%s.beginLeave(_call);", writer)
			w.Linef("%s.endLeave();", writer)
		}, "}")
	}
}

// captureUserArrays writes the capture of client memory arrays in front
// of a draw call. The vertex count comes from the draw arguments and is
// raised to the locked range.
func (e *Extension) captureUserArrays(w *emit.Writer, f *stdapi.Function) {
	var args []string
	if names := f.ArgNames(); len(names) > 1 {
		args = names[1:]
	}
	w.Brace("if (_need_user_arrays())", func() {
		w.Linef("GLuint _count = _%s_count(%s);", f.Name, strings.Join(args, ", "))
		w.Brace("if (_checkLockArraysEXT)", func() {
			w.Line("GLuint _locked_count = _glGetInteger(GL_ARRAY_ELEMENT_LOCK_FIRST_EXT)")
			w.Line("                     + _glGetInteger(GL_ARRAY_ELEMENT_LOCK_COUNT_EXT);")
			w.Line("_count = std::max(_count, _locked_count);")
		})
		w.Line("_trace_user_arrays(_count);")
	})
}

// bindAttribLocations links the program, then records a glBindAttribLocation
// for every active attribute so that replay assigns the same locations.
func (e *Extension) bindAttribLocations(t *trace.Tracer, w *emit.Writer, f *stdapi.Function, program, getter, pname, suffix, charType string) {
	t.Invoke(w, f)
	bind, ok := t.Function("glBindAttribLocation" + suffix)
	if !ok {
		return
	}
	w.Line("GLint active_attributes = 0;")
	w.Linef("_%s(%s, %s, &active_attributes);", getter, program, pname)
	w.Brace("for (GLint attrib = 0; attrib < active_attributes; ++attrib)", func() {
		w.Line("GLint size = 0;")
		w.Line("GLenum type = 0;")
		w.Linef("%s name[256];", charType)
		w.Linef("_glGetActiveAttrib%s(%s, attrib, sizeof name, NULL, &size, &type, name);", suffix, program)
		w.Brace("if (name[0] != 'g' || name[1] != 'l' || name[2] != '_')", func() {
			w.Linef("GLint location = _glGetAttribLocation%s(%s, name);", suffix, program)
			w.Brace("if (location >= 0)", func() {
				t.FakeCall(w, bind, program, "location", "name")
			})
		})
	})
}

// trackContext writes the context bookkeeping of the window-system
// functions.
func (e *Extension) trackContext(w *emit.Writer, f *stdapi.Function) {
	p := e.platform
	for _, name := range p.CreateContext {
		if name == f.Name {
			w.Line("if (_result)")
			w.Line("    gltrace::createContext((uintptr_t)_result);")
		}
	}
	if ctx, ok := p.MakeCurrent[f.Name]; ok {
		w.Brace("if (_result)", func() {
			w.Linef("if (%s != NULL)", ctx)
			w.Linef("    gltrace::setContext((uintptr_t)%s);", ctx)
			w.Line("else")
			w.Line("    gltrace::clearContext();")
		})
	}
	if ctx, ok := p.DeleteContext[f.Name]; ok {
		if p.CurrentContext != "" {
			w.Brace("if ("+p.CurrentContext+"() == "+ctx+")", func() {
				w.Line("gltrace::clearContext();")
			})
		}
		w.Linef("gltrace::destroyContext((uintptr_t)%s);", ctx)
	}
}

// Invoke skips the link functions, which are called before their fake
// attribute bindings are recorded.
func (e *Extension) Invoke(t *trace.Tracer, w *emit.Writer, f *stdapi.Function) {
	if f.Name == "glLinkProgram" || f.Name == "glLinkProgramARB" {
		return
	}
	t.Invoke(w, f)
}

// Call redirects the extension queries to their overrides, implements the
// marker functions and wraps the addresses returned by the proc-address
// functions.
func (e *Extension) Call(t *trace.Tracer, w *emit.Writer, f *stdapi.Function) {
	if overrideFunctions[f.Name] {
		t.Call(w, f, "gltrace::_"+f.Name+"_override")
		return
	}
	for _, name := range markerFunctions {
		if name == f.Name {
			return
		}
	}
	if f.Name == "glGetPointerv" {
		w.Line("if (params &&")
		w.Line("    (pname == GL_DEBUG_CALLBACK_FUNCTION ||")
		w.Line("     pname == GL_DEBUG_CALLBACK_USER_PARAM)) {")
		w.Indent()
		w.Line("*params = NULL;")
		w.Dedent()
		w.Line("}")
	}
	if e.isProcAddress(f) {
		e.procAddressCall(t, w, f)
		return
	}
	t.CallSlot(w, f)
}

func (e *Extension) isProcAddress(f *stdapi.Function) bool {
	for _, name := range e.platform.ProcAddress {
		if name == f.Name {
			return true
		}
	}
	return false
}

// procAddressCall hands out the tracer's own marker functions and wraps
// every other address the driver returns.
func (e *Extension) procAddressCall(t *trace.Tracer, w *emit.Writer, f *stdapi.Function) {
	if len(f.Args) == 0 {
		t.Fail(errors.InvalidInput(errors.PhaseGenerate, []string{f.Name}, "proc-address function without a name argument"))
		t.CallSlot(w, f)
		return
	}
	m := t.Module()
	procName := f.Args[0].Name
	ret := t.Arena().Expr(f.Type)
	chained := false
	for _, name := range markerFunctions {
		if _, ok := m.FunctionByName(name); !ok {
			continue
		}
		head := "if"
		if chained {
			head = "} else if"
		}
		w.Linef(`%s (strcmp("%s", (const char *)%s) == 0) {`, head, name, procName)
		w.Indent()
		w.Linef("_result = (%s)&%s;", ret, name)
		w.Dedent()
		chained = true
	}
	if chained {
		w.Line("} else {")
	} else {
		w.Line("{")
	}
	w.Indent()
	t.CallSlot(w, f)
	w.Linef("_result = _wrapProcAddress(%s, _result);", procName)
	w.Dedent()
	w.Line("}")
}

// WrapRet records buffer mappings so that unmapping can flush them.
func (e *Extension) WrapRet(t *trace.Tracer, w *emit.Writer, f *stdapi.Function, instance string) {
	t.WrapRet(w, f, instance)

	switch f.Name {
	case "glMapBuffer", "glMapBufferARB":
		w.Line("struct buffer_mapping *mapping = get_buffer_mapping(target);")
		w.Brace("if (mapping)", func() {
			w.Linef("mapping->map = %s;", instance)
			w.Line("mapping->length = 0;")
			w.Line("_glGetBufferParameteriv(target, GL_BUFFER_SIZE, &mapping->length);")
			w.Line("mapping->write = (access != GL_READ_ONLY);")
			w.Line("mapping->explicit_flush = false;")
		})
	case "glMapBufferRange":
		w.Brace("if (access & GL_MAP_WRITE_BIT)", func() {
			w.Line("_checkBufferMapRange = true;")
		})
		w.Line("struct buffer_mapping *mapping = get_buffer_mapping(target);")
		w.Brace("if (mapping)", func() {
			w.Linef("mapping->map = %s;", instance)
			w.Line("mapping->length = length;")
			w.Line("mapping->write = access & GL_MAP_WRITE_BIT;")
			w.Line("mapping->explicit_flush = access & GL_MAP_FLUSH_EXPLICIT_BIT;")
		})
	}
}

// SerializeArg records pixel data as an offset when an unpack buffer is
// bound, and integer parameters of enum-valued state as symbolic names.
func (e *Extension) SerializeArg(t *trace.Tracer, w *emit.Writer, f *stdapi.Function, arg stdapi.Arg) {
	a := t.Arena()
	if unpackFunctions[f.Name] && isBlob(a, arg.Type) {
		w.Block("{", func() {
			w.Line("gltrace::Context *ctx = gltrace::getContext();")
			w.Line("GLint _unpack_buffer = 0;")
			w.Line("if (ctx->profile == gltrace::PROFILE_COMPAT)")
			w.Line("    _glGetIntegerv(GL_PIXEL_UNPACK_BUFFER_BINDING, &_unpack_buffer);")
			w.IfElse("_unpack_buffer", func() {
				w.Linef("%s.writePointer((uintptr_t)%s);", t.Writer(), arg.Name)
			}, func() {
				t.SerializeArgValue(w, f, arg)
			})
		}, "}")
		return
	}

	if strings.HasPrefix(f.Name, "gl") && arg.Name == "param" && isScalarParam(a, arg.Type) {
		pname, ok := pnameArg(a, f, arg)
		if !ok {
			e.log.Debug("param without preceding pname", zap.String("function", f.Name))
			t.Fail(errors.InvalidInput(errors.PhaseGenerate, []string{f.Name, arg.Name},
				"param argument must follow a GLenum pname argument"))
			t.SerializeArgValue(w, f, arg)
			return
		}
		w.IfElse("is_symbolic_pname(pname) && is_symbolic_param("+arg.Name+")", func() {
			t.SerializeValue(w, pname.Type, arg.Name)
		}, func() {
			t.SerializeArgValue(w, f, arg)
		})
		return
	}

	t.SerializeArgValue(w, f, arg)
}

func isBlob(a *stdapi.Arena, id stdapi.TypeID) bool {
	typ := a.Type(id)
	if typ != nil && typ.Kind == stdapi.KindConst {
		typ = a.Type(typ.Elem)
	}
	return typ != nil && typ.Kind == stdapi.KindBlob
}

func isScalarParam(a *stdapi.Arena, id stdapi.TypeID) bool {
	switch a.Expr(id) {
	case "GLint", "GLfloat", "GLdouble":
		return a.Kind(id) == stdapi.KindAlias
	}
	return false
}

// pnameArg returns the GLenum pname argument preceding arg.
func pnameArg(a *stdapi.Arena, f *stdapi.Function, arg stdapi.Arg) (stdapi.Arg, bool) {
	if arg.Index == 0 || arg.Index > len(f.Args) {
		return stdapi.Arg{}, false
	}
	prev := f.Args[arg.Index-1]
	if prev.Name != "pname" || a.Expr(prev.Type) != "GLenum" {
		return stdapi.Arg{}, false
	}
	return prev, true
}
