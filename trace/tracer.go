package trace

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/apigen/dispatch"
	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
)

// Tracer generates the tracing layer of a module: signature tables, one
// wrapper per function that records the call around the real invocation,
// and wrapper classes for the module's interfaces.
//
// A Tracer holds per-run state and must not be used concurrently.
type Tracer struct {
	ext          Extension
	isPublic     func(*stdapi.Function) bool
	log          *zap.Logger
	writer       string
	dummyMethods int

	module *stdapi.Module
	arena  *stdapi.Arena
	iface  *stdapi.Type
	nextID int
	errs   []error
}

// New creates a tracer.
func New(opts ...Option) *Tracer {
	t := &Tracer{
		ext:          Base{},
		log:          Logger(),
		writer:       DefaultWriter,
		dummyMethods: DefaultDummyMethods,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Module returns the module being generated, or nil outside of Generate.
func (t *Tracer) Module() *stdapi.Module {
	return t.module
}

// Arena returns the arena of the module being generated.
func (t *Tracer) Arena() *stdapi.Arena {
	return t.arena
}

// Writer returns the C++ expression of the trace writer.
func (t *Tracer) Writer() string {
	return t.writer
}

// Function looks up a function of the module being generated. A missing
// function is recorded as a generation error.
func (t *Tracer) Function(name string) (*stdapi.Function, bool) {
	f, ok := t.module.FunctionByName(name)
	if !ok {
		t.Fail(errors.NotFound(errors.PhaseGenerate, "function", name))
	}
	return f, ok
}

// Fail records a generation error. Generate returns every recorded error
// combined once the module is written.
func (t *Tracer) Fail(err error) {
	t.errs = append(t.errs, err)
}

func (t *Tracer) signatureID() int {
	id := t.nextID
	t.nextID++
	return id
}

// Generate writes the complete tracing source for m.
func (t *Tracer) Generate(w *emit.Writer, m *stdapi.Module) error {
	if err := m.Validate(); err != nil {
		return err
	}
	t.module = m
	t.arena = m.Arena
	t.iface = nil
	t.nextID = FirstSignatureID
	t.errs = nil
	defer func() {
		t.module = nil
		t.iface = nil
	}()

	t.ext.Header(t, w, m)
	w.Lines(m.Headers...)
	w.Blank()

	sigs := &signatures{a: t.arena, w: w}
	for _, typ := range m.AllTypes() {
		sigs.visit(typ.ID)
	}
	w.Blank()

	t.interfaces(w, m)

	t.iface = nil
	for _, f := range m.Functions {
		t.FunctionDecl(w, f)
	}
	for _, f := range m.Functions {
		t.FunctionImpl(w, f)
	}
	w.Blank()

	t.ext.Footer(t, w, m)

	t.log.Debug("trace module generated",
		zap.String("module", m.Name),
		zap.Int("functions", len(m.Functions)),
		zap.Int("interfaces", len(m.AllInterfaces())),
		zap.Int("signatures", t.nextID-FirstSignatureID),
		zap.Int("errors", len(t.errs)))
	return errors.Combine(t.errs...)
}

// Header writes the default prologue: alloca, the trace writer API and
// the map of live interface wrappers.
func (t *Tracer) Header(w *emit.Writer, _ *stdapi.Module) {
	w.Lines(
		"#ifdef _WIN32",
		"#  include <malloc.h> // alloca",
		"#  ifndef alloca",
		"#    define alloca _alloca",
		"#  endif",
		"#else",
		"#  include <alloca.h> // alloca",
		"#endif",
	)
	w.Blank()
	w.Line(`#include "trace.hpp"`)
	w.Blank()
	w.Line("static std::map<void *, void *> g_WrappedObjects;")
}

// FunctionDecl writes the argument name table and the signature of f.
// Internal functions are never recorded and get neither.
func (t *Tracer) FunctionDecl(w *emit.Writer, f *stdapi.Function) {
	if f.Internal {
		return
	}
	if len(f.Args) > 0 {
		w.Linef("static const char * _%s_args[%d] = {%s};", f.Name, len(f.Args), emit.QuoteList(f.ArgNames()))
	} else {
		w.Linef("static const char ** _%s_args = NULL;", f.Name)
	}
	w.Linef("static const trace::FunctionSig _%s_sig = {%d, %q, %d, _%s_args};",
		f.Name, t.signatureID(), f.Name, len(f.Args), f.Name)
	w.Blank()
}

// IsPublic reports whether the wrapper of f is exported with PUBLIC
// visibility.
func (t *Tracer) IsPublic(f *stdapi.Function) bool {
	return t.isPublic == nil || t.isPublic(f)
}

// FunctionImpl writes the exported wrapper of f. When tracing is disabled
// the wrapper only forwards the call.
func (t *Tracer) FunctionImpl(w *emit.Writer, f *stdapi.Function) {
	visibility := "PUBLIC"
	if !t.IsPublic(f) {
		visibility = "PRIVATE"
	}
	isVoid := t.arena.Kind(f.Type) == stdapi.KindVoid
	w.Line(`extern "C" ` + visibility)
	w.Brace(f.Prototype(t.arena, ""), func() {
		if !isVoid {
			w.Linef("%s _result;", t.arena.Expr(f.Type))
		}
		w.Brace("if (!trace::isTracingEnabled())", func() {
			t.ext.Call(t, w, f)
			if isVoid {
				w.Line("return;")
			} else {
				w.Line("return _result;")
			}
		})
		t.ext.FunctionBody(t, w, f)
		if !isVoid {
			w.Line("return _result;")
		}
	})
	w.Blank()
}

// FunctionBody writes the traced call: enter record with the unwrapped and
// serialized inputs, the invocation, then the leave record with outputs and
// return value.
func (t *Tracer) FunctionBody(w *emit.Writer, f *stdapi.Function) {
	if f.Internal {
		t.ext.Invoke(t, w, f)
		return
	}
	w.Linef("unsigned _call = %s.beginEnter(&_%s_sig);", t.writer, f.Name)
	for _, arg := range f.InArgs() {
		t.unwrapValue(w, arg.Type, arg.Name)
	}
	for _, arg := range f.InArgs() {
		t.SerializeArg(w, f, arg)
	}
	w.Linef("%s.endEnter();", t.writer)
	t.ext.Invoke(t, w, f)
	t.leave(w, f, "_call")
	w.Linef("%s.endLeave();", t.writer)
}

// leave writes the leave record shared by functions and methods.
func (t *Tracer) leave(w *emit.Writer, f *stdapi.Function, call string) {
	isVoid := t.arena.Kind(f.Type) == stdapi.KindVoid
	w.Linef("%s.beginLeave(%s);", t.writer, call)
	w.Brace("if ("+t.success(f)+")", func() {
		for _, arg := range f.OutArgs() {
			t.SerializeArg(w, f, arg)
			t.wrapArg(w, f, arg)
		}
	})
	if !isVoid {
		w.Linef("%s.beginReturn();", t.writer)
		t.SerializeValue(w, f.Type, "_result")
		w.Linef("%s.endReturn();", t.writer)
		t.ext.WrapRet(t, w, f, "_result")
	}
}

// success returns the C condition under which output arguments are valid.
func (t *Tracer) success(f *stdapi.Function) string {
	if t.arena.Kind(f.Type) != stdapi.KindVoid && t.arena.Expr(f.Type) == "HRESULT" {
		return "SUCCEEDED(_result)"
	}
	return "true"
}

// Invoke writes the real call made on the traced path.
func (t *Tracer) Invoke(w *emit.Writer, f *stdapi.Function) {
	t.ext.Call(t, w, f)
}

// Call writes a call to callee with f's arguments, storing the result in
// _result for non-void functions.
func (t *Tracer) Call(w *emit.Writer, f *stdapi.Function, callee string) {
	result := ""
	if t.arena.Kind(f.Type) != stdapi.KindVoid {
		result = "_result = "
	}
	w.Linef("%s%s(%s);", result, callee, strings.Join(f.ArgNames(), ", "))
}

// CallSlot writes a call through the dispatch slot of f.
func (t *Tracer) CallSlot(w *emit.Writer, f *stdapi.Function) {
	t.Call(w, f, dispatch.PointerValue(f))
}

// SerializeArg writes one argument record.
func (t *Tracer) SerializeArg(w *emit.Writer, f *stdapi.Function, arg stdapi.Arg) {
	w.Linef("%s.beginArg(%d);", t.writer, arg.Index)
	t.ext.SerializeArg(t, w, f, arg)
	w.Linef("%s.endArg();", t.writer)
}

// SerializeArgValue writes the value of arg without the record around it.
func (t *Tracer) SerializeArgValue(w *emit.Writer, _ *stdapi.Function, arg stdapi.Arg) {
	t.SerializeValue(w, arg.Type, arg.Name)
}

// SerializeValue writes the statements recording instance as a value of
// type id.
func (t *Tracer) SerializeValue(w *emit.Writer, id stdapi.TypeID, instance string) {
	s := &serializer{t: t, w: w}
	s.visit(id, instance)
}

// WrapRet wraps interface pointers held by the return value.
func (t *Tracer) WrapRet(w *emit.Writer, f *stdapi.Function, instance string) {
	t.wrapValue(w, f.Type, instance)
}

// NeedsWrapping reports whether values of type id hold interface pointers.
func (t *Tracer) NeedsWrapping(id stdapi.TypeID) bool {
	return stdapi.ContainsInterface(t.arena, id)
}

func (t *Tracer) wrapValue(w *emit.Writer, id stdapi.TypeID, instance string) {
	if t.NeedsWrapping(id) {
		(&wrapper{t: t, w: w}).visit(id, instance)
	}
}

func (t *Tracer) unwrapValue(w *emit.Writer, id stdapi.TypeID, instance string) {
	if t.NeedsWrapping(id) {
		(&wrapper{t: t, w: w, unwrap: true}).visit(id, instance)
	}
}

// wrapArg wraps an output argument. An object returned through a void or
// interface double pointer next to an interface id input is wrapped by
// that id at run time.
func (t *Tracer) wrapArg(w *emit.Writer, f *stdapi.Function, arg stdapi.Arg) {
	if riid, ok := iidArg(t.arena, f); ok && isObjectOut(t.arena, arg) {
		t.wrapIID(w, f, riid, arg)
		return
	}
	t.wrapValue(w, arg.Type, arg.Name)
}

// iidArg returns the last input argument of type REFIID.
func iidArg(a *stdapi.Arena, f *stdapi.Function) (stdapi.Arg, bool) {
	var riid stdapi.Arg
	found := false
	for _, arg := range f.InArgs() {
		if a.Expr(arg.Type) == "REFIID" {
			riid, found = arg, true
		}
	}
	return riid, found
}

// isObjectOut reports whether arg points to an interface or void pointer.
func isObjectOut(a *stdapi.Arena, arg stdapi.Arg) bool {
	p := a.Type(arg.Type)
	if p == nil || p.Kind != stdapi.KindPointer {
		return false
	}
	inner := stdapi.Resolve(a, p.Elem)
	return inner != nil && inner.Kind == stdapi.KindPointer && isObjectPointer(a, inner)
}

// FakeCall records a call to f with the given argument expressions that
// never happened in the application, so that replay reproduces state the
// application established by other means.
func (t *Tracer) FakeCall(w *emit.Writer, f *stdapi.Function, args ...string) {
	w.Linef("unsigned _fake_call = %s.beginEnter(&_%s_sig);", t.writer, f.Name)
	for i, arg := range f.Args {
		if i >= len(args) {
			break
		}
		if arg.Output {
			t.Fail(errors.InvalidInput(errors.PhaseGenerate, []string{f.Name, arg.Name}, "fake call with output argument"))
			continue
		}
		w.Linef("%s.beginArg(%d);", t.writer, arg.Index)
		t.SerializeValue(w, arg.Type, args[i])
		w.Linef("%s.endArg();", t.writer)
	}
	w.Linef("%s.endEnter();", t.writer)
	w.Linef("%s.beginLeave(_fake_call);", t.writer)
	w.Linef("%s.endLeave();", t.writer)
}

// EmitMemcpy records a synthetic memcpy of length bytes from src to dest,
// used for memory the application wrote behind the API's back.
func (t *Tracer) EmitMemcpy(w *emit.Writer, dest, src, length string) {
	w.Linef("unsigned _call = %s.beginEnter(&trace::memcpy_sig, true);", t.writer)
	w.Linef("%s.beginArg(0);", t.writer)
	w.Linef("%s.writePointer((uintptr_t)%s);", t.writer, dest)
	w.Linef("%s.endArg();", t.writer)
	w.Linef("%s.beginArg(1);", t.writer)
	w.Linef("%s.writeBlob(%s, %s);", t.writer, src, length)
	w.Linef("%s.endArg();", t.writer)
	w.Linef("%s.beginArg(2);", t.writer)
	w.Linef("%s.writeUInt(%s);", t.writer, length)
	w.Linef("%s.endArg();", t.writer)
	w.Linef("%s.endEnter();", t.writer)
	w.Linef("%s.beginLeave(_call);", t.writer)
	w.Linef("%s.endLeave();", t.writer)
}
