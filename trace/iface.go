package trace

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/internal/graph"
	"github.com/wippyai/apigen/stdapi"
)

// member is a data member of a wrapper class and its initializer.
type member struct {
	typ, name, value string
}

func (t *Tracer) wrapperMembers(iface *stdapi.Type) []member {
	return []member{
		{"DWORD", "m_dwMagic", WrapperMagic},
		{iface.Name + " *", "m_pInstance", "pInstance"},
		{"void *", "m_pVtbl", "*(void **)pInstance"},
		{"UINT", "m_NumMethods", strconv.Itoa(len(t.arena.BaseMethods(iface.ID)))},
	}
}

// interfaces writes the wrapper class declarations, the run-time IID
// wrapping helpers and the class implementations.
func (t *Tracer) interfaces(w *emit.Writer, m *stdapi.Module) {
	ifaces := m.AllInterfaces()
	if len(ifaces) == 0 {
		return
	}
	// Every class is declared before any is implemented, so interfaces
	// that refer to each other need no forward declarations.
	g := graph.Build(m)
	for _, group := range g.Cycles() {
		t.log.Debug("cyclic interface group", zap.Strings("interfaces", g.Names(group)))
	}
	for _, iface := range ifaces {
		t.declareWrapper(w, iface)
	}
	t.iidWrapper(w, ifaces)
	for _, iface := range ifaces {
		t.implementWrapper(w, iface)
	}
	w.Blank()
	t.log.Debug("interface wrappers generated", zap.Int("interfaces", len(ifaces)))
}

func (t *Tracer) declareWrapper(w *emit.Writer, iface *stdapi.Type) {
	name := WrapperName(iface)
	w.Linef("class %s : public %s", name, iface.Name)
	w.Line("{")
	w.Line("private:")
	w.Indent()
	w.Linef("%s(%s * pInstance);", name, iface.Name)
	w.Linef("virtual ~%s();", name)
	w.Dedent()
	w.Line("public:")
	w.Indent()
	w.Linef("static %s* _Create(const char *functionName, %s * pInstance);", name, iface.Name)
	w.Blank()
	for _, m := range t.arena.Methods(iface.ID) {
		w.Line(m.Prototype(t.arena, "") + ";")
	}
	w.Blank()
	for _, m := range t.wrapperMembers(iface) {
		w.Linef("%s %s;", m.typ, m.name)
	}
	for i := 0; i < t.dummyMethods; i++ {
		w.Brace("virtual void _dummy"+strconv.Itoa(i)+"(void) const", func() {
			w.Linef(`os::log("error: %s: unexpected virtual method\n");`, iface.Name)
			w.Line("os::abort();")
		})
	}
	w.Dedent()
	w.Line("};")
	w.Blank()
}

// iidWrapper writes warnIID and wrapIID. wrapIID wraps an object obtained
// by interface id; ids of interfaces outside the module are only reported.
func (t *Tracer) iidWrapper(w *emit.Writer, ifaces []*stdapi.Type) {
	w.Line("static void")
	w.Brace("warnIID(const char *functionName, REFIID riid, const char *reason)", func() {
		w.Line(`os::log("warning: %s: %s IID {0x%08lX,0x%04X,0x%04X,{0x%02X,0x%02X,0x%02X,0x%02X,0x%02X,0x%02X,0x%02X,0x%02X}}\n",`)
		w.Line("        functionName, reason,")
		w.Line("        riid.Data1, riid.Data2, riid.Data3,")
		w.Line("        riid.Data4[0], riid.Data4[1], riid.Data4[2], riid.Data4[3], riid.Data4[4], riid.Data4[5], riid.Data4[6], riid.Data4[7]);")
	})
	w.Blank()
	w.Line("static void")
	w.Brace("wrapIID(const char *functionName, REFIID riid, void * * ppvObj)", func() {
		w.Brace("if (!ppvObj || !*ppvObj)", func() {
			w.Line("return;")
		})
		for i, iface := range ifaces {
			head := "if (riid == IID_" + iface.Name + ") {"
			if i > 0 {
				head = "} else " + head
			}
			w.Line(head)
			w.Indent()
			w.Linef("*ppvObj = %s::_Create(functionName, (%s *) *ppvObj);", WrapperName(iface), iface.Name)
			w.Dedent()
		}
		w.Line("} else {")
		w.Indent()
		w.Line(`warnIID(functionName, riid, "unknown");`)
		w.Dedent()
		w.Line("}")
	})
	w.Blank()
}

func (t *Tracer) implementWrapper(w *emit.Writer, iface *stdapi.Type) {
	t.iface = iface
	name := WrapperName(iface)
	numMethods := len(t.arena.BaseMethods(iface.ID))

	w.Brace(name+"::"+name+"("+iface.Name+" * pInstance)", func() {
		for _, m := range t.wrapperMembers(iface) {
			w.Linef("%s = %s;", m.name, m.value)
		}
	})
	w.Blank()

	w.Brace(name+" *"+name+"::_Create(const char *functionName, "+iface.Name+" * pInstance)", func() {
		w.Line("std::map<void *, void *>::const_iterator it = g_WrappedObjects.find(pInstance);")
		w.Brace("if (it != g_WrappedObjects.end())", func() {
			w.Linef("%s *pWrapper = (%s *)it->second;", name, name)
			w.Line("assert(pWrapper);")
			w.Linef("assert(pWrapper->m_dwMagic == %s);", WrapperMagic)
			w.Line("assert(pWrapper->m_pInstance == pInstance);")
			w.Line("if (pWrapper->m_pVtbl == *(void **)pInstance &&")
			w.Linef("    pWrapper->m_NumMethods >= %d) {", numMethods)
			w.Indent()
			w.Line("return pWrapper;")
			w.Dedent()
			w.Line("}")
		})
		w.Linef("%s *pWrapper = new %s(pInstance);", name, name)
		w.Line("g_WrappedObjects[pInstance] = pWrapper;")
		w.Line("return pWrapper;")
	})
	w.Blank()

	w.Brace(name+"::~"+name+"()", func() {
		w.Line("g_WrappedObjects.erase(m_pInstance);")
	})
	w.Blank()

	for _, ref := range t.arena.BaseMethods(iface.ID) {
		t.implementMethod(w, iface, t.arena.Type(ref.Owner), ref.Method)
	}
	w.Blank()
}

func (t *Tracer) implementMethod(w *emit.Writer, iface, base *stdapi.Type, m *stdapi.Method) {
	a := t.arena
	f := &m.Function
	isVoid := a.Kind(f.Type) == stdapi.KindVoid
	qualified := iface.Name + "::" + m.Name
	w.Brace(m.Prototype(a, WrapperName(iface)+"::"+m.Name), func() {
		if !isVoid {
			w.Linef("%s _result;", a.Expr(f.Type))
		}
		names := append([]string{"this"}, f.ArgNames()...)
		w.Linef("static const char * _args[%d] = {%s};", len(names), emit.QuoteList(names))
		w.Linef("static const trace::FunctionSig _sig = {%d, %q, %d, _args};", t.signatureID(), qualified, len(names))
		w.Linef("%s *_this = static_cast<%s *>(m_pInstance);", base.Name, base.Name)
		w.Linef("unsigned _call = %s.beginEnter(&_sig);", t.writer)
		w.Linef("%s.beginArg(0);", t.writer)
		w.Linef("%s.writePointer((uintptr_t)m_pInstance);", t.writer)
		w.Linef("%s.endArg();", t.writer)
		for _, arg := range f.InArgs() {
			t.unwrapValue(w, arg.Type, arg.Name)
		}
		for _, arg := range f.InArgs() {
			t.SerializeArg(w, f, arg)
		}
		w.Linef("%s.endEnter();", t.writer)
		result := ""
		if !isVoid {
			result = "_result = "
		}
		w.Linef("%s_this->%s(%s);", result, m.Name, strings.Join(f.ArgNames(), ", "))
		t.leave(w, f, "_call")
		if m.Name == "Release" && !isVoid {
			w.Brace("if (!_result)", func() {
				w.Line("delete this;")
			})
		}
		w.Linef("%s.endLeave();", t.writer)
		if !isVoid {
			w.Line("return _result;")
		}
	})
	w.Blank()
}

// wrapIID wraps an object returned through out by the interface id riid.
// Inside a wrapper method, an object that is the wrapped instance itself
// queried by one of its own interface ids resolves to the wrapper.
func (t *Tracer) wrapIID(w *emit.Writer, f *stdapi.Function, riid, out stdapi.Arg) {
	a := t.arena
	target := out.Name
	inner := stdapi.Resolve(a, a.Type(out.Type).Elem)
	if obj := stdapi.Resolve(a, inner.Elem); obj.Kind != stdapi.KindVoid {
		target = "reinterpret_cast<void * *>(" + out.Name + ")"
	}
	caller := f.Name
	w.Brace("if ("+out.Name+" && *"+out.Name+")", func() {
		if t.iface != nil {
			caller = t.iface.Name + "::" + f.Name
			var ids []string
			for _, id := range a.Bases(t.iface.ID) {
				ids = append(ids, riid.Name+" == IID_"+a.Type(id).Name)
			}
			w.Linef("if (*%s == m_pInstance &&", target)
			w.Linef("    (%s)) {", strings.Join(ids, " || "))
			w.Indent()
			w.Linef("*%s = this;", target)
			w.Dedent()
			w.Line("} else {")
		} else {
			w.Line("{")
		}
		w.Indent()
		w.Linef("wrapIID(%q, %s, %s);", caller, riid.Name, target)
		w.Dedent()
		w.Line("}")
	})
}
