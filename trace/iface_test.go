package trace

import (
	"strconv"
	"strings"
	"testing"

	"github.com/wippyai/apigen/stdapi"
)

// comModule describes IUnknown plus two interfaces that return each other,
// a factory function taking an interface id, and a descriptor struct that
// carries an interface pointer.
func comModule() *stdapi.Module {
	a := stdapi.NewArena()
	hresult := a.Alias("HRESULT", stdapi.Long)
	ulong := a.Alias("ULONG", stdapi.ULong)
	guid := a.Struct("GUID", stdapi.Member{Type: stdapi.ULong, Name: "Data1"})
	refiid := a.Alias("REFIID", guid)
	ppv := a.Pointer(a.Pointer(stdapi.Void))

	unknown := a.NewInterface("IUnknown", stdapi.InvalidType).
		Method(hresult, "QueryInterface", stdapi.In(refiid, "riid"), stdapi.Out(ppv, "ppvObj")).
		Method(ulong, "AddRef").
		Method(ulong, "Release").
		Build()

	foo := a.NewInterface("IFoo", unknown)
	bar := a.NewInterface("IBar", unknown)
	desc := a.Struct("DESC", stdapi.Member{Type: a.Pointer(bar.ID()), Name: "pBar"})

	foo.Method(hresult, "GetBar", stdapi.Out(a.Pointer(a.Pointer(bar.ID())), "ppBar")).
		Method(stdapi.Void, "SetBar", stdapi.In(a.Pointer(bar.ID()), "pBar")).
		Method(stdapi.Void, "SetDesc", stdapi.In(a.ConstPointer(desc), "pDesc")).
		Method(stdapi.Void, "SetBars", stdapi.In(stdapi.UInt, "n"), stdapi.In(a.Array(a.Const(a.Pointer(bar.ID())), "n"), "ppBars")).
		Build()
	bar.Method(hresult, "GetFoo", stdapi.Out(a.Pointer(a.Pointer(foo.ID())), "ppFoo")).Build()

	create := a.StdFunction(hresult, "CreateFoo", []stdapi.Arg{
		stdapi.In(refiid, "riid"),
		stdapi.Out(ppv, "ppv"),
	})

	return stdapi.NewModule(a, "com").
		AddHeaders("#include <objbase.h>").
		AddFunctions(create).
		AddInterfaces(unknown, foo.ID(), bar.ID())
}

func TestWrapperClass(t *testing.T) {
	out := generate(t, comModule(), WithDummyMethods(2))

	mustContain(t, out,
		`class WrapIFoo : public IFoo
{
private:
    WrapIFoo(IFoo * pInstance);
    virtual ~WrapIFoo();
public:
    static WrapIFoo* _Create(const char *functionName, IFoo * pInstance);

    HRESULT __stdcall QueryInterface(REFIID riid, void * * ppvObj);
    ULONG __stdcall AddRef(void);
    ULONG __stdcall Release(void);
    HRESULT __stdcall GetBar(IBar * * ppBar);
`,
		`    DWORD m_dwMagic;
    IFoo * m_pInstance;
    void * m_pVtbl;
    UINT m_NumMethods;
    virtual void _dummy0(void) const {
        os::log("error: IFoo: unexpected virtual method\n");
        os::abort();
    }
`,
		`WrapIFoo::WrapIFoo(IFoo * pInstance) {
    m_dwMagic = 0xd8365d6c;
    m_pInstance = pInstance;
    m_pVtbl = *(void **)pInstance;
    m_NumMethods = 7;
}
`,
		`WrapIFoo *WrapIFoo::_Create(const char *functionName, IFoo * pInstance) {
    std::map<void *, void *>::const_iterator it = g_WrappedObjects.find(pInstance);
    if (it != g_WrappedObjects.end()) {
        WrapIFoo *pWrapper = (WrapIFoo *)it->second;
        assert(pWrapper);
        assert(pWrapper->m_dwMagic == 0xd8365d6c);
        assert(pWrapper->m_pInstance == pInstance);
        if (pWrapper->m_pVtbl == *(void **)pInstance &&
            pWrapper->m_NumMethods >= 7) {
            return pWrapper;
        }
    }
    WrapIFoo *pWrapper = new WrapIFoo(pInstance);
    g_WrappedObjects[pInstance] = pWrapper;
    return pWrapper;
}
`,
		`WrapIFoo::~WrapIFoo() {
    g_WrappedObjects.erase(m_pInstance);
}
`,
	)
	if strings.Contains(out, "_dummy2") {
		t.Error("more dummy methods than requested")
	}
}

func TestIIDChain(t *testing.T) {
	out := generate(t, comModule())

	mustContain(t, out, `static void
wrapIID(const char *functionName, REFIID riid, void * * ppvObj) {
    if (!ppvObj || !*ppvObj) {
        return;
    }
    if (riid == IID_IUnknown) {
        *ppvObj = WrapIUnknown::_Create(functionName, (IUnknown *) *ppvObj);
    } else if (riid == IID_IBar) {
        *ppvObj = WrapIBar::_Create(functionName, (IBar *) *ppvObj);
    } else if (riid == IID_IFoo) {
        *ppvObj = WrapIFoo::_Create(functionName, (IFoo *) *ppvObj);
    } else {
        warnIID(functionName, riid, "unknown");
    }
}
`)
}

func TestQueryInterfaceRewrap(t *testing.T) {
	out := generate(t, comModule())

	mustContain(t, out,
		// Inside a wrapper, the instance itself queried by one of its own
		// ids resolves to the wrapper.
		`    if (SUCCEEDED(_result)) {
        trace::localWriter.beginArg(2);
        if (ppvObj) {
            trace::localWriter.beginArray(1);
            trace::localWriter.beginElement();
            trace::localWriter.writePointer((uintptr_t)*ppvObj);
            trace::localWriter.endElement();
            trace::localWriter.endArray();
        } else {
            trace::localWriter.writeNull();
        }
        trace::localWriter.endArg();
        if (ppvObj && *ppvObj) {
            if (*ppvObj == m_pInstance &&
                (riid == IID_IFoo || riid == IID_IUnknown)) {
                *ppvObj = this;
            } else {
                wrapIID("IFoo::QueryInterface", riid, ppvObj);
            }
        }
    }
`,
		// Free functions wrap by id unconditionally.
		`        if (ppv && *ppv) {
            {
                wrapIID("CreateFoo", riid, ppv);
            }
        }
`,
	)
}

func TestMethodRecord(t *testing.T) {
	out := generate(t, comModule())

	mustContain(t, out,
		`ULONG __stdcall WrapIBar::Release(void) {
    ULONG _result;
    static const char * _args[1] = {"this"};
`,
		`    static const trace::FunctionSig _sig = {`,
		`"IBar::Release", 1, _args};
    IUnknown *_this = static_cast<IUnknown *>(m_pInstance);
    unsigned _call = trace::localWriter.beginEnter(&_sig);
    trace::localWriter.beginArg(0);
    trace::localWriter.writePointer((uintptr_t)m_pInstance);
    trace::localWriter.endArg();
    trace::localWriter.endEnter();
    _result = _this->Release();
    trace::localWriter.beginLeave(_call);
    if (true) {
    }
    trace::localWriter.beginReturn();
    trace::localWriter.writeUInt(_result);
    trace::localWriter.endReturn();
    if (!_result) {
        delete this;
    }
    trace::localWriter.endLeave();
    return _result;
}
`,
		`    static const char * _args[2] = {"this", "ppFoo"};`,
		`    IBar *_this = static_cast<IBar *>(m_pInstance);`,
	)
	if n := strings.Count(out, "delete this;"); n != 3 {
		t.Errorf("Release deletes in %d wrappers, want 3", n)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	out := generate(t, comModule())

	mustContain(t, out,
		// Interface out pointers are wrapped.
		`        if (ppBar) {
            if (*ppBar) {
                *ppBar = WrapIBar::_Create(__FUNCTION__, *ppBar);
            }
        }
`,
		// Interface in pointers are unwrapped before serialization.
		`    if (pBar) {
        const WrapIBar *pWrapper = static_cast<const WrapIBar*>(pBar);
        if (pWrapper && pWrapper->m_dwMagic == 0xd8365d6c) {
            pBar = pWrapper->m_pInstance;
        } else {
            os::log("warning: %s: unexpected %s pointer\n", __FUNCTION__, "IBar");
        }
    }
`,
		// Const structs are copied before their members are unwrapped.
		`    if (pDesc) {
        {
            DESC * _t = static_cast<DESC *>(alloca(sizeof *_t));
            *_t = *pDesc;
            pDesc = _t;
            if ((*_t).pBar) {
                const WrapIBar *pWrapper = static_cast<const WrapIBar*>((*_t).pBar);
`,
		// Const arrays are copied into mutable element storage.
		`    if (ppBars && n) {
        IBar * * _t = static_cast<IBar * *>(alloca(n * sizeof *_t));
        for (size_t _i = 0, _s = n; _i < _s; ++_i) {
            _t[_i] = ppBars[_i];
            if (_t[_i]) {
`,
		`        ppBars = _t;
    }
`,
	)
}

func TestSignatureIDsAreUnique(t *testing.T) {
	out := generate(t, comModule())

	// 3 IUnknown + 4 IBar + 7 IFoo methods, then CreateFoo.
	mustContain(t, out, `static const trace::FunctionSig _CreateFoo_sig = {18, "CreateFoo", 2, _CreateFoo_args};`)
	for id := FirstSignatureID; id < 18; id++ {
		if n := strings.Count(out, "_sig = {"+strconv.Itoa(id)+", "); n != 1 {
			t.Errorf("signature id %d used %d times", id, n)
		}
	}
}

func TestRegenerateKeepsArena(t *testing.T) {
	m := comModule()
	first := generate(t, m)
	n := m.Arena.Len()

	if second := generate(t, m); second != first {
		t.Error("second generation differs from the first")
	}
	if got := m.Arena.Len(); got != n {
		t.Errorf("arena grew from %d to %d types", n, got)
	}
}
