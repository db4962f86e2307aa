package dispatch

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
)

// DefaultGuard is the preprocessor symbol that enables short-name aliases.
const DefaultGuard = "RETRACE"

// Names of the lookup functions supplied by the surrounding runtime.
const (
	PublicLookup  = "_getPublicProcAddress"
	PrivateLookup = "_getPrivateProcAddress"
)

// Dispatcher generates the call-through layer of a module: one function
// pointer slot per function, initialized to a thunk that resolves the real
// symbol on first use and then forwards every call.
type Dispatcher struct {
	isPublic        func(*stdapi.Function) bool
	failHook        FailHook
	log             *zap.Logger
	guard           string
	policy          FailPolicy
	suppressAliases bool
}

// New creates a dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		guard: DefaultGuard,
		log:   Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// PointerType returns the typedef name of f's function pointer.
func PointerType(f *stdapi.Function) string {
	return "PFN_" + strings.ToUpper(f.Name)
}

// PointerValue returns the name of f's pointer slot.
func PointerValue(f *stdapi.Function) string {
	return "_" + f.Name
}

// IsPublic reports whether f is resolved through the public lookup.
func (d *Dispatcher) IsPublic(f *stdapi.Function) bool {
	if d.isPublic == nil {
		return true
	}
	return d.isPublic(f)
}

func (d *Dispatcher) lookup(f *stdapi.Function) string {
	if d.IsPublic(f) {
		return PublicLookup
	}
	return PrivateLookup
}

// Check reports every function of m whose return type is unresolvable or
// whose fail value disagrees with it.
func (d *Dispatcher) Check(m *stdapi.Module) error {
	var errs []error
	for _, f := range m.Functions {
		path := []string{m.Name, f.Name}
		if m.Arena.Type(f.Type) == nil {
			errs = append(errs, errors.UnresolvedType(errors.PhaseGenerate, path, uint32(f.Type)))
			continue
		}
		if err := stdapi.CheckFailValue(m.Arena, path, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Combine(errs...)
}

// Module writes declarations followed by implementations.
func (d *Dispatcher) Module(w *emit.Writer, m *stdapi.Module) error {
	if err := d.ModuleDecl(w, m); err != nil {
		return err
	}
	return d.ModuleImpl(w, m)
}

// ModuleDecl writes the pointer typedefs, the extern slot declarations and,
// unless suppressed, the alias block.
func (d *Dispatcher) ModuleDecl(w *emit.Writer, m *stdapi.Module) error {
	if err := d.Check(m); err != nil {
		return err
	}
	for _, f := range m.Functions {
		w.Line("typedef " + f.Prototype(m.Arena, "* "+PointerType(f)) + ";")
		w.Linef("extern %s %s;", PointerType(f), PointerValue(f))
		w.Blank()
	}
	d.aliases(w, m, "_")
	return nil
}

func (d *Dispatcher) aliases(w *emit.Writer, m *stdapi.Module, prefix string) {
	if d.suppressAliases {
		d.log.Debug("alias block suppressed", zap.String("module", m.Name))
		return
	}
	w.Line("#ifdef " + d.guard)
	for _, f := range m.Functions {
		w.Linef("#define %s %s%s", f.Name, prefix, f.Name)
	}
	w.Linef("#endif /* %s */", d.guard)
	w.Blank()
}

// ModuleImpl writes, per function, the fail stub, the resolving thunk and
// the slot definition pointing at the thunk.
func (d *Dispatcher) ModuleImpl(w *emit.Writer, m *stdapi.Module) error {
	if err := d.Check(m); err != nil {
		return err
	}
	private := 0
	for _, f := range m.Functions {
		if !d.IsPublic(f) {
			private++
		}
		d.functionImpl(w, m.Arena, f)
	}
	d.log.Debug("dispatch module generated",
		zap.String("module", m.Name),
		zap.Int("functions", len(m.Functions)),
		zap.Int("private", private))
	return nil
}

func (d *Dispatcher) functionImpl(w *emit.Writer, a *stdapi.Arena, f *stdapi.Function) {
	ptype := PointerType(f)
	pvalue := PointerValue(f)
	ret := "return "
	if a.Kind(f.Type) == stdapi.KindVoid {
		ret = ""
	}

	w.Brace("static "+f.Prototype(a, "_fail_"+f.Name), func() {
		if d.failHook != nil && d.failHook(w, f) {
			return
		}
		w.Linef("const char *_name = %q;", f.Name)
		d.failBody(w, a, f, "_name")
	})
	w.Blank()

	w.Brace("static "+f.Prototype(a, "_get_"+f.Name), func() {
		w.Linef("%s _ptr;", ptype)
		w.Linef("_ptr = (%s)%s(%q);", ptype, d.lookup(f), f.Name)
		w.Brace("if (!_ptr)", func() {
			w.Linef("_ptr = &_fail_%s;", f.Name)
		})
		w.Linef("%s = _ptr;", pvalue)
		w.Linef("%s%s(%s);", ret, pvalue, strings.Join(f.ArgNames(), ", "))
	})
	w.Blank()

	w.Linef("%s %s = &_get_%s;", ptype, pvalue, f.Name)
	w.Blank()
}

// failBody emits the handling of an unavailable entry point. nameVar is the
// C variable holding the function name.
func (d *Dispatcher) failBody(w *emit.Writer, a *stdapi.Arena, f *stdapi.Function, nameVar string) {
	isVoid := a.Kind(f.Type) == stdapi.KindVoid
	switch {
	case f.HasFail || (isVoid && d.policy == FailIgnoreVoid):
		w.Linef(`os::log("warning: ignoring call to unavailable function %%s\n", %s);`, nameVar)
		if isVoid {
			w.Line("return;")
		} else {
			w.Linef("return %s;", f.Fail)
		}
	default:
		w.Linef(`os::log("error: unavailable function %%s\n", %s);`, nameVar)
		w.Line("os::abort();")
	}
}

// Inline writes a self-contained header variant: a static NULL slot and a
// static inline thunk per function that checks the slot on every call.
func (d *Dispatcher) Inline(w *emit.Writer, m *stdapi.Module) error {
	if err := d.Check(m); err != nil {
		return err
	}
	a := m.Arena
	for _, f := range m.Functions {
		ptype := "__PFN" + strings.ToUpper(f.Name)
		pvalue := "__" + f.Name + "_ptr"
		ret := "return "
		if a.Kind(f.Type) == stdapi.KindVoid {
			ret = ""
		}

		w.Line("typedef " + f.Prototype(a, "* "+ptype) + ";")
		w.Linef("static %s %s = NULL;", ptype, pvalue)
		w.Blank()
		w.Brace("static inline "+f.Prototype(a, "__"+f.Name), func() {
			w.Linef("const char *__name = %q;", f.Name)
			w.Brace("if (!"+pvalue+")", func() {
				w.Linef("%s = (%s)_%s(__name);", pvalue, ptype, d.lookup(f))
				w.Brace("if (!"+pvalue+")", func() {
					if d.failHook == nil || !d.failHook(w, f) {
						d.failBody(w, a, f, "__name")
					}
				})
			})
			w.Linef("%s%s(%s);", ret, pvalue, strings.Join(f.ArgNames(), ", "))
		})
		w.Blank()
	}
	d.aliases(w, m, "__")
	return nil
}
