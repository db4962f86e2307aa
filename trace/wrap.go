package trace

import (
	"strconv"
	"strings"

	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
)

// WrapperName returns the name of the class wrapping interface iface.
func WrapperName(iface *stdapi.Type) string {
	return "Wrap" + iface.Expr
}

// wrapper writes the code replacing every interface pointer reachable from
// a value with its wrapper, or with unwrap set, replacing wrappers with the
// objects they wrap. Unwrapping writes through const data, so the first
// const struct or array met is copied to stack storage first.
type wrapper struct {
	stdapi.NopVisitor[string]
	t         *Tracer
	w         *emit.Writer
	self      selfStack
	depth     int
	unwrap    bool
	allocated bool
}

func (v *wrapper) visit(id stdapi.TypeID, instance string) {
	t := v.t.arena.Type(id)
	if t == nil {
		v.t.Fail(errors.UnresolvedType(errors.PhaseGenerate, []string{instance}, uint32(id)))
		return
	}
	if !stdapi.ContainsInterface(v.t.arena, id) {
		return
	}
	stdapi.Visit[string](v, t, instance)
}

func (v *wrapper) VisitConst(t *stdapi.Type, instance string)  { v.visit(t.Elem, instance) }
func (v *wrapper) VisitHandle(t *stdapi.Type, instance string) { v.visit(t.Elem, instance) }
func (v *wrapper) VisitAlias(t *stdapi.Type, instance string)  { v.visit(t.Elem, instance) }

func (v *wrapper) VisitStruct(t *stdapi.Type, instance string) {
	if !v.unwrap || v.allocated || !strings.HasPrefix(instance, "*") {
		v.members(t, instance)
		return
	}
	v.w.Block("{", func() {
		v.w.Linef("%s * _t = static_cast<%s *>(alloca(sizeof *_t));", t.Expr, t.Expr)
		v.w.Linef("*_t = %s;", instance)
		v.w.Linef("%s = _t;", instance[1:])
		v.copied(func() { v.members(t, "*_t") })
	}, "}")
}

func (v *wrapper) members(t *stdapi.Type, instance string) {
	v.self.push(instance)
	defer v.self.pop()
	for _, m := range t.Members {
		member := instance
		if m.Name != "" {
			member = "(" + instance + ")." + m.Name
		}
		v.visit(m.Type, member)
	}
}

// copied runs fn with the values below marked as stack copies.
func (v *wrapper) copied(fn func()) {
	prev := v.allocated
	v.allocated = true
	fn()
	v.allocated = prev
}

// loop writes a for statement over length elements. The index and bound are
// named after the nesting depth so that nested loops do not shadow each other.
func (v *wrapper) loop(length string, body func(i string)) {
	suffix := ""
	if v.depth > 0 {
		suffix = strconv.Itoa(v.depth)
	}
	i, n := "_i"+suffix, "_s"+suffix
	v.depth++
	v.w.Brace("for (size_t "+i+" = 0, "+n+" = "+length+"; "+i+" < "+n+"; ++"+i+")", func() {
		body(i)
	})
	v.depth--
}

func element(instance, i string) string {
	if strings.HasPrefix(instance, "*") {
		instance = "(" + instance + ")"
	}
	return instance + "[" + i + "]"
}

func (v *wrapper) VisitArray(t *stdapi.Type, instance string) {
	if v.unwrap && !v.allocated {
		v.copyArray(t, instance)
		return
	}
	length := v.self.expand(t.Length)
	v.w.Brace("if ("+instance+")", func() {
		v.loop(length, func(i string) {
			v.visit(t.Elem, element(instance, i))
		})
	})
}

// copyArray replaces a const array with a mutable stack copy whose elements
// are then unwrapped in place.
func (v *wrapper) copyArray(t *stdapi.Type, instance string) {
	elem := v.t.arena.Expr(stdapi.StripConst(v.t.arena, t.Elem))
	length := v.self.expand(t.Length)
	v.w.Brace("if ("+instance+" && "+length+")", func() {
		v.w.Linef("%s * _t = static_cast<%s *>(alloca(%s * sizeof *_t));", elem, elem, length)
		v.loop(length, func(i string) {
			v.w.Linef("_t[%s] = %s;", i, element(instance, i))
			v.copied(func() { v.visit(t.Elem, "_t["+i+"]") })
		})
		v.w.Linef("%s = _t;", instance)
	})
}

func (v *wrapper) VisitPointer(t *stdapi.Type, instance string) {
	if iface := interfacePointee(v.t.arena, t); iface != nil {
		if v.unwrap {
			v.unwrapInterface(iface, instance)
		} else {
			v.wrapInterface(iface, instance)
		}
		return
	}
	v.w.Brace("if ("+instance+")", func() {
		v.visit(t.Elem, "*"+instance)
	})
}

func (v *wrapper) wrapInterface(iface *stdapi.Type, instance string) {
	v.w.Brace("if ("+instance+")", func() {
		v.w.Linef("%s = %s::_Create(__FUNCTION__, %s);", instance, WrapperName(iface), instance)
	})
}

func (v *wrapper) unwrapInterface(iface *stdapi.Type, instance string) {
	name := WrapperName(iface)
	v.w.Brace("if ("+instance+")", func() {
		v.w.Linef("const %s *pWrapper = static_cast<const %s*>(%s);", name, name, instance)
		v.w.IfElse("pWrapper && pWrapper->m_dwMagic == "+WrapperMagic, func() {
			v.w.Linef("%s = pWrapper->m_pInstance;", instance)
		}, func() {
			v.w.Linef(`os::log("warning: %%s: unexpected %%s pointer\n", __FUNCTION__, %q);`, iface.Name)
		})
	})
}

func (v *wrapper) VisitInterface(t *stdapi.Type, instance string) {
	v.t.Fail(errors.Unsupported(errors.PhaseGenerate, []string{instance}, t.Expr,
		"interface cannot be wrapped by value"))
}
