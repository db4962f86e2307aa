package trace

import (
	"strings"

	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
)

// signatures writes the static signature tables of structs, enums and
// bitmasks, once per type. Simple types are serialized inline and need
// no table.
type signatures struct {
	stdapi.NopVisitor[struct{}]
	a    *stdapi.Arena
	w    *emit.Writer
	once stdapi.Once
}

func (s *signatures) visit(id stdapi.TypeID) {
	if t := s.a.Type(id); t != nil {
		stdapi.VisitOnce[struct{}](&s.once, s, t, struct{}{})
	}
}

func (s *signatures) VisitConst(t *stdapi.Type, _ struct{})   { s.visit(t.Elem) }
func (s *signatures) VisitPointer(t *stdapi.Type, _ struct{}) { s.visit(t.Elem) }
func (s *signatures) VisitHandle(t *stdapi.Type, _ struct{})  { s.visit(t.Elem) }
func (s *signatures) VisitArray(t *stdapi.Type, _ struct{})   { s.visit(t.Elem) }
func (s *signatures) VisitAlias(t *stdapi.Type, _ struct{})   { s.visit(t.Elem) }

func (s *signatures) VisitStruct(t *stdapi.Type, _ struct{}) {
	w := s.w
	w.Linef("static const char * _struct%s_members[%d] = {", t.Tag, len(t.Members))
	w.Indent()
	for _, m := range t.Members {
		w.Linef("%q,", m.Name)
	}
	w.Dedent()
	w.Line("};")
	w.Linef("static const trace::StructSig _struct%s_sig = {", t.Tag)
	w.Indent()
	w.Linef("%d, %q, %d, _struct%s_members", t.Seq, t.Name, len(t.Members), t.Tag)
	w.Dedent()
	w.Line("};")
	w.Blank()
}

func (s *signatures) VisitEnum(t *stdapi.Type, _ struct{}) {
	s.table(t, "EnumValue", "_enum"+t.Tag+"_values", "EnumSig", "_enum"+t.Tag+"_sig")
}

func (s *signatures) VisitBitmask(t *stdapi.Type, _ struct{}) {
	s.table(t, "BitmaskFlag", "_bitmask"+t.Tag+"_flags", "BitmaskSig", "_bitmask"+t.Tag+"_sig")
}

func (s *signatures) table(t *stdapi.Type, entryType, entries, sigType, sig string) {
	w := s.w
	w.Linef("static const trace::%s %s[] = {", entryType, entries)
	w.Indent()
	for _, v := range t.Values {
		w.Linef("{%q, %s},", v, v)
	}
	w.Dedent()
	w.Line("};")
	w.Blank()
	w.Linef("static const trace::%s %s = {", sigType, sig)
	w.Indent()
	w.Linef("%d, %d, %s", t.Seq, len(t.Values), entries)
	w.Dedent()
	w.Line("};")
	w.Blank()
}

// serializer writes the statements recording the value of a C expression.
// Complex types refer to the tables written by signatures.
type serializer struct {
	t    *Tracer
	w    *emit.Writer
	self selfStack
}

func (s *serializer) writer(call string, args ...string) {
	s.w.Linef("%s.%s(%s);", s.t.writer, call, strings.Join(args, ", "))
}

func (s *serializer) visit(id stdapi.TypeID, instance string) {
	t := s.t.arena.Type(id)
	if t == nil {
		s.t.Fail(errors.UnresolvedType(errors.PhaseGenerate, []string{instance}, uint32(id)))
		return
	}
	stdapi.Visit[string](s, t, instance)
}

// selfStack holds the struct instances enclosing the value being visited,
// innermost last.
type selfStack []string

func (st *selfStack) push(instance string) { *st = append(*st, "("+instance+")") }
func (st *selfStack) pop()                 { *st = (*st)[:len(*st)-1] }

// expand substitutes the innermost enclosing struct instance for {self} in
// length expressions of members.
func (st selfStack) expand(expr string) string {
	if len(st) == 0 {
		return expr
	}
	return strings.ReplaceAll(expr, "{self}", st[len(st)-1])
}

func (s *serializer) VisitVoid(t *stdapi.Type, instance string) {
	s.t.Fail(errors.Unsupported(errors.PhaseGenerate, []string{instance}, t.Expr,
		"void value cannot be serialized"))
}

func (s *serializer) VisitLiteral(t *stdapi.Type, instance string) {
	if t.Format == stdapi.FormatNone {
		s.t.Fail(errors.Unsupported(errors.PhaseGenerate, []string{instance}, t.Expr,
			"literal without print format"))
		return
	}
	s.writer("write"+t.Format.String(), instance)
}

func (s *serializer) VisitString(t *stdapi.Type, instance string) {
	cast, call := "const char *", "writeString"
	if t.Wide {
		cast, call = "const wchar_t *", "writeWString"
	}
	if t.Expr != cast {
		instance = "reinterpret_cast<" + cast + ">(" + instance + ")"
	}
	if t.Length != "" {
		s.writer(call, instance, s.self.expand(t.Length))
		return
	}
	s.writer(call, instance)
}

func (s *serializer) VisitConst(t *stdapi.Type, instance string) {
	s.visit(t.Elem, instance)
}

func (s *serializer) VisitStruct(t *stdapi.Type, instance string) {
	s.writer("beginStruct", "&_struct"+t.Tag+"_sig")
	s.self.push(instance)
	for _, m := range t.Members {
		member := instance
		if m.Name != "" {
			member = "(" + instance + ")." + m.Name
		}
		s.visit(m.Type, member)
	}
	s.self.pop()
	s.writer("endStruct")
}

func (s *serializer) VisitArray(t *stdapi.Type, instance string) {
	elem := s.t.arena.Type(t.Elem)
	if elem == nil {
		s.t.Fail(errors.UnresolvedType(errors.PhaseGenerate, []string{instance}, uint32(t.Elem)))
		return
	}
	count := "_c" + elem.Tag
	index := "_i" + elem.Tag
	length := s.self.expand(t.Length)
	s.w.IfElse(instance, func() {
		s.w.Linef("size_t %s = %s > 0 ? %s : 0;", count, length, length)
		s.writer("beginArray", count)
		s.w.Brace("for (size_t "+index+" = 0; "+index+" < "+count+"; ++"+index+")", func() {
			s.writer("beginElement")
			s.visit(t.Elem, "("+instance+")["+index+"]")
			s.writer("endElement")
		})
		s.writer("endArray")
	}, func() {
		s.writer("writeNull")
	})
}

func (s *serializer) VisitBlob(t *stdapi.Type, instance string) {
	s.writer("writeBlob", instance, s.self.expand(t.Length))
}

func (s *serializer) VisitEnum(t *stdapi.Type, instance string) {
	s.writer("writeEnum", "&_enum"+t.Tag+"_sig", instance)
}

func (s *serializer) VisitBitmask(t *stdapi.Type, instance string) {
	s.writer("writeBitmask", "&_bitmask"+t.Tag+"_sig", instance)
}

// VisitPointer records a pointer as an array of zero or one element.
// Pointers to interfaces and to void are recorded as addresses.
func (s *serializer) VisitPointer(t *stdapi.Type, instance string) {
	if isObjectPointer(s.t.arena, t) {
		s.writer("writePointer", "(uintptr_t)"+instance)
		return
	}
	s.w.IfElse(instance, func() {
		s.writer("beginArray", "1")
		s.writer("beginElement")
		s.visit(t.Elem, "*"+instance)
		s.writer("endElement")
		s.writer("endArray")
	}, func() {
		s.writer("writeNull")
	})
}

func (s *serializer) VisitHandle(t *stdapi.Type, instance string) {
	s.visit(t.Elem, instance)
}

func (s *serializer) VisitAlias(t *stdapi.Type, instance string) {
	s.visit(t.Elem, instance)
}

func (s *serializer) VisitOpaque(_ *stdapi.Type, instance string) {
	s.writer("writePointer", "(uintptr_t)"+instance)
}

func (s *serializer) VisitInterface(t *stdapi.Type, instance string) {
	s.t.Fail(errors.Unsupported(errors.PhaseGenerate, []string{instance}, t.Expr,
		"interface passed by value"))
}

// isObjectPointer reports whether p points to an interface or to void.
func isObjectPointer(a *stdapi.Arena, p *stdapi.Type) bool {
	elem := stdapi.Resolve(a, p.Elem)
	return elem != nil && (elem.Kind == stdapi.KindInterface || elem.Kind == stdapi.KindVoid)
}

// interfacePointee returns the interface p points to, or nil.
func interfacePointee(a *stdapi.Arena, p *stdapi.Type) *stdapi.Type {
	if p.Kind != stdapi.KindPointer {
		return nil
	}
	elem := stdapi.Resolve(a, p.Elem)
	if elem == nil || elem.Kind != stdapi.KindInterface {
		return nil
	}
	return elem
}
