package stdapi

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	NopVisitor[string]
	arena *Arena
	once  Once
	out   []string
}

func (r *recorder) visit(id TypeID, expr string) {
	VisitOnce[string](&r.once, r, r.arena.Type(id), expr)
}

func (r *recorder) VisitLiteral(t *Type, expr string) {
	r.out = append(r.out, "write"+t.Format.String()+"("+expr+")")
}

func (r *recorder) VisitPointer(t *Type, expr string) {
	r.out = append(r.out, "ptr("+expr+")")
	r.visit(t.Elem, "*"+expr)
}

func (r *recorder) VisitStruct(t *Type, expr string) {
	r.out = append(r.out, "struct "+t.Name)
	for _, m := range t.Members {
		r.visit(m.Type, expr+"."+m.Name)
	}
}

func buildRecorderGraph() (*Arena, []TypeID) {
	a := NewArena()
	point := a.Struct("POINT", Member{Type: Long, Name: "x"}, Member{Type: Long, Name: "y"})
	rect := a.Struct("RECT", Member{Type: point, Name: "tl"}, Member{Type: point, Name: "br"})
	return a, []TypeID{a.Pointer(rect), rect, point}
}

func TestOnceVisitorIsDeterministic(t *testing.T) {
	run := func() []string {
		a, roots := buildRecorderGraph()
		r := &recorder{arena: a}
		for _, id := range roots {
			r.visit(id, "v")
		}
		return r.out
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("outputs differ (-first +second):\n%s", diff)
	}

	want := []string{"ptr(v)", "struct RECT", "struct POINT", "writeSInt(*v.tl.x)"}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestOnceEnter(t *testing.T) {
	var o Once
	if !o.Enter(Int) {
		t.Fatal("first Enter should succeed")
	}
	if o.Enter(Int) {
		t.Fatal("second Enter should fail")
	}
	if !o.Seen(Int) || o.Seen(Float) {
		t.Fatal("Seen mismatch")
	}
	o.Reset()
	if !o.Enter(Int) {
		t.Fatal("Enter after Reset should succeed")
	}
}

func TestVisitUnknownKindPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(r.(string), "unhandled type kind") {
			t.Errorf("panic = %v", r)
		}
	}()
	Visit[string](NopVisitor[string]{}, &Type{Kind: Kind(99), Expr: "mystery"}, "")
}

func exprs(types []*Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Expr
	}
	return out
}

func TestCollectorNoDuplicates(t *testing.T) {
	a := NewArena()
	s := a.Struct("S", Member{Type: Int, Name: "x"})
	ps := a.Pointer(s)

	m := NewModule(a, "test").AddFunctions(
		a.NewFunction(Void, "f1", []Arg{In(s, "s")}),
		a.NewFunction(Void, "f2", []Arg{In(ps, "p")}),
	)

	want := []string{"int", "S", "void", "S *"}
	if diff := cmp.Diff(want, exprs(m.AllTypes())); diff != "" {
		t.Errorf("AllTypes (-want +got):\n%s", diff)
	}
}

func TestCollectorSkipsBlobElements(t *testing.T) {
	a := NewArena()
	s := a.Struct("HIDDEN", Member{Type: Int, Name: "x"})
	blob := a.Blob(s, "size")

	c := NewCollector(a)
	c.Collect(blob)
	if diff := cmp.Diff([]string{"HIDDEN *"}, exprs(c.Types())); diff != "" {
		t.Errorf("Types (-want +got):\n%s", diff)
	}
}

func buildCycle(a *Arena) (unknown, ia, ib TypeID) {
	unknown = a.NewInterface("IUnknown", InvalidType).
		Method(ULong, "AddRef").
		Method(ULong, "Release").
		Build()
	builderA := a.NewInterface("IA", unknown)
	builderB := a.NewInterface("IB", unknown)
	builderA.Method(Void, "GetB", Out(a.Pointer(a.Pointer(builderB.ID())), "ppB"))
	builderB.Method(Void, "GetA", Out(a.Pointer(a.Pointer(builderA.ID())), "ppA"))
	return unknown, builderA.Build(), builderB.Build()
}

func TestCollectorCycleTermination(t *testing.T) {
	a := NewArena()
	_, ia, _ := buildCycle(a)

	m := NewModule(a, "cycle").AddInterfaces(ia)
	types := m.AllTypes()

	count := make(map[string]int)
	for _, typ := range types {
		count[typ.Expr]++
	}
	for _, name := range []string{"IUnknown", "IA", "IB"} {
		if count[name] != 1 {
			t.Errorf("%s collected %d times, want 1", name, count[name])
		}
	}

	var ifaces []string
	for _, typ := range m.AllInterfaces() {
		ifaces = append(ifaces, typ.Name)
	}
	if diff := cmp.Diff([]string{"IUnknown", "IB", "IA"}, ifaces); diff != "" {
		t.Errorf("AllInterfaces (-want +got):\n%s", diff)
	}
}

func TestStripConst(t *testing.T) {
	a := NewArena()
	s := a.Struct("DESC", Member{Type: a.Const(Int), Name: "x"}, Member{Type: Float, Name: "y"})
	ptr := a.Pointer(a.Const(s))

	stripped := StripConst(a, ptr)
	if stripped == ptr {
		t.Fatal("StripConst returned the original pointer")
	}
	pt := a.Type(stripped)
	if pt.Kind != KindPointer || pt.Expr != "DESC *" {
		t.Fatalf("stripped = %v %q", pt.Kind, pt.Expr)
	}
	st := a.Type(pt.Elem)
	if st.Kind != KindStruct || st.Members[0].Type != Int || st.Members[1].Type != Float {
		t.Errorf("members = %+v", st.Members)
	}

	n := a.Len()
	if StripConst(a, ptr) != stripped || StripConst(a, stripped) != stripped {
		t.Error("StripConst should reuse its earlier result")
	}
	if a.Len() != n {
		t.Errorf("repeated StripConst registered %d types", a.Len()-n)
	}

	plain := a.Pointer(Int)
	if StripConst(a, plain) != plain {
		t.Error("tree without const should be reused")
	}
	if StripConst(a, Int) != Int {
		t.Error("literal should be reused")
	}
}

func TestRebuilderOverride(t *testing.T) {
	a := NewArena()
	arr := a.Array(a.Alias("GLfloat", Float), "n")

	r := NewRebuilder(a)
	r.Override = func(r *Rebuilder, t *Type) (TypeID, bool) {
		if t.Kind == KindAlias {
			return Double, true
		}
		return InvalidType, false
	}
	out := a.Type(r.Rebuild(arr))
	if out.Kind != KindArray || out.Elem != Double || out.Length != "n" {
		t.Errorf("rebuilt = %v elem=%d len=%q", out.Kind, out.Elem, out.Length)
	}
	if r.Rebuild(arr) != out.ID {
		t.Error("Rebuild should be memoized")
	}
}

func TestContainsInterface(t *testing.T) {
	a := NewArena()
	iface := a.NewInterface("ISurface", InvalidType).Build()
	desc := a.Struct("DESC", Member{Type: a.Pointer(iface), Name: "pSurface"})

	tests := []struct {
		name string
		id   TypeID
		want bool
	}{
		{"interface pointer", a.Pointer(a.Pointer(iface)), true},
		{"struct member", desc, true},
		{"array of structs", a.Array(desc, "n"), true},
		{"plain pointer", a.Pointer(Int), false},
		{"opaque", a.Opaque("ISurface *"), false},
		{"blob", a.Blob(desc, "n"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsInterface(a, tt.id); got != tt.want {
				t.Errorf("ContainsInterface = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	a := NewArena()
	glenum := a.Alias("GLenum", UInt)
	h := a.Handle("buffer", a.Const(glenum), "", "")
	if got := Resolve(a, h); got.ID != UInt {
		t.Errorf("Resolve = %q", got.Expr)
	}
}
