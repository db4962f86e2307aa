package stdapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/apigen/errors"
)

func TestMerge(t *testing.T) {
	a := NewArena()
	finish := a.NewFunction(Void, "glFinish", nil)
	flush := a.NewFunction(Void, "glFlush", nil)
	swap := a.NewFunction(Bool, "wglSwapBuffers", []Arg{In(a.Opaque("HDC"), "hdc")})
	iface := a.NewInterface("IUnknown", InvalidType).Build()

	gl := NewModule(a, "gl").AddHeaders("#include <GL/gl.h>").AddFunctions(finish, flush)
	wgl := NewModule(a, "wgl").AddHeaders("#include <GL/gl.h>", "#include <windows.h>").AddFunctions(flush, swap).AddInterfaces(iface)

	merged, err := Merge("opengl32", gl, wgl)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	var names []string
	for _, f := range merged.Functions {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"glFinish", "glFlush", "wglSwapBuffers"}, names); diff != "" {
		t.Errorf("functions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"#include <GL/gl.h>", "#include <windows.h>"}, merged.Headers); diff != "" {
		t.Errorf("headers (-want +got):\n%s", diff)
	}
	if len(merged.Interfaces) != 1 {
		t.Errorf("interfaces = %v", merged.Interfaces)
	}
	if f, ok := merged.FunctionByName("wglSwapBuffers"); !ok || f != swap {
		t.Error("FunctionByName(wglSwapBuffers) failed")
	}
	if _, ok := merged.FunctionByName("glBegin"); ok {
		t.Error("FunctionByName(glBegin) should fail")
	}
}

func TestMergeRejectsForeignArena(t *testing.T) {
	one := NewModule(NewArena(), "one")
	two := NewModule(NewArena(), "two")

	_, err := Merge("both", one, two)
	if !errors.Match(err, errors.PhaseBuild, errors.KindInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Merge("none"); err == nil {
		t.Fatal("merging nothing should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func(a *Arena, m *Module)
		kind  errors.Kind
	}{
		{
			name: "void with fail value",
			build: func(a *Arena, m *Module) {
				m.AddFunctions(a.NewFunction(Void, "glFinish", nil, WithFail("0")))
			},
			kind: errors.KindFailValue,
		},
		{
			name: "value with empty fail",
			build: func(a *Arena, m *Module) {
				m.AddFunctions(a.NewFunction(Int, "glGetError", nil, WithFail("")))
			},
			kind: errors.KindFailValue,
		},
		{
			name: "unresolved argument",
			build: func(a *Arena, m *Module) {
				m.AddFunctions(a.NewFunction(Void, "glFoo", []Arg{In(TypeID(9999), "x")}))
			},
			kind: errors.KindUnresolvedType,
		},
		{
			name: "unresolved return",
			build: func(a *Arena, m *Module) {
				m.AddFunctions(a.NewFunction(TypeID(4242), "glBar", nil))
			},
			kind: errors.KindUnresolvedType,
		},
		{
			name: "duplicate function",
			build: func(a *Arena, m *Module) {
				m.AddFunctions(a.NewFunction(Void, "glFlush", nil), a.NewFunction(Void, "glFlush", nil))
			},
			kind: errors.KindDuplicate,
		},
		{
			name: "method shadows base",
			build: func(a *Arena, m *Module) {
				unknown := a.NewInterface("IUnknown", InvalidType).Method(ULong, "Release").Build()
				foo := a.NewInterface("IFoo", unknown).Method(ULong, "Release").Build()
				m.AddInterfaces(foo)
			},
			kind: errors.KindMethodCollision,
		},
		{
			name: "unsealed interface",
			build: func(a *Arena, m *Module) {
				b := a.NewInterface("IOpen", InvalidType).Method(Void, "Close")
				m.AddInterfaces(b.ID())
			},
			kind: errors.KindUnsealed,
		},
		{
			name: "declared interface is not an interface",
			build: func(a *Arena, m *Module) {
				m.AddInterfaces(Int)
			},
			kind: errors.KindUnresolvedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena()
			m := NewModule(a, "test")
			tt.build(a, m)

			err := m.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Match(err, errors.PhaseValidate, tt.kind) {
				t.Errorf("Validate() = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	a := NewArena()
	_, ia, _ := buildCycle(a)
	m := NewModule(a, "ok").
		AddFunctions(
			a.NewFunction(Void, "glFinish", nil, WithFail("")),
			a.NewFunction(Int, "glGetError", nil, WithFail("0")),
			a.NewFunction(Void, "glFlush", nil),
		).
		AddInterfaces(ia)

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	a := NewArena()
	m := NewModule(a, "bad").AddFunctions(
		a.NewFunction(Void, "f", nil, WithFail("1")),
		a.NewFunction(Int, "g", nil, WithFail("")),
		a.NewFunction(Void, "h", []Arg{In(TypeID(777), "x")}),
	)

	errs := errors.Errors(m.Validate())
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}
	var e *errors.Error
	if !errors.As(errs[0], &e) || e.Path[1] != "f" {
		t.Errorf("first error = %v", errs[0])
	}
}
