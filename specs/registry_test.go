package specs

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/stdapi"
)

func TestNames(t *testing.T) {
	want := []string{"com", "gl", "glx", "wgl"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadValidates(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, err := Load(name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if m.Name != name {
				t.Errorf("Name = %q, want %q", m.Name, name)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("vulkan")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBuild, Kind: errors.KindNotFound}) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestLoadUsesFreshArena(t *testing.T) {
	a, err := Load("gl")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load("gl")
	if err != nil {
		t.Fatal(err)
	}
	if a.Arena == b.Arena {
		t.Error("modules share an arena")
	}
}

func TestPlatformMerge(t *testing.T) {
	tests := []struct {
		api      string
		platform string
		want     []string
	}{
		{"glx", "glx", []string{"glDrawArrays", "glXGetProcAddress", "glXMakeCurrent"}},
		{"wgl", "wgl", []string{"glDrawArrays", "wglGetProcAddress", "wglDeleteContext"}},
	}
	for _, tt := range tests {
		t.Run(tt.api, func(t *testing.T) {
			api, err := Lookup(tt.api)
			if err != nil {
				t.Fatal(err)
			}
			if !api.GL || api.Platform != tt.platform {
				t.Errorf("api = %+v", api)
			}
			m, err := api.Load()
			if err != nil {
				t.Fatal(err)
			}
			for _, name := range tt.want {
				if _, ok := m.FunctionByName(name); !ok {
					t.Errorf("%s missing", name)
				}
			}
		})
	}
}

func TestGLEnum(t *testing.T) {
	types := NewGLTypes(stdapi.NewArena())
	enum := types.Arena.Type(types.Enum)
	if enum.Kind != stdapi.KindEnum || enum.Expr != "GLenum" {
		t.Fatalf("GLenum = %v %q", enum.Kind, enum.Expr)
	}
	if got := types.Arena.Expr(types.Pointer); got != "const GLvoid *" {
		t.Errorf("pointer expr = %q", got)
	}
}

func TestCOMInterfaces(t *testing.T) {
	m := COM()
	var names []string
	for _, iface := range m.AllInterfaces() {
		names = append(names, iface.Name)
	}
	want := []string{"IUnknown", "IDevice", "ISurface"}
	if diff := cmp.Diff(want, names, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("interfaces mismatch (-want +got):\n%s", diff)
	}
}
