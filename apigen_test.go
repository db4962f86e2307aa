package apigen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/apigen/config"
	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/specs"
)

func names(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func source(t *testing.T, files []File, name string) string {
	t.Helper()
	for _, f := range files {
		if f.Name == name {
			return f.Source
		}
	}
	t.Fatalf("no file %s in %v", name, names(files))
	return ""
}

func TestGenerateAll(t *testing.T) {
	for _, name := range specs.Names() {
		t.Run(name, func(t *testing.T) {
			files, err := GenerateAPI(name, nil)
			if err != nil {
				t.Fatalf("GenerateAPI: %v", err)
			}
			want := []string{name + "proc.hpp", name + "proc.cpp", name + "trace.cpp"}
			if diff := cmp.Diff(want, names(files)); diff != "" {
				t.Errorf("files mismatch (-want +got):\n%s", diff)
			}
			for _, f := range files {
				if strings.TrimSpace(f.Source) == "" {
					t.Errorf("%s is empty", f.Name)
				}
			}
		})
	}
}

func TestGenerateGL(t *testing.T) {
	files, err := GenerateAPI("glx", nil)
	if err != nil {
		t.Fatal(err)
	}

	decl := source(t, files, "glxproc.hpp")
	for _, want := range []string{
		`#include "glimports.hpp"`,
		"extern PFN_GLENABLE _glEnable;",
		"#ifdef RETRACE",
		"#define glXMakeCurrent _glXMakeCurrent",
	} {
		if !strings.Contains(decl, want) {
			t.Errorf("header missing %q", want)
		}
	}

	impl := source(t, files, "glxproc.cpp")
	if !strings.HasPrefix(impl, `#include "glxproc.hpp"`) {
		t.Error("implementation should include its header")
	}
	if !strings.Contains(impl, `_getPublicProcAddress("glEnable")`) {
		t.Error("core function should resolve publicly")
	}
	if !strings.Contains(impl, `_getPrivateProcAddress("glMapBufferRange")`) {
		t.Error("extension function should resolve privately")
	}

	tr := source(t, files, "glxtrace.cpp")
	for _, want := range []string{
		"_trace_user_arrays",
		"_wrapProcAddress",
	} {
		if !strings.Contains(tr, want) {
			t.Errorf("trace source missing %q", want)
		}
	}
}

func TestGenerateInline(t *testing.T) {
	cfg := config.Default()
	cfg.Dispatch.Inline = true
	cfg.Dispatch.Guard = "TRACE_ALIASES"
	files, err := GenerateAPI("gl", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"glproc_inline.hpp", "gltrace.cpp"}, names(files)); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	hdr := source(t, files, "glproc_inline.hpp")
	for _, want := range []string{
		"static __PFNGLENABLE __glEnable_ptr = NULL;",
		"#ifdef TRACE_ALIASES",
		"#define glEnable __glEnable",
	} {
		if !strings.Contains(hdr, want) {
			t.Errorf("inline header missing %q", want)
		}
	}
}

func TestGenerateOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Dispatch.SuppressAliases = true
	cfg.Trace.Writer = "myWriter"
	files, err := GenerateAPI("com", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(source(t, files, "comproc.hpp"), "#ifdef RETRACE") {
		t.Error("alias block should be suppressed")
	}
	tr := source(t, files, "comtrace.cpp")
	if !strings.Contains(tr, "myWriter.beginEnter(") {
		t.Error("trace source should record into the configured writer")
	}
	if !strings.Contains(tr, "class WrapIDevice") {
		t.Error("trace source should declare interface wrappers")
	}
}

func TestGenerateUnknown(t *testing.T) {
	_, err := GenerateAPI("vulkan", nil)
	if !errors.Match(err, errors.PhaseBuild, errors.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}

	api, _ := specs.Lookup("gl")
	api.Platform = "cgl"
	m, err := api.Load()
	if err != nil {
		t.Fatal(err)
	}
	_, err = Generate(m, api, nil)
	if !errors.Match(err, errors.PhaseGenerate, errors.KindNotFound) {
		t.Errorf("err = %v, want unknown platform", err)
	}
}

func TestExcerpt(t *testing.T) {
	src := strings.Join([]string{
		"static int helper(void) {",
		"    return 0;",
		"}",
		"",
		`extern "C" PUBLIC`,
		"void APIENTRY glEnable(GLenum cap) {",
		"    _glEnable(cap);",
		"}",
		"",
		"HRESULT WrapIDevice::Present(UINT SyncInterval) {",
		"    return _this->Present(SyncInterval);",
		"}",
		"",
	}, "\n")

	tests := []struct {
		symbol string
		want   string
	}{
		{"glEnable", "extern \"C\" PUBLIC\nvoid APIENTRY glEnable(GLenum cap) {\n    _glEnable(cap);\n}\n"},
		{"WrapIDevice::Present", "HRESULT WrapIDevice::Present(UINT SyncInterval) {\n    return _this->Present(SyncInterval);\n}\n"},
		{"helper", "static int helper(void) {\n    return 0;\n}\n"},
		{"glDisable", ""},
		{"Present", ""},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Excerpt(src, tt.symbol)); diff != "" {
				t.Errorf("Excerpt mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExcerptGenerated(t *testing.T) {
	files, err := GenerateAPI("gl", nil)
	if err != nil {
		t.Fatal(err)
	}
	ex := Excerpt(source(t, files, "gltrace.cpp"), "glGetError")
	if !strings.HasPrefix(ex, `extern "C" PUBLIC`) || !strings.HasSuffix(ex, "}\n") {
		t.Errorf("unexpected excerpt:\n%s", ex)
	}
	if !strings.Contains(ex, "_glGetError_sig") {
		t.Errorf("excerpt should record the call:\n%s", ex)
	}
}
